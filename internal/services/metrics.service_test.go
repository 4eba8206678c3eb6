package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constProbe(v float64) UsageProbe {
	return func(context.Context) (float64, error) { return v, nil }
}

func failingProbe(context.Context) (float64, error) {
	return 0, errors.New("unavailable")
}

func newTestCollector(mock *clock.Mock) *StatsCollector {
	sc := NewStatsCollector(time.Second, "/", mock)
	sc.cpu = constProbe(12.5)
	sc.memory = constProbe(40)
	sc.disk = constProbe(77.7)
	return sc
}

func TestStatsCollector_Refresh(t *testing.T) {
	mock := clock.NewMock()
	sc := newTestCollector(mock)

	_, ok := sc.Latest()
	assert.False(t, ok)

	sc.Refresh(context.Background())
	stats, ok := sc.Latest()
	require.True(t, ok)
	assert.Equal(t, 12.5, stats.CPU)
	assert.Equal(t, 40.0, stats.Memory)
	assert.Equal(t, 77.7, stats.Disk)
	assert.Equal(t, mock.Now(), stats.CollectedAt)
}

func TestStatsCollector_FailingProbeKeepsPrevious(t *testing.T) {
	sc := newTestCollector(clock.NewMock())
	sc.Refresh(context.Background())

	sc.cpu = failingProbe
	sc.memory = constProbe(50)
	sc.Refresh(context.Background())

	stats, ok := sc.Latest()
	require.True(t, ok)
	assert.Equal(t, 12.5, stats.CPU)
	assert.Equal(t, 50.0, stats.Memory)
}

func TestStatsCollector_AllProbesFail(t *testing.T) {
	sc := newTestCollector(clock.NewMock())
	sc.cpu, sc.memory, sc.disk = failingProbe, failingProbe, failingProbe
	sc.Refresh(context.Background())

	_, ok := sc.Latest()
	assert.False(t, ok)
}

func TestStatsCollector_StartStop(t *testing.T) {
	mock := clock.NewMock()
	sc := newTestCollector(mock)

	var calls atomic.Int32
	sc.cpu = func(context.Context) (float64, error) {
		calls.Add(1)
		return 1, nil
	}

	sc.Start()
	sc.Start()
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)

	mock.Add(time.Second)
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)

	sc.Stop()
	sc.Stop()
	after := calls.Load()
	mock.Add(5 * time.Second)
	assert.Equal(t, after, calls.Load())
}
