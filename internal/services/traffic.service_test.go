package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounters struct {
	stats []net.IOCountersStat
	err   error
}

func (f *fakeCounters) read(ctx context.Context, pernic bool) ([]net.IOCountersStat, error) {
	return f.stats, f.err
}

func newTestCounterSource(mock *clock.Mock, fc *fakeCounters) *CounterSource {
	s := NewCounterSource(mock)
	s.counters = fc.read
	return s
}

func TestCounterSource_BaselineThenRate(t *testing.T) {
	mock := clock.NewMock()
	fc := &fakeCounters{stats: []net.IOCountersStat{{Name: "eth0", BytesRecv: 1000, BytesSent: 100}}}
	s := newTestCounterSource(mock, fc)

	_, ok := s.GetSample(context.Background(), "eth0")
	assert.False(t, ok, "first read only records a baseline")

	mock.Add(2 * time.Second)
	fc.stats = []net.IOCountersStat{{Name: "eth0", BytesRecv: 5000, BytesSent: 300}}

	sample, ok := s.GetSample(context.Background(), "eth0")
	require.True(t, ok)
	assert.Equal(t, "eth0", sample.Interface)
	assert.Equal(t, 2000.0, sample.InputBytesPerSec)
	assert.Equal(t, 100.0, sample.OutputBytesPerSec)
}

func TestCounterSource_UnknownInterface(t *testing.T) {
	mock := clock.NewMock()
	fc := &fakeCounters{stats: []net.IOCountersStat{{Name: "eth0"}}}
	s := newTestCounterSource(mock, fc)

	s.GetSample(context.Background(), "wlan0")
	mock.Add(time.Second)
	_, ok := s.GetSample(context.Background(), "wlan0")
	assert.False(t, ok)
}

func TestCounterSource_BaselineKeptForOtherInterfaces(t *testing.T) {
	mock := clock.NewMock()
	fc := &fakeCounters{stats: []net.IOCountersStat{
		{Name: "eth0", BytesRecv: 10},
		{Name: "wlan0", BytesRecv: 10},
	}}
	s := newTestCounterSource(mock, fc)

	s.GetSample(context.Background(), "eth0")
	mock.Add(time.Second)
	fc.stats[1].BytesRecv = 110

	sample, ok := s.GetSample(context.Background(), "wlan0")
	require.True(t, ok)
	assert.Equal(t, 100.0, sample.InputBytesPerSec)
}

func TestCounterSource_CounterReset(t *testing.T) {
	mock := clock.NewMock()
	fc := &fakeCounters{stats: []net.IOCountersStat{{Name: "eth0", BytesRecv: 9000, BytesSent: 9000}}}
	s := newTestCounterSource(mock, fc)
	s.GetSample(context.Background(), "eth0")

	mock.Add(time.Second)
	fc.stats[0].BytesRecv = 10
	_, ok := s.GetSample(context.Background(), "eth0")
	assert.False(t, ok)

	mock.Add(time.Second)
	fc.stats[0].BytesRecv = 60
	fc.stats[0].BytesSent = 9500
	sample, ok := s.GetSample(context.Background(), "eth0")
	require.True(t, ok)
	assert.Equal(t, 50.0, sample.InputBytesPerSec)
	assert.Equal(t, 500.0, sample.OutputBytesPerSec)
}

func TestCounterSource_ReadError(t *testing.T) {
	fc := &fakeCounters{err: errors.New("no counters")}
	s := newTestCounterSource(clock.NewMock(), fc)
	_, ok := s.GetSample(context.Background(), "eth0")
	assert.False(t, ok)
}

func TestCounterRate(t *testing.T) {
	rate, ok := counterRate(100, 300, 2)
	assert.True(t, ok)
	assert.Equal(t, 100.0, rate)

	_, ok = counterRate(300, 100, 1)
	assert.False(t, ok)

	_, ok = counterRate(100, 300, 0)
	assert.False(t, ok)
}
