package services

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shirou/gopsutil/v3/net"

	"netbar/internal/models"
)

// TrafficSource returns the latest one-second throughput of an interface.
// No sample is a normal outcome.
type TrafficSource interface {
	GetSample(ctx context.Context, iface string) (models.TrafficSample, bool)
}

type counterMark struct {
	sent uint64
	recv uint64
	at   time.Time
}

// CounterSource derives per-interface rates from cumulative OS byte counters
type CounterSource struct {
	mu       sync.Mutex
	clock    clock.Clock
	counters func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error)
	last     map[string]counterMark
}

// NewCounterSource creates a source reading gopsutil network counters
func NewCounterSource(clk clock.Clock) *CounterSource {
	if clk == nil {
		clk = clock.New()
	}
	return &CounterSource{
		clock:    clk,
		counters: net.IOCountersWithContext,
		last:     make(map[string]counterMark),
	}
}

// GetSample reads all interface counters and returns the rate of iface since
// the previous read. The first read of an interface only records a baseline.
func (s *CounterSource) GetSample(ctx context.Context, iface string) (models.TrafficSample, bool) {
	stats, err := s.counters(ctx, true)
	if err != nil {
		return models.TrafficSample{}, false
	}
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		sample models.TrafficSample
		found  bool
	)
	for _, counter := range stats {
		prev, seen := s.last[counter.Name]
		s.last[counter.Name] = counterMark{sent: counter.BytesSent, recv: counter.BytesRecv, at: now}

		if counter.Name != iface || !seen {
			continue
		}

		elapsed := now.Sub(prev.at).Seconds()
		recvRate, okRecv := counterRate(prev.recv, counter.BytesRecv, elapsed)
		sentRate, okSent := counterRate(prev.sent, counter.BytesSent, elapsed)
		if !okRecv || !okSent {
			continue
		}

		sample = models.TrafficSample{
			Interface:         iface,
			InputBytesPerSec:  recvRate,
			OutputBytesPerSec: sentRate,
		}
		found = true
	}

	return sample, found
}

// counterRate converts a counter delta to bytes/sec. A counter that went
// backwards (interface reset or wrap) yields no rate instead of an underflow.
func counterRate(prev, cur uint64, elapsed float64) (float64, bool) {
	if cur < prev || elapsed <= 0 {
		return 0, false
	}
	return float64(cur-prev) / elapsed, true
}
