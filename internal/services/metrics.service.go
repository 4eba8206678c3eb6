package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"netbar/internal/models"
)

// StatsReader exposes the latest host usage snapshot without triggering a refresh
type StatsReader interface {
	Latest() (models.SystemStats, bool)
}

// UsageProbe reads one host usage percentage
type UsageProbe func(ctx context.Context) (float64, error)

// CPUUsage returns total CPU usage since the previous call
func CPUUsage(ctx context.Context) (float64, error) {
	percentage, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(percentage) == 0 {
		return 0, fmt.Errorf("no cpu usage reported")
	}
	return percentage[0], nil
}

// MemoryUsage returns used virtual memory in percent
func MemoryUsage(ctx context.Context) (float64, error) {
	virtualMemory, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return virtualMemory.UsedPercent, nil
}

// DiskUsage returns a probe for the filesystem mounted at path
func DiskUsage(path string) UsageProbe {
	if path == "" {
		path = "/"
	}
	return func(ctx context.Context) (float64, error) {
		usage, err := disk.UsageWithContext(ctx, path)
		if err != nil {
			return 0, err
		}
		return usage.UsedPercent, nil
	}
}

// StatsCollector refreshes host usage on its own cadence
type StatsCollector struct {
	mu      sync.RWMutex
	latest  models.SystemStats
	ready   bool
	running bool
	done    chan struct{}
	wg      sync.WaitGroup

	interval time.Duration
	clock    clock.Clock
	cpu      UsageProbe
	memory   UsageProbe
	disk     UsageProbe
}

// NewStatsCollector creates a collector using gopsutil probes
func NewStatsCollector(interval time.Duration, diskPath string, clk clock.Clock) *StatsCollector {
	if clk == nil {
		clk = clock.New()
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &StatsCollector{
		interval: interval,
		clock:    clk,
		cpu:      CPUUsage,
		memory:   MemoryUsage,
		disk:     DiskUsage(diskPath),
	}
}

// Start begins periodic collection; calling it twice is a no-op
func (sc *StatsCollector) Start() {
	sc.mu.Lock()
	if sc.running {
		sc.mu.Unlock()
		return
	}
	sc.running = true
	sc.done = make(chan struct{})
	sc.mu.Unlock()

	ticker := sc.clock.Ticker(sc.interval)
	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()
		defer ticker.Stop()

		sc.Refresh(context.Background())
		for {
			select {
			case <-sc.done:
				return
			case <-ticker.C:
				sc.Refresh(context.Background())
			}
		}
	}()

	log.Printf("[STATS] Collector started (interval: %v)", sc.interval)
}

// Stop ends collection and waits for the loop to exit
func (sc *StatsCollector) Stop() {
	sc.mu.Lock()
	if !sc.running {
		sc.mu.Unlock()
		return
	}
	sc.running = false
	close(sc.done)
	sc.mu.Unlock()

	sc.wg.Wait()
	log.Println("[STATS] Collector stopped")
}

// Refresh takes one reading. Probes run outside the lock so readers never
// wait on a slow system call. A failing probe keeps its previous value.
func (sc *StatsCollector) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, sc.interval)
	defer cancel()

	cpuPercent, cpuErr := sc.cpu(ctx)
	memPercent, memErr := sc.memory(ctx)
	diskPercent, diskErr := sc.disk(ctx)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	next := sc.latest
	if cpuErr == nil {
		next.CPU = cpuPercent
	} else {
		log.Printf("[STATS] Warning: Could not get CPU usage: %v", cpuErr)
	}
	if memErr == nil {
		next.Memory = memPercent
	} else {
		log.Printf("[STATS] Warning: Could not get memory usage: %v", memErr)
	}
	if diskErr == nil {
		next.Disk = diskPercent
	} else {
		log.Printf("[STATS] Warning: Could not get disk usage: %v", diskErr)
	}

	if cpuErr == nil || memErr == nil || diskErr == nil {
		next.CollectedAt = sc.clock.Now()
		sc.latest = next
		sc.ready = true
	}
}

// Latest returns the most recent reading, false before the first one
func (sc *StatsCollector) Latest() (models.SystemStats, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.latest, sc.ready
}
