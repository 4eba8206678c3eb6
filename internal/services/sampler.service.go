package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"netbar/internal/models"
)

var (
	// ErrNoActiveInterface means no default route is currently established
	ErrNoActiveInterface = errors.New("no active network interface")
	// ErrNoSample means the traffic source had no usable sample for the interface
	ErrNoSample = errors.New("no traffic sample for interface")
	// ErrSamplerStopped is returned by Tick once the sampler has been stopped
	ErrSamplerStopped = errors.New("sampler stopped")
)

// SamplerState is the lifecycle of a Sampler: Idle -> Running -> Stopped
type SamplerState int

const (
	SamplerIdle SamplerState = iota
	SamplerRunning
	SamplerStopped
)

func (s SamplerState) String() string {
	switch s {
	case SamplerIdle:
		return "idle"
	case SamplerRunning:
		return "running"
	case SamplerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SamplerConfig wires the collaborators of a Sampler
type SamplerConfig struct {
	Interval time.Duration
	// SampleTimeout bounds a single resolver + traffic source call
	SampleTimeout time.Duration
	Clock         clock.Clock
	Resolver      InterfaceResolver
	Source        TrafficSource
	Settings      SettingsReader
	Stats         StatsReader // optional
}

// Sampler drives the once-per-second sampling tick and publishes a Snapshot
// after every tick that produced data.
type Sampler struct {
	cfg   SamplerConfig
	clock clock.Clock

	// tickMu serialises ticks; rates and lastIface are only touched under it
	tickMu    sync.Mutex
	rates     *RateState
	lastIface string

	mu          sync.RWMutex
	state       SamplerState
	ticker      *clock.Ticker
	done        chan struct{}
	latest      models.Snapshot
	published   bool
	subscribers map[int]chan models.Snapshot
	nextSubID   int

	wg sync.WaitGroup
}

// NewSampler validates cfg and creates an idle sampler.
// The session starts now, by the sampler's clock.
func NewSampler(cfg SamplerConfig) (*Sampler, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("sampler: resolver required")
	}
	if cfg.Source == nil {
		return nil, errors.New("sampler: traffic source required")
	}
	if cfg.Settings == nil {
		return nil, errors.New("sampler: settings required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.SampleTimeout <= 0 || cfg.SampleTimeout >= cfg.Interval {
		cfg.SampleTimeout = cfg.Interval / 2
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	return &Sampler{
		cfg:         cfg,
		clock:       cfg.Clock,
		rates:       NewRateState(cfg.Clock.Now()),
		state:       SamplerIdle,
		subscribers: make(map[int]chan models.Snapshot),
	}, nil
}

// State returns the current lifecycle state
func (s *Sampler) State() SamplerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Start begins ticking. It only has an effect on an idle sampler.
func (s *Sampler) Start() {
	s.mu.Lock()
	if s.state != SamplerIdle {
		s.mu.Unlock()
		return
	}
	s.state = SamplerRunning
	s.ticker = s.clock.Ticker(s.cfg.Interval)
	s.done = make(chan struct{})
	ticker, done := s.ticker, s.done
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ticker, done)

	log.Printf("[SAMPLER] Started (interval: %v)", s.cfg.Interval)
}

// Stop cancels the ticker and waits for an in-flight tick to finish.
// No tick runs after Stop returns. Safe to call repeatedly.
func (s *Sampler) Stop() {
	s.mu.Lock()
	prev := s.state
	if prev == SamplerStopped {
		s.mu.Unlock()
		return
	}
	s.state = SamplerStopped
	if prev == SamplerRunning {
		s.ticker.Stop()
		close(s.done)
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
	s.mu.Unlock()

	log.Println("[SAMPLER] Stopped")
}

func (s *Sampler) run(ticker *clock.Ticker, done <-chan struct{}) {
	defer s.wg.Done()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			select {
			case <-done:
				return
			default:
			}
			s.Tick(context.Background())
		}
	}
}

// Tick runs one sampling cycle. It returns ErrNoActiveInterface or
// ErrNoSample when the cycle was skipped; the last published snapshot is
// then left as it was.
func (s *Sampler) Tick(ctx context.Context) error {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	if s.State() == SamplerStopped {
		return ErrSamplerStopped
	}

	settings := s.cfg.Settings.Current()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SampleTimeout)
	defer cancel()

	iface, ok := s.cfg.Resolver.Resolve(ctx)
	s.trackInterface(iface, ok)
	if !ok {
		return ErrNoActiveInterface
	}

	sample, ok := s.cfg.Source.GetSample(ctx, iface)
	if !ok || !sample.Valid() {
		return ErrNoSample
	}

	s.rates.ApplySample(sample)
	view := s.rates.View()

	var sys *models.SystemStats
	if s.cfg.Stats != nil {
		if stats, ok := s.cfg.Stats.Latest(); ok {
			sys = &stats
		}
	}

	snap := models.Snapshot{
		Interface:     iface,
		Text:          Compose(view, settings.Formatting, sys, settings.Visibility),
		Download:      view.CurrentDownload,
		Upload:        view.CurrentUpload,
		TotalDownload: view.TotalDownload,
		TotalUpload:   view.TotalUpload,
		History:       view.History,
		Font:          settings.Font,
		System:        sys,
		SessionStart:  view.SessionStart,
		Timestamp:     s.clock.Now(),
	}
	s.publish(snap)
	return nil
}

// trackInterface logs interface changes once instead of on every tick
func (s *Sampler) trackInterface(iface string, ok bool) {
	if !ok {
		iface = ""
	}
	if iface == s.lastIface {
		return
	}
	switch {
	case s.lastIface == "":
		log.Printf("[SAMPLER] Primary interface: %s", iface)
	case iface == "":
		log.Printf("[SAMPLER] Primary interface %s lost, waiting for network", s.lastIface)
	default:
		log.Printf("[SAMPLER] Primary interface changed: %s -> %s", s.lastIface, iface)
	}
	s.lastIface = iface
}

func (s *Sampler) publish(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = snap
	s.published = true
	for _, ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// Subscriber is behind, it gets the next one
		}
	}
}

// Latest returns the last published snapshot, false before the first one
func (s *Sampler) Latest() (models.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.published
}

// SessionStart is when the sampler was created
func (s *Sampler) SessionStart() time.Time {
	return s.rates.sessionStart
}

// Subscribe returns a channel receiving every published snapshot and a
// cancel func. The channel is closed on cancel or when the sampler stops.
func (s *Sampler) Subscribe(buffer int) (<-chan models.Snapshot, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan models.Snapshot, buffer)

	s.mu.Lock()
	if s.state == SamplerStopped {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		})
	}
}
