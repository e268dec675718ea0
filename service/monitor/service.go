package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MezMezMezMez/P2/internal/clock"
	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/runtime/instance"
	"github.com/MezMezMezMez/P2/service/simulation"
)

// Config represents monitor service configuration
type Config struct {
	// PollInterval is how often the monitor snapshots the simulation
	PollInterval time.Duration
}

// DefaultConfig returns the default monitor configuration
func DefaultConfig() Config {
	return Config{
		PollInterval: time.Second,
	}
}

// Snapshot is one consistent observation of the whole simulation.
type Snapshot struct {
	At        time.Time           `json:"at"`
	Instances []instance.Snapshot `json:"instances"`
	Remaining model.Counts        `json:"remaining"`
	Terminal  bool                `json:"terminal"`
}

// AllIdle reports whether no instance is currently serving a party.
func (s Snapshot) AllIdle() bool {
	for _, inst := range s.Instances {
		if inst.Active {
			return false
		}
	}
	return true
}

// Service observes the roster and instance pool. It never mutates shared
// state; all reads go through the roster lock to avoid torn updates.
type Service struct {
	config     Config
	simulation *simulation.Service

	mu           sync.Mutex
	onChange     func(Snapshot)
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// New creates a new monitor service
func New(sim *simulation.Service, config Config) (*Service, error) {
	if sim == nil {
		return nil, fmt.Errorf("simulation is required")
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}
	return &Service{
		config:     config,
		simulation: sim,
		shutdownCh: make(chan struct{}),
	}, nil
}

// OnChange registers a callback invoked with every snapshot, outside the
// roster critical section so it may perform slow rendering or I/O. Passing
// nil disables the callback; only one callback can be active.
func (s *Service) OnChange(cb func(Snapshot)) {
	s.mu.Lock()
	s.onChange = cb
	s.mu.Unlock()
}

// Start runs the polling loop until the simulation can never progress again:
// the roster is terminal and every instance is idle or stopped.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.shutdownCh:
			return nil
		case <-ticker.C:
			snapshot := s.Snapshot()
			if snapshot.Terminal && snapshot.AllIdle() {
				return nil
			}
			s.mu.Lock()
			cb := s.onChange
			s.mu.Unlock()
			if cb != nil {
				cb(snapshot)
			}
		}
	}
}

// Snapshot takes one consistent observation under the roster lock.
func (s *Service) Snapshot() Snapshot {
	out := Snapshot{At: clock.Now()}
	out.Instances, out.Remaining, out.Terminal = s.simulation.Observe()
	return out
}

// Shutdown stops the monitor loop early.
func (s *Service) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownCh)
	})
}
