package dungeon

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/event"
	"github.com/MezMezMezMez/P2/service/journal"
	jmemory "github.com/MezMezMezMez/P2/service/journal/memory"
	"github.com/MezMezMezMez/P2/service/meta"
	"github.com/MezMezMezMez/P2/service/meta/legacy"
	"github.com/MezMezMezMez/P2/service/monitor"
	"github.com/MezMezMezMez/P2/service/report"
	"github.com/MezMezMezMez/P2/service/roster"
	"github.com/MezMezMezMez/P2/service/simulation"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
)

// Service is the simulator façade: it wires the roster, the worker pool,
// the monitor and the supporting services from one validated configuration.
type Service struct {
	config          *Config
	configOverrides map[string]interface{}
	runtime         *Runtime
	metaService     *meta.Service
	eventService    *event.Service
	journal         dao.Service[string, journal.RunRecord]
	metaBaseURL     string
	metaFsOptions   []storage.Option
	monitorInterval time.Duration
}

// New creates a simulator from the supplied options. Invalid configuration
// is a fatal construction error; no goroutine runs before Runtime.Start.
func New(options ...Option) (*Service, error) {
	s := &Service{config: DefaultConfig(), runtime: &Runtime{}}
	if err := s.init(options); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := meta.ApplyOverrides(s.config, s.configOverrides); err != nil {
		return err
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	s.ensureBaseSetup()

	pool, err := roster.New(s.config.PartyComposition(), s.config.Queues.Counts())
	if err != nil {
		return err
	}
	sim, err := simulation.New(
		simulation.WithRoster(pool),
		simulation.WithInstances(s.config.Instances),
		simulation.WithTimeBounds(s.config.Time),
		simulation.WithJournal(s.journal),
		simulation.WithEventService(s.eventService))
	if err != nil {
		return err
	}
	interval := s.monitorInterval
	if interval <= 0 {
		interval = time.Duration(s.config.MonitorIntervalMs) * time.Millisecond
	}
	watcher, err := monitor.New(sim, monitor.Config{PollInterval: interval})
	if err != nil {
		return err
	}
	s.runtime.roster = pool
	s.runtime.simulation = sim
	s.runtime.monitor = watcher
	s.runtime.journal = s.journal
	s.runtime.reports = report.New()
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.journal == nil {
		s.journal = jmemory.New()
	}
	if s.eventService == nil {
		s.eventService, _ = event.New("memory")
		// Nothing consumes lifecycle events until the application
		// subscribes; drain the typed channels and the any mirror so the
		// workers never block on a full queue.
		_ = event.DiscardOf[*model.Party](s.eventService)
		_ = event.DiscardOf[*journal.RunRecord](s.eventService)
		s.eventService.SetListener(func(*event.Event[any]) {})
	}
}

// Runtime returns the simulation runtime.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Events returns the lifecycle event bus.
func (s *Service) Events() *event.Service {
	return s.eventService
}

// Config returns the validated configuration.
func (s *Service) Config() *Config {
	return s.config
}

// LoadConfig reads a configuration document from any location the abstract
// file system supports. Files ending in .yaml/.yml are decoded as YAML with
// ${env.KEY} expansion; anything else is parsed as the legacy six-integer
// format `n t h d t1 t2`.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	metaService := meta.New(afs.New(), "")
	switch filepath.Ext(URL) {
	case ".yaml", ".yml":
		cfg := DefaultConfig()
		if err := metaService.Load(ctx, URL, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		data, err := metaService.Download(ctx, URL)
		if err != nil {
			return nil, err
		}
		input, err := legacy.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", URL, err)
		}
		return FromLegacy(input), nil
	}
}
