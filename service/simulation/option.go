package simulation

import (
	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/event"
	"github.com/MezMezMezMez/P2/service/journal"
	"github.com/MezMezMezMez/P2/service/roster"
)

type Option func(*Service)

// WithRoster sets the shared roster the workers drain
func WithRoster(pool *roster.Service) Option {
	return func(s *Service) {
		s.roster = pool
	}
}

// WithJournal sets the run-record store
func WithJournal(journal dao.Service[string, journal.RunRecord]) Option {
	return func(s *Service) {
		s.journal = journal
	}
}

// WithEventService sets the lifecycle event bus
func WithEventService(events *event.Service) Option {
	return func(s *Service) {
		s.events = events
	}
}

// WithInstances sets the number of instance workers
func WithInstances(count int) Option {
	return func(s *Service) {
		s.config.Instances = count
	}
}

// WithTimeBounds sets the simulated run duration interval
func WithTimeBounds(bounds model.TimeBounds) Option {
	return func(s *Service) {
		s.config.Bounds = bounds
	}
}

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}
