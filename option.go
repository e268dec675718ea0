package dungeon

import (
	"time"

	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/event"
	"github.com/MezMezMezMez/P2/service/journal"
	"github.com/MezMezMezMez/P2/service/meta"
	"github.com/MezMezMezMez/P2/tracing"
	"github.com/viant/afs/storage"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the simulator façade.
type Option func(s *Service)

// WithConfig sets the simulator configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithConfigOverrides applies a loosely-typed override map on top of the
// configuration before validation.
func WithConfigOverrides(overrides map[string]interface{}) Option {
	return func(s *Service) {
		s.configOverrides = overrides
	}
}

// WithMetaService sets the meta service
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the meta base URL
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions sets meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithEventService sets the lifecycle event bus. The caller owns its
// consumption: subscribe with event.SetListenerOf or install
// event.DiscardOf for payload types it does not care about, otherwise
// publishers back up once the queue buffers fill.
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithJournal sets the run-record store
func WithJournal(store dao.Service[string, journal.RunRecord]) Option {
	return func(s *Service) {
		s.journal = store
	}
}

// WithMonitorInterval overrides the live-status polling interval
func WithMonitorInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.monitorInterval = interval
	}
}

// WithTracing configures OpenTelemetry tracing for the simulator. If
// outputFile is empty the stdout exporter is used; otherwise traces are
// written to the supplied file path. Safe to call multiple times – the
// first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, for example OTLP, Jaeger or Zipkin.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
