package simulation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/MezMezMezMez/P2/internal/clock"
	"github.com/MezMezMezMez/P2/internal/idgen"
	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/runtime/instance"
	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/event"
	"github.com/MezMezMezMez/P2/service/journal"
	"github.com/MezMezMezMez/P2/service/roster"
	"github.com/MezMezMezMez/P2/tracing"
)

// Config represents simulation service configuration
type Config struct {
	// Instances is the number of concurrent instance workers
	Instances int

	// Bounds is the inclusive interval run durations are drawn from
	Bounds model.TimeBounds
}

// DefaultConfig returns the default simulation configuration
func DefaultConfig() Config {
	return Config{
		Instances: 1,
		Bounds:    model.TimeBounds{Min: 0, Max: 0},
	}
}

// Service runs the instance worker pool against a shared roster.
type Service struct {
	config    Config
	roster    *roster.Service
	journal   dao.Service[string, journal.RunRecord]
	events    *event.Service
	instances []*instance.Instance

	workers  []*worker
	workerWg sync.WaitGroup

	randMu sync.Mutex
	rand   *rand.Rand
}

type worker struct {
	slot     int
	service  *Service
	inst     *instance.Instance
	ctx      context.Context
	cancelFn context.CancelFunc
}

// New creates a new simulation service
func New(options ...Option) (*Service, error) {
	s := &Service{
		config: DefaultConfig(),
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.roster == nil {
		return nil, fmt.Errorf("roster is required")
	}
	if s.config.Instances <= 0 {
		return nil, fmt.Errorf("instance count must be > 0, got %d", s.config.Instances)
	}
	if err := s.config.Bounds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid time bounds: %w", err)
	}
	s.instances = make([]*instance.Instance, s.config.Instances)
	for slot := 0; slot < s.config.Instances; slot++ {
		s.instances[slot] = instance.New(slot)
	}
	return s, nil
}

// Start launches one worker goroutine per instance slot.
func (s *Service) Start(ctx context.Context) error {
	for slot := 0; slot < s.config.Instances; slot++ {
		workerCtx, cancel := context.WithCancel(ctx)
		w := &worker{
			slot:     slot,
			service:  s,
			inst:     s.instances[slot],
			ctx:      workerCtx,
			cancelFn: cancel,
		}
		s.workers = append(s.workers, w)
		s.workerWg.Add(1)
		go w.run()
	}
	return nil
}

// Wait blocks until every worker has reached the stopped state.
func (s *Service) Wait() {
	s.workerWg.Wait()
}

// Shutdown unblocks and cancels all workers. A simulation left to run to
// natural exhaustion does not need it.
func (s *Service) Shutdown() {
	s.roster.Close()
	for _, w := range s.workers {
		w.cancelFn()
	}
	s.workerWg.Wait()
}

// Snapshots returns a consistent copy of all instance records taken under
// the roster lock.
func (s *Service) Snapshots() []instance.Snapshot {
	snapshots, _, _ := s.Observe()
	return snapshots
}

// Observe copies all instance records together with the remaining queue
// counts and the terminal flag inside a single roster critical section, so
// observers never see pool and instance state from different moments.
func (s *Service) Observe() ([]instance.Snapshot, model.Counts, bool) {
	snapshots := make([]instance.Snapshot, 0, len(s.instances))
	var counts model.Counts
	var terminal bool
	s.roster.View(func(remaining model.Counts, isTerminal bool) {
		for _, inst := range s.instances {
			snapshots = append(snapshots, inst.Snapshot())
		}
		counts = remaining
		terminal = isTerminal
	})
	return snapshots, counts, terminal
}

// run drives one instance through its reserve/run/record loop until the
// roster is exhausted.
func (w *worker) run() {
	defer w.service.workerWg.Done()
	s := w.service

	for {
		s.roster.Update(func() { w.inst.State = instance.StateReserving })

		party := &model.Party{ID: idgen.New(), Slot: w.slot, Members: s.roster.Composition()}
		err := s.roster.Reserve(w.ctx, func() {
			w.inst.Active = true
			w.inst.State = instance.StateRunning
		})
		if err != nil {
			s.roster.Update(func() { w.inst.State = instance.StateStopped })
			if !errors.Is(err, roster.ErrExhausted) && !errors.Is(err, roster.ErrClosed) && !errors.Is(err, context.Canceled) {
				log.Printf("worker %d: reserve failed: %v", w.slot, err)
			}
			w.publishStopped()
			return
		}
		w.publishPartyFormed(party)

		// Simulated run; the lock is NOT held here – this interval is the
		// system's only source of true parallelism.
		duration := s.sampleRunDuration()
		runCtx, span := tracing.StartSpan(w.ctx, fmt.Sprintf("simulation.run slot-%d", w.slot), "INTERNAL")
		span.WithAttributes(map[string]string{"party.id": party.ID})
		startedAt := clock.Now()
		clock.Sleep(runCtx, duration)
		finishedAt := clock.Now()
		tracing.EndSpan(span, nil)

		// A cancelled run ends early; account only the time actually served.
		served := duration
		if runCtx.Err() != nil {
			served = finishedAt.Sub(startedAt)
		}

		s.roster.Record(func() {
			w.inst.PartiesServed++
			w.inst.TotalBusy += served
			w.inst.Active = false
			w.inst.State = instance.StateIdle
		})

		record := &journal.RunRecord{
			ID:         idgen.New(),
			PartyID:    party.ID,
			Slot:       w.slot,
			Duration:   served,
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		}
		if s.journal != nil {
			if err := s.journal.Save(w.ctx, record); err != nil {
				log.Printf("worker %d: failed to save run record: %v", w.slot, err)
			}
		}
		w.publishRunCompleted(record)
	}
}

// sampleRunDuration draws an integer number of seconds uniformly from the
// configured closed interval; draws are independent across calls.
func (s *Service) sampleRunDuration() time.Duration {
	bounds := s.config.Bounds
	if bounds.Max <= bounds.Min {
		return bounds.Duration(bounds.Min)
	}
	s.randMu.Lock()
	seconds := bounds.Min + s.rand.Intn(bounds.Span())
	s.randMu.Unlock()
	return bounds.Duration(seconds)
}

func (w *worker) publishPartyFormed(party *model.Party) {
	w.publish(&event.Context{EventType: event.TypePartyFormed, Slot: w.slot}, party)
}

func (w *worker) publishStopped() {
	w.publish(&event.Context{EventType: event.TypeInstanceStopped, Slot: w.slot}, (*model.Party)(nil))
}

func (w *worker) publishRunCompleted(record *journal.RunRecord) {
	s := w.service
	if s.events == nil {
		return
	}
	publisher, err := event.PublisherOf[*journal.RunRecord](s.events)
	if err != nil {
		return
	}
	eCtx := &event.Context{EventType: event.TypeRunCompleted, Slot: w.slot, RunID: record.ID}
	if err := publisher.Publish(w.ctx, event.NewEvent(eCtx, record)); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("worker %d: failed to publish run event: %v", w.slot, err)
	}
}

func (w *worker) publish(eCtx *event.Context, party *model.Party) {
	s := w.service
	if s.events == nil {
		return
	}
	publisher, err := event.PublisherOf[*model.Party](s.events)
	if err != nil {
		return
	}
	// The worker context bounds the send so Shutdown can unblock a worker
	// parked on a full queue.
	if err := publisher.Publish(w.ctx, event.NewEvent(eCtx, party)); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("worker %d: failed to publish event: %v", w.slot, err)
	}
}
