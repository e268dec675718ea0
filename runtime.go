package dungeon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MezMezMezMez/P2/internal/clock"
	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/journal"
	"github.com/MezMezMezMez/P2/service/monitor"
	"github.com/MezMezMezMez/P2/service/report"
	"github.com/MezMezMezMez/P2/service/roster"
	"github.com/MezMezMezMez/P2/service/simulation"
	"github.com/MezMezMezMez/P2/tracing"
)

// Runtime owns the lifecycle of one simulation run: start the workers and
// the monitor, join the workers once the roster is exhausted, join the
// monitor, then produce the final report. A runtime is single-pass – it is
// never restarted.
type Runtime struct {
	roster     *roster.Service
	simulation *simulation.Service
	monitor    *monitor.Service
	journal    dao.Service[string, journal.RunRecord]
	reports    *report.Service

	startedAt   time.Time
	span        *tracing.Span
	monitorDone chan error
}

// OnStatus registers the live-status callback invoked with every monitor
// snapshot until termination.
func (r *Runtime) OnStatus(cb func(monitor.Snapshot)) {
	r.monitor.OnChange(cb)
}

// Start launches the instance workers and the monitor.
func (r *Runtime) Start(ctx context.Context) error {
	if r.monitorDone != nil {
		return fmt.Errorf("runtime already started")
	}
	r.startedAt = clock.Now()
	_, r.span = tracing.StartSpan(ctx, "simulation.run", "INTERNAL")
	if err := r.simulation.Start(ctx); err != nil {
		return err
	}
	r.monitorDone = make(chan error, 1)
	go func() {
		r.monitorDone <- r.monitor.Start(ctx)
	}()
	return nil
}

// Wait joins all instance workers, then the monitor, and assembles the
// final report from a terminal snapshot.
func (r *Runtime) Wait(ctx context.Context) (*model.Report, error) {
	if r.monitorDone == nil {
		return nil, fmt.Errorf("runtime not started")
	}
	r.simulation.Wait()
	var err error
	select {
	case err = <-r.monitorDone:
	case <-ctx.Done():
		err = ctx.Err()
	}
	tracing.EndSpan(r.span, err)
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}

	snapshots, remaining, _ := r.simulation.Observe()
	return r.reports.Build(r.startedAt, clock.Now(), snapshots, remaining), nil
}

// Run starts the simulation and blocks until natural termination.
func (r *Runtime) Run(ctx context.Context) (*model.Report, error) {
	if err := r.Start(ctx); err != nil {
		return nil, err
	}
	return r.Wait(ctx)
}

// Snapshot returns one consistent observation of the current state.
func (r *Runtime) Snapshot() monitor.Snapshot {
	return r.monitor.Snapshot()
}

// Terminal reports whether no future party can ever form.
func (r *Runtime) Terminal() bool {
	return r.roster.Terminal()
}

// Runs lists recorded party runs; narrow with dao.NewParameter("Slot", n).
func (r *Runtime) Runs(ctx context.Context, parameters ...*dao.Parameter) ([]*journal.RunRecord, error) {
	return r.journal.List(ctx, parameters...)
}

// UploadReport persists the YAML-encoded report at the destination URL.
func (r *Runtime) UploadReport(ctx context.Context, URL string, rep *model.Report) error {
	return r.reports.Upload(ctx, URL, rep)
}

// Shutdown aborts a run early: it unblocks parked workers, cancels running
// ones and stops the monitor. Natural termination does not require it.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.simulation.Shutdown()
	r.monitor.Shutdown()
	return nil
}
