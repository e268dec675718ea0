package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MezMezMezMez/P2/internal/clock"
	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/service/roster"
	"github.com/MezMezMezMez/P2/service/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulation(t *testing.T, counts model.Counts, instances int) (*roster.Service, *simulation.Service) {
	t.Helper()
	pool, err := roster.New(model.DefaultComposition(), counts)
	require.NoError(t, err)
	sim, err := simulation.New(simulation.WithRoster(pool), simulation.WithInstances(instances))
	require.NoError(t, err)
	return pool, sim
}

func TestService_Start_ExitsOnTermination(t *testing.T) {
	original := clock.SleepFunc
	clock.SleepFunc = func(ctx context.Context, d time.Duration) {}
	t.Cleanup(func() { clock.SleepFunc = original })

	_, sim := newSimulation(t, model.Counts{model.RoleTank: 2, model.RoleHealer: 2, model.RoleDPS: 6}, 2)
	watcher, err := New(sim, Config{PollInterval: 2 * time.Millisecond})
	require.NoError(t, err)

	require.NoError(t, sim.Start(context.Background()))
	sim.Wait()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Start(context.Background())
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not observe termination")
	}

	snapshot := watcher.Snapshot()
	assert.True(t, snapshot.Terminal)
	assert.True(t, snapshot.AllIdle())
}

func TestService_OnChange(t *testing.T) {
	// Workers never start, so the pool stays non-terminal and the monitor
	// keeps polling until Shutdown.
	_, sim := newSimulation(t, model.Counts{model.RoleTank: 5, model.RoleHealer: 5, model.RoleDPS: 15}, 1)
	watcher, err := New(sim, Config{PollInterval: 2 * time.Millisecond})
	require.NoError(t, err)

	var mu sync.Mutex
	var observed []Snapshot
	watcher.OnChange(func(snapshot Snapshot) {
		mu.Lock()
		observed = append(observed, snapshot)
		mu.Unlock()
	})

	done := make(chan error, 1)
	go func() {
		done <- watcher.Start(context.Background())
	}()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(observed) >= 3
	}, 2*time.Second, time.Millisecond)

	watcher.Shutdown()
	// Shutdown is idempotent.
	watcher.Shutdown()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, observed)
	first := observed[0]
	assert.False(t, first.Terminal)
	assert.Len(t, first.Instances, 1)
	assert.Equal(t, 5, first.Remaining[model.RoleTank])
	assert.False(t, first.At.IsZero())
}

func TestService_Start_ContextCancelled(t *testing.T) {
	_, sim := newSimulation(t, model.Counts{model.RoleTank: 5, model.RoleHealer: 5, model.RoleDPS: 15}, 1)
	watcher, err := New(sim, Config{PollInterval: 2 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watcher.Start(ctx)
	}()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor ignored cancellation")
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(nil, DefaultConfig())
	assert.Error(t, err)

	_, sim := newSimulation(t, model.Counts{}, 1)
	watcher, err := New(sim, Config{})
	require.NoError(t, err)
	assert.Equal(t, time.Second, watcher.config.PollInterval)
}
