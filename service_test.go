package dungeon

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MezMezMezMez/P2/internal/clock"
	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/meta/legacy"
	"github.com/MezMezMezMez/P2/service/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func stubSleep(t *testing.T) {
	t.Helper()
	original := clock.SleepFunc
	clock.SleepFunc = func(ctx context.Context, d time.Duration) {}
	t.Cleanup(func() { clock.SleepFunc = original })
}

func TestService_Run(t *testing.T) {
	stubSleep(t)

	testCases := []struct {
		name          string
		config        *Config
		expectParties int
		expectBusy    float64
		remaining     model.Counts
	}{
		{
			name: "single instance serves one party",
			config: &Config{
				Instances: 1,
				Queues:    QueuesConfig{Tanks: 1, Healers: 1, DPS: 3},
			},
			expectParties: 1,
			expectBusy:    0,
			remaining:     model.Counts{model.RoleTank: 0, model.RoleHealer: 0, model.RoleDPS: 0},
		},
		{
			name: "two instances drain the queue",
			config: &Config{
				Instances: 2,
				Queues:    QueuesConfig{Tanks: 2, Healers: 2, DPS: 6},
				Time:      model.TimeBounds{Min: 1, Max: 1},
			},
			expectParties: 2,
			expectBusy:    2,
			remaining:     model.Counts{model.RoleTank: 0, model.RoleHealer: 0, model.RoleDPS: 0},
		},
		{
			name: "no tanks no parties",
			config: &Config{
				Instances: 3,
				Queues:    QueuesConfig{Tanks: 0, Healers: 5, DPS: 10},
				Time:      model.TimeBounds{Min: 1, Max: 2},
			},
			expectParties: 0,
			expectBusy:    0,
			remaining:     model.Counts{model.RoleTank: 0, model.RoleHealer: 5, model.RoleDPS: 10},
		},
		{
			name: "insufficient dps",
			config: &Config{
				Instances: 1,
				Queues:    QueuesConfig{Tanks: 1, Healers: 1, DPS: 2},
			},
			expectParties: 0,
			expectBusy:    0,
			remaining:     model.Counts{model.RoleTank: 1, model.RoleHealer: 1, model.RoleDPS: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv, err := New(WithConfig(tc.config), WithMonitorInterval(2*time.Millisecond))
			require.NoError(t, err)

			rt := srv.Runtime()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			report, err := rt.Run(ctx)
			require.NoError(t, err)
			require.NotNil(t, report)

			assert.Equal(t, tc.expectParties, report.TotalParties)
			assert.Equal(t, tc.expectBusy, report.TotalBusySeconds())
			assert.Equal(t, tc.remaining, report.Remaining)
			assert.True(t, rt.Terminal())
			require.Len(t, report.Instances, tc.config.Instances)

			records, err := rt.Runs(context.Background())
			require.NoError(t, err)
			assert.Len(t, records, tc.expectParties)
		})
	}
}

func TestService_Run_LargeQueue(t *testing.T) {
	stubSleep(t)

	// Far more parties than any event-queue buffer holds; the run must still
	// terminate because the default bus drains unobserved lifecycle events.
	srv, err := New(WithConfig(&Config{
		Instances: 2,
		Queues:    QueuesConfig{Tanks: 100, Healers: 100, DPS: 300},
	}), WithMonitorInterval(2*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	report, err := srv.Runtime().Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, report.TotalParties)
	assert.Equal(t, model.Counts{model.RoleTank: 0, model.RoleHealer: 0, model.RoleDPS: 0}, report.Remaining)

	records, err := srv.Runtime().Runs(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 100)
}

func TestService_Run_JournalSlotFilter(t *testing.T) {
	stubSleep(t)

	srv, err := New(WithConfig(&Config{
		Instances: 2,
		Queues:    QueuesConfig{Tanks: 4, Healers: 4, DPS: 12},
	}), WithMonitorInterval(2*time.Millisecond))
	require.NoError(t, err)

	rt := srv.Runtime()
	report, err := rt.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, report.TotalParties)

	total := 0
	for slot := 0; slot < 2; slot++ {
		records, err := rt.Runs(context.Background(), dao.NewParameter("Slot", slot))
		require.NoError(t, err)
		for _, record := range records {
			assert.Equal(t, slot, record.Slot)
		}
		total += len(records)
	}
	assert.Equal(t, 4, total)
}

func TestService_Run_OnStatus(t *testing.T) {
	// Real one-second runs keep the simulation alive long enough for the
	// monitor to publish at least one live snapshot.
	srv, err := New(WithConfig(&Config{
		Instances: 1,
		Queues:    QueuesConfig{Tanks: 1, Healers: 1, DPS: 3},
		Time:      model.TimeBounds{Min: 1, Max: 1},
	}), WithMonitorInterval(10*time.Millisecond))
	require.NoError(t, err)

	statuses := make(chan model.Counts, 100)
	rt := srv.Runtime()
	rt.OnStatus(func(snapshot monitor.Snapshot) {
		select {
		case statuses <- snapshot.Remaining:
		default:
		}
	})

	report, err := rt.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalParties)
	assert.NotEmpty(t, statuses)
}

func TestService_Shutdown(t *testing.T) {
	stubSleep(t)

	srv, err := New(WithConfig(&Config{
		Instances: 2,
		Queues:    QueuesConfig{Tanks: 1000, Healers: 1000, DPS: 3000},
	}), WithMonitorInterval(2*time.Millisecond))
	require.NoError(t, err)

	rt := srv.Runtime()
	require.NoError(t, rt.Start(context.Background()))
	require.NoError(t, rt.Shutdown(context.Background()))

	report, err := rt.Wait(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)
}

func TestNew_InvalidConfig(t *testing.T) {
	testCases := []struct {
		name   string
		config *Config
	}{
		{name: "zero instances", config: &Config{Instances: 0}},
		{name: "negative queue", config: &Config{Instances: 1, Queues: QueuesConfig{Tanks: -1}}},
		{name: "min above max", config: &Config{Instances: 1, Time: model.TimeBounds{Min: 3, Max: 1}}},
		{name: "max above limit", config: &Config{Instances: 1, Time: model.TimeBounds{Min: 0, Max: 16}}},
		{name: "negative monitor interval", config: &Config{Instances: 1, MonitorIntervalMs: -1}},
		{name: "invalid composition", config: &Config{Instances: 1, Composition: map[string]int{"tank": 0}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(WithConfig(tc.config))
			assert.Error(t, err)
		})
	}
}

func TestNew_ConfigOverrides(t *testing.T) {
	srv, err := New(
		WithConfig(&Config{Instances: 1, Queues: QueuesConfig{Tanks: 1, Healers: 1, DPS: 3}}),
		WithConfigOverrides(map[string]interface{}{"Instances": 4}))
	require.NoError(t, err)
	assert.Equal(t, 4, srv.Config().Instances)
}

func TestLoadConfig_Legacy(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	URL := fmt.Sprintf("mem://localhost/config-test-%d/input.txt", time.Now().UnixNano())
	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode,
		bytes.NewReader([]byte("3 10 10 30 1 5\n"))))

	cfg, err := LoadConfig(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Instances)
	assert.Equal(t, QueuesConfig{Tanks: 10, Healers: 10, DPS: 30}, cfg.Queues)
	assert.Equal(t, model.TimeBounds{Min: 1, Max: 5}, cfg.Time)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAML(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	URL := fmt.Sprintf("mem://localhost/config-test-%d/config.yaml", time.Now().UnixNano())
	content := []byte(`
instances: 2
queues:
  tanks: 5
  healers: 5
  dps: 15
time:
  min: 1
  max: 3
`)
	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(content)))

	cfg, err := LoadConfig(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Instances)
	assert.Equal(t, 15, cfg.Queues.DPS)
	assert.Equal(t, model.TimeBounds{Min: 1, Max: 3}, cfg.Time)
	// Defaults survive partial documents.
	assert.Equal(t, 1000, cfg.MonitorIntervalMs)
}

func TestLoadConfig_InvalidLegacy(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	URL := fmt.Sprintf("mem://localhost/config-test-%d/broken.txt", time.Now().UnixNano())
	require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode,
		bytes.NewReader([]byte("1 2 three\n"))))

	_, err := LoadConfig(ctx, URL)
	assert.Error(t, err)
}

func TestConfig_FromLegacy(t *testing.T) {
	cfg := FromLegacy(&legacy.Input{Instances: 2, Tanks: 3, Healers: 4, DPS: 9, MinTime: 1, MaxTime: 2})
	assert.Equal(t, 2, cfg.Instances)
	assert.Equal(t, QueuesConfig{Tanks: 3, Healers: 4, DPS: 9}, cfg.Queues)
	assert.Equal(t, model.TimeBounds{Min: 1, Max: 2}, cfg.Time)
}

func TestConfig_PartyComposition(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, model.DefaultComposition(), cfg.PartyComposition())

	cfg.Composition = map[string]int{"tank": 2, "dps": 8}
	composition := cfg.PartyComposition()
	assert.Equal(t, 2, composition[model.RoleTank])
	assert.Equal(t, 8, composition[model.RoleDPS])
}
