package dungeon

import (
	"fmt"

	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/service/meta/legacy"
)

// Config is a serialisable representation of the simulator configuration.
// It can be populated from YAML, the legacy six-integer format, environment
// expansion or override maps. The zero-value is not runnable – use
// DefaultConfig and adjust.
type Config struct {
	// Instances is the number of concurrent dungeon instances.
	Instances int `json:"instances" yaml:"instances"`

	// Queues holds the initial number of queued players per role.
	Queues QueuesConfig `json:"queues" yaml:"queues"`

	// Time bounds the simulated run duration in whole seconds.
	Time model.TimeBounds `json:"time" yaml:"time"`

	// MonitorIntervalMs is the live-status polling interval; 0 keeps the
	// one second default of the monitor service.
	MonitorIntervalMs int `json:"monitorIntervalMs" yaml:"monitorIntervalMs"`

	// Composition optionally overrides the party shape; empty means the
	// classic 1 tank / 1 healer / 3 dps.
	Composition map[string]int `json:"composition,omitempty" yaml:"composition,omitempty"`
}

// QueuesConfig holds the initial queue sizes.
type QueuesConfig struct {
	Tanks   int `json:"tanks" yaml:"tanks"`
	Healers int `json:"healers" yaml:"healers"`
	DPS     int `json:"dps" yaml:"dps"`
}

// Counts converts the configured queue sizes to the model representation.
func (q QueuesConfig) Counts() model.Counts {
	return model.Counts{
		model.RoleTank:   q.Tanks,
		model.RoleHealer: q.Healers,
		model.RoleDPS:    q.DPS,
	}
}

// DefaultConfig returns a Config with the defaults the simulator previously
// hard-coded: a single instance, empty queues and zero-length runs.
func DefaultConfig() *Config {
	return &Config{
		Instances:         1,
		Time:              model.TimeBounds{Min: 0, Max: 0},
		MonitorIntervalMs: 1000,
	}
}

// FromLegacy converts the classic six-integer input into a Config.
func FromLegacy(input *legacy.Input) *Config {
	cfg := DefaultConfig()
	cfg.Instances = input.Instances
	cfg.Queues = QueuesConfig{Tanks: input.Tanks, Healers: input.Healers, DPS: input.DPS}
	cfg.Time = model.TimeBounds{Min: input.MinTime, Max: input.MaxTime}
	return cfg
}

// PartyComposition resolves the configured party shape.
func (c *Config) PartyComposition() model.Composition {
	if len(c.Composition) == 0 {
		return model.DefaultComposition()
	}
	out := make(model.Composition, len(c.Composition))
	for role, required := range c.Composition {
		out[model.Role(role)] = required
	}
	return out
}

// Validate returns an error describing the first invalid setting or nil.
// Invalid configuration is a fatal startup error – nothing concurrent has
// been started by the time it is reported.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Instances <= 0 {
		return fmt.Errorf("instances must be > 0, got %d", c.Instances)
	}
	if err := c.Queues.Counts().Validate(); err != nil {
		return err
	}
	if err := c.Time.Validate(); err != nil {
		return err
	}
	if c.MonitorIntervalMs < 0 {
		return fmt.Errorf("monitorIntervalMs must be >= 0, got %d", c.MonitorIntervalMs)
	}
	return c.PartyComposition().Validate()
}
