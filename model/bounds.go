package model

import (
	"fmt"
	"time"
)

// MaxRunSeconds is the upper sanity bound for a single simulated run.
const MaxRunSeconds = 15

// TimeBounds describes the inclusive interval, in whole seconds, from which
// every simulated run duration is drawn uniformly.
type TimeBounds struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Validate checks 0 <= Min <= Max <= MaxRunSeconds.
func (b TimeBounds) Validate() error {
	if b.Min < 0 {
		return fmt.Errorf("min run time must be >= 0, got %d", b.Min)
	}
	if b.Min > b.Max {
		return fmt.Errorf("min run time %d exceeds max run time %d", b.Min, b.Max)
	}
	if b.Max > MaxRunSeconds {
		return fmt.Errorf("max run time must be <= %d, got %d", MaxRunSeconds, b.Max)
	}
	return nil
}

// Span returns the width of the interval in seconds, inclusive.
func (b TimeBounds) Span() int {
	return b.Max - b.Min + 1
}

// Duration converts a sampled number of seconds to a time.Duration.
func (b TimeBounds) Duration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
