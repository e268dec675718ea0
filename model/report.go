package model

import "time"

// InstanceSummary captures the final statistics of a single instance slot.
type InstanceSummary struct {
	Slot          int     `json:"slot" yaml:"slot"`
	Active        bool    `json:"active" yaml:"active"`
	PartiesServed int     `json:"partiesServed" yaml:"partiesServed"`
	BusySeconds   float64 `json:"busySeconds" yaml:"busySeconds"`
}

// Report is the final outcome of a simulation run: per-instance statistics
// plus the remaining queue counts, which are expected to be terminal (at
// least one role is below its party requirement).
type Report struct {
	StartedAt    time.Time         `json:"startedAt" yaml:"startedAt"`
	FinishedAt   time.Time         `json:"finishedAt" yaml:"finishedAt"`
	Instances    []InstanceSummary `json:"instances" yaml:"instances"`
	Remaining    Counts            `json:"remaining" yaml:"remaining"`
	TotalParties int               `json:"totalParties" yaml:"totalParties"`
}

// TotalBusySeconds sums the busy time across all instances.
func (r *Report) TotalBusySeconds() float64 {
	total := 0.0
	for _, summary := range r.Instances {
		total += summary.BusySeconds
	}
	return total
}
