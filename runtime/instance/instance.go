package instance

import "time"

// State represents the current State of an instance worker.
type State string

const (
	StateIdle      State = "idle"
	StateReserving State = "reserving"
	StateRunning   State = "running"
	StateStopped   State = "stopped"
)

// IsStopped reports whether the worker has permanently left its loop.
func (s State) IsStopped() bool {
	return s == StateStopped
}

// Instance is one dungeon slot served by a dedicated worker. All mutable
// fields are written only by the owning worker and only while the roster
// lock is held, so readers that take the same lock always observe a
// consistent record – the type carries no mutex of its own.
type Instance struct {
	Slot          int
	State         State
	Active        bool
	PartiesServed int
	TotalBusy     time.Duration
}

// Snapshot is a copy of an instance record safe to use outside the roster
// critical section.
type Snapshot struct {
	Slot          int           `json:"slot"`
	State         State         `json:"state"`
	Active        bool          `json:"active"`
	PartiesServed int           `json:"partiesServed"`
	TotalBusy     time.Duration `json:"totalBusy"`
}

// Snapshot copies the record. Callers must hold the roster lock.
func (i *Instance) Snapshot() Snapshot {
	return Snapshot{
		Slot:          i.Slot,
		State:         i.State,
		Active:        i.Active,
		PartiesServed: i.PartiesServed,
		TotalBusy:     i.TotalBusy,
	}
}

// New creates an idle instance for the supplied slot.
func New(slot int) *Instance {
	return &Instance{Slot: slot, State: StateIdle}
}
