// Package instance defines the per-slot worker record and its state machine
// constants. Records are owned by the simulation workers; every other
// component only ever sees snapshots taken under the roster lock.
package instance
