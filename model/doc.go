// Package model defines the value types shared across the simulator: queue
// roles, party composition, remaining queue counts, run-time bounds and the
// final report. The types carry no synchronization – ownership and locking
// are decided by the services that hold them.
package model
