// Package roster owns the shared role queues and is the single
// synchronization hub of the simulator. Workers withdraw parties through
// Reserve, record run statistics through Record, and every other component
// reads pool and instance state through View under the same lock.
package roster
