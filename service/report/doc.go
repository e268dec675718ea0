// Package report turns the terminal state of a simulation into the final
// per-instance summary and can persist it through the abstract file system.
// Rendering for terminals stays with the hosting application.
package report
