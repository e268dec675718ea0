package dao

import "errors"

// Sentinel errors shared by every store implementation. Callers detect them
// with errors.Is instead of matching message text.
var (
	// ErrNotFound is returned when no record exists under the requested key.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates an empty or otherwise unusable record key.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when a nil record is passed to Save.
	ErrNilEntity = errors.New("dao: nil entity")
)
