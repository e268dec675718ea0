package idgen

import "github.com/google/uuid"

// NewFunc generates identifiers; replace in tests that need predictable IDs.
var NewFunc = func() string { return uuid.New().String() }

// New returns a fresh identifier for a party, run record or queue message.
func New() string { return NewFunc() }
