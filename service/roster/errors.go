package roster

import "errors"

var (
	// ErrExhausted is returned by Reserve once no full party can ever form
	// again. It is permanent – callers must stop requesting parties.
	ErrExhausted = errors.New("roster: exhausted")

	// ErrClosed is returned by Reserve after Close has been called.
	ErrClosed = errors.New("roster: closed")
)
