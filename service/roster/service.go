package roster

import (
	"context"
	"fmt"
	"sync"

	"github.com/MezMezMezMez/P2/model"
)

// Service guards the role queues with a single mutex and condition variable.
// The counts are the sole source of truth for "can a party still form"; they
// only ever decrease, so the terminal predicate is monotone – once true it
// stays true.
type Service struct {
	mu          sync.Mutex
	cond        *sync.Cond
	composition model.Composition
	counts      model.Counts
	closed      bool
}

// New creates a roster from a party composition and initial queue counts.
func New(composition model.Composition, counts model.Counts) (*Service, error) {
	if err := composition.Validate(); err != nil {
		return nil, fmt.Errorf("invalid composition: %w", err)
	}
	if err := counts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid counts: %w", err)
	}
	normalized := make(model.Counts, len(composition))
	for role := range composition {
		normalized[role] = counts[role]
	}
	s := &Service{
		composition: composition,
		counts:      normalized,
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Reserve blocks until either a full party can be withdrawn or no party can
// ever form again. On success it decrements all role queues as one atomic
// unit and invokes onGrant inside the same critical section, so the caller
// can flip its instance to active consistently with the pool state.
//
// The wait predicate is re-evaluated after every wake-up; a wake event alone
// is never trusted. Reserve returns ErrExhausted (permanent) once the pool
// is terminal, and ErrClosed after Close.
func (s *Service) Reserve(ctx context.Context, onGrant func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// Wait until a party can form or the pool is terminal. With monotone
	// counts the two cover every state, but the wait-and-recheck loop is the
	// contract: a wake event alone is never trusted.
	for !s.closed && !s.counts.Satisfies(s.composition) && !s.terminal() {
		s.cond.Wait()
	}
	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.counts.Satisfies(s.composition) {
		// Other workers may be parked waiting on the terminal condition;
		// wake them all before giving up.
		s.cond.Broadcast()
		return ErrExhausted
	}

	s.counts.Withdraw(s.composition)
	if onGrant != nil {
		onGrant()
	}
	if s.terminal() {
		// This withdrawal made the pool terminal; propagate promptly so
		// parked workers do not depend on a later completion notify.
		s.cond.Broadcast()
	}
	return nil
}

// Record re-acquires the pool lock, runs the supplied statistics update and
// signals one waiting worker. Workers call it once per completed run; a
// completion frees at most one party's worth of capacity.
func (s *Service) Record(update func()) {
	s.mu.Lock()
	if update != nil {
		update()
	}
	s.cond.Signal()
	s.mu.Unlock()
}

// Update runs fn under the pool lock without notifying waiters. Workers use
// it for instance-record transitions that do not change the queue counts.
func (s *Service) Update(fn func()) {
	s.mu.Lock()
	if fn != nil {
		fn()
	}
	s.mu.Unlock()
}

// View runs fn under the pool lock with a read-only copy of the remaining
// counts. Observers use it to take consistent snapshots of pool plus
// instance state without racing worker updates.
func (s *Service) View(fn func(counts model.Counts, terminal bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.counts.Clone(), s.terminal())
}

// Terminal reports whether no future party can ever form.
func (s *Service) Terminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal()
}

// Counts returns a copy of the remaining queue counts.
func (s *Service) Counts() model.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts.Clone()
}

// Composition returns the party shape this roster forms.
func (s *Service) Composition() model.Composition {
	return s.composition
}

// Close permanently unblocks all waiters; subsequent Reserve calls return
// ErrClosed. It never mutates the counts.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// terminal must be called with the lock held.
func (s *Service) terminal() bool {
	return !s.counts.Satisfies(s.composition)
}
