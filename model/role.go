package model

import "fmt"

// Role identifies one of the matchmaking queues.
type Role string

const (
	RoleTank   Role = "tank"
	RoleHealer Role = "healer"
	RoleDPS    Role = "dps"
)

// Roles lists all queue roles in display order.
var Roles = []Role{RoleTank, RoleHealer, RoleDPS}

// Composition defines how many players of each role make up a full party.
// It is configuration-level data rather than hard-coded arithmetic so that
// alternate party shapes can be exercised in tests.
type Composition map[Role]int

// DefaultComposition returns the classic five-player party shape: one tank,
// one healer and three damage dealers.
func DefaultComposition() Composition {
	return Composition{RoleTank: 1, RoleHealer: 1, RoleDPS: 3}
}

// Validate returns an error when the composition is empty or requires a
// non-positive number of players for any role.
func (c Composition) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("composition cannot be empty")
	}
	for role, required := range c {
		if required <= 0 {
			return fmt.Errorf("composition for role %q must be > 0, got %d", role, required)
		}
	}
	return nil
}

// Size returns the total number of players in one party.
func (c Composition) Size() int {
	total := 0
	for _, required := range c {
		total += required
	}
	return total
}

// Counts holds the number of players remaining in each role queue.
type Counts map[Role]int

// Clone returns an independent copy of the counts.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for role, count := range c {
		out[role] = count
	}
	return out
}

// Satisfies reports whether every role still has at least the number of
// players the composition requires.
func (c Counts) Satisfies(composition Composition) bool {
	for role, required := range composition {
		if c[role] < required {
			return false
		}
	}
	return true
}

// Withdraw removes one party worth of players. Callers must have verified
// Satisfies first; counts never go negative by construction.
func (c Counts) Withdraw(composition Composition) {
	for role, required := range composition {
		c[role] -= required
	}
}

// Validate returns an error when any queue holds a negative count.
func (c Counts) Validate() error {
	for role, count := range c {
		if count < 0 {
			return fmt.Errorf("queue for role %q cannot be negative, got %d", role, count)
		}
	}
	return nil
}
