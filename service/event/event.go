package event

import (
	"time"

	"github.com/MezMezMezMez/P2/internal/clock"
)

// Lifecycle event types emitted by the simulation.
const (
	TypePartyFormed     = "partyFormed"
	TypeRunCompleted    = "runCompleted"
	TypeInstanceStopped = "instanceStopped"
)

type Context struct {
	RunID     string `json:"runID,omitempty"`
	Slot      int    `json:"slot"`
	EventType string `json:"eventType"`
}

type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
