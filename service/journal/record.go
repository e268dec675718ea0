package journal

import "time"

// RunRecord captures one completed party run for the final report and for
// post-hoc inspection.
type RunRecord struct {
	ID         string        `json:"id"`
	PartyID    string        `json:"partyId"`
	Slot       int           `json:"slot"`
	Duration   time.Duration `json:"duration"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
}
