package model

// Party represents one group of players withdrawn atomically from the role
// queues to occupy a single instance for one run.
type Party struct {
	ID      string      `json:"id"`
	Slot    int         `json:"slot"`
	Members Composition `json:"members"`
}
