package activity

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventTarot   EventKind = "tarot"
	EventJournal EventKind = "journal"
)

// RawEvent is the engine-facing view of one user activity record: a
// creation timestamp, free text, discrete entities (card names for tarot
// pulls) and tags. Constructed from the owning rows via RawEvent(); never
// persisted itself.
type RawEvent struct {
	ID        uuid.UUID   `json:"id"`
	Kind      EventKind   `json:"kind"`
	CreatedAt time.Time   `json:"created_at"`
	Content   string      `json:"content,omitempty"`
	Entities  []string    `json:"entities,omitempty"`
	Cards     []DrawnCard `json:"cards,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
	Mood      string      `json:"mood,omitempty"`
}

// Day truncates the creation timestamp to its UTC calendar day, the key
// cosmic context is looked up by.
func (e RawEvent) Day() time.Time {
	return e.CreatedAt.UTC().Truncate(24 * time.Hour)
}
