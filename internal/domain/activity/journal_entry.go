package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EntryKindJournal = "journal"
	EntryKindDream   = "dream"
	EntryKindRitual  = "ritual"
)

// JournalEntry is one free-text entry (journal, dream log, or ritual note).
// Owned by the activity subsystem; read-only to the insight engine.
type JournalEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      string         `gorm:"column:kind;not null;default:'journal'" json:"kind"`
	Title     string         `gorm:"column:title" json:"title"`
	Content   string         `gorm:"column:content;type:text;not null" json:"content"`
	Tags      datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags"`
	Mood      *string        `gorm:"column:mood" json:"mood,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (JournalEntry) TableName() string { return "journal_entries" }

// RawEvent flattens the entry into the shape the insight engine consumes.
func (e *JournalEntry) RawEvent() RawEvent {
	mood := ""
	if e.Mood != nil {
		mood = *e.Mood
	}
	return RawEvent{
		ID:        e.ID,
		Kind:      EventJournal,
		CreatedAt: e.CreatedAt,
		Content:   e.Content,
		Tags:      decodeTags(e.Tags),
		Mood:      mood,
	}
}
