package activity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TarotPull is one recorded draw. Owned by the activity subsystem; the
// insight engine only ever reads these rows.
type TarotPull struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	SpreadType string         `gorm:"column:spread_type;not null" json:"spread_type"`
	Question   string         `gorm:"column:question;type:text" json:"question"`
	Cards      datatypes.JSON `gorm:"type:jsonb;column:cards;not null" json:"cards"`
	Notes      string         `gorm:"column:notes;type:text" json:"notes"`
	Tags       datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags"`
	CreatedAt  time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TarotPull) TableName() string { return "tarot_pulls" }

// DrawnCard is one card within a pull's jsonb payload.
type DrawnCard struct {
	Name      string `json:"name"`
	Suit      string `json:"suit"`
	Arcana    string `json:"arcana"`
	Position  string `json:"position,omitempty"`
	Reversed  bool   `json:"reversed,omitempty"`
}

// DrawnCards decodes the jsonb card list. A malformed payload yields an
// empty slice rather than an error; a pull with no readable cards simply
// contributes nothing to analysis.
func (p *TarotPull) DrawnCards() []DrawnCard {
	if len(p.Cards) == 0 {
		return nil
	}
	var cards []DrawnCard
	if err := json.Unmarshal(p.Cards, &cards); err != nil {
		return nil
	}
	return cards
}

// RawEvent flattens the pull into the shape the insight engine consumes.
func (p *TarotPull) RawEvent() RawEvent {
	cards := p.DrawnCards()
	entities := make([]string, 0, len(cards))
	for _, c := range cards {
		entities = append(entities, c.Name)
	}
	return RawEvent{
		ID:        p.ID,
		Kind:      EventTarot,
		CreatedAt: p.CreatedAt,
		Content:   p.Notes,
		Entities:  entities,
		Cards:     cards,
		Tags:      decodeTags(p.Tags),
	}
}

func decodeTags(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}
