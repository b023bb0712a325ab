package insight

import (
	"time"

	"github.com/google/uuid"
)

// InsightSnapshot is the persisted, append-only snapshot row. The blob is
// the encrypted envelope; nothing in this row exposes snapshot content.
// ID and CreatedAt are assigned by the repo on insert, so the schema
// carries no server-side defaults.
type InsightSnapshot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_snapshot_user_type" json:"user_id"`
	Type      string    `gorm:"column:type;not null;index:idx_snapshot_user_type" json:"type"`
	Blob      string    `gorm:"column:blob;type:text;not null" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (InsightSnapshot) TableName() string { return "insight_snapshots" }
