package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/dbctx"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

type JournalEntryRepo interface {
	RecentByUser(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.JournalEntry, error)
}

type journalEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	return &journalEntryRepo{db: db, log: baseLog.With("repo", "JournalEntryRepo")}
}

func (r *journalEntryRepo) RecentByUser(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.JournalEntry, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.JournalEntry
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
