package activity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/dbctx"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

type TarotPullRepo interface {
	RecentByUser(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.TarotPull, error)
}

type tarotPullRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTarotPullRepo(db *gorm.DB, baseLog *logger.Logger) TarotPullRepo {
	return &tarotPullRepo{db: db, log: baseLog.With("repo", "TarotPullRepo")}
}

func (r *tarotPullRepo) RecentByUser(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.TarotPull, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.TarotPull
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
