package cosmos

import (
	"context"
	"time"

	"gorm.io/gorm"

	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/dbctx"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

type DailyContextRepo interface {
	ByDate(dbc dbctx.Context, day time.Time) (*types.DailyContext, error)

	// ContextForDate satisfies enrich.ContextProvider: decoded context
	// plus an existence flag. Absence is not an error.
	ContextForDate(ctx context.Context, day time.Time) (types.CosmicContext, bool, error)
}

type dailyContextRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyContextRepo(db *gorm.DB, baseLog *logger.Logger) DailyContextRepo {
	return &dailyContextRepo{db: db, log: baseLog.With("repo", "DailyContextRepo")}
}

func (r *dailyContextRepo) ByDate(dbc dbctx.Context, day time.Time) (*types.DailyContext, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out types.DailyContext
	if err := t.WithContext(dbc.Ctx).First(&out, "date = ?", day.UTC().Truncate(24*time.Hour)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *dailyContextRepo) ContextForDate(ctx context.Context, day time.Time) (types.CosmicContext, bool, error) {
	row, err := r.ByDate(dbctx.Context{Ctx: ctx}, day)
	if err != nil {
		return types.CosmicContext{}, false, err
	}
	if row == nil {
		return types.CosmicContext{}, false, nil
	}
	cc, err := row.Context()
	if err != nil {
		// A malformed row is treated like an absent day; the importer owns
		// fixing it.
		r.log.Warn("Undecodable cosmic context row", "date", day.Format("2006-01-02"), "error", err)
		return types.CosmicContext{}, false, nil
	}
	return cc, true, nil
}
