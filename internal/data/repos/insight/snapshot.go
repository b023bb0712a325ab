package insight

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/dbctx"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

// SnapshotRepo is the append-only row store behind the snapshot service.
// Rows are inserted with a server-assigned expiration and never updated.
type SnapshotRepo interface {
	Insert(dbc dbctx.Context, row *types.InsightSnapshot) error
	LatestByType(dbc dbctx.Context, userID uuid.UUID, snapType string, now time.Time) (*types.InsightSnapshot, error)
	LatestPerType(dbc dbctx.Context, userID uuid.UUID, typePrefix string, now time.Time) ([]*types.InsightSnapshot, error)
	History(dbc dbctx.Context, userID uuid.UUID, snapType string, limit int, now time.Time) ([]*types.InsightSnapshot, error)
	LatestByTypePrefix(dbc dbctx.Context, userID uuid.UUID, typePrefix string) (*types.InsightSnapshot, error)
	DeleteByUser(dbc dbctx.Context, userID uuid.UUID, typePrefix string) error
}

type snapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) SnapshotRepo {
	return &snapshotRepo{db: db, log: baseLog.With("repo", "SnapshotRepo")}
}

func (r *snapshotRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *snapshotRepo) Insert(dbc dbctx.Context, row *types.InsightSnapshot) error {
	if row == nil || row.UserID == uuid.Nil || row.Type == "" {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return r.tx(dbc).WithContext(dbc.Ctx).Create(row).Error
}

func (r *snapshotRepo) LatestByType(dbc dbctx.Context, userID uuid.UUID, snapType string, now time.Time) (*types.InsightSnapshot, error) {
	if userID == uuid.Nil || snapType == "" {
		return nil, nil
	}
	var out types.InsightSnapshot
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ? AND type = ? AND expires_at > ?", userID, snapType, now).
		Order("created_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

// LatestPerType returns the newest non-expired row for each type the user
// has, scoped to the pattern family by prefix.
func (r *snapshotRepo) LatestPerType(dbc dbctx.Context, userID uuid.UUID, typePrefix string, now time.Time) ([]*types.InsightSnapshot, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []*types.InsightSnapshot
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ? AND type LIKE ? AND expires_at > ?", userID, typePrefix+"%", now).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(rows))
	out := make([]*types.InsightSnapshot, 0, len(rows))
	for _, row := range rows {
		if seen[row.Type] {
			continue
		}
		seen[row.Type] = true
		out = append(out, row)
	}
	return out, nil
}

func (r *snapshotRepo) History(dbc dbctx.Context, userID uuid.UUID, snapType string, limit int, now time.Time) ([]*types.InsightSnapshot, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	q := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ? AND expires_at > ?", userID, now)
	if snapType != "" {
		q = q.Where("type = ?", snapType)
	} else {
		q = q.Where("type LIKE ?", types.SnapshotTypePrefix+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []*types.InsightSnapshot
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LatestByTypePrefix ignores expiration: the refresh cooldown cares about
// when generation last ran, not whether its result is still servable.
func (r *snapshotRepo) LatestByTypePrefix(dbc dbctx.Context, userID uuid.UUID, typePrefix string) (*types.InsightSnapshot, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var out types.InsightSnapshot
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ? AND type LIKE ?", userID, typePrefix+"%").
		Order("created_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *snapshotRepo) DeleteByUser(dbc dbctx.Context, userID uuid.UUID, typePrefix string) error {
	if userID == uuid.Nil {
		return nil
	}
	return r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ? AND type LIKE ?", userID, typePrefix+"%").
		Delete(&types.InsightSnapshot{}).Error
}
