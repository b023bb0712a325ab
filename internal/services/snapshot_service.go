package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/cosmic/detect"
	"github.com/moonveil/arcana-backend/internal/cosmic/snapshot"
	insightrepos "github.com/moonveil/arcana-backend/internal/data/repos/insight"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/dbctx"
	errs "github.com/moonveil/arcana-backend/internal/pkg/errors"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

const defaultHistoryLimit = 20

// SnapshotService is the exposed snapshot API: change-gated persistence
// over encrypted rows, plus the higher-level summary generators.
type SnapshotService interface {
	// Save persists the snapshot unless it is not a meaningful change
	// from the stored one. Returns whether a row was written.
	Save(ctx context.Context, userID uuid.UUID, snap types.Snapshot) (bool, error)
	History(ctx context.Context, userID uuid.UUID, snapType string, limit int) ([]types.Snapshot, error)
	Current(ctx context.Context, userID uuid.UUID) (map[string]types.Snapshot, error)
	ShouldGenerate(ctx context.Context, userID uuid.UUID, snapType string) (bool, error)
	// CanRefresh is advisory rate limiting: false means "do not run
	// generation now", nothing is locked.
	CanRefresh(ctx context.Context, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, userID uuid.UUID) error

	GenerateLifeTheme(ctx context.Context, userID uuid.UUID) (*types.LifeThemeSnapshot, error)
	GenerateTarotSeason(ctx context.Context, userID uuid.UUID) (*types.TarotSeasonSnapshot, error)
	GenerateArchetype(ctx context.Context, userID uuid.UUID) (*types.ArchetypeSnapshot, error)
}

type snapshotService struct {
	cfg    *cosmic.Config
	repo   insightrepos.SnapshotRepo
	crypto CryptoService
	source detect.EventSource
	log    *logger.Logger
	now    func() time.Time
}

func NewSnapshotService(cfg *cosmic.Config, repo insightrepos.SnapshotRepo, crypto CryptoService, source detect.EventSource, baseLog *logger.Logger) SnapshotService {
	return &snapshotService{
		cfg:    cfg,
		repo:   repo,
		crypto: crypto,
		source: source,
		log:    baseLog.With("service", "SnapshotService"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *snapshotService) Save(ctx context.Context, userID uuid.UUID, snap types.Snapshot) (bool, error) {
	if snap == nil {
		return false, errs.ErrInvalidArgument
	}
	now := s.now()
	dbc := dbctx.Context{Ctx: ctx}

	var prev types.Snapshot
	if row, err := s.repo.LatestByType(dbc, userID, snap.SnapshotType(), now); err != nil {
		return false, fmt.Errorf("load previous snapshot: %w", err)
	} else if row != nil {
		decoded, err := s.decodeRow(row)
		if err != nil {
			// An unreadable previous snapshot cannot veto a write.
			s.log.Warn("Previous snapshot undecryptable, treating as changed",
				"user_id", userID, "type", snap.SnapshotType(), "error", err)
		} else {
			prev = decoded
		}
	}

	if !snapshot.HasChanged(prev, snap) {
		s.log.Debug("Snapshot unchanged, skipping write", "user_id", userID, "type", snap.SnapshotType())
		return false, nil
	}

	env, err := types.EncodeSnapshot(snap)
	if err != nil {
		return false, err
	}
	blob, err := s.crypto.Encrypt(env)
	if err != nil {
		return false, fmt.Errorf("encrypt snapshot: %w", err)
	}
	row := &types.InsightSnapshot{
		UserID:    userID,
		Type:      snap.SnapshotType(),
		Blob:      blob,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SnapshotRetention),
	}
	if err := s.repo.Insert(dbc, row); err != nil {
		return false, fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return true, nil
}

func (s *snapshotService) History(ctx context.Context, userID uuid.UUID, snapType string, limit int) ([]types.Snapshot, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.repo.History(dbctx.Context{Ctx: ctx}, userID, snapType, limit, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]types.Snapshot, 0, len(rows))
	for _, row := range rows {
		decoded, err := s.decodeRow(row)
		if err != nil {
			s.log.Warn("Skipping undecryptable snapshot row", "row_id", row.ID, "type", row.Type, "error", err)
			continue
		}
		out = append(out, decoded)
	}
	return out, nil
}

func (s *snapshotService) Current(ctx context.Context, userID uuid.UUID) (map[string]types.Snapshot, error) {
	rows, err := s.repo.LatestPerType(dbctx.Context{Ctx: ctx}, userID, types.SnapshotTypePrefix, s.now())
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.Snapshot, len(rows))
	for _, row := range rows {
		decoded, err := s.decodeRow(row)
		if err != nil {
			s.log.Warn("Skipping undecryptable snapshot row", "row_id", row.ID, "type", row.Type, "error", err)
			continue
		}
		out[row.Type] = decoded
	}
	return out, nil
}

func (s *snapshotService) ShouldGenerate(ctx context.Context, userID uuid.UUID, snapType string) (bool, error) {
	// Zero "now" disables the expiry filter: regeneration cadence cares
	// about the last write of this type, expired or not.
	row, err := s.repo.LatestByType(dbctx.Context{Ctx: ctx}, userID, snapType, time.Time{})
	if err != nil {
		return false, err
	}
	if row == nil {
		return true, nil
	}
	return s.now().Sub(row.CreatedAt) > s.cfg.RegenerateAfter, nil
}

func (s *snapshotService) CanRefresh(ctx context.Context, userID uuid.UUID) (bool, error) {
	row, err := s.repo.LatestByTypePrefix(dbctx.Context{Ctx: ctx}, userID, types.SnapshotTypePrefix)
	if err != nil {
		return false, err
	}
	if row == nil {
		return true, nil
	}
	return s.now().Sub(row.CreatedAt) > s.cfg.RefreshCooldown, nil
}

func (s *snapshotService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteByUser(dbctx.Context{Ctx: ctx}, userID, types.SnapshotTypePrefix)
}

func (s *snapshotService) decodeRow(row *types.InsightSnapshot) (types.Snapshot, error) {
	var env types.SnapshotEnvelope
	if err := s.crypto.Decrypt(row.Blob, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDecryptFailed, err)
	}
	return types.DecodeSnapshot(env)
}

// ---- generators ----

func (s *snapshotService) GenerateLifeTheme(ctx context.Context, userID uuid.UUID) (*types.LifeThemeSnapshot, error) {
	now := s.now()
	events, err := s.source.RecentJournalEvents(ctx, userID, now.AddDate(0, 0, -s.cfg.DefaultDaysBack))
	if err != nil {
		return nil, err
	}
	if len(events) < s.cfg.MinJournalEvents {
		return nil, nil
	}

	counts := make(map[string]int)
	for _, ev := range events {
		for _, theme := range matchThemes(ev) {
			counts[theme]++
		}
	}
	theme, best := dominantKey(counts)
	if theme == "" {
		return nil, nil
	}
	return &types.LifeThemeSnapshot{
		DominantTheme:   theme,
		Strength:        float64(best) / float64(len(events)),
		ThemeCounts:     counts,
		EntriesAnalyzed: len(events),
		Window:          rawWindow(events),
		Timestamp:       now,
	}, nil
}

func (s *snapshotService) GenerateTarotSeason(ctx context.Context, userID uuid.UUID) (*types.TarotSeasonSnapshot, error) {
	now := s.now()
	events, err := s.source.RecentTarotEvents(ctx, userID, now.AddDate(0, 0, -s.cfg.DefaultDaysBack))
	if err != nil {
		return nil, err
	}
	if len(events) < s.cfg.MinTarotEvents {
		return nil, nil
	}

	counts := make(map[string]int)
	total := 0
	for _, ev := range events {
		for _, card := range ev.Cards {
			if card.Suit == "" {
				continue
			}
			counts[card.Suit]++
			total++
		}
	}
	suit, best := dominantKey(counts)
	if suit == "" {
		return nil, nil
	}
	return &types.TarotSeasonSnapshot{
		DominantSuit:  suit,
		Percentage:    float64(best) / float64(total) * 100,
		SuitCounts:    counts,
		CardsAnalyzed: total,
		Window:        rawWindow(events),
		Timestamp:     now,
	}, nil
}

func (s *snapshotService) GenerateArchetype(ctx context.Context, userID uuid.UUID) (*types.ArchetypeSnapshot, error) {
	now := s.now()
	events, err := s.source.RecentTarotEvents(ctx, userID, now.AddDate(0, 0, -s.cfg.DefaultDaysBack))
	if err != nil {
		return nil, err
	}
	if len(events) < s.cfg.MinTarotEvents {
		return nil, nil
	}

	counts := make(map[string]int)
	total := 0
	for _, ev := range events {
		for _, card := range ev.Cards {
			archetype, ok := cardArchetype(card)
			if !ok {
				continue
			}
			counts[archetype]++
			total++
		}
	}
	archetype, best := dominantKey(counts)
	if archetype == "" {
		return nil, nil
	}
	return &types.ArchetypeSnapshot{
		DominantArchetype: archetype,
		Share:             float64(best) / float64(total),
		ArchetypeCounts:   counts,
		CardsAnalyzed:     total,
		Window:            rawWindow(events),
		Timestamp:         now,
	}, nil
}

// dominantKey picks the highest count, breaking ties alphabetically so
// generation is deterministic.
func dominantKey(counts map[string]int) (string, int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	bestKey, best := "", 0
	for _, k := range keys {
		if counts[k] > best {
			bestKey, best = k, counts[k]
		}
	}
	return bestKey, best
}

func rawWindow(events []types.RawEvent) types.TimeWindow {
	if len(events) == 0 {
		return types.TimeWindow{}
	}
	start, end := events[0].CreatedAt, events[0].CreatedAt
	for _, ev := range events[1:] {
		if ev.CreatedAt.Before(start) {
			start = ev.CreatedAt
		}
		if ev.CreatedAt.After(end) {
			end = ev.CreatedAt
		}
	}
	return types.TimeWindow{
		StartDate:    start,
		EndDate:      end,
		DaysAnalyzed: int(end.Sub(start).Hours()/24) + 1,
	}
}
