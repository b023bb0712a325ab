package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moonveil/arcana-backend/internal/cosmic/detect"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

// PatternService is the exposed detection API: one entry point HTTP
// routes call into.
type PatternService interface {
	DetectPatterns(ctx context.Context, userID uuid.UUID, opts detect.Options) (*detect.Result, error)
}

type patternService struct {
	orch      *detect.Orchestrator
	snapshots SnapshotService
	log       *logger.Logger
}

func NewPatternService(orch *detect.Orchestrator, snapshots SnapshotService, baseLog *logger.Logger) PatternService {
	return &patternService{
		orch:      orch,
		snapshots: snapshots,
		log:       baseLog.With("service", "PatternService"),
	}
}

func (s *patternService) DetectPatterns(ctx context.Context, userID uuid.UUID, opts detect.Options) (*detect.Result, error) {
	res, err := s.orch.DetectPatterns(ctx, userID, opts)
	if err != nil {
		s.log.Error("Detection run failed", "user_id", userID, "error", err)
		return nil, err
	}
	s.log.Debug("Detection run complete",
		"user_id", userID,
		"patterns", len(res.Patterns),
		"candidates", res.Meta.TotalCandidates,
	)
	s.persistTopPattern(ctx, userID, res)
	return res, nil
}

// persistTopPattern records the strongest finding of a run as a pattern
// snapshot. Best effort: a store failure never fails the detection
// response the user is waiting on.
func (s *patternService) persistTopPattern(ctx context.Context, userID uuid.UUID, res *detect.Result) {
	if s.snapshots == nil || len(res.Patterns) == 0 {
		return
	}
	top := res.Patterns[0]
	if top.Type == types.PatternInsufficientData {
		return
	}
	saved, err := s.snapshots.Save(ctx, userID, types.PatternSnapshot{
		Pattern:   top,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("Top pattern snapshot save failed", "user_id", userID, "type", top.Type, "error", err)
		return
	}
	if saved {
		s.log.Debug("Top pattern snapshot saved", "user_id", userID, "type", top.Type)
	}
}
