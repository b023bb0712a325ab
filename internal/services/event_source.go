package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moonveil/arcana-backend/internal/cosmic/detect"
	activityrepos "github.com/moonveil/arcana-backend/internal/data/repos/activity"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/dbctx"
)

// activityEventSource adapts the activity repos to the orchestrator's
// event source contract, flattening rows into raw events.
type activityEventSource struct {
	pulls   activityrepos.TarotPullRepo
	entries activityrepos.JournalEntryRepo
}

func NewActivityEventSource(pulls activityrepos.TarotPullRepo, entries activityrepos.JournalEntryRepo) detect.EventSource {
	return &activityEventSource{pulls: pulls, entries: entries}
}

func (s *activityEventSource) RecentTarotEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.RawEvent, error) {
	rows, err := s.pulls.RecentByUser(dbctx.Context{Ctx: ctx}, userID, since)
	if err != nil {
		return nil, err
	}
	out := make([]types.RawEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.RawEvent())
	}
	return out, nil
}

func (s *activityEventSource) RecentJournalEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.RawEvent, error) {
	rows, err := s.entries.RecentByUser(dbctx.Context{Ctx: ctx}, userID, since)
	if err != nil {
		return nil, err
	}
	out := make([]types.RawEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.RawEvent())
	}
	return out, nil
}
