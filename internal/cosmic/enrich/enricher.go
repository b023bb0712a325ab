// Package enrich joins raw activity with the per-day cosmic context
// observed on each event's date.
package enrich

import (
	"context"
	"time"

	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

// ContextProvider looks up the published context for a calendar day.
// Absence is a valid outcome, not an error: days before the importer's
// horizon simply have no context.
type ContextProvider interface {
	ContextForDate(ctx context.Context, day time.Time) (types.CosmicContext, bool, error)
}

type Enricher struct {
	provider ContextProvider
	log      *logger.Logger
}

func NewEnricher(provider ContextProvider, baseLog *logger.Logger) *Enricher {
	return &Enricher{provider: provider, log: baseLog.With("service", "Enricher")}
}

// Enrich pairs each event with the context for its day, dropping events
// whose day has none. Lookups are deduplicated per day within a run. A
// provider error aborts enrichment; missing context never does.
func (e *Enricher) Enrich(ctx context.Context, events []types.RawEvent) ([]types.EnrichedEvent, error) {
	if len(events) == 0 {
		return nil, nil
	}

	byDay := make(map[time.Time]*types.CosmicContext)
	enriched := make([]types.EnrichedEvent, 0, len(events))
	dropped := 0

	for _, ev := range events {
		day := ev.Day()
		cached, seen := byDay[day]
		if !seen {
			cc, ok, err := e.provider.ContextForDate(ctx, day)
			if err != nil {
				return nil, err
			}
			if ok && !cc.Empty() {
				cached = &cc
			}
			byDay[day] = cached
		}
		if cached == nil {
			dropped++
			continue
		}
		enriched = append(enriched, types.EnrichedEvent{Event: ev, Context: *cached})
	}

	if dropped > 0 {
		e.log.Debug("Dropped events without cosmic context", "dropped", dropped, "kept", len(enriched))
	}
	return enriched, nil
}
