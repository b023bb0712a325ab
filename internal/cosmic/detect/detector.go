// Package detect holds the pattern detector contract, the shared
// bucket/window/threshold helpers every strategy composes, the concrete
// detectors and the orchestrator that fans them out.
package detect

import (
	"fmt"
	"sort"
	"time"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

// DetectorMetadata identifies a strategy: its output pattern type, the
// activity class it consumes, the tier its patterns are gated to and the
// minimum event count it needs to run at all.
type DetectorMetadata struct {
	Type      types.PatternType
	Category  types.Category
	Tier      types.Tier
	MinEvents int
}

// Detector is one correlation strategy. Detect never mutates the event
// slice it receives.
type Detector interface {
	Detect(events []types.EnrichedEvent) ([]types.Pattern, error)
	Metadata() DetectorMetadata
}

// HasSufficientData guards a strategy before any analysis.
func HasSufficientData(events []types.EnrichedEvent, minEvents int) bool {
	return len(events) >= minEvents
}

// ValidateCosmicData rejects an event set where any event carries an
// empty context. Enrichment guarantees this never happens; a violation
// here means a bug upstream, and the detector must abort rather than
// fabricate context.
func ValidateCosmicData(events []types.EnrichedEvent) error {
	for i, ev := range events {
		if ev.Context.Empty() {
			return fmt.Errorf("event %d (%s) has no cosmic context", i, ev.Event.ID)
		}
	}
	return nil
}

// NewTimeWindow derives the analyzed span from the event timestamps.
// Empty input yields the zero-width zero window.
func NewTimeWindow(events []types.EnrichedEvent) types.TimeWindow {
	if len(events) == 0 {
		return types.TimeWindow{}
	}
	start, end := events[0].Event.CreatedAt, events[0].Event.CreatedAt
	for _, ev := range events[1:] {
		if ev.Event.CreatedAt.Before(start) {
			start = ev.Event.CreatedAt
		}
		if ev.Event.CreatedAt.After(end) {
			end = ev.Event.CreatedAt
		}
	}
	return types.TimeWindow{
		StartDate:    start,
		EndDate:      end,
		DaysAnalyzed: int(end.Sub(start).Hours()/24) + 1,
	}
}

// FilterByThreshold drops candidates below either acceptance floor.
func FilterByThreshold(patterns []types.Pattern, minOccurrences int, minConfidence float64) []types.Pattern {
	out := make([]types.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Data.Occurrences >= minOccurrences && p.Confidence >= minConfidence {
			out = append(out, p)
		}
	}
	return out
}

// NewPattern stamps title and description from the type-keyed formatting
// table and sets GeneratedAt.
func NewPattern(ptype types.PatternType, tier types.Tier, confidence float64, data types.PatternData) types.Pattern {
	f, ok := formats[ptype]
	p := types.Pattern{
		Type:        ptype,
		Confidence:  confidence,
		Tier:        tier,
		Data:        data,
		GeneratedAt: time.Now().UTC(),
	}
	if ok {
		p.Title = f.title(data)
		p.Description = f.description(data)
	}
	return p
}

// SortByConfidence orders descending, ties kept in encounter order.
func SortByConfidence(patterns []types.Pattern) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})
}

// TakeTop truncates to at most n patterns.
func TakeTop(patterns []types.Pattern, n int) []types.Pattern {
	if n >= 0 && len(patterns) > n {
		return patterns[:n]
	}
	return patterns
}
