package detect

import (
	"sort"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/cosmic/confidence"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/domain/cosmos"
)

const topCardsPerBucket = 3

// TarotMoonPhaseDetector finds moon phases a user draws under more often
// than chance. Buckets draws by the phase active on the draw date against
// a uniform eight-phase reference distribution.
type TarotMoonPhaseDetector struct {
	cfg    *cosmic.Config
	scorer *confidence.Scorer
}

func NewTarotMoonPhaseDetector(cfg *cosmic.Config, scorer *confidence.Scorer) *TarotMoonPhaseDetector {
	return &TarotMoonPhaseDetector{cfg: cfg, scorer: scorer}
}

func (d *TarotMoonPhaseDetector) Metadata() DetectorMetadata {
	return DetectorMetadata{
		Type:      types.PatternTarotMoonPhase,
		Category:  types.CategoryTarot,
		Tier:      types.TierFree,
		MinEvents: d.cfg.MinTarotEvents,
	}
}

func (d *TarotMoonPhaseDetector) Detect(events []types.EnrichedEvent) ([]types.Pattern, error) {
	if !HasSufficientData(events, d.cfg.MinTarotEvents) {
		return nil, nil
	}
	if err := ValidateCosmicData(events); err != nil {
		return nil, err
	}

	window := NewTimeWindow(events)
	buckets := make(map[string][]types.EnrichedEvent)
	for _, ev := range events {
		phase := ev.Context.MoonPhase
		buckets[phase] = append(buckets[phase], ev)
	}

	phases := make([]string, 0, len(buckets))
	for phase := range buckets {
		phases = append(phases, phase)
	}
	sort.Strings(phases)

	expected := 1.0 / float64(cosmos.MoonPhaseCount)
	var patterns []types.Pattern
	for _, phase := range phases {
		bucket := buckets[phase]
		if len(bucket) < d.cfg.MinBucketSize {
			continue
		}
		res := d.scorer.Score(confidence.ScoreInput{
			Occurrences:       len(bucket),
			TotalEvents:       len(events),
			ExpectedFrequency: expected,
			DaysAnalyzed:      window.DaysAnalyzed,
		})
		factors := res.Factors
		patterns = append(patterns, NewPattern(types.PatternTarotMoonPhase, types.TierFree, res.Confidence, types.PatternData{
			MoonPhase:   phase,
			MoonEnergy:  bucket[0].Context.MoonEnergy,
			TopCards:    topRecurringCards(bucket),
			Occurrences: len(bucket),
			TotalEvents: len(events),
			Window:      window,
			Factors:     &factors,
		}))
	}

	patterns = FilterByThreshold(patterns, d.cfg.MinOccurrences, d.cfg.MinConfidence)
	SortByConfidence(patterns)
	return patterns, nil
}

// topRecurringCards counts card names inside one phase bucket and keeps
// the three most frequent repeats. Singletons are noise, not recurrence.
func topRecurringCards(bucket []types.EnrichedEvent) []types.EntityCount {
	counts := make(map[string]int)
	for _, ev := range bucket {
		for _, name := range ev.Event.Entities {
			if name != "" {
				counts[name]++
			}
		}
	}

	out := make([]types.EntityCount, 0, len(counts))
	for name, n := range counts {
		if n >= 2 {
			out = append(out, types.EntityCount{Name: name, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topCardsPerBucket {
		out = out[:topCardsPerBucket]
	}
	return out
}
