package detect

import (
	"sort"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/cosmic/confidence"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/domain/cosmos"
)

// EmotionMoonPhaseDetector finds emotions that cluster under particular
// moon phases across journal-like entries. The reference distribution is
// empirical per emotion: how often the user expresses it at all, spread
// uniformly over the eight phases.
type EmotionMoonPhaseDetector struct {
	cfg    *cosmic.Config
	scorer *confidence.Scorer
}

func NewEmotionMoonPhaseDetector(cfg *cosmic.Config, scorer *confidence.Scorer) *EmotionMoonPhaseDetector {
	return &EmotionMoonPhaseDetector{cfg: cfg, scorer: scorer}
}

func (d *EmotionMoonPhaseDetector) Metadata() DetectorMetadata {
	return DetectorMetadata{
		Type:      types.PatternEmotionMoonPhase,
		Category:  types.CategoryJournal,
		Tier:      types.TierPremium,
		MinEvents: d.cfg.MinJournalEvents,
	}
}

func (d *EmotionMoonPhaseDetector) Detect(events []types.EnrichedEvent) ([]types.Pattern, error) {
	if !HasSufficientData(events, d.cfg.MinJournalEvents) {
		return nil, nil
	}
	if err := ValidateCosmicData(events); err != nil {
		return nil, err
	}

	window := NewTimeWindow(events)
	total := len(events)

	// entry counts per (emotion, phase) and per emotion overall; one
	// count per emotion per entry.
	perEmotionPhase := make(map[string]map[string]int)
	perEmotion := make(map[string]int)
	for _, ev := range events {
		for _, emotion := range ExtractEmotions(ev.Event) {
			perEmotion[emotion]++
			if perEmotionPhase[emotion] == nil {
				perEmotionPhase[emotion] = make(map[string]int)
			}
			perEmotionPhase[emotion][ev.Context.MoonPhase]++
		}
	}

	emotions := make([]string, 0, len(perEmotionPhase))
	for emotion := range perEmotionPhase {
		emotions = append(emotions, emotion)
	}
	sort.Strings(emotions)

	var patterns []types.Pattern
	for _, emotion := range emotions {
		phases := make([]string, 0, len(perEmotionPhase[emotion]))
		for phase := range perEmotionPhase[emotion] {
			phases = append(phases, phase)
		}
		sort.Strings(phases)

		// How often this emotion appears at all, spread evenly over the
		// phase cycle: the chance expectation for any single phase.
		expected := (float64(perEmotion[emotion]) / float64(total)) / float64(cosmos.MoonPhaseCount)

		for _, phase := range phases {
			occ := perEmotionPhase[emotion][phase]
			if occ < d.cfg.MinBucketSize {
				continue
			}
			res := d.scorer.Score(confidence.ScoreInput{
				Occurrences:       occ,
				TotalEvents:       total,
				ExpectedFrequency: expected,
				DaysAnalyzed:      window.DaysAnalyzed,
			})
			factors := res.Factors
			patterns = append(patterns, NewPattern(types.PatternEmotionMoonPhase, types.TierPremium, res.Confidence, types.PatternData{
				MoonPhase:   phase,
				Emotion:     emotion,
				Occurrences: occ,
				TotalEvents: total,
				Window:      window,
				Factors:     &factors,
			}))
		}
	}

	patterns = FilterByThreshold(patterns, d.cfg.MinOccurrences, d.cfg.MinConfidence)
	SortByConfidence(patterns)
	return patterns, nil
}
