// Package confidence turns bucket counts into a single 0-1 trust score
// with an explainable factor breakdown.
package confidence

import (
	"math"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/cosmic/stats"
	types "github.com/moonveil/arcana-backend/internal/domain"
)

type ScoreInput struct {
	Occurrences       int
	TotalEvents       int
	ExpectedFrequency float64
	DaysAnalyzed      int
}

type ScoreResult struct {
	Confidence float64
	Factors    types.ConfidenceFactors
}

type Scorer struct {
	cfg *cosmic.Config
}

func NewScorer(cfg *cosmic.Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score combines four terms: how over-represented the bucket is, how many
// occurrences back it, whether the observation window is long enough to
// mean anything, and the chi-squared signal. The sum is clamped to [0,1].
func (s *Scorer) Score(in ScoreInput) ScoreResult {
	cfg := s.cfg

	base := math.Min(
		stats.FrequencyRatio(in.Occurrences, in.TotalEvents, in.ExpectedFrequency)*cfg.RatioWeight,
		cfg.BaseFrequencyCap,
	)

	sample := math.Min(float64(in.Occurrences)/cfg.SampleSizeDivisor, cfg.SampleSizeCap)

	var penalty float64
	if in.DaysAnalyzed < cfg.MinWindowDays {
		penalty = cfg.ShortWindowPenalty
	}

	sig := math.Min(
		stats.ChiSquared(in.Occurrences, in.TotalEvents, in.ExpectedFrequency, cfg.MinExpectedCount)*cfg.ChiSquaredWeight,
		cfg.ChiSquaredCap,
	)

	return ScoreResult{
		Confidence: stats.NormalizeConfidence(base + sample - penalty + sig),
		Factors: types.ConfidenceFactors{
			BaseFrequency:           base,
			SampleSizeBonus:         sample,
			TimeWindowPenalty:       penalty,
			StatisticalSignificance: sig,
		},
	}
}

// Accepts reports whether a scored bucket clears both acceptance floors.
func (s *Scorer) Accepts(confidence float64, occurrences int) bool {
	return confidence >= s.cfg.MinConfidence && occurrences >= s.cfg.MinOccurrences
}
