package confidence

import (
	"testing"

	"github.com/moonveil/arcana-backend/internal/cosmic"
)

func newTestScorer() *Scorer {
	cfg := cosmic.DefaultConfig()
	return NewScorer(&cfg)
}

func TestScore_WithinUnitInterval(t *testing.T) {
	s := newTestScorer()
	inputs := []ScoreInput{
		{Occurrences: 0, TotalEvents: 0, ExpectedFrequency: 0.125, DaysAnalyzed: 0},
		{Occurrences: 1, TotalEvents: 3, ExpectedFrequency: 0.125, DaysAnalyzed: 2},
		{Occurrences: 10, TotalEvents: 40, ExpectedFrequency: 0.125, DaysAnalyzed: 90},
		{Occurrences: 500, TotalEvents: 500, ExpectedFrequency: 0.01, DaysAnalyzed: 365},
	}
	for _, in := range inputs {
		got := s.Score(in)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Fatalf("Score(%+v).Confidence = %v, outside [0,1]", in, got.Confidence)
		}
	}
}

func TestScore_MonotonicInOccurrences(t *testing.T) {
	s := newTestScorer()
	prevBase, prevSample := -1.0, -1.0
	for occ := 0; occ <= 40; occ++ {
		r := s.Score(ScoreInput{Occurrences: occ, TotalEvents: 40, ExpectedFrequency: 0.125, DaysAnalyzed: 90})
		if r.Factors.BaseFrequency < prevBase {
			t.Fatalf("BaseFrequency decreased at occurrences=%d: %v < %v", occ, r.Factors.BaseFrequency, prevBase)
		}
		if r.Factors.SampleSizeBonus < prevSample {
			t.Fatalf("SampleSizeBonus decreased at occurrences=%d: %v < %v", occ, r.Factors.SampleSizeBonus, prevSample)
		}
		prevBase = r.Factors.BaseFrequency
		prevSample = r.Factors.SampleSizeBonus
	}
}

func TestScore_ShortWindowPenalized(t *testing.T) {
	s := newTestScorer()
	in := ScoreInput{Occurrences: 10, TotalEvents: 40, ExpectedFrequency: 0.125}

	in.DaysAnalyzed = 7
	short := s.Score(in)
	if short.Factors.TimeWindowPenalty == 0 {
		t.Fatalf("expected a penalty for a %d day window", in.DaysAnalyzed)
	}

	in.DaysAnalyzed = 60
	long := s.Score(in)
	if long.Factors.TimeWindowPenalty != 0 {
		t.Fatalf("unexpected penalty for a %d day window: %v", in.DaysAnalyzed, long.Factors.TimeWindowPenalty)
	}
	if long.Confidence <= short.Confidence {
		t.Fatalf("long window confidence %v should exceed short window %v", long.Confidence, short.Confidence)
	}
}

func TestAccepts_EnforcesBothFloors(t *testing.T) {
	s := newTestScorer()
	if s.Accepts(0.59, 10) {
		t.Fatal("accepted below confidence floor")
	}
	if s.Accepts(0.9, 2) {
		t.Fatal("accepted below occurrence floor")
	}
	if !s.Accepts(0.6, 3) {
		t.Fatal("rejected at exactly both floors")
	}
}

func TestScore_StrongBucketClearsFloor(t *testing.T) {
	s := newTestScorer()
	// A phase bucket holding a quarter of 40 events over 90 days, against a
	// uniform 1/8 expectation, should be an accepted pattern.
	r := s.Score(ScoreInput{Occurrences: 10, TotalEvents: 40, ExpectedFrequency: 0.125, DaysAnalyzed: 90})
	if !s.Accepts(r.Confidence, 10) {
		t.Fatalf("strong bucket rejected: confidence=%v factors=%+v", r.Confidence, r.Factors)
	}
}
