package detect

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/cosmic/confidence"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/domain/cosmos"
)

func journalEvent(t time.Time, phase, mood string) types.EnrichedEvent {
	ev := types.RawEvent{ID: uuid.New(), Kind: types.EventJournal, CreatedAt: t, Mood: mood}
	return types.EnrichedEvent{
		Event:   ev,
		Context: cosmos.CosmicContext{Date: t.Truncate(24 * time.Hour), MoonPhase: phase},
	}
}

func TestEmotionMoonPhaseDetector_FindsClusteredEmotion(t *testing.T) {
	cfg := cosmic.DefaultConfig()
	d := NewEmotionMoonPhaseDetector(&cfg, confidence.NewScorer(&cfg))

	base := time.Date(2026, 1, 2, 22, 0, 0, 0, time.UTC)
	var events []types.EnrichedEvent
	// Anxious entries land on full moons, everything else is scattered.
	for i := 0; i < 6; i++ {
		events = append(events, journalEvent(base.AddDate(0, 0, i*15), cosmos.PhaseFullMoon, "anxious"))
	}
	scatter := []struct{ phase, mood string }{
		{cosmos.PhaseNewMoon, "calm"},
		{cosmos.PhaseFirstQuarter, "joyful"},
		{cosmos.PhaseWaningCrescent, "calm"},
		{cosmos.PhaseWaxingGibbous, "sad"},
		{cosmos.PhaseLastQuarter, "hopeful"},
		{cosmos.PhaseWaxingCrescent, "joyful"},
	}
	for i, s := range scatter {
		events = append(events, journalEvent(base.AddDate(0, 0, i*13+3), s.phase, s.mood))
	}

	patterns, err := d.Detect(events)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1: %+v", len(patterns), patterns)
	}
	p := patterns[0]
	if p.Type != types.PatternEmotionMoonPhase || p.Tier != types.TierPremium {
		t.Fatalf("pattern type/tier = %s/%s", p.Type, p.Tier)
	}
	if p.Data.Emotion != "anxious" || p.Data.MoonPhase != cosmos.PhaseFullMoon {
		t.Fatalf("pattern bucket = %s x %s", p.Data.Emotion, p.Data.MoonPhase)
	}
	if p.Data.Occurrences != 6 || p.Data.TotalEvents != 12 {
		t.Fatalf("counts = %d/%d", p.Data.Occurrences, p.Data.TotalEvents)
	}
	// expected count 12 * (6/12)/8 = 0.75 sits under the chi floor, so the
	// significance term must be exactly zero.
	if p.Data.Factors.StatisticalSignificance != 0 {
		t.Fatalf("significance = %v, want 0 under expected-count floor", p.Data.Factors.StatisticalSignificance)
	}
}

func TestEmotionMoonPhaseDetector_EntriesWithoutEmotions(t *testing.T) {
	cfg := cosmic.DefaultConfig()
	d := NewEmotionMoonPhaseDetector(&cfg, confidence.NewScorer(&cfg))

	base := time.Date(2026, 1, 2, 22, 0, 0, 0, time.UTC)
	var events []types.EnrichedEvent
	for i := 0; i < 5; i++ {
		ev := journalEvent(base.AddDate(0, 0, i*10), cosmos.PhaseFullMoon, "")
		ev.Event.Content = "went to the market, bought bread"
		events = append(events, ev)
	}
	patterns, err := d.Detect(events)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(patterns) != 0 {
		t.Fatalf("emotionless entries produced %d patterns", len(patterns))
	}
}
