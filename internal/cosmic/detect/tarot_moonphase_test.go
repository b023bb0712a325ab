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

func tarotEvent(t time.Time, phase string, cards ...string) types.EnrichedEvent {
	return types.EnrichedEvent{
		Event: types.RawEvent{
			ID:        uuid.New(),
			Kind:      types.EventTarot,
			CreatedAt: t,
			Entities:  cards,
		},
		Context: cosmos.CosmicContext{Date: t.Truncate(24 * time.Hour), MoonPhase: phase},
	}
}

func newTarotDetector() *TarotMoonPhaseDetector {
	cfg := cosmic.DefaultConfig()
	return NewTarotMoonPhaseDetector(&cfg, confidence.NewScorer(&cfg))
}

// fullMoonHeavyEvents is 20 draws over ~90 days: 8 under the Full Moon
// with recurring cards, the rest spread thin across other phases.
func fullMoonHeavyEvents() []types.EnrichedEvent {
	base := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)
	var events []types.EnrichedEvent
	fullMoonCards := [][]string{
		{"The Moon", "The Tower"},
		{"The Moon"},
		{"The Moon", "Three of Cups"},
		{"The Tower"},
		{"Ace of Wands"},
		{"Nine of Swords"},
		{"The Hermit"},
		{"Queen of Cups"},
	}
	for i, cards := range fullMoonCards {
		events = append(events, tarotEvent(base.AddDate(0, 0, i*11), cosmos.PhaseFullMoon, cards...))
	}
	others := []string{cosmos.PhaseNewMoon, cosmos.PhaseFirstQuarter, cosmos.PhaseLastQuarter, cosmos.PhaseWaxingGibbous}
	for i := 0; i < 12; i++ {
		events = append(events, tarotEvent(base.AddDate(0, 0, i*7+2), others[i%len(others)], "Two of Pentacles"))
	}
	return events
}

func TestTarotMoonPhaseDetector_FindsOverrepresentedPhase(t *testing.T) {
	d := newTarotDetector()
	patterns, err := d.Detect(fullMoonHeavyEvents())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1 (full moon only): %+v", len(patterns), patterns)
	}
	p := patterns[0]
	if p.Data.MoonPhase != cosmos.PhaseFullMoon {
		t.Fatalf("pattern phase = %s", p.Data.MoonPhase)
	}
	if p.Data.Occurrences != 8 || p.Data.TotalEvents != 20 {
		t.Fatalf("counts = %d/%d", p.Data.Occurrences, p.Data.TotalEvents)
	}
	if p.Confidence < 0.6 || p.Confidence > 1 {
		t.Fatalf("confidence = %v", p.Confidence)
	}
	if len(p.Data.TopCards) == 0 || p.Data.TopCards[0].Name != "The Moon" || p.Data.TopCards[0].Count != 3 {
		t.Fatalf("top cards = %+v", p.Data.TopCards)
	}
	// Singleton cards never appear in the recurring list.
	for _, c := range p.Data.TopCards {
		if c.Count < 2 {
			t.Fatalf("singleton card leaked into top cards: %+v", c)
		}
	}
	if p.Data.Factors == nil {
		t.Fatal("factors breakdown missing")
	}
}

func TestTarotMoonPhaseDetector_SmallBucketNeverScores(t *testing.T) {
	d := newTarotDetector()
	base := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)
	// Six draws, no phase reaching three occurrences.
	events := []types.EnrichedEvent{
		tarotEvent(base, cosmos.PhaseFullMoon, "The Moon"),
		tarotEvent(base.AddDate(0, 0, 10), cosmos.PhaseFullMoon, "The Moon"),
		tarotEvent(base.AddDate(0, 0, 20), cosmos.PhaseNewMoon, "The Sun"),
		tarotEvent(base.AddDate(0, 0, 30), cosmos.PhaseNewMoon, "The Sun"),
		tarotEvent(base.AddDate(0, 0, 40), cosmos.PhaseFirstQuarter, "Justice"),
		tarotEvent(base.AddDate(0, 0, 50), cosmos.PhaseLastQuarter, "Strength"),
	}
	patterns, err := d.Detect(events)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(patterns) != 0 {
		t.Fatalf("got %d patterns from sub-threshold buckets", len(patterns))
	}
}

func TestTarotMoonPhaseDetector_InsufficientEvents(t *testing.T) {
	d := newTarotDetector()
	events := fullMoonHeavyEvents()[:3]
	patterns, err := d.Detect(events)
	if err != nil || patterns != nil {
		t.Fatalf("Detect on starved input = %v, %v; want nil, nil", patterns, err)
	}
}
