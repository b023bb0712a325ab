package detect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/cosmic/enrich"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/domain/cosmos"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

// allDaysProvider hands every day the same phase so enrichment never
// drops anything.
type allDaysProvider struct{ phase string }

func (p allDaysProvider) ContextForDate(_ context.Context, day time.Time) (types.CosmicContext, bool, error) {
	return types.CosmicContext{Date: day, MoonPhase: p.phase}, true, nil
}

type stubSource struct {
	tarot   []types.RawEvent
	journal []types.RawEvent
	err     error
}

func (s *stubSource) RecentTarotEvents(context.Context, uuid.UUID, time.Time) ([]types.RawEvent, error) {
	return s.tarot, s.err
}
func (s *stubSource) RecentJournalEvents(context.Context, uuid.UUID, time.Time) ([]types.RawEvent, error) {
	return s.journal, s.err
}

type failingDetector struct{ category types.Category }

func (d failingDetector) Detect([]types.EnrichedEvent) ([]types.Pattern, error) {
	return nil, errors.New("always broken")
}
func (d failingDetector) Metadata() DetectorMetadata {
	return DetectorMetadata{Type: "broken", Category: d.category, Tier: types.TierFree}
}

type panickingDetector struct{}

func (panickingDetector) Detect([]types.EnrichedEvent) ([]types.Pattern, error) {
	panic("unreachable state")
}
func (panickingDetector) Metadata() DetectorMetadata {
	return DetectorMetadata{Type: "panicky", Category: types.CategoryTarot, Tier: types.TierFree}
}

func recentRawEvents(n int, daysApart int, card string) []types.RawEvent {
	now := time.Now().UTC()
	out := make([]types.RawEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.RawEvent{
			ID:        uuid.New(),
			Kind:      types.EventTarot,
			CreatedAt: now.AddDate(0, 0, -i*daysApart-1),
			Entities:  []string{card},
		})
	}
	return out
}

func newTestOrchestrator(src EventSource) *Orchestrator {
	cfg := cosmic.DefaultConfig()
	enricher := enrich.NewEnricher(allDaysProvider{phase: cosmos.PhaseFullMoon}, logger.NewNop())
	return NewOrchestrator(&cfg, src, enricher, logger.NewNop())
}

func TestDetectPatterns_InsufficientDataSentinel(t *testing.T) {
	src := &stubSource{
		tarot:   recentRawEvents(2, 3, "The Star"),
		journal: recentRawEvents(1, 3, ""),
	}
	o := newTestOrchestrator(src)

	res, err := o.DetectPatterns(context.Background(), uuid.New(), Options{})
	if err != nil {
		t.Fatalf("DetectPatterns: %v", err)
	}
	if len(res.Patterns) != 1 {
		t.Fatalf("got %d patterns, want exactly the sentinel", len(res.Patterns))
	}
	p := res.Patterns[0]
	if p.Type != types.PatternInsufficientData || p.Confidence != 0 || p.Tier != types.TierFree {
		t.Fatalf("sentinel = %+v", p)
	}
	if p.Data.EventsFound != 3 || p.Data.EventsRequired == 0 {
		t.Fatalf("sentinel counts = %d/%d", p.Data.EventsFound, p.Data.EventsRequired)
	}
	if res.Meta.TarotEventsAnalyzed != 2 || res.Meta.JournalEventsAnalyzed != 1 {
		t.Fatalf("meta counts = %+v", res.Meta)
	}
}

func TestDetectPatterns_IsolatesFailingDetectors(t *testing.T) {
	// 12 draws all under the full moon: the tarot detector will fire.
	src := &stubSource{tarot: recentRawEvents(12, 7, "The Moon")}
	o := newTestOrchestrator(src)
	o.Register(failingDetector{category: types.CategoryTarot})
	o.Register(panickingDetector{})

	res, err := o.DetectPatterns(context.Background(), uuid.New(), Options{})
	if err != nil {
		t.Fatalf("DetectPatterns: %v", err)
	}
	if len(res.Patterns) == 0 {
		t.Fatal("healthy detector output lost to a failing sibling")
	}
	for _, p := range res.Patterns {
		if p.Type != types.PatternTarotMoonPhase {
			t.Fatalf("unexpected pattern type %s", p.Type)
		}
	}
}

func TestDetectPatterns_FetchErrorAborts(t *testing.T) {
	src := &stubSource{err: errors.New("event store down")}
	o := newTestOrchestrator(src)
	if _, err := o.DetectPatterns(context.Background(), uuid.New(), Options{}); err == nil {
		t.Fatal("expected event store error to propagate")
	}
}

func TestDetectPatterns_FreeTierDropsPremium(t *testing.T) {
	now := time.Now().UTC()
	journal := make([]types.RawEvent, 0, 12)
	for i := 0; i < 12; i++ {
		journal = append(journal, types.RawEvent{
			ID: uuid.New(), Kind: types.EventJournal,
			CreatedAt: now.AddDate(0, 0, -i*7-1),
			Mood:      "anxious",
		})
	}
	src := &stubSource{journal: journal}
	o := newTestOrchestrator(src)

	free, err := o.DetectPatterns(context.Background(), uuid.New(), Options{Category: types.CategoryJournal, UserTier: types.TierFree})
	if err != nil {
		t.Fatalf("DetectPatterns(free): %v", err)
	}
	for _, p := range free.Patterns {
		if p.Tier == types.TierPremium {
			t.Fatalf("premium pattern served to free tier: %+v", p)
		}
	}

	premium, err := o.DetectPatterns(context.Background(), uuid.New(), Options{Category: types.CategoryJournal, UserTier: types.TierPremium})
	if err != nil {
		t.Fatalf("DetectPatterns(premium): %v", err)
	}
	if len(premium.Patterns) == 0 {
		t.Fatal("premium tier saw no emotion patterns")
	}
	if premium.Meta.TotalCandidates == 0 {
		t.Fatal("meta.TotalCandidates not populated")
	}
}

func TestDetectPatterns_CategoryFilterSkipsOtherClass(t *testing.T) {
	src := &stubSource{
		tarot:   recentRawEvents(12, 7, "The Moon"),
		journal: recentRawEvents(1, 1, ""),
	}
	o := newTestOrchestrator(src)

	res, err := o.DetectPatterns(context.Background(), uuid.New(), Options{Category: types.CategoryTarot})
	if err != nil {
		t.Fatalf("DetectPatterns: %v", err)
	}
	if res.Meta.JournalEventsAnalyzed != 0 {
		t.Fatalf("journal class fetched despite tarot category filter: %+v", res.Meta)
	}
	for _, p := range res.Patterns {
		if p.Type == types.PatternEmotionMoonPhase {
			t.Fatalf("journal pattern produced under tarot filter")
		}
	}
}
