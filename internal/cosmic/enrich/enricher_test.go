package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

type fakeProvider struct {
	contexts map[time.Time]types.CosmicContext
	calls    int
	err      error
}

func (f *fakeProvider) ContextForDate(_ context.Context, day time.Time) (types.CosmicContext, bool, error) {
	f.calls++
	if f.err != nil {
		return types.CosmicContext{}, false, f.err
	}
	cc, ok := f.contexts[day]
	return cc, ok, nil
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func eventOn(s string) types.RawEvent {
	return types.RawEvent{ID: uuid.New(), Kind: types.EventTarot, CreatedAt: day(s).Add(10 * time.Hour)}
}

func TestEnrich_DropsEventsWithoutContext(t *testing.T) {
	p := &fakeProvider{contexts: map[time.Time]types.CosmicContext{
		day("2026-03-01"): {Date: day("2026-03-01"), MoonPhase: "Full Moon"},
	}}
	e := NewEnricher(p, logger.NewNop())

	events := []types.RawEvent{eventOn("2026-03-01"), eventOn("2026-03-02"), eventOn("2026-03-01")}
	got, err := e.Enrich(context.Background(), events)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("enriched %d events, want 2", len(got))
	}
	for _, ee := range got {
		if ee.Context.MoonPhase != "Full Moon" {
			t.Fatalf("enriched event carries context %+v", ee.Context)
		}
	}
}

func TestEnrich_DeduplicatesDayLookups(t *testing.T) {
	p := &fakeProvider{contexts: map[time.Time]types.CosmicContext{
		day("2026-03-01"): {Date: day("2026-03-01"), MoonPhase: "New Moon"},
	}}
	e := NewEnricher(p, logger.NewNop())

	events := []types.RawEvent{eventOn("2026-03-01"), eventOn("2026-03-01"), eventOn("2026-03-01")}
	if _, err := e.Enrich(context.Background(), events); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("provider called %d times, want 1", p.calls)
	}
}

func TestEnrich_ProviderErrorAborts(t *testing.T) {
	p := &fakeProvider{err: errors.New("store down")}
	e := NewEnricher(p, logger.NewNop())

	if _, err := e.Enrich(context.Background(), []types.RawEvent{eventOn("2026-03-01")}); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestEnrich_EmptyInput(t *testing.T) {
	e := NewEnricher(&fakeProvider{}, logger.NewNop())
	got, err := e.Enrich(context.Background(), nil)
	if err != nil || got != nil {
		t.Fatalf("Enrich(nil) = %v, %v; want nil, nil", got, err)
	}
}
