package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/moonveil/arcana-backend/internal/cosmic"
	"github.com/moonveil/arcana-backend/internal/cosmic/confidence"
	"github.com/moonveil/arcana-backend/internal/cosmic/enrich"
	types "github.com/moonveil/arcana-backend/internal/domain"
	"github.com/moonveil/arcana-backend/internal/pkg/logger"
)

// EventSource fetches a user's recent activity per class, already
// flattened to raw events. Backed by the activity repos in production.
type EventSource interface {
	RecentTarotEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.RawEvent, error)
	RecentJournalEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]types.RawEvent, error)
}

// Options controls one detection run.
type Options struct {
	DaysBack int
	UserTier types.Tier
	Category types.Category // empty means all categories
}

// Meta always accompanies a result, including the insufficient-data path.
type Meta struct {
	TotalCandidates       int                       `json:"total_candidates"`
	CountsByCategory      map[types.Category]int    `json:"counts_by_category"`
	CountsByType          map[types.PatternType]int `json:"counts_by_type"`
	Window                types.TimeWindow          `json:"window"`
	TarotEventsAnalyzed   int                       `json:"tarot_events_analyzed"`
	JournalEventsAnalyzed int                       `json:"journal_events_analyzed"`
}

type Result struct {
	Patterns []types.Pattern `json:"patterns"`
	Meta     Meta            `json:"meta"`
}

// Orchestrator runs every applicable detector strategy over enriched
// events, merges, tier-filters and caps the output.
type Orchestrator struct {
	cfg       *cosmic.Config
	source    EventSource
	enricher  *enrich.Enricher
	detectors []Detector
	log       *logger.Logger
}

// NewOrchestrator registers the built-in strategies. Extra detectors can
// be appended with Register before the first run.
func NewOrchestrator(cfg *cosmic.Config, source EventSource, enricher *enrich.Enricher, baseLog *logger.Logger) *Orchestrator {
	scorer := confidence.NewScorer(cfg)
	return &Orchestrator{
		cfg:      cfg,
		source:   source,
		enricher: enricher,
		detectors: []Detector{
			NewTarotMoonPhaseDetector(cfg, scorer),
			NewEmotionMoonPhaseDetector(cfg, scorer),
		},
		log: baseLog.With("service", "DetectionOrchestrator"),
	}
}

func (o *Orchestrator) Register(d Detector) {
	o.detectors = append(o.detectors, d)
}

// DetectPatterns is the single entry point external callers invoke.
func (o *Orchestrator) DetectPatterns(ctx context.Context, userID uuid.UUID, opts Options) (*Result, error) {
	daysBack := opts.DaysBack
	if daysBack <= 0 {
		daysBack = o.cfg.DefaultDaysBack
	}
	if opts.UserTier == "" {
		opts.UserTier = types.TierFree
	}
	now := time.Now().UTC()
	since := now.AddDate(0, 0, -daysBack)

	wantTarot := opts.Category == "" || opts.Category == types.CategoryTarot
	wantJournal := opts.Category == "" || opts.Category == types.CategoryJournal

	// Fetch and enrich both classes concurrently. A store error on either
	// branch aborts the run; detectors are isolated separately below.
	var tarotEvents, journalEvents []types.EnrichedEvent
	g, gctx := errgroup.WithContext(ctx)
	if wantTarot {
		g.Go(func() error {
			raw, err := o.source.RecentTarotEvents(gctx, userID, since)
			if err != nil {
				return fmt.Errorf("fetch tarot activity: %w", err)
			}
			tarotEvents, err = o.enricher.Enrich(gctx, raw)
			if err != nil {
				return fmt.Errorf("enrich tarot activity: %w", err)
			}
			return nil
		})
	}
	if wantJournal {
		g.Go(func() error {
			raw, err := o.source.RecentJournalEvents(gctx, userID, since)
			if err != nil {
				return fmt.Errorf("fetch journal activity: %w", err)
			}
			journalEvents, err = o.enricher.Enrich(gctx, raw)
			if err != nil {
				return fmt.Errorf("enrich journal activity: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	meta := Meta{
		CountsByCategory:      make(map[types.Category]int),
		CountsByType:          make(map[types.PatternType]int),
		Window:                types.TimeWindow{StartDate: since, EndDate: now, DaysAnalyzed: daysBack},
		TarotEventsAnalyzed:   len(tarotEvents),
		JournalEventsAnalyzed: len(journalEvents),
	}

	tarotStarved := len(tarotEvents) < o.cfg.MinTarotEvents
	journalStarved := len(journalEvents) < o.cfg.MinJournalEvents
	if tarotStarved && journalStarved {
		sentinel := o.insufficientDataPattern(len(tarotEvents) + len(journalEvents))
		meta.TotalCandidates = 1
		meta.CountsByType[types.PatternInsufficientData] = 1
		return &Result{Patterns: []types.Pattern{sentinel}, Meta: meta}, nil
	}

	selected := make([]Detector, 0, len(o.detectors))
	for _, d := range o.detectors {
		if opts.Category != "" && d.Metadata().Category != opts.Category {
			continue
		}
		selected = append(selected, d)
	}

	// Run every selected strategy concurrently. A failing or panicking
	// detector contributes zero patterns and must never abort the run.
	results := make([][]types.Pattern, len(selected))
	var dg errgroup.Group
	for i, d := range selected {
		i, d := i, d
		dg.Go(func() error {
			results[i] = o.runDetector(d, tarotEvents, journalEvents)
			return nil
		})
	}
	_ = dg.Wait()

	var merged []types.Pattern
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	meta.TotalCandidates = len(merged)

	if opts.UserTier != types.TierPremium {
		kept := merged[:0]
		for _, p := range merged {
			if p.Tier != types.TierPremium {
				kept = append(kept, p)
			}
		}
		merged = kept
	}

	SortByConfidence(merged)
	merged = TakeTop(merged, o.cfg.MaxPatterns)

	for _, p := range merged {
		meta.CountsByType[p.Type]++
	}
	for _, d := range selected {
		md := d.Metadata()
		for _, p := range merged {
			if p.Type == md.Type {
				meta.CountsByCategory[md.Category]++
			}
		}
	}

	return &Result{Patterns: merged, Meta: meta}, nil
}

// runDetector feeds a strategy its activity class and downgrades any
// failure, panic included, to an empty contribution.
func (o *Orchestrator) runDetector(d Detector, tarot, journal []types.EnrichedEvent) (out []types.Pattern) {
	md := d.Metadata()
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("Detector panicked", "detector", md.Type, "panic", r)
			out = nil
		}
	}()

	events := tarot
	if md.Category == types.CategoryJournal {
		events = journal
	}

	patterns, err := d.Detect(events)
	if err != nil {
		o.log.Warn("Detector failed, contributing zero patterns", "detector", md.Type, "error", err)
		return nil
	}
	return patterns
}

func (o *Orchestrator) insufficientDataPattern(found int) types.Pattern {
	required := o.cfg.MinTarotEvents
	if o.cfg.MinJournalEvents < required {
		required = o.cfg.MinJournalEvents
	}
	return NewPattern(types.PatternInsufficientData, types.TierFree, 0, types.PatternData{
		EventsFound:    found,
		EventsRequired: required,
	})
}
