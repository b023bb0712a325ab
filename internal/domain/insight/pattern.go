package insight

import (
	"time"

	"github.com/moonveil/arcana-backend/internal/domain/activity"
	"github.com/moonveil/arcana-backend/internal/domain/cosmos"
)

// Tier is the access class gating which pattern types a caller may see.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// PatternType discriminates correlation pattern variants.
type PatternType string

const (
	PatternTarotMoonPhase   PatternType = "tarot_moon_phase"
	PatternEmotionMoonPhase PatternType = "emotion_moon_phase"
	PatternInsufficientData PatternType = "insufficient_data"
)

// Category groups detectors by the activity class they consume.
type Category string

const (
	CategoryTarot   Category = "tarot"
	CategoryJournal Category = "journal"
)

// EnrichedEvent pairs one activity record with the cosmic context observed
// on its date. Only constructed when context exists for that date; an
// event without context is excluded upstream, never carried with an empty
// context.
type EnrichedEvent struct {
	Event   activity.RawEvent   `json:"event"`
	Context cosmos.CosmicContext `json:"context"`
}

// TimeWindow is the span covered by one event set, derived per detection
// run from the min/max event timestamps.
type TimeWindow struct {
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	DaysAnalyzed int       `json:"days_analyzed"`
}

// ConfidenceFactors is the decomposed scoring breakdown, kept on the
// pattern for explainability. Not used for recomputation.
type ConfidenceFactors struct {
	BaseFrequency           float64 `json:"base_frequency"`
	SampleSizeBonus         float64 `json:"sample_size_bonus"`
	TimeWindowPenalty       float64 `json:"time_window_penalty"`
	StatisticalSignificance float64 `json:"statistical_significance"`
}

// EntityCount is one recurring discrete entity inside a bucket (for tarot
// phase buckets, a card name and how often it showed up).
type EntityCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PatternData is the variant-specific payload attached to a pattern.
// Fields not applicable to a variant stay at their zero value.
type PatternData struct {
	MoonPhase   string             `json:"moon_phase,omitempty"`
	MoonEnergy  string             `json:"moon_energy,omitempty"`
	Emotion     string             `json:"emotion,omitempty"`
	TopCards    []EntityCount      `json:"top_cards,omitempty"`
	Occurrences int                `json:"occurrences"`
	TotalEvents int                `json:"total_events"`
	Window      TimeWindow         `json:"window"`
	Factors     *ConfidenceFactors `json:"factors,omitempty"`

	// Sentinel payload: how many events each class had vs. needed.
	EventsFound    int `json:"events_found,omitempty"`
	EventsRequired int `json:"events_required,omitempty"`
}

// Pattern is one scored candidate correlation. Immutable once created; a
// new detection run produces new patterns rather than mutating old ones.
type Pattern struct {
	Type        PatternType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Confidence  float64     `json:"confidence"`
	Tier        Tier        `json:"tier"`
	Data        PatternData `json:"data"`
	GeneratedAt time.Time   `json:"generated_at"`
}
