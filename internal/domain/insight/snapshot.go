package insight

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Snapshot type discriminators. The shared "pattern_" prefix marks the
// pattern family for cooldown checks and data-subject deletion.
const (
	SnapshotTypePrefix = "pattern_"

	SnapshotTarotMoonPhase   = "pattern_tarot_moon_phase"
	SnapshotEmotionMoonPhase = "pattern_emotion_moon_phase"
	SnapshotLifeTheme        = "pattern_life_theme"
	SnapshotTarotSeason      = "pattern_tarot_season"
	SnapshotArchetype        = "pattern_archetype"
)

// Snapshot is the tagged union over persisted insight results: a plain
// correlation pattern or one of the higher-level summaries. Snapshots are
// superseded by later ones, never edited.
type Snapshot interface {
	SnapshotType() string
	SnapshotTime() time.Time
}

// PatternSnapshot wraps one correlation Pattern for persistence.
type PatternSnapshot struct {
	Pattern   Pattern   `json:"pattern"`
	Timestamp time.Time `json:"timestamp"`
}

func (s PatternSnapshot) SnapshotType() string {
	return SnapshotTypePrefix + string(s.Pattern.Type)
}
func (s PatternSnapshot) SnapshotTime() time.Time { return s.Timestamp }

// LifeThemeSnapshot summarizes the dominant recurring theme across a
// user's journal-like entries.
type LifeThemeSnapshot struct {
	DominantTheme   string         `json:"dominant_theme"`
	Strength        float64        `json:"strength"`
	ThemeCounts     map[string]int `json:"theme_counts"`
	EntriesAnalyzed int            `json:"entries_analyzed"`
	Window          TimeWindow     `json:"window"`
	Timestamp       time.Time      `json:"timestamp"`
}

func (s LifeThemeSnapshot) SnapshotType() string    { return SnapshotLifeTheme }
func (s LifeThemeSnapshot) SnapshotTime() time.Time { return s.Timestamp }

// TarotSeasonSnapshot summarizes the dominant suit across recent pulls.
// Percentage is on a 0-100 scale.
type TarotSeasonSnapshot struct {
	DominantSuit  string         `json:"dominant_suit"`
	Percentage    float64        `json:"percentage"`
	SuitCounts    map[string]int `json:"suit_counts"`
	CardsAnalyzed int            `json:"cards_analyzed"`
	Window        TimeWindow     `json:"window"`
	Timestamp     time.Time      `json:"timestamp"`
}

func (s TarotSeasonSnapshot) SnapshotType() string    { return SnapshotTarotSeason }
func (s TarotSeasonSnapshot) SnapshotTime() time.Time { return s.Timestamp }

// ArchetypeSnapshot summarizes the dominant major-arcana archetype across
// recent pulls. Share is on a 0-1 scale.
type ArchetypeSnapshot struct {
	DominantArchetype string         `json:"dominant_archetype"`
	Share             float64        `json:"share"`
	ArchetypeCounts   map[string]int `json:"archetype_counts"`
	CardsAnalyzed     int            `json:"cards_analyzed"`
	Window            TimeWindow     `json:"window"`
	Timestamp         time.Time      `json:"timestamp"`
}

func (s ArchetypeSnapshot) SnapshotType() string    { return SnapshotArchetype }
func (s ArchetypeSnapshot) SnapshotTime() time.Time { return s.Timestamp }

// SnapshotEnvelope is the serialized form handed to the encryption
// service: the discriminator plus the variant payload. The store treats
// the encrypted result as an opaque blob.
type SnapshotEnvelope struct {
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EncodeSnapshot wraps a snapshot into its tagged envelope.
func EncodeSnapshot(s Snapshot) (SnapshotEnvelope, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return SnapshotEnvelope{}, fmt.Errorf("marshal snapshot %s: %w", s.SnapshotType(), err)
	}
	return SnapshotEnvelope{
		Type:      s.SnapshotType(),
		Timestamp: s.SnapshotTime(),
		Data:      data,
	}, nil
}

// DecodeSnapshot restores the typed variant from its envelope.
func DecodeSnapshot(env SnapshotEnvelope) (Snapshot, error) {
	switch {
	case env.Type == SnapshotLifeTheme:
		var s LifeThemeSnapshot
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return s, nil
	case env.Type == SnapshotTarotSeason:
		var s TarotSeasonSnapshot
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return s, nil
	case env.Type == SnapshotArchetype:
		var s ArchetypeSnapshot
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return s, nil
	case strings.HasPrefix(env.Type, SnapshotTypePrefix):
		var s PatternSnapshot
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", env.Type, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown snapshot type %q", env.Type)
	}
}
