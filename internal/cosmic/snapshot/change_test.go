package snapshot

import (
	"testing"
	"time"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

func sampleSnapshots() []types.Snapshot {
	now := time.Now().UTC()
	return []types.Snapshot{
		types.LifeThemeSnapshot{DominantTheme: "transformation", Strength: 0.6, Timestamp: now},
		types.TarotSeasonSnapshot{DominantSuit: "Cups", Percentage: 40, Timestamp: now},
		types.ArchetypeSnapshot{DominantArchetype: "The Hermit", Share: 0.5, Timestamp: now},
		types.PatternSnapshot{
			Pattern:   types.Pattern{Type: types.PatternTarotMoonPhase, Confidence: 0.7},
			Timestamp: now,
		},
	}
}

func TestHasChanged_NoPreviousAlwaysChanged(t *testing.T) {
	for _, s := range sampleSnapshots() {
		if !HasChanged(nil, s) {
			t.Fatalf("nil previous must count as changed for %s", s.SnapshotType())
		}
	}
}

func TestHasChanged_IdenticalNeverChanged(t *testing.T) {
	for _, s := range sampleSnapshots() {
		if HasChanged(s, s) {
			t.Fatalf("identical snapshot flagged as changed for %s", s.SnapshotType())
		}
	}
}

func TestHasChanged_TypeMismatch(t *testing.T) {
	all := sampleSnapshots()
	if !HasChanged(all[0], all[1]) {
		t.Fatal("type mismatch must count as changed")
	}
}

func TestHasChanged_TarotSeasonPercentageShift(t *testing.T) {
	prev := types.TarotSeasonSnapshot{DominantSuit: "Cups", Percentage: 40}

	big := types.TarotSeasonSnapshot{DominantSuit: "Cups", Percentage: 65}
	if !HasChanged(prev, big) {
		t.Fatal("25-point shift must count as changed")
	}

	small := types.TarotSeasonSnapshot{DominantSuit: "Cups", Percentage: 50}
	if HasChanged(prev, small) {
		t.Fatal("10-point shift must not count as changed")
	}
}

func TestHasChanged_HeadlineValueSwitch(t *testing.T) {
	prev := types.LifeThemeSnapshot{DominantTheme: "transformation", Strength: 0.6}
	curr := types.LifeThemeSnapshot{DominantTheme: "healing", Strength: 0.6}
	if !HasChanged(prev, curr) {
		t.Fatal("dominant theme switch must count as changed")
	}
}

func TestHasChanged_PatternConfidenceDrift(t *testing.T) {
	prev := types.PatternSnapshot{Pattern: types.Pattern{Type: types.PatternTarotMoonPhase, Confidence: 0.6}}

	near := types.PatternSnapshot{Pattern: types.Pattern{Type: types.PatternTarotMoonPhase, Confidence: 0.75}}
	if HasChanged(prev, near) {
		t.Fatal("0.15 confidence drift must not count as changed")
	}

	far := types.PatternSnapshot{Pattern: types.Pattern{Type: types.PatternTarotMoonPhase, Confidence: 0.85}}
	if !HasChanged(prev, far) {
		t.Fatal("0.25 confidence drift must count as changed")
	}
}

func TestHasChanged_ArchetypeShareDrift(t *testing.T) {
	prev := types.ArchetypeSnapshot{DominantArchetype: "The Hermit", Share: 0.5}
	if HasChanged(prev, types.ArchetypeSnapshot{DominantArchetype: "The Hermit", Share: 0.65}) {
		t.Fatal("0.15 share drift must not count as changed")
	}
	if !HasChanged(prev, types.ArchetypeSnapshot{DominantArchetype: "The Hermit", Share: 0.75}) {
		t.Fatal("0.25 share drift must count as changed")
	}
}
