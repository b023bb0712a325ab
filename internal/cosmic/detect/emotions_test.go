package detect

import (
	"reflect"
	"testing"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

func TestExtractEmotions_ExplicitMoodWins(t *testing.T) {
	got := ExtractEmotions(types.RawEvent{
		Mood:    "Worried",
		Tags:    []string{"joyful"},
		Content: "so calm and peaceful today",
	})
	if !reflect.DeepEqual(got, []string{"anxious"}) {
		t.Fatalf("got %v, want [anxious]", got)
	}
}

func TestExtractEmotions_TagsBeforeContent(t *testing.T) {
	got := ExtractEmotions(types.RawEvent{
		Tags:    []string{"grateful", "restless", "nonsense"},
		Content: "feeling sad tonight",
	})
	if !reflect.DeepEqual(got, []string{"anxious", "joyful"}) {
		t.Fatalf("got %v, want [anxious joyful]", got)
	}
}

func TestExtractEmotions_WholeWordContentSearch(t *testing.T) {
	got := ExtractEmotions(types.RawEvent{
		Content: "Dreamt of water again. Woke up anxious, then oddly hopeful.",
	})
	if !reflect.DeepEqual(got, []string{"anxious", "hopeful"}) {
		t.Fatalf("got %v, want [anxious hopeful]", got)
	}
}

func TestExtractEmotions_NoSubstringMatches(t *testing.T) {
	// "sadly" contains "sad" but is not a whole-word hit for any keyword.
	got := ExtractEmotions(types.RawEvent{Content: "sadly the kettle broke"})
	if len(got) != 0 {
		t.Fatalf("got %v, want none", got)
	}
}

func TestExtractEmotions_OncePerEmotion(t *testing.T) {
	// Two keywords of the same emotion count it only once.
	got := ExtractEmotions(types.RawEvent{Content: "worried and nervous all day"})
	if !reflect.DeepEqual(got, []string{"anxious"}) {
		t.Fatalf("got %v, want [anxious]", got)
	}
}

func TestExtractEmotions_Empty(t *testing.T) {
	if got := ExtractEmotions(types.RawEvent{}); len(got) != 0 {
		t.Fatalf("got %v for empty event", got)
	}
}
