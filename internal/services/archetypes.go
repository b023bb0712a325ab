package services

import (
	"strings"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

// cardArchetypes groups the major arcana into a small archetype
// vocabulary for the archetype summary.
var cardArchetypes = map[string]string{
	"The Fool":           "The Seeker",
	"The Magician":       "The Creator",
	"The High Priestess": "The Mystic",
	"The Empress":        "The Nurturer",
	"The Emperor":        "The Sovereign",
	"The Hierophant":     "The Teacher",
	"The Lovers":         "The Lover",
	"The Chariot":        "The Warrior",
	"Strength":           "The Warrior",
	"The Hermit":         "The Sage",
	"Wheel of Fortune":   "The Wanderer",
	"Justice":            "The Judge",
	"The Hanged Man":     "The Mystic",
	"Death":              "The Transformer",
	"Temperance":         "The Healer",
	"The Devil":          "The Shadow",
	"The Tower":          "The Transformer",
	"The Star":           "The Dreamer",
	"The Moon":           "The Dreamer",
	"The Sun":            "The Optimist",
	"Judgement":          "The Judge",
	"The World":          "The Sovereign",
}

// cardArchetype resolves a drawn card to its archetype. Only major
// arcana cards carry one; unmapped majors fall back to their own name.
func cardArchetype(card types.DrawnCard) (string, bool) {
	if a, ok := cardArchetypes[card.Name]; ok {
		return a, true
	}
	if strings.EqualFold(card.Arcana, "major") {
		return card.Name, true
	}
	return "", false
}
