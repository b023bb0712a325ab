package services

import (
	"sort"
	"strings"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

// themeKeywords maps life themes to the tag/content vocabulary that
// signals them. Same keyword discipline as emotion extraction: whole
// words only, one count per theme per entry.
var themeKeywords = map[string][]string{
	"transformation": {"change", "changing", "transform", "transformation", "rebirth", "release", "shedding"},
	"healing":        {"heal", "healing", "recovery", "recovering", "forgive", "forgiveness", "rest"},
	"love":           {"love", "relationship", "partner", "romance", "heart", "connection"},
	"purpose":        {"purpose", "career", "calling", "work", "ambition", "direction"},
	"intuition":      {"dream", "dreams", "intuition", "vision", "signs", "synchronicity", "omen"},
	"protection":     {"protection", "boundaries", "boundary", "cleanse", "cleansing", "shield", "ward"},
}

var themeNames = func() []string {
	names := make([]string, 0, len(themeKeywords))
	for name := range themeKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// matchThemes resolves the themes one entry touches, checking tags first
// and falling back to whole-word content search.
func matchThemes(ev types.RawEvent) []string {
	tagSet := make(map[string]bool, len(ev.Tags))
	for _, tag := range ev.Tags {
		tagSet[strings.ToLower(strings.TrimSpace(tag))] = true
	}
	words := contentWords(ev.Content)

	var out []string
	for _, name := range themeNames {
		matched := false
		for _, kw := range themeKeywords[name] {
			if tagSet[kw] || words[kw] {
				matched = true
				break
			}
		}
		if matched {
			out = append(out, name)
		}
	}
	return out
}

func contentWords(content string) map[string]bool {
	if content == "" {
		return nil
	}
	fields := strings.Fields(strings.ToLower(content))
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,;:!?\"'()[]{}*_-")
		if w != "" {
			out[w] = true
		}
	}
	return out
}
