package detect

import (
	"sort"
	"strings"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

// emotionKeywords is the curated lookup behind emotion extraction. Keys
// are the canonical emotion names entries get bucketed under.
var emotionKeywords = map[string][]string{
	"anxious":    {"anxious", "anxiety", "worried", "nervous", "uneasy", "restless"},
	"calm":       {"calm", "peaceful", "serene", "relaxed", "centered", "grounded"},
	"energized":  {"energized", "motivated", "inspired", "alive", "charged"},
	"sad":        {"sad", "grief", "grieving", "melancholy", "heartbroken", "down"},
	"joyful":     {"joy", "joyful", "happy", "excited", "grateful", "delighted"},
	"reflective": {"reflective", "introspective", "thoughtful", "contemplative", "pondering"},
	"angry":      {"angry", "anger", "frustrated", "irritated", "resentful"},
	"hopeful":    {"hope", "hopeful", "optimistic", "expectant"},
}

// emotionNames is the stable iteration order for extraction.
var emotionNames = func() []string {
	names := make([]string, 0, len(emotionKeywords))
	for name := range emotionKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// ExtractEmotions resolves the emotions one entry expresses, in
// precedence order: an explicit mood wins outright; otherwise tags are
// matched against the keyword table; otherwise whole words of the content
// are searched, stopping at the first matching keyword per emotion. An
// entry counts once per distinct emotion regardless of how many keywords
// hit.
func ExtractEmotions(ev types.RawEvent) []string {
	if mood := strings.ToLower(strings.TrimSpace(ev.Mood)); mood != "" {
		if canonical, ok := canonicalEmotion(mood); ok {
			return []string{canonical}
		}
		return []string{mood}
	}

	if len(ev.Tags) > 0 {
		var out []string
		seen := make(map[string]bool)
		for _, tag := range ev.Tags {
			if canonical, ok := canonicalEmotion(strings.ToLower(strings.TrimSpace(tag))); ok && !seen[canonical] {
				seen[canonical] = true
				out = append(out, canonical)
			}
		}
		if len(out) > 0 {
			sort.Strings(out)
			return out
		}
	}

	words := wordSet(ev.Content)
	if len(words) == 0 {
		return nil
	}
	var out []string
	for _, name := range emotionNames {
		for _, kw := range emotionKeywords[name] {
			if words[kw] {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// canonicalEmotion maps a candidate token to its emotion name, either
// directly or through the keyword table.
func canonicalEmotion(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	if _, ok := emotionKeywords[token]; ok {
		return token, true
	}
	for _, name := range emotionNames {
		for _, kw := range emotionKeywords[name] {
			if kw == token {
				return name, true
			}
		}
	}
	return "", false
}

// wordSet lowercases content and splits it into bare words, trimming
// surrounding punctuation so "anxious," still matches whole-word.
func wordSet(content string) map[string]bool {
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
