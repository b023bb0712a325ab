package detect

import (
	"fmt"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

type patternFormat struct {
	title       func(d types.PatternData) string
	description func(d types.PatternData) string
}

// formats renders user-facing copy per pattern type. Detectors never
// build title or description strings themselves.
var formats = map[types.PatternType]patternFormat{
	types.PatternTarotMoonPhase: {
		title: func(d types.PatternData) string {
			return fmt.Sprintf("%s Draws", d.MoonPhase)
		},
		description: func(d types.PatternData) string {
			pct := percentOf(d.Occurrences, d.TotalEvents)
			base := fmt.Sprintf("You drew cards during a %s %d times (%.0f%% of your last %d draws).",
				d.MoonPhase, d.Occurrences, pct, d.TotalEvents)
			if len(d.TopCards) > 0 {
				base += fmt.Sprintf(" %s keeps returning under this moon.", d.TopCards[0].Name)
			}
			return base
		},
	},
	types.PatternEmotionMoonPhase: {
		title: func(d types.PatternData) string {
			return fmt.Sprintf("Feeling %s under the %s", d.Emotion, d.MoonPhase)
		},
		description: func(d types.PatternData) string {
			return fmt.Sprintf("Your entries read as %s during a %s %d times across %d days.",
				d.Emotion, d.MoonPhase, d.Occurrences, d.Window.DaysAnalyzed)
		},
	},
	types.PatternInsufficientData: {
		title: func(d types.PatternData) string {
			return "Keep Building Your Cosmic Record"
		},
		description: func(d types.PatternData) string {
			return fmt.Sprintf("We found %d entries so far and need at least %d to start spotting patterns. Keep drawing and journaling.",
				d.EventsFound, d.EventsRequired)
		},
	},
}

func percentOf(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
