package cosmos

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// The eight moon phase names used as co-occurrence buckets. Context rows
// published by the ephemeris importer always use one of these.
const (
	PhaseNewMoon        = "New Moon"
	PhaseWaxingCrescent = "Waxing Crescent"
	PhaseFirstQuarter   = "First Quarter"
	PhaseWaxingGibbous  = "Waxing Gibbous"
	PhaseFullMoon       = "Full Moon"
	PhaseWaningGibbous  = "Waning Gibbous"
	PhaseLastQuarter    = "Last Quarter"
	PhaseWaningCrescent = "Waning Crescent"
)

// MoonPhaseCount is the size of the phase cycle; a uniform reference
// distribution assigns each phase 1/MoonPhaseCount expected frequency.
const MoonPhaseCount = 8

// PlanetPosition is one planet's placement on a given day.
type PlanetPosition struct {
	Sign          string  `json:"sign"`
	DegreesInSign float64 `json:"degrees_in_sign"`
	Retrograde    bool    `json:"retrograde,omitempty"`
}

// Aspect is an angular relationship between two planets.
type Aspect struct {
	PlanetA string  `json:"planet_a"`
	PlanetB string  `json:"planet_b"`
	Type    string  `json:"type"`
	Orb     float64 `json:"orb,omitempty"`
}

// CosmicContext is the decoded, immutable per-day sky picture. The engine
// consumes it as published; it never computes positions itself.
type CosmicContext struct {
	Date             time.Time                 `json:"date"`
	MoonPhase        string                    `json:"moon_phase"`
	MoonIllumination float64                   `json:"moon_illumination"`
	MoonEnergy       string                    `json:"moon_energy"`
	Positions        map[string]PlanetPosition `json:"positions,omitempty"`
	Aspects          []Aspect                  `json:"aspects,omitempty"`
}

// Empty reports whether the context carries no usable data. Enrichment
// refuses to attach an empty context to an event.
func (c CosmicContext) Empty() bool {
	return c.MoonPhase == ""
}

// DailyContext is the persisted per-day cache row. Published once by the
// ephemeris importer and immutable afterwards.
type DailyContext struct {
	Date             time.Time      `gorm:"primaryKey;type:date;column:date" json:"date"`
	MoonPhase        string         `gorm:"column:moon_phase;not null" json:"moon_phase"`
	MoonIllumination float64        `gorm:"column:moon_illumination;not null" json:"moon_illumination"`
	MoonEnergy       string         `gorm:"column:moon_energy" json:"moon_energy"`
	Positions        datatypes.JSON `gorm:"type:jsonb;column:positions" json:"positions"`
	Aspects          datatypes.JSON `gorm:"type:jsonb;column:aspects" json:"aspects"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (DailyContext) TableName() string { return "cosmic_context_days" }

// Context decodes the row into its value form.
func (d *DailyContext) Context() (CosmicContext, error) {
	out := CosmicContext{
		Date:             d.Date,
		MoonPhase:        d.MoonPhase,
		MoonIllumination: d.MoonIllumination,
		MoonEnergy:       d.MoonEnergy,
	}
	if len(d.Positions) > 0 {
		if err := json.Unmarshal(d.Positions, &out.Positions); err != nil {
			return CosmicContext{}, fmt.Errorf("decode positions for %s: %w", d.Date.Format("2006-01-02"), err)
		}
	}
	if len(d.Aspects) > 0 {
		if err := json.Unmarshal(d.Aspects, &out.Aspects); err != nil {
			return CosmicContext{}, fmt.Errorf("decode aspects for %s: %w", d.Date.Format("2006-01-02"), err)
		}
	}
	return out, nil
}
