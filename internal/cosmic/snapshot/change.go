// Package snapshot decides whether a freshly generated snapshot differs
// enough from the stored one to be worth persisting. Pure predicate, no
// I/O; it gates every snapshot write.
package snapshot

import (
	"math"

	types "github.com/moonveil/arcana-backend/internal/domain"
)

// ChangeThreshold is the minimum movement of a headline strength before a
// snapshot counts as changed: 0.2 on a 0-1 scale.
const ChangeThreshold = 0.2

// PercentChangeThreshold is the same bound for 0-100 percentage scales.
const PercentChangeThreshold = 20.0

// HasChanged reports whether curr differs meaningfully from prev. No
// previous snapshot always counts as changed, so first writes proceed. A
// type mismatch always counts as changed. Within a variant, changed means
// the headline categorical value moved, or its strength moved past the
// threshold.
func HasChanged(prev, curr types.Snapshot) bool {
	if prev == nil {
		return true
	}
	if prev.SnapshotType() != curr.SnapshotType() {
		return true
	}

	switch c := curr.(type) {
	case types.LifeThemeSnapshot:
		p, ok := prev.(types.LifeThemeSnapshot)
		if !ok {
			return true
		}
		return p.DominantTheme != c.DominantTheme ||
			math.Abs(p.Strength-c.Strength) > ChangeThreshold
	case types.TarotSeasonSnapshot:
		p, ok := prev.(types.TarotSeasonSnapshot)
		if !ok {
			return true
		}
		return p.DominantSuit != c.DominantSuit ||
			math.Abs(p.Percentage-c.Percentage) > PercentChangeThreshold
	case types.ArchetypeSnapshot:
		p, ok := prev.(types.ArchetypeSnapshot)
		if !ok {
			return true
		}
		return p.DominantArchetype != c.DominantArchetype ||
			math.Abs(p.Share-c.Share) > ChangeThreshold
	case types.PatternSnapshot:
		p, ok := prev.(types.PatternSnapshot)
		if !ok {
			return true
		}
		return math.Abs(p.Pattern.Confidence-c.Pattern.Confidence) > ChangeThreshold
	default:
		// An unknown variant cannot be compared; persist rather than
		// silently drop it.
		return true
	}
}
