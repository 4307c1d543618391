// Package encounter decides whether travel through an area triggers a wild
// encounter, scales the opponent level, and selects a species.
package encounter

// Tier describes the level-variance band applied to encounters in an area.
// Bounds are offsets from the player level unless the Absolute values are
// set, in which case the range is fixed.
type Tier struct {
	Variance    int
	MinOffset   int
	MaxOffset   int
	AbsoluteMin int // when > 0, overrides the offset-based minimum
	AbsoluteMax int // when > 0, overrides the offset-based maximum
}

// Range returns the inclusive encounter-level range for a player level.
//
// Postcondition: min >= 1 and min <= max.
func (t Tier) Range(playerLevel int) (min, max int) {
	min = playerLevel + t.MinOffset
	max = playerLevel + t.MaxOffset
	if t.AbsoluteMin > 0 {
		min = t.AbsoluteMin
	}
	if t.AbsoluteMax > 0 {
		max = t.AbsoluteMax
	}
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	return min, max
}

// TierTable maps area ids to their variance tier. Areas not listed use
// DefaultTier.
type TierTable map[string]Tier

// For returns the tier for an area id, falling back to DefaultTier.
func (tt TierTable) For(areaID string) Tier {
	if tier, ok := tt[areaID]; ok {
		return tier
	}
	return DefaultTier
}

// DefaultTier is the end-game band applied to areas without an explicit
// tier entry.
var DefaultTier = Tier{Variance: 4, MinOffset: 2, MaxOffset: 8}

// DefaultTiers carries the authored per-area bands. The early areas pin
// absolute ranges so new players always meet level-appropriate creatures.
var DefaultTiers = TierTable{
	"starting_village": {Variance: 0, AbsoluteMin: 1, AbsoluteMax: 1},
	"forest_path":      {Variance: 1, AbsoluteMin: 1, AbsoluteMax: 3},
	"deep_forest":      {Variance: 2, MinOffset: -1, MaxOffset: 3},
	"plains":           {Variance: 2, MinOffset: -1, MaxOffset: 3},
	"mountains":        {Variance: 2, MinOffset: 0, MaxOffset: 4},
	"cave_entrance":    {Variance: 2, MinOffset: 0, MaxOffset: 4},
	"fire_temple":      {Variance: 3, MinOffset: 1, MaxOffset: 6},
	"mystic_grove":     {Variance: 3, MinOffset: 1, MaxOffset: 6},
}
