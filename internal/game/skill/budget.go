package skill

// Budget returns the total skill points available to a character of the
// given level: the creation allotment of base plus the intelligence
// modifier, floored at 1, then the per-level-up allotments. Advancing
// from level L to L+1 grants L+2 points.
//
// Precondition: level >= 1.
func Budget(level, base, intMod int) int {
	points := base + intMod
	if points < 1 {
		points = 1
	}
	for l := 1; l < level; l++ {
		points += l + 2
	}
	return points
}

// CapForLevel returns the maximum skill rank a character of the given
// level may hold. Ranks cap at 1 through level 2, then climb one step
// per tier.
func CapForLevel(level int) int {
	switch {
	case level <= 2:
		return 1
	case level <= 5:
		return 2
	case level <= 8:
		return 3
	default:
		return 4
	}
}
