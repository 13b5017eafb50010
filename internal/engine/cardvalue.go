package engine

import "github.com/ericogr/trifate-cards/internal/game"

// CardValue normalizes any card reference to its integer contribution.
// Priority: explicit current value, then the left face of a split pair,
// then 0. Never fails; a nil reference is an empty lane worth 0. Decoy
// cards resolve to their real number so ReserveSum comparisons stay
// honest.
func CardValue(c *game.Card) int {
	if c == nil {
		return 0
	}
	if c.Value != nil {
		return *c.Value
	}
	if c.Split != nil {
		return c.Split.Left
	}
	return 0
}

// ReserveSum totals the values of a fighter's unplayed hand cards,
// skipping cards already exhausted by skills, and subtracts the given
// persistent drain penalty (floored at zero).
func ReserveSum(hand []game.Card, drainPenalty int) int {
	sum := 0
	for i := range hand {
		if hand[i].ReserveExhausted {
			continue
		}
		sum += CardValue(&hand[i])
	}
	sum -= drainPenalty
	if sum < 0 {
		sum = 0
	}
	return sum
}
