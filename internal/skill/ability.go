package skill

// AbilityKind is a card's secondary ability, derived from its immutable
// base value. The mapping never re-evaluates against a boosted current
// value.
type AbilityKind string

const (
	AbilitySwapReserve   AbilityKind = "swap_reserve"
	AbilityRerollReserve AbilityKind = "reroll_reserve"
	AbilityBoostCard     AbilityKind = "boost_card"
	AbilityReserveBoost  AbilityKind = "reserve_boost"
)

// boostAmount is what a boost_card activation adds to a lane card.
const boostAmount = 2

// AbilityForBase maps a base value to an ability and its use count.
// Buckets: <=0 swap, 1-2 reroll (1 or 2 uses), 3-4 boost, >=5 reserve
// boost.
func AbilityForBase(base int) (AbilityKind, int) {
	switch {
	case base <= 0:
		return AbilitySwapReserve, 1
	case base <= 2:
		return AbilityRerollReserve, base
	case base <= 4:
		return AbilityBoostCard, 1
	default:
		return AbilityReserveBoost, 1
	}
}
