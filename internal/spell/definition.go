package spell

import "github.com/ericogr/trifate-cards/internal/game"

// BoardView is the read-only board access cost functions and resolvers
// get. The duel state implements it alongside Board.
type BoardView interface {
	LaneCard(side game.Side, lane int) *game.Card
	HandCards(side game.Side) []game.Card
	Reserve(side game.Side) int
	Initiative() game.Side
	ChillStacks(side game.Side, lane int) int
	WheelToken(wheel int) int
	Round() int
	Phase() game.Phase
}

// CostContext feeds computed mana costs.
type CostContext struct {
	Caster   game.Side
	Opponent game.Side
	Phase    game.Phase
	View     BoardView
}

// ResolveContext is what a resolver callback receives. Effects are
// recorded by convention into State; the resolver must not mutate the
// board directly.
type ResolveContext struct {
	Caster   game.Side
	Opponent game.Side
	Phase    game.Phase
	Targets  []TargetRef
	View     BoardView
	State    *RuntimeState
}

// Target returns the pick for stage i, or a skipped ref when the stage
// was optional and not supplied.
func (rc *ResolveContext) Target(i int) TargetRef {
	if i < 0 || i >= len(rc.Targets) {
		return TargetRef{Skipped: true}
	}
	return rc.Targets[i]
}

// Definition is a declarative spell. Cost is the fixed mana cost unless
// CostFn is set. Stages may be empty for untargeted spells.
type Definition struct {
	ID          string
	Name        string
	Description string
	Affinity    game.Element
	Cost        int
	CostFn      func(CostContext) int
	Phases      []game.Phase
	Stages      []TargetStage
	Resolve     func(*ResolveContext)
}

// ManaCost computes the spell's cost for the given context.
func (d *Definition) ManaCost(ctx CostContext) int {
	if d.CostFn != nil {
		c := d.CostFn(ctx)
		if c < 0 {
			return 0
		}
		return c
	}
	return d.Cost
}

// AllowedIn reports whether the spell may be cast in the given phase. An
// empty phase list means any phase.
func (d *Definition) AllowedIn(phase game.Phase) bool {
	if len(d.Phases) == 0 {
		return true
	}
	for _, p := range d.Phases {
		if p == phase {
			return true
		}
	}
	return false
}

// firstManualStage returns the index of the first stage at or after from
// that needs a manual pick, or -1.
func (d *Definition) firstManualStage(from int) int {
	for i := from; i < len(d.Stages); i++ {
		if d.Stages[i].NeedsPick() {
			return i
		}
	}
	return -1
}
