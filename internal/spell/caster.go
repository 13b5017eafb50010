package spell

import (
	"errors"
	"fmt"

	"github.com/ericogr/trifate-cards/internal/game"
)

// CastState is the casting machine's position.
type CastState string

const (
	StateIdle           CastState = "idle"
	StateAwaitingTarget CastState = "awaiting_target"
)

// ManaPool is the mana accounting surface the caster needs from the
// duel.
type ManaPool interface {
	Mana(side game.Side) int
	SpendMana(side game.Side, amount int)
	RefundMana(side game.Side, amount int)
}

// PendingCast is a spell mid-targeting: mana already deducted, some
// manual stages still unsatisfied.
type PendingCast struct {
	Def      *Definition
	Caster   game.Side
	Stage    int
	Targets  []TargetRef
	PaidMana int
}

// ErrResolverFailed wraps a resolver panic. The cast becomes a no-op and
// mana is refunded; the error is surfaced for diagnostics only and never
// shown to the opponent.
var ErrResolverFailed = errors.New("spell resolver failed")

// Caster runs the Idle → AwaitingTarget(stage) → Idle casting protocol.
// Each peer owns one; only harvested payloads travel between peers.
type Caster struct {
	mana    ManaPool
	view    BoardView
	pending map[game.Side]*PendingCast
	scratch RuntimeState
}

// NewCaster builds a casting machine over the given mana pool and board
// view.
func NewCaster(mana ManaPool, view BoardView) *Caster {
	return &Caster{mana: mana, view: view, pending: make(map[game.Side]*PendingCast)}
}

// State returns the machine state for a side.
func (c *Caster) State(side game.Side) CastState {
	if c.pending[side] != nil {
		return StateAwaitingTarget
	}
	return StateIdle
}

// Pending exposes the side's in-flight cast for the targeting UI, or
// nil.
func (c *Caster) Pending(side game.Side) *PendingCast {
	return c.pending[side]
}

// Begin activates a spell for a side. Insufficient mana is a silent
// no-op (started=false, no mutation). When every stage is automatic the
// resolver runs immediately and the harvested payload is returned;
// otherwise the machine parks in AwaitingTarget and the payload comes
// from a later PickTarget call.
func (c *Caster) Begin(def *Definition, side game.Side) (payload Payload, started bool, err error) {
	if def == nil || !def.AllowedIn(c.view.Phase()) {
		return Payload{}, false, nil
	}
	// A newer cast replaces the caster's own still-pending spell; the
	// old one refunds first so its mana counts toward the new cost.
	if old := c.pending[side]; old != nil {
		c.mana.RefundMana(side, old.PaidMana)
		delete(c.pending, side)
	}
	cost := def.ManaCost(CostContext{Caster: side, Opponent: side.Other(), Phase: c.view.Phase(), View: c.view})
	if c.mana.Mana(side) < cost {
		return Payload{}, false, nil
	}
	c.mana.SpendMana(side, cost)

	pc := &PendingCast{Def: def, Caster: side, PaidMana: cost}
	if first := def.firstManualStage(0); first >= 0 {
		// Auto-satisfy everything before the first manual stage.
		for i := 0; i < first; i++ {
			pc.Targets = append(pc.Targets, autoTarget(def.Stages[i], side))
		}
		pc.Stage = first
		c.pending[side] = pc
		return Payload{}, true, nil
	}
	for i := range def.Stages {
		pc.Targets = append(pc.Targets, autoTarget(def.Stages[i], side))
	}
	p, err := c.resolve(pc)
	return p, true, err
}

// PickTarget supplies the manual selection for the current stage and
// advances the machine. When the last stage is satisfied the resolver
// runs and the payload is returned with done=true.
func (c *Caster) PickTarget(side game.Side, ref TargetRef) (payload Payload, done bool, err error) {
	pc := c.pending[side]
	if pc == nil {
		return Payload{}, false, nil
	}
	stage := pc.Def.Stages[pc.Stage]
	if !matchesStage(stage, ref, side) {
		return Payload{}, false, nil
	}
	pc.Targets = append(pc.Targets, ref)

	next := pc.Def.firstManualStage(pc.Stage + 1)
	if next >= 0 {
		for i := pc.Stage + 1; i < next; i++ {
			pc.Targets = append(pc.Targets, autoTarget(pc.Def.Stages[i], side))
		}
		pc.Stage = next
		return Payload{}, false, nil
	}
	for i := pc.Stage + 1; i < len(pc.Def.Stages); i++ {
		pc.Targets = append(pc.Targets, autoTarget(pc.Def.Stages[i], side))
	}
	delete(c.pending, side)
	p, err := c.resolve(pc)
	return p, true, err
}

// Cancel abandons a pending cast. Mana comes back only when refund is
// requested.
func (c *Caster) Cancel(side game.Side, refund bool) {
	pc := c.pending[side]
	if pc == nil {
		return
	}
	if refund {
		c.mana.RefundMana(side, pc.PaidMana)
	}
	delete(c.pending, side)
}

// resolve runs the resolver exactly once over a fresh scratch state and
// harvests the payload. A panicking resolver refunds mana, clears the
// pending cast and surfaces the error to the caller.
func (c *Caster) resolve(pc *PendingCast) (payload Payload, err error) {
	delete(c.pending, pc.Caster)
	c.scratch = RuntimeState{}
	defer func() {
		if r := recover(); r != nil {
			c.scratch = RuntimeState{}
			c.mana.RefundMana(pc.Caster, pc.PaidMana)
			payload = Payload{}
			err = fmt.Errorf("%w: %s: %v", ErrResolverFailed, pc.Def.ID, r)
		}
	}()
	rc := &ResolveContext{
		Caster:   pc.Caster,
		Opponent: pc.Caster.Other(),
		Phase:    c.view.Phase(),
		Targets:  pc.Targets,
		View:     c.view,
		State:    &c.scratch,
	}
	pc.Def.Resolve(rc)
	p := c.scratch.Harvest()
	p.SpellID = pc.Def.ID
	p.Caster = pc.Caster
	return p, nil
}

// autoTarget satisfies a non-manual stage.
func autoTarget(stage TargetStage, caster game.Side) TargetRef {
	switch stage.Kind {
	case TargetSelf:
		return TargetRef{Kind: TargetSelf, Side: caster}
	case TargetNone:
		return TargetRef{Kind: TargetNone}
	}
	return TargetRef{Kind: stage.Kind, Skipped: true}
}
