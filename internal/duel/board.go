package duel

import (
	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/game"
)

// Duel implements spell.Board, spell.BoardView and spell.ManaPool so the
// casting machine and the skill engine mutate match state through one
// surface.

func (d *Duel) LaneCard(side game.Side, lane int) *game.Card {
	if lane < 0 || lane >= game.LaneCount {
		return nil
	}
	return d.assigns[side].Lanes[lane]
}

func (d *Duel) AdjustLaneValue(side game.Side, lane, delta int) {
	c := d.LaneCard(side, lane)
	if c == nil {
		return
	}
	adjustCard(c, delta)
}

func (d *Duel) SetLaneValue(side game.Side, lane, value int) {
	c := d.LaneCard(side, lane)
	if c == nil {
		return
	}
	if value < 0 {
		value = 0
	}
	switch {
	case c.Value != nil:
		*c.Value = value
	case c.Split != nil:
		c.Split.Left = value
	}
}

func (d *Duel) SwapLanes(side game.Side, laneA, laneB int) {
	if laneA < 0 || laneA >= game.LaneCount || laneB < 0 || laneB >= game.LaneCount {
		return
	}
	a := d.assigns[side]
	a.Lanes[laneA], a.Lanes[laneB] = a.Lanes[laneB], a.Lanes[laneA]
}

func (d *Duel) SwapWithHand(side game.Side, lane int, cardID string) {
	if lane < 0 || lane >= game.LaneCount {
		return
	}
	f := d.fighters[side]
	picked, ok := f.RemoveFromHand(cardID)
	if !ok {
		return
	}
	a := d.assigns[side]
	if prev := a.Lanes[lane]; prev != nil {
		f.Hand = append(f.Hand, *prev)
	}
	a.Lanes[lane] = &picked
	d.dropReport(side)
}

func (d *Duel) AdjustHandValue(side game.Side, cardID string, delta int) {
	c := d.fighters[side].HandCard(cardID)
	if c == nil {
		return
	}
	adjustCard(c, delta)
	d.dropReport(side)
}

func (d *Duel) ForceDiscard(side game.Side, cardID string, count int) {
	f := d.fighters[side]
	if cardID != "" {
		f.DiscardFromHand(cardID)
	} else {
		for i := 0; i < count && len(f.Hand) > 0; i++ {
			f.DiscardFromHand(f.Hand[0].ID)
		}
	}
	d.dropReport(side)
}

func (d *Duel) ForceDraw(side game.Side, count int) {
	f := d.fighters[side]
	for i := 0; i < count; i++ {
		f.DrawOne()
	}
	d.dropReport(side)
}

func (d *Duel) ExhaustCard(side game.Side, cardID string) {
	d.fighters[side].ExhaustFromHand(cardID)
	d.dropReport(side)
}

// AddTokenDelta moves a wheel token. While a resolution snapshot is
// frozen the delta shifts the snapshot baseline too, so the corrected
// outcome lands on the shifted slice after the spin.
func (d *Duel) AddTokenDelta(wheel, delta int) {
	if wheel < 0 || wheel >= game.WheelCount {
		return
	}
	d.wheels[wheel].AdvanceToken(delta)
	if d.snapshot != nil {
		d.snapshot.wheels[wheel].AdvanceToken(delta)
	}
}

func (d *Duel) DrainReserve(side game.Side, amount int) {
	if amount < 0 {
		return
	}
	d.drains[side] += amount
}

func (d *Duel) AddChill(side game.Side, lane, stacks int) {
	if lane < 0 || lane >= game.LaneCount {
		return
	}
	ch := d.chills[side]
	ch[lane] += stacks
	if ch[lane] < 0 {
		ch[lane] = 0
	}
	d.chills[side] = ch
}

func (d *Duel) SetInitiative(side game.Side) {
	if side == game.SideNone {
		return
	}
	d.initiative = side
}

func (d *Duel) AppendLog(line string) { d.appendLog(line) }

func (d *Duel) HandCards(side game.Side) []game.Card { return d.fighters[side].Hand }

// Reserve returns the side's reserve sum: the newest peer report for the
// current round when present, adjusted for drains recorded since it
// arrived; otherwise a local best-effort estimate.
func (d *Duel) Reserve(side game.Side) int {
	if r, ok := d.reports[side]; ok && r.Round == d.round {
		v := r.Value - (d.drains[side] - r.Drain)
		if v < 0 {
			v = 0
		}
		return v
	}
	return engine.ReserveSum(d.fighters[side].Hand, d.drains[side])
}

// dropReport invalidates a stored peer report after a hand mutation.
// Hands replicate through the shared payload path, so both peers fall
// back to the same local recomputation until the next report arrives.
func (d *Duel) dropReport(side game.Side) { delete(d.reports, side) }

// LocalReserve always computes from the local hand; it is what a peer
// broadcasts for its own side.
func (d *Duel) LocalReserve(side game.Side) int {
	return engine.ReserveSum(d.fighters[side].Hand, d.drains[side])
}

func (d *Duel) Initiative() game.Side { return d.initiative }

func (d *Duel) ChillStacks(side game.Side, lane int) int {
	if lane < 0 || lane >= game.LaneCount {
		return 0
	}
	return d.chills[side][lane]
}

func (d *Duel) WheelToken(wheel int) int {
	if wheel < 0 || wheel >= game.WheelCount {
		return 0
	}
	return d.wheels[wheel].Token
}

// Wheels exposes the wheel layouts for rendering.
func (d *Duel) Wheels() [game.WheelCount]game.Wheel { return d.wheels }

func (d *Duel) Round() int        { return d.round }
func (d *Duel) Phase() game.Phase { return d.phase }

func (d *Duel) Mana(side game.Side) int { return d.mana[side] }

func (d *Duel) SpendMana(side game.Side, amount int) {
	d.mana[side] -= amount
	if d.mana[side] < 0 {
		d.mana[side] = 0
	}
}

func (d *Duel) RefundMana(side game.Side, amount int) {
	d.mana[side] += amount
	if d.mana[side] > manaCap {
		d.mana[side] = manaCap
	}
}

// adjustCard adds delta to whichever face counts, floored at zero.
func adjustCard(c *game.Card, delta int) {
	switch {
	case c.Value != nil:
		v := *c.Value + delta
		if v < 0 {
			v = 0
		}
		*c.Value = v
	case c.Split != nil:
		v := c.Split.Left + delta
		if v < 0 {
			v = 0
		}
		c.Split.Left = v
	}
}
