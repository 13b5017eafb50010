package spell

import (
	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/game"
)

// Payload is the immutable effect bundle harvested from a resolver run.
// Every field is independently optional. Payloads are what peers exchange
// in spellEffects intents: the resolver runs only on the caster's client,
// both clients apply the identical payload.
type Payload struct {
	SpellID       string                `json:"spell_id,omitempty"`
	Caster        game.Side             `json:"caster,omitempty"`
	Mirrors       []MirrorEffect        `json:"mirrors,omitempty"`
	CardDeltas    []CardDelta           `json:"card_deltas,omitempty"`
	LaneSwaps     []LaneSwap            `json:"lane_swaps,omitempty"`
	HandSwaps     []HandSwap            `json:"hand_swaps,omitempty"`
	TokenDeltas   []TokenDelta          `json:"token_deltas,omitempty"`
	ReserveDrains []ReserveDrain        `json:"reserve_drains,omitempty"`
	Chills        []ChillDelta          `json:"chills,omitempty"`
	Discards      []ForcedDiscard       `json:"discards,omitempty"`
	Draws         []ForcedDraw          `json:"draws,omitempty"`
	Exhausts      []ExhaustCard         `json:"exhausts,omitempty"`
	InitiativeSet game.Side             `json:"initiative_set,omitempty"`
	Challenges    []InitiativeChallenge `json:"challenges,omitempty"`
	Log           []string              `json:"log,omitempty"`
}

// Empty reports whether the payload carries no effects at all.
func (p Payload) Empty() bool {
	return len(p.Mirrors) == 0 && len(p.CardDeltas) == 0 && len(p.LaneSwaps) == 0 &&
		len(p.HandSwaps) == 0 && len(p.TokenDeltas) == 0 && len(p.ReserveDrains) == 0 &&
		len(p.Chills) == 0 && len(p.Discards) == 0 && len(p.Draws) == 0 &&
		len(p.Exhausts) == 0 && p.InitiativeSet == game.SideNone &&
		len(p.Challenges) == 0 && len(p.Log) == 0
}

// Board is the mutable surface payload application works on. The duel
// state implements it; tests use a lightweight fake.
type Board interface {
	// LaneCard returns the committed card in a lane, or nil.
	LaneCard(side game.Side, lane int) *game.Card
	// AdjustLaneValue adds delta to a lane card's current value,
	// floored at zero. No-op when the lane is empty.
	AdjustLaneValue(side game.Side, lane int, delta int)
	// SetLaneValue overwrites a lane card's current value (mirrors).
	SetLaneValue(side game.Side, lane int, value int)
	// SwapLanes exchanges two lane positions on one side.
	SwapLanes(side game.Side, laneA, laneB int)
	// SwapWithHand exchanges a committed lane card with a hand card.
	SwapWithHand(side game.Side, lane int, cardID string)
	// AdjustHandValue adds delta to a hand card's value, floored at 0.
	AdjustHandValue(side game.Side, cardID string, delta int)
	// ForceDiscard discards a specific hand card, or count cards from
	// the left when cardID is empty.
	ForceDiscard(side game.Side, cardID string, count int)
	// ForceDraw draws count cards, padding with fillers on exhaustion.
	ForceDraw(side game.Side, count int)
	// ExhaustCard spends a hand card into the exhaust pile.
	ExhaustCard(side game.Side, cardID string)
	// AddTokenDelta advances a wheel token by delta (mod 16).
	AddTokenDelta(wheel int, delta int)
	// DrainReserve records a persistent reserve penalty.
	DrainReserve(side game.Side, amount int)
	// AddChill stacks a lane lock.
	AddChill(side game.Side, lane int, stacks int)
	// SetInitiative hands initiative directly to a side.
	SetInitiative(side game.Side)
	// AppendLog records a human-readable event line.
	AppendLog(line string)
}

// Apply consumes an effect payload and mutates the board. It is the
// single application path shared by locally-cast spells, inbound
// spellEffects intents and the skill-ability engine, so both peers
// mutate their boards identically.
func Apply(b Board, p Payload) {
	for _, m := range p.Mirrors {
		opp := b.LaneCard(m.Side.Other(), m.Lane)
		if opp == nil {
			continue
		}
		b.SetLaneValue(m.Side, m.Lane, engine.CardValue(opp))
	}
	for _, d := range p.CardDeltas {
		if d.InHand {
			b.AdjustHandValue(d.Side, d.CardID, d.NumberDelta)
			continue
		}
		b.AdjustLaneValue(d.Side, d.Lane, d.NumberDelta)
	}
	for _, sw := range p.LaneSwaps {
		b.SwapLanes(sw.Side, sw.LaneA, sw.LaneB)
	}
	for _, hs := range p.HandSwaps {
		b.SwapWithHand(hs.Side, hs.Lane, hs.CardID)
	}
	for _, td := range p.TokenDeltas {
		b.AddTokenDelta(td.Wheel, td.Delta)
	}
	for _, rd := range p.ReserveDrains {
		b.DrainReserve(rd.Side, rd.Amount)
	}
	for _, ch := range p.Chills {
		b.AddChill(ch.Side, ch.Lane, ch.Stacks)
	}
	for _, fd := range p.Discards {
		b.ForceDiscard(fd.Side, fd.CardID, fd.Count)
	}
	for _, fw := range p.Draws {
		b.ForceDraw(fw.Side, fw.Count)
	}
	for _, ex := range p.Exhausts {
		b.ExhaustCard(ex.Side, ex.CardID)
	}
	if p.InitiativeSet != game.SideNone {
		b.SetInitiative(p.InitiativeSet)
	}
	for _, c := range p.Challenges {
		applyChallenge(b, c)
	}
	for _, line := range p.Log {
		b.AppendLog(line)
	}
}

// applyChallenge resolves an initiative challenge: the challenger's lane
// card value against its lane opponent's; the higher value captures
// initiative, equal values leave it untouched.
func applyChallenge(b Board, c InitiativeChallenge) {
	mine := b.LaneCard(c.Side, c.Lane)
	theirs := b.LaneCard(c.Side.Other(), c.Lane)
	mv, tv := engine.CardValue(mine), engine.CardValue(theirs)
	switch {
	case mv > tv:
		b.SetInitiative(c.Side)
	case tv > mv:
		b.SetInitiative(c.Side.Other())
	}
}
