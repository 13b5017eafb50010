package skill

import (
	"strconv"

	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/spell"
)

// Activation is one ability use: the lane of the committed source card
// plus whatever target the ability requires.
type Activation struct {
	Lane       int    `json:"lane"`
	TargetLane int    `json:"target_lane,omitempty"`
	HandCardID string `json:"hand_card_id,omitempty"`
}

// Engine runs the turn-based ability phase after a round resolves.
// Turn order alternates starting from the initiative holder; a side with
// no legal activation cedes automatically; the phase ends when neither
// side can act or both have passed. Effects compile into spell payloads
// so both peers apply them through the one shared path.
type Engine struct {
	board    spell.Board
	view     spell.BoardView
	turn     game.Side
	passed   map[game.Side]bool
	usesLeft map[string]int
	done     bool
}

// NewEngine starts an ability phase with the initiative holder acting
// first.
func NewEngine(board spell.Board, view spell.BoardView, initiative game.Side) *Engine {
	e := &Engine{
		board:    board,
		view:     view,
		turn:     initiative,
		passed:   make(map[game.Side]bool),
		usesLeft: make(map[string]int),
	}
	e.settle()
	return e
}

// Turn returns whose activation it is, or SideNone once the phase ended.
func (e *Engine) Turn() game.Side {
	if e.done {
		return game.SideNone
	}
	return e.turn
}

// Done reports whether the ability phase has ended.
func (e *Engine) Done() bool { return e.done }

// Pass records an explicit pass; the phase ends when both sides passed.
func (e *Engine) Pass(side game.Side) {
	if e.done || side != e.turn {
		return
	}
	e.passed[side] = true
	e.turn = side.Other()
	e.settle()
}

// CanActivate reports whether a side has at least one legal activation.
func (e *Engine) CanActivate(side game.Side) bool {
	for lane := 0; lane < game.LaneCount; lane++ {
		if len(e.legalForLane(side, lane)) > 0 {
			return true
		}
	}
	return false
}

// LegalActivations enumerates every activation a side could take now,
// for the targeting UI and the automated responder.
func (e *Engine) LegalActivations(side game.Side) []Activation {
	var out []Activation
	for lane := 0; lane < game.LaneCount; lane++ {
		out = append(out, e.legalForLane(side, lane)...)
	}
	return out
}

// Activate performs one legal activation, applies its payload to the
// board and hands the turn over. Illegal or out-of-turn activations are
// silent no-ops returning ok=false.
func (e *Engine) Activate(side game.Side, act Activation) (payload spell.Payload, ok bool) {
	if e.done || side != e.turn {
		return spell.Payload{}, false
	}
	card := e.view.LaneCard(side, act.Lane)
	if card == nil {
		return spell.Payload{}, false
	}
	kind, _ := AbilityForBase(card.BaseValue)
	if e.remaining(card) <= 0 || !e.legal(side, kind, act) {
		return spell.Payload{}, false
	}

	p := e.compile(side, kind, card, act)
	spell.Apply(e.board, p)
	e.usesLeft[card.ID] = e.remaining(card) - 1
	e.passed[side] = false
	e.turn = side.Other()
	e.settle()
	return p, true
}

// ApplyRemote consumes an opponent activation that arrived as a payload.
// The board mutation already travelled inside the payload; the engine
// only advances its own turn bookkeeping.
func (e *Engine) ApplyRemote(side game.Side, sourceCardID string, p spell.Payload) {
	if e.done || side != e.turn {
		return
	}
	spell.Apply(e.board, p)
	if sourceCardID != "" {
		e.usesLeft[sourceCardID] = e.remainingByID(sourceCardID) - 1
	}
	e.passed[side] = false
	e.turn = side.Other()
	e.settle()
}

// remaining returns how many uses a committed card's ability has left.
// Tracked per card identity, so it follows the card across lanes.
func (e *Engine) remaining(card *game.Card) int {
	if left, seen := e.usesLeft[card.ID]; seen {
		return left
	}
	_, uses := AbilityForBase(card.BaseValue)
	return uses
}

func (e *Engine) remainingByID(cardID string) int {
	for _, side := range []game.Side{game.SideHost, game.SideGuest} {
		for lane := 0; lane < game.LaneCount; lane++ {
			if c := e.view.LaneCard(side, lane); c != nil && c.ID == cardID {
				return e.remaining(c)
			}
		}
	}
	if left, seen := e.usesLeft[cardID]; seen {
		return left
	}
	return 1
}

// legalForLane lists activations for one committed card.
func (e *Engine) legalForLane(side game.Side, lane int) []Activation {
	card := e.view.LaneCard(side, lane)
	if card == nil || e.remaining(card) <= 0 {
		return nil
	}
	kind, _ := AbilityForBase(card.BaseValue)
	var out []Activation
	switch kind {
	case AbilitySwapReserve, AbilityRerollReserve:
		for _, h := range e.view.HandCards(side) {
			out = append(out, Activation{Lane: lane, HandCardID: h.ID})
		}
	case AbilityBoostCard:
		for target := 0; target < game.LaneCount; target++ {
			if e.view.LaneCard(side, target) != nil {
				out = append(out, Activation{Lane: lane, TargetLane: target})
			}
		}
	case AbilityReserveBoost:
		for _, h := range e.view.HandCards(side) {
			if engine.CardValue(&h) <= 0 {
				continue
			}
			for target := 0; target < game.LaneCount; target++ {
				if e.view.LaneCard(side, target) != nil {
					out = append(out, Activation{Lane: lane, TargetLane: target, HandCardID: h.ID})
				}
			}
		}
	}
	return out
}

// legal checks one concrete activation against its ability's rules.
func (e *Engine) legal(side game.Side, kind AbilityKind, act Activation) bool {
	switch kind {
	case AbilitySwapReserve, AbilityRerollReserve:
		return e.handCard(side, act.HandCardID) != nil
	case AbilityBoostCard:
		return e.view.LaneCard(side, act.TargetLane) != nil
	case AbilityReserveBoost:
		h := e.handCard(side, act.HandCardID)
		return h != nil && engine.CardValue(h) > 0 && e.view.LaneCard(side, act.TargetLane) != nil
	}
	return false
}

// compile turns an activation into the payload both peers will apply.
func (e *Engine) compile(side game.Side, kind AbilityKind, card *game.Card, act Activation) spell.Payload {
	var st spell.RuntimeState
	switch kind {
	case AbilitySwapReserve:
		st.HandSwaps = append(st.HandSwaps, spell.HandSwap{Side: side, Lane: act.Lane, CardID: act.HandCardID})
		st.AddLog(card.Name + " swaps with a reserve card")
	case AbilityRerollReserve:
		st.Discards = append(st.Discards, spell.ForcedDiscard{Side: side, CardID: act.HandCardID})
		st.Draws = append(st.Draws, spell.ForcedDraw{Side: side, Count: 1})
		st.AddLog(card.Name + " rerolls a reserve card")
	case AbilityBoostCard:
		st.CardDeltas = append(st.CardDeltas, spell.CardDelta{Side: side, Lane: act.TargetLane, NumberDelta: boostAmount})
		st.AddLog(card.Name + " boosts lane " + strconv.Itoa(act.TargetLane) + " by " + strconv.Itoa(boostAmount))
	case AbilityReserveBoost:
		h := e.handCard(side, act.HandCardID)
		amount := engine.CardValue(h)
		st.Exhausts = append(st.Exhausts, spell.ExhaustCard{Side: side, CardID: act.HandCardID})
		st.CardDeltas = append(st.CardDeltas, spell.CardDelta{Side: side, Lane: act.TargetLane, NumberDelta: amount})
		st.AddLog(card.Name + " exhausts a reserve card to boost lane " + strconv.Itoa(act.TargetLane) + " by " + strconv.Itoa(amount))
	}
	p := st.Harvest()
	p.Caster = side
	return p
}

func (e *Engine) handCard(side game.Side, cardID string) *game.Card {
	if cardID == "" {
		return nil
	}
	hand := e.view.HandCards(side)
	for i := range hand {
		if hand[i].ID == cardID {
			return &hand[i]
		}
	}
	return nil
}

// settle cedes turns for sides that cannot act and detects phase end.
func (e *Engine) settle() {
	if e.done {
		return
	}
	if e.passed[game.SideHost] && e.passed[game.SideGuest] {
		e.done = true
		return
	}
	if !e.CanActivate(game.SideHost) && !e.CanActivate(game.SideGuest) {
		e.done = true
		return
	}
	if !e.CanActivate(e.turn) {
		// Auto-cede; the other side is known to have a legal move.
		e.turn = e.turn.Other()
	}
}
