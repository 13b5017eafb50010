package netplay

import (
	"context"

	"github.com/google/uuid"

	"github.com/ericogr/trifate-cards/internal/ai"
	"github.com/ericogr/trifate-cards/internal/duel"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/skill"
	"github.com/ericogr/trifate-cards/internal/spell"
)

// Reconciler binds one peer's duel copy to the broadcast channel: local
// actions apply optimistically and broadcast, inbound intents replay the
// peer's actions. In solo mode the opposing votes and moves are
// synthesized by the automated strategy instead of a transport.
type Reconciler struct {
	peerID string
	side   game.Side
	d      *duel.Duel
	ch     Channel

	solo       bool
	difficulty int
	mover      ai.MoveSelector
	responder  ai.Responder
}

// New binds a duel to a channel. An empty peerID gets a fresh UUID.
func New(peerID string, side game.Side, d *duel.Duel, ch Channel) *Reconciler {
	if peerID == "" {
		peerID = uuid.NewString()
	}
	return &Reconciler{peerID: peerID, side: side, d: d, ch: ch}
}

// NewSolo binds a duel whose opponent is played by the given strategy.
// Nothing is sent anywhere; opposing intents are synthesized locally.
func NewSolo(side game.Side, d *duel.Duel, mover ai.MoveSelector, responder ai.Responder, difficulty int) *Reconciler {
	r := New("", side, d, Discard{})
	r.solo = true
	r.difficulty = difficulty
	r.mover = mover
	r.responder = responder
	return r
}

// PeerID returns this peer's sender identity.
func (r *Reconciler) PeerID() string { return r.peerID }

// Duel exposes the replicated state for rendering.
func (r *Reconciler) Duel() *duel.Duel { return r.d }

// Run pumps inbound intents until the context ends or the channel
// closes.
func (r *Reconciler) Run(ctx context.Context) {
	in := r.ch.Recv()
	for {
		select {
		case <-ctx.Done():
			return
		case intent, ok := <-in:
			if !ok {
				return
			}
			r.HandleIntent(ctx, intent)
		}
	}
}

// HandleIntent applies one inbound intent. Own echoes, unknown types and
// stale rounds are defensively ignored. A peer payload that mutates this
// side's own hand or drain total triggers a fresh reserve report, so the
// sender's stored view catches up with the change.
func (r *Reconciler) HandleIntent(ctx context.Context, in Intent) {
	if in.Sender == r.peerID {
		return
	}
	switch in.Type {
	case IntentAssign:
		r.d.Assign(in.Side, in.Lane, in.CardID)
	case IntentClear:
		r.d.ClearLane(in.Side, in.Lane)
	case IntentReveal:
		r.d.MarkReveal(in.Side)
	case IntentNextRound:
		r.d.MarkNextRound(in.Side)
	case IntentRematch:
		r.d.MarkRematch(in.Side)
	case IntentReserve:
		r.d.ReportReserve(in.Side, in.Reserve, in.Round)
	case IntentAnte:
		if in.Round == r.d.Round() {
			r.d.PlaceWager(in.Side, in.Bet, in.Odds)
		}
	case IntentSpellEffects:
		if in.Payload != nil {
			r.d.ApplyRemotePayload(*in.Payload)
			_ = r.reserveFollowUp(ctx, *in.Payload)
		}
	case IntentSkill:
		if in.Payload != nil {
			r.d.ApplyRemoteSkill(in.Side, in.SourceCardID, *in.Payload)
			_ = r.reserveFollowUp(ctx, *in.Payload)
		}
	case IntentResign:
		r.d.Resign(in.Side)
	}
}

// Assign commits a hand card locally and broadcasts the move plus the
// updated reserve sum.
func (r *Reconciler) Assign(ctx context.Context, lane int, cardID string) error {
	r.d.Assign(r.side, lane, cardID)
	if err := r.send(ctx, Intent{Type: IntentAssign, Side: r.side, Lane: lane, CardID: cardID}); err != nil {
		return err
	}
	return r.broadcastReserve(ctx)
}

// Clear empties a lane locally and broadcasts it.
func (r *Reconciler) Clear(ctx context.Context, lane int) error {
	r.d.ClearLane(r.side, lane)
	if err := r.send(ctx, Intent{Type: IntentClear, Side: r.side, Lane: lane}); err != nil {
		return err
	}
	return r.broadcastReserve(ctx)
}

// Reveal marks the local reveal vote. In solo mode the opponent commits
// its moves and votes immediately.
func (r *Reconciler) Reveal(ctx context.Context) error {
	r.d.MarkReveal(r.side)
	if err := r.send(ctx, Intent{Type: IntentReveal, Side: r.side}); err != nil {
		return err
	}
	r.syntheticMovesAndReveal()
	return nil
}

// NextRound marks the local next-round vote.
func (r *Reconciler) NextRound(ctx context.Context) error {
	r.d.MarkNextRound(r.side)
	if err := r.send(ctx, Intent{Type: IntentNextRound, Side: r.side}); err != nil {
		return err
	}
	if r.solo {
		r.d.MarkNextRound(r.side.Other())
	}
	return nil
}

// Rematch marks the local rematch vote.
func (r *Reconciler) Rematch(ctx context.Context) error {
	r.d.MarkRematch(r.side)
	if err := r.send(ctx, Intent{Type: IntentRematch, Side: r.side}); err != nil {
		return err
	}
	if r.solo {
		r.d.MarkRematch(r.side.Other())
	}
	return nil
}

// Wager places an ante bet and broadcasts it.
func (r *Reconciler) Wager(ctx context.Context, bet int, odds float64) error {
	r.d.PlaceWager(r.side, bet, odds)
	return r.send(ctx, Intent{Type: IntentAnte, Side: r.side, Bet: bet, Odds: odds, Round: r.d.Round()})
}

// CastSpell begins a spell; an immediately resolved payload broadcasts.
func (r *Reconciler) CastSpell(ctx context.Context, spellID string) error {
	p, err := r.d.CastSpell(r.side, spellID)
	if err != nil {
		return err
	}
	if err := r.broadcastPayload(ctx, p); err != nil {
		return err
	}
	return r.reserveFollowUp(ctx, p)
}

// PickTarget advances a pending cast; a resolved payload broadcasts.
func (r *Reconciler) PickTarget(ctx context.Context, ref spell.TargetRef) error {
	p, err := r.d.PickSpellTarget(r.side, ref)
	if err != nil {
		return err
	}
	if err := r.broadcastPayload(ctx, p); err != nil {
		return err
	}
	return r.reserveFollowUp(ctx, p)
}

// ActivateSkill runs one ability activation and broadcasts its payload.
func (r *Reconciler) ActivateSkill(ctx context.Context, act skill.Activation) error {
	var source string
	if c := r.d.LaneCard(r.side, act.Lane); c != nil {
		source = c.ID
	}
	p, ok := r.d.ActivateSkill(r.side, act)
	if !ok {
		return nil
	}
	if err := r.send(ctx, Intent{Type: IntentSkill, Side: r.side, SourceCardID: source, Payload: &p}); err != nil {
		return err
	}
	if err := r.reserveFollowUp(ctx, p); err != nil {
		return err
	}
	r.syntheticSkillTurns()
	return nil
}

// PassSkill passes the local skill turn.
func (r *Reconciler) PassSkill(ctx context.Context) error {
	r.d.PassSkill(r.side)
	r.syntheticSkillTurns()
	return nil
}

// Resign forfeits the match and broadcasts it.
func (r *Reconciler) Resign(ctx context.Context) error {
	r.d.Resign(r.side)
	return r.send(ctx, Intent{Type: IntentResign, Side: r.side})
}

// ReportReserve broadcasts the local reserve sum for the current round.
func (r *Reconciler) ReportReserve(ctx context.Context) error {
	return r.broadcastReserve(ctx)
}

// FinishAnimation commits the spin locally and, in solo mode, plays the
// opponent's skill turns.
func (r *Reconciler) FinishAnimation() {
	r.d.BeginAnimation()
	r.d.FinishAnimation()
	r.syntheticSkillTurns()
	if r.solo && r.d.Phase() == game.PhaseRoundEnd {
		r.d.MarkNextRound(r.side.Other())
	}
}

func (r *Reconciler) broadcastPayload(ctx context.Context, p spell.Payload) error {
	if p.Empty() {
		return nil
	}
	return r.send(ctx, Intent{Type: IntentSpellEffects, Side: r.side, Payload: &p})
}

// reserveFollowUp rebroadcasts the local reserve when a payload touched
// this side's hand or drain total.
func (r *Reconciler) reserveFollowUp(ctx context.Context, p spell.Payload) error {
	if !touchesReserve(p, r.side) {
		return nil
	}
	return r.broadcastReserve(ctx)
}

// touchesReserve reports whether applying the payload changed the given
// side's hand or drain total, the two inputs of its reserve sum.
func touchesReserve(p spell.Payload, side game.Side) bool {
	for _, cd := range p.CardDeltas {
		if cd.InHand && cd.Side == side {
			return true
		}
	}
	for _, hs := range p.HandSwaps {
		if hs.Side == side {
			return true
		}
	}
	for _, rd := range p.ReserveDrains {
		if rd.Side == side {
			return true
		}
	}
	for _, fd := range p.Discards {
		if fd.Side == side {
			return true
		}
	}
	for _, fw := range p.Draws {
		if fw.Side == side {
			return true
		}
	}
	for _, ex := range p.Exhausts {
		if ex.Side == side {
			return true
		}
	}
	return false
}

func (r *Reconciler) broadcastReserve(ctx context.Context) error {
	return r.send(ctx, Intent{
		Type:    IntentReserve,
		Side:    r.side,
		Reserve: r.d.LocalReserve(r.side),
		Round:   r.d.Round(),
	})
}

func (r *Reconciler) send(ctx context.Context, in Intent) error {
	in.Sender = r.peerID
	return r.ch.Send(ctx, in)
}

// syntheticMovesAndReveal commits the automated opponent's cards and its
// reveal vote. No-op outside solo mode.
func (r *Reconciler) syntheticMovesAndReveal() {
	if !r.solo || r.mover == nil {
		return
	}
	other := r.side.Other()
	for _, m := range r.mover.ChooseMoves(r.d, other, r.difficulty) {
		r.d.Assign(other, m.Lane, m.CardID)
	}
	r.d.MarkReveal(other)
}

// syntheticSkillTurns plays the automated opponent's ability turns until
// the turn returns to the local side or the phase ends.
func (r *Reconciler) syntheticSkillTurns() {
	if !r.solo || r.responder == nil {
		return
	}
	other := r.side.Other()
	for r.d.Phase() == game.PhaseSkill {
		eng := r.d.Skills()
		if eng == nil || eng.Turn() != other {
			return
		}
		act, ok := r.responder.ChooseSkill(eng, other)
		if !ok {
			r.d.PassSkill(other)
			continue
		}
		if _, applied := r.d.ActivateSkill(other, act); !applied {
			r.d.PassSkill(other)
		}
	}
}
