package duel

import (
	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/skill"
	"github.com/ericogr/trifate-cards/internal/spell"
)

// MarkReveal records one side's reveal vote. The round resolves only
// once both votes are in; a stalled peer simply leaves the vote pending.
func (d *Duel) MarkReveal(side game.Side) {
	if d.phase != game.PhaseChoosing {
		return
	}
	d.votes[voteReveal][side] = true
	if d.bothVoted(voteReveal) {
		d.reveal()
	}
}

// MarkNextRound records one side's next-round vote.
func (d *Duel) MarkNextRound(side game.Side) {
	if d.phase != game.PhaseRoundEnd {
		return
	}
	d.votes[voteNextRound][side] = true
	if d.bothVoted(voteNextRound) {
		d.nextRound()
	}
}

// MarkRematch records one side's rematch vote after the match ended.
func (d *Duel) MarkRematch(side game.Side) {
	if d.phase != game.PhaseEnded {
		return
	}
	d.votes[voteRematch][side] = true
	if d.bothVoted(voteRematch) {
		d.rematch()
	}
}

func (d *Duel) bothVoted(kind voteKind) bool {
	return d.votes[kind][game.SideHost] && d.votes[kind][game.SideGuest]
}

// reveal freezes the pre-animation snapshot and computes the round
// outcome. Token positions do not commit until the animation finishes.
func (d *Duel) reveal() {
	d.phase = game.PhaseRevealed
	d.caster.Cancel(game.SideHost, true)
	d.caster.Cancel(game.SideGuest, true)

	d.snapshot = &roundSnapshot{
		wheels:     d.wheels,
		initiative: d.initiative,
		tallies: map[game.Side]int{
			game.SideHost:  d.tallies[game.SideHost],
			game.SideGuest: d.tallies[game.SideGuest],
		},
		ante:  d.ante,
		round: d.round,
	}
	d.recompute()
}

// recompute re-runs evaluation and summarization against the frozen
// snapshot and the live board. Safe to call repeatedly; late spells call
// it to jump-correct the displayed result mid-animation.
func (d *Duel) recompute() {
	snap := d.snapshot
	if snap == nil {
		return
	}
	var pairs [game.WheelCount]engine.LanePair
	for i := 0; i < game.WheelCount; i++ {
		pairs[i] = engine.LanePair{
			Host:  d.assigns[game.SideHost].Lanes[i],
			Guest: d.assigns[game.SideGuest].Lanes[i],
		}
	}
	in := engine.RoundInput{
		Pairs:      pairs,
		Initiative: snap.initiative,
		Reserves: map[game.Side]int{
			game.SideHost:  d.Reserve(game.SideHost),
			game.SideGuest: d.Reserve(game.SideGuest),
		},
		Wheels: snap.wheels,
	}
	d.outcomes = engine.EvaluateRound(in)
	sum := engine.Summarize(engine.SummaryInput{
		Outcomes:   d.outcomes,
		Round:      snap.round,
		Tally:      snap.tallies,
		Initiative: snap.initiative,
		Ante:       snap.ante,
		WinGoal:    d.cfg.WinGoal,
		Names:      d.names(),
	})
	d.summary = &sum
}

// BeginAnimation starts the wheel-spin sequence. It mutates nothing; the
// renderer drives frames and calls FinishAnimation when done.
func (d *Duel) BeginAnimation() {
	if d.phase != game.PhaseRevealed {
		return
	}
	d.phase = game.PhaseAnimating
}

// FinishAnimation commits the resolution atomically: final token
// positions, tallies, initiative, ante settlement and log lines all land
// at once. The phase moves to skill, round end, or match end.
func (d *Duel) FinishAnimation() {
	if d.phase != game.PhaseAnimating && d.phase != game.PhaseRevealed {
		return
	}
	sum := d.summary
	if sum == nil {
		return
	}
	for i := 0; i < game.WheelCount; i++ {
		d.wheels[i].Token = d.outcomes[i].TargetSlice
	}
	d.tallies[game.SideHost] = sum.Tally[game.SideHost]
	d.tallies[game.SideGuest] = sum.Tally[game.SideGuest]
	if sum.Initiative != game.SideNone {
		d.initiative = sum.Initiative
	}
	for _, line := range sum.Log {
		d.appendLog(line)
	}
	d.snapshot = nil

	switch {
	case sum.MatchOver:
		d.phase = game.PhaseEnded
	case d.cfg.SkillMode:
		d.phase = game.PhaseSkill
		d.skills = skill.NewEngine(d, d, d.initiative)
		if d.skills.Done() {
			d.endSkillPhase()
		}
	default:
		d.phase = game.PhaseRoundEnd
	}
}

// ActivateSkill runs one ability activation during the skill phase. The
// returned payload must be broadcast when ok.
func (d *Duel) ActivateSkill(side game.Side, act skill.Activation) (spell.Payload, bool) {
	if d.phase != game.PhaseSkill || d.skills == nil {
		return spell.Payload{}, false
	}
	p, ok := d.skills.Activate(side, act)
	if d.skills.Done() {
		d.endSkillPhase()
	}
	return p, ok
}

// PassSkill records an explicit pass during the skill phase.
func (d *Duel) PassSkill(side game.Side) {
	if d.phase != game.PhaseSkill || d.skills == nil {
		return
	}
	d.skills.Pass(side)
	if d.skills.Done() {
		d.endSkillPhase()
	}
}

// ApplyRemoteSkill consumes the peer's ability activation payload.
func (d *Duel) ApplyRemoteSkill(side game.Side, sourceCardID string, p spell.Payload) {
	if d.phase != game.PhaseSkill || d.skills == nil {
		return
	}
	d.skills.ApplyRemote(side, sourceCardID, p)
	if d.skills.Done() {
		d.endSkillPhase()
	}
}

// Resign ends the match immediately in the opponent's favor.
func (d *Duel) Resign(side game.Side) {
	if d.phase == game.PhaseEnded || side == game.SideNone {
		return
	}
	winner := side.Other()
	sum := engine.RoundSummary{
		Tally: map[game.Side]int{
			game.SideHost:  d.tallies[game.SideHost],
			game.SideGuest: d.tallies[game.SideGuest],
		},
		Initiative:  d.initiative,
		MatchOver:   true,
		MatchWinner: winner,
	}
	d.summary = &sum
	d.snapshot = nil
	d.skills = nil
	d.appendLog(d.names()[side] + " resigns — " + d.names()[winner] + " wins the match")
	d.phase = game.PhaseEnded
}

// Winner returns the match winner once the duel ended, or SideNone.
func (d *Duel) Winner() game.Side {
	if d.phase != game.PhaseEnded || d.summary == nil {
		return game.SideNone
	}
	return d.summary.MatchWinner
}

func (d *Duel) endSkillPhase() {
	d.skills = nil
	d.phase = game.PhaseRoundEnd
}

// nextRound discards committed cards, refills hands and resets per-round
// state. The RNG stream is untouched; only wheel generation spends it.
func (d *Duel) nextRound() {
	for _, side := range []game.Side{game.SideHost, game.SideGuest} {
		f := d.fighters[side]
		a := d.assigns[side]
		for i := range a.Lanes {
			if c := a.Lanes[i]; c != nil {
				f.Discard = append(f.Discard, *c)
				a.Lanes[i] = nil
			}
		}
		f.RefillHand()
		d.chills[side] = [game.LaneCount]int{}
		d.mana[side] += manaPerRound
		if d.mana[side] > manaCap {
			d.mana[side] = manaCap
		}
	}
	d.round++
	d.ante = game.NewAnte(d.cfg.AnteMode, d.round)
	d.reports = map[game.Side]reserveReport{}
	d.votes = newVotes()
	d.snapshot = nil
	d.summary = nil
	d.phase = game.PhaseChoosing
}

// rematch rebuilds the match from the original config. Wheel generation
// continues the shared RNG stream, so both peers regenerate identical
// layouts without renegotiating a seed.
func (d *Duel) rematch() {
	d.fighters = map[game.Side]*game.Fighter{
		game.SideHost:  {Name: d.cfg.HostName, Deck: append([]game.Card(nil), d.cfg.HostDeck...)},
		game.SideGuest: {Name: d.cfg.GuestName, Deck: append([]game.Card(nil), d.cfg.GuestDeck...)},
	}
	d.assigns = map[game.Side]*game.Assignment{
		game.SideHost:  {},
		game.SideGuest: {},
	}
	d.chills = map[game.Side][game.LaneCount]int{}
	d.drains = map[game.Side]int{}
	d.mana = map[game.Side]int{game.SideHost: startingMana, game.SideGuest: startingMana}
	d.tallies = map[game.Side]int{game.SideHost: 0, game.SideGuest: 0}
	d.initiative = game.SideHost
	d.round = 1
	d.ante = game.NewAnte(d.cfg.AnteMode, 1)
	d.reports = map[game.Side]reserveReport{}
	d.votes = newVotes()
	d.snapshot = nil
	d.summary = nil
	d.outcomes = [game.WheelCount]engine.WheelOutcome{}
	d.skills = nil
	d.log = nil
	d.wheels = engine.GenerateWheels(d.cfg.Archetypes, nil, d.rng, d.cfg.EasyMode, [game.WheelCount]int{})
	d.fighters[game.SideHost].RefillHand()
	d.fighters[game.SideGuest].RefillHand()
	d.caster = spell.NewCaster(d, d)
	d.phase = game.PhaseChoosing
}

func (d *Duel) names() map[game.Side]string {
	return map[game.Side]string{
		game.SideHost:  d.fighters[game.SideHost].Name,
		game.SideGuest: d.fighters[game.SideGuest].Name,
	}
}
