package duel

import (
	"math/rand"

	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/skill"
	"github.com/ericogr/trifate-cards/internal/spell"
)

const (
	startingMana = 3
	manaPerRound = 2
	manaCap      = 10

	// logLimit bounds the human-readable event log handed to the
	// rendering layer.
	logLimit = 60
)

// Config fixes everything both peers must agree on before the first
// intent is exchanged. Decks arrive pre-ordered; the shared RNG stream
// is spent only on wheel generation, in a fixed draw order.
type Config struct {
	Seed       int64
	Archetypes [game.WheelCount]string
	EasyMode   bool
	WinGoal    int
	AnteMode   bool
	SkillMode  bool
	HostName   string
	GuestName  string
	HostDeck   []game.Card
	GuestDeck  []game.Card
}

type reserveReport struct {
	Value int
	Round int
	// Drain is the side's drain total when the report arrived. Drains
	// recorded afterwards are subtracted from Value, so the stored report
	// tracks the same recomputation the reporting peer performs locally.
	Drain int
}

type voteKind string

const (
	voteReveal    voteKind = "reveal"
	voteNextRound voteKind = "next_round"
	voteRematch   voteKind = "rematch"
)

// laneUpdate is one queued assignment mutation. Updates apply strictly
// in queue order, so the last update wins per lane without locking.
type laneUpdate struct {
	side   game.Side
	lane   int
	cardID string
	clear  bool
}

// roundSnapshot is the frozen pre-animation baseline. Late spells mutate
// the live board; re-evaluating against this snapshot corrects the
// outcome without replaying the spin.
type roundSnapshot struct {
	wheels     [game.WheelCount]game.Wheel
	initiative game.Side
	tallies    map[game.Side]int
	ante       game.Ante
	round      int
}

// Duel is one replicated match state. Both peers hold their own Duel and
// feed it the identical intent stream; every mutation path is
// deterministic, so the copies never diverge.
type Duel struct {
	cfg Config
	rng *rand.Rand

	fighters map[game.Side]*game.Fighter
	assigns  map[game.Side]*game.Assignment
	wheels   [game.WheelCount]game.Wheel
	chills   map[game.Side][game.LaneCount]int
	drains   map[game.Side]int
	mana     map[game.Side]int
	tallies  map[game.Side]int

	initiative game.Side
	round      int
	phase      game.Phase
	ante       game.Ante

	caster *spell.Caster
	skills *skill.Engine

	reports map[game.Side]reserveReport
	votes   map[voteKind]map[game.Side]bool
	queue   []laneUpdate

	snapshot *roundSnapshot
	outcomes [game.WheelCount]engine.WheelOutcome
	summary  *engine.RoundSummary

	log []string
}

// New builds a duel from an agreed config. Both peers call this with
// identical arguments and end up with identical state.
func New(cfg Config) *Duel {
	if cfg.WinGoal <= 0 {
		cfg.WinGoal = 5
	}
	d := &Duel{
		cfg: cfg,
		rng: engine.NewStream(cfg.Seed),
		fighters: map[game.Side]*game.Fighter{
			game.SideHost:  {Name: cfg.HostName, Deck: append([]game.Card(nil), cfg.HostDeck...)},
			game.SideGuest: {Name: cfg.GuestName, Deck: append([]game.Card(nil), cfg.GuestDeck...)},
		},
		assigns: map[game.Side]*game.Assignment{
			game.SideHost:  {},
			game.SideGuest: {},
		},
		chills:     map[game.Side][game.LaneCount]int{},
		drains:     map[game.Side]int{},
		mana:       map[game.Side]int{game.SideHost: startingMana, game.SideGuest: startingMana},
		tallies:    map[game.Side]int{game.SideHost: 0, game.SideGuest: 0},
		initiative: game.SideHost,
		round:      1,
		phase:      game.PhaseChoosing,
		ante:       game.NewAnte(cfg.AnteMode, 1),
		reports:    map[game.Side]reserveReport{},
		votes:      newVotes(),
	}
	d.wheels = engine.GenerateWheels(cfg.Archetypes, nil, d.rng, cfg.EasyMode, [game.WheelCount]int{})
	d.fighters[game.SideHost].RefillHand()
	d.fighters[game.SideGuest].RefillHand()
	d.caster = spell.NewCaster(d, d)
	return d
}

func newVotes() map[voteKind]map[game.Side]bool {
	return map[voteKind]map[game.Side]bool{
		voteReveal:    {},
		voteNextRound: {},
		voteRematch:   {},
	}
}

// Fighter exposes one side's card pools to the rendering layer.
func (d *Duel) Fighter(side game.Side) *game.Fighter { return d.fighters[side] }

// Assignment exposes one side's committed lanes.
func (d *Duel) Assignment(side game.Side) *game.Assignment { return d.assigns[side] }

// Tally returns a side's current win total.
func (d *Duel) Tally(side game.Side) int { return d.tallies[side] }

// Ante returns the current wager ledger.
func (d *Duel) Ante() game.Ante { return d.ante }

// Summary returns the last computed round summary, or nil before the
// first reveal.
func (d *Duel) Summary() *engine.RoundSummary { return d.summary }

// Outcomes returns the per-wheel results of the current resolution.
func (d *Duel) Outcomes() [game.WheelCount]engine.WheelOutcome { return d.outcomes }

// EventLog returns the bounded human-readable log, newest last.
func (d *Duel) EventLog() []string { return d.log }

// Caster exposes the spell casting machine for targeting UI state.
func (d *Duel) Caster() *spell.Caster { return d.caster }

// Skills returns the ability-phase engine, non-nil only during the skill
// phase.
func (d *Duel) Skills() *skill.Engine { return d.skills }

// TotalOwned counts every card a side owns across piles and committed
// lanes. Except for injected Reserve fillers it is constant all match.
func (d *Duel) TotalOwned(side game.Side) int {
	return d.fighters[side].TotalCards() + d.assigns[side].Committed()
}

// Assign queues committing a hand card to a lane and drains the queue.
// Legal only while choosing; chilled lanes reject the move silently.
func (d *Duel) Assign(side game.Side, lane int, cardID string) {
	if d.phase != game.PhaseChoosing {
		return
	}
	d.queue = append(d.queue, laneUpdate{side: side, lane: lane, cardID: cardID})
	d.drainQueue()
}

// ClearLane queues returning a committed card to the hand.
func (d *Duel) ClearLane(side game.Side, lane int) {
	if d.phase != game.PhaseChoosing {
		return
	}
	d.queue = append(d.queue, laneUpdate{side: side, lane: lane, clear: true})
	d.drainQueue()
}

func (d *Duel) drainQueue() {
	for len(d.queue) > 0 {
		u := d.queue[0]
		d.queue = d.queue[1:]
		d.applyLane(u)
	}
}

func (d *Duel) applyLane(u laneUpdate) {
	if u.lane < 0 || u.lane >= game.LaneCount {
		return
	}
	if d.chills[u.side][u.lane] > 0 {
		return
	}
	a := d.assigns[u.side]
	f := d.fighters[u.side]
	if u.clear {
		if c := a.Lanes[u.lane]; c != nil {
			f.Hand = append(f.Hand, *c)
			a.Lanes[u.lane] = nil
			d.dropReport(u.side)
		}
		return
	}
	c, ok := f.RemoveFromHand(u.cardID)
	if !ok {
		return
	}
	if prev := a.Lanes[u.lane]; prev != nil {
		f.Hand = append(f.Hand, *prev)
	}
	a.Lanes[u.lane] = &c
	d.dropReport(u.side)
}

// PlaceWager records a side's ante bet for the current round.
func (d *Duel) PlaceWager(side game.Side, bet int, odds float64) {
	if !d.ante.Enabled || d.phase != game.PhaseChoosing {
		return
	}
	d.ante.ResetForRound(d.round)
	d.ante.Wager(side, bet, odds)
}

// ReportReserve records a peer's broadcast reserve sum. Stale rounds are
// ignored; the newest report for the current round wins.
func (d *Duel) ReportReserve(side game.Side, value, round int) {
	if round != d.round {
		return
	}
	d.reports[side] = reserveReport{Value: value, Round: round, Drain: d.drains[side]}
}

// CastSpell begins a spell for a side. The returned payload is non-empty
// when the spell resolved immediately (no manual targets); it must then
// be broadcast to the peer.
func (d *Duel) CastSpell(side game.Side, spellID string) (spell.Payload, error) {
	p, _, err := d.caster.Begin(spell.ByID(spellID), side)
	if !p.Empty() {
		d.applyPayload(p)
	}
	return p, err
}

// PickSpellTarget advances a pending cast. A non-empty payload resolved
// the spell and must be broadcast.
func (d *Duel) PickSpellTarget(side game.Side, ref spell.TargetRef) (spell.Payload, error) {
	p, _, err := d.caster.PickTarget(side, ref)
	if !p.Empty() {
		d.applyPayload(p)
	}
	return p, err
}

// CancelSpell abandons a side's pending cast, refunding its mana.
func (d *Duel) CancelSpell(side game.Side) {
	d.caster.Cancel(side, true)
}

// ApplyRemotePayload consumes a spellEffects intent from the peer.
func (d *Duel) ApplyRemotePayload(p spell.Payload) {
	d.applyPayload(p)
}

// applyPayload mutates the board through the shared application path and
// corrects an in-flight round resolution if one exists.
func (d *Duel) applyPayload(p spell.Payload) {
	spell.Apply(d, p)
	if d.snapshot != nil && (d.phase == game.PhaseRevealed || d.phase == game.PhaseAnimating) {
		d.recompute()
	}
}

func (d *Duel) appendLog(line string) {
	d.log = append(d.log, line)
	if len(d.log) > logLimit {
		d.log = d.log[len(d.log)-logLimit:]
	}
}
