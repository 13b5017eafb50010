package game

// Side identifies one of the two seats in a duel. Sides are canonical
// across peers: both clients agree on which seat is "host", so the
// deterministic pipeline computes identical results from identical
// intents.
type Side string

const (
	SideNone  Side = ""
	SideHost  Side = "host"
	SideGuest Side = "guest"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case SideHost:
		return SideGuest
	case SideGuest:
		return SideHost
	}
	return SideNone
}

// Phase is the duel's current stage. Local actions are only legal in
// specific phases; the reconciler gates transitions on two-party votes.
type Phase string

const (
	PhaseChoosing  Phase = "choosing"
	PhaseRevealed  Phase = "revealed"
	PhaseAnimating Phase = "animating"
	PhaseSkill     Phase = "skill"
	PhaseRoundEnd  Phase = "round_end"
	PhaseEnded     Phase = "ended"
)

// Match lifecycle status, persisted on relay match records.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Assignment is one side's 3-slot lane array. A nil entry means the lane
// is empty.
type Assignment struct {
	Lanes [LaneCount]*Card `json:"lanes"`
}

// Committed counts non-empty lanes.
func (a *Assignment) Committed() int {
	n := 0
	for i := range a.Lanes {
		if a.Lanes[i] != nil {
			n++
		}
	}
	return n
}

// Clear empties every lane.
func (a *Assignment) Clear() {
	for i := range a.Lanes {
		a.Lanes[i] = nil
	}
}

// Ante is the per-round wager state. It resets whenever the round counter
// changes; a wager only settles when its round matches the resolving
// round.
type Ante struct {
	Enabled bool             `json:"enabled"`
	Round   int              `json:"round"`
	Wagers  map[Side]int     `json:"wagers"`
	Odds    map[Side]float64 `json:"odds"`
}

// NewAnte returns an empty ante ledger for the given round.
func NewAnte(enabled bool, round int) Ante {
	return Ante{
		Enabled: enabled,
		Round:   round,
		Wagers:  map[Side]int{SideHost: 0, SideGuest: 0},
		Odds:    map[Side]float64{SideHost: 1, SideGuest: 1},
	}
}

// Wager records a side's bet and odds for the current round.
func (a *Ante) Wager(side Side, bet int, odds float64) {
	if bet < 0 {
		bet = 0
	}
	a.Wagers[side] = bet
	if odds > 0 {
		a.Odds[side] = odds
	}
}

// ResetForRound discards any stale wager state when the round changes.
func (a *Ante) ResetForRound(round int) {
	if a.Round == round {
		return
	}
	*a = NewAnte(a.Enabled, round)
}
