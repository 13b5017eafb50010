package engine

import (
	"strconv"

	"github.com/ericogr/trifate-cards/internal/game"
)

// LanePair is the pair of committed cards feeding one wheel. Either side
// may be nil (an empty lane contributes 0).
type LanePair struct {
	Host  *game.Card
	Guest *game.Card
}

// WheelOutcome is the result of resolving one wheel for a round.
type WheelOutcome struct {
	Steps       int               `json:"steps"`
	TargetSlice int               `json:"target_slice"`
	Section     game.WheelSection `json:"section"`
	Winner      game.Side         `json:"winner"`
	Tie         bool              `json:"tie"`
	Detail      string            `json:"detail"`
}

// RoundInput is everything EvaluateRound needs. It is an explicit value
// snapshot — no hidden mutable captures — so the evaluation can be
// replayed against frozen pre-animation state when a spell lands
// mid-animation.
type RoundInput struct {
	Pairs      [game.WheelCount]LanePair
	Initiative game.Side
	Reserves   map[game.Side]int
	Wheels     [game.WheelCount]game.Wheel
}

// EvaluateRound computes each wheel's winner or tie. Pure function: equal
// inputs always yield equal outputs on both peers.
func EvaluateRound(in RoundInput) [game.WheelCount]WheelOutcome {
	var out [game.WheelCount]WheelOutcome
	for i := 0; i < game.WheelCount; i++ {
		out[i] = evaluateWheel(in.Pairs[i], in.Initiative, in.Reserves, in.Wheels[i])
	}
	return out
}

func evaluateWheel(pair LanePair, initiative game.Side, reserves map[game.Side]int, wheel game.Wheel) WheelOutcome {
	hostVal := CardValue(pair.Host)
	guestVal := CardValue(pair.Guest)
	steps := game.NormalizeSlice(game.NormalizeSlice(hostVal) + game.NormalizeSlice(guestVal))
	target := game.NormalizeSlice(wheel.Token + steps)

	o := WheelOutcome{Steps: steps, TargetSlice: target}
	if target == game.MissSlice {
		o.Tie = true
		o.Detail = "Miss — slice 0 is nobody's"
		return o
	}
	sec := wheel.SectionAt(target)
	if sec == nil {
		// Layout always covers 1..15; treat a gap as a miss anyway.
		o.Tie = true
		o.Detail = "Miss — uncovered slice"
		return o
	}
	o.Section = *sec

	switch sec.Kind {
	case game.SectionStrongest:
		o.Winner, o.Tie = compareHigher(hostVal, guestVal)
		o.Detail = "Strongest " + vsDetail(o.Winner, hostVal, guestVal)
	case game.SectionWeakest:
		o.Winner, o.Tie = compareLower(hostVal, guestVal)
		o.Detail = "Weakest " + vsDetail(o.Winner, hostVal, guestVal)
	case game.SectionReserveSum:
		rh, rg := reserves[game.SideHost], reserves[game.SideGuest]
		o.Winner, o.Tie = compareHigher(rh, rg)
		o.Detail = "Reserve " + vsDetail(o.Winner, rh, rg)
	case game.SectionClosest:
		dh := absInt(hostVal - sec.Target)
		dg := absInt(guestVal - sec.Target)
		o.Winner, o.Tie = compareLower(dh, dg)
		o.Detail = "Closest to " + strconv.Itoa(sec.Target) + " " + vsDetail(o.Winner, hostVal, guestVal)
	case game.SectionInitiative:
		// The initiative holder always wins this wheel; never a tie. The
		// summarizer prefixes the winner's display name, so the detail
		// names no side itself.
		o.Winner = initiative
		o.Detail = "Holds initiative"
	default:
		o.Tie = true
		o.Detail = "Unknown section"
	}
	return o
}

func compareHigher(host, guest int) (game.Side, bool) {
	switch {
	case host > guest:
		return game.SideHost, false
	case guest > host:
		return game.SideGuest, false
	}
	return game.SideNone, true
}

func compareLower(host, guest int) (game.Side, bool) {
	switch {
	case host < guest:
		return game.SideHost, false
	case guest < host:
		return game.SideGuest, false
	}
	return game.SideNone, true
}

// vsDetail renders "5 vs 3" with the winner's number first; ties render
// in host order.
func vsDetail(winner game.Side, hostVal, guestVal int) string {
	if winner == game.SideGuest {
		return strconv.Itoa(guestVal) + " vs " + strconv.Itoa(hostVal)
	}
	return strconv.Itoa(hostVal) + " vs " + strconv.Itoa(guestVal)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
