package engine

import (
	"math"
	"strconv"

	"github.com/ericogr/trifate-cards/internal/game"
)

// SummaryInput is the frozen analysis snapshot OutcomeSummarizer consumes.
// Like RoundInput it carries no hidden state, so re-running Summarize
// after a late spell mutates the board yields a corrected result without
// replaying any animation.
type SummaryInput struct {
	Outcomes   [game.WheelCount]WheelOutcome
	Round      int
	Tally      map[game.Side]int
	Initiative game.Side
	Ante       game.Ante
	WinGoal    int
	Names      map[game.Side]string
}

// RoundSummary aggregates the three wheel outcomes into win-tally deltas,
// initiative handoff, ante settlement and match-end detection.
type RoundSummary struct {
	WheelWins   map[game.Side]int `json:"wheel_wins"`
	RoundWinner game.Side         `json:"round_winner"`
	RoundTie    bool              `json:"round_tie"`
	Tally       map[game.Side]int `json:"tally"`
	Initiative  game.Side         `json:"initiative"`
	AnteSettled bool              `json:"ante_settled"`
	MatchOver   bool              `json:"match_over"`
	MatchWinner game.Side         `json:"match_winner"`
	Log         []string          `json:"log"`
}

// Summarize is a pure function over an explicit snapshot; calling it
// twice with the same input gives the same summary.
func Summarize(in SummaryInput) RoundSummary {
	s := RoundSummary{
		WheelWins: map[game.Side]int{game.SideHost: 0, game.SideGuest: 0},
		Tally: map[game.Side]int{
			game.SideHost:  in.Tally[game.SideHost],
			game.SideGuest: in.Tally[game.SideGuest],
		},
		Initiative: in.Initiative,
	}

	for i, o := range in.Outcomes {
		lane := strconv.Itoa(i)
		if o.Tie || o.Winner == game.SideNone {
			s.Log = append(s.Log, "Wheel "+lane+": tie — "+o.Detail)
			continue
		}
		s.WheelWins[o.Winner]++
		s.Log = append(s.Log, "Wheel "+lane+": "+in.Names[o.Winner]+" wins — "+o.Detail)
	}

	// Round winner needs a strict majority of the three wheels.
	switch {
	case s.WheelWins[game.SideHost] >= 2:
		s.RoundWinner = game.SideHost
	case s.WheelWins[game.SideGuest] >= 2:
		s.RoundWinner = game.SideGuest
	default:
		s.RoundTie = true
	}

	if s.RoundTie {
		s.Initiative = in.Initiative.Other()
		s.Log = append(s.Log, "Round tied — initiative passes to "+in.Names[s.Initiative])
		if in.Ante.Enabled && in.Ante.Round == in.Round {
			s.Log = append(s.Log, "Ante pushes — wagers returned")
		}
	} else {
		winner := s.RoundWinner
		loser := winner.Other()
		s.Tally[winner]++
		s.Initiative = winner
		s.Log = append(s.Log, in.Names[winner]+" takes the round")

		if in.Ante.Enabled && in.Ante.Round == in.Round {
			payout := anteBonus(in.Ante.Wagers[winner], in.Ante.Odds[winner])
			if payout > 0 {
				s.Tally[winner] += payout
				s.Log = append(s.Log, "Ante pays "+in.Names[winner]+" +"+strconv.Itoa(payout))
			}
			forfeit := in.Ante.Wagers[loser]
			if forfeit > 0 {
				s.Tally[loser] -= forfeit
				if s.Tally[loser] < 0 {
					s.Tally[loser] = 0
				}
				s.Log = append(s.Log, in.Names[loser]+" forfeits wager of "+strconv.Itoa(forfeit))
			}
			s.AnteSettled = true
		}
		if s.Initiative != in.Initiative {
			s.Log = append(s.Log, "Initiative moves to "+in.Names[s.Initiative])
		}
	}

	// Ante payouts feed the same counter that gates match end; that
	// coupling is intentional (ante play can shorten or extend a match).
	if s.Tally[game.SideHost] >= in.WinGoal || s.Tally[game.SideGuest] >= in.WinGoal {
		s.MatchOver = true
		// Both totals can cross the goal on the same round (ante
		// payouts); the higher total wins, equal totals leave the
		// match winner-less.
		if s.Tally[game.SideHost] > s.Tally[game.SideGuest] {
			s.MatchWinner = game.SideHost
		} else if s.Tally[game.SideGuest] > s.Tally[game.SideHost] {
			s.MatchWinner = game.SideGuest
		}
		if s.MatchWinner != game.SideNone {
			s.Log = append(s.Log, in.Names[s.MatchWinner]+" wins the match!")
		} else {
			s.Log = append(s.Log, "Match ends level")
		}
	}
	return s
}

// anteBonus is round(wager × max(0, odds−1)).
func anteBonus(wager int, odds float64) int {
	edge := odds - 1
	if edge < 0 {
		edge = 0
	}
	return int(math.Round(float64(wager) * edge))
}
