package ai

import (
	"sort"

	"github.com/ericogr/trifate-cards/internal/engine"
	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/skill"
	"github.com/ericogr/trifate-cards/internal/spell"
)

// Placement is one card-to-lane choice.
type Placement struct {
	Lane   int
	CardID string
}

// MoveSelector picks the automated side's lane commitments for a round.
type MoveSelector interface {
	ChooseMoves(view spell.BoardView, side game.Side, difficulty int) []Placement
}

// Responder picks the automated side's skill activation, if any.
type Responder interface {
	ChooseSkill(eng *skill.Engine, side game.Side) (skill.Activation, bool)
}

// Heuristic is the built-in strategy for solo play. Difficulty 0 plays
// the weakest cards, higher difficulties the strongest.
type Heuristic struct{}

// ChooseMoves sorts the hand by value and commits one card per lane.
func (Heuristic) ChooseMoves(view spell.BoardView, side game.Side, difficulty int) []Placement {
	hand := append([]game.Card(nil), view.HandCards(side)...)
	sort.SliceStable(hand, func(i, j int) bool {
		if difficulty <= 0 {
			return engine.CardValue(&hand[i]) < engine.CardValue(&hand[j])
		}
		return engine.CardValue(&hand[i]) > engine.CardValue(&hand[j])
	})
	var out []Placement
	for lane := 0; lane < game.LaneCount && lane < len(hand); lane++ {
		out = append(out, Placement{Lane: lane, CardID: hand[lane].ID})
	}
	return out
}

// ChooseSkill takes the first legal activation.
func (Heuristic) ChooseSkill(eng *skill.Engine, side game.Side) (skill.Activation, bool) {
	acts := eng.LegalActivations(side)
	if len(acts) == 0 {
		return skill.Activation{}, false
	}
	return acts[0], true
}
