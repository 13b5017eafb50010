package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericogr/trifate-cards/internal/game"
)

func cardVal(v int) *game.Card {
	c := game.NewValueCard("c", "Test", v)
	return &c
}

func wheelOfKind(kind game.SectionKind, token int) game.Wheel {
	return game.Wheel{
		Sections: []game.WheelSection{{Kind: kind, Start: 1, End: 15}},
		Token:    token,
	}
}

func evalOne(pair LanePair, initiative game.Side, reserves map[game.Side]int, w game.Wheel) WheelOutcome {
	in := RoundInput{Initiative: initiative, Reserves: reserves, Wheels: [3]game.Wheel{w, w, w}}
	in.Pairs[0] = pair
	if in.Reserves == nil {
		in.Reserves = map[game.Side]int{}
	}
	return EvaluateRound(in)[0]
}

func TestEvaluateRound_StrongestHigherAlwaysWins(t *testing.T) {
	for a := 0; a <= 10; a++ {
		for b := 0; b <= 10; b++ {
			o := evalOne(LanePair{Host: cardVal(a), Guest: cardVal(b)}, game.SideHost, nil, wheelOfKind(game.SectionStrongest, 2))
			if o.TargetSlice == game.MissSlice {
				continue
			}
			sw := evalOne(LanePair{Host: cardVal(b), Guest: cardVal(a)}, game.SideHost, nil, wheelOfKind(game.SectionStrongest, 2))
			switch {
			case a > b:
				assert.Equal(t, game.SideHost, o.Winner, "%d vs %d", a, b)
				assert.Equal(t, game.SideGuest, sw.Winner, "swapped %d vs %d", a, b)
			case b > a:
				assert.Equal(t, game.SideGuest, o.Winner)
				assert.Equal(t, game.SideHost, sw.Winner)
			default:
				assert.True(t, o.Tie, "equal values must tie, never win")
				assert.Equal(t, game.SideNone, o.Winner)
			}
		}
	}
}

func TestEvaluateRound_WeakestLowerWins(t *testing.T) {
	o := evalOne(LanePair{Host: cardVal(2), Guest: cardVal(7)}, game.SideGuest, nil, wheelOfKind(game.SectionWeakest, 3))
	assert.Equal(t, game.SideHost, o.Winner)
	assert.Equal(t, "Weakest 2 vs 7", o.Detail)
}

func TestEvaluateRound_ReserveSumTiesOnEqualReserves(t *testing.T) {
	for _, vals := range [][2]int{{1, 9}, {8, 2}, {5, 5}} {
		o := evalOne(
			LanePair{Host: cardVal(vals[0]), Guest: cardVal(vals[1])},
			game.SideHost,
			map[game.Side]int{game.SideHost: 12, game.SideGuest: 12},
			wheelOfKind(game.SectionReserveSum, 1),
		)
		if o.TargetSlice == game.MissSlice {
			continue
		}
		assert.True(t, o.Tie, "equal reserves tie regardless of board values %v", vals)
	}
}

func TestEvaluateRound_ClosestToTarget(t *testing.T) {
	w := game.Wheel{
		Sections: []game.WheelSection{{Kind: game.SectionClosest, Start: 1, End: 15, Target: 6}},
		Token:    1,
	}
	o := evalOne(LanePair{Host: cardVal(5), Guest: cardVal(9)}, game.SideHost, nil, w)
	assert.Equal(t, game.SideHost, o.Winner, "|5-6| beats |9-6|")
}

func TestEvaluateRound_InitiativeHolderAlwaysWins(t *testing.T) {
	for _, init := range []game.Side{game.SideHost, game.SideGuest} {
		o := evalOne(LanePair{Host: cardVal(1), Guest: cardVal(9)}, init, nil, wheelOfKind(game.SectionInitiative, 4))
		assert.Equal(t, init, o.Winner)
		assert.False(t, o.Tie, "initiative wheels never tie")
		assert.Equal(t, "Holds initiative", o.Detail, "detail carries no raw side id; the summarizer adds the display name")
	}
}

func TestEvaluateRound_MissSlice(t *testing.T) {
	// token 0 + steps (8+8)%16 = 0 → miss.
	o := evalOne(LanePair{Host: cardVal(8), Guest: cardVal(8)}, game.SideHost, nil, wheelOfKind(game.SectionStrongest, 0))
	assert.Equal(t, game.MissSlice, o.TargetSlice)
	assert.True(t, o.Tie)
	assert.Equal(t, game.SideNone, o.Winner)
}

func TestEvaluateRound_Seed42BanditScenario(t *testing.T) {
	secs := GenerateSections(ArchetypeByID("bandit", nil), NewStream(42), false)
	w := game.Wheel{Sections: secs, Token: 0}

	o := evalOne(LanePair{Host: cardVal(5), Guest: cardVal(3)}, game.SideHost, nil, w)
	assert.Equal(t, 8, o.Steps, "(5+3) mod 16")
	assert.Equal(t, 8, o.TargetSlice)
	if o.Section.Kind == game.SectionStrongest {
		assert.Equal(t, game.SideHost, o.Winner)
		assert.Equal(t, "Strongest 5 vs 3", o.Detail)
	}
}

func TestEvaluateRound_ReplayableAgainstSnapshot(t *testing.T) {
	in := RoundInput{
		Initiative: game.SideHost,
		Reserves:   map[game.Side]int{game.SideHost: 4, game.SideGuest: 9},
	}
	in.Pairs[0] = LanePair{Host: cardVal(5), Guest: cardVal(3)}
	in.Pairs[1] = LanePair{Host: cardVal(1), Guest: cardVal(2)}
	in.Pairs[2] = LanePair{Guest: cardVal(6)}
	for i := range in.Wheels {
		in.Wheels[i] = wheelOfKind(game.SectionStrongest, i*3)
	}

	first := EvaluateRound(in)
	second := EvaluateRound(in)
	assert.Equal(t, first, second)
}

func TestCardValue_Priority(t *testing.T) {
	assert.Equal(t, 0, CardValue(nil))

	v := 4
	split := &game.SplitValue{Left: 2, Right: 9}
	assert.Equal(t, 4, CardValue(&game.Card{Value: &v, Split: split}), "explicit value beats split")
	assert.Equal(t, 2, CardValue(&game.Card{Split: split}), "split resolves to left face")
	assert.Equal(t, 0, CardValue(&game.Card{}))

	decoy := game.Card{Value: &v, Decoy: true}
	assert.Equal(t, 4, CardValue(&decoy), "decoys resolve to their real number")
}

func TestReserveSum(t *testing.T) {
	hand := []game.Card{
		game.NewValueCard("a", "A", 3),
		game.NewValueCard("b", "B", 4),
	}
	hand[1].ReserveExhausted = true
	assert.Equal(t, 3, ReserveSum(hand, 0))
	assert.Equal(t, 1, ReserveSum(hand, 2), "drain penalty persists")
	assert.Equal(t, 0, ReserveSum(hand, 99), "floored at zero")
}
