package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/spell"
)

type stubBoard struct {
	lanes     map[game.Side][game.LaneCount]*game.Card
	hands     map[game.Side][]game.Card
	exhausted map[game.Side][]string
	discarded map[game.Side][]string
	drawn     map[game.Side]int
	log       []string
}

func newStubBoard() *stubBoard {
	return &stubBoard{
		lanes:     map[game.Side][game.LaneCount]*game.Card{},
		hands:     map[game.Side][]game.Card{},
		exhausted: map[game.Side][]string{},
		discarded: map[game.Side][]string{},
		drawn:     map[game.Side]int{},
	}
}

func (s *stubBoard) commit(side game.Side, lane int, id string, value int) *game.Card {
	c := game.NewValueCard(id, id, value)
	ls := s.lanes[side]
	ls[lane] = &c
	s.lanes[side] = ls
	return &c
}

func (s *stubBoard) addHand(side game.Side, id string, value int) {
	s.hands[side] = append(s.hands[side], game.NewValueCard(id, id, value))
}

func (s *stubBoard) LaneCard(side game.Side, lane int) *game.Card { return s.lanes[side][lane] }
func (s *stubBoard) AdjustLaneValue(side game.Side, lane, delta int) {
	if c := s.lanes[side][lane]; c != nil && c.Value != nil {
		v := *c.Value + delta
		if v < 0 {
			v = 0
		}
		*c.Value = v
	}
}
func (s *stubBoard) SetLaneValue(side game.Side, lane, value int) {
	if c := s.lanes[side][lane]; c != nil && c.Value != nil {
		*c.Value = value
	}
}
func (s *stubBoard) SwapLanes(side game.Side, a, b int) {
	ls := s.lanes[side]
	ls[a], ls[b] = ls[b], ls[a]
	s.lanes[side] = ls
}
func (s *stubBoard) SwapWithHand(side game.Side, lane int, cardID string) {
	hand := s.hands[side]
	for i := range hand {
		if hand[i].ID == cardID {
			ls := s.lanes[side]
			board := ls[lane]
			picked := hand[i]
			ls[lane] = &picked
			s.lanes[side] = ls
			if board != nil {
				hand[i] = *board
			} else {
				s.hands[side] = append(hand[:i], hand[i+1:]...)
			}
			return
		}
	}
}
func (s *stubBoard) AdjustHandValue(side game.Side, cardID string, delta int) {}
func (s *stubBoard) ForceDiscard(side game.Side, cardID string, count int) {
	s.discarded[side] = append(s.discarded[side], cardID)
	hand := s.hands[side]
	for i := range hand {
		if hand[i].ID == cardID {
			s.hands[side] = append(hand[:i], hand[i+1:]...)
			return
		}
	}
}
func (s *stubBoard) ForceDraw(side game.Side, count int) { s.drawn[side] += count }
func (s *stubBoard) ExhaustCard(side game.Side, cardID string) {
	s.exhausted[side] = append(s.exhausted[side], cardID)
	hand := s.hands[side]
	for i := range hand {
		if hand[i].ID == cardID {
			s.hands[side] = append(hand[:i], hand[i+1:]...)
			return
		}
	}
}
func (s *stubBoard) AddTokenDelta(wheel, delta int)            {}
func (s *stubBoard) DrainReserve(side game.Side, amount int)   {}
func (s *stubBoard) AddChill(side game.Side, lane, stacks int) {}
func (s *stubBoard) SetInitiative(side game.Side)              {}
func (s *stubBoard) AppendLog(line string)                     { s.log = append(s.log, line) }

func (s *stubBoard) HandCards(side game.Side) []game.Card     { return s.hands[side] }
func (s *stubBoard) Reserve(side game.Side) int               { return 0 }
func (s *stubBoard) Initiative() game.Side                    { return game.SideHost }
func (s *stubBoard) ChillStacks(side game.Side, lane int) int { return 0 }
func (s *stubBoard) WheelToken(wheel int) int                 { return 0 }
func (s *stubBoard) Round() int                               { return 1 }
func (s *stubBoard) Phase() game.Phase                        { return game.PhaseSkill }

func TestAbilityForBase_Buckets(t *testing.T) {
	cases := []struct {
		base int
		kind AbilityKind
		uses int
	}{
		{-1, AbilitySwapReserve, 1},
		{0, AbilitySwapReserve, 1},
		{1, AbilityRerollReserve, 1},
		{2, AbilityRerollReserve, 2},
		{3, AbilityBoostCard, 1},
		{4, AbilityBoostCard, 1},
		{5, AbilityReserveBoost, 1},
		{9, AbilityReserveBoost, 1},
	}
	for _, c := range cases {
		kind, uses := AbilityForBase(c.base)
		assert.Equal(t, c.kind, kind, "base %d", c.base)
		assert.Equal(t, c.uses, uses, "base %d", c.base)
	}
}

func TestEngine_TurnStartsWithInitiativeHolder(t *testing.T) {
	b := newStubBoard()
	b.commit(game.SideHost, 0, "h-boost", 3)
	b.commit(game.SideGuest, 0, "g-boost", 4)

	e := NewEngine(b, b, game.SideGuest)
	assert.Equal(t, game.SideGuest, e.Turn())
}

func TestEngine_NeitherSideCanAct(t *testing.T) {
	b := newStubBoard()
	// No committed cards at all.
	e := NewEngine(b, b, game.SideHost)
	assert.True(t, e.Done())
	assert.Equal(t, game.SideNone, e.Turn())
}

func TestEngine_AutoCedeWhenNoLegalActivation(t *testing.T) {
	b := newStubBoard()
	// Host's only card is a swap ability with an empty hand: illegal.
	b.commit(game.SideHost, 0, "h-swap", 0)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideHost)
	assert.Equal(t, game.SideGuest, e.Turn(), "host cedes automatically")
}

func TestEngine_BoostCardAppliesDelta(t *testing.T) {
	b := newStubBoard()
	src := b.commit(game.SideHost, 0, "h-boost", 3)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideHost)
	p, ok := e.Activate(game.SideHost, Activation{Lane: 0, TargetLane: 0})
	require.True(t, ok)
	assert.Equal(t, 5, *src.Value, "boost adds 2 to the target lane")
	assert.NotEmpty(t, p.Log)
	assert.Equal(t, game.SideGuest, e.Turn(), "turn alternates after an activation")
}

func TestEngine_ReserveBoostExhaustsHandCard(t *testing.T) {
	b := newStubBoard()
	target := b.commit(game.SideHost, 1, "h-big", 6)
	b.addHand(game.SideHost, "h-hand", 4)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideHost)
	_, ok := e.Activate(game.SideHost, Activation{Lane: 1, TargetLane: 1, HandCardID: "h-hand"})
	require.True(t, ok)
	assert.Equal(t, 10, *target.Value, "lane boosted by the spent card's value")
	assert.Equal(t, []string{"h-hand"}, b.exhausted[game.SideHost])
	assert.Empty(t, b.hands[game.SideHost])
}

func TestEngine_ReserveBoostNeedsPositiveHandCard(t *testing.T) {
	b := newStubBoard()
	b.commit(game.SideHost, 0, "h-big", 6)
	b.addHand(game.SideHost, "h-zero", 0)

	e := NewEngine(b, b, game.SideHost)
	assert.True(t, e.Done(), "zero-value hand card offers no legal reserve boost")
}

func TestEngine_RerollUseCountAndExhaustion(t *testing.T) {
	b := newStubBoard()
	b.commit(game.SideHost, 0, "h-reroll", 2) // two uses
	b.addHand(game.SideHost, "h-a", 1)
	b.addHand(game.SideHost, "h-b", 1)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideHost)
	_, ok := e.Activate(game.SideHost, Activation{Lane: 0, HandCardID: "h-a"})
	require.True(t, ok)
	e.Pass(game.SideGuest)

	_, ok = e.Activate(game.SideHost, Activation{Lane: 0, HandCardID: "h-b"})
	require.True(t, ok, "second use of a two-use reroll")
	assert.Equal(t, 2, b.drawn[game.SideHost])

	e.Pass(game.SideGuest)
	_, ok = e.Activate(game.SideHost, Activation{Lane: 0, HandCardID: "h-a"})
	assert.False(t, ok, "third use rejected; ability exhausted")
}

func TestEngine_ExhaustionFollowsCardAcrossLanes(t *testing.T) {
	b := newStubBoard()
	b.commit(game.SideHost, 0, "h-boost", 3)
	b.commit(game.SideHost, 1, "h-other", 4)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideHost)
	_, ok := e.Activate(game.SideHost, Activation{Lane: 0, TargetLane: 1})
	require.True(t, ok)
	e.Pass(game.SideGuest)

	// Relocate the spent card; its exhaustion travels with its identity.
	b.SwapLanes(game.SideHost, 0, 1)
	_, ok = e.Activate(game.SideHost, Activation{Lane: 1, TargetLane: 0})
	assert.False(t, ok, "spent card stays spent in its new lane")
	_, ok = e.Activate(game.SideHost, Activation{Lane: 0, TargetLane: 0})
	assert.True(t, ok, "the unspent card in the old lane still works")
}

func TestEngine_BothPassEndsPhase(t *testing.T) {
	b := newStubBoard()
	b.commit(game.SideHost, 0, "h-boost", 3)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideHost)
	e.Pass(game.SideHost)
	assert.False(t, e.Done())
	e.Pass(game.SideGuest)
	assert.True(t, e.Done())
}

func TestEngine_OutOfTurnActivationIgnored(t *testing.T) {
	b := newStubBoard()
	b.commit(game.SideHost, 0, "h-boost", 3)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideHost)
	_, ok := e.Activate(game.SideGuest, Activation{Lane: 0, TargetLane: 0})
	assert.False(t, ok)
	assert.Equal(t, game.SideHost, e.Turn())
}

func TestEngine_LegalActivationsEnumerates(t *testing.T) {
	b := newStubBoard()
	b.commit(game.SideHost, 0, "h-swap", 0)
	b.addHand(game.SideHost, "h-a", 2)
	b.addHand(game.SideHost, "h-b", 3)

	e := NewEngine(b, b, game.SideHost)
	acts := e.LegalActivations(game.SideHost)
	require.Len(t, acts, 2, "one swap option per hand card")
	for _, a := range acts {
		assert.Equal(t, 0, a.Lane)
		assert.NotEmpty(t, a.HandCardID)
	}
}

func TestEngine_RemoteActivationAdvancesTurn(t *testing.T) {
	b := newStubBoard()
	lane := b.commit(game.SideHost, 0, "h-boost", 3)
	b.commit(game.SideGuest, 0, "g-boost", 3)

	e := NewEngine(b, b, game.SideGuest)
	p := spell.Payload{
		Caster:     game.SideGuest,
		CardDeltas: []spell.CardDelta{{Side: game.SideHost, Lane: 0, NumberDelta: 2}},
	}
	e.ApplyRemote(game.SideGuest, "g-boost", p)
	assert.Equal(t, 5, *lane.Value)
	assert.Equal(t, game.SideHost, e.Turn())
}
