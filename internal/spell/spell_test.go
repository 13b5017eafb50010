package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/trifate-cards/internal/game"
)

// fakeBoard implements Board and BoardView for tests.
type fakeBoard struct {
	lanes      map[game.Side][game.LaneCount]*game.Card
	hands      map[game.Side][]game.Card
	tokens     [game.WheelCount]int
	drains     map[game.Side]int
	chills     map[game.Side][game.LaneCount]int
	initiative game.Side
	phase      game.Phase
	mana       map[game.Side]int
	log        []string
	drawn      map[game.Side]int
	discarded  []string
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		lanes:      map[game.Side][game.LaneCount]*game.Card{},
		hands:      map[game.Side][]game.Card{},
		drains:     map[game.Side]int{},
		chills:     map[game.Side][game.LaneCount]int{},
		initiative: game.SideHost,
		phase:      game.PhaseChoosing,
		mana:       map[game.Side]int{game.SideHost: 10, game.SideGuest: 10},
		drawn:      map[game.Side]int{},
	}
}

func (f *fakeBoard) setLane(side game.Side, lane int, value int) *game.Card {
	c := game.NewValueCard("l"+string(side)+string(rune('0'+lane)), "Lane", value)
	ls := f.lanes[side]
	ls[lane] = &c
	f.lanes[side] = ls
	return &c
}

func (f *fakeBoard) LaneCard(side game.Side, lane int) *game.Card { return f.lanes[side][lane] }
func (f *fakeBoard) AdjustLaneValue(side game.Side, lane, delta int) {
	c := f.lanes[side][lane]
	if c == nil || c.Value == nil {
		return
	}
	v := *c.Value + delta
	if v < 0 {
		v = 0
	}
	*c.Value = v
}
func (f *fakeBoard) SetLaneValue(side game.Side, lane, value int) {
	c := f.lanes[side][lane]
	if c == nil || c.Value == nil {
		return
	}
	*c.Value = value
}
func (f *fakeBoard) SwapLanes(side game.Side, a, b int) {
	ls := f.lanes[side]
	ls[a], ls[b] = ls[b], ls[a]
	f.lanes[side] = ls
}
func (f *fakeBoard) SwapWithHand(side game.Side, lane int, cardID string) {
	hand := f.hands[side]
	for i := range hand {
		if hand[i].ID == cardID {
			ls := f.lanes[side]
			board := ls[lane]
			picked := hand[i]
			ls[lane] = &picked
			f.lanes[side] = ls
			if board != nil {
				hand[i] = *board
			} else {
				f.hands[side] = append(hand[:i], hand[i+1:]...)
			}
			return
		}
	}
}
func (f *fakeBoard) AdjustHandValue(side game.Side, cardID string, delta int) {
	hand := f.hands[side]
	for i := range hand {
		if hand[i].ID == cardID && hand[i].Value != nil {
			v := *hand[i].Value + delta
			if v < 0 {
				v = 0
			}
			*hand[i].Value = v
		}
	}
}
func (f *fakeBoard) ForceDiscard(side game.Side, cardID string, count int) {
	f.discarded = append(f.discarded, cardID)
}
func (f *fakeBoard) ForceDraw(side game.Side, count int) { f.drawn[side] += count }
func (f *fakeBoard) ExhaustCard(side game.Side, cardID string) {
	hand := f.hands[side]
	for i := range hand {
		if hand[i].ID == cardID {
			f.hands[side] = append(hand[:i], hand[i+1:]...)
			return
		}
	}
}
func (f *fakeBoard) AddTokenDelta(wheel, delta int) {
	f.tokens[wheel] = game.NormalizeSlice(f.tokens[wheel] + delta)
}
func (f *fakeBoard) DrainReserve(side game.Side, amount int) { f.drains[side] += amount }
func (f *fakeBoard) AddChill(side game.Side, lane, stacks int) {
	ch := f.chills[side]
	ch[lane] += stacks
	f.chills[side] = ch
}
func (f *fakeBoard) SetInitiative(side game.Side) { f.initiative = side }
func (f *fakeBoard) AppendLog(line string)        { f.log = append(f.log, line) }

func (f *fakeBoard) HandCards(side game.Side) []game.Card { return f.hands[side] }
func (f *fakeBoard) Reserve(side game.Side) int           { return 0 }
func (f *fakeBoard) Initiative() game.Side                { return f.initiative }
func (f *fakeBoard) ChillStacks(side game.Side, lane int) int {
	return f.chills[side][lane]
}
func (f *fakeBoard) WheelToken(wheel int) int { return f.tokens[wheel] }
func (f *fakeBoard) Round() int               { return 1 }
func (f *fakeBoard) Phase() game.Phase        { return f.phase }

func (f *fakeBoard) Mana(side game.Side) int               { return f.mana[side] }
func (f *fakeBoard) SpendMana(side game.Side, amount int)  { f.mana[side] -= amount }
func (f *fakeBoard) RefundMana(side game.Side, amount int) { f.mana[side] += amount }

func TestBegin_InsufficientManaIsSilentNoOp(t *testing.T) {
	b := newFakeBoard()
	b.mana[game.SideHost] = 1
	c := NewCaster(b, b)

	p, started, err := c.Begin(ByID("fireball"), game.SideHost) // cost 2
	require.NoError(t, err)
	assert.False(t, started)
	assert.True(t, p.Empty())
	assert.Equal(t, 1, b.mana[game.SideHost], "mana unchanged at 1")
	assert.Equal(t, StateIdle, c.State(game.SideHost))
}

func TestBegin_DeductsOptimisticallyAndAwaitsTarget(t *testing.T) {
	b := newFakeBoard()
	c := NewCaster(b, b)

	_, started, err := c.Begin(ByID("fireball"), game.SideHost)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, 8, b.mana[game.SideHost])
	assert.Equal(t, StateAwaitingTarget, c.State(game.SideHost))
}

func TestBegin_RefundsOwnPendingSpellFirst(t *testing.T) {
	b := newFakeBoard()
	b.mana[game.SideHost] = 3
	c := NewCaster(b, b)

	_, started, _ := c.Begin(ByID("fireball"), game.SideHost) // cost 2, pending
	require.True(t, started)
	assert.Equal(t, 1, b.mana[game.SideHost])

	// 1 mana on hand + 2 refunded = 3, enough for frostbite (2).
	_, started, err := c.Begin(ByID("frostbite"), game.SideHost)
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, 1, b.mana[game.SideHost])
	assert.Equal(t, "frostbite", c.Pending(game.SideHost).Def.ID)
}

func TestPickTarget_ResolvesAndHarvests(t *testing.T) {
	b := newFakeBoard()
	b.setLane(game.SideGuest, 1, 6)
	c := NewCaster(b, b)

	_, _, _ = c.Begin(ByID("fireball"), game.SideHost)
	p, done, err := c.PickTarget(game.SideHost, TargetRef{Kind: TargetCard, Side: game.SideGuest, Lane: 1})
	require.NoError(t, err)
	assert.True(t, done)
	require.Len(t, p.CardDeltas, 1)
	assert.Equal(t, -3, p.CardDeltas[0].NumberDelta)
	assert.Equal(t, "fireball", p.SpellID)
	assert.Equal(t, game.SideHost, p.Caster)
	assert.Equal(t, StateIdle, c.State(game.SideHost))
}

func TestPickTarget_RejectsOwnershipViolation(t *testing.T) {
	b := newFakeBoard()
	c := NewCaster(b, b)

	_, _, _ = c.Begin(ByID("fireball"), game.SideHost)
	// Fireball wants an enemy board card; picking our own is ignored.
	_, done, err := c.PickTarget(game.SideHost, TargetRef{Kind: TargetCard, Side: game.SideHost, Lane: 0})
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, StateAwaitingTarget, c.State(game.SideHost))
}

func TestMultiStageTargeting(t *testing.T) {
	b := newFakeBoard()
	c := NewCaster(b, b)

	_, started, _ := c.Begin(ByID("crosswind"), game.SideHost)
	require.True(t, started)

	_, done, _ := c.PickTarget(game.SideHost, TargetRef{Kind: TargetCard, Side: game.SideHost, Lane: 0})
	assert.False(t, done)
	_, done, _ = c.PickTarget(game.SideHost, TargetRef{Kind: TargetCard, Side: game.SideHost, Lane: 2})
	assert.False(t, done)
	p, done, err := c.PickTarget(game.SideHost, TargetRef{Kind: TargetWheel, Wheel: 1})
	require.NoError(t, err)
	assert.True(t, done)
	require.Len(t, p.LaneSwaps, 1)
	require.Len(t, p.TokenDeltas, 1)
	assert.Equal(t, -1, p.TokenDeltas[0].Delta)
}

func TestMultiStage_OptionalStageSkippable(t *testing.T) {
	b := newFakeBoard()
	c := NewCaster(b, b)

	_, _, _ = c.Begin(ByID("crosswind"), game.SideHost)
	_, _, _ = c.PickTarget(game.SideHost, TargetRef{Kind: TargetCard, Side: game.SideHost, Lane: 0})
	_, _, _ = c.PickTarget(game.SideHost, TargetRef{Kind: TargetCard, Side: game.SideHost, Lane: 1})
	p, done, err := c.PickTarget(game.SideHost, TargetRef{Kind: TargetWheel, Skipped: true})
	require.NoError(t, err)
	assert.True(t, done)
	assert.Len(t, p.LaneSwaps, 1)
	assert.Empty(t, p.TokenDeltas, "skipped wheel stage adds no token delta")
}

func TestResolverPanic_RefundsAndSurfacesError(t *testing.T) {
	b := newFakeBoard()
	c := NewCaster(b, b)
	bad := &Definition{
		ID:      "broken",
		Cost:    3,
		Resolve: func(rc *ResolveContext) { panic("boom") },
	}

	p, started, err := c.Begin(bad, game.SideHost)
	assert.True(t, started)
	require.ErrorIs(t, err, ErrResolverFailed)
	assert.True(t, p.Empty())
	assert.Equal(t, 10, b.mana[game.SideHost], "mana fully refunded")
	assert.Equal(t, StateIdle, c.State(game.SideHost))
}

func TestCancel_RefundOnlyWhenRequested(t *testing.T) {
	b := newFakeBoard()
	c := NewCaster(b, b)

	_, _, _ = c.Begin(ByID("fireball"), game.SideHost)
	c.Cancel(game.SideHost, false)
	assert.Equal(t, 8, b.mana[game.SideHost], "no refund without request")

	_, _, _ = c.Begin(ByID("fireball"), game.SideHost)
	c.Cancel(game.SideHost, true)
	assert.Equal(t, 8, b.mana[game.SideHost], "explicit cancel refunds")
}

func TestBegin_PhaseGate(t *testing.T) {
	b := newFakeBoard()
	b.phase = game.PhaseSkill
	c := NewCaster(b, b)

	_, started, err := c.Begin(ByID("fireball"), game.SideHost)
	require.NoError(t, err)
	assert.False(t, started)
	assert.Equal(t, 10, b.mana[game.SideHost])
}

func TestComputedCost_FrostSynergy(t *testing.T) {
	b := newFakeBoard()
	b.AddChill(game.SideGuest, 0, 2)
	ctx := CostContext{Caster: game.SideHost, Opponent: game.SideGuest, Phase: game.PhaseChoosing, View: b}
	assert.Equal(t, 2, ByID("shatter").ManaCost(ctx), "4 base minus 2 chill stacks")
}

func TestApply_DeltaCompoundsAndFloors(t *testing.T) {
	b := newFakeBoard()
	c := b.setLane(game.SideGuest, 0, 6)

	p := Payload{CardDeltas: []CardDelta{{Side: game.SideGuest, Lane: 0, NumberDelta: -2}}}
	Apply(b, p)
	assert.Equal(t, 4, *c.Value)
	Apply(b, p)
	assert.Equal(t, 2, *c.Value, "same delta applied twice compounds")
	Apply(b, p)
	Apply(b, p)
	assert.Equal(t, 0, *c.Value, "never negative")
}

func TestApply_MirrorCopiesOpposingValue(t *testing.T) {
	b := newFakeBoard()
	mine := b.setLane(game.SideHost, 2, 1)
	b.setLane(game.SideGuest, 2, 7)

	Apply(b, Payload{Mirrors: []MirrorEffect{{Side: game.SideHost, Lane: 2}}})
	assert.Equal(t, 7, *mine.Value)
}

func TestApply_ChallengeCapturesInitiative(t *testing.T) {
	b := newFakeBoard()
	b.initiative = game.SideHost
	b.setLane(game.SideGuest, 1, 9)
	b.setLane(game.SideHost, 1, 2)

	Apply(b, Payload{Challenges: []InitiativeChallenge{{Side: game.SideGuest, Lane: 1}}})
	assert.Equal(t, game.SideGuest, b.initiative)

	// Equal values leave initiative untouched.
	b.setLane(game.SideHost, 1, 9)
	Apply(b, Payload{Challenges: []InitiativeChallenge{{Side: game.SideHost, Lane: 1}}})
	assert.Equal(t, game.SideGuest, b.initiative)
}

func TestApply_EveryFieldOptional(t *testing.T) {
	b := newFakeBoard()
	Apply(b, Payload{}) // must not panic or mutate
	assert.Empty(t, b.log)

	Apply(b, Payload{
		TokenDeltas:   []TokenDelta{{Wheel: 0, Delta: 20}},
		ReserveDrains: []ReserveDrain{{Side: game.SideGuest, Amount: 3}},
		Draws:         []ForcedDraw{{Side: game.SideHost, Count: 2}},
		Log:           []string{"combo"},
	})
	assert.Equal(t, 4, b.tokens[0], "token delta normalized mod 16")
	assert.Equal(t, 3, b.drains[game.SideGuest])
	assert.Equal(t, 2, b.drawn[game.SideHost])
	assert.Equal(t, []string{"combo"}, b.log)
}

func TestRuntimeState_HarvestClears(t *testing.T) {
	var st RuntimeState
	st.CardDeltas = append(st.CardDeltas, CardDelta{NumberDelta: 1})
	st.AddLog("x")

	p := st.Harvest()
	assert.False(t, p.Empty())
	assert.True(t, st.Empty(), "scratch cleared after harvest; no bleed between casts")
}

func TestSpellbook_Lookup(t *testing.T) {
	assert.Nil(t, ByID("no_such_spell"))
	for _, d := range Spellbook() {
		require.NotEmpty(t, d.ID)
		require.NotNil(t, d.Resolve, d.ID)
	}
}
