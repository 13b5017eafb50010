package duel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/spell"
)

func testDeck(prefix string, values ...int) []game.Card {
	var deck []game.Card
	for i, v := range values {
		deck = append(deck, game.NewValueCard(prefix+"-"+string(rune('a'+i)), prefix, v))
	}
	return deck
}

func testConfig() Config {
	return Config{
		Seed:       42,
		Archetypes: [game.WheelCount]string{"bandit", "sentinel", "oracle"},
		WinGoal:    3,
		HostName:   "Avery",
		GuestName:  "Blake",
		HostDeck:   testDeck("h", 1, 2, 3, 4, 5, 6, 7, 8),
		GuestDeck:  testDeck("g", 1, 2, 3, 4, 5, 6, 7, 8),
	}
}

func commitThree(d *Duel, side game.Side) {
	hand := d.HandCards(side)
	ids := []string{hand[0].ID, hand[1].ID, hand[2].ID}
	for lane, id := range ids {
		d.Assign(side, lane, id)
	}
}

func TestNew_IdenticalConfigsYieldIdenticalState(t *testing.T) {
	a := New(testConfig())
	b := New(testConfig())
	assert.Equal(t, a.Wheels(), b.Wheels())
	assert.Equal(t, a.HandCards(game.SideHost), b.HandCards(game.SideHost))
	assert.Equal(t, game.PhaseChoosing, a.Phase())
	assert.Equal(t, game.SideHost, a.Initiative())
}

func TestAssign_MovesCardFromHandToLane(t *testing.T) {
	d := New(testConfig())
	hand := d.HandCards(game.SideHost)
	id := hand[0].ID

	d.Assign(game.SideHost, 1, id)
	require.NotNil(t, d.LaneCard(game.SideHost, 1))
	assert.Equal(t, id, d.LaneCard(game.SideHost, 1).ID)
	assert.Len(t, d.HandCards(game.SideHost), game.HandSize-1)

	d.ClearLane(game.SideHost, 1)
	assert.Nil(t, d.LaneCard(game.SideHost, 1))
	assert.Len(t, d.HandCards(game.SideHost), game.HandSize)
}

func TestAssign_LastUpdateWinsPerLane(t *testing.T) {
	d := New(testConfig())
	hand := d.HandCards(game.SideHost)
	first, second := hand[0].ID, hand[1].ID

	d.Assign(game.SideHost, 0, first)
	d.Assign(game.SideHost, 0, second)
	assert.Equal(t, second, d.LaneCard(game.SideHost, 0).ID)
	// The displaced card is back in hand, nothing lost.
	assert.Equal(t, len(d.cfg.HostDeck), d.TotalOwned(game.SideHost))
}

func TestAssign_ChilledLaneRejectsSilently(t *testing.T) {
	d := New(testConfig())
	d.AddChill(game.SideHost, 0, 1)
	id := d.HandCards(game.SideHost)[0].ID

	d.Assign(game.SideHost, 0, id)
	assert.Nil(t, d.LaneCard(game.SideHost, 0))
	assert.Len(t, d.HandCards(game.SideHost), game.HandSize)
}

func TestReveal_RequiresBothVotes(t *testing.T) {
	d := New(testConfig())
	commitThree(d, game.SideHost)
	commitThree(d, game.SideGuest)

	d.MarkReveal(game.SideHost)
	assert.Equal(t, game.PhaseChoosing, d.Phase(), "one vote does not advance")
	d.MarkReveal(game.SideGuest)
	assert.Equal(t, game.PhaseRevealed, d.Phase())
	require.NotNil(t, d.Summary())
}

func TestFinishAnimation_CommitsAtomically(t *testing.T) {
	d := New(testConfig())
	commitThree(d, game.SideHost)
	commitThree(d, game.SideGuest)
	d.MarkReveal(game.SideHost)
	d.MarkReveal(game.SideGuest)

	sum := d.Summary()
	outcomes := d.Outcomes()
	d.BeginAnimation()
	assert.Equal(t, game.PhaseAnimating, d.Phase())
	d.FinishAnimation()

	for i := 0; i < game.WheelCount; i++ {
		assert.Equal(t, outcomes[i].TargetSlice, d.WheelToken(i), "wheel %d", i)
	}
	assert.Equal(t, sum.Tally[game.SideHost], d.Tally(game.SideHost))
	assert.Equal(t, sum.Tally[game.SideGuest], d.Tally(game.SideGuest))
	assert.Equal(t, game.PhaseRoundEnd, d.Phase())
	assert.NotEmpty(t, d.EventLog())
}

func TestJumpCorrection_MidAnimationTokenSpell(t *testing.T) {
	d := New(testConfig())
	commitThree(d, game.SideHost)
	commitThree(d, game.SideGuest)
	d.MarkReveal(game.SideHost)
	d.MarkReveal(game.SideGuest)
	d.BeginAnimation()

	before := d.Outcomes()[1].TargetSlice
	_, err := d.CastSpell(game.SideHost, "gust")
	require.NoError(t, err)
	_, err = d.PickSpellTarget(game.SideHost, spell.TargetRef{Kind: spell.TargetWheel, Wheel: 1})
	require.NoError(t, err)

	want := game.NormalizeSlice(before + 3)
	assert.Equal(t, want, d.Outcomes()[1].TargetSlice, "outcome corrected without restarting the spin")

	d.FinishAnimation()
	assert.Equal(t, want, d.WheelToken(1), "corrected end state committed")
}

func TestNextRound_ResetsPerRoundState(t *testing.T) {
	d := New(testConfig())
	commitThree(d, game.SideHost)
	commitThree(d, game.SideGuest)
	d.MarkReveal(game.SideHost)
	d.MarkReveal(game.SideGuest)
	d.FinishAnimation()
	require.Equal(t, game.PhaseRoundEnd, d.Phase())

	owned := d.TotalOwned(game.SideHost)
	d.MarkNextRound(game.SideHost)
	d.MarkNextRound(game.SideGuest)

	assert.Equal(t, game.PhaseChoosing, d.Phase())
	assert.Equal(t, 2, d.Round())
	assert.Equal(t, 0, d.Assignment(game.SideHost).Committed())
	assert.Len(t, d.HandCards(game.SideHost), game.HandSize)
	assert.Equal(t, owned, d.TotalOwned(game.SideHost), "cards conserved across rounds")
	assert.Equal(t, startingMana+manaPerRound, d.Mana(game.SideHost))
}

func TestReserve_PeerReportBeatsLocalEstimate(t *testing.T) {
	d := New(testConfig())
	local := d.Reserve(game.SideGuest)

	d.ReportReserve(game.SideGuest, local+7, d.Round())
	assert.Equal(t, local+7, d.Reserve(game.SideGuest))

	// Stale round numbers are ignored.
	d.ReportReserve(game.SideGuest, 99, d.Round()+5)
	assert.Equal(t, local+7, d.Reserve(game.SideGuest))
}

func TestReserve_ReportAdjustsForLaterDrains(t *testing.T) {
	host := New(testConfig())
	guest := New(testConfig())

	// The guest broadcasts its reserve; the host stores the report. Both
	// copies then apply the identical drain payload.
	host.ReportReserve(game.SideGuest, guest.LocalReserve(game.SideGuest), 1)
	p := spell.Payload{ReserveDrains: []spell.ReserveDrain{{Side: game.SideGuest, Amount: 3}}}
	host.ApplyRemotePayload(p)
	guest.ApplyRemotePayload(p)

	assert.Equal(t, guest.Reserve(game.SideGuest), host.Reserve(game.SideGuest), "both peers agree after the drain")
	assert.Equal(t, guest.LocalReserve(game.SideGuest), host.Reserve(game.SideGuest))
}

func TestReserve_ReportDroppedAfterHandMutation(t *testing.T) {
	host := New(testConfig())
	guest := New(testConfig())
	id := guest.HandCards(game.SideGuest)[0].ID

	host.ReportReserve(game.SideGuest, guest.LocalReserve(game.SideGuest), 1)
	p := spell.Payload{Discards: []spell.ForcedDiscard{{Side: game.SideGuest, CardID: id}}}
	host.ApplyRemotePayload(p)
	guest.ApplyRemotePayload(p)

	assert.Equal(t, guest.Reserve(game.SideGuest), host.Reserve(game.SideGuest), "stale report no longer served")
}

func TestReserve_DrainIsPersistentPenalty(t *testing.T) {
	d := New(testConfig())
	before := d.LocalReserve(game.SideHost)
	d.DrainReserve(game.SideHost, 3)
	assert.Equal(t, maxInt(before-3, 0), d.LocalReserve(game.SideHost))
}

func TestPlaceWager_OnlyWhenAnteEnabled(t *testing.T) {
	d := New(testConfig())
	d.PlaceWager(game.SideHost, 3, 1.5)
	assert.Equal(t, 0, d.Ante().Wagers[game.SideHost])

	cfg := testConfig()
	cfg.AnteMode = true
	d = New(cfg)
	d.PlaceWager(game.SideHost, 3, 1.5)
	assert.Equal(t, 3, d.Ante().Wagers[game.SideHost])
	assert.Equal(t, 1.5, d.Ante().Odds[game.SideHost])
}

func TestManaPool_RefundCapsAtLimit(t *testing.T) {
	d := New(testConfig())
	d.RefundMana(game.SideHost, 100)
	assert.Equal(t, manaCap, d.Mana(game.SideHost))
	d.SpendMana(game.SideHost, 100)
	assert.Equal(t, 0, d.Mana(game.SideHost))
}

func TestEventLog_Bounded(t *testing.T) {
	d := New(testConfig())
	for i := 0; i < logLimit+25; i++ {
		d.AppendLog("line")
	}
	assert.Len(t, d.EventLog(), logLimit)
}

func TestSkillMode_EntersSkillPhaseAfterAnimation(t *testing.T) {
	cfg := testConfig()
	cfg.SkillMode = true
	d := New(cfg)
	commitThree(d, game.SideHost)
	commitThree(d, game.SideGuest)
	d.MarkReveal(game.SideHost)
	d.MarkReveal(game.SideGuest)
	d.FinishAnimation()

	if d.Phase() == game.PhaseSkill {
		require.NotNil(t, d.Skills())
		d.PassSkill(d.Skills().Turn())
		if d.Phase() == game.PhaseSkill {
			d.PassSkill(d.Skills().Turn())
		}
	}
	assert.Equal(t, game.PhaseRoundEnd, d.Phase())
}

func TestRematch_ResetsMatchAndContinuesRNGStream(t *testing.T) {
	d := New(testConfig())

	d.Resign(game.SideGuest)
	require.Equal(t, game.PhaseEnded, d.Phase())
	assert.Equal(t, game.SideHost, d.Winner())

	d.MarkRematch(game.SideHost)
	d.MarkRematch(game.SideGuest)
	assert.Equal(t, game.PhaseChoosing, d.Phase())
	assert.Equal(t, 1, d.Round())
	assert.Equal(t, 0, d.Tally(game.SideHost))
	assert.Equal(t, 0, d.Tally(game.SideGuest))

	// The continuing stream is deterministic: a second peer replaying the
	// same resign and rematch votes regenerates identical wheels.
	other := New(testConfig())
	other.Resign(game.SideGuest)
	other.MarkRematch(game.SideHost)
	other.MarkRematch(game.SideGuest)
	assert.Equal(t, other.Wheels(), d.Wheels())
}

func TestDeterminism_TwoPeersReplaySameIntents(t *testing.T) {
	a := New(testConfig())
	b := New(testConfig())

	for _, d := range []*Duel{a, b} {
		commitThree(d, game.SideHost)
		commitThree(d, game.SideGuest)
		d.MarkReveal(game.SideHost)
		d.MarkReveal(game.SideGuest)
		d.FinishAnimation()
	}
	assert.Equal(t, a.Summary(), b.Summary())
	assert.Equal(t, a.Tally(game.SideHost), b.Tally(game.SideHost))
	assert.Equal(t, a.Wheels(), b.Wheels())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
