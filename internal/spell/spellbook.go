package spell

import (
	"strconv"

	"github.com/ericogr/trifate-cards/internal/game"
)

// The spellbook is declarative: each entry is data plus a resolver that
// records effects into the runtime state. Adding a spell never touches
// the casting machine or the payload applier.
var spellbook = []*Definition{
	{
		ID:          "fireball",
		Name:        "Fireball",
		Description: "Scorch an enemy board card for -3.",
		Affinity:    game.ElementFire,
		Cost:        2,
		Phases:      []game.Phase{game.PhaseChoosing, game.PhaseRevealed},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnEnemy, Location: LocBoard, Manual: true, Prompt: "Choose an enemy lane"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			rc.State.CardDeltas = append(rc.State.CardDeltas, CardDelta{Side: t.Side, Lane: t.Lane, NumberDelta: -3})
			rc.State.AddLog("Fireball sears lane " + strconv.Itoa(t.Lane) + " for -3")
		},
	},
	{
		ID:          "kindle",
		Name:        "Kindle",
		Description: "Warm an ally hand card for +2.",
		Affinity:    game.ElementFire,
		Cost:        1,
		Phases:      []game.Phase{game.PhaseChoosing},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnAlly, Location: LocHand, Manual: true, Prompt: "Choose a hand card"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			rc.State.CardDeltas = append(rc.State.CardDeltas, CardDelta{Side: t.Side, CardID: t.CardID, InHand: true, NumberDelta: 2})
			rc.State.AddLog("Kindle warms a reserve card for +2")
		},
	},
	{
		ID:          "frostbite",
		Name:        "Frostbite",
		Description: "Chill an enemy lane, locking the card in place.",
		Affinity:    game.ElementFrost,
		Cost:        2,
		Phases:      []game.Phase{game.PhaseChoosing},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnEnemy, Location: LocBoard, Manual: true, Prompt: "Choose an enemy lane"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			rc.State.Chills = append(rc.State.Chills, ChillDelta{Side: t.Side, Lane: t.Lane, Stacks: 2})
			rc.State.CardDeltas = append(rc.State.CardDeltas, CardDelta{Side: t.Side, Lane: t.Lane, NumberDelta: -1})
			rc.State.AddLog("Frostbite locks lane " + strconv.Itoa(t.Lane))
		},
	},
	{
		ID:          "shatter",
		Name:        "Shatter",
		Description: "Crush a chilled enemy card; cheaper per chill stack.",
		Affinity:    game.ElementFrost,
		Cost:        4,
		CostFn: func(ctx CostContext) int {
			// Frost synergy: every chill stack on the enemy board
			// discounts the cost by one.
			cost := 4
			for lane := 0; lane < game.LaneCount; lane++ {
				cost -= ctx.View.ChillStacks(ctx.Opponent, lane)
			}
			if cost < 1 {
				cost = 1
			}
			return cost
		},
		Phases: []game.Phase{game.PhaseChoosing},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnEnemy, Location: LocBoard, Manual: true, Prompt: "Choose a chilled lane"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			delta := -2
			if rc.View.ChillStacks(t.Side, t.Lane) > 0 {
				delta = -4
			}
			rc.State.CardDeltas = append(rc.State.CardDeltas, CardDelta{Side: t.Side, Lane: t.Lane, NumberDelta: delta})
			rc.State.AddLog("Shatter hits lane " + strconv.Itoa(t.Lane) + " for " + strconv.Itoa(delta))
		},
	},
	{
		ID:          "mirror_image",
		Name:        "Mirror Image",
		Description: "Copy the opposing card's value onto your lane card.",
		Affinity:    game.ElementShadow,
		Cost:        2,
		Phases:      []game.Phase{game.PhaseChoosing, game.PhaseRevealed},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnAlly, Location: LocBoard, Manual: true, Prompt: "Choose your lane"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			rc.State.Mirrors = append(rc.State.Mirrors, MirrorEffect{Side: t.Side, Lane: t.Lane})
			rc.State.AddLog("Mirror Image copies the opposing card in lane " + strconv.Itoa(t.Lane))
		},
	},
	{
		ID:          "siphon",
		Name:        "Siphon",
		Description: "Drain 3 from the enemy reserve.",
		Affinity:    game.ElementShadow,
		Cost:        3,
		Stages:      []TargetStage{{Kind: TargetNone}},
		Resolve: func(rc *ResolveContext) {
			rc.State.ReserveDrains = append(rc.State.ReserveDrains, ReserveDrain{Side: rc.Opponent, Amount: 3})
			rc.State.AddLog("Siphon drains 3 reserve")
		},
	},
	{
		ID:          "gust",
		Name:        "Gust",
		Description: "Blow a wheel token 3 slices onward.",
		Affinity:    game.ElementStorm,
		Cost:        2,
		Phases:      []game.Phase{game.PhaseChoosing, game.PhaseRevealed, game.PhaseAnimating, game.PhaseRoundEnd},
		Stages: []TargetStage{
			{Kind: TargetWheel, Manual: true, Prompt: "Choose a wheel"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			rc.State.TokenDeltas = append(rc.State.TokenDeltas, TokenDelta{Wheel: t.Wheel, Delta: 3})
			rc.State.AddLog("Gust pushes wheel " + strconv.Itoa(t.Wheel) + " by 3")
		},
	},
	{
		ID:          "crosswind",
		Name:        "Crosswind",
		Description: "Swap two of your lanes, then drag a wheel back 1.",
		Affinity:    game.ElementStorm,
		Cost:        3,
		Phases:      []game.Phase{game.PhaseChoosing},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnAlly, Location: LocBoard, Manual: true, Prompt: "First lane"},
			{Kind: TargetCard, Ownership: OwnAlly, Location: LocBoard, Manual: true, Prompt: "Second lane"},
			{Kind: TargetWheel, Manual: true, Optional: true, Prompt: "Wheel to drag (optional)"},
		},
		Resolve: func(rc *ResolveContext) {
			a, b := rc.Target(0), rc.Target(1)
			rc.State.LaneSwaps = append(rc.State.LaneSwaps, LaneSwap{Side: a.Side, LaneA: a.Lane, LaneB: b.Lane})
			rc.State.AddLog("Crosswind swaps lanes " + strconv.Itoa(a.Lane) + " and " + strconv.Itoa(b.Lane))
			if w := rc.Target(2); !w.Skipped {
				rc.State.TokenDeltas = append(rc.State.TokenDeltas, TokenDelta{Wheel: w.Wheel, Delta: -1})
				rc.State.AddLog("Crosswind drags wheel " + strconv.Itoa(w.Wheel) + " back 1")
			}
		},
	},
	{
		ID:          "fresh_hand",
		Name:        "Fresh Hand",
		Description: "Discard a hand card and draw two.",
		Cost:        1,
		Phases:      []game.Phase{game.PhaseChoosing},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnAlly, Location: LocHand, Manual: true, Prompt: "Card to discard"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			rc.State.Discards = append(rc.State.Discards, ForcedDiscard{Side: t.Side, CardID: t.CardID})
			rc.State.Draws = append(rc.State.Draws, ForcedDraw{Side: t.Side, Count: 2})
			rc.State.AddLog("Fresh Hand cycles a card")
		},
	},
	{
		ID:          "duel_of_wills",
		Name:        "Duel of Wills",
		Description: "Challenge for initiative on one lane: higher value captures it.",
		Cost:        2,
		Phases:      []game.Phase{game.PhaseRevealed, game.PhaseRoundEnd},
		Stages: []TargetStage{
			{Kind: TargetCard, Ownership: OwnAlly, Location: LocBoard, Manual: true, Prompt: "Lane to contest"},
		},
		Resolve: func(rc *ResolveContext) {
			t := rc.Target(0)
			rc.State.Challenges = append(rc.State.Challenges, InitiativeChallenge{Side: rc.Caster, Lane: t.Lane})
			rc.State.AddLog("Duel of Wills contests lane " + strconv.Itoa(t.Lane))
		},
	},
}

// Spellbook returns every known spell definition.
func Spellbook() []*Definition {
	out := make([]*Definition, len(spellbook))
	copy(out, spellbook)
	return out
}

// ByID looks a spell up, or returns nil for unknown IDs.
func ByID(id string) *Definition {
	for _, d := range spellbook {
		if d.ID == id {
			return d
		}
	}
	return nil
}
