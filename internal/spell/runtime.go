package spell

import "github.com/ericogr/trifate-cards/internal/game"

// RuntimeState is the typed scratch accumulator a resolver callback
// writes its effects into. It is owned exclusively by one in-flight
// resolver call: the caster hands a fresh state to the resolver, harvests
// it into an immutable Payload afterwards and clears it. It is never read
// across invocations, which keeps separate casts from bleeding into each
// other.
type RuntimeState struct {
	Mirrors       []MirrorEffect
	CardDeltas    []CardDelta
	LaneSwaps     []LaneSwap
	HandSwaps     []HandSwap
	TokenDeltas   []TokenDelta
	ReserveDrains []ReserveDrain
	Chills        []ChillDelta
	Discards      []ForcedDiscard
	Draws         []ForcedDraw
	Exhausts      []ExhaustCard
	InitiativeSet game.Side
	Challenges    []InitiativeChallenge
	Log           []string
}

// MirrorEffect copies the lane opponent's current value onto a board
// card.
type MirrorEffect struct {
	Side game.Side `json:"side"`
	Lane int       `json:"lane"`
}

// CardDelta adds NumberDelta to a card's current value. Board deltas
// address a lane; hand deltas address a card ID.
type CardDelta struct {
	Side        game.Side `json:"side"`
	Lane        int       `json:"lane"`
	CardID      string    `json:"card_id,omitempty"`
	InHand      bool      `json:"in_hand,omitempty"`
	NumberDelta int       `json:"number_delta"`
}

// LaneSwap exchanges two lane positions on one side of the board.
type LaneSwap struct {
	Side  game.Side `json:"side"`
	LaneA int       `json:"lane_a"`
	LaneB int       `json:"lane_b"`
}

// TokenDelta moves a wheel token directly; normalized mod 16 on apply.
type TokenDelta struct {
	Wheel int `json:"wheel"`
	Delta int `json:"delta"`
}

// ReserveDrain is a persistent reserve penalty; later reserve
// recomputation still reflects it.
type ReserveDrain struct {
	Side   game.Side `json:"side"`
	Amount int       `json:"amount"`
}

// ChillDelta adds chill stacks that block moving or clearing a lane.
type ChillDelta struct {
	Side   game.Side `json:"side"`
	Lane   int       `json:"lane"`
	Stacks int       `json:"stacks"`
}

// ForcedDiscard discards from hand; a specific card when CardID is set,
// otherwise Count cards from the left.
type ForcedDiscard struct {
	Side   game.Side `json:"side"`
	CardID string    `json:"card_id,omitempty"`
	Count  int       `json:"count,omitempty"`
}

// ForcedDraw draws Count cards (deck exhaustion pads with fillers).
type ForcedDraw struct {
	Side  game.Side `json:"side"`
	Count int       `json:"count"`
}

// InitiativeChallenge pits a lane card's value against its lane
// opponent's; the higher value captures initiative for its side.
type InitiativeChallenge struct {
	Side game.Side `json:"side"`
	Lane int       `json:"lane"`
}

// HandSwap exchanges a committed lane card with a hand card.
type HandSwap struct {
	Side   game.Side `json:"side"`
	Lane   int       `json:"lane"`
	CardID string    `json:"card_id"`
}

// ExhaustCard moves a hand card to the exhaust pile, spending it for the
// round.
type ExhaustCard struct {
	Side   game.Side `json:"side"`
	CardID string    `json:"card_id"`
}

// AddLog records a human-readable line for the event log.
func (s *RuntimeState) AddLog(line string) {
	s.Log = append(s.Log, line)
}

// Harvest moves the accumulated effects into an immutable payload and
// clears the scratch state so nothing leaks into the next cast.
func (s *RuntimeState) Harvest() Payload {
	p := Payload{
		Mirrors:       s.Mirrors,
		CardDeltas:    s.CardDeltas,
		LaneSwaps:     s.LaneSwaps,
		HandSwaps:     s.HandSwaps,
		TokenDeltas:   s.TokenDeltas,
		ReserveDrains: s.ReserveDrains,
		Chills:        s.Chills,
		Discards:      s.Discards,
		Draws:         s.Draws,
		Exhausts:      s.Exhausts,
		InitiativeSet: s.InitiativeSet,
		Challenges:    s.Challenges,
		Log:           s.Log,
	}
	*s = RuntimeState{}
	return p
}

// Empty reports whether the state holds no recorded effects.
func (s *RuntimeState) Empty() bool {
	return len(s.Mirrors) == 0 && len(s.CardDeltas) == 0 && len(s.LaneSwaps) == 0 &&
		len(s.HandSwaps) == 0 && len(s.TokenDeltas) == 0 && len(s.ReserveDrains) == 0 &&
		len(s.Chills) == 0 && len(s.Discards) == 0 && len(s.Draws) == 0 &&
		len(s.Exhausts) == 0 && s.InitiativeSet == game.SideNone &&
		len(s.Challenges) == 0 && len(s.Log) == 0
}
