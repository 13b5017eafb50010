package game

import "strconv"

// Element is a card's affinity used for spell synergy checks.
type Element string

const (
	ElementNone   Element = ""
	ElementFire   Element = "fire"
	ElementFrost  Element = "frost"
	ElementShadow Element = "shadow"
	ElementStorm  Element = "storm"
)

// SplitValue holds a left/right pair for cards that carry two faces
// instead of a single number. The left face is the one that counts when
// the card is committed to a lane.
type SplitValue struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

// Card is the atomic playing piece. Value is the current, spell-mutable
// number; BaseValue never changes after the card is minted and is the
// input of the skill-ability bucket mapping. A card carries either a
// Value or a Split pair, never both.
type Card struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Value     *int        `json:"value,omitempty"`
	Split     *SplitValue `json:"split,omitempty"`
	BaseValue int         `json:"base_value"`
	Tags      []string    `json:"tags,omitempty"`
	Affinity  Element     `json:"affinity,omitempty"`
	// Decoy cards show a placeholder face in the UI but still resolve
	// to their real number for ReserveSum purposes.
	Decoy bool `json:"decoy,omitempty"`
	// ReserveExhausted marks a card permanently spent for the round by
	// the reserveBoost skill. Tracked on the card itself so the flag
	// follows the card if it is later relocated.
	ReserveExhausted bool `json:"reserve_exhausted,omitempty"`
}

// HasTag reports whether the card carries the given tag.
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NewValueCard builds a plain single-value card whose base equals its
// starting value.
func NewValueCard(id, name string, value int) Card {
	v := value
	return Card{ID: id, Name: name, Value: &v, BaseValue: value}
}

// NewReserveFiller builds the zero-value filler injected when a deck runs
// dry and the hand must still be topped up to its fixed size.
func NewReserveFiller(id string) Card {
	v := 0
	return Card{ID: id, Name: "Reserve", Value: &v, BaseValue: 0, Tags: []string{TagFiller}}
}

// TagFiller marks deck-exhaustion filler cards so bookkeeping can tell
// them apart from real deck cards.
const TagFiller = "filler"

// HandSize is the fixed target hand size for every fighter.
const HandSize = 5

// Fighter is one side's card pools. The union of Deck+Hand+Discard+Exhaust
// is conserved across a match except for Reserve fillers.
type Fighter struct {
	Name    string `json:"name"`
	Deck    []Card `json:"deck"`
	Hand    []Card `json:"hand"`
	Discard []Card `json:"discard"`
	// Exhaust holds cards permanently consumed by skill abilities.
	Exhaust []Card `json:"exhaust"`

	fillerSeq int
}

// DrawOne moves the top deck card to the hand. When the deck is empty a
// zero-value Reserve filler is injected instead so the hand-size
// invariant holds rather than failing.
func (f *Fighter) DrawOne() Card {
	if len(f.Deck) == 0 {
		f.fillerSeq++
		c := NewReserveFiller(fillerID(f.Name, f.fillerSeq))
		f.Hand = append(f.Hand, c)
		return c
	}
	c := f.Deck[0]
	f.Deck = f.Deck[1:]
	f.Hand = append(f.Hand, c)
	return c
}

// RefillHand draws until the hand reaches HandSize.
func (f *Fighter) RefillHand() {
	for len(f.Hand) < HandSize {
		f.DrawOne()
	}
}

// RemoveFromHand removes the hand card with the given ID and returns it.
// The second result is false when no such card is in hand.
func (f *Fighter) RemoveFromHand(cardID string) (Card, bool) {
	for i := range f.Hand {
		if f.Hand[i].ID == cardID {
			c := f.Hand[i]
			f.Hand = append(f.Hand[:i], f.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// DiscardFromHand moves a hand card to the discard pile.
func (f *Fighter) DiscardFromHand(cardID string) bool {
	c, ok := f.RemoveFromHand(cardID)
	if !ok {
		return false
	}
	f.Discard = append(f.Discard, c)
	return true
}

// ExhaustFromHand moves a hand card to the exhaust pile (skill-consumed).
func (f *Fighter) ExhaustFromHand(cardID string) bool {
	c, ok := f.RemoveFromHand(cardID)
	if !ok {
		return false
	}
	c.ReserveExhausted = true
	f.Exhaust = append(f.Exhaust, c)
	return true
}

// HandCard returns a pointer to the hand card with the given ID, or nil.
func (f *Fighter) HandCard(cardID string) *Card {
	for i := range f.Hand {
		if f.Hand[i].ID == cardID {
			return &f.Hand[i]
		}
	}
	return nil
}

// TotalCards counts every card the fighter owns across all piles.
func (f *Fighter) TotalCards() int {
	return len(f.Deck) + len(f.Hand) + len(f.Discard) + len(f.Exhaust)
}

func fillerID(owner string, seq int) string {
	return "reserve-" + owner + "-" + strconv.Itoa(seq)
}
