package netplay

import (
	"encoding/json"

	"github.com/ericogr/trifate-cards/internal/game"
	"github.com/ericogr/trifate-cards/internal/spell"
)

// IntentType tags one variant of the intent union exchanged between
// peers.
type IntentType string

const (
	IntentAssign       IntentType = "assign"
	IntentClear        IntentType = "clear"
	IntentReveal       IntentType = "reveal"
	IntentNextRound    IntentType = "nextRound"
	IntentRematch      IntentType = "rematch"
	IntentReserve      IntentType = "reserve"
	IntentAnte         IntentType = "ante"
	IntentSpellEffects IntentType = "spellEffects"
	IntentSkill        IntentType = "skill"
	IntentResign       IntentType = "resign"
)

// Intent is one replicated transition input. Every peer applies its own
// intents optimistically and broadcasts them; receivers drop echoes by
// comparing Sender against their own peer ID.
type Intent struct {
	Type   IntentType `json:"type"`
	Sender string     `json:"sender"`
	Side   game.Side  `json:"side,omitempty"`

	// assign / clear
	Lane   int    `json:"lane,omitempty"`
	CardID string `json:"card,omitempty"`

	// reserve / ante
	Reserve int     `json:"reserve,omitempty"`
	Round   int     `json:"round,omitempty"`
	Bet     int     `json:"bet,omitempty"`
	Odds    float64 `json:"odds,omitempty"`

	// spellEffects / skill
	Payload      *spell.Payload `json:"payload,omitempty"`
	SourceCardID string         `json:"source_card,omitempty"`
}

// Encode serializes an intent for the wire or the relay journal.
func (in Intent) Encode() ([]byte, error) {
	return json.Marshal(in)
}

// Decode parses a journaled intent. Unknown fields are ignored so newer
// peers stay compatible with older journals.
func Decode(raw []byte) (Intent, error) {
	var in Intent
	err := json.Unmarshal(raw, &in)
	return in, err
}
