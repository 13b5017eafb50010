package spell

import "github.com/ericogr/trifate-cards/internal/game"

// TargetKind says what a targeting stage selects.
type TargetKind string

const (
	TargetNone  TargetKind = "none"
	TargetSelf  TargetKind = "self"
	TargetCard  TargetKind = "card"
	TargetWheel TargetKind = "wheel"
)

// Ownership constrains whose card a stage may pick.
type Ownership string

const (
	OwnAny   Ownership = "any"
	OwnAlly  Ownership = "ally"
	OwnEnemy Ownership = "enemy"
)

// Location constrains where the picked card may sit.
type Location string

const (
	LocAny   Location = "any"
	LocHand  Location = "hand"
	LocBoard Location = "board"
)

// TargetStage is one step of a spell's target specification. Stages with
// Manual set park the casting machine in AwaitingTarget until the UI
// supplies a pick; non-manual stages (self/none) are satisfied
// automatically. Optional stages may be skipped with an empty pick.
type TargetStage struct {
	Kind      TargetKind `json:"kind"`
	Ownership Ownership  `json:"ownership,omitempty"`
	Location  Location   `json:"location,omitempty"`
	Optional  bool       `json:"optional,omitempty"`
	Manual    bool       `json:"manual,omitempty"`
	Prompt    string     `json:"prompt,omitempty"`
}

// NeedsPick reports whether the stage requires a manual selection.
func (s TargetStage) NeedsPick() bool {
	return s.Manual && (s.Kind == TargetCard || s.Kind == TargetWheel)
}

// TargetRef is a resolved pick for one stage. For card targets either
// Lane (board) or CardID (hand) identifies the card; for wheel targets
// Wheel is the wheel index. A zero-value ref with Skipped set satisfies
// an optional stage.
type TargetRef struct {
	Kind    TargetKind `json:"kind"`
	Side    game.Side  `json:"side,omitempty"`
	Lane    int        `json:"lane,omitempty"`
	CardID  string     `json:"card_id,omitempty"`
	Wheel   int        `json:"wheel,omitempty"`
	Skipped bool       `json:"skipped,omitempty"`
}

// matchesStage checks a pick against its stage constraints.
func matchesStage(stage TargetStage, ref TargetRef, caster game.Side) bool {
	if ref.Skipped {
		return stage.Optional
	}
	if ref.Kind != stage.Kind {
		return false
	}
	switch stage.Kind {
	case TargetWheel:
		return ref.Wheel >= 0 && ref.Wheel < game.WheelCount
	case TargetCard:
		switch stage.Ownership {
		case OwnAlly:
			if ref.Side != caster {
				return false
			}
		case OwnEnemy:
			if ref.Side != caster.Other() {
				return false
			}
		}
		switch stage.Location {
		case LocHand:
			return ref.CardID != ""
		case LocBoard:
			return ref.Lane >= 0 && ref.Lane < game.LaneCount
		}
		return ref.CardID != "" || (ref.Lane >= 0 && ref.Lane < game.LaneCount)
	}
	return true
}
