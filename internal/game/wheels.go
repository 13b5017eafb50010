package game

// WheelSlices is the number of slices on every wheel ring. Slice 0 is a
// permanent no-win miss zone and is never covered by a section.
const WheelSlices = 16

// MissSlice is the automatic-tie slice on every wheel.
const MissSlice = 0

// WheelCount is the number of independent wheels per match.
const WheelCount = 3

// LaneCount is the number of card lanes; lane i feeds wheel i.
const LaneCount = 3

// SectionKind is one of the five victory-condition kinds a wheel section
// can expose.
type SectionKind string

const (
	SectionStrongest  SectionKind = "strongest"
	SectionWeakest    SectionKind = "weakest"
	SectionReserveSum SectionKind = "reserve_sum"
	SectionClosest    SectionKind = "closest"
	SectionInitiative SectionKind = "initiative"
)

// SectionKinds lists every kind in canonical order. The wheel generator
// shuffles a copy of this slice, so the order here is part of the
// cross-peer determinism contract.
var SectionKinds = [5]SectionKind{
	SectionStrongest,
	SectionWeakest,
	SectionReserveSum,
	SectionClosest,
	SectionInitiative,
}

// WheelSection is a contiguous slice range mapped to one victory
// condition. Start..End are inclusive slice indexes; Target is only
// meaningful for SectionClosest.
type WheelSection struct {
	Kind   SectionKind `json:"kind"`
	Start  int         `json:"start"`
	End    int         `json:"end"`
	Target int         `json:"target,omitempty"`
}

// Covers reports whether the section covers the given slice.
func (s WheelSection) Covers(slice int) bool {
	return slice >= s.Start && slice <= s.End
}

// Length returns the number of slices the section spans.
func (s WheelSection) Length() int { return s.End - s.Start + 1 }

// Wheel is one victory-condition track: a section layout over the 16-slot
// ring plus the current token position.
type Wheel struct {
	Sections []WheelSection `json:"sections"`
	Token    int            `json:"token"`
}

// SectionAt returns the section covering the given slice, or nil when the
// slice is the miss zone.
func (w *Wheel) SectionAt(slice int) *WheelSection {
	for i := range w.Sections {
		if w.Sections[i].Covers(slice) {
			return &w.Sections[i]
		}
	}
	return nil
}

// AdvanceToken moves the token by steps around the ring and returns the
// new position.
func (w *Wheel) AdvanceToken(steps int) int {
	w.Token = NormalizeSlice(w.Token + steps)
	return w.Token
}

// NormalizeSlice wraps any integer into the [0,WheelSlices) ring. Negative
// deltas wrap the same way both peers expect.
func NormalizeSlice(n int) int {
	n %= WheelSlices
	if n < 0 {
		n += WheelSlices
	}
	return n
}
