package engine

import (
	"math/rand"
	"sort"

	"github.com/ericogr/trifate-cards/internal/game"
)

// Archetype names a length distribution for a wheel's five sections. The
// lengths always sum to 15 so the five sections exactly cover slices
// 1..15, leaving slice 0 as the miss zone.
type Archetype struct {
	ID      string `json:"id"`
	Lengths []int  `json:"lengths"`
}

// Built-in archetypes. Config may extend this set; IDs are matched
// case-sensitively.
var defaultArchetypes = []Archetype{
	{ID: "bandit", Lengths: []int{5, 4, 3, 2, 1}},
	{ID: "sentinel", Lengths: []int{5, 5, 3, 1, 1}},
	{ID: "oracle", Lengths: []int{4, 4, 3, 2, 2}},
	{ID: "wildcard", Lengths: []int{6, 4, 2, 2, 1}},
	{ID: "even", Lengths: []int{3, 3, 3, 3, 3}},
}

// ArchetypeByID looks up an archetype, falling back to "even" for unknown
// IDs so section generation never fails.
func ArchetypeByID(id string, extra []Archetype) Archetype {
	for _, a := range extra {
		if a.ID == id {
			return a
		}
	}
	for _, a := range defaultArchetypes {
		if a.ID == id {
			return a
		}
	}
	return defaultArchetypes[len(defaultArchetypes)-1]
}

// DefaultArchetypes returns a copy of the built-in archetype set.
func DefaultArchetypes() []Archetype {
	out := make([]Archetype, len(defaultArchetypes))
	copy(out, defaultArchetypes)
	return out
}

// GenerateSections builds a wheel's five-section layout from the shared
// RNG stream.
//
// Determinism contract: draws happen in a fixed order — one shuffle of
// the archetype's length set, one shuffle of the kind set, then one
// target draw per ClosestToTarget section in placement order. Both peers
// must call this with streams in the same state or layouts silently
// diverge. Easy mode rewrites Initiative sections to Strongest after the
// shuffles; it consumes no extra draws so the flag never desyncs the
// stream.
func GenerateSections(arch Archetype, rng *rand.Rand, easyMode bool) []game.WheelSection {
	lengths := make([]int, len(arch.Lengths))
	copy(lengths, arch.Lengths)
	rng.Shuffle(len(lengths), func(i, j int) {
		lengths[i], lengths[j] = lengths[j], lengths[i]
	})

	kinds := make([]game.SectionKind, len(game.SectionKinds))
	copy(kinds, game.SectionKinds[:])
	rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	sections := make([]game.WheelSection, 0, len(lengths))
	next := 1
	for i := range lengths {
		kind := kinds[i%len(kinds)]
		sec := game.WheelSection{Kind: kind, Start: next, End: next + lengths[i] - 1}
		if sec.Kind == game.SectionClosest {
			sec.Target = rng.Intn(game.WheelSlices)
		}
		if easyMode && sec.Kind == game.SectionInitiative {
			sec.Kind = game.SectionStrongest
		}
		sections = append(sections, sec)
		next = sec.End + 1
	}
	return sections
}

// GenerateWheels regenerates all three wheel layouts for a round,
// preserving each wheel's current token position.
func GenerateWheels(archIDs [game.WheelCount]string, extra []Archetype, rng *rand.Rand, easyMode bool, tokens [game.WheelCount]int) [game.WheelCount]game.Wheel {
	var wheels [game.WheelCount]game.Wheel
	for i := 0; i < game.WheelCount; i++ {
		wheels[i] = game.Wheel{
			Sections: GenerateSections(ArchetypeByID(archIDs[i], extra), rng, easyMode),
			Token:    game.NormalizeSlice(tokens[i]),
		}
	}
	return wheels
}

// ValidateArchetype checks that a configured archetype covers the ring
// exactly.
func ValidateArchetype(a Archetype) bool {
	if len(a.Lengths) != len(game.SectionKinds) {
		return false
	}
	sum := 0
	for _, l := range a.Lengths {
		if l < 1 {
			return false
		}
		sum += l
	}
	return sum == game.WheelSlices-1
}

// ArchetypeIDs returns every known archetype ID (configured plus
// built-in), sorted; used by config validation error messages.
func ArchetypeIDs(extra []Archetype) []string {
	ids := make([]string, 0, len(extra)+len(defaultArchetypes))
	for _, a := range extra {
		ids = append(ids, a.ID)
	}
	for _, a := range defaultArchetypes {
		ids = append(ids, a.ID)
	}
	sort.Strings(ids)
	return ids
}
