package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/trifate-cards/internal/game"
)

func TestGenerateSections_DeterministicPerSeed(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, 999983} {
		for _, arch := range DefaultArchetypes() {
			a := GenerateSections(arch, NewStream(seed), false)
			b := GenerateSections(arch, NewStream(seed), false)
			assert.Equal(t, a, b, "seed=%d archetype=%s", seed, arch.ID)
		}
	}
}

func TestGenerateSections_CoversRingExactly(t *testing.T) {
	for _, arch := range DefaultArchetypes() {
		secs := GenerateSections(arch, NewStream(7), false)
		require.Len(t, secs, 5)

		covered := make(map[int]int)
		for _, s := range secs {
			for sl := s.Start; sl <= s.End; sl++ {
				covered[sl]++
			}
		}
		// Slices 1..15 covered exactly once; slice 0 never covered.
		assert.NotContains(t, covered, game.MissSlice)
		for sl := 1; sl < game.WheelSlices; sl++ {
			assert.Equal(t, 1, covered[sl], "slice %d", sl)
		}
	}
}

func TestGenerateSections_KindsAreAPermutation(t *testing.T) {
	secs := GenerateSections(ArchetypeByID("bandit", nil), NewStream(42), false)
	seen := make(map[game.SectionKind]bool)
	for _, s := range secs {
		seen[s.Kind] = true
	}
	assert.Len(t, seen, 5)
}

func TestGenerateSections_ClosestCarriesTarget(t *testing.T) {
	secs := GenerateSections(ArchetypeByID("oracle", nil), NewStream(3), false)
	for _, s := range secs {
		if s.Kind == game.SectionClosest {
			assert.GreaterOrEqual(t, s.Target, 0)
			assert.Less(t, s.Target, game.WheelSlices)
		}
	}
}

func TestGenerateSections_EasyModeDropsInitiative(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		secs := GenerateSections(ArchetypeByID("bandit", nil), NewStream(seed), true)
		for _, s := range secs {
			assert.NotEqual(t, game.SectionInitiative, s.Kind)
		}
		// Easy mode must consume the stream identically: layouts match
		// the normal-mode run except for the kind rewrite.
		normal := GenerateSections(ArchetypeByID("bandit", nil), NewStream(seed), false)
		for i := range secs {
			assert.Equal(t, normal[i].Start, secs[i].Start)
			assert.Equal(t, normal[i].End, secs[i].End)
		}
	}
}

func TestValidateArchetype(t *testing.T) {
	assert.True(t, ValidateArchetype(Archetype{ID: "ok", Lengths: []int{5, 4, 3, 2, 1}}))
	assert.False(t, ValidateArchetype(Archetype{ID: "short", Lengths: []int{5, 4, 3, 2}}))
	assert.False(t, ValidateArchetype(Archetype{ID: "sum", Lengths: []int{5, 4, 3, 2, 2}}))
	assert.False(t, ValidateArchetype(Archetype{ID: "zero", Lengths: []int{5, 4, 3, 3, 0}}))
}
