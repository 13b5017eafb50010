package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random match seed using crypto/rand. The seed is
// exchanged once at match start; everything else derives from the shared
// stream.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewStream returns the deterministic RNG stream for a match seed. Both
// peers must consume draws from their stream in the same order or wheel
// layouts silently diverge.
func NewStream(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
