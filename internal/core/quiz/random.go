package quiz

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Random is the only source of non-determinism in the engine. IntN returns a
// value in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

// NewRandom returns a fresh PCG source seeded from crypto/rand. Each Generate
// call gets its own, so nothing random is shared between calls.
func NewRandom() Random {
	var seed [16]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(seed[:8]), binary.LittleEndian.Uint64(seed[8:])))
}

// shuffle is an unbiased Fisher-Yates shuffle of a copy of items.
func shuffle(items []string, r Random) []string {
	out := append([]string(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
