package battle

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Rng is the only source of randomness a battle uses. *rand.Rand satisfies it.
type Rng interface {
	// Float64 returns a uniform number in [0, 1)
	Float64() float64
	// IntN returns a uniform number in [0, n)
	IntN(n int) int
}

// NewRng creates the generator a battle uses for a given seed
func NewRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed returns a seed for battles that were not given one
func RandomSeed() uint64 {
	var randBytes [8]byte
	_, err := cryptoRand.Read(randBytes[:])
	if err != nil {
		// crypto/rand does not fail on any supported platform
		panic(err)
	}

	return binary.LittleEndian.Uint64(randBytes[:])
}

// chance rolls once against p
func chance(rng Rng, p float64) bool {
	return rng.Float64() < p
}

// between returns a uniform int in [lo, hi]
func between(rng Rng, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
