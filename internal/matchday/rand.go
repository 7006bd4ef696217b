package matchday

import "math/rand/v2"

// Rand is the random source the engine draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests inject seeded sources or fixed sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source. Equal seeds replay the same season.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// uniform returns a draw in [lo, hi).
func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
