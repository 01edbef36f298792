// Package randutil derives reproducible random sources for shoes and bet
// policies.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	return NewStream(seed, 0)
}

// NewStream returns an independent generator for one of several consumers
// sharing a base seed, e.g. one per simulator worker or server session.
// Stream 0 is identical to New(seed).
func NewStream(seed int64, stream uint64) *rand.Rand {
	u := uint64(seed)
	s := mix(stream*goldenRatio64 + 1)
	if stream == 0 {
		s = 0
	}
	return rand.New(rand.NewPCG(mix(u^s), mix(u+goldenRatio64)^s))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
