package util

import (
	"fmt"
	"math/rand/v2"
)

// NewRand returns a deterministic random stream for the given seed.
// Every caller that needs randomness receives this stream explicitly.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// IntBetween returns a uniform integer in the closed interval [lo, hi].
func IntBetween(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("util.IntBetween: empty range [%d, %d]", lo, hi))
	}
	return lo + r.IntN(hi-lo+1)
}

// Uniform returns a uniform float in [lo, hi).
func Uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// SampleIndices picks k distinct indices from [0, n) uniformly without replacement.
// The result is in selection order.
func SampleIndices(r *rand.Rand, n, k int) ([]int, error) {
	if k < 0 || k > n {
		return nil, fmt.Errorf("sample size %d out of range for population %d", k, n)
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k], nil
}

// Shuffle permutes s in place.
func Shuffle[T any](r *rand.Rand, s []T) {
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// Choice returns a uniformly chosen element of s. s must not be empty.
func Choice[T any](r *rand.Rand, s []T) T {
	return s[r.IntN(len(s))]
}
