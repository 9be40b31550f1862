package roulette

import "math/rand/v2"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// StdRNG delegates to math/rand/v2 (auto-seeded).
type StdRNG struct{}

func (StdRNG) Intn(n int) int { return rand.IntN(n) }

// SampleOne picks one element uniformly. ok is false for an empty slice.
func SampleOne[T any](rng RNG, s []T) (v T, ok bool) {
	if len(s) == 0 {
		return v, false
	}
	return s[rng.Intn(len(s))], true
}

// SampleUnique draws up to n distinct elements without replacement. When
// s has fewer than n elements every element is returned exactly once.
// Output is in draw order.
func SampleUnique[T any](rng RNG, s []T, n int) []T {
	if n <= 0 || len(s) == 0 {
		return nil
	}
	pool := make([]T, len(s))
	copy(pool, s)

	out := make([]T, 0, min(n, len(pool)))
	for len(out) < n && len(pool) > 0 {
		i := rng.Intn(len(pool))
		out = append(out, pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}
	return out
}
