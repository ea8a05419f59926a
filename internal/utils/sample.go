package utils

import "math/rand"

// SampleSize picks at most n items from items, uniformly and without
// replacement, using the given source so callers can seed it. The input
// slice is not modified.
func SampleSize[T any](rng *rand.Rand, items []T, n int) []T {
	if n >= len(items) {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
