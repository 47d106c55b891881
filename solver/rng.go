// SPDX-License-Identifier: MIT
//
// File: rng.go
// Role: Deterministic random streams for tie-breaking, initial assignments,
//       restarts and multi-start seeds.
// Concurrency:
//   - *rand.Rand is not goroutine-safe; every Solver owns its stream and the
//     evaluation workers never touch it.

package solver

import "math/rand"

// defaultRNGSeed replaces a zero seed so that the default stream is stable.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 selects defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes parent and a stream id into an independent seed with the
// SplitMix64 finalizer. Used to give each multi-start run its own stream.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		x = uint64(defaultRNGSeed)
	}

	return int64(x)
}

// reservoir picks uniformly among a stream of equally good candidates
// without storing them: the k-th candidate replaces the pick with
// probability 1/k.
type reservoir struct {
	seen int
}

// offer reports whether the current candidate becomes the pick.
func (r *reservoir) offer(rng *rand.Rand) bool {
	r.seen++

	return r.seen == 1 || rng.Intn(r.seen) == 0
}
