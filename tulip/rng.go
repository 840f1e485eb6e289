// SPDX-License-Identifier: MIT
// Package tulip - seeded random sources for tie-breaking within a bin.
//
// A *rand.Rand is not goroutine-safe; every walker owns its own source.
package tulip

import "math/rand"

// defaultSeed replaces seed 0 and nil parents.
const defaultSeed int64 = 1

// golden is the SplitMix64 increment (2^64 / φ).
const golden uint64 = 0x9e3779b97f4a7c15

// NewRand returns a deterministic *rand.Rand; seed 0 maps to defaultSeed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// Streams hands out tie-break sources keyed by a caller-chosen id. The
// parent is drawn once, so the source of one key does not depend on which
// other keys are requested or in what order.
type Streams struct {
	parent uint64
}

// NewStreams draws the parent of all streams from base. A nil base uses
// defaultSeed.
func NewStreams(base *rand.Rand) Streams {
	if base == nil {
		return Streams{parent: uint64(defaultSeed)}
	}

	return Streams{parent: uint64(base.Int63())}
}

// Rand returns the source for key. Equal keys give equal sequences.
func (s Streams) Rand(key uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(splitmix(s.parent + (key+1)*golden))))
}

// splitmix is the SplitMix64 output function.
func splitmix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return z ^ (z >> 31)
}
