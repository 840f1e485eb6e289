// SPDX-License-Identifier: MIT
// Package tulip: Bins is a cyclic bucket array approximating a min-priority
// queue over quantized angular cost.
package tulip

import (
	"fmt"
	"math"
	"math/rand"
)

// Bins holds pending SegmentData records in Resolution() buckets.
//
// The bucket a record lands in is its quantized cost relative to the current
// bucket, modulo the resolution. Pop always returns a record from the nearest
// non-empty bucket ahead of (or at) the current one, so records come out in
// non-decreasing order of quantized cost as long as no single push offset
// reaches a full turn of the array.
//
// Bins is not safe for concurrent use.
type Bins struct {
	bins    [][]SegmentData
	current int
	level   int
	count   int
	rnd     *rand.Rand
}

// New allocates resolution empty bins. A nil rnd is replaced with the
// default deterministic stream (see NewRand).
// Returns ErrBadResolution if resolution < 2.
// Complexity: O(resolution).
func New(resolution int, rnd *rand.Rand) (*Bins, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("%w: %d", ErrBadResolution, resolution)
	}
	if rnd == nil {
		rnd = NewRand(0)
	}

	return &Bins{
		bins: make([][]SegmentData, resolution),
		rnd:  rnd,
	}, nil
}

// Resolution returns the number of bins.
func (b *Bins) Resolution() int { return len(b.bins) }

// Offset quantizes an angular cost onto bins: floor(cost · resolution · 0.5),
// so a cost of 1 spans half of the array.
func (b *Bins) Offset(cost float64) int {
	return int(math.Floor(cost * float64(len(b.bins)) * 0.5))
}

// Index returns the bin a record pushed with offset would land in.
// The result is in [0, Resolution()) for any offset sign and magnitude.
func (b *Bins) Index(offset int) int {
	res := len(b.bins)

	return (b.current + res + offset%res) % res
}

// Push stores rec offset bins ahead of the current bin.
// Complexity: O(1) amortized.
func (b *Bins) Push(offset int, rec SegmentData) {
	i := b.Index(offset)
	b.bins[i] = append(b.bins[i], rec)
	b.count++
}

// Pop advances to the next non-empty bin, counting one level per bin passed,
// and removes a uniformly random record from it. Returns false when empty.
// Complexity: O(resolution) worst case per call, O(1) amortized over a sweep.
func (b *Bins) Pop() (SegmentData, bool) {
	if b.count == 0 {
		return SegmentData{}, false
	}
	for len(b.bins[b.current]) == 0 {
		b.current = (b.current + 1) % len(b.bins)
		b.level++
	}
	bin := b.bins[b.current]
	last := len(bin) - 1
	i := 0
	if last > 0 {
		i = b.rnd.Intn(last + 1)
	}
	rec := bin[i]
	bin[i] = bin[last]
	b.bins[b.current] = bin[:last]
	b.count--

	return rec, true
}

// Len returns the number of pending records.
func (b *Bins) Len() int { return b.count }

// Level returns how many bins the current pointer has advanced since Reset.
func (b *Bins) Level() int { return b.level }

// Reset empties every bin and rewinds the pointer and level, keeping capacity.
func (b *Bins) Reset() {
	for i := range b.bins {
		b.bins[i] = b.bins[i][:0]
	}
	b.current, b.level, b.count = 0, 0, 0
}
