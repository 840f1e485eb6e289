// SPDX-License-Identifier: MIT
// Package connectivity: LineGraph is the undirected intersection graph of an
// axial map.
package connectivity

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// LineGraph holds one node per axial line and an undirected link per
// intersection. Refs are 0..n-1; removed lines leave gaps.
type LineGraph struct {
	live *roaring.Bitmap
	refs [][]int
}

// NewLineGraph allocates n unlinked lines.
// Returns ErrBadDimensions if n is non-positive.
func NewLineGraph(n int) (*LineGraph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d lines", ErrBadDimensions, n)
	}
	live := roaring.New()
	live.AddRange(0, uint64(n))

	return &LineGraph{live: live, refs: make([][]int, n)}, nil
}

// Link records an intersection between a and b. Linking twice is a no-op.
func (lg *LineGraph) Link(a, b int) error {
	if a == b {
		return ErrSelfLink
	}
	if !lg.Valid(a) || !lg.Valid(b) {
		return fmt.Errorf("%w: link %d-%d", ErrUnknownRef, a, b)
	}
	for _, r := range lg.refs[a] {
		if r == b {
			return nil
		}
	}
	lg.refs[a] = append(lg.refs[a], b)
	lg.refs[b] = append(lg.refs[b], a)

	return nil
}

// RemoveLine deletes a line and its intersections.
func (lg *LineGraph) RemoveLine(ref int) error {
	if !lg.Valid(ref) {
		return fmt.Errorf("%w: %d", ErrUnknownRef, ref)
	}
	for _, n := range lg.refs[ref] {
		lg.refs[n] = dropRef(lg.refs[n], ref)
	}
	lg.refs[ref] = nil
	lg.live.Remove(uint32(ref))

	return nil
}

// Count returns the size of the reference space.
func (lg *LineGraph) Count() int { return len(lg.refs) }

// Len returns the number of live lines.
func (lg *LineGraph) Len() int { return int(lg.live.GetCardinality()) }

// Valid reports whether ref names a live line.
func (lg *LineGraph) Valid(ref int) bool {
	return ref >= 0 && ref < len(lg.refs) && lg.live.Contains(uint32(ref))
}

// Neighbors returns the lines intersecting ref.
func (lg *LineGraph) Neighbors(ref int) []int {
	if ref < 0 || ref >= len(lg.refs) {
		return nil
	}

	return lg.refs[ref]
}

// Refs returns all live refs in ascending order.
func (lg *LineGraph) Refs() []int {
	return bitmapRefs(lg.live)
}
