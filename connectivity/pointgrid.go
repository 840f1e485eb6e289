// SPDX-License-Identifier: MIT
// Package connectivity: PointGrid treats a rectangular grid of floor points as
// an undirected visibility graph keyed by row-major pixel reference.
package connectivity

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// PointGrid is the connectivity model of a visibility graph analysis.
//
// Each live point occupies one grid cell and is addressed by the row-major
// reference y*Width + x. Cells without a point (walls, removed points) leave
// gaps in the reference space. Neighbour lists are symmetric.
//
// The grid is mutable only through AddPoint, Link and RemovePoint; callers
// must not edit it while a traversal is running.
type PointGrid struct {
	Width, Height int

	live   *roaring.Bitmap   // live point refs
	owners []int             // owner tag per ref
	nbrs   [][]PointNeighbor // neighbour records per ref
	refs   [][]int           // neighbour refs per ref, mirrors nbrs
	lookup *pointIndex       // lazily built nearest-point lookup
}

// NewPointGrid allocates an empty width×height grid with no points.
// Returns ErrBadDimensions if either dimension is non-positive.
// Complexity: O(W×H) memory.
func NewPointGrid(width, height int) (*PointGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	n := width * height

	return &PointGrid{
		Width:  width,
		Height: height,
		live:   roaring.New(),
		owners: make([]int, n),
		nbrs:   make([][]PointNeighbor, n),
		refs:   make([][]int, n),
	}, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (pg *PointGrid) InBounds(x, y int) bool {
	return x >= 0 && x < pg.Width && y >= 0 && y < pg.Height
}

// index maps (x,y) to a row-major reference: y*Width + x.
func (pg *PointGrid) index(x, y int) int {
	return y*pg.Width + x
}

// Coordinate converts a row-major reference back to (x,y).
// Complexity: O(1).
func (pg *PointGrid) Coordinate(ref int) (x, y int) {
	return ref % pg.Width, ref / pg.Width
}

// Ref returns the reference of the live point at (x,y).
func (pg *PointGrid) Ref(x, y int) (int, bool) {
	if !pg.InBounds(x, y) {
		return -1, false
	}
	ref := pg.index(x, y)

	return ref, pg.Valid(ref)
}

// AddPoint places a point at (x,y) with the given owner tag and returns its ref.
// Adding an existing point only updates the owner tag.
func (pg *PointGrid) AddPoint(x, y, owner int) (int, error) {
	if !pg.InBounds(x, y) {
		return -1, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrUnknownRef, x, y, pg.Width, pg.Height)
	}
	ref := pg.index(x, y)
	pg.live.Add(uint32(ref))
	pg.owners[ref] = owner
	pg.lookup = nil

	return ref, nil
}

// Link connects two live points in both directions. Linking an already linked
// pair is a no-op.
// Complexity: O(deg(a) + deg(b)).
func (pg *PointGrid) Link(a, b int) error {
	if a == b {
		return ErrSelfLink
	}
	if !pg.Valid(a) || !pg.Valid(b) {
		return fmt.Errorf("%w: link %d-%d", ErrUnknownRef, a, b)
	}
	for _, r := range pg.refs[a] {
		if r == b {
			return nil
		}
	}
	pg.link(a, b)

	return nil
}

// link appends the pair without duplicate checks; callers guarantee uniqueness.
func (pg *PointGrid) link(a, b int) {
	pg.nbrs[a] = append(pg.nbrs[a], PointNeighbor{Ref: b, Owner: pg.owners[b]})
	pg.refs[a] = append(pg.refs[a], b)
	pg.nbrs[b] = append(pg.nbrs[b], PointNeighbor{Ref: a, Owner: pg.owners[a]})
	pg.refs[b] = append(pg.refs[b], a)
}

// RemovePoint deletes a point and every link touching it, leaving a gap.
// Complexity: O(deg(ref) · deg(neighbour)).
func (pg *PointGrid) RemovePoint(ref int) error {
	if !pg.Valid(ref) {
		return fmt.Errorf("%w: %d", ErrUnknownRef, ref)
	}
	for _, n := range pg.refs[ref] {
		pg.nbrs[n], pg.refs[n] = dropNeighbor(pg.nbrs[n], pg.refs[n], ref)
	}
	pg.nbrs[ref], pg.refs[ref] = nil, nil
	pg.live.Remove(uint32(ref))
	pg.lookup = nil

	return nil
}

// dropNeighbor removes ref from the paired neighbour slices preserving order.
func dropNeighbor(nbrs []PointNeighbor, refs []int, ref int) ([]PointNeighbor, []int) {
	for i, r := range refs {
		if r == ref {
			nbrs = append(nbrs[:i], nbrs[i+1:]...)
			refs = append(refs[:i], refs[i+1:]...)
			break
		}
	}

	return nbrs, refs
}

// Count returns Width×Height, the size of the reference space.
func (pg *PointGrid) Count() int { return pg.Width * pg.Height }

// Len returns the number of live points.
func (pg *PointGrid) Len() int { return int(pg.live.GetCardinality()) }

// Valid reports whether ref names a live point.
func (pg *PointGrid) Valid(ref int) bool {
	return ref >= 0 && ref < pg.Count() && pg.live.Contains(uint32(ref))
}

// Neighbors returns the refs visible from ref. The slice must not be modified.
func (pg *PointGrid) Neighbors(ref int) []int {
	if ref < 0 || ref >= len(pg.refs) {
		return nil
	}

	return pg.refs[ref]
}

// PointNeighbors returns the neighbour records of ref, including owner tags.
func (pg *PointGrid) PointNeighbors(ref int) []PointNeighbor {
	if ref < 0 || ref >= len(pg.nbrs) {
		return nil
	}

	return pg.nbrs[ref]
}

// Owner returns the owner tag of ref.
func (pg *PointGrid) Owner(ref int) int {
	if ref < 0 || ref >= len(pg.owners) {
		return 0
	}

	return pg.owners[ref]
}

// Refs returns all live refs in ascending order.
// Complexity: O(V).
func (pg *PointGrid) Refs() []int {
	return bitmapRefs(pg.live)
}

// Live returns a copy of the live reference set.
func (pg *PointGrid) Live() *roaring.Bitmap {
	return pg.live.Clone()
}

// bitmapRefs expands a roaring bitmap into ascending int refs.
func bitmapRefs(bm *roaring.Bitmap) []int {
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out
}
