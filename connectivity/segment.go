// SPDX-License-Identifier: MIT
// Package connectivity: SegmentGraph stores angular connections between the
// ends of street segments.
package connectivity

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// maxCost is the largest representable angular cost strictly below 1.
var maxCost = math.Nextafter(1, 0)

// SegmentGraph is the connectivity model of segment (angular) analysis.
//
// Every segment has two ends. Connections leave a segment through one of its
// ends and enter the neighbour travelling in a recorded direction, with an
// angular cost in [0,1) that grows with the turn between the two segments.
// Segment lengths are optional and only used by metric analyses.
type SegmentGraph struct {
	live    *roaring.Bitmap
	conns   []SegmentConnector
	lengths []float64
	refs    [][]int // deduplicated union of forward and backward neighbours
}

// NewSegmentGraph allocates a graph of n unconnected segments with refs 0..n-1.
// Returns ErrBadDimensions if n is non-positive.
func NewSegmentGraph(n int) (*SegmentGraph, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d segments", ErrBadDimensions, n)
	}
	live := roaring.New()
	live.AddRange(0, uint64(n))

	return &SegmentGraph{
		live:    live,
		conns:   make([]SegmentConnector, n),
		lengths: make([]float64, n),
		refs:    make([][]int, n),
	}, nil
}

// SegmentCost maps a geometric turn angle in degrees onto the normalised
// angular cost domain: 0° is 0, 180° saturates just below 1. The mapping is
// monotonic in |turn|.
func SegmentCost(turnDegrees float64) float64 {
	c := math.Abs(turnDegrees) / 180
	if c > maxCost {
		return maxCost
	}

	return c
}

// Connect records a single directed connection leaving from through its end
// fromEnd and entering to travelling in direction travel.
//
// Returns ErrUnknownRef, ErrSelfLink, ErrBadDirection or ErrBadCost.
// Complexity: O(deg(from)) for neighbour deduplication.
func (sg *SegmentGraph) Connect(from int, fromEnd Direction, to int, travel Direction, cost float64) error {
	if !sg.Valid(from) || !sg.Valid(to) {
		return fmt.Errorf("%w: connect %d-%d", ErrUnknownRef, from, to)
	}
	if from == to {
		return ErrSelfLink
	}
	if (fromEnd != Forward && fromEnd != Backward) || (travel != Forward && travel != Backward) {
		return ErrBadDirection
	}
	if math.IsNaN(cost) || cost < 0 || cost >= 1 {
		return fmt.Errorf("%w: %v", ErrBadCost, cost)
	}

	edge := SegmentEdge{Ref: to, Dir: travel, Cost: cost}
	if fromEnd == Forward {
		sg.conns[from].Forward = append(sg.conns[from].Forward, edge)
	} else {
		sg.conns[from].Backward = append(sg.conns[from].Backward, edge)
	}
	sg.addNeighbor(from, to)

	return nil
}

// Join connects the aEnd of segment a with the bEnd of segment b in both
// directions. Entering a segment through its backward end means travelling
// forward along it and vice versa.
func (sg *SegmentGraph) Join(a int, aEnd Direction, b int, bEnd Direction, cost float64) error {
	if err := sg.Connect(a, aEnd, b, -bEnd, cost); err != nil {
		return err
	}

	return sg.Connect(b, bEnd, a, -aEnd, cost)
}

// addNeighbor keeps the topological union list duplicate-free.
func (sg *SegmentGraph) addNeighbor(from, to int) {
	for _, r := range sg.refs[from] {
		if r == to {
			return
		}
	}
	sg.refs[from] = append(sg.refs[from], to)
}

// SetLength stores the metric length of a segment.
func (sg *SegmentGraph) SetLength(ref int, length float64) error {
	if !sg.Valid(ref) {
		return fmt.Errorf("%w: %d", ErrUnknownRef, ref)
	}
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		return fmt.Errorf("%w: %v", ErrBadLength, length)
	}
	sg.lengths[ref] = length

	return nil
}

// Length returns the metric length of ref (0 if unset or unknown).
func (sg *SegmentGraph) Length(ref int) float64 {
	if ref < 0 || ref >= len(sg.lengths) {
		return 0
	}

	return sg.lengths[ref]
}

// RemoveSegment deletes a segment and every connection into it, leaving a gap.
// Complexity: O(Σ deg) over the removed segment's neighbours.
func (sg *SegmentGraph) RemoveSegment(ref int) error {
	if !sg.Valid(ref) {
		return fmt.Errorf("%w: %d", ErrUnknownRef, ref)
	}
	for _, n := range sg.refs[ref] {
		c := &sg.conns[n]
		c.Forward = dropEdges(c.Forward, ref)
		c.Backward = dropEdges(c.Backward, ref)
		sg.refs[n] = dropRef(sg.refs[n], ref)
	}
	// Connections may be one-way, so scan for dangling entries too.
	it := sg.live.Iterator()
	for it.HasNext() {
		n := int(it.Next())
		if n == ref {
			continue
		}
		c := &sg.conns[n]
		c.Forward = dropEdges(c.Forward, ref)
		c.Backward = dropEdges(c.Backward, ref)
		sg.refs[n] = dropRef(sg.refs[n], ref)
	}
	sg.conns[ref] = SegmentConnector{}
	sg.refs[ref] = nil
	sg.lengths[ref] = 0
	sg.live.Remove(uint32(ref))

	return nil
}

func dropEdges(edges []SegmentEdge, ref int) []SegmentEdge {
	out := edges[:0]
	for _, e := range edges {
		if e.Ref != ref {
			out = append(out, e)
		}
	}

	return out
}

func dropRef(refs []int, ref int) []int {
	out := refs[:0]
	for _, r := range refs {
		if r != ref {
			out = append(out, r)
		}
	}

	return out
}

// Count returns the size of the reference space.
func (sg *SegmentGraph) Count() int { return len(sg.conns) }

// Len returns the number of live segments.
func (sg *SegmentGraph) Len() int { return int(sg.live.GetCardinality()) }

// Valid reports whether ref names a live segment.
func (sg *SegmentGraph) Valid(ref int) bool {
	return ref >= 0 && ref < len(sg.conns) && sg.live.Contains(uint32(ref))
}

// Neighbors returns every segment reachable in one step through either end.
func (sg *SegmentGraph) Neighbors(ref int) []int {
	if ref < 0 || ref >= len(sg.refs) {
		return nil
	}

	return sg.refs[ref]
}

// Forward returns the connections at the forward end of ref.
func (sg *SegmentGraph) Forward(ref int) []SegmentEdge {
	if ref < 0 || ref >= len(sg.conns) {
		return nil
	}

	return sg.conns[ref].Forward
}

// Backward returns the connections at the backward end of ref.
func (sg *SegmentGraph) Backward(ref int) []SegmentEdge {
	if ref < 0 || ref >= len(sg.conns) {
		return nil
	}

	return sg.conns[ref].Backward
}

// Connector returns both connection lists of ref.
func (sg *SegmentGraph) Connector(ref int) SegmentConnector {
	if ref < 0 || ref >= len(sg.conns) {
		return SegmentConnector{}
	}

	return sg.conns[ref]
}

// Refs returns all live refs in ascending order.
func (sg *SegmentGraph) Refs() []int {
	return bitmapRefs(sg.live)
}
