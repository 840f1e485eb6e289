// SPDX-License-Identifier: MIT
// Package connectivity defines the entity references, connectors, options and
// sentinel errors shared by point grids, segment graphs and line graphs.
package connectivity

import (
	"errors"
)

// Sentinel errors for connectivity construction and editing.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("connectivity: input grid must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("connectivity: all rows must have the same length")

	// ErrBadDimensions indicates a non-positive width, height or entity count.
	ErrBadDimensions = errors.New("connectivity: dimensions must be positive")

	// ErrUnknownRef indicates a reference outside the model or to a removed entity.
	ErrUnknownRef = errors.New("connectivity: unknown entity reference")

	// ErrSelfLink indicates an attempt to connect an entity to itself.
	ErrSelfLink = errors.New("connectivity: entity cannot be linked to itself")

	// ErrBadCost indicates an angular cost outside [0, 1).
	ErrBadCost = errors.New("connectivity: angular cost must be in [0, 1)")

	// ErrBadDirection indicates a segment end that is neither Forward nor Backward.
	ErrBadDirection = errors.New("connectivity: segment end must be Forward or Backward")

	// ErrBadLength indicates a negative or non-finite segment length.
	ErrBadLength = errors.New("connectivity: segment length must be finite and non-negative")
)

// Direction tags travel along a segment.
//
// As a segment end, Forward names the far end of the segment and Backward the
// near one. As a travel direction, Forward means moving towards the forward
// end. Both is only used for origins, which may leave through either end.
type Direction int8

const (
	// Backward travel (or the backward end).
	Backward Direction = -1
	// Both directions; used for origins only.
	Both Direction = 0
	// Forward travel (or the forward end).
	Forward Direction = 1
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return "both"
	}
}

// Adjacency is the read-only, undirected view every step-depth traversal and
// local metric works against.
type Adjacency interface {
	// Count returns the size of the reference space. Valid refs are in [0, Count()).
	Count() int
	// Valid reports whether ref names a live entity.
	Valid(ref int) bool
	// Neighbors returns the neighbour refs of ref. The slice must not be modified.
	Neighbors(ref int) []int
}

// SegmentEdge is one directed angular connection out of a segment end.
type SegmentEdge struct {
	Ref  int       // neighbour segment
	Dir  Direction // travel direction along Ref after crossing the junction
	Cost float64   // normalised turn fraction in [0, 1)
}

// SegmentConnector holds the connections leaving each end of a segment.
type SegmentConnector struct {
	Forward  []SegmentEdge // connections at the forward end
	Backward []SegmentEdge // connections at the backward end
}

// PointNeighbor is one visible neighbour of a grid point.
type PointNeighbor struct {
	Ref   int // neighbour point
	Owner int // region tag of the neighbour cell
}

// Reach selects how points of a grid are linked.
type Reach int

const (
	// Visible links every pair of points with a clear line of sight.
	Visible Reach = iota
	// Conn4 links orthogonally adjacent points only: N, E, S, W.
	Conn4
	// Conn8 links adjacent points including diagonals.
	Conn8
)

// offsets returns the neighbour offsets for Conn4/Conn8, nil for Visible.
func (r Reach) offsets() [][2]int {
	switch r {
	case Conn4:
		return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	case Conn8:
		return [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	default:
		return nil
	}
}

// GridOptions contains tunable parameters for visibility grid construction.
type GridOptions struct {
	// OpenThreshold specifies the minimum cell value considered open floor space.
	OpenThreshold int
	// Reach chooses full visibility (default) or plain 4/8 adjacency.
	Reach Reach
	// VisualRadius limits visibility to this many cell widths; 0 means unlimited.
	VisualRadius float64
	// Regions optionally labels cells with an owner tag (same shape as the grid).
	Regions [][]int
}

// GridOption configures visibility grid construction.
type GridOption func(*GridOptions)

// DefaultGridOptions returns GridOptions with OpenThreshold=1 and unlimited radius.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		OpenThreshold: 1,
		Reach:         Visible,
		VisualRadius:  0,
	}
}

// WithOpenThreshold sets the minimum cell value considered open.
func WithOpenThreshold(v int) GridOption {
	return func(o *GridOptions) { o.OpenThreshold = v }
}

// WithReach selects visibility or adjacency linking.
func WithReach(r Reach) GridOption {
	return func(o *GridOptions) { o.Reach = r }
}

// WithVisualRadius limits visibility to r cell widths. Non-positive r means unlimited.
func WithVisualRadius(r float64) GridOption {
	return func(o *GridOptions) {
		if r > 0 {
			o.VisualRadius = r
		}
	}
}

// WithRegions labels every cell with an owner tag copied onto PointNeighbor.Owner.
func WithRegions(regions [][]int) GridOption {
	return func(o *GridOptions) { o.Regions = regions }
}
