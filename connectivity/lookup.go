// SPDX-License-Identifier: MIT
// Package connectivity: nearest live point lookup for PointGrid.
package connectivity

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// gridPoint is a live point centre carried in the k-d tree.
type gridPoint struct {
	x, y float64
	ref  int
}

// Compare satisfies kdtree.Comparable. Dimension 0 is x, 1 is y.
func (p gridPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(gridPoint)
	if d == 0 {
		return p.x - q.x
	}

	return p.y - q.y
}

// Dims returns 2.
func (p gridPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance to c.
func (p gridPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(gridPoint)
	dx, dy := p.x-q.x, p.y-q.y

	return dx*dx + dy*dy
}

// gridPoints satisfies kdtree.Interface.
type gridPoints []gridPoint

func (p gridPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p gridPoints) Len() int                              { return len(p) }
func (p gridPoints) Pivot(d kdtree.Dim) int                { return gridPlane{Dim: d, gridPoints: p}.Pivot() }
func (p gridPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// gridPlane sorts gridPoints along one dimension for pivot selection.
type gridPlane struct {
	kdtree.Dim
	gridPoints
}

func (p gridPlane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.gridPoints[i].x < p.gridPoints[j].x
	}

	return p.gridPoints[i].y < p.gridPoints[j].y
}
func (p gridPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p gridPlane) Slice(start, end int) kdtree.SortSlicer {
	p.gridPoints = p.gridPoints[start:end]
	return p
}
func (p gridPlane) Swap(i, j int) {
	p.gridPoints[i], p.gridPoints[j] = p.gridPoints[j], p.gridPoints[i]
}

// pointIndex wraps the k-d tree built over live point centres.
type pointIndex struct {
	tree *kdtree.Tree
}

// Nearest returns the live point whose cell centre is closest to (x,y), where
// cell (i,j) spans [i, i+1)×[j, j+1). The tree is rebuilt lazily after edits.
// Returns false when the grid has no live points.
// Complexity: O(P log P) on first call after an edit, O(log P) expected afterwards.
func (pg *PointGrid) Nearest(x, y float64) (int, bool) {
	if pg.lookup == nil {
		refs := pg.Refs()
		if len(refs) == 0 {
			return -1, false
		}
		pts := make(gridPoints, len(refs))
		for i, ref := range refs {
			cx, cy := pg.Coordinate(ref)
			pts[i] = gridPoint{x: float64(cx) + 0.5, y: float64(cy) + 0.5, ref: ref}
		}
		pg.lookup = &pointIndex{tree: kdtree.New(pts, false)}
	}
	got, _ := pg.lookup.tree.Nearest(gridPoint{x: x, y: y})
	if got == nil {
		return -1, false
	}

	return got.(gridPoint).ref, true
}
