// SPDX-License-Identifier: MIT
// Package connectivity: visibility graph construction over a cell grid.
package connectivity

// NewVisibilityGrid builds a PointGrid from a non-empty, rectangular 2D slice
// of cell values. Cells with value ≥ OpenThreshold receive a point; two points
// are linked when every cell crossed by the sight line between their centres
// is open and, with a VisualRadius set, their centres are within that radius.
// With Reach set to Conn4 or Conn8 only adjacent open cells are linked and the
// radius is ignored.
//
// Returns ErrEmptyGrid if cells has no rows or no columns,
// ErrNonRectangular if any row length (of cells or Regions) differs.
//
// Complexity: O(P² · L) time where P = open cells and L = sight-line length,
// O(P + E) memory.
func NewVisibilityGrid(cells [][]int, opts ...GridOption) (*PointGrid, error) {
	o := DefaultGridOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(cells), len(cells[0])
	for _, row := range cells {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	if o.Regions != nil {
		if len(o.Regions) != h {
			return nil, ErrNonRectangular
		}
		for _, row := range o.Regions {
			if len(row) != w {
				return nil, ErrNonRectangular
			}
		}
	}

	pg, err := NewPointGrid(w, h)
	if err != nil {
		return nil, err
	}

	// 1) Place points on open cells in row-major order.
	open := func(x, y int) bool {
		return pg.InBounds(x, y) && cells[y][x] >= o.OpenThreshold
	}
	points := make([]int, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !open(x, y) {
				continue
			}
			owner := 0
			if o.Regions != nil {
				owner = o.Regions[y][x]
			}
			ref, _ := pg.AddPoint(x, y, owner)
			points = append(points, ref)
		}
	}

	// 2a) Plain adjacency: link forward offsets only so each pair is seen once.
	if offs := o.Reach.offsets(); offs != nil {
		for _, a := range points {
			ax, ay := pg.Coordinate(a)
			for _, d := range offs {
				b, ok := pg.Ref(ax+d[0], ay+d[1])
				if ok && b > a {
					pg.link(a, b)
				}
			}
		}

		return pg, nil
	}

	// 2b) Link every mutually visible pair once (i < j keeps lists duplicate-free).
	r2 := o.VisualRadius * o.VisualRadius
	for i, a := range points {
		ax, ay := pg.Coordinate(a)
		for _, b := range points[i+1:] {
			bx, by := pg.Coordinate(b)
			if o.VisualRadius > 0 {
				dx, dy := float64(bx-ax), float64(by-ay)
				if dx*dx+dy*dy > r2 {
					continue
				}
			}
			if sightLine(ax, ay, bx, by, open) {
				pg.link(a, b)
			}
		}
	}

	return pg, nil
}

// sightLine walks every cell touched by the segment between the centres of
// (x0,y0) and (x1,y1), including both cells at an exact corner crossing, and
// reports whether visit accepted all of them. The start cell is not visited.
func sightLine(x0, y0, x1, y1 int, visit func(x, y int) bool) bool {
	dx, dy := x1-x0, y1-y0
	xstep, ystep := 1, 1
	if dx < 0 {
		xstep, dx = -1, -dx
	}
	if dy < 0 {
		ystep, dy = -1, -dy
	}
	ddx, ddy := 2*dx, 2*dy
	x, y := x0, y0

	if ddx >= ddy {
		errPrev, e := dx, dx
		for i := 0; i < dx; i++ {
			x += xstep
			e += ddy
			if e > ddx {
				y += ystep
				e -= ddx
				switch {
				case e+errPrev < ddx:
					if !visit(x, y-ystep) {
						return false
					}
				case e+errPrev > ddx:
					if !visit(x-xstep, y) {
						return false
					}
				default:
					if !visit(x, y-ystep) || !visit(x-xstep, y) {
						return false
					}
				}
			}
			if !visit(x, y) {
				return false
			}
			errPrev = e
		}

		return true
	}

	errPrev, e := dy, dy
	for i := 0; i < dy; i++ {
		y += ystep
		e += ddx
		if e > ddy {
			x += xstep
			e -= ddy
			switch {
			case e+errPrev < ddy:
				if !visit(x-xstep, y) {
					return false
				}
			case e+errPrev > ddy:
				if !visit(x, y-ystep) {
					return false
				}
			default:
				if !visit(x-xstep, y) || !visit(x, y-ystep) {
					return false
				}
			}
		}
		if !visit(x, y) {
			return false
		}
		errPrev = e
	}

	return true
}
