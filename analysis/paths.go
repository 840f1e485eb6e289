// SPDX-License-Identifier: MIT
// Package analysis: point-to-point shortest paths between two selected entities.
package analysis

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/katalvlaran/depthlath/attr"
	"github.com/katalvlaran/depthlath/connectivity"
	"github.com/katalvlaran/depthlath/sink"
	"github.com/katalvlaran/depthlath/traverse"
	"github.com/katalvlaran/depthlath/tulip"
)

// Column names written by the path analyses.
const (
	ColAngularPathAngle     = "Angular Shortest Path Angle"
	ColAngularPathOrder     = "Angular Shortest Path Order"
	ColMetricPathDistance   = "Metric Shortest Path Distance"
	ColMetricPathOrder      = "Metric Shortest Path Order"
	ColTopologicalPathDepth = "Topological Shortest Path Depth"
	ColTopologicalPathOrder = "Topological Shortest Path Order"
	ColVisualPathDepth      = "Visual Shortest Path Depth"
	ColVisualPathOrder      = "Visual Shortest Path Order"
)

// pair resolves a selection of exactly two distinct valid refs into
// (origin, destination) in selection order.
func pair(sel []int, valid func(int) bool) (from, to int, ok bool) {
	if len(sel) != 2 || sel[0] == sel[1] || !valid(sel[0]) || !valid(sel[1]) {
		return -1, -1, false
	}

	return sel[0], sel[1], true
}

// resolvable reports refs that are live in the model and own a row in store.
func resolvable(store attr.Store, live func(int) bool) func(int) bool {
	return func(ref int) bool {
		if !live(ref) {
			return false
		}
		_, ok := store.Row(ref)
		return ok
	}
}

// resolve returns the distinct refs of sel in ascending order, or false if
// sel is empty or names a ref that valid rejects.
func resolve(sel []int, valid func(int) bool) ([]int, bool) {
	if len(sel) == 0 {
		return nil, false
	}
	bm := roaring.New()
	for _, ref := range sel {
		if !valid(ref) {
			return nil, false
		}
		bm.Add(uint32(ref))
	}
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out, true
}

// writePath creates both columns and fills the entities of path. Entities
// off the path keep the reset value -1 in both.
func writePath(s *sink.Sink, path []int, valueName, orderName string, value func(ref int) float64) sink.Result {
	vcol := s.EnsureColumn(valueName)
	ocol := s.EnsureColumn(orderName)
	order := traverse.PathOrder(path)
	for _, ref := range path {
		s.Set(vcol, ref, value(ref))
		s.Set(ocol, ref, float64(order[ref]))
	}

	return s.Result(true)
}

// SegmentTulipShortestPath finds the least-angle route between the two
// selected segments using half-circle bins.
type SegmentTulipShortestPath struct {
	g *connectivity.SegmentGraph
}

// NewSegmentTulipShortestPath returns the analysis over g.
func NewSegmentTulipShortestPath(g *connectivity.SegmentGraph) (*SegmentTulipShortestPath, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &SegmentTulipShortestPath{g: g}, nil
}

// Name implements Analysis.
func (a *SegmentTulipShortestPath) Name() string { return "segment-tulip-shortest-path" }

// Run walks from the first selected segment until the second is finalized.
// An unreachable destination leaves the store untouched.
func (a *SegmentTulipShortestPath) Run(rc *RunContext) (sink.Result, error) {
	s := sink.New(rc.Store)
	from, to, ok := pair(rc.Selection, resolvable(rc.Store, a.g.Valid))
	if !ok {
		rc.Logger.Debug().Ints("selection", rc.Selection).Msg("need two live segments")
		return s.Result(false), nil
	}
	res, err := traverse.Angular(a.g, []int{from},
		traverse.WithResolution(tulip.HalfResolution),
		traverse.WithRand(rc.Rand),
		traverse.WithTarget(to),
		traverse.WithPoller(rc.poller()),
	)
	if err != nil {
		return s.Result(false), err
	}
	path, err := res.PathTo(to)
	if err != nil {
		rc.Logger.Debug().Int("from", from).Int("to", to).Msg("destination unreachable")
		return s.Result(false), nil
	}

	return writePath(s, path, ColAngularPathAngle, ColAngularPathOrder, func(ref int) float64 {
		return res.Depth[ref]
	}), nil
}

// SegmentMetricShortestPath finds the shortest walked route between the two
// selected segments.
type SegmentMetricShortestPath struct {
	g *connectivity.SegmentGraph
}

// NewSegmentMetricShortestPath returns the analysis over g.
func NewSegmentMetricShortestPath(g *connectivity.SegmentGraph) (*SegmentMetricShortestPath, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &SegmentMetricShortestPath{g: g}, nil
}

// Name implements Analysis.
func (a *SegmentMetricShortestPath) Name() string { return "segment-metric-shortest-path" }

// Run implements Analysis.
func (a *SegmentMetricShortestPath) Run(rc *RunContext) (sink.Result, error) {
	s := sink.New(rc.Store)
	from, to, ok := pair(rc.Selection, resolvable(rc.Store, a.g.Valid))
	if !ok {
		rc.Logger.Debug().Ints("selection", rc.Selection).Msg("need two live segments")
		return s.Result(false), nil
	}
	res, err := traverse.Metric(a.g, []int{from},
		traverse.WithTarget(to),
		traverse.WithPoller(rc.poller()),
	)
	if err != nil {
		return s.Result(false), err
	}
	path, err := res.PathTo(to)
	if err != nil {
		return s.Result(false), nil
	}

	return writePath(s, path, ColMetricPathDistance, ColMetricPathOrder, func(ref int) float64 {
		return res.Distance[ref]
	}), nil
}

// SegmentTopologicalShortestPath finds the route with the fewest turns
// between the two selected segments.
type SegmentTopologicalShortestPath struct {
	g *connectivity.SegmentGraph
}

// NewSegmentTopologicalShortestPath returns the analysis over g.
func NewSegmentTopologicalShortestPath(g *connectivity.SegmentGraph) (*SegmentTopologicalShortestPath, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &SegmentTopologicalShortestPath{g: g}, nil
}

// Name implements Analysis.
func (a *SegmentTopologicalShortestPath) Name() string { return "segment-topological-shortest-path" }

// Run implements Analysis.
func (a *SegmentTopologicalShortestPath) Run(rc *RunContext) (sink.Result, error) {
	return stepPath(rc, a.g, ColTopologicalPathDepth, ColTopologicalPathOrder)
}

// VisualShortestPath finds the route with the fewest visual steps between
// the two selected points.
type VisualShortestPath struct {
	g *connectivity.PointGrid
}

// NewVisualShortestPath returns the analysis over g.
func NewVisualShortestPath(g *connectivity.PointGrid) (*VisualShortestPath, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &VisualShortestPath{g: g}, nil
}

// Name implements Analysis.
func (a *VisualShortestPath) Name() string { return "visual-shortest-path" }

// Run implements Analysis.
func (a *VisualShortestPath) Run(rc *RunContext) (sink.Result, error) {
	return stepPath(rc, a.g, ColVisualPathDepth, ColVisualPathOrder)
}

// stepPath runs a breadth-first walk between the two selected refs of g.
func stepPath(rc *RunContext, g connectivity.Adjacency, depthName, orderName string) (sink.Result, error) {
	s := sink.New(rc.Store)
	from, to, ok := pair(rc.Selection, resolvable(rc.Store, g.Valid))
	if !ok {
		rc.Logger.Debug().Ints("selection", rc.Selection).Msg("need two live entities")
		return s.Result(false), nil
	}
	res, err := traverse.Step(g, []int{from},
		traverse.WithTarget(to),
		traverse.WithPoller(rc.poller()),
	)
	if err != nil {
		return s.Result(false), err
	}
	path, err := res.PathTo(to)
	if err != nil {
		return s.Result(false), nil
	}

	return writePath(s, path, depthName, orderName, func(ref int) float64 {
		return float64(res.Depth[ref])
	}), nil
}
