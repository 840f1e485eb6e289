package analysis_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/depthlath/analysis"
	"github.com/katalvlaran/depthlath/attr"
	"github.com/katalvlaran/depthlath/connectivity"
	"github.com/katalvlaran/depthlath/metrics"
	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/sink"
)

// chain builds n segments joined end to end with the given turn cost.
func chain(t *testing.T, n int, cost float64) *connectivity.SegmentGraph {
	t.Helper()
	sg, err := connectivity.NewSegmentGraph(n)
	require.NoError(t, err)
	for i := 0; i+1 < n; i++ {
		require.NoError(t, sg.Join(i, connectivity.Forward, i+1, connectivity.Backward, cost))
	}
	return sg
}

// corridor builds a 1×n strip of points linked to their 4-neighbours.
func corridor(t *testing.T, n int) *connectivity.PointGrid {
	t.Helper()
	row := make([]int, n)
	for i := range row {
		row[i] = 1
	}
	pg, err := connectivity.NewVisibilityGrid([][]int{row}, connectivity.WithReach(connectivity.Conn4))
	require.NoError(t, err)
	return pg
}

// room builds an open w×h room where every point sees every other.
func room(t *testing.T, w, h int) *connectivity.PointGrid {
	t.Helper()
	cells := make([][]int, h)
	for y := range cells {
		cells[y] = make([]int, w)
		for x := range cells[y] {
			cells[y][x] = 1
		}
	}
	pg, err := connectivity.NewVisibilityGrid(cells)
	require.NoError(t, err)
	return pg
}

func run(t *testing.T, a analysis.Analysis, refs []int, opts ...analysis.RunOption) (*attr.Table, sink.Result, error) {
	t.Helper()
	tbl := attr.NewTable(refs)
	rc, err := analysis.NewRunContext(context.Background(), tbl, opts...)
	require.NoError(t, err)
	res, err := a.Run(rc)
	return tbl, res, err
}

func column(t *testing.T, tbl *attr.Table, name string) []float64 {
	t.Helper()
	col, ok := tbl.ColumnIndex(name)
	require.True(t, ok, "missing column %q", name)
	vals, err := tbl.Column(col)
	require.NoError(t, err)
	return vals
}

// cancelAfter reports cancellation once IsCancelled has been asked more than n times.
type cancelAfter struct {
	mu    sync.Mutex
	n     int
	calls int
	posts []progress.Kind
}

func (c *cancelAfter) PostMessage(kind progress.Kind, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, kind)
}

func (c *cancelAfter) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.calls > c.n
}

func written(vals []float64) int {
	n := 0
	for _, v := range vals {
		if v != attr.Missing {
			n++
		}
	}
	return n
}

//----------------------------------------------------------------------------//
// Run context
//----------------------------------------------------------------------------//

func TestNewRunContext(t *testing.T) {
	_, err := analysis.NewRunContext(context.Background(), nil)
	require.ErrorIs(t, err, analysis.ErrNilStore)

	tbl := attr.NewTable([]int{0})
	a, err := analysis.NewRunContext(context.Background(), tbl, analysis.WithSelection(3, 1), analysis.WithPollInterval(0))
	require.NoError(t, err)
	b, err := analysis.NewRunContext(context.Background(), tbl)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, []int{3, 1}, a.Selection)
	assert.Zero(t, a.PollInterval)
	assert.Equal(t, progress.DefaultInterval, b.PollInterval)
	assert.NotNil(t, b.Rand)
}

func TestOptionViolations(t *testing.T) {
	sg := chain(t, 3, 0)
	pg := corridor(t, 3)

	_, err := analysis.NewSegmentTulip(sg, analysis.WithRadii(1, -1))
	assert.ErrorIs(t, err, analysis.ErrOptionViolation)
	_, err = analysis.NewSegmentTulip(sg, analysis.WithTulipResolution(1))
	assert.ErrorIs(t, err, analysis.ErrOptionViolation)
	_, err = analysis.NewVisualLocal(pg, analysis.WithWorkers(0))
	assert.ErrorIs(t, err, analysis.ErrOptionViolation)
	_, err = analysis.NewVisualGlobal(pg, analysis.WithStepRadius(-2))
	assert.ErrorIs(t, err, analysis.ErrOptionViolation)

	_, err = analysis.NewSegmentTulip(nil)
	assert.ErrorIs(t, err, analysis.ErrNilGraph)
	_, err = analysis.NewVisualDepth(nil)
	assert.ErrorIs(t, err, analysis.ErrNilGraph)
}

//----------------------------------------------------------------------------//
// Shortest paths
//----------------------------------------------------------------------------//

// TestSegmentTulipShortestPath_StraightThreeHops checks order and angle on a
// straight route, and -1 on an unreachable segment.
func TestSegmentTulipShortestPath_StraightThreeHops(t *testing.T) {
	sg := chain(t, 5, 0)
	// Cut 4 off so it stays unreached.
	require.NoError(t, sg.RemoveSegment(4))
	a, err := analysis.NewSegmentTulipShortestPath(sg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1, 2, 3, 4}, analysis.WithSelection(0, 3))
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []string{analysis.ColAngularPathAngle, analysis.ColAngularPathOrder}, res.Columns)

	assert.Equal(t, []float64{3, 2, 1, 0, -1}, column(t, tbl, analysis.ColAngularPathOrder))
	assert.Equal(t, []float64{0, 0, 0, 0, -1}, column(t, tbl, analysis.ColAngularPathAngle))
}

func TestSegmentTulipShortestPath_PrefersGentleTurns(t *testing.T) {
	sg, err := connectivity.NewSegmentGraph(4)
	require.NoError(t, err)
	require.NoError(t, sg.Join(0, connectivity.Forward, 1, connectivity.Backward, 0.5))
	require.NoError(t, sg.Join(1, connectivity.Forward, 3, connectivity.Backward, 0.5))
	require.NoError(t, sg.Join(0, connectivity.Forward, 2, connectivity.Backward, 0.1))
	require.NoError(t, sg.Join(2, connectivity.Forward, 3, connectivity.Backward, 0.1))
	a, err := analysis.NewSegmentTulipShortestPath(sg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1, 2, 3}, analysis.WithSelection(0, 3))
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []float64{2, -1, 1, 0}, column(t, tbl, analysis.ColAngularPathOrder))
	angle := column(t, tbl, analysis.ColAngularPathAngle)
	assert.InDelta(t, 0.2, angle[3], 1e-12)
	assert.Equal(t, -1.0, angle[1])
}

func TestShortestPath_InvalidSelection(t *testing.T) {
	sg := chain(t, 3, 0)
	a, err := analysis.NewSegmentTulipShortestPath(sg)
	require.NoError(t, err)

	cases := map[string]struct {
		rows []int
		sel  []int
	}{
		"none":        {rows: []int{0, 1, 2}},
		"one":         {rows: []int{0, 1, 2}, sel: []int{0}},
		"three":       {rows: []int{0, 1, 2}, sel: []int{0, 1, 2}},
		"same":        {rows: []int{0, 1, 2}, sel: []int{1, 1}},
		"unknown":     {rows: []int{0, 1, 2}, sel: []int{0, 9}},
		"no dest row": {rows: []int{0, 1}, sel: []int{0, 2}},
		"no from row": {rows: []int{1, 2}, sel: []int{0, 2}},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			tbl, res, err := run(t, a, tc.rows, analysis.WithSelection(tc.sel...))
			require.NoError(t, err)
			assert.False(t, res.Completed)
			assert.Empty(t, res.Columns)
			assert.Zero(t, tbl.ColumnCount())
		})
	}
}

func TestStepPaths_MissingStoreRow(t *testing.T) {
	topo, err := analysis.NewSegmentTopologicalShortestPath(chain(t, 4, 0))
	require.NoError(t, err)
	metric, err := analysis.NewSegmentMetricShortestPath(chain(t, 4, 0))
	require.NoError(t, err)
	visual, err := analysis.NewVisualShortestPath(corridor(t, 4))
	require.NoError(t, err)

	for _, a := range []analysis.Analysis{topo, metric, visual} {
		a := a
		t.Run(a.Name(), func(t *testing.T) {
			tbl, res, err := run(t, a, []int{0, 1, 2}, analysis.WithSelection(0, 3))
			require.NoError(t, err)
			assert.False(t, res.Completed)
			assert.Zero(t, tbl.ColumnCount())
		})
	}
}

func TestShortestPath_Unreachable(t *testing.T) {
	sg, err := connectivity.NewSegmentGraph(2)
	require.NoError(t, err)
	a, err := analysis.NewSegmentMetricShortestPath(sg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1}, analysis.WithSelection(0, 1))
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Zero(t, tbl.ColumnCount())
}

func TestSegmentMetricShortestPath(t *testing.T) {
	sg := chain(t, 3, 0.5)
	require.NoError(t, sg.SetLength(0, 2))
	require.NoError(t, sg.SetLength(1, 4))
	require.NoError(t, sg.SetLength(2, 2))
	a, err := analysis.NewSegmentMetricShortestPath(sg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1, 2}, analysis.WithSelection(0, 2))
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []float64{0, 3, 6}, column(t, tbl, analysis.ColMetricPathDistance))
	assert.Equal(t, []float64{2, 1, 0}, column(t, tbl, analysis.ColMetricPathOrder))
}

func TestSegmentTopologicalShortestPath(t *testing.T) {
	sg := chain(t, 4, 0.9)
	a, err := analysis.NewSegmentTopologicalShortestPath(sg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1, 2, 3}, analysis.WithSelection(3, 1))
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []float64{-1, 2, 1, 0}, column(t, tbl, analysis.ColTopologicalPathDepth))
	assert.Equal(t, []float64{-1, 0, 1, 2}, column(t, tbl, analysis.ColTopologicalPathOrder))
}

func TestVisualShortestPath(t *testing.T) {
	pg := corridor(t, 5)
	a, err := analysis.NewVisualShortestPath(pg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, pg.Refs(), analysis.WithSelection(0, 4))
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, column(t, tbl, analysis.ColVisualPathDepth))
	assert.Equal(t, []float64{4, 3, 2, 1, 0}, column(t, tbl, analysis.ColVisualPathOrder))
}

//----------------------------------------------------------------------------//
// Segment sweep
//----------------------------------------------------------------------------//

func TestSegmentTulip_Chain(t *testing.T) {
	sg := chain(t, 3, 0.5)
	a, err := analysis.NewSegmentTulip(sg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1, 2})
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []string{
		"T1024 Choice R n",
		"T1024 Choice [Norm] R n",
		"T1024 Integration R n",
		"T1024 Mean Depth R n",
		"T1024 Node Count R n",
		"T1024 Total Depth R n",
	}, res.Columns)

	assert.Equal(t, []float64{3, 3, 3}, column(t, tbl, "T1024 Node Count R n"))
	assert.InDeltaSlice(t, []float64{1.5, 1, 1.5}, column(t, tbl, "T1024 Total Depth R n"), 1e-12)
	assert.InDeltaSlice(t, []float64{0.75, 0.5, 0.75}, column(t, tbl, "T1024 Mean Depth R n"), 1e-12)
	assert.InDeltaSlice(t, []float64{6, 9, 6}, column(t, tbl, "T1024 Integration R n"), 1e-12)
	assert.Equal(t, []float64{0, 2, 0}, column(t, tbl, "T1024 Choice R n"))
	assert.Equal(t, []float64{0, 1, 0}, column(t, tbl, "T1024 Choice [Norm] R n"))
}

func TestSegmentTulip_RadiiAndOrigins(t *testing.T) {
	sg := chain(t, 3, 0.5)
	a, err := analysis.NewSegmentTulip(sg,
		analysis.WithRadii(0, 0.5),
		analysis.WithChoice(false),
		analysis.WithTulipResolution(513),
		analysis.WithOrigins(0, 0),
	)
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1, 2})
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Len(t, res.Columns, 8)
	assert.Contains(t, res.Columns, "T513 Node Count R 0.5")
	assert.NotContains(t, res.Columns, "T513 Choice R n")

	assert.Equal(t, []float64{3, -1, -1}, column(t, tbl, "T513 Node Count R n"))
	assert.Equal(t, []float64{2, -1, -1}, column(t, tbl, "T513 Node Count R 0.5"))
	assert.Equal(t, []float64{0.5, -1, -1}, column(t, tbl, "T513 Total Depth R 0.5"))
}

func TestSegmentTulip_DeadOrigin(t *testing.T) {
	sg := chain(t, 3, 0.5)
	a, err := analysis.NewSegmentTulip(sg, analysis.WithOrigins(0, 7))
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1, 2})
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Zero(t, tbl.ColumnCount())
}

func TestRadiusSuffix(t *testing.T) {
	assert.Equal(t, " R n", analysis.RadiusSuffix(0))
	assert.Equal(t, " R 0.25", analysis.RadiusSuffix(0.25))
	assert.Equal(t, " R 3", analysis.RadiusSuffix(3))
}

// TestSegmentTulip_CancelMidSweep stops after five origins and checks that
// no later origin was written.
func TestSegmentTulip_CancelMidSweep(t *testing.T) {
	sg := chain(t, 40, 0.25)
	a, err := analysis.NewSegmentTulip(sg, analysis.WithChoice(true))
	require.NoError(t, err)
	comm := &cancelAfter{n: 5}

	tbl, res, err := run(t, a, sg.Refs(), analysis.WithComm(comm), analysis.WithPollInterval(0))
	require.ErrorIs(t, err, progress.ErrCancelled)
	assert.False(t, res.Completed)
	assert.NotEmpty(t, res.Columns)

	counts := column(t, tbl, "T1024 Node Count R n")
	assert.Equal(t, 5, written(counts))
	for ref := 5; ref < 40; ref++ {
		assert.Equal(t, -1.0, counts[ref])
	}
	assert.Zero(t, written(column(t, tbl, "T1024 Choice R n")))
	assert.Contains(t, comm.posts, progress.NumSteps)
}

//----------------------------------------------------------------------------//
// Axial
//----------------------------------------------------------------------------//

func TestAxialLocal_Star(t *testing.T) {
	lg, err := connectivity.NewLineGraph(5)
	require.NoError(t, err)
	for _, leaf := range []int{1, 2, 3} {
		require.NoError(t, lg.Link(0, leaf))
	}
	a, err := analysis.NewAxialLocal(lg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, lg.Refs())
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []string{analysis.ColConnectivity, analysis.ColControl, analysis.ColControllability}, res.Columns)

	assert.Equal(t, []float64{3, 1, 1, 1, 0}, column(t, tbl, analysis.ColConnectivity))
	assert.InDeltaSlice(t, []float64{3, 1.0 / 3, 1.0 / 3, 1.0 / 3, -1}, column(t, tbl, analysis.ColControl), 1e-12)
	assert.InDeltaSlice(t, []float64{1, 1.0 / 3, 1.0 / 3, 1.0 / 3, -1}, column(t, tbl, analysis.ColControllability), 1e-12)
}

//----------------------------------------------------------------------------//
// Visibility
//----------------------------------------------------------------------------//

func TestVisualLocal_OpenRoom(t *testing.T) {
	pg := room(t, 3, 3)
	a, err := analysis.NewVisualLocal(pg, analysis.WithWorkers(3))
	require.NoError(t, err)

	tbl, res, err := run(t, a, pg.Refs())
	require.NoError(t, err)
	require.True(t, res.Completed)

	for _, name := range []string{analysis.ColVisualClustering, analysis.ColVisualControl, analysis.ColVisualControllability} {
		assert.InDeltaSlice(t, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}, column(t, tbl, name), 1e-12, name)
	}
}

func TestVisualLocal_SameOwnerClustering(t *testing.T) {
	cells := [][]int{{1, 1, 1, 1}}
	regions := [][]int{{1, 1, 2, 2}}
	pg, err := connectivity.NewVisibilityGrid(cells, connectivity.WithRegions(regions))
	require.NoError(t, err)
	a, err := analysis.NewVisualLocal(pg, analysis.WithSameOwnerClustering(true), analysis.WithWorkers(2))
	require.NoError(t, err)

	tbl, _, err := run(t, a, pg.Refs())
	require.NoError(t, err)
	// Each point has a single same-owner neighbour, too few to cluster.
	assert.Equal(t, []float64{-1, -1, -1, -1}, column(t, tbl, analysis.ColVisualClustering))
}

func TestVisualGlobal_Corridor(t *testing.T) {
	pg := corridor(t, 5)
	a, err := analysis.NewVisualGlobal(pg, analysis.WithWorkers(2), analysis.WithCommOnOneThread(true))
	require.NoError(t, err)
	comm := &cancelAfter{n: 1 << 30}

	tbl, res, err := run(t, a, pg.Refs(), analysis.WithComm(comm), analysis.WithPollInterval(0))
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Len(t, res.Columns, 7)

	assert.Equal(t, []float64{5, 5, 5, 5, 5}, column(t, tbl, analysis.ColVisualNodeCount))
	md := column(t, tbl, analysis.ColVisualMeanDepth)
	assert.InDelta(t, 2.5, md[0], 1e-12)
	assert.InDelta(t, 1.5, md[2], 1e-12)

	// From an end: counts 1,1,1,1,1 so k=5, MD=2.5 and RA=1.
	hh := column(t, tbl, analysis.ColVisualIntegrationHH)
	assert.InDelta(t, metrics.DValue(5), hh[0], 1e-12)
	pv := column(t, tbl, analysis.ColVisualIntegrationPValue)
	assert.InDelta(t, metrics.PValue(5), pv[4], 1e-12)
	// Centre: MD=1.5 so RA=1/3.
	assert.InDelta(t, metrics.DValue(5)/(1.0/3), hh[2], 1e-12)

	ent := column(t, tbl, analysis.ColVisualEntropy)
	assert.InDelta(t, 2, ent[0], 1e-12)
	assert.InDelta(t, 1, ent[2], 1e-12)
}

func TestVisualGlobal_StepRadius(t *testing.T) {
	pg := corridor(t, 5)
	a, err := analysis.NewVisualGlobal(pg, analysis.WithStepRadius(1), analysis.WithWorkers(1))
	require.NoError(t, err)

	tbl, _, err := run(t, a, pg.Refs())
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 3, 3, 2}, column(t, tbl, analysis.ColVisualNodeCount))
}

func TestVisualGlobal_CancelledContext(t *testing.T) {
	pg := room(t, 4, 4)
	a, err := analysis.NewVisualGlobal(pg, analysis.WithWorkers(4))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tbl := attr.NewTable(pg.Refs())
	rc, err := analysis.NewRunContext(ctx, tbl)
	require.NoError(t, err)
	res, err := a.Run(rc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, progress.ErrCancelled))
	assert.False(t, res.Completed)
	assert.Zero(t, written(column(t, tbl, analysis.ColVisualNodeCount)))
}

func TestVisualLocal_CommCancels(t *testing.T) {
	pg := room(t, 5, 5)
	a, err := analysis.NewVisualLocal(pg, analysis.WithWorkers(1))
	require.NoError(t, err)

	tbl, res, err := run(t, a, pg.Refs(), analysis.WithComm(&cancelAfter{n: 10}), analysis.WithPollInterval(0))
	require.ErrorIs(t, err, progress.ErrCancelled)
	assert.False(t, res.Completed)
	assert.Equal(t, 10, written(column(t, tbl, analysis.ColVisualControl)))
}

func TestVisualDepth(t *testing.T) {
	pg := corridor(t, 5)
	a, err := analysis.NewVisualDepth(pg)
	require.NoError(t, err)

	tbl, res, err := run(t, a, pg.Refs(), analysis.WithSelection(0))
	require.NoError(t, err)
	require.True(t, res.Completed)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, column(t, tbl, analysis.ColVisualStepDepth))

	tbl, _, err = run(t, a, pg.Refs(), analysis.WithSelection(4, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 1, 0}, column(t, tbl, analysis.ColVisualStepDepth))

	_, res, err = run(t, a, pg.Refs())
	require.NoError(t, err)
	assert.False(t, res.Completed)
}

func TestVisualDepth_Unreached(t *testing.T) {
	pg, err := connectivity.NewVisibilityGrid([][]int{{1, 0, 1}})
	require.NoError(t, err)
	a, err := analysis.NewVisualDepth(pg)
	require.NoError(t, err)

	tbl, _, err := run(t, a, []int{0, 1, 2}, analysis.WithSelection(0))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -1, -1}, column(t, tbl, analysis.ColVisualStepDepth))
}

func TestVisualDepth_MissingStoreRow(t *testing.T) {
	a, err := analysis.NewVisualDepth(corridor(t, 3))
	require.NoError(t, err)

	tbl, res, err := run(t, a, []int{0, 1}, analysis.WithSelection(0, 2))
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Empty(t, res.Columns)
	assert.Zero(t, tbl.ColumnCount())
}

//----------------------------------------------------------------------------//
// Execute
//----------------------------------------------------------------------------//

func TestExecute_LogsOutcome(t *testing.T) {
	sg := chain(t, 3, 0.5)
	a, err := analysis.NewSegmentTulip(sg)
	require.NoError(t, err)
	var buf bytes.Buffer
	tbl := attr.NewTable(sg.Refs())
	rc, err := analysis.NewRunContext(context.Background(), tbl, analysis.WithLogger(analysis.NewLogger(&buf, false)))
	require.NoError(t, err)

	res, err := analysis.Execute(a, rc)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	out := buf.String()
	assert.Contains(t, out, `"analysis":"segment-tulip"`)
	assert.Contains(t, out, "analysis finished")
	assert.Contains(t, out, rc.ID.String())
}

func TestExecute_Cancelled(t *testing.T) {
	sg := chain(t, 10, 0.5)
	a, err := analysis.NewSegmentTulip(sg)
	require.NoError(t, err)
	var buf bytes.Buffer
	tbl := attr.NewTable(sg.Refs())
	rc, err := analysis.NewRunContext(context.Background(), tbl,
		analysis.WithLogger(analysis.NewLogger(&buf, true)),
		analysis.WithComm(&cancelAfter{n: 0}),
		analysis.WithPollInterval(0),
	)
	require.NoError(t, err)

	_, err = analysis.Execute(a, rc)
	require.ErrorIs(t, err, progress.ErrCancelled)
	assert.Contains(t, buf.String(), "analysis cancelled")
}

// streets builds a side×side grid of streets where ties within a bin are common.
func streets(t *testing.T, side int) *connectivity.SegmentGraph {
	t.Helper()
	sg, err := connectivity.NewSegmentGraph(2 * side * side)
	require.NoError(t, err)
	id := func(x, y, o int) int { return 2*(y*side+x) + o }
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if x+1 < side {
				require.NoError(t, sg.Join(id(x, y, 0), connectivity.Forward, id(x+1, y, 0), connectivity.Backward, 0))
			}
			if y+1 < side {
				require.NoError(t, sg.Join(id(x, y, 1), connectivity.Forward, id(x, y+1, 1), connectivity.Backward, 0))
			}
			require.NoError(t, sg.Join(id(x, y, 0), connectivity.Forward, id(x, y, 1), connectivity.Forward, 0.5))
		}
	}
	return sg
}

func TestSegmentTulip_Deterministic(t *testing.T) {
	sg := streets(t, 4)
	a, err := analysis.NewSegmentTulip(sg)
	require.NoError(t, err)

	first, _, err := run(t, a, sg.Refs(), analysis.WithSeed(42))
	require.NoError(t, err)
	second, _, err := run(t, a, sg.Refs(), analysis.WithSeed(42))
	require.NoError(t, err)
	for _, name := range []string{"T1024 Choice R n", "T1024 Total Depth R n"} {
		assert.Equal(t, column(t, first, name), column(t, second, name), name)
	}
}

func TestSegmentTulip_RadiusStreamsIndependent(t *testing.T) {
	sg := streets(t, 4)
	both, err := analysis.NewSegmentTulip(sg, analysis.WithRadii(0, 1.5))
	require.NoError(t, err)
	alone, err := analysis.NewSegmentTulip(sg, analysis.WithRadii(1.5))
	require.NoError(t, err)

	var buf bytes.Buffer
	withN, _, err := run(t, both, sg.Refs(), analysis.WithSeed(7), analysis.WithLogger(analysis.NewLogger(&buf, true)))
	require.NoError(t, err)
	without, _, err := run(t, alone, sg.Refs(), analysis.WithSeed(7))
	require.NoError(t, err)

	for _, name := range []string{"T1024 Choice R 1.5", "T1024 Total Depth R 1.5", "T1024 Node Count R 1.5"} {
		assert.Equal(t, column(t, without, name), column(t, withN, name), name)
	}
	assert.Contains(t, buf.String(), `"max_levels"`)
}
