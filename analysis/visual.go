// SPDX-License-Identifier: MIT
// Package analysis: visibility graph analyses over a PointGrid.
package analysis

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/depthlath/connectivity"
	"github.com/katalvlaran/depthlath/metrics"
	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/sink"
	"github.com/katalvlaran/depthlath/traverse"
)

// Column names written by the visibility analyses.
const (
	ColVisualClustering         = "Visual Clustering Coefficient"
	ColVisualControl            = "Visual Control"
	ColVisualControllability    = "Visual Controllability"
	ColVisualEntropy            = "Visual Entropy"
	ColVisualIntegrationHH      = "Visual Integration [HH]"
	ColVisualIntegrationPValue  = "Visual Integration [P-value]"
	ColVisualIntegrationTekl    = "Visual Integration [Tekl]"
	ColVisualMeanDepth          = "Visual Mean Depth"
	ColVisualNodeCount          = "Visual Node Count"
	ColVisualRelativisedEntropy = "Visual Relativised Entropy"
	ColVisualStepDepth          = "Visual Step Depth"
)

// vgaWorker computes one origin at a time and writes it separately, so a
// cancellation seen between the two leaves the row untouched.
type vgaWorker interface {
	compute(ref int) error
	write(s *sink.Sink, ref int)
}

// partition splits refs into at most n contiguous non-empty chunks.
func partition(refs []int, n int) [][]int {
	if n > len(refs) {
		n = len(refs)
	}
	parts := make([][]int, 0, n)
	for i := 0; i < n; i++ {
		lo, hi := i*len(refs)/n, (i+1)*len(refs)/n
		parts = append(parts, refs[lo:hi])
	}

	return parts
}

// sweep runs one worker per partition of refs on a context pool. The first
// failing worker cancels the others through the shared flag and the pool
// context; its error is returned.
func sweep(rc *RunContext, o VGAOptions, s *sink.Sink, refs []int, newWorker func() (vgaWorker, error)) error {
	parts := partition(refs, o.Workers)
	workers := make([]vgaWorker, len(parts))
	for i := range parts {
		w, err := newWorker()
		if err != nil {
			return err
		}
		workers[i] = w
	}
	shared := progress.NewShared(rc.Comm, o.ForceCommOnOneThread)
	shared.Post(progress.NumRecords, len(refs))

	p := pool.New().WithContext(rc.Ctx).WithMaxGoroutines(o.Workers).WithCancelOnError().WithFirstError()
	for id, part := range parts {
		id, part := id, part
		w := workers[id]
		p.Go(func(ctx context.Context) error {
			poller := progress.NewPoller(ctx, shared.Worker(id), rc.PollInterval)
			for i, ref := range part {
				if err := poller.Tick(i); err != nil {
					shared.Cancel()
					return err
				}
				if err := w.compute(ref); err != nil {
					shared.Cancel()
					return err
				}
				if shared.Cancelled() {
					return progress.ErrCancelled
				}
				if err := ctx.Err(); err != nil {
					return fmt.Errorf("%w: %v", progress.ErrCancelled, err)
				}
				w.write(s, ref)
				shared.Done(1)
			}

			return nil
		})
	}

	return p.Wait()
}

func buildVGAOptions(opts []VGAOption) (VGAOptions, error) {
	o := DefaultVGAOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}

// VisualLocal writes clustering coefficient, control and controllability of
// every live point.
type VisualLocal struct {
	g    *connectivity.PointGrid
	opts VGAOptions
}

// NewVisualLocal validates opts and returns the analysis over g.
func NewVisualLocal(g *connectivity.PointGrid, opts ...VGAOption) (*VisualLocal, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o, err := buildVGAOptions(opts)
	if err != nil {
		return nil, err
	}

	return &VisualLocal{g: g, opts: o}, nil
}

// Name implements Analysis.
func (a *VisualLocal) Name() string { return "visual-local" }

type localWorker struct {
	g                 *connectivity.PointGrid
	local             *metrics.Local
	sameOwner         bool
	cols              [3]int
	clust, ctrl, ctrb float64
}

func (w *localWorker) compute(ref int) error {
	var keep func(int) bool
	if w.sameOwner {
		owner := w.g.Owner(ref)
		keep = func(nbr int) bool { return w.g.Owner(nbr) == owner }
	}
	w.clust = w.local.Clustering(ref, keep)
	w.ctrl = w.local.Control(ref)
	w.ctrb = w.local.Controllability(ref)

	return nil
}

func (w *localWorker) write(s *sink.Sink, ref int) {
	s.Set(w.cols[0], ref, w.clust)
	s.Set(w.cols[1], ref, w.ctrl)
	s.Set(w.cols[2], ref, w.ctrb)
}

// Run implements Analysis.
func (a *VisualLocal) Run(rc *RunContext) (sink.Result, error) {
	s := sink.New(rc.Store)
	refs := a.g.Refs()
	if len(refs) == 0 {
		return s.Result(false), nil
	}
	cols := [3]int{
		s.EnsureColumn(ColVisualClustering),
		s.EnsureColumn(ColVisualControl),
		s.EnsureColumn(ColVisualControllability),
	}
	err := sweep(rc, a.opts, s, refs, func() (vgaWorker, error) {
		return &localWorker{g: a.g, local: metrics.NewLocal(a.g), sameOwner: a.opts.SameOwnerClustering, cols: cols}, nil
	})
	if err != nil {
		return s.Result(false), err
	}

	return s.Result(true), nil
}

// VisualGlobal writes depth-distribution measures of a breadth-first walk
// from every live point.
type VisualGlobal struct {
	g    *connectivity.PointGrid
	opts VGAOptions
}

// NewVisualGlobal validates opts and returns the analysis over g.
func NewVisualGlobal(g *connectivity.PointGrid, opts ...VGAOption) (*VisualGlobal, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o, err := buildVGAOptions(opts)
	if err != nil {
		return nil, err
	}

	return &VisualGlobal{g: g, opts: o}, nil
}

// Name implements Analysis.
func (a *VisualGlobal) Name() string { return "visual-global" }

type globalWorker struct {
	walker *traverse.StepWalker
	cols   [7]int
	sum    metrics.DepthSummary
}

func (w *globalWorker) compute(ref int) error {
	res, err := w.walker.Run([]int{ref})
	if err != nil {
		return err
	}
	w.sum = metrics.SummarizeSteps(res.Counts)

	return nil
}

func (w *globalWorker) write(s *sink.Sink, ref int) {
	s.Set(w.cols[0], ref, w.sum.Entropy())
	s.Set(w.cols[1], ref, w.sum.IntegrationHH())
	s.Set(w.cols[2], ref, w.sum.IntegrationPValue())
	s.Set(w.cols[3], ref, w.sum.IntegrationTekl())
	s.Set(w.cols[4], ref, w.sum.MeanDepth())
	s.Set(w.cols[5], ref, float64(w.sum.NodeCount))
	s.Set(w.cols[6], ref, w.sum.RelativisedEntropy())
}

// Run implements Analysis.
//
// Complexity: O(P · (P + E)) split over the workers.
func (a *VisualGlobal) Run(rc *RunContext) (sink.Result, error) {
	s := sink.New(rc.Store)
	refs := a.g.Refs()
	if len(refs) == 0 {
		return s.Result(false), nil
	}
	cols := [7]int{
		s.EnsureColumn(ColVisualEntropy),
		s.EnsureColumn(ColVisualIntegrationHH),
		s.EnsureColumn(ColVisualIntegrationPValue),
		s.EnsureColumn(ColVisualIntegrationTekl),
		s.EnsureColumn(ColVisualMeanDepth),
		s.EnsureColumn(ColVisualNodeCount),
		s.EnsureColumn(ColVisualRelativisedEntropy),
	}
	err := sweep(rc, a.opts, s, refs, func() (vgaWorker, error) {
		w, err := traverse.NewStepWalker(a.g, traverse.WithRadius(float64(a.opts.StepRadius)))
		if err != nil {
			return nil, err
		}
		return &globalWorker{walker: w, cols: cols}, nil
	})
	if err != nil {
		return s.Result(false), err
	}

	return s.Result(true), nil
}

// VisualDepth writes the step depth of every point from the selected
// points, seeded together. Unreached points hold -1.
type VisualDepth struct {
	g *connectivity.PointGrid
}

// NewVisualDepth returns the analysis over g.
func NewVisualDepth(g *connectivity.PointGrid) (*VisualDepth, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &VisualDepth{g: g}, nil
}

// Name implements Analysis.
func (a *VisualDepth) Name() string { return "visual-depth" }

// Run implements Analysis.
func (a *VisualDepth) Run(rc *RunContext) (sink.Result, error) {
	s := sink.New(rc.Store)
	origins, ok := resolve(rc.Selection, resolvable(rc.Store, a.g.Valid))
	if !ok {
		rc.Logger.Debug().Ints("selection", rc.Selection).Msg("need at least one live point")
		return s.Result(false), nil
	}
	res, err := traverse.Step(a.g, origins, traverse.WithPoller(rc.poller()))
	if err != nil {
		return s.Result(false), err
	}
	col := s.EnsureColumn(ColVisualStepDepth)
	for _, ref := range res.Order {
		s.Set(col, ref, float64(res.Depth[ref]))
	}

	return s.Result(true), nil
}
