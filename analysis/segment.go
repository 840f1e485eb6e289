// SPDX-License-Identifier: MIT
// Package analysis: all-origins angular sweep over a segment network.
package analysis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/depthlath/connectivity"
	"github.com/katalvlaran/depthlath/metrics"
	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/sink"
	"github.com/katalvlaran/depthlath/traverse"
	"github.com/katalvlaran/depthlath/tulip"
)

// RadiusSuffix labels columns of one sweep radius: " R n" for unlimited,
// otherwise " R <r>" in shortest decimal form.
func RadiusSuffix(r float64) string {
	if r <= 0 {
		return " R n"
	}

	return " R " + strconv.FormatFloat(r, 'f', -1, 64)
}

// tulipColumns holds the column handles of one radius.
type tulipColumns struct {
	choice, choiceNorm     int
	integration, meanDepth int
	nodeCount, totalDepth  int
}

// SegmentTulip computes angular integration, mean depth and, optionally,
// choice for every segment by walking from every origin at every radius.
type SegmentTulip struct {
	g    *connectivity.SegmentGraph
	opts TulipOptions
}

// NewSegmentTulip validates opts and returns the sweep over g.
// Returns ErrNilGraph or ErrOptionViolation.
func NewSegmentTulip(g *connectivity.SegmentGraph, opts ...TulipOption) (*SegmentTulip, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultTulipOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &SegmentTulip{g: g, opts: o}, nil
}

// Name implements Analysis.
func (a *SegmentTulip) Name() string { return "segment-tulip" }

// column names the metric col of this sweep at radius r.
func (a *SegmentTulip) column(metric string, r float64) string {
	return fmt.Sprintf("T%d %s%s", a.opts.Resolution, metric, RadiusSuffix(r))
}

func (a *SegmentTulip) ensureColumns(s *sink.Sink, r float64) tulipColumns {
	c := tulipColumns{choice: -1, choiceNorm: -1}
	if a.opts.Choice {
		c.choice = s.EnsureColumn(a.column("Choice", r))
		c.choiceNorm = s.EnsureColumn(a.column("Choice [Norm]", r))
	}
	c.integration = s.EnsureColumn(a.column("Integration", r))
	c.meanDepth = s.EnsureColumn(a.column("Mean Depth", r))
	c.nodeCount = s.EnsureColumn(a.column("Node Count", r))
	c.totalDepth = s.EnsureColumn(a.column("Total Depth", r))

	return c
}

// Run sweeps every radius in turn. Per-origin values are written as soon as
// the origin's walk ends; choice is written once all origins of a radius
// are done, so a cancelled radius leaves its choice columns at -1.
//
// Complexity: O(R · S · (V + E)) for R radii and S origins.
func (a *SegmentTulip) Run(rc *RunContext) (sink.Result, error) {
	s := sink.New(rc.Store)
	origins := a.g.Refs()
	if a.opts.Origins != nil {
		var ok bool
		if origins, ok = resolve(a.opts.Origins, a.g.Valid); !ok {
			rc.Logger.Debug().Ints("origins", a.opts.Origins).Msg("origin set names dead segments")
			return s.Result(false), nil
		}
	}
	if len(origins) == 0 {
		return s.Result(false), nil
	}

	streams := tulip.NewStreams(rc.Rand)
	poller := rc.poller()
	poller.Post(progress.NumSteps, len(a.opts.Radii))

	n := a.g.Count()
	for step, r := range a.opts.Radii {
		poller.Post(progress.CurrentStep, step+1)
		poller.Post(progress.NumRecords, len(origins))
		rc.Logger.Debug().Str("radius", RadiusSuffix(r)).Int("origins", len(origins)).Msg("sweep radius")

		cols := a.ensureColumns(s, r)
		walker, err := a.radiusWalker(streams, r)
		if err != nil {
			return s.Result(false), err
		}
		levels := 0

		var (
			choice []float64
			acc    *metrics.ChoiceAccumulator
			counts []int
		)
		if a.opts.Choice {
			choice = make([]float64, n)
			acc = metrics.NewChoiceAccumulator(n)
			counts = make([]int, n)
		}

		for i, o := range origins {
			if err := poller.Tick(i); err != nil {
				return s.Result(false), err
			}
			res, err := walker.Run([]int{o})
			if err != nil {
				return s.Result(false), err
			}
			levels = max(levels, res.Levels)
			sum := metrics.DepthSummary{NodeCount: res.Finalized}
			for _, ref := range res.Order {
				sum.TotalDepth += res.Depth[ref]
			}
			s.Set(cols.nodeCount, o, float64(sum.NodeCount))
			s.Set(cols.totalDepth, o, sum.TotalDepth)
			s.Set(cols.meanDepth, o, sum.MeanDepth())
			s.Set(cols.integration, o, sum.AngularIntegration())
			if acc != nil {
				acc.Add(res.Order, res.Pred, choice)
				counts[o] = sum.NodeCount
			}
		}

		rc.Logger.Debug().Str("radius", RadiusSuffix(r)).Int("max_levels", levels).Msg("radius swept")

		if acc != nil {
			if err := poller.Tick(len(origins)); err != nil {
				return s.Result(false), err
			}
			for _, ref := range a.g.Refs() {
				s.Set(cols.choice, ref, choice[ref])
				if counts[ref] > 0 {
					s.Set(cols.choiceNorm, ref, metrics.NormalisedChoice(choice[ref], counts[ref]))
				}
			}
		}
	}

	return s.Result(true), nil
}

// radiusWalker builds the walker of radius r (unbounded for r <= 0). Its
// tie-break source is keyed by the radius, so adding or dropping a radius
// leaves the walks of the others unchanged.
func (a *SegmentTulip) radiusWalker(streams tulip.Streams, r float64) (*traverse.AngularWalker, error) {
	opts := []traverse.Option{traverse.WithResolution(a.opts.Resolution)}
	key := uint64(0)
	if r > 0 {
		key = math.Float64bits(r)
		opts = append(opts, traverse.WithRadius(r))
	}
	opts = append(opts, traverse.WithRand(streams.Rand(key)))

	return traverse.NewAngularWalker(a.g, opts...)
}
