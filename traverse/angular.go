// SPDX-License-Identifier: MIT
// Package traverse: angular walker over a SegmentGraph ordered by tulip bins.
package traverse

import (
	"fmt"

	"github.com/katalvlaran/depthlath/connectivity"
	"github.com/katalvlaran/depthlath/tulip"
)

// AngularResult holds the outcome of an angular walk. Slices are indexed by
// ref and sized to the graph's Count().
type AngularResult struct {
	// Depth is the accumulated angular cost at finalization, -1 if unreached.
	Depth []float64
	// Pred is the entity a ref was first discovered from, -1 for origins and
	// unreached refs.
	Pred []int
	// Dir is the travel direction a ref was finalized with.
	Dir []connectivity.Direction
	// Order lists finalized refs in finalization sequence.
	Order []int
	// Finalized counts finalized refs (len(Order)).
	Finalized int
	// Levels is the number of bins the scheduler advanced through.
	Levels int
}

// PathTo reconstructs the origin → dest path from first-discovery links.
func (r *AngularResult) PathTo(dest int) ([]int, error) {
	if dest < 0 || dest >= len(r.Depth) || r.Depth[dest] < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnreachable, dest)
	}

	return PathTo(r.Pred, dest)
}

// AngularWalker runs repeated angular walks over one graph, reusing its bins
// and result buffers. The result of Run is valid until the next Run.
//
// An AngularWalker is not safe for concurrent use; give every goroutine its own.
type AngularWalker struct {
	g     *connectivity.SegmentGraph
	opts  Options
	bins  *tulip.Bins
	gen   int
	seen  []int // generation stamp of first discovery
	done  []int // generation stamp of finalization
	res   AngularResult
	dirty []int // refs whose Depth/Pred were written by the previous run
}

// NewAngularWalker validates options and allocates scratch for g.
// Returns ErrNilGraph or ErrOptionViolation.
func NewAngularWalker(g *connectivity.SegmentGraph, opts ...Option) (*AngularWalker, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	bins, err := tulip.New(o.Resolution, o.Rand)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptionViolation, err)
	}
	n := g.Count()
	w := &AngularWalker{
		g:    g,
		opts: o,
		bins: bins,
		seen: make([]int, n),
		done: make([]int, n),
		res: AngularResult{
			Depth: make([]float64, n),
			Pred:  make([]int, n),
			Dir:   make([]connectivity.Direction, n),
			Order: make([]int, 0, n),
		},
	}
	for i := 0; i < n; i++ {
		w.res.Depth[i] = -1
		w.res.Pred[i] = -1
	}

	return w, nil
}

// Angular runs a single angular walk from origins. See AngularWalker.Run.
func Angular(g *connectivity.SegmentGraph, origins []int, opts ...Option) (*AngularResult, error) {
	w, err := NewAngularWalker(g, opts...)
	if err != nil {
		return nil, err
	}

	return w.Run(origins)
}

// Run walks g from every origin at depth 0, leaving through both ends.
//
// Records are pushed without deduplication and only the first pop of a ref
// finalizes it. A finalized record travelling Forward explores the forward
// end only, Backward the backward end only, and an origin (Both) explores
// both. The predecessor of a ref is fixed when it is first discovered.
//
// Returns ErrBadOrigin for an empty or invalid origin set, or
// progress.ErrCancelled (wrapped) when the poller observes a cancellation;
// the partial result is returned alongside the cancellation error.
//
// Complexity: O(V + E) pushes and pops plus one bin scan per level.
func (w *AngularWalker) Run(origins []int) (*AngularResult, error) {
	if len(origins) == 0 {
		return nil, ErrBadOrigin
	}
	for _, o := range origins {
		if !w.g.Valid(o) {
			return nil, fmt.Errorf("%w: %d", ErrBadOrigin, o)
		}
	}
	w.reset()

	for _, o := range origins {
		if w.seen[o] == w.gen {
			continue
		}
		w.discover(o, -1)
		w.bins.Push(0, tulip.SegmentData{Ref: o, Pred: -1, Dir: connectivity.Both, Gen: w.gen})
	}

	err := w.loop()
	w.res.Levels = w.bins.Level()

	return &w.res, err
}

// reset rewinds buffers touched by the previous run.
func (w *AngularWalker) reset() {
	for _, ref := range w.dirty {
		w.res.Depth[ref] = -1
		w.res.Pred[ref] = -1
		w.res.Dir[ref] = connectivity.Both
	}
	w.dirty = w.dirty[:0]
	w.res.Order = w.res.Order[:0]
	w.res.Finalized = 0
	w.res.Levels = 0
	w.bins.Reset()
	w.gen++
}

// discover records the first discovery of ref.
func (w *AngularWalker) discover(ref, pred int) {
	w.seen[ref] = w.gen
	w.res.Pred[ref] = pred
	w.dirty = append(w.dirty, ref)
}

// loop pops until the bins are empty, the target is finalized or a
// cancellation is observed.
func (w *AngularWalker) loop() error {
	for {
		rec, ok := w.bins.Pop()
		if !ok {
			return nil
		}
		if rec.Gen != w.gen || w.done[rec.Ref] == w.gen {
			continue
		}
		if err := w.opts.Poller.Tick(w.res.Finalized); err != nil {
			return err
		}
		w.finalize(rec)
		if rec.Ref == w.opts.Target {
			return nil
		}
		if rec.Dir != connectivity.Backward {
			w.relax(rec, w.g.Forward(rec.Ref))
		}
		if rec.Dir != connectivity.Forward {
			w.relax(rec, w.g.Backward(rec.Ref))
		}
	}
}

func (w *AngularWalker) finalize(rec tulip.SegmentData) {
	w.done[rec.Ref] = w.gen
	w.res.Depth[rec.Ref] = rec.Depth
	w.res.Dir[rec.Ref] = rec.Dir
	w.res.Order = append(w.res.Order, rec.Ref)
	w.res.Finalized++
	w.opts.OnFinalize(rec.Ref, rec.Depth)
}

// relax pushes every not yet finalized neighbour within the radius.
func (w *AngularWalker) relax(rec tulip.SegmentData, edges []connectivity.SegmentEdge) {
	for _, e := range edges {
		if w.done[e.Ref] == w.gen {
			continue
		}
		d := rec.Depth + e.Cost
		if !w.opts.within(d) {
			continue
		}
		if w.seen[e.Ref] != w.gen {
			w.discover(e.Ref, rec.Ref)
		}
		w.bins.Push(w.bins.Offset(e.Cost), tulip.SegmentData{
			Ref:   e.Ref,
			Pred:  rec.Ref,
			Dir:   e.Dir,
			Depth: d,
			Gen:   w.gen,
		})
	}
}
