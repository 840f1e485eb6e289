// SPDX-License-Identifier: MIT
// Package traverse: breadth-first step-depth walker over any Adjacency.
package traverse

import (
	"fmt"

	"github.com/katalvlaran/depthlath/connectivity"
)

// StepResult holds the outcome of a step-depth walk, indexed by ref.
type StepResult struct {
	// Depth is the number of steps from the nearest origin, -1 if unreached.
	Depth []int
	// Pred is the BFS-tree parent, -1 for origins and unreached refs.
	Pred []int
	// Order lists refs in visit sequence.
	Order []int
	// Counts[d] is the number of refs finalized at depth d.
	Counts []int
}

// PathTo reconstructs the origin → dest path through the BFS tree.
func (r *StepResult) PathTo(dest int) ([]int, error) {
	if dest < 0 || dest >= len(r.Depth) || r.Depth[dest] < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnreachable, dest)
	}

	return PathTo(r.Pred, dest)
}

// StepWalker runs repeated breadth-first walks over one Adjacency, reusing
// its queue and result buffers. The result of Run is valid until the next Run.
type StepWalker struct {
	a     connectivity.Adjacency
	opts  Options
	queue []int
	res   StepResult
}

// NewStepWalker validates options and allocates scratch for a.
func NewStepWalker(a connectivity.Adjacency, opts ...Option) (*StepWalker, error) {
	if a == nil {
		return nil, ErrNilGraph
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	n := a.Count()
	w := &StepWalker{
		a:     a,
		opts:  o,
		queue: make([]int, 0, n),
		res: StepResult{
			Depth: make([]int, n),
			Pred:  make([]int, n),
			Order: make([]int, 0, n),
		},
	}
	for i := 0; i < n; i++ {
		w.res.Depth[i] = -1
		w.res.Pred[i] = -1
	}

	return w, nil
}

// Step runs a single step-depth walk. See StepWalker.Run.
func Step(a connectivity.Adjacency, origins []int, opts ...Option) (*StepResult, error) {
	w, err := NewStepWalker(a, opts...)
	if err != nil {
		return nil, err
	}

	return w.Run(origins)
}

// Run visits every ref reachable from origins in non-decreasing step depth.
// Returns ErrBadOrigin or a wrapped progress.ErrCancelled with the partial result.
// Complexity: O(V + E).
func (w *StepWalker) Run(origins []int) (*StepResult, error) {
	if len(origins) == 0 {
		return nil, ErrBadOrigin
	}
	for _, o := range origins {
		if !w.a.Valid(o) {
			return nil, fmt.Errorf("%w: %d", ErrBadOrigin, o)
		}
	}
	for _, ref := range w.res.Order {
		w.res.Depth[ref] = -1
		w.res.Pred[ref] = -1
	}
	w.res.Order = w.res.Order[:0]
	w.res.Counts = w.res.Counts[:0]
	w.queue = w.queue[:0]

	for _, o := range origins {
		if w.res.Depth[o] < 0 {
			w.enqueue(o, 0, -1)
		}
	}

	return &w.res, w.loop()
}

// enqueue marks ref visited at depth d with its parent.
func (w *StepWalker) enqueue(ref, d, parent int) {
	w.res.Depth[ref] = d
	w.res.Pred[ref] = parent
	w.res.Order = append(w.res.Order, ref)
	w.queue = append(w.queue, ref)
}

// loop processes the queue until empty, target reached or cancellation.
func (w *StepWalker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		ref := w.queue[head]
		d := w.res.Depth[ref]
		if err := w.opts.Poller.Tick(head); err != nil {
			return err
		}
		for len(w.res.Counts) <= d {
			w.res.Counts = append(w.res.Counts, 0)
		}
		w.res.Counts[d]++
		w.opts.OnFinalize(ref, float64(d))
		if ref == w.opts.Target {
			return nil
		}
		next := d + 1
		if !w.opts.within(float64(next)) {
			continue
		}
		for _, nbr := range w.a.Neighbors(ref) {
			if w.res.Depth[nbr] < 0 && w.a.Valid(nbr) {
				w.enqueue(nbr, next, ref)
			}
		}
	}

	return nil
}
