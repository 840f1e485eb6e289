// SPDX-License-Identifier: MIT
// Package traverse: metric shortest paths over segment lengths.
package traverse

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/depthlath/connectivity"
)

// MetricResult holds metric distances from the origins, indexed by ref.
type MetricResult struct {
	// Distance is the walked length, -1 if unreached.
	Distance []float64
	// Pred is the shortest-path parent, -1 for origins and unreached refs.
	Pred []int
	// Order lists refs in finalization sequence.
	Order []int
}

// PathTo reconstructs the origin → dest shortest path.
func (r *MetricResult) PathTo(dest int) ([]int, error) {
	if dest < 0 || dest >= len(r.Distance) || r.Distance[dest] < 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnreachable, dest)
	}

	return PathTo(r.Pred, dest)
}

// Metric computes shortest walked distances from origins over the undirected
// segment network. Moving from u to a neighbour v costs half of u's length
// plus half of v's, i.e. the distance between segment midpoints. Origins
// start at 0.
//
// Returns ErrNilGraph, ErrOptionViolation, ErrBadOrigin or a wrapped
// progress.ErrCancelled with the partial result.
//
// Complexity: O((V + E) log V) time, O(V + E) memory (lazy decrease-key).
func Metric(g *connectivity.SegmentGraph, origins []int, opts ...Option) (*MetricResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(origins) == 0 {
		return nil, ErrBadOrigin
	}
	for _, ref := range origins {
		if !g.Valid(ref) {
			return nil, fmt.Errorf("%w: %d", ErrBadOrigin, ref)
		}
	}

	n := g.Count()
	r := &runner{
		g:       g,
		opts:    o,
		dist:    make([]float64, n),
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
		res: &MetricResult{
			Distance: make([]float64, n),
			Pred:     make([]int, n),
			Order:    make([]int, 0, n),
		},
	}
	r.init(origins)
	err = r.process()

	return r.res, err
}

// runner holds the mutable state for a single metric walk.
type runner struct {
	g       *connectivity.SegmentGraph
	opts    Options
	dist    []float64
	visited []bool
	pq      nodePQ
	res     *MetricResult
}

// init sets every distance to +Inf and pushes the origins at 0.
func (r *runner) init(origins []int) {
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
		r.res.Distance[i] = -1
		r.res.Pred[i] = -1
	}
	heap.Init(&r.pq)
	for _, o := range origins {
		r.dist[o] = 0
		heap.Push(&r.pq, &nodeItem{ref: o, dist: 0})
	}
}

// process repeatedly extracts the nearest unvisited segment and relaxes it.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.ref
		// Skip stale entries.
		if r.visited[u] {
			continue
		}
		if err := r.opts.Poller.Tick(len(r.res.Order)); err != nil {
			return err
		}
		r.visited[u] = true
		r.res.Distance[u] = item.dist
		r.res.Order = append(r.res.Order, u)
		r.opts.OnFinalize(u, item.dist)
		if u == r.opts.Target {
			return nil
		}
		r.relax(u)
	}

	return nil
}

// relax improves every neighbour reachable from the finalized segment u.
func (r *runner) relax(u int) {
	half := r.g.Length(u) / 2
	for _, v := range r.g.Neighbors(u) {
		if r.visited[v] || !r.g.Valid(v) {
			continue
		}
		nd := r.dist[u] + half + r.g.Length(v)/2
		if !r.opts.within(nd) || nd >= r.dist[v] {
			continue
		}
		r.dist[v] = nd
		r.res.Pred[v] = u
		heap.Push(&r.pq, &nodeItem{ref: v, dist: nd})
	}
}

// nodeItem is a segment and its tentative distance.
type nodeItem struct {
	ref  int
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, with lazy decrease-key.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
