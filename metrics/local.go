// SPDX-License-Identifier: MIT
// Package metrics: local neighbourhood measures over an Adjacency.
package metrics

import (
	"github.com/katalvlaran/depthlath/connectivity"
)

// Missing is the value reported for degenerate inputs.
const Missing = -1.0

// Local computes control, controllability and clustering for refs of one
// Adjacency, reusing a stamp buffer between calls. The graph is only read.
//
// A Local is not safe for concurrent use; give every worker its own.
type Local struct {
	a     connectivity.Adjacency
	stamp []int
	gen   int
}

// NewLocal returns a Local calculator over a.
func NewLocal(a connectivity.Adjacency) *Local {
	return &Local{a: a, stamp: make([]int, a.Count())}
}

func (l *Local) next() int {
	l.gen++
	return l.gen
}

// degree counts live neighbours.
func (l *Local) degree(ref int) int {
	d := 0
	for _, n := range l.a.Neighbors(ref) {
		if l.a.Valid(n) {
			d++
		}
	}

	return d
}

// Control returns Σ 1/deg(j) over the neighbours j of ref. Neighbours with no
// neighbours of their own contribute nothing. Returns Missing if ref has no
// neighbours.
func (l *Local) Control(ref int) float64 {
	nbrs := l.a.Neighbors(ref)
	if l.degree(ref) == 0 {
		return Missing
	}
	var c float64
	for _, j := range nbrs {
		if !l.a.Valid(j) {
			continue
		}
		if d := l.degree(j); d > 0 {
			c += 1 / float64(d)
		}
	}

	return c
}

// Controllability returns |N(i)| / (|N(i) ∪ N(N(i)) ∪ {i}| − 1), the share of
// the two-step neighbourhood that is directly visible. Returns Missing if ref
// has no neighbours.
func (l *Local) Controllability(ref int) float64 {
	deg := l.degree(ref)
	if deg == 0 {
		return Missing
	}
	g := l.next()
	l.stamp[ref] = g
	total := 1
	for _, j := range l.a.Neighbors(ref) {
		if !l.a.Valid(j) {
			continue
		}
		if l.stamp[j] != g {
			l.stamp[j] = g
			total++
		}
		for _, k := range l.a.Neighbors(j) {
			if l.a.Valid(k) && l.stamp[k] != g {
				l.stamp[k] = g
				total++
			}
		}
	}

	return float64(deg) / float64(total-1)
}

// Clustering returns the fraction of ordered pairs of distinct neighbours of
// ref that are themselves connected. When keep is non-nil only neighbours it
// accepts are considered. Returns Missing for fewer than two neighbours.
func (l *Local) Clustering(ref int, keep func(nbr int) bool) float64 {
	g := l.next()
	n := 0
	for _, j := range l.a.Neighbors(ref) {
		if l.a.Valid(j) && (keep == nil || keep(j)) {
			l.stamp[j] = g
			n++
		}
	}
	if n < 2 {
		return Missing
	}
	links := 0
	for _, j := range l.a.Neighbors(ref) {
		if l.stamp[j] != g {
			continue
		}
		for _, k := range l.a.Neighbors(j) {
			if k != j && l.stamp[k] == g {
				links++
			}
		}
	}

	return float64(links) / float64(n*(n-1))
}

// Control is a convenience wrapper over Local.Control.
func Control(a connectivity.Adjacency, ref int) float64 {
	return NewLocal(a).Control(ref)
}

// Controllability is a convenience wrapper over Local.Controllability.
func Controllability(a connectivity.Adjacency, ref int) float64 {
	return NewLocal(a).Controllability(ref)
}

// Clustering is a convenience wrapper over Local.Clustering.
func Clustering(a connectivity.Adjacency, ref int, keep func(nbr int) bool) float64 {
	return NewLocal(a).Clustering(ref, keep)
}
