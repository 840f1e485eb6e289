// SPDX-License-Identifier: MIT
// Package metrics: choice (betweenness) accumulation over walk trees.
package metrics

// ChoiceAccumulator adds one walk tree at a time into per-entity choice
// totals. It keeps a scratch buffer sized to the reference space.
type ChoiceAccumulator struct {
	sub []float64
}

// NewChoiceAccumulator sizes scratch for n refs.
func NewChoiceAccumulator(n int) *ChoiceAccumulator {
	return &ChoiceAccumulator{sub: make([]float64, n)}
}

// Add credits every entity with the number of finalized destinations whose
// tree path passes strictly through it. order is the finalization sequence
// and pred the tree links (-1 for roots); every pred[v] must be finalized
// before v. Roots are never credited.
//
// Complexity: O(len(order)).
func (c *ChoiceAccumulator) Add(order, pred []int, choice []float64) {
	for _, v := range order {
		c.sub[v] = 1
	}
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		p := pred[v]
		if p < 0 {
			continue
		}
		choice[v] += c.sub[v] - 1
		c.sub[p] += c.sub[v]
	}
}

// AccumulateChoice is a convenience wrapper adding a single tree.
func AccumulateChoice(order, pred []int, choice []float64) {
	NewChoiceAccumulator(len(pred)).Add(order, pred, choice)
}
