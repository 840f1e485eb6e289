// SPDX-License-Identifier: MIT
// Package metrics: global measures derived from one walk's depth distribution.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DepthSummary condenses the depths reached from one origin.
// NodeCount includes the origin itself.
type DepthSummary struct {
	NodeCount  int
	TotalDepth float64
	// Counts[d] is the number of entities at step depth d (step walks only).
	Counts []int
}

// SummarizeSteps builds a summary from per-depth counts, Counts[0] being the origins.
func SummarizeSteps(counts []int) DepthSummary {
	s := DepthSummary{Counts: counts}
	for d, c := range counts {
		s.NodeCount += c
		s.TotalDepth += float64(d * c)
	}

	return s
}

// SummarizeDepths builds a summary from the depths of every reached entity,
// skipping negative (unreached) values.
func SummarizeDepths(depths []float64) DepthSummary {
	var s DepthSummary
	for _, d := range depths {
		if d >= 0 {
			s.NodeCount++
			s.TotalDepth += d
		}
	}

	return s
}

// MeanDepth is TotalDepth over the number of entities other than the origin.
// Returns Missing when nothing but the origin was reached.
func (s DepthSummary) MeanDepth() float64 {
	if s.NodeCount < 2 {
		return Missing
	}

	return s.TotalDepth / float64(s.NodeCount-1)
}

// DValue is the Hillier–Hanson diamond normaliser for k nodes.
func DValue(k float64) float64 {
	return 2 * (k*(math.Log2((k+2)/3)-1) + 1) / ((k - 1) * (k - 2))
}

// PValue is the pyramid normaliser for k nodes.
func PValue(k float64) float64 {
	return 2 * (k - math.Log2(k) - 1) / ((k - 1) * (k - 2))
}

// relativeAsymmetry returns RA = 2(MD−1)/(k−2), or false when undefined.
func (s DepthSummary) relativeAsymmetry() (float64, bool) {
	md := s.MeanDepth()
	if s.NodeCount <= 2 || md <= 1 {
		return 0, false
	}

	return 2 * (md - 1) / float64(s.NodeCount-2), true
}

// IntegrationHH is 1/RRA with RRA normalised by the diamond D-value.
func (s DepthSummary) IntegrationHH() float64 {
	ra, ok := s.relativeAsymmetry()
	if !ok {
		return Missing
	}

	return DValue(float64(s.NodeCount)) / ra
}

// IntegrationPValue is 1/RRA with RRA normalised by the pyramid P-value.
func (s DepthSummary) IntegrationPValue() float64 {
	ra, ok := s.relativeAsymmetry()
	if !ok {
		return Missing
	}

	return PValue(float64(s.NodeCount)) / ra
}

// IntegrationTekl is Teklenburg integration log((k−2)/2) / log(TD − k + 1).
func (s DepthSummary) IntegrationTekl() float64 {
	if _, ok := s.relativeAsymmetry(); !ok {
		return Missing
	}
	k := float64(s.NodeCount)
	if s.TotalDepth-k+1 <= 1 {
		return Missing
	}

	return math.Log(0.5*(k-2)) / math.Log(s.TotalDepth-k+1)
}

// distribution returns the share of non-origin entities at each depth ≥ 1.
func (s DepthSummary) distribution() []float64 {
	if s.NodeCount < 2 || len(s.Counts) < 2 {
		return nil
	}
	p := make([]float64, len(s.Counts)-1)
	for d := 1; d < len(s.Counts); d++ {
		p[d-1] = float64(s.Counts[d])
	}
	floats.Scale(1/float64(s.NodeCount-1), p)

	return p
}

// Entropy is the Shannon entropy (bits) of the depth distribution.
func (s DepthSummary) Entropy() float64 {
	p := s.distribution()
	if p == nil {
		return Missing
	}

	return stat.Entropy(p) / math.Ln2
}

// RelativisedEntropy is the divergence (bits) of the depth distribution from
// a Poisson distribution with the same mean depth.
func (s DepthSummary) RelativisedEntropy() float64 {
	p := s.distribution()
	if p == nil {
		return Missing
	}
	md := s.MeanDepth()
	q := make([]float64, len(p))
	fact := 1.0
	for i := range q {
		k := float64(i + 1)
		fact *= k
		q[i] = math.Pow(md, k) / fact * math.Exp(-md)
	}

	return stat.KullbackLeibler(p, q) / math.Ln2
}

// AngularIntegration is NodeCount² / TotalDepth, or Missing for zero depth.
func (s DepthSummary) AngularIntegration() float64 {
	if s.TotalDepth <= 0 {
		return Missing
	}
	k := float64(s.NodeCount)

	return k * k / s.TotalDepth
}

// NormalisedChoice divides an ordered-pair choice count by (k−1)(k−2), the
// number of ordered pairs of other entities. Returns Missing for k < 3.
func NormalisedChoice(choice float64, k int) float64 {
	if k < 3 {
		return Missing
	}

	return choice / float64((k-1)*(k-2))
}
