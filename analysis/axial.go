// SPDX-License-Identifier: MIT
// Package analysis: local measures of an axial map.
package analysis

import (
	"github.com/katalvlaran/depthlath/connectivity"
	"github.com/katalvlaran/depthlath/metrics"
	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/sink"
)

// Column names written by AxialLocal.
const (
	ColConnectivity    = "Connectivity"
	ColControl         = "Control"
	ColControllability = "Controllability"
)

// AxialLocal writes connectivity, control and controllability of every line.
type AxialLocal struct {
	g *connectivity.LineGraph
}

// NewAxialLocal returns the analysis over g.
func NewAxialLocal(g *connectivity.LineGraph) (*AxialLocal, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &AxialLocal{g: g}, nil
}

// Name implements Analysis.
func (a *AxialLocal) Name() string { return "axial-local" }

// Run implements Analysis.
func (a *AxialLocal) Run(rc *RunContext) (sink.Result, error) {
	s := sink.New(rc.Store)
	refs := a.g.Refs()
	poller := rc.poller()
	poller.Post(progress.NumRecords, len(refs))

	conn := s.EnsureColumn(ColConnectivity)
	ctrl := s.EnsureColumn(ColControl)
	ctrb := s.EnsureColumn(ColControllability)
	local := metrics.NewLocal(a.g)
	for i, ref := range refs {
		if err := poller.Tick(i); err != nil {
			return s.Result(false), err
		}
		s.Set(conn, ref, float64(len(a.g.Neighbors(ref))))
		s.Set(ctrl, ref, local.Control(ref))
		s.Set(ctrb, ref, local.Controllability(ref))
	}

	return s.Result(true), nil
}
