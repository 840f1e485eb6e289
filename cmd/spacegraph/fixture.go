// SPDX-License-Identifier: MIT
package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/depthlath/connectivity"
)

// gridFile is the YAML layout of a visibility grid.
type gridFile struct {
	Cells     [][]int `yaml:"cells"`
	Regions   [][]int `yaml:"regions"`
	Reach     string  `yaml:"reach"` // visible (default), conn4, conn8
	Radius    float64 `yaml:"radius"`
	Threshold *int    `yaml:"threshold"`
}

// segmentFile is the YAML layout of a segment network.
type segmentFile struct {
	Count   int           `yaml:"count"`
	Lengths []float64     `yaml:"lengths"`
	Joins   []segmentJoin `yaml:"joins"`
}

// segmentJoin connects an end of A with an end of B. Turn is the deflection
// in degrees between the two segments.
type segmentJoin struct {
	A    int     `yaml:"a"`
	AEnd string  `yaml:"aEnd"`
	B    int     `yaml:"b"`
	BEnd string  `yaml:"bEnd"`
	Turn float64 `yaml:"turn"`
}

// lineFile is the YAML layout of an axial map.
type lineFile struct {
	Count int     `yaml:"count"`
	Links [][]int `yaml:"links"`
}

func decodeFile(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	return nil
}

func parseReach(s string) (connectivity.Reach, error) {
	switch strings.ToLower(s) {
	case "", "visible":
		return connectivity.Visible, nil
	case "conn4":
		return connectivity.Conn4, nil
	case "conn8":
		return connectivity.Conn8, nil
	default:
		return 0, errors.Errorf("unknown reach %q", s)
	}
}

func parseEnd(s string) (connectivity.Direction, error) {
	switch strings.ToLower(s) {
	case "forward", "f", "end":
		return connectivity.Forward, nil
	case "backward", "b", "start":
		return connectivity.Backward, nil
	default:
		return 0, errors.Errorf("unknown segment end %q", s)
	}
}

func loadGrid(path string) (*connectivity.PointGrid, error) {
	var f gridFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	reach, err := parseReach(f.Reach)
	if err != nil {
		return nil, err
	}
	opts := []connectivity.GridOption{
		connectivity.WithReach(reach),
		connectivity.WithVisualRadius(f.Radius),
	}
	if f.Threshold != nil {
		opts = append(opts, connectivity.WithOpenThreshold(*f.Threshold))
	}
	if f.Regions != nil {
		opts = append(opts, connectivity.WithRegions(f.Regions))
	}
	pg, err := connectivity.NewVisibilityGrid(f.Cells, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build visibility grid")
	}

	return pg, nil
}

func loadSegments(path string) (*connectivity.SegmentGraph, error) {
	var f segmentFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	sg, err := connectivity.NewSegmentGraph(f.Count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build segment graph")
	}
	for ref, l := range f.Lengths {
		if err := sg.SetLength(ref, l); err != nil {
			return nil, errors.Wrapf(err, "segment %d", ref)
		}
	}
	for i, j := range f.Joins {
		aEnd, err := parseEnd(j.AEnd)
		if err != nil {
			return nil, errors.Wrapf(err, "join %d", i)
		}
		bEnd, err := parseEnd(j.BEnd)
		if err != nil {
			return nil, errors.Wrapf(err, "join %d", i)
		}
		if err := sg.Join(j.A, aEnd, j.B, bEnd, connectivity.SegmentCost(j.Turn)); err != nil {
			return nil, errors.Wrapf(err, "join %d", i)
		}
	}

	return sg, nil
}

func loadLines(path string) (*connectivity.LineGraph, error) {
	var f lineFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	lg, err := connectivity.NewLineGraph(f.Count)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build line graph")
	}
	for i, l := range f.Links {
		if len(l) != 2 {
			return nil, errors.Errorf("link %d: want 2 refs, got %d", i, len(l))
		}
		if err := lg.Link(l[0], l[1]); err != nil {
			return nil, errors.Wrapf(err, "link %d", i)
		}
	}

	return lg, nil
}
