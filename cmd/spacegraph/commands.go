// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/depthlath/analysis"
	"github.com/katalvlaran/depthlath/attr"
	"github.com/katalvlaran/depthlath/connectivity"
)

func newVGACmd(opts *rootOpts) *cobra.Command {
	var (
		gridPath string
		kind     string
		selects  []string
	)
	cmd := &cobra.Command{
		Use:   "vga",
		Short: "Visibility graph analysis of a grid",
		Example: `  spacegraph vga --grid room.yaml
  spacegraph vga --grid room.yaml --analysis path --select 0,0 --select 4.5,2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			pg, err := loadGrid(gridPath)
			if err != nil {
				return err
			}
			sel, err := selectPoints(pg, selects)
			if err != nil {
				return err
			}
			var a analysis.Analysis
			switch kind {
			case "local":
				a, err = analysis.NewVisualLocal(pg, e.cfg.VGAOptions()...)
			case "global":
				a, err = analysis.NewVisualGlobal(pg, e.cfg.VGAOptions()...)
			case "depth":
				a, err = analysis.NewVisualDepth(pg)
			case "path":
				a, err = analysis.NewVisualShortestPath(pg)
			default:
				return errors.Errorf("unknown vga analysis %q", kind)
			}
			if err != nil {
				return errors.Wrap(err, "failed to configure analysis")
			}

			return e.execute(cmd.Context(), a, pg.Refs(), sel)
		},
	}
	cmd.Flags().StringVar(&gridPath, "grid", "", "grid YAML file")
	cmd.Flags().StringVar(&kind, "analysis", "global", "local|global|depth|path")
	cmd.Flags().StringArrayVar(&selects, "select", nil, "selected point as x,y (repeatable)")
	_ = cmd.MarkFlagRequired("grid")

	return cmd
}

// selectPoints resolves "x,y" pairs to the nearest live point.
func selectPoints(pg *connectivity.PointGrid, specs []string) ([]int, error) {
	refs := make([]int, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, errors.Errorf("bad point %q: want x,y", s)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad point %q", s)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad point %q", s)
		}
		ref, ok := pg.Nearest(x+0.5, y+0.5)
		if !ok {
			return nil, errors.New("grid has no open cells")
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

func newSegmentCmd(opts *rootOpts) *cobra.Command {
	var (
		graphPath string
		kind      string
		selects   []int
	)
	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Angular, metric and topological analysis of a segment network",
		Example: `  spacegraph segment --graph streets.yaml
  spacegraph segment --graph streets.yaml --analysis angular-path --select 0,12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			sg, err := loadSegments(graphPath)
			if err != nil {
				return err
			}
			var a analysis.Analysis
			switch kind {
			case "tulip":
				a, err = analysis.NewSegmentTulip(sg, e.cfg.TulipOptions()...)
			case "angular-path":
				a, err = analysis.NewSegmentTulipShortestPath(sg)
			case "metric-path":
				a, err = analysis.NewSegmentMetricShortestPath(sg)
			case "topological-path":
				a, err = analysis.NewSegmentTopologicalShortestPath(sg)
			default:
				return errors.Errorf("unknown segment analysis %q", kind)
			}
			if err != nil {
				return errors.Wrap(err, "failed to configure analysis")
			}

			return e.execute(cmd.Context(), a, sg.Refs(), selects)
		},
	}
	cmd.Flags().StringVar(&graphPath, "graph", "", "segment network YAML file")
	cmd.Flags().StringVar(&kind, "analysis", "tulip", "tulip|angular-path|metric-path|topological-path")
	cmd.Flags().IntSliceVar(&selects, "select", nil, "selected segment refs")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}

func newAxialCmd(opts *rootOpts) *cobra.Command {
	var graphPath string
	cmd := &cobra.Command{
		Use:   "axial",
		Short: "Local measures of an axial map",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			lg, err := loadLines(graphPath)
			if err != nil {
				return err
			}
			a, err := analysis.NewAxialLocal(lg)
			if err != nil {
				return errors.Wrap(err, "failed to configure analysis")
			}

			return e.execute(cmd.Context(), a, lg.Refs(), nil)
		},
	}
	cmd.Flags().StringVar(&graphPath, "graph", "", "axial map YAML file")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}

func newStatsCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the columns of a stored attribute table",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, opts)
			if err != nil {
				return err
			}
			if e.cfg.Snapshot.Dir == "" {
				return errors.New("stats needs --snapshot")
			}
			db, err := attr.OpenDB(e.cfg.Snapshot.Dir, e.log)
			if err != nil {
				return errors.Wrap(err, "failed to open snapshot store")
			}
			defer db.Close()
			table, err := attr.LoadSnapshot(db, e.cfg.Snapshot.Name)
			if err != nil {
				return errors.Wrapf(err, "failed to load snapshot %q", e.cfg.Snapshot.Name)
			}

			return renderStats(e, table)
		},
	}

	return cmd
}

func renderStats(e *env, t *attr.Table) error {
	out := tablewriter.NewWriter(e.out)
	out.SetHeader([]string{"column", "count", "min", "max", "mean", "stddev"})
	for i := 0; i < t.ColumnCount(); i++ {
		s, err := t.ColumnStats(i)
		if err != nil {
			return errors.Wrapf(err, "column %d", i)
		}
		out.Append([]string{
			t.ColumnName(i),
			strconv.Itoa(s.Count),
			formatValue(s.Min),
			formatValue(s.Max),
			formatValue(s.Mean),
			formatValue(s.StdDev),
		})
	}
	out.Render()
	fmt.Fprintf(e.out, "%d rows\n", t.Len())

	return nil
}
