// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/depthlath/analysis"
	"github.com/katalvlaran/depthlath/attr"
	"github.com/katalvlaran/depthlath/config"
	"github.com/katalvlaran/depthlath/progress"
)

type rootOpts struct {
	cfgFile  string
	debug    bool
	snapshot string
	progress bool
}

var longRootDescription = `spacegraph runs spatial-network analyses over visibility grids,
segment networks and axial maps described in YAML files, and prints the
resulting attribute columns.
`

// env bundles what every subcommand needs once flags are parsed.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	out    io.Writer
	errOut io.Writer
	opts   *rootOpts
}

func newRootCmd() *cobra.Command {
	opts := &rootOpts{}
	root := &cobra.Command{
		Use:           "spacegraph",
		Short:         "Spatial network analysis of grids, segments and axial maps.",
		Long:          longRootDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file (defaults and DEPTHLATH_ env vars apply)")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "turn on debug logging")
	root.PersistentFlags().StringVar(&opts.snapshot, "snapshot", "", "badger directory to store the attribute table in")
	root.PersistentFlags().BoolVar(&opts.progress, "progress", false, "render a progress bar on stderr")

	root.AddCommand(newVGACmd(opts), newSegmentCmd(opts), newAxialCmd(opts), newStatsCmd(opts))
	root.DisableAutoGenTag = true

	return root
}

func newEnv(cmd *cobra.Command, opts *rootOpts) (*env, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if opts.debug {
		cfg.Log.Debug = true
	}
	if opts.snapshot != "" {
		cfg.Snapshot.Dir = opts.snapshot
	}

	return &env{
		cfg:    cfg,
		log:    analysis.NewLogger(cmd.ErrOrStderr(), cfg.Log.Debug),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		opts:   opts,
	}, nil
}

// execute runs a over a fresh table of refs, prints the touched columns and
// stores a snapshot when configured. An interrupt cancels the run.
func (e *env) execute(ctx context.Context, a analysis.Analysis, refs, selection []int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	table := attr.NewTable(refs)
	runOpts := append(e.cfg.RunOptions(),
		analysis.WithLogger(e.log),
		analysis.WithSelection(selection...),
	)
	var bar *progress.Bar
	if e.opts.progress {
		bar = progress.NewBar(e.errOut, a.Name())
		runOpts = append(runOpts, analysis.WithComm(bar))
	}
	rc, err := analysis.NewRunContext(ctx, table, runOpts...)
	if err != nil {
		return errors.Wrap(err, "failed to create run context")
	}

	res, runErr := analysis.Execute(a, rc)
	if bar != nil {
		e.finishBar(bar)
	}
	if runErr != nil && !errors.Is(runErr, progress.ErrCancelled) {
		return errors.Wrapf(runErr, "analysis %s failed", a.Name())
	}
	if !res.Completed && runErr == nil {
		return errors.Errorf("analysis %s did not complete: check the selection", a.Name())
	}

	renderTable(e.out, table, res.Columns)
	if err := e.saveSnapshot(table); err != nil {
		return err
	}
	if runErr != nil {
		return errors.Wrapf(runErr, "analysis %s interrupted", a.Name())
	}

	return nil
}

// finishBar completes the bar; a failed redraw only costs the last frame.
func (e *env) finishBar(bar interface{ Finish() error }) {
	if err := bar.Finish(); err != nil {
		e.log.Debug().Err(err).Msg("failed to finish progress bar")
	}
	fmt.Fprintln(e.errOut)
}

func (e *env) saveSnapshot(table *attr.Table) error {
	if e.cfg.Snapshot.Dir == "" {
		return nil
	}
	db, err := attr.OpenDB(e.cfg.Snapshot.Dir, e.log)
	if err != nil {
		return errors.Wrap(err, "failed to open snapshot store")
	}
	defer db.Close()
	if err := attr.SaveSnapshot(db, e.cfg.Snapshot.Name, table); err != nil {
		return errors.Wrap(err, "failed to save snapshot")
	}
	e.log.Info().Str("dir", e.cfg.Snapshot.Dir).Str("name", e.cfg.Snapshot.Name).Msg("snapshot saved")

	return nil
}

// renderTable prints one line per row with the given columns.
func renderTable(w io.Writer, t attr.Store, columns []string) {
	idx := make([]int, 0, len(columns))
	header := []string{"ref"}
	for _, name := range columns {
		if i, ok := t.ColumnIndex(name); ok {
			idx = append(idx, i)
			header = append(header, name)
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	t.ForEachRow(func(ref int, r attr.Row) bool {
		line := []string{strconv.Itoa(ref)}
		for _, i := range idx {
			line = append(line, formatValue(r.Value(i)))
		}
		table.Append(line)
		return true
	})
	table.Render()
}

func formatValue(v float64) string {
	if v == attr.Missing {
		return "-1"
	}

	return strconv.FormatFloat(v, 'g', 6, 64)
}
