// SPDX-License-Identifier: MIT
// Package analysis: traced and measured execution of an Analysis.
package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/depthlath/progress"
	"github.com/katalvlaran/depthlath/sink"
)

var (
	tracer = otel.Tracer("depthlath.analysis")
	meter  = otel.Meter("depthlath.analysis")
)

var (
	runsTotal   metric.Int64Counter
	runDuration metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runsTotal, err = meter.Int64Counter(
			"analysis_runs_total",
			metric.WithDescription("Total number of analysis runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runDuration, err = meter.Float64Histogram(
			"analysis_duration_seconds",
			metric.WithDescription("Duration of analysis runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

func recordRun(ctx context.Context, name string, d time.Duration, completed bool) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("analysis.name", name),
		attribute.Bool("analysis.completed", completed),
	)
	runsTotal.Add(ctx, 1, attrs)
	runDuration.Record(ctx, d.Seconds(), attrs)
}

// Execute runs a inside a span named "analysis.<name>", records the run
// counter and duration histogram, and logs start and outcome on rc.Logger.
// The result and error are those of a.Run.
func Execute(a Analysis, rc *RunContext) (sink.Result, error) {
	name := a.Name()
	ctx, span := tracer.Start(rc.Ctx, "analysis."+name,
		trace.WithAttributes(
			attribute.String("analysis.name", name),
			attribute.String("analysis.run_id", rc.ID.String()),
			attribute.Int("analysis.selection", len(rc.Selection)),
		),
	)
	defer span.End()

	run := *rc
	run.Ctx = ctx
	run.Logger = rc.Logger.With().Str("analysis", name).Str("run_id", rc.ID.String()).Logger()
	run.Logger.Info().Msg("analysis started")

	start := time.Now()
	res, err := a.Run(&run)
	elapsed := time.Since(start)
	recordRun(ctx, name, elapsed, res.Completed)

	span.SetAttributes(
		attribute.Bool("analysis.completed", res.Completed),
		attribute.Int("analysis.columns", len(res.Columns)),
	)
	switch {
	case errors.Is(err, progress.ErrCancelled):
		span.SetStatus(codes.Error, "cancelled")
		run.Logger.Info().Dur("elapsed", elapsed).Strs("columns", res.Columns).Msg("analysis cancelled")
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		run.Logger.Error().Err(err).Dur("elapsed", elapsed).Msg("analysis failed")
	case !res.Completed:
		run.Logger.Info().Dur("elapsed", elapsed).Msg("analysis incomplete")
	default:
		run.Logger.Info().Dur("elapsed", elapsed).Strs("columns", res.Columns).Msg("analysis finished")
	}

	return res, err
}
