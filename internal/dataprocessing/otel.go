package dataprocessing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "filminsight.pipeline"
	MeterName  = "filminsight"
)

// pipelineTelemetry records spans per stage and row counters. It binds to
// the global providers, so it is a no-op until telemetry is initialized.
type pipelineTelemetry struct {
	tracer       trace.Tracer
	rowsRead     metric.Int64Counter
	rowsKept     metric.Int64Counter
	rowsExcluded metric.Int64Counter
	duration     metric.Float64Histogram
}

func newPipelineTelemetry() *pipelineTelemetry {
	t, err := buildPipelineTelemetry(otel.Meter(MeterName))
	if err != nil {
		t, _ = buildPipelineTelemetry(noop.NewMeterProvider().Meter(MeterName))
	}
	return t
}

func buildPipelineTelemetry(meter metric.Meter) (*pipelineTelemetry, error) {
	t := &pipelineTelemetry{tracer: otel.Tracer(TracerName)}
	var err error

	t.rowsRead, err = meter.Int64Counter(
		"filminsight_pipeline_rows_read_total",
		metric.WithDescription("Movie rows entering the cleaning pipeline"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	t.rowsKept, err = meter.Int64Counter(
		"filminsight_pipeline_rows_kept_total",
		metric.WithDescription("Movie rows in the cleaned table"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	t.rowsExcluded, err = meter.Int64Counter(
		"filminsight_pipeline_rows_excluded_total",
		metric.WithDescription("Movie rows left out of the cleaned table by reason"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, err
	}

	t.duration, err = meter.Float64Histogram(
		"filminsight_pipeline_duration_seconds",
		metric.WithDescription("Time to run the cleaning pipeline"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (t *pipelineTelemetry) startStage(ctx context.Context, stage string, rows int) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "pipeline."+stage,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.stage", stage),
			attribute.Int("pipeline.rows_in", rows),
		),
	)
}

func endStage(span trace.Span, rowsOut int) {
	span.SetAttributes(attribute.Int("pipeline.rows_out", rowsOut))
	span.SetStatus(codes.Ok, "")
	span.End()
}

func (t *pipelineTelemetry) recordRun(ctx context.Context, report ProcessReport, elapsed time.Duration) {
	t.rowsRead.Add(ctx, int64(report.MoviesIn))
	t.rowsKept.Add(ctx, int64(report.Kept))
	for reason, n := range report.Excluded {
		t.rowsExcluded.Add(ctx, int64(n), metric.WithAttributes(attribute.String("reason", string(reason))))
	}
	t.duration.Record(ctx, elapsed.Seconds())
}
