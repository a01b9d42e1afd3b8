package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"filminsight/pkg/contracts/domain"
)

// ProcessReport describes one pipeline run: how many rows came in, how many
// survived, and why the rest were left out.
type ProcessReport struct {
	MoviesIn  int                     `json:"movies_in"`
	CreditsIn int                     `json:"credits_in"`
	Merged    int                     `json:"merged"`
	Kept      int                     `json:"kept"`
	Excluded  map[ExclusionReason]int `json:"excluded"`
	Duration  time.Duration           `json:"duration"`
}

// TotalExcluded sums the exclusion counts over all reasons.
func (r ProcessReport) TotalExcluded() int {
	total := 0
	for _, n := range r.Excluded {
		total += n
	}
	return total
}

// Pipeline runs merge, normalize, extract, enrich and filter over the two
// raw sources and produces the cleaned movie table.
type Pipeline struct {
	logger    *slog.Logger
	telemetry *pipelineTelemetry
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the clock used to determine the current year.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPipeline creates a pipeline. A nil logger falls back to slog.Default.
func NewPipeline(logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger:    logger.With(slog.String("component", "pipeline")),
		telemetry: newPipelineTelemetry(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process cleans the raw sources with a default pipeline.
func Process(movies []domain.RawMovie, credits []domain.CreditsRecord) []domain.Movie {
	return NewPipeline(nil).Process(context.Background(), movies, credits)
}

// Process cleans the raw sources into an analysis-ready table.
func (p *Pipeline) Process(ctx context.Context, movies []domain.RawMovie, credits []domain.CreditsRecord) []domain.Movie {
	table, _ := p.ProcessWithReport(ctx, movies, credits)
	return table
}

// ProcessWithReport is Process plus per-reason exclusion counts.
func (p *Pipeline) ProcessWithReport(ctx context.Context, movies []domain.RawMovie, credits []domain.CreditsRecord) ([]domain.Movie, ProcessReport) {
	start := time.Now()
	report := ProcessReport{
		MoviesIn:  len(movies),
		CreditsIn: len(credits),
		Excluded:  make(map[ExclusionReason]int),
	}

	p.logger.InfoContext(ctx, "processing movie dataset",
		slog.Int("movies", len(movies)),
		slog.Int("credits", len(credits)))

	stageCtx, span := p.telemetry.startStage(ctx, "merge", len(movies))
	merged := Merge(movies, credits)
	endStage(span, len(merged))
	report.Merged = len(merged)
	if unmatched := len(movies) - len(merged); unmatched > 0 {
		report.Excluded[ReasonUnmatched] = unmatched
	}
	p.logger.DebugContext(stageCtx, "merged sources", slog.Int("rows", len(merged)))

	stageCtx, span = p.telemetry.startStage(ctx, "normalize", len(merged))
	normalized, dropped := normalize(merged)
	endStage(span, len(normalized))
	addCounts(report.Excluded, dropped)
	p.logger.DebugContext(stageCtx, "normalized fields", slog.Int("rows", len(normalized)))

	stageCtx, span = p.telemetry.startStage(ctx, "extract", len(normalized))
	extracted := Extract(normalized)
	endStage(span, len(extracted))
	p.logger.DebugContext(stageCtx, "extracted nested fields", slog.Int("rows", len(extracted)))

	stageCtx, span = p.telemetry.startStage(ctx, "enrich", len(extracted))
	enriched := Enrich(extracted)
	endStage(span, len(enriched))
	p.logger.DebugContext(stageCtx, "calculated metrics", slog.Int("rows", len(enriched)))

	stageCtx, span = p.telemetry.startStage(ctx, "filter", len(enriched))
	table, invalid := filterValid(enriched, p.now().Year())
	endStage(span, len(table))
	addCounts(report.Excluded, invalid)
	p.logger.DebugContext(stageCtx, "filtered invalid rows", slog.Int("rows", len(table)))

	report.Kept = len(table)
	report.Duration = time.Since(start)
	p.telemetry.recordRun(ctx, report, report.Duration)

	attrs := []any{
		slog.Int("kept", report.Kept),
		slog.Int("excluded", report.TotalExcluded()),
		slog.Duration("duration", report.Duration),
	}
	for reason, n := range report.Excluded {
		attrs = append(attrs, slog.Int("excluded_"+string(reason), n))
	}
	p.logger.InfoContext(ctx, "movie dataset processed", attrs...)

	return table, report
}

// LoadAndProcess reads both CSV sources and cleans them. A missing or
// unreadable source fails the whole run; no partial table is returned.
func (p *Pipeline) LoadAndProcess(ctx context.Context, moviesPath, creditsPath string) ([]domain.Movie, ProcessReport, error) {
	movies, err := LoadMovies(moviesPath)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to load movies",
			slog.String("path", moviesPath),
			slog.String("error", err.Error()))
		return nil, ProcessReport{}, err
	}

	credits, err := LoadCredits(creditsPath)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to load credits",
			slog.String("path", creditsPath),
			slog.String("error", err.Error()))
		return nil, ProcessReport{}, err
	}

	table, report := p.ProcessWithReport(ctx, movies, credits)
	return table, report, nil
}

func addCounts(dst, src map[ExclusionReason]int) {
	for reason, n := range src {
		dst[reason] += n
	}
}
