package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"filminsight/internal/config"
	"filminsight/internal/dataprocessing"
	apperrors "filminsight/internal/errors"
	"filminsight/internal/files"
	"filminsight/internal/infrastructure"
	"filminsight/internal/validation"
	"filminsight/pkg/contracts/domain"
)

const loadKey = "dataset"

// Snapshot is one loaded and cleaned copy of the dataset. It is never
// modified after it is published.
type Snapshot struct {
	Movies   []domain.Movie
	Report   dataprocessing.ProcessReport
	Files    files.DatasetFiles
	LoadedAt time.Time
}

// DatasetStatus describes the cached dataset for health and status endpoints
type DatasetStatus struct {
	Loaded      bool                          `json:"loaded"`
	Movies      int                           `json:"movies"`
	MoviesFile  string                        `json:"movies_file,omitempty"`
	CreditsFile string                        `json:"credits_file,omitempty"`
	LoadedAt    *time.Time                    `json:"loaded_at,omitempty"`
	Report      *dataprocessing.ProcessReport `json:"report,omitempty"`
	LastError   string                        `json:"last_error,omitempty"`
}

// MovieQuery selects, orders and pages movies from the cleaned table
type MovieQuery struct {
	Criteria domain.FilterCriteria
	Title    string
	Director string
	SortBy   dataprocessing.SortKey
	Limit    int
	Offset   int
}

// MoviePage is one page of a MovieQuery result
type MoviePage struct {
	Movies []domain.Movie `json:"movies"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// DatasetService loads the movie dataset once per process and answers
// queries against the cached table
type DatasetService struct {
	cfg        config.DatasetConfig
	discovery  *files.Discovery
	validator  *validation.FileValidator
	pipeline   *dataprocessing.Pipeline
	summarizer *dataprocessing.Summarizer
	metrics    *infrastructure.BusinessMetrics
	logger     *slog.Logger

	group    singleflight.Group
	mu       sync.RWMutex
	snapshot *Snapshot
	lastErr  error
}

// DatasetOption configures a DatasetService
type DatasetOption func(*DatasetService)

// WithPipeline replaces the default pipeline
func WithPipeline(p *dataprocessing.Pipeline) DatasetOption {
	return func(s *DatasetService) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// WithSummarizer replaces the default summarizer
func WithSummarizer(sum *dataprocessing.Summarizer) DatasetOption {
	return func(s *DatasetService) {
		if sum != nil {
			s.summarizer = sum
		}
	}
}

// WithMetrics records every load in the given business metrics
func WithMetrics(m *infrastructure.BusinessMetrics) DatasetOption {
	return func(s *DatasetService) {
		s.metrics = m
	}
}

// NewDatasetService creates a dataset service. Relative dataset paths are
// resolved against baseDir.
func NewDatasetService(cfg config.DatasetConfig, baseDir string, logger *slog.Logger, opts ...DatasetOption) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &DatasetService{
		cfg:        cfg,
		discovery:  files.NewDiscovery(baseDir),
		validator:  validation.NewFileValidator(logger),
		pipeline:   dataprocessing.NewPipeline(logger),
		summarizer: dataprocessing.NewSummarizer(logger, dataprocessing.DefaultSummarizerConfig()),
		logger:     logger.With(slog.String("component", "dataset_service")),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("dataset service initialized",
		slog.String("data_dir", cfg.DataDir),
		slog.String("movies_pattern", cfg.MoviesPattern),
		slog.String("credits_pattern", cfg.CreditsPattern),
		slog.Duration("reload_interval", cfg.ReloadInterval))

	return s
}

// Load locates, validates and cleans the dataset and publishes a new
// snapshot. Concurrent callers share one load. On failure the previous
// snapshot, if any, stays in place.
func (s *DatasetService) Load(ctx context.Context) (*Snapshot, error) {
	ch := s.group.DoChan(loadKey, func() (interface{}, error) {
		// the load outlives any single caller's cancellation
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.DatasetLoadTimeout)
		defer cancel()
		return s.load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

func (s *DatasetService) load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	snap, err := s.buildSnapshot(ctx)
	elapsed := time.Since(start)

	s.mu.Lock()
	if err != nil {
		s.lastErr = err
	} else {
		s.snapshot = snap
		s.lastErr = nil
	}
	s.mu.Unlock()

	if err != nil {
		infrastructure.RecordDatasetLoad(ctx, s.metrics, elapsed, 0, err)
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed))
		return nil, err
	}

	infrastructure.RecordDatasetLoad(ctx, s.metrics, elapsed, len(snap.Movies), nil)
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("movies", len(snap.Movies)),
		slog.Int("excluded", snap.Report.TotalExcluded()),
		slog.String("movies_file", snap.Files.Movies.Path),
		slog.String("credits_file", snap.Files.Credits.Path),
		slog.Duration("duration", elapsed))
	return snap, nil
}

func (s *DatasetService) buildSnapshot(ctx context.Context) (*Snapshot, error) {
	located, err := s.discovery.LocateDataset(s.cfg)
	if err != nil {
		return nil, err
	}

	for _, f := range []files.FileInfo{located.Movies, located.Credits} {
		if err := s.validator.ValidateDatasetFile(f.Path, s.cfg.MaxFileSize); err != nil {
			return nil, apperrors.NewStorageError("dataset file rejected", err).WithContext("path", f.Path)
		}
	}

	movies, report, err := s.pipeline.LoadAndProcess(ctx, located.Movies.Path, located.Credits.Path)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Movies:   movies,
		Report:   report,
		Files:    located,
		LoadedAt: time.Now(),
	}, nil
}

// Current returns the published snapshot without loading
func (s *DatasetService) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.snapshot != nil
}

// Snapshot returns the published snapshot, loading it on first use
func (s *DatasetService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap, ok := s.Current(); ok {
		return snap, nil
	}
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetNotLoaded, err)
	}
	return snap, nil
}

// Table returns the cleaned table, loading it on first use
func (s *DatasetService) Table(ctx context.Context) ([]domain.Movie, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Movies, nil
}

// Status reports what is cached and the last load error
func (s *DatasetService) Status() DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var status DatasetStatus
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}
	if s.snapshot == nil {
		return status
	}

	report := s.snapshot.Report
	loadedAt := s.snapshot.LoadedAt
	status.Loaded = true
	status.Movies = len(s.snapshot.Movies)
	status.MoviesFile = s.snapshot.Files.Movies.Path
	status.CreditsFile = s.snapshot.Files.Credits.Path
	status.LoadedAt = &loadedAt
	status.Report = &report
	return status
}

// Run reloads the dataset every ReloadInterval while the source files
// change. It returns when ctx is done. A zero interval disables reloading.
func (s *DatasetService) Run(ctx context.Context) {
	if s.cfg.ReloadInterval <= 0 {
		return
	}

	ticker := time.NewTicker(s.cfg.ReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.sourcesChanged() {
				s.logger.InfoContext(ctx, "dataset files changed, reloading")
				_, _ = s.Load(ctx)
			}
		}
	}
}

// sourcesChanged reports whether the located files differ from the snapshot
func (s *DatasetService) sourcesChanged() bool {
	located, err := s.discovery.LocateDataset(s.cfg)
	if err != nil {
		s.logger.Warn("dataset files not available for reload", slog.String("error", err.Error()))
		return false
	}

	snap, ok := s.Current()
	if !ok {
		return true
	}
	return !sameFile(snap.Files.Movies, located.Movies) || !sameFile(snap.Files.Credits, located.Credits)
}

func sameFile(a, b files.FileInfo) bool {
	return a.Path == b.Path && a.Size == b.Size && a.ModTime.Equal(b.ModTime)
}

// Movies filters, searches, sorts and pages the cleaned table
func (s *DatasetService) Movies(ctx context.Context, q MovieQuery) (MoviePage, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return MoviePage{}, err
	}

	result := dataprocessing.Filter(table, q.Criteria)
	if q.Title != "" {
		result = dataprocessing.SearchTitle(result, q.Title)
	}
	if q.Director != "" {
		result = dataprocessing.DirectorMovies(result, q.Director)
	}
	if q.SortBy != "" {
		result = dataprocessing.TopNBy(result, q.SortBy, len(result), nil)
	}

	page := MoviePage{Total: len(result), Limit: q.Limit, Offset: q.Offset}
	page.Movies = paginate(result, q.Offset, q.Limit)
	return page, nil
}

func paginate(movies []domain.Movie, offset, limit int) []domain.Movie {
	if offset >= len(movies) {
		return []domain.Movie{}
	}
	end := len(movies)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return movies[offset:end]
}

// TopMovies ranks the table by key. minVotes above zero admits only rows
// with at least that many votes; revenue rankings skip rows without revenue.
func (s *DatasetService) TopMovies(ctx context.Context, key dataprocessing.SortKey, n int, minVotes float64) ([]domain.Movie, error) {
	if _, err := dataprocessing.ParseSortKey(string(key)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	var support dataprocessing.Support
	switch {
	case minVotes > 0:
		support = dataprocessing.MinVoteCount(minVotes)
	case key == dataprocessing.SortByRevenue:
		support = dataprocessing.PositiveRevenue
	}
	return dataprocessing.TopNBy(table, key, n, support), nil
}

// LongMovies returns movies of at least threshold minutes, longest first,
// capped at n when n is positive
func (s *DatasetService) LongMovies(ctx context.Context, threshold float64, n int) ([]domain.Movie, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	long := dataprocessing.MoviesWithRuntimeAtLeast(table, threshold)
	if n > 0 && n < len(long) {
		long = long[:n]
	}
	return long, nil
}

// Genres counts movies per genre, most common first
func (s *DatasetService) Genres(ctx context.Context) ([]domain.CategoryCount, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.GenreCounts(table), nil
}

// Decades aggregates the table by release decade
func (s *DatasetService) Decades(ctx context.Context) ([]domain.DecadeStats, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.AggregateByDecade(table), nil
}

// Summary summarizes the table, restricted to criteria when given
func (s *DatasetService) Summary(ctx context.Context, criteria *domain.FilterCriteria) (dataprocessing.DatasetSummary, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return dataprocessing.DatasetSummary{}, err
	}
	if criteria != nil {
		table = dataprocessing.Filter(table, *criteria)
	}
	return s.summarizer.Summarize(ctx, table), nil
}
