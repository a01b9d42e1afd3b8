package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"filminsight/internal/config"
	"filminsight/internal/dataprocessing"
	"filminsight/internal/exporter"
	"filminsight/internal/infrastructure"
	"filminsight/internal/validation"
	"filminsight/pkg/contracts/domain"
)

// ExportOptions selects where and what ExportService writes
type ExportOptions struct {
	OutputDir string
	Workbook  bool
	WithBOM   bool
}

// ExportResult lists the files written by one export
type ExportResult struct {
	MoviesCSV  string `json:"movies_csv"`
	DecadesCSV string `json:"decades_csv"`
	Statistics string `json:"statistics"`
	Workbook   string `json:"workbook,omitempty"`
	Movies     int    `json:"movies"`
}

// ExportService writes the cleaned table and its aggregates to disk
type ExportService struct {
	paths      *config.Paths
	csv        *exporter.CSVWriter
	workbook   *exporter.WorkbookWriter
	validator  *validation.FileValidator
	summarizer *dataprocessing.Summarizer
	metrics    *infrastructure.BusinessMetrics
	logger     *slog.Logger
}

// NewExportService creates an export service. An empty output directory
// means paths.ExportsDir; relative ones are resolved beneath it.
func NewExportService(paths *config.Paths, summarizer *dataprocessing.Summarizer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	if summarizer == nil {
		summarizer = dataprocessing.NewSummarizer(logger, dataprocessing.DefaultSummarizerConfig())
	}
	if paths == nil {
		paths = config.NewPaths(".")
	}
	return &ExportService{
		paths:      paths,
		csv:        exporter.NewCSVWriter(paths),
		workbook:   exporter.NewWorkbookWriter(paths, logger),
		validator:  validation.NewFileValidator(logger),
		summarizer: summarizer,
		metrics:    metrics,
		logger:     logger.With(slog.String("component", "export_service")),
	}
}

// Export writes movies_clean.csv, decades.csv and statistics.json, plus
// movies.xlsx when opts.Workbook is set
func (s *ExportService) Export(ctx context.Context, table []domain.Movie, report dataprocessing.ProcessReport, opts ExportOptions) (ExportResult, error) {
	outDir, err := filepath.Abs(s.outputDir(opts.OutputDir))
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to resolve output directory %s: %w", opts.OutputDir, err)
	}
	if err := s.validator.ValidateOutputDirectory(outDir); err != nil {
		return ExportResult{}, err
	}

	s.logger.InfoContext(ctx, "exporting movie table",
		slog.String("output_dir", outDir),
		slog.Int("movies", len(table)),
		slog.Bool("workbook", opts.Workbook))

	result := ExportResult{Movies: len(table)}

	result.MoviesCSV, err = s.csv.WriteMovies(ctx, filepath.Join(outDir, config.CleanedMoviesFile), table, opts.WithBOM)
	if err != nil {
		return result, fmt.Errorf("failed to export cleaned movies: %w", err)
	}
	infrastructure.RecordExport(ctx, s.metrics, "csv")

	summary := s.summarizer.Summarize(ctx, table)

	result.DecadesCSV = filepath.Join(outDir, config.DecadesFile)
	if err := s.summarizer.WriteDecadesCSV(ctx, result.DecadesCSV, summary.Decades); err != nil {
		return result, fmt.Errorf("failed to export decades: %w", err)
	}
	infrastructure.RecordExport(ctx, s.metrics, "csv")

	result.Statistics = filepath.Join(outDir, config.StatisticsFile)
	if err := s.summarizer.WriteJSON(ctx, result.Statistics, summary, report); err != nil {
		return result, fmt.Errorf("failed to export statistics: %w", err)
	}
	infrastructure.RecordExport(ctx, s.metrics, "json")

	if opts.Workbook {
		result.Workbook, err = s.workbook.Write(ctx, filepath.Join(outDir, config.WorkbookFile), exporter.WorkbookData{
			Movies:  table,
			Decades: summary.Decades,
			Genres:  dataprocessing.GenreCounts(table),
		})
		if err != nil {
			return result, fmt.Errorf("failed to export workbook: %w", err)
		}
		infrastructure.RecordExport(ctx, s.metrics, "xlsx")
	}

	s.logger.InfoContext(ctx, "export complete",
		slog.String("movies_csv", result.MoviesCSV),
		slog.String("workbook", result.Workbook))
	return result, nil
}

func (s *ExportService) outputDir(dir string) string {
	switch {
	case dir == "":
		return s.paths.ExportsDir
	case filepath.IsAbs(dir):
		return dir
	default:
		return s.paths.GetExportPath(dir)
	}
}
