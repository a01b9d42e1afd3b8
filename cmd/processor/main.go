package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"filminsight/internal/config"
	"filminsight/internal/dataprocessing"
	"filminsight/internal/infrastructure"
	"filminsight/internal/services"
)

// options holds the command line flags. Empty values keep the configured ones.
type options struct {
	moviesFile  string
	creditsFile string
	dataDir     string
	outDir      string
	workbook    bool
	withBOM     bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run cleans the dataset and writes the exports. It returns the process exit
// code: 0 on success, 1 on a load or export error, 2 on bad flags.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = config.Default()
	}

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	applyOptions(cfg, opts)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "processor")
	ctx = infrastructure.EnsureTraceID(ctx)

	baseDir, err := os.Getwd()
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve working directory", slog.String("error", err.Error()))
		return 1
	}
	paths := cfg.ResolvePaths(baseDir)

	providers, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to initialize OpenTelemetry", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.WarnContext(ctx, "telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.InfoContext(ctx, "starting movie dataset processing",
		slog.String("data_dir", paths.DataDir),
		slog.String("movies_file", cfg.Dataset.MoviesFile),
		slog.String("credits_file", cfg.Dataset.CreditsFile),
		slog.String("output_dir", paths.ExportsDir),
		slog.Bool("workbook", cfg.Export.Workbook))

	dataset := services.NewDatasetService(cfg.Dataset, baseDir, logger)
	snap, err := dataset.Load(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load movie dataset", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	exports := services.NewExportService(paths, nil, nil, logger)
	result, err := exports.Export(ctx, snap.Movies, snap.Report, services.ExportOptions{
		OutputDir: paths.ExportsDir,
		Workbook:  cfg.Export.Workbook,
		WithBOM:   cfg.Export.WithBOM,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to write exports", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	printSummary(stdout, snap, result)
	return 0
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("processor", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.moviesFile, "movies", "", "path to the movies CSV (overrides discovery)")
	fs.StringVar(&opts.creditsFile, "credits", "", "path to the credits CSV (overrides discovery)")
	fs.StringVar(&opts.dataDir, "data", "", "directory searched for tmdb_5000_*.csv (defaults to data)")
	fs.StringVar(&opts.outDir, "out", "", "output directory for exports (defaults to data/exports)")
	fs.BoolVar(&opts.workbook, "xlsx", cfg.Export.Workbook, "also write movies.xlsx")
	fs.BoolVar(&opts.withBOM, "bom", cfg.Export.WithBOM, "prefix CSV exports with a UTF-8 BOM")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func applyOptions(cfg *config.Config, opts options) {
	if opts.moviesFile != "" {
		cfg.Dataset.MoviesFile = opts.moviesFile
	}
	if opts.creditsFile != "" {
		cfg.Dataset.CreditsFile = opts.creditsFile
	}
	if opts.dataDir != "" {
		cfg.Dataset.DataDir = opts.dataDir
	}
	if opts.outDir != "" {
		cfg.Export.OutputDir = opts.outDir
	}
	cfg.Export.Workbook = opts.workbook
	cfg.Export.WithBOM = opts.withBOM
}

func printSummary(w io.Writer, snap *services.Snapshot, result services.ExportResult) {
	report := snap.Report
	fmt.Fprintf(w, "Movies in:      %d\n", report.MoviesIn)
	fmt.Fprintf(w, "Credits in:     %d\n", report.CreditsIn)
	fmt.Fprintf(w, "Merged rows:    %d\n", report.Merged)
	fmt.Fprintf(w, "Kept rows:      %d\n", report.Kept)
	reasons := make([]string, 0, len(report.Excluded))
	for reason := range report.Excluded {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(w, "  excluded (%s): %d\n", reason, report.Excluded[dataprocessing.ExclusionReason(reason)])
	}
	fmt.Fprintf(w, "Wrote %s\n", filepath.Base(result.MoviesCSV))
	fmt.Fprintf(w, "Wrote %s\n", filepath.Base(result.DecadesCSV))
	fmt.Fprintf(w, "Wrote %s\n", filepath.Base(result.Statistics))
	if result.Workbook != "" {
		fmt.Fprintf(w, "Wrote %s\n", filepath.Base(result.Workbook))
	}
	fmt.Fprintf(w, "Output directory: %s\n", filepath.Dir(result.MoviesCSV))
}
