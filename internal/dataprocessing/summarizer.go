package dataprocessing

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"filminsight/internal/errors"
	"filminsight/pkg/contracts/domain"
)

// SummaryFormat tags the JSON layout written by Summarizer.WriteJSON.
const SummaryFormat = "movie_summary_v1"

// Summarizer builds the dataset-level summary shown on the dashboard and
// writes it to disk for the batch processor.
type Summarizer struct {
	logger   *slog.Logger
	topLimit int
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	TopLimit int // rows per ranking in the summary
}

// DatasetSummary is everything the overview page needs in one value.
type DatasetSummary struct {
	Statistics         domain.DatasetStatistics `json:"statistics"`
	Success            domain.SuccessMetrics    `json:"success"`
	RatingDistribution []domain.CategoryCount   `json:"rating_distribution"`
	Decades            []domain.DecadeStats     `json:"decades"`
	Genres             []string                 `json:"genres"`
	TopRated           []domain.Movie           `json:"top_rated"`
	TopGrossing        []domain.Movie           `json:"top_grossing"`
	Longest            []domain.Movie           `json:"longest"`
}

// DefaultSummarizerConfig returns the dashboard defaults.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{TopLimit: 10}
}

// NewSummarizer creates a summarizer. A nil logger falls back to slog.Default.
func NewSummarizer(logger *slog.Logger, config SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if config.TopLimit <= 0 {
		config.TopLimit = DefaultSummarizerConfig().TopLimit
	}
	return &Summarizer{
		logger:   logger.With(slog.String("component", "summarizer")),
		topLimit: config.TopLimit,
	}
}

// Summarize computes the summary of table.
func (s *Summarizer) Summarize(ctx context.Context, table []domain.Movie) DatasetSummary {
	s.logger.DebugContext(ctx, "summarizing movie table", slog.Int("rows", len(table)))

	return DatasetSummary{
		Statistics:         Statistics(table),
		Success:            SuccessMetrics(table),
		RatingDistribution: RatingDistribution(table),
		Decades:            AggregateByDecade(table),
		Genres:             AllGenres(table),
		TopRated:           TopRated(table, s.topLimit),
		TopGrossing:        TopGrossing(table, s.topLimit),
		Longest:            Longest(table, s.topLimit),
	}
}

// WriteDecadesCSV writes the decade breakdown with one row per decade.
func (s *Summarizer) WriteDecadesCSV(ctx context.Context, path string, decades []domain.DecadeStats) error {
	s.logger.InfoContext(ctx, "writing decade analysis to CSV",
		slog.String("path", path),
		slog.Int("decade_count", len(decades)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create CSV file for decade analysis", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{"Decade", "Movie Count", "Avg Rating", "Avg Runtime", "Total Revenue", "Total Budget"}
	if err := writer.Write(header); err != nil {
		return errors.NewStorageError("failed to write CSV header row", err)
	}

	for _, d := range decades {
		row := []string{
			strconv.Itoa(d.Decade),
			strconv.Itoa(d.MovieCount),
			strconv.FormatFloat(d.AvgRating, 'f', 2, 64),
			strconv.FormatFloat(d.AvgRuntime, 'f', 2, 64),
			strconv.FormatFloat(d.TotalRevenue, 'f', 2, 64),
			strconv.FormatFloat(d.TotalBudget, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return errors.NewStorageError("failed to write CSV data row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV writer", err)
	}

	s.logger.InfoContext(ctx, "successfully wrote decade analysis to CSV", slog.String("path", path))
	return nil
}

// WriteJSON writes the summary with generation metadata.
func (s *Summarizer) WriteJSON(ctx context.Context, path string, summary DatasetSummary, report ProcessReport) error {
	s.logger.InfoContext(ctx, "writing dataset summary to JSON", slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for JSON output", err)
	}

	payload := map[string]interface{}{
		"summary":      summary,
		"report":       report,
		"generated_at": time.Now().Format(time.RFC3339),
		"format":       SummaryFormat,
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create JSON file for dataset summary", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return errors.NewStorageError("failed to encode dataset summary to JSON", err)
	}

	s.logger.InfoContext(ctx, "successfully wrote dataset summary to JSON", slog.String("path", path))
	return nil
}
