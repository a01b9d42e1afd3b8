package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"filminsight/internal/config"
	"filminsight/pkg/contracts/domain"
)

// Sheet names in the exported workbook.
const (
	MoviesSheet  = "Movies"
	DecadesSheet = "Decades"
	GenresSheet  = "Genres"
)

// GenreHeaders is the column order of the genre sheet.
var GenreHeaders = []string{"Genre", "Movie Count"}

// WorkbookData is the content of one exported workbook.
type WorkbookData struct {
	Movies  []domain.Movie
	Decades []domain.DecadeStats
	Genres  []domain.CategoryCount
}

// WorkbookWriter writes the cleaned table and its aggregates as an .xlsx file
type WorkbookWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer. A nil logger falls back to slog.Default.
func NewWorkbookWriter(paths *config.Paths, logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{
		paths:  paths,
		logger: logger.With(slog.String("component", "workbook_writer")),
	}
}

// Write saves data to filePath and returns the resolved path.
func (w *WorkbookWriter) Write(ctx context.Context, filePath string, data WorkbookData) (string, error) {
	fullPath := filePath
	if !filepath.IsAbs(fullPath) && w.paths != nil {
		fullPath = w.paths.GetExportPath(filePath)
	}

	w.logger.InfoContext(ctx, "writing workbook",
		slog.String("path", fullPath),
		slog.Int("movies", len(data.Movies)),
		slog.Int("decades", len(data.Decades)),
		slog.Int("genres", len(data.Genres)))

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", MoviesSheet); err != nil {
		return "", fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := writeMoviesSheet(ctx, f, header, data.Movies); err != nil {
		return "", err
	}

	decadeRows := make([][]interface{}, len(data.Decades))
	for i, d := range data.Decades {
		decadeRows[i] = []interface{}{d.Decade, d.MovieCount, d.AvgRating, d.AvgRuntime, d.TotalRevenue, d.TotalBudget}
	}
	if err := writeSheet(f, DecadesSheet, header, DecadeHeaders, decadeRows); err != nil {
		return "", err
	}

	genreRows := make([][]interface{}, len(data.Genres))
	for i, g := range data.Genres {
		genreRows[i] = []interface{}{g.Category, g.Count}
	}
	if err := writeSheet(f, GenresSheet, header, GenreHeaders, genreRows); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.InfoContext(ctx, "workbook written", slog.String("path", fullPath))
	return fullPath, nil
}

// writeMoviesSheet streams the cleaned table, which can run to thousands of rows.
func writeMoviesSheet(ctx context.Context, f *excelize.File, header int, movies []domain.Movie) error {
	sw, err := f.NewStreamWriter(MoviesSheet)
	if err != nil {
		return fmt.Errorf("failed to open %s sheet: %w", MoviesSheet, err)
	}

	if err := sw.SetPanes(&excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("failed to freeze %s header: %w", MoviesSheet, err)
	}

	headerRow := make([]interface{}, len(MovieHeaders))
	for i, h := range MovieHeaders {
		headerRow[i] = excelize.Cell{StyleID: header, Value: h}
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", MoviesSheet, err)
	}

	for i, m := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, movieCells(m)); err != nil {
			return fmt.Errorf("failed to write movie %d: %w", i, err)
		}
	}

	return sw.Flush()
}

func movieCells(m domain.Movie) []interface{} {
	return []interface{}{
		m.MovieID,
		m.Title,
		formatDate(m.ReleaseDate),
		m.ReleaseYear,
		m.Runtime,
		m.VoteAverage,
		m.VoteCount,
		m.Revenue,
		m.Budget,
		m.Popularity,
		m.Overview,
		m.Tagline,
		formatList(m.GenreList),
		m.PrimaryGenre,
		m.GenreCount,
		formatList(m.MainCast),
		m.CastSize,
		m.Director,
		formatList(m.Keywords),
		m.Profit,
		m.ROI,
		m.SuccessScore,
		string(m.RatingCategory),
		string(m.RuntimeCategory),
		string(m.BudgetCategory),
	}
}

func writeSheet(f *excelize.File, sheet string, header int, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i, err)
		}
	}
	return nil
}
