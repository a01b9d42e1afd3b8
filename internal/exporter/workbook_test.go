package exporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"filminsight/internal/config"
	"filminsight/internal/shared/testutil"
	"filminsight/pkg/contracts/domain"
)

func TestWorkbookWriter_Write(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	paths := config.NewPaths(t.TempDir())
	w := NewWorkbookWriter(paths, logger)

	data := WorkbookData{
		Movies: []domain.Movie{exportMovie()},
		Decades: []domain.DecadeStats{
			{Decade: 1990, MovieCount: 2, AvgRating: 8.1, AvgRuntime: 137.5, TotalRevenue: 564371136, TotalBudget: 126000000},
			{Decade: 2000, MovieCount: 1, AvgRating: 7.2, AvgRuntime: 162, TotalRevenue: 2787965087, TotalBudget: 237000000},
		},
		Genres: []domain.CategoryCount{{Category: "Drama", Count: 3}, {Category: "Action", Count: 1}},
	}

	path, err := w.Write(context.Background(), config.WorkbookFile, data)
	require.NoError(t, err)
	assert.Equal(t, paths.GetExportPath(config.WorkbookFile), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{MoviesSheet, DecadesSheet, GenresSheet}, f.GetSheetList())

	movieRows, err := f.GetRows(MoviesSheet)
	require.NoError(t, err)
	require.Len(t, movieRows, 2)
	assert.Equal(t, MovieHeaders, movieRows[0])
	assert.Equal(t, "19995", movieRows[1][0])
	assert.Equal(t, "Avatar", movieRows[1][1])
	assert.Equal(t, "James Cameron", movieRows[1][17])

	decadeRows, err := f.GetRows(DecadesSheet)
	require.NoError(t, err)
	require.Len(t, decadeRows, 3)
	assert.Equal(t, DecadeHeaders, decadeRows[0])
	assert.Equal(t, []string{"1990", "2"}, decadeRows[1][:2])

	genreRows, err := f.GetRows(GenresSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Genre", "Movie Count"}, {"Drama", "3"}, {"Action", "1"}}, genreRows)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "workbook written")
	testutil.AssertLogAttr(t, handler, "component", "workbook_writer")
}

func TestWorkbookWriter_EmptyTable(t *testing.T) {
	w := NewWorkbookWriter(nil, nil)
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	got, err := w.Write(context.Background(), path, WorkbookData{})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(MoviesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWorkbookWriter_UnwritablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, err := NewWorkbookWriter(nil, nil).Write(context.Background(), filepath.Join(blocker, "out.xlsx"), WorkbookData{})
	assert.Error(t, err)
}
