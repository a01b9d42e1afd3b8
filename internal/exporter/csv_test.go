package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filminsight/internal/config"
	"filminsight/pkg/contracts/domain"
)

func setupTestEnv(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(t.TempDir())
	return NewCSVWriter(paths), paths
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestNewCSVWriter(t *testing.T) {
	paths := &config.Paths{}
	writer := NewCSVWriter(paths)

	assert.NotNil(t, writer)
	assert.Equal(t, paths, writer.paths)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		validate func(t *testing.T, content []byte)
	}{
		{
			name:     "basic write with headers",
			filePath: "basic.csv",
			options: WriteOptions{
				Headers: []string{"title", "year"},
				Records: [][]string{{"Avatar", "2009"}, {"Titanic", "1997"}},
			},
			validate: func(t *testing.T, content []byte) {
				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Equal(t, []string{"title,year", "Avatar,2009", "Titanic,1997"}, lines)
			},
		},
		{
			name:     "write with BOM prefix",
			filePath: "bom.csv",
			options: WriteOptions{
				Headers:   []string{"title"},
				Records:   [][]string{{"Amélie"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, content []byte) {
				assert.True(t, bytes.HasPrefix(content, utf8BOM))
				assert.Equal(t, "title\nAmélie\n", string(content[len(utf8BOM):]))
			},
		},
		{
			name:     "quotes fields with separators",
			filePath: "quoted.csv",
			options: WriteOptions{
				Headers: []string{"title", "tagline"},
				Records: [][]string{{"Se7en", "Seven deadly sins, seven ways to die"}},
			},
			validate: func(t *testing.T, content []byte) {
				assert.Contains(t, string(content), `"Seven deadly sins, seven ways to die"`)
			},
		},
		{
			name:     "empty records",
			filePath: "empty.csv",
			options:  WriteOptions{Headers: []string{"a", "b"}, Records: [][]string{}},
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "a,b\n", string(content))
			},
		},
		{
			name:     "nested relative path",
			filePath: filepath.Join("runs", "2026", "nested.csv"),
			options:  WriteOptions{Records: [][]string{{"x"}}},
			validate: func(t *testing.T, content []byte) {
				assert.Equal(t, "x\n", string(content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, paths := setupTestEnv(t)
			require.NoError(t, writer.WriteCSV(tt.filePath, tt.options))

			content, err := os.ReadFile(paths.GetExportPath(tt.filePath))
			require.NoError(t, err)
			tt.validate(t, content)
		})
	}
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	writer, _ := setupTestEnv(t)
	target := filepath.Join(t.TempDir(), "abs.csv")

	require.NoError(t, writer.WriteCSV(target, WriteOptions{Records: [][]string{{"ok"}}}))
	assert.FileExists(t, target)
}

func TestCSVWriter_WriteErrors(t *testing.T) {
	writer, paths := setupTestEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(paths.ExportsDir), 0755))
	require.NoError(t, os.WriteFile(paths.ExportsDir, []byte("not a dir"), 0644))

	err := writer.WriteCSV("blocked.csv", WriteOptions{Records: [][]string{{"x"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")

	_, err = writer.CreateStreamWriter("blocked.csv", nil, false)
	require.Error(t, err)
}

func TestStreamWriter(t *testing.T) {
	writer, paths := setupTestEnv(t)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"id", "title"}, true)
	require.NoError(t, err)
	assert.Equal(t, paths.GetExportPath("stream.csv"), stream.Path())

	for _, rec := range [][]string{{"19995", "Avatar"}, {"597", "Titanic"}, {"680", "Pulp Fiction"}} {
		require.NoError(t, stream.WriteRecord(rec))
	}
	assert.Equal(t, 3, stream.Rows())
	require.NoError(t, stream.Close())

	rows := readCSV(t, stream.Path())
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"680", "Pulp Fiction"}, rows[3])
}

func exportMovie() domain.Movie {
	return domain.Movie{
		MovieID:         "19995",
		Title:           "Avatar",
		ReleaseDate:     time.Date(2009, 12, 10, 0, 0, 0, 0, time.UTC),
		ReleaseYear:     2009,
		Runtime:         162,
		VoteAverage:     7.2,
		VoteCount:       11800,
		Revenue:         2787965087,
		Budget:          237000000,
		Popularity:      150.437577,
		Overview:        "In the 22nd century, a paraplegic Marine is dispatched to the moon Pandora.",
		Tagline:         "Enter the World of Pandora.",
		GenreList:       []string{"Action", "Adventure"},
		PrimaryGenre:    "Action",
		GenreCount:      2,
		MainCast:        []string{"Sam Worthington", "Zoe Saldana"},
		CastSize:        2,
		Director:        "James Cameron",
		Keywords:        []string{"culture clash", "future"},
		Profit:          2550965087,
		ROI:             1076.3565,
		SuccessScore:    8.55,
		RatingCategory:  domain.RatingGood,
		RuntimeCategory: domain.RuntimeLong,
		BudgetCategory:  domain.BudgetBlockbuster,
	}
}

func TestMovieRecord(t *testing.T) {
	record := MovieRecord(exportMovie())
	require.Len(t, record, len(MovieHeaders))

	byHeader := make(map[string]string, len(record))
	for i, h := range MovieHeaders {
		byHeader[h] = record[i]
	}

	assert.Equal(t, "19995", byHeader["movie_id"])
	assert.Equal(t, "2009-12-10", byHeader["release_date"])
	assert.Equal(t, "2009", byHeader["release_year"])
	assert.Equal(t, "7.2", byHeader["vote_average"])
	assert.Equal(t, "2787965087", byHeader["revenue"])
	assert.Equal(t, "Action|Adventure", byHeader["genre_list"])
	assert.Equal(t, "Sam Worthington|Zoe Saldana", byHeader["main_cast"])
	assert.Equal(t, "1076.36", byHeader["roi"])
	assert.Equal(t, "Good", byHeader["rating_category"])
	assert.Equal(t, "Blockbuster", byHeader["budget_category"])
}

func TestCSVWriter_WriteMovies(t *testing.T) {
	writer, paths := setupTestEnv(t)
	movies := []domain.Movie{exportMovie(), exportMovie()}
	movies[1].MovieID, movies[1].Title, movies[1].GenreList = "597", "Titanic", []string{}

	path, err := writer.WriteMovies(context.Background(), config.CleanedMoviesFile, movies, false)
	require.NoError(t, err)
	assert.Equal(t, paths.GetExportPath(config.CleanedMoviesFile), path)

	rows := readCSV(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, MovieHeaders, rows[0])
	assert.Equal(t, "Avatar", rows[1][1])
	assert.Equal(t, "Titanic", rows[2][1])
	assert.Equal(t, "", rows[2][12])
}

func TestCSVWriter_WriteMoviesCancelled(t *testing.T) {
	writer, _ := setupTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := writer.WriteMovies(ctx, "cancelled.csv", []domain.Movie{exportMovie()}, false)
	assert.ErrorIs(t, err, context.Canceled)
}
