package dataprocessing

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummarizer(t *testing.T) {
	tests := []struct {
		name      string
		logger    *slog.Logger
		config    SummarizerConfig
		wantLimit int
	}{
		{name: "default config", logger: slog.Default(), config: DefaultSummarizerConfig(), wantLimit: 10},
		{name: "custom limit", logger: slog.Default(), config: SummarizerConfig{TopLimit: 3}, wantLimit: 3},
		{name: "zero limit falls back", logger: slog.Default(), config: SummarizerConfig{}, wantLimit: 10},
		{name: "nil logger uses default", logger: nil, config: DefaultSummarizerConfig(), wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSummarizer(tt.logger, tt.config)
			assert.NotNil(t, s.logger)
			assert.Equal(t, tt.wantLimit, s.topLimit)
		})
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	s := NewSummarizer(nil, SummarizerConfig{TopLimit: 2})
	summary := s.Summarize(context.Background(), sampleTable())

	assert.Equal(t, 5, summary.Statistics.TotalMovies)
	assert.Equal(t, "Drama", summary.Statistics.TopGenre)
	assert.Len(t, summary.Decades, 2)
	assert.Equal(t, []string{"Action", "Adventure", "Drama", "Science Fiction"}, summary.Genres)
	assert.Equal(t, []string{"Fight Club", "The Matrix"}, titles(summary.TopRated))
	assert.Equal(t, []string{"Avatar", "The Matrix"}, titles(summary.TopGrossing))
	assert.Equal(t, []string{"Epic Saga", "Avatar"}, titles(summary.Longest))
	assert.InDelta(t, 60, summary.Success.ProfitabilityRate, 1e-9)
	assert.Len(t, summary.RatingDistribution, 4)
}

func TestSummarizer_WriteDecadesCSV(t *testing.T) {
	ctx := context.Background()
	s := NewSummarizer(nil, DefaultSummarizerConfig())
	path := filepath.Join(t.TempDir(), "reports", "decades.csv")

	require.NoError(t, s.WriteDecadesCSV(ctx, path, AggregateByDecade(sampleTable())))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Decade", "Movie Count", "Avg Rating", "Avg Runtime", "Total Revenue", "Total Budget"}, rows[0])
	assert.Equal(t, []string{"1990", "2", "8.10", "137.50", "564371136.00", "126000000.00"}, rows[1])
	assert.Equal(t, "2000", rows[2][0])
	assert.Equal(t, "3", rows[2][1])
}

func TestSummarizer_WriteJSON(t *testing.T) {
	ctx := context.Background()
	s := NewSummarizer(nil, DefaultSummarizerConfig())
	path := filepath.Join(t.TempDir(), "statistics.json")
	report := ProcessReport{MoviesIn: 7, Kept: 5, Excluded: map[ExclusionReason]int{ReasonUnmatched: 2}}

	require.NoError(t, s.WriteJSON(ctx, path, s.Summarize(ctx, sampleTable()), report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Format  string         `json:"format"`
		Summary DatasetSummary `json:"summary"`
		Report  ProcessReport  `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SummaryFormat, decoded.Format)
	assert.Equal(t, 5, decoded.Summary.Statistics.TotalMovies)
	assert.Equal(t, 2, decoded.Report.Excluded[ReasonUnmatched])
}

func TestSummarizer_WriteToUnwritablePath(t *testing.T) {
	s := NewSummarizer(nil, DefaultSummarizerConfig())
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := s.WriteDecadesCSV(context.Background(), filepath.Join(blocker, "decades.csv"), nil)
	assert.Error(t, err)
}
