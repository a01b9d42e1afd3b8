package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"filminsight/internal/errors"
	"filminsight/internal/shared/testutil"
	"filminsight/pkg/contracts/domain"
)

func newTestPipeline(t *testing.T) (*Pipeline, *testutil.BufferedSlogHandler) {
	logger, handler := testutil.NewTestLogger(t)
	return NewPipeline(logger, WithClock(fixedClock)), handler
}

func TestPipeline_MergeDropsUnmatchedIDs(t *testing.T) {
	p, _ := newTestPipeline(t)
	movies := []domain.RawMovie{
		rawMovie("1", "One", "2001-01-01"),
		rawMovie("2", "Two", "2002-01-01"),
		rawMovie("3", "Three", "2003-01-01"),
	}
	credits := []domain.CreditsRecord{credit("2"), credit("3"), credit("4")}

	table, report := p.ProcessWithReport(context.Background(), movies, credits)

	require.Len(t, table, 2)
	assert.Equal(t, []string{"2", "3"}, []string{table[0].MovieID, table[1].MovieID})
	assert.Equal(t, 3, report.MoviesIn)
	assert.Equal(t, 3, report.CreditsIn)
	assert.Equal(t, 2, report.Merged)
	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, 1, report.Excluded[ReasonUnmatched])
	assert.Equal(t, 1, report.TotalExcluded())
}

func TestPipeline_ExclusionReasons(t *testing.T) {
	p, handler := newTestPipeline(t)

	future := rawMovie("10", "Future", "2031-05-01")
	short := rawMovie("11", "Short", "2001-05-01")
	short.Runtime = domain.NewCell("4")
	missingRuntime := rawMovie("12", "Missing Runtime", "2001-05-01")
	missingRuntime.Runtime = domain.MissingCell()
	untitled := rawMovie("13", "", "2001-05-01")
	untitled.Title = domain.MissingCell()
	undated := rawMovie("14", "Undated", "")
	undated.ReleaseDate = domain.MissingCell()
	good := rawMovie("15", "Good", "2001-05-01")

	movies := []domain.RawMovie{future, short, missingRuntime, untitled, undated, good}
	credits := []domain.CreditsRecord{credit("10"), credit("11"), credit("12"), credit("13"), credit("14"), credit("15")}

	table, report := p.ProcessWithReport(context.Background(), movies, credits)

	require.Len(t, table, 1)
	assert.Equal(t, "Good", table[0].Title)
	assert.Equal(t, map[ExclusionReason]int{
		ReasonYearOutOfRange:     1,
		ReasonRuntimeOutOfRange:  2,
		ReasonMissingTitle:       1,
		ReasonInvalidReleaseDate: 1,
	}, report.Excluded)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "movie dataset processed")
	testutil.AssertLogAttr(t, handler, "kept", int64(1))
	testutil.AssertLogAttr(t, handler, "excluded_runtime_out_of_range", int64(2))
	testutil.AssertLogAttr(t, handler, "component", "pipeline")
}

func TestPipeline_CleanedRowInvariants(t *testing.T) {
	movies, credits := testutil.SampleDataset(t)
	movies = append(movies,
		testutil.MovieRow{ID: "1", Title: "Broken Lists", ReleaseDate: "1988-07-15", Runtime: "132", VoteAverage: "7.5", Genres: "[{", Keywords: "oops"},
		testutil.MovieRow{ID: "2", Title: "Silent Era", ReleaseDate: "1899-01-01", Runtime: "20", VoteAverage: "6"},
		testutil.MovieRow{ID: "3", Title: "Overlong", ReleaseDate: "2004-01-01", Runtime: "700", VoteAverage: "6"},
	)
	credits = append(credits,
		testutil.CreditRow{MovieID: "1", Title: "Broken Lists", Cast: "not json", Crew: "[42]"},
		testutil.CreditRow{MovieID: "2", Title: "Silent Era"},
		testutil.CreditRow{MovieID: "3", Title: "Overlong"},
	)
	moviesPath, creditsPath := testutil.WriteDataset(t, t.TempDir(), movies, credits)

	p, _ := newTestPipeline(t)
	table, report, err := p.LoadAndProcess(context.Background(), moviesPath, creditsPath)
	require.NoError(t, err)
	require.Len(t, table, 4)
	assert.Equal(t, 2, report.TotalExcluded())

	for _, m := range table {
		assert.NotEmpty(t, m.Title)
		assert.GreaterOrEqual(t, m.ReleaseYear, MinReleaseYear)
		assert.LessOrEqual(t, m.ReleaseYear, fixedNow.Year())
		assert.GreaterOrEqual(t, m.Runtime, MinRuntime)
		assert.LessOrEqual(t, m.Runtime, MaxRuntime)
		assert.GreaterOrEqual(t, m.VoteAverage, MinVoteAverage)
		assert.LessOrEqual(t, m.VoteAverage, MaxVoteAverage)
		assert.NotNil(t, m.GenreList)
		assert.NotNil(t, m.MainCast)
		assert.Equal(t, len(m.GenreList), m.GenreCount)
		assert.Equal(t, len(m.MainCast), m.CastSize)
		assert.LessOrEqual(t, m.CastSize, MainCastSize)
		if m.GenreCount > 0 {
			assert.Equal(t, m.GenreList[0], m.PrimaryGenre)
		} else {
			assert.Equal(t, domain.UnknownGenre, m.PrimaryGenre)
		}
		if m.Budget > 0 {
			assert.InDelta(t, m.Profit/m.Budget*100, m.ROI, 1e-9)
		} else {
			assert.Zero(t, m.ROI)
		}
	}

	avatar := table[0]
	assert.Equal(t, "Avatar", avatar.Title)
	assert.Equal(t, "19995", avatar.MovieID)
	assert.Equal(t, "James Cameron", avatar.Director)
	assert.Equal(t, []string{"Sam Worthington", "Zoe Saldana", "Sigourney Weaver", "Stephen Lang", "Michelle Rodriguez"}, avatar.MainCast)
	assert.Equal(t, "Action", avatar.PrimaryGenre)
	assert.Equal(t, []string{"culture clash", "future"}, avatar.Keywords)
	assert.Equal(t, domain.BudgetBlockbuster, avatar.BudgetCategory)

	broken := table[3]
	assert.Equal(t, "Broken Lists", broken.Title)
	assert.Equal(t, []string{}, broken.GenreList)
	assert.Equal(t, domain.UnknownGenre, broken.PrimaryGenre)
	assert.Equal(t, []string{}, broken.MainCast)
	assert.Equal(t, domain.UnknownDirector, broken.Director)
	assert.Zero(t, broken.Budget)
	assert.Equal(t, "", broken.Overview)
}

func TestPipeline_ThreeOverlappingIDs(t *testing.T) {
	movies := []testutil.MovieRow{
		{ID: "1", Title: "Kept", ReleaseDate: "2001-03-04", Runtime: "110", VoteAverage: "7", Genres: testutil.GenresJSON(t, "Drama")},
		{ID: "2", Title: "Too Long", ReleaseDate: "2002-03-04", Runtime: "600", VoteAverage: "7", Genres: testutil.GenresJSON(t, "Drama")},
		{ID: "3", Title: "Malformed Genres", ReleaseDate: "2003-03-04", Runtime: "95", VoteAverage: "6", Genres: `[{"id": 18, "name": "Drama"`},
	}
	credits := []testutil.CreditRow{
		{MovieID: "1", Title: "Kept"},
		{MovieID: "2", Title: "Too Long"},
		{MovieID: "3", Title: "Malformed Genres"},
	}
	moviesPath, creditsPath := testutil.WriteDataset(t, t.TempDir(), movies, credits)

	p, _ := newTestPipeline(t)
	table, report, err := p.LoadAndProcess(context.Background(), moviesPath, creditsPath)
	require.NoError(t, err)

	require.Len(t, table, 2)
	assert.Equal(t, []string{"Kept", "Malformed Genres"}, titles(table))
	assert.Equal(t, 1, report.Excluded[ReasonRuntimeOutOfRange])

	malformed := table[1]
	assert.Equal(t, []string{}, malformed.GenreList)
	assert.Equal(t, domain.UnknownGenre, malformed.PrimaryGenre)
	for _, m := range table {
		assert.LessOrEqual(t, m.Runtime, MaxRuntime)
	}
}

func TestPipeline_HeaderOnlySources(t *testing.T) {
	moviesPath, creditsPath := testutil.WriteDataset(t, t.TempDir(), nil, nil)

	p, _ := newTestPipeline(t)
	table, report, err := p.LoadAndProcess(context.Background(), moviesPath, creditsPath)
	require.NoError(t, err)
	assert.NotNil(t, table)
	assert.Empty(t, table)
	assert.Zero(t, report.MoviesIn)
	assert.Zero(t, report.TotalExcluded())
}

func TestPipeline_DecadesFromSample(t *testing.T) {
	movies, credits := testutil.SampleDataset(t)
	moviesPath, creditsPath := testutil.WriteDataset(t, t.TempDir(), movies, credits)

	p, _ := newTestPipeline(t)
	table, _, err := p.LoadAndProcess(context.Background(), moviesPath, creditsPath)
	require.NoError(t, err)

	decades := AggregateByDecade(table)
	require.Len(t, decades, 2)
	assert.Equal(t, 1990, decades[0].Decade)
	assert.Equal(t, 2, decades[0].MovieCount)
	assert.Equal(t, 2000, decades[1].Decade)
	assert.Equal(t, 1, decades[1].MovieCount)
}

func TestPipeline_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	movies, credits := testutil.SampleDataset(t)
	moviesPath, creditsPath := testutil.WriteDataset(t, dir, movies, credits)

	p, handler := newTestPipeline(t)

	table, _, err := p.LoadAndProcess(context.Background(), filepath.Join(dir, "nope.csv"), creditsPath)
	require.Error(t, err)
	assert.Nil(t, table)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
	testutil.AssertLogContains(t, handler, slog.LevelError, "failed to load movies")

	table, _, err = p.LoadAndProcess(context.Background(), moviesPath, filepath.Join(dir, "nope.csv"))
	require.Error(t, err)
	assert.Nil(t, table)
	testutil.AssertLogContains(t, handler, slog.LevelError, "failed to load credits")
}

func TestProcess_DefaultPipeline(t *testing.T) {
	table := Process([]domain.RawMovie{rawMovie("5", "Five", "2005-05-05")}, []domain.CreditsRecord{credit("5")})
	require.Len(t, table, 1)
	assert.Equal(t, "Director 5", table[0].Director)
	assert.Equal(t, []string{"Lead 5"}, table[0].MainCast)
	assert.Equal(t, domain.RuntimeMedium, table[0].RuntimeCategory)
}

func TestProcess_EmptyInput(t *testing.T) {
	p, _ := newTestPipeline(t)
	table, report := p.ProcessWithReport(context.Background(), nil, nil)
	assert.NotNil(t, table)
	assert.Empty(t, table)
	assert.Zero(t, report.TotalExcluded())
}

func TestCleanedTable_ConcurrentReads(t *testing.T) {
	movies, credits := testutil.SampleDataset(t)
	moviesPath, creditsPath := testutil.WriteDataset(t, t.TempDir(), movies, credits)

	p, _ := newTestPipeline(t)
	table, _, err := p.LoadAndProcess(context.Background(), moviesPath, creditsPath)
	require.NoError(t, err)
	before := titles(table)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			TopNBy(table, SortByRevenue, 2, PositiveRevenue)
			MoviesWithRuntimeAtLeast(table, 150)
			AggregateByDecade(table)
			Statistics(table)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, before, titles(table))
}
