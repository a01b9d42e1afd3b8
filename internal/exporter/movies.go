package exporter

import (
	"context"
	"fmt"

	"filminsight/pkg/contracts/domain"
)

// MovieHeaders is the column order of the cleaned movie table export.
var MovieHeaders = []string{
	"movie_id", "title", "release_date", "release_year",
	"runtime", "vote_average", "vote_count", "revenue", "budget", "popularity",
	"overview", "tagline",
	"genre_list", "primary_genre", "genre_count",
	"main_cast", "cast_size", "director", "keywords",
	"profit", "roi", "success_score",
	"rating_category", "runtime_category", "budget_category",
}

// MovieRecord flattens a movie into a CSV row matching MovieHeaders.
func MovieRecord(m domain.Movie) []string {
	return []string{
		m.MovieID,
		m.Title,
		formatDate(m.ReleaseDate),
		formatInt(m.ReleaseYear),
		formatNumber(m.Runtime),
		formatNumber(m.VoteAverage),
		formatNumber(m.VoteCount),
		formatNumber(m.Revenue),
		formatNumber(m.Budget),
		formatNumber(m.Popularity),
		m.Overview,
		m.Tagline,
		formatList(m.GenreList),
		m.PrimaryGenre,
		formatInt(m.GenreCount),
		formatList(m.MainCast),
		formatInt(m.CastSize),
		m.Director,
		formatList(m.Keywords),
		formatNumber(m.Profit),
		formatFloat(m.ROI),
		formatFloat(m.SuccessScore),
		string(m.RatingCategory),
		string(m.RuntimeCategory),
		string(m.BudgetCategory),
	}
}

// DecadeHeaders is the column order of the decade aggregate sheet.
var DecadeHeaders = []string{"Decade", "Movie Count", "Avg Rating", "Avg Runtime", "Total Revenue", "Total Budget"}

// WriteMovies streams the cleaned table to filePath and returns the resolved
// path. Writing stops early when ctx is cancelled.
func (w *CSVWriter) WriteMovies(ctx context.Context, filePath string, movies []domain.Movie, bom bool) (string, error) {
	stream, err := w.CreateStreamWriter(filePath, MovieHeaders, bom)
	if err != nil {
		return "", err
	}

	for i, m := range movies {
		if err := ctx.Err(); err != nil {
			stream.Close()
			return "", err
		}
		if err := stream.WriteRecord(MovieRecord(m)); err != nil {
			stream.Close()
			return "", fmt.Errorf("failed to write movie %d: %w", i, err)
		}
	}

	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", stream.Path(), err)
	}
	return stream.Path(), nil
}
