package http

import (
	"context"

	"filminsight/internal/dataprocessing"
	"filminsight/internal/services"
	"filminsight/pkg/contracts/domain"
)

// MovieServiceInterface defines the dataset operations served over HTTP
type MovieServiceInterface interface {
	Movies(ctx context.Context, q services.MovieQuery) (services.MoviePage, error)
	TopMovies(ctx context.Context, key dataprocessing.SortKey, n int, minVotes float64) ([]domain.Movie, error)
	LongMovies(ctx context.Context, threshold float64, n int) ([]domain.Movie, error)
	Genres(ctx context.Context) ([]domain.CategoryCount, error)
	Decades(ctx context.Context) ([]domain.DecadeStats, error)
	Summary(ctx context.Context, criteria *domain.FilterCriteria) (dataprocessing.DatasetSummary, error)
	Status() services.DatasetStatus
	Load(ctx context.Context) (*services.Snapshot, error)
}
