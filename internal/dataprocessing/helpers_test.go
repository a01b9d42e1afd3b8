package dataprocessing

import (
	"time"

	"filminsight/pkg/contracts/domain"
)

var fixedNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func cells(values map[string]string) domain.RawMovie {
	cell := func(key string) domain.Cell {
		if v, ok := values[key]; ok {
			return domain.NewCell(v)
		}
		return domain.MissingCell()
	}
	return domain.RawMovie{
		ID:          cell(ColID),
		Title:       cell(ColTitle),
		ReleaseDate: cell(ColReleaseDate),
		Runtime:     cell(ColRuntime),
		VoteAverage: cell(ColVoteAverage),
		VoteCount:   cell(ColVoteCount),
		Revenue:     cell(ColRevenue),
		Budget:      cell(ColBudget),
		Popularity:  cell(ColPopularity),
		Overview:    cell(ColOverview),
		Tagline:     cell(ColTagline),
		Genres:      cell(ColGenres),
		Keywords:    cell(ColKeywords),
	}
}

func rawMovie(id, title, date string) domain.RawMovie {
	return cells(map[string]string{
		ColID:          id,
		ColTitle:       title,
		ColReleaseDate: date,
		ColRuntime:     "100",
		ColVoteAverage: "6.5",
		ColVoteCount:   "250",
		ColRevenue:     "1000000",
		ColBudget:      "500000",
		ColPopularity:  "10",
		ColGenres:      `[{"id": 18, "name": "Drama"}]`,
	})
}

func credit(id string) domain.CreditsRecord {
	return domain.CreditsRecord{
		MovieID: domain.NewCell(id),
		Title:   domain.NewCell("credits title " + id),
		Cast:    domain.NewCell(`[{"name": "Lead ` + id + `"}]`),
		Crew:    domain.NewCell(`[{"job": "Director", "name": "Director ` + id + `"}]`),
	}
}

// movie builds a cleaned row for query tests.
func movie(title string, year int, rating, runtime float64, genres ...string) domain.Movie {
	if genres == nil {
		genres = []string{}
	}
	primary := domain.UnknownGenre
	if len(genres) > 0 {
		primary = genres[0]
	}
	return domain.Movie{
		MovieID:        title,
		Title:          title,
		ReleaseDate:    time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		ReleaseYear:    year,
		Runtime:        runtime,
		VoteAverage:    rating,
		GenreList:      genres,
		PrimaryGenre:   primary,
		GenreCount:     len(genres),
		MainCast:       []string{},
		Director:       domain.UnknownDirector,
		Keywords:       []string{},
		RatingCategory: RatingCategory(rating),
	}
}
