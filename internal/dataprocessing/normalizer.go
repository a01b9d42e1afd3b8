package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"filminsight/pkg/contracts/domain"
)

// NormalizedRecord is a merged row with typed scalar fields. Nested fields
// are still serialized and are decoded by the extractor.
type NormalizedRecord struct {
	MovieID     string
	Title       string
	ReleaseDate time.Time
	ReleaseYear int

	Runtime     float64
	VoteAverage float64
	VoteCount   float64
	Revenue     float64
	Budget      float64
	Popularity  float64

	Overview string
	Tagline  string

	Genres   string
	Keywords string
	Cast     string
	Crew     string
}

// releaseDateLayouts are tried in order when parsing release_date.
var releaseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2006-01",
	"2006",
}

// coercedRecord holds the result of type coercion before missing values are
// filled. An empty optional means the source value was absent or unusable.
type coercedRecord struct {
	src         domain.MergedRecord
	releaseDate domain.Optional[time.Time]
	runtime     domain.Optional[float64]
	voteAverage domain.Optional[float64]
	voteCount   domain.Optional[float64]
	revenue     domain.Optional[float64]
	budget      domain.Optional[float64]
	popularity  domain.Optional[float64]
}

// Normalize coerces merged rows into typed records. Unusable numbers become
// 0, missing overview and tagline become "", and rows without a title or a
// parseable release date are dropped.
func Normalize(records []domain.MergedRecord) []NormalizedRecord {
	out, _ := normalize(records)
	return out
}

func normalize(records []domain.MergedRecord) ([]NormalizedRecord, map[ExclusionReason]int) {
	dropped := make(map[ExclusionReason]int)
	out := make([]NormalizedRecord, 0, len(records))

	for _, rec := range records {
		if !rec.Movie.Title.Present {
			dropped[ReasonMissingTitle]++
			continue
		}
		c := coerce(rec)
		if !c.releaseDate.Valid() {
			dropped[ReasonInvalidReleaseDate]++
			continue
		}
		out = append(out, fill(c))
	}
	return out, dropped
}

func coerce(rec domain.MergedRecord) coercedRecord {
	m := rec.Movie
	return coercedRecord{
		src:         rec,
		releaseDate: ParseReleaseDate(m.ReleaseDate),
		runtime:     ParseNumber(m.Runtime),
		voteAverage: ParseNumber(m.VoteAverage),
		voteCount:   ParseNumber(m.VoteCount),
		revenue:     ParseNumber(m.Revenue),
		budget:      ParseNumber(m.Budget),
		popularity:  ParseNumber(m.Popularity),
	}
}

func fill(c coercedRecord) NormalizedRecord {
	m := c.src.Movie
	released, _ := c.releaseDate.Get()
	return NormalizedRecord{
		MovieID:     c.src.MovieID,
		Title:       m.Title.Value,
		ReleaseDate: released,
		ReleaseYear: released.Year(),
		Runtime:     c.runtime.OrElse(0),
		VoteAverage: c.voteAverage.OrElse(0),
		VoteCount:   c.voteCount.OrElse(0),
		Revenue:     c.revenue.OrElse(0),
		Budget:      c.budget.OrElse(0),
		Popularity:  c.popularity.OrElse(0),
		Overview:    textOrEmpty(m.Overview),
		Tagline:     textOrEmpty(m.Tagline),
		Genres:      m.Genres.Value,
		Keywords:    m.Keywords.Value,
		Cast:        c.src.Cast.Value,
		Crew:        c.src.Crew.Value,
	}
}

// ParseNumber coerces a cell to a finite float. Missing, unparseable, NaN and
// infinite values yield an empty optional.
func ParseNumber(c domain.Cell) domain.Optional[float64] {
	if !c.Present {
		return domain.None[float64]()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.None[float64]()
	}
	return domain.Some(f)
}

// ParseReleaseDate parses a release date in any of the accepted layouts.
func ParseReleaseDate(c domain.Cell) domain.Optional[time.Time] {
	if !c.Present {
		return domain.None[time.Time]()
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return domain.None[time.Time]()
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return domain.Some(t)
		}
	}
	return domain.None[time.Time]()
}

func textOrEmpty(c domain.Cell) string {
	if !c.Present {
		return ""
	}
	return c.Value
}
