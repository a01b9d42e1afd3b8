package domain

import (
	"time"
)

// Sentinel labels used when a derived text value cannot be determined.
const (
	UnknownGenre    = "Unknown"
	UnknownDirector = "Unknown"
	UnknownCategory = "Unknown"
)

// Cell is one raw CSV value. Present is false when the source had no value
// at all (empty cell or an NA marker), which is different from a value that
// merely fails to parse.
type Cell struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// NewCell returns a present cell holding value.
func NewCell(value string) Cell {
	return Cell{Value: value, Present: true}
}

// MissingCell returns a cell with no value.
func MissingCell() Cell {
	return Cell{}
}

// Optional is an explicit maybe-value used while normalizing fields.
// It never appears on a cleaned Movie.
type Optional[T any] struct {
	value T
	valid bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// None returns an empty optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Valid reports whether a value is present.
func (o Optional[T]) Valid() bool {
	return o.valid
}

// OrElse returns the value, or fallback when empty.
func (o Optional[T]) OrElse(fallback T) T {
	if o.valid {
		return o.value
	}
	return fallback
}

// RawMovie is one row of the movie metadata source before any processing.
// Nested fields (Genres, Keywords) hold serialized lists of objects.
type RawMovie struct {
	ID          Cell
	Title       Cell
	ReleaseDate Cell
	Runtime     Cell
	VoteAverage Cell
	VoteCount   Cell
	Revenue     Cell
	Budget      Cell
	Popularity  Cell
	Overview    Cell
	Tagline     Cell
	Genres      Cell
	Keywords    Cell
}

// CreditsRecord is one row of the credits source.
type CreditsRecord struct {
	MovieID Cell
	Title   Cell
	Cast    Cell
	Crew    Cell
}

// MergedRecord is a movie row joined with its credits row. The join key is
// collapsed into MovieID and the movie source's title is kept.
type MergedRecord struct {
	MovieID string
	Movie   RawMovie
	Cast    Cell
	Crew    Cell
}

// Movie is a fully normalized, enriched and validated film record.
// Values are never mutated once the pipeline returns them.
type Movie struct {
	MovieID     string    `json:"movie_id"`
	Title       string    `json:"title"`
	ReleaseDate time.Time `json:"release_date"`
	ReleaseYear int       `json:"release_year"`

	Runtime     float64 `json:"runtime"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   float64 `json:"vote_count"`
	Revenue     float64 `json:"revenue"`
	Budget      float64 `json:"budget"`
	Popularity  float64 `json:"popularity"`

	Overview string `json:"overview"`
	Tagline  string `json:"tagline"`

	GenreList    []string `json:"genre_list"`
	PrimaryGenre string   `json:"primary_genre"`
	GenreCount   int      `json:"genre_count"`
	MainCast     []string `json:"main_cast"`
	CastSize     int      `json:"cast_size"`
	Director     string   `json:"director"`
	Keywords     []string `json:"keywords"`

	Profit          float64         `json:"profit"`
	ROI             float64         `json:"roi"`
	SuccessScore    float64         `json:"success_score"`
	RatingCategory  RatingCategory  `json:"rating_category"`
	RuntimeCategory RuntimeCategory `json:"runtime_category"`
	BudgetCategory  BudgetCategory  `json:"budget_category"`
}

// HasGenre reports whether the movie is tagged with genre.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.GenreList {
		if g == genre {
			return true
		}
	}
	return false
}

// Decade returns the decade the movie was released in, e.g. 1990.
func (m Movie) Decade() int {
	return (m.ReleaseYear / 10) * 10
}

// RatingCategory buckets vote_average.
type RatingCategory string

const (
	RatingPoor      RatingCategory = "Poor"
	RatingAverage   RatingCategory = "Average"
	RatingGood      RatingCategory = "Good"
	RatingExcellent RatingCategory = "Excellent"
	RatingUnknown   RatingCategory = UnknownCategory
)

// RatingCategories lists rating buckets from lowest to highest.
var RatingCategories = []RatingCategory{RatingPoor, RatingAverage, RatingGood, RatingExcellent}

// RuntimeCategory buckets runtime in minutes.
type RuntimeCategory string

const (
	RuntimeShort   RuntimeCategory = "Short"
	RuntimeMedium  RuntimeCategory = "Medium"
	RuntimeLong    RuntimeCategory = "Long"
	RuntimeEpic    RuntimeCategory = "Epic"
	RuntimeUnknown RuntimeCategory = UnknownCategory
)

// BudgetCategory buckets budget in dollars.
type BudgetCategory string

const (
	BudgetLow         BudgetCategory = "Low"
	BudgetMedium      BudgetCategory = "Medium"
	BudgetHigh        BudgetCategory = "High"
	BudgetBlockbuster BudgetCategory = "Blockbuster"
	BudgetUnknown     BudgetCategory = UnknownCategory
)
