package domain

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterCriteria mirrors the dashboard sidebar: three inclusive ranges and
// an optional genre selection. An empty Genres slice selects every genre.
type FilterCriteria struct {
	YearRange    Range    `json:"year_range"`
	RatingRange  Range    `json:"rating_range"`
	RuntimeRange Range    `json:"runtime_range"`
	Genres       []string `json:"genres,omitempty"`
}

// DecadeStats aggregates movies released in one decade.
type DecadeStats struct {
	Decade       int     `json:"decade" csv:"Decade"`
	MovieCount   int     `json:"movie_count" csv:"Movie Count"`
	AvgRating    float64 `json:"avg_rating" csv:"Avg Rating"`
	AvgRuntime   float64 `json:"avg_runtime" csv:"Avg Runtime"`
	TotalRevenue float64 `json:"total_revenue" csv:"Total Revenue"`
	TotalBudget  float64 `json:"total_budget" csv:"Total Budget"`
}

// DatasetStatistics summarizes a (possibly filtered) table.
type DatasetStatistics struct {
	TotalMovies  int     `json:"total_movies"`
	AvgRating    float64 `json:"avg_rating"`
	AvgRuntime   float64 `json:"avg_runtime"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalBudget  float64 `json:"total_budget"`
	MinYear      int     `json:"min_year"`
	MaxYear      int     `json:"max_year"`
	TopGenre     string  `json:"top_genre"`
	AvgVotes     float64 `json:"avg_votes"`
}

// SuccessMetrics describes commercial and critical success ratios.
// Percentages are in the 0-100 range.
type SuccessMetrics struct {
	ProfitabilityRate     float64 `json:"profitability_rate"`
	AvgProfit             float64 `json:"avg_profit"`
	AvgROI                float64 `json:"avg_roi"`
	HighRatedPercentage   float64 `json:"high_rated_percentage"`
	BlockbusterPercentage float64 `json:"blockbuster_percentage"`
}

// CategoryCount pairs a category label with its number of movies.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
