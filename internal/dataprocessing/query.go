package dataprocessing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"filminsight/pkg/contracts/domain"
)

// Thresholds used by the ranking shortcuts and success metrics.
const (
	TopRatedMinVotes      = 100
	HighRatingThreshold   = 7.0
	BlockbusterBudgetMark = 100_000_000.0
)

// SortKey names a numeric column a table can be ranked by.
type SortKey string

const (
	SortByVoteAverage  SortKey = "vote_average"
	SortByVoteCount    SortKey = "vote_count"
	SortByRuntime      SortKey = "runtime"
	SortByRevenue      SortKey = "revenue"
	SortByBudget       SortKey = "budget"
	SortByPopularity   SortKey = "popularity"
	SortByProfit       SortKey = "profit"
	SortByROI          SortKey = "roi"
	SortBySuccessScore SortKey = "success_score"
)

var sortKeyValues = map[SortKey]func(domain.Movie) float64{
	SortByVoteAverage:  func(m domain.Movie) float64 { return m.VoteAverage },
	SortByVoteCount:    func(m domain.Movie) float64 { return m.VoteCount },
	SortByRuntime:      func(m domain.Movie) float64 { return m.Runtime },
	SortByRevenue:      func(m domain.Movie) float64 { return m.Revenue },
	SortByBudget:       func(m domain.Movie) float64 { return m.Budget },
	SortByPopularity:   func(m domain.Movie) float64 { return m.Popularity },
	SortByProfit:       func(m domain.Movie) float64 { return m.Profit },
	SortByROI:          func(m domain.Movie) float64 { return m.ROI },
	SortBySuccessScore: func(m domain.Movie) float64 { return m.SuccessScore },
}

// ParseSortKey validates a column name.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sortKeyValues[key]; !ok {
		return "", fmt.Errorf("unknown sort column %q", s)
	}
	return key, nil
}

// Support decides whether a row is eligible for ranking.
type Support func(domain.Movie) bool

// MinVoteCount admits rows with at least n votes.
func MinVoteCount(n float64) Support {
	return func(m domain.Movie) bool { return m.VoteCount >= n }
}

// PositiveRevenue admits rows with revenue above zero.
func PositiveRevenue(m domain.Movie) bool {
	return m.Revenue > 0
}

// Filter returns the rows inside every range of c whose genres intersect
// c.Genres. An empty genre selection admits every row.
func Filter(table []domain.Movie, c domain.FilterCriteria) []domain.Movie {
	wanted := make(map[string]struct{}, len(c.Genres))
	for _, g := range c.Genres {
		wanted[g] = struct{}{}
	}

	out := make([]domain.Movie, 0)
	for _, m := range table {
		if !c.YearRange.Contains(float64(m.ReleaseYear)) ||
			!c.RatingRange.Contains(m.VoteAverage) ||
			!c.RuntimeRange.Contains(m.Runtime) {
			continue
		}
		if len(wanted) > 0 && !anyGenre(m.GenreList, wanted) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func anyGenre(genres []string, wanted map[string]struct{}) bool {
	for _, g := range genres {
		if _, ok := wanted[g]; ok {
			return true
		}
	}
	return false
}

// TopNBy returns up to n rows with the largest key value among rows admitted
// by support (nil admits all). Ties keep table order.
func TopNBy(table []domain.Movie, key SortKey, n int, support Support) []domain.Movie {
	value, ok := sortKeyValues[key]
	if !ok || n <= 0 {
		return []domain.Movie{}
	}

	eligible := make([]domain.Movie, 0, len(table))
	for _, m := range table {
		if support == nil || support(m) {
			eligible = append(eligible, m)
		}
	}
	sortDescending(eligible, value)

	if len(eligible) > n {
		eligible = eligible[:n]
	}
	return eligible
}

func sortDescending(movies []domain.Movie, value func(domain.Movie) float64) {
	sort.SliceStable(movies, func(i, j int) bool {
		return value(movies[i]) > value(movies[j])
	})
}

// TopRated ranks by rating among movies with enough votes to be reliable.
func TopRated(table []domain.Movie, n int) []domain.Movie {
	return TopNBy(table, SortByVoteAverage, n, MinVoteCount(TopRatedMinVotes))
}

// TopGrossing ranks by revenue among movies with revenue data.
func TopGrossing(table []domain.Movie, n int) []domain.Movie {
	return TopNBy(table, SortByRevenue, n, PositiveRevenue)
}

// Longest ranks by runtime.
func Longest(table []domain.Movie, n int) []domain.Movie {
	return TopNBy(table, SortByRuntime, n, nil)
}

// MoviesWithRuntimeAtLeast returns movies running threshold minutes or
// more, longest first.
func MoviesWithRuntimeAtLeast(table []domain.Movie, threshold float64) []domain.Movie {
	out := selectMovies(table, func(m domain.Movie) bool { return m.Runtime >= threshold })
	sortDescending(out, sortKeyValues[SortByRuntime])
	return out
}

// MoviesByYear returns movies released in year.
func MoviesByYear(table []domain.Movie, year int) []domain.Movie {
	return selectMovies(table, func(m domain.Movie) bool { return m.ReleaseYear == year })
}

// MoviesByGenre returns movies tagged with genre.
func MoviesByGenre(table []domain.Movie, genre string) []domain.Movie {
	return selectMovies(table, func(m domain.Movie) bool { return m.HasGenre(genre) })
}

// SearchTitle returns movies whose title contains query, ignoring case.
func SearchTitle(table []domain.Movie, query string) []domain.Movie {
	q := strings.ToLower(query)
	return selectMovies(table, func(m domain.Movie) bool {
		return strings.Contains(strings.ToLower(m.Title), q)
	})
}

// DirectorMovies returns movies whose director contains name, ignoring case.
func DirectorMovies(table []domain.Movie, name string) []domain.Movie {
	q := strings.ToLower(name)
	return selectMovies(table, func(m domain.Movie) bool {
		return strings.Contains(strings.ToLower(m.Director), q)
	})
}

func selectMovies(table []domain.Movie, keep func(domain.Movie) bool) []domain.Movie {
	out := make([]domain.Movie, 0)
	for _, m := range table {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// AllGenres returns every genre name in the table, sorted and unique.
func AllGenres(table []domain.Movie) []string {
	seen := make(map[string]struct{})
	for _, m := range table {
		for _, g := range m.GenreList {
			seen[g] = struct{}{}
		}
	}
	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// GenreCounts counts movies per genre, most common first. Ties keep the
// order in which genres are first encountered.
func GenreCounts(table []domain.Movie) []domain.CategoryCount {
	index := make(map[string]int)
	var counts []domain.CategoryCount
	for _, m := range table {
		for _, g := range m.GenreList {
			i, ok := index[g]
			if !ok {
				i = len(counts)
				index[g] = i
				counts = append(counts, domain.CategoryCount{Category: g})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

// MostCommonGenre returns the most frequent genre name. Ties go to the
// genre encountered first; an empty table yields domain.UnknownGenre.
func MostCommonGenre(table []domain.Movie) string {
	counts := GenreCounts(table)
	if len(counts) == 0 {
		return domain.UnknownGenre
	}
	return counts[0].Category
}

// AggregateByDecade groups the table by release decade in ascending order.
// Means and sums are rounded to two decimals.
func AggregateByDecade(table []domain.Movie) []domain.DecadeStats {
	type acc struct {
		count                     int
		rating, runtime, rev, bud float64
	}
	byDecade := make(map[int]*acc)
	for _, m := range table {
		d := m.Decade()
		a, ok := byDecade[d]
		if !ok {
			a = &acc{}
			byDecade[d] = a
		}
		a.count++
		a.rating += m.VoteAverage
		a.runtime += m.Runtime
		a.rev += m.Revenue
		a.bud += m.Budget
	}

	decades := make([]int, 0, len(byDecade))
	for d := range byDecade {
		decades = append(decades, d)
	}
	sort.Ints(decades)

	stats := make([]domain.DecadeStats, 0, len(decades))
	for _, d := range decades {
		a := byDecade[d]
		n := float64(a.count)
		stats = append(stats, domain.DecadeStats{
			Decade:       d,
			MovieCount:   a.count,
			AvgRating:    round2(a.rating / n),
			AvgRuntime:   round2(a.runtime / n),
			TotalRevenue: round2(a.rev),
			TotalBudget:  round2(a.bud),
		})
	}
	return stats
}

// Statistics summarizes the table. Means of an empty table are 0.
func Statistics(table []domain.Movie) domain.DatasetStatistics {
	stats := domain.DatasetStatistics{
		TotalMovies: len(table),
		TopGenre:    MostCommonGenre(table),
	}
	if len(table) == 0 {
		return stats
	}

	var rating, runtime, votes float64
	stats.MinYear, stats.MaxYear = table[0].ReleaseYear, table[0].ReleaseYear
	for _, m := range table {
		rating += m.VoteAverage
		runtime += m.Runtime
		votes += m.VoteCount
		stats.TotalRevenue += m.Revenue
		stats.TotalBudget += m.Budget
		stats.MinYear = min(stats.MinYear, m.ReleaseYear)
		stats.MaxYear = max(stats.MaxYear, m.ReleaseYear)
	}
	n := float64(len(table))
	stats.AvgRating = rating / n
	stats.AvgRuntime = runtime / n
	stats.AvgVotes = votes / n
	return stats
}

// RatingDistribution counts movies per rating category, most common first.
// Every rating bucket is listed; Unknown only when it occurs.
func RatingDistribution(table []domain.Movie) []domain.CategoryCount {
	counts := make(map[domain.RatingCategory]int)
	for _, m := range table {
		counts[m.RatingCategory]++
	}

	dist := make([]domain.CategoryCount, 0, len(domain.RatingCategories)+1)
	for _, c := range domain.RatingCategories {
		dist = append(dist, domain.CategoryCount{Category: string(c), Count: counts[c]})
	}
	if n := counts[domain.RatingUnknown]; n > 0 {
		dist = append(dist, domain.CategoryCount{Category: string(domain.RatingUnknown), Count: n})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })
	return dist
}

// SuccessMetrics reports profitability and rating shares as percentages.
func SuccessMetrics(table []domain.Movie) domain.SuccessMetrics {
	if len(table) == 0 {
		return domain.SuccessMetrics{}
	}

	var profitable, highRated, blockbusters int
	var profit, roi float64
	for _, m := range table {
		if m.Profit > 0 {
			profitable++
		}
		if m.VoteAverage >= HighRatingThreshold {
			highRated++
		}
		if m.Budget >= BlockbusterBudgetMark {
			blockbusters++
		}
		profit += m.Profit
		roi += m.ROI
	}

	n := float64(len(table))
	return domain.SuccessMetrics{
		ProfitabilityRate:     float64(profitable) / n * 100,
		AvgProfit:             profit / n,
		AvgROI:                roi / n,
		HighRatedPercentage:   float64(highRated) / n * 100,
		BlockbusterPercentage: float64(blockbusters) / n * 100,
	}
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
