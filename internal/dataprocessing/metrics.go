package dataprocessing

import (
	"math"

	"filminsight/pkg/contracts/domain"
)

// Success score weights.
const (
	ratingWeight     = 0.7
	popularityWeight = 0.3
)

// bin is a right-closed interval (lower, upper]. The first bin of each
// scale also admits its lower edge.
type bin[T ~string] struct {
	upper float64
	label T
}

var (
	ratingBins = []bin[domain.RatingCategory]{
		{4, domain.RatingPoor},
		{6, domain.RatingAverage},
		{8, domain.RatingGood},
		{10, domain.RatingExcellent},
	}
	runtimeBins = []bin[domain.RuntimeCategory]{
		{90, domain.RuntimeShort},
		{120, domain.RuntimeMedium},
		{180, domain.RuntimeLong},
		{math.Inf(1), domain.RuntimeEpic},
	}
	budgetBins = []bin[domain.BudgetCategory]{
		{1e6, domain.BudgetLow},
		{10e6, domain.BudgetMedium},
		{50e6, domain.BudgetHigh},
		{math.Inf(1), domain.BudgetBlockbuster},
	}
)

func classify[T ~string](v float64, bins []bin[T], unknown T) T {
	if math.IsNaN(v) || v < 0 {
		return unknown
	}
	for _, b := range bins {
		if v <= b.upper {
			return b.label
		}
	}
	return unknown
}

// Profit is revenue minus budget.
func Profit(revenue, budget float64) float64 {
	return revenue - budget
}

// ROI is profit as a percentage of budget, or 0 when there is no budget.
func ROI(profit, budget float64) float64 {
	if budget > 0 {
		return profit / budget * 100
	}
	return 0
}

// SuccessScore blends rating with log-scaled popularity.
func SuccessScore(voteAverage, popularity float64) float64 {
	return ratingWeight*voteAverage + popularityWeight*math.Log1p(popularity)
}

// RatingCategory buckets a vote average on the 0-10 scale.
func RatingCategory(voteAverage float64) domain.RatingCategory {
	return classify(voteAverage, ratingBins, domain.RatingUnknown)
}

// RuntimeCategory buckets a runtime in minutes.
func RuntimeCategory(runtime float64) domain.RuntimeCategory {
	return classify(runtime, runtimeBins, domain.RuntimeUnknown)
}

// BudgetCategory buckets a budget in dollars.
func BudgetCategory(budget float64) domain.BudgetCategory {
	return classify(budget, budgetBins, domain.BudgetUnknown)
}

// Enrich returns a copy of movies with derived metrics and categories set.
func Enrich(movies []domain.Movie) []domain.Movie {
	out := make([]domain.Movie, len(movies))
	for i, m := range movies {
		m.Profit = Profit(m.Revenue, m.Budget)
		m.ROI = ROI(m.Profit, m.Budget)
		m.SuccessScore = SuccessScore(m.VoteAverage, m.Popularity)
		m.RatingCategory = RatingCategory(m.VoteAverage)
		m.RuntimeCategory = RuntimeCategory(m.Runtime)
		m.BudgetCategory = BudgetCategory(m.Budget)
		out[i] = m
	}
	return out
}
