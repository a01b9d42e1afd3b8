package dataprocessing

import (
	"filminsight/pkg/contracts/domain"
)

// Bounds a cleaned movie must satisfy. Budget and revenue are unbounded.
const (
	MinReleaseYear = 1900
	MinRuntime     = 10.0
	MaxRuntime     = 500.0
	MinVoteAverage = 0.0
	MaxVoteAverage = 10.0
)

// ExclusionReason names why a row was left out of the cleaned table.
type ExclusionReason string

const (
	ReasonUnmatched          ExclusionReason = "unmatched"
	ReasonMissingTitle       ExclusionReason = "missing_title"
	ReasonInvalidReleaseDate ExclusionReason = "invalid_release_date"
	ReasonYearOutOfRange     ExclusionReason = "year_out_of_range"
	ReasonRuntimeOutOfRange  ExclusionReason = "runtime_out_of_range"
	ReasonRatingOutOfRange   ExclusionReason = "rating_out_of_range"
)

// violation returns the first rule m breaks, checked in the order year,
// runtime, rating.
func violation(m domain.Movie, currentYear int) (ExclusionReason, bool) {
	switch {
	case m.ReleaseYear < MinReleaseYear || m.ReleaseYear > currentYear:
		return ReasonYearOutOfRange, true
	case m.Runtime < MinRuntime || m.Runtime > MaxRuntime:
		return ReasonRuntimeOutOfRange, true
	case m.VoteAverage < MinVoteAverage || m.VoteAverage > MaxVoteAverage:
		return ReasonRatingOutOfRange, true
	}
	return "", false
}

// IsValid reports whether m falls inside the realistic year, runtime and
// rating bounds for the given current year.
func IsValid(m domain.Movie, currentYear int) bool {
	_, bad := violation(m, currentYear)
	return !bad
}

// FilterValid keeps the rows of movies that pass IsValid, preserving order.
func FilterValid(movies []domain.Movie, currentYear int) []domain.Movie {
	out, _ := filterValid(movies, currentYear)
	return out
}

func filterValid(movies []domain.Movie, currentYear int) ([]domain.Movie, map[ExclusionReason]int) {
	dropped := make(map[ExclusionReason]int)
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if reason, bad := violation(m, currentYear); bad {
			dropped[reason]++
			continue
		}
		out = append(out, m)
	}
	return out, dropped
}
