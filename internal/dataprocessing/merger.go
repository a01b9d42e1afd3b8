package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"filminsight/pkg/contracts/domain"
)

// Merge inner-joins movies with credits on movies.id == credits.movie_id.
// Output follows the order of movies; unmatched rows on either side are
// dropped. When credits repeat an id the first row wins.
func Merge(movies []domain.RawMovie, credits []domain.CreditsRecord) []domain.MergedRecord {
	byID := make(map[string]domain.CreditsRecord, len(credits))
	for _, c := range credits {
		key, ok := joinKey(c.MovieID)
		if !ok {
			continue
		}
		if _, seen := byID[key]; !seen {
			byID[key] = c
		}
	}

	merged := make([]domain.MergedRecord, 0, len(movies))
	for _, m := range movies {
		key, ok := joinKey(m.ID)
		if !ok {
			continue
		}
		c, found := byID[key]
		if !found {
			continue
		}
		merged = append(merged, domain.MergedRecord{
			MovieID: key,
			Movie:   m,
			Cast:    c.Cast,
			Crew:    c.Crew,
		})
	}
	return merged
}

// joinKey canonicalizes an identifier so that "0019995", "19995" and
// "19995.0" compare equal. Non-numeric ids are compared as trimmed text.
func joinKey(c domain.Cell) (string, bool) {
	if !c.Present {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return "", false
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return v, true
}
