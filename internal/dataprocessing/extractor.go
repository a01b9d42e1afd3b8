package dataprocessing

import (
	"strings"

	"filminsight/pkg/contracts/domain"
)

// MainCastSize is the number of leading cast entries kept per movie.
const MainCastSize = 5

const directorJob = "Director"

// nestedList is the structural decode of a list literal of objects, e.g.
// [{"id": 28, "name": "Action"}] or [{'id': 28, 'name': 'Action'}].
// ok is false unless the text decodes to a sequence literal.
type nestedList struct {
	entries []any
	ok      bool
}

func decodeNested(raw string) nestedList {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nestedList{}
	}
	v, ok := parseLiteral(raw)
	if !ok {
		return nestedList{}
	}
	entries, ok := v.([]any)
	if !ok {
		return nestedList{}
	}
	return nestedList{entries: entries, ok: true}
}

// names pulls the string "name" of every entry. Any entry that is not an
// object with a string name fails the whole list.
func (l nestedList) names() ([]string, bool) {
	if !l.ok {
		return nil, false
	}
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		name, ok := stringField(e, "name")
		if !ok {
			return nil, false
		}
		out = append(out, name)
	}
	return out, true
}

func stringField(entry any, key string) (string, bool) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := obj[key].(string)
	return v, ok
}

// ExtractGenres returns genre names in source order, or an empty list when
// the text cannot be decoded.
func ExtractGenres(raw string) []string {
	if names, ok := decodeNested(raw).names(); ok {
		return names
	}
	return []string{}
}

// ExtractKeywords follows the same contract as ExtractGenres.
func ExtractKeywords(raw string) []string {
	return ExtractGenres(raw)
}

// ExtractMainCast returns the names of the first MainCastSize cast entries.
// Entries past that point are not inspected.
func ExtractMainCast(raw string) []string {
	list := decodeNested(raw)
	if !list.ok {
		return []string{}
	}
	if len(list.entries) > MainCastSize {
		list.entries = list.entries[:MainCastSize]
	}
	if names, ok := list.names(); ok {
		return names
	}
	return []string{}
}

// ExtractDirector returns the name of the first crew entry whose job is
// exactly "Director". Malformed input yields domain.UnknownDirector.
func ExtractDirector(raw string) string {
	list := decodeNested(raw)
	if !list.ok {
		return domain.UnknownDirector
	}
	for _, e := range list.entries {
		obj, ok := e.(map[string]any)
		if !ok {
			return domain.UnknownDirector
		}
		if job, _ := obj["job"].(string); job != directorJob {
			continue
		}
		if name, ok := obj["name"].(string); ok {
			return name
		}
		return domain.UnknownDirector
	}
	return domain.UnknownDirector
}

// Extract decodes nested fields into the cleaned movie shape. Metric and
// category fields are left zero.
func Extract(records []NormalizedRecord) []domain.Movie {
	movies := make([]domain.Movie, len(records))
	for i, r := range records {
		genres := ExtractGenres(r.Genres)
		cast := ExtractMainCast(r.Cast)

		primary := domain.UnknownGenre
		if len(genres) > 0 {
			primary = genres[0]
		}

		movies[i] = domain.Movie{
			MovieID:      r.MovieID,
			Title:        r.Title,
			ReleaseDate:  r.ReleaseDate,
			ReleaseYear:  r.ReleaseYear,
			Runtime:      r.Runtime,
			VoteAverage:  r.VoteAverage,
			VoteCount:    r.VoteCount,
			Revenue:      r.Revenue,
			Budget:       r.Budget,
			Popularity:   r.Popularity,
			Overview:     r.Overview,
			Tagline:      r.Tagline,
			GenreList:    genres,
			PrimaryGenre: primary,
			GenreCount:   len(genres),
			MainCast:     cast,
			CastSize:     len(cast),
			Director:     ExtractDirector(r.Crew),
			Keywords:     ExtractKeywords(r.Keywords),
		}
	}
	return movies
}
