package http

import (
	"net/url"
	"strconv"
	"strings"

	apierrors "filminsight/internal/errors"
	"filminsight/pkg/contracts/domain"
)

// Defaults applied when a filter bound is omitted. They admit every row
// that survives the validity filter.
const (
	defaultYearFrom   = 1900
	defaultYearTo     = 2100
	defaultMaxRating  = 10
	defaultMaxRuntime = 1000

	defaultPageLimit    = 50
	defaultTopN         = 10
	defaultLongRuntime  = 180
	defaultLongLimit    = 20
	defaultRankingOrder = "vote_average"
)

// filterRequest holds the dashboard sidebar filters
type filterRequest struct {
	YearFrom   int      `query:"year_from" validate:"gte=1900,lte=2100"`
	YearTo     int      `query:"year_to" validate:"gtefield=YearFrom,lte=2100"`
	MinRating  float64  `query:"min_rating" validate:"gte=0,lte=10"`
	MaxRating  float64  `query:"max_rating" validate:"gtefield=MinRating,lte=10"`
	MinRuntime float64  `query:"min_runtime" validate:"gte=0,lte=1000"`
	MaxRuntime float64  `query:"max_runtime" validate:"gtefield=MinRuntime,lte=1000"`
	Genres     []string `query:"genre" validate:"max=20,dive,label"`
}

// movieListRequest is the query of GET /api/movies
type movieListRequest struct {
	filterRequest
	Title    string `query:"title" validate:"max=200"`
	Director string `query:"director" validate:"omitempty,label"`
	Sort     string `query:"sort" validate:"omitempty,oneof=vote_average vote_count runtime revenue budget popularity profit roi success_score"`
	Limit    int    `query:"limit" validate:"gte=0,lte=500"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

// topRequest is the query of GET /api/movies/top
type topRequest struct {
	By       string  `query:"by" validate:"oneof=vote_average vote_count runtime revenue budget popularity profit roi success_score"`
	N        int     `query:"n" validate:"min=1,max=100"`
	MinVotes float64 `query:"min_votes" validate:"gte=0"`
}

// longRequest is the query of GET /api/movies/long
type longRequest struct {
	MinRuntime float64 `query:"min_runtime" validate:"gte=0,lte=1000"`
	N          int     `query:"n" validate:"min=1,max=500"`
}

func (f filterRequest) criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		YearRange:    domain.Range{Min: float64(f.YearFrom), Max: float64(f.YearTo)},
		RatingRange:  domain.Range{Min: f.MinRating, Max: f.MaxRating},
		RuntimeRange: domain.Range{Min: f.MinRuntime, Max: f.MaxRuntime},
		Genres:       f.Genres,
	}
}

// queryParser reads typed values from a query string and keeps the first
// conversion error
type queryParser struct {
	values url.Values
	err    error
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values}
}

func (p *queryParser) intParam(key string, def int) int {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" || p.err != nil {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.err = apierrors.ErrValidation(key, key+" must be an integer")
		return def
	}
	return v
}

func (p *queryParser) floatParam(key string, def float64) float64 {
	raw := strings.TrimSpace(p.values.Get(key))
	if raw == "" || p.err != nil {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.err = apierrors.ErrValidation(key, key+" must be a number")
		return def
	}
	return v
}

func (p *queryParser) stringParam(key, def string) string {
	if raw := strings.TrimSpace(p.values.Get(key)); raw != "" {
		return raw
	}
	return def
}

// listParam accepts both repeated keys and comma separated values
func (p *queryParser) listParam(key string) []string {
	var out []string
	for _, raw := range p.values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseFilter(p *queryParser) filterRequest {
	return filterRequest{
		YearFrom:   p.intParam("year_from", defaultYearFrom),
		YearTo:     p.intParam("year_to", defaultYearTo),
		MinRating:  p.floatParam("min_rating", 0),
		MaxRating:  p.floatParam("max_rating", defaultMaxRating),
		MinRuntime: p.floatParam("min_runtime", 0),
		MaxRuntime: p.floatParam("max_runtime", defaultMaxRuntime),
		Genres:     p.listParam("genre"),
	}
}

func parseMovieList(values url.Values) (movieListRequest, error) {
	p := newQueryParser(values)
	req := movieListRequest{
		filterRequest: parseFilter(p),
		Title:         p.stringParam("title", ""),
		Director:      p.stringParam("director", ""),
		Sort:          strings.ToLower(p.stringParam("sort", "")),
		Limit:         p.intParam("limit", defaultPageLimit),
		Offset:        p.intParam("offset", 0),
	}
	return req, p.err
}

func parseTop(values url.Values) (topRequest, error) {
	p := newQueryParser(values)
	req := topRequest{
		By:       strings.ToLower(p.stringParam("by", defaultRankingOrder)),
		N:        p.intParam("n", defaultTopN),
		MinVotes: p.floatParam("min_votes", 0),
	}
	return req, p.err
}

func parseLong(values url.Values) (longRequest, error) {
	p := newQueryParser(values)
	req := longRequest{
		MinRuntime: p.floatParam("min_runtime", defaultLongRuntime),
		N:          p.intParam("n", defaultLongLimit),
	}
	return req, p.err
}

func parseStats(values url.Values) (filterRequest, error) {
	p := newQueryParser(values)
	req := parseFilter(p)
	return req, p.err
}
