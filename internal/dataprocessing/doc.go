// Package dataprocessing turns the raw TMDB movie and credits CSV exports into
// one cleaned, enriched movie table and answers queries over it.
//
// # Architecture
//
// The pipeline runs five stages in a fixed order, each a single pass over a
// slice:
//
//  1. Merge: inner join of movies and credits on the movie id
//  2. Normalize: type coercion, missing-value fill, required-field drops
//  3. Extract: decoding of the serialized genre, cast, crew and keyword lists
//  4. Enrich: profit, ROI, success score and category bins
//  5. Filter: removal of rows outside realistic year, runtime and rating bounds
//
// Query functions (Filter, TopNBy, AggregateByDecade and friends) run on the
// resulting table and never modify it.
//
// # Usage
//
//	p := dataprocessing.NewPipeline(logger)
//	table, report, err := p.LoadAndProcess(ctx, "tmdb_5000_movies.csv", "tmdb_5000_credits.csv")
//	if err != nil {
//	    return err
//	}
//	top := dataprocessing.TopRated(table, 10)
//
// # Error Handling
//
// Only loading can fail. A missing file is reported as a NOT_FOUND
// errors.AppError and an unreadable or malformed CSV as STORAGE. Bad cells
// never fail a run: numbers fall back to 0, malformed nested lists to empty
// values, and rows without a title or release date are dropped and counted in
// the ProcessReport.
package dataprocessing
