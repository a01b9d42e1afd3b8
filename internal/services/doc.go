// Package services implements the business logic layer of FilmInsight.
// It sits between the HTTP handlers and the dataprocessing core.
//
// # Services
//
//	DatasetService  locates, validates, loads and caches the cleaned movie
//	                table and answers every dashboard query against it
//	ExportService   writes the cleaned table and its aggregates to CSV,
//	                JSON and XLSX
//	HealthService   reports liveness, readiness and dataset status
//
// # Caching
//
// DatasetService holds one immutable snapshot per process. Concurrent loads
// are collapsed with singleflight and a failed reload keeps serving the
// previous snapshot. Query methods never mutate the cached table.
package services
