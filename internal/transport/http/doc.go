// Package http implements the HTTP handlers of the movie dashboard API.
// Handlers stay thin: they parse and validate query parameters, call the
// dataset service and render JSON.
//
// # Routes
//
//	GET  /api/movies        filtered, searched, sorted and paged movies
//	GET  /api/movies/top    ranking by one numeric column
//	GET  /api/movies/long   movies at or above a runtime threshold
//	GET  /api/genres        movie count per genre
//	GET  /api/decades       per-decade aggregates
//	GET  /api/stats         summary of the filtered table
//	GET  /api/dataset       cached dataset status
//	POST /api/dataset/reload
//	POST /api/exports       write CSV, JSON and workbook exports
//	GET  /api/health, /api/health/ready, /api/health/live, /api/version
//	GET  /metrics           Prometheus exposition
//
// # Error Handling
//
// Every failure is rendered as RFC 7807 Problem Details by
// errors.ErrorHandler:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Validation failed",
//	    "instance": "/api/movies"
//	}
//
// Dataset load failures map to 503 so clients can retry once the files
// are in place.
package http
