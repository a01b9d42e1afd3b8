// Package config provides configuration loading and path management for
// FilmInsight.
//
// # Configuration Sources
//
// Configuration is layered, later sources overriding earlier ones:
//
//	1. Default values (Default)
//	2. A YAML file named by FILMINSIGHT_CONFIG, or config.yaml / configs/config.yaml
//	3. Environment variables with the FILMINSIGHT_ prefix
//
// # Environment Variables
//
//	FILMINSIGHT_SERVER_PORT=8080
//	FILMINSIGHT_LOGGING_LEVEL=debug
//	FILMINSIGHT_DATASET_DATA_DIR=/srv/tmdb
//	FILMINSIGHT_DATASET_MOVIES_FILE=tmdb_5000_movies.csv
//	FILMINSIGHT_EXPORT_OUTPUT_DIR=/srv/exports
//	FILMINSIGHT_TELEMETRY_ENABLE_TRACING=true
//
// # Path Management
//
// Paths resolves the data, export and log directories relative to a base
// directory (the executable's directory by default):
//
//	paths := cfg.ResolvePaths(baseDir)
//	out := paths.GetExportPath(config.CleanedMoviesFile)
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
