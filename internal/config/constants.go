package config

import "time"

// Application constants
const (
	AppName        = "FilmInsight"
	AppVersion     = "1.0.0"
	AppServiceName = "filminsight"

	// EnvPrefix namespaces every environment variable, e.g. FILMINSIGHT_SERVER_PORT.
	EnvPrefix     = "FILMINSIGHT"
	ConfigFileEnv = "FILMINSIGHT_CONFIG"

	// Rate Limiting
	DefaultRateLimitRPS   = 50
	DefaultRateLimitBurst = 100

	// Timeouts
	DatasetLoadTimeout = 2 * time.Minute

	// File Paths (relative to the base directory)
	DefaultDataDir    = "data"
	DefaultExportsDir = "data/exports"
	DefaultLogsDir    = "logs"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Dataset files
	MoviesFilePattern  = "tmdb_5000_movies*.csv"
	CreditsFilePattern = "tmdb_5000_credits*.csv"
	MaxDatasetFileSize = 512 * 1024 * 1024

	// Export files
	CleanedMoviesFile = "movies_clean.csv"
	DecadesFile       = "decades.csv"
	StatisticsFile    = "statistics.json"
	WorkbookFile      = "movies.xlsx"
	DefaultTopLimit   = 10

	// API Endpoints
	APIBasePath     = "/api"
	MetricsEndpoint = "/metrics"
)
