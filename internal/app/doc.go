// Package app wires the movie dashboard service together: configuration,
// logging, OpenTelemetry, the dataset, export and health services, the chi
// router and the HTTP server.
//
// # Initialization Flow
//
//	1. Load configuration (defaults, YAML file, FILMINSIGHT_* environment)
//	2. Initialize the slog logger and OpenTelemetry providers
//	3. Resolve and create the data, export and log directories
//	4. Create the services and mount the handlers behind the middleware chain
//	5. Load the dataset and start the reload loop
//	6. Serve until SIGINT or SIGTERM
//
// # Graceful Shutdown
//
// Stop drains in-flight requests, stops the dataset reload loop and flushes
// telemetry. The package never calls os.Exit; main decides the exit code.
package app
