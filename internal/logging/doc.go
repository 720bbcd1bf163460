// Package logging provides structured logging for the mvg client.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used throughout the client: API requests and responses, and the
// outcome of background itinerary fetches.
//
// # Silent by Default
//
// Logging is disabled unless MVG_LOG_LEVEL (or the --log-level flag) is set to
// "debug", "info", "warn" or "error". The interactive UI owns the terminal, so
// while it runs logs are written to MVG_LOG_FILE or a file in the config
// directory instead of the screen.
//
//	if err := logging.Initialize("debug", "/tmp/mvg.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.Info("Fetch completed",
//	    zap.String("from", "Dachau"),
//	    zap.Int("results", 6),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The global logger must be
// initialized before background goroutines start.
package logging
