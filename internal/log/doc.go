// Package log provides logging for f1scrape with automatic trimming of
// oversized attribute values, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Truncation of huge attribute values (fetched pages run to megabytes)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why trim
//
// Scraping code naturally wants to log the things it fetched: page bodies,
// table fragments, raw cell text. Left alone, a single debug line can dump a
// multi-megabyte document into the terminal. The TrimHandler cuts string
// attributes down to a fixed budget and notes the original size, so logs stay
// readable without the call sites having to pre-truncate.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("page fetched",
//	    "url", "https://example.com",
//	    "html", html, // trimmed to the attribute budget
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
