// Package logger owns the process-wide slog handler and the helpers that
// carry a request-scoped logger through context.
package logger

import (
	"log/slog"
	"os"
)

var defaultLogger *slog.Logger

// Init picks the handler for the given environment. Production logs JSON at
// info level for ingestion; everything else gets a text handler at debug
// level for local reading.
func Init(env string) {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var handler slog.Handler
	if env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// L returns the process logger, initializing a development one on first use.
func L() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
