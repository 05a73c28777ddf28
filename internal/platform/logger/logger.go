// Package logger provides structured logging functionality for the application.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/billdonner/obo-gen/internal/config"
)

// ParseLevel converts a configured level name into a slog.Level
// (case-insensitive). The second result is false for unknown names.
func ParseLevel(name string) (slog.Level, bool) {
	return config.ParseLogLevel(name)
}

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured JSON logger with the
// appropriate log level, writes to out (stderr when nil), and sets it as the
// default logger for the application.
//
// Standard output is reserved for deck text, so the CLI never logs there.
func Setup(cfg config.LogConfig, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}

	level, ok := ParseLevel(cfg.Level)
	if !ok {
		// Create a temporary logger to output the warning
		tmpLogger := slog.New(slog.NewTextHandler(out, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	// This allows using the slog package functions directly (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger
}
