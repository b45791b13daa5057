// Package logging holds the slog helpers shared by the public packages.
package logging

import (
	"log/slog"
	"os"
)

var discard = slog.New(slog.DiscardHandler)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return discard
}

// OrDiscard returns logger, or the discard logger when logger is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return discard
	}

	return logger
}

// NewTextLogger creates a human-readable logger on stderr at the given level.
func NewTextLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
