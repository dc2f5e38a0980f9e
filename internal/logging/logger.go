package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/nirnay/internal/model"
)

// New builds a logger writing to stderr. Format is "json" or "text".
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "nirnay")
}

// FromConfig builds the logger from config; verbose forces debug.
func FromConfig(cfg model.LogConfig, verbose bool) *slog.Logger {
	level := cfg.Level
	if verbose {
		level = "debug"
	}
	return New(level, cfg.Format)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
