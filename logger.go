package lshdb

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with lshdb-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBuild logs an index construction.
func (l *Logger) LogBuild(size, numHyperplanes, bits int, strategy string, err error) {
	if err != nil {
		l.Error("build failed",
			"size", size,
			"hyperplanes", numHyperplanes,
			"strategy", strategy,
			"error", err,
		)
	} else {
		l.Info("build completed",
			"size", size,
			"hyperplanes", numHyperplanes,
			"bits", bits,
			"strategy", strategy,
		)
	}
}

// LogQuery logs a candidate lookup.
func (l *Logger) LogQuery(bin uint64, candidates int) {
	l.Debug("query completed",
		"bin", bin,
		"candidates", candidates,
	)
}

// LogSnapshot logs a snapshot write or read.
func (l *Logger) LogSnapshot(op string, bytes int64, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"op", op,
			"bytes", bytes,
		)
	}
}
