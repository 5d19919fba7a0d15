package mimgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with scorer-specific context.
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

// WithRunID tags every record with the scoring run.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithModality adds a modality field to the logger.
func (l *Logger) WithModality(modality string) *Logger {
	return &Logger{
		Logger: l.Logger.With("modality", modality),
	}
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// LogPartition logs the extraction of one modality's doppelgaenger subset.
func (l *Logger) LogPartition(ctx context.Context, modality string, cells int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition failed",
			"modality", modality,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "partition completed",
			"modality", modality,
			"doppelgaenger", cells,
		)
	}
}

// LogDistance logs the computation of one modality's distance matrix.
func (l *Logger) LogDistance(ctx context.Context, modality string, n int, bytes int64, took time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "distance matrix failed",
			"modality", modality,
			"rows", n,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "distance matrix completed",
			"modality", modality,
			"rows", n,
			"bytes", bytes,
			"took", took,
		)
	}
}

// LogScore logs the outcome of a scoring run.
func (l *Logger) LogScore(ctx context.Context, r *Report, err error) {
	if err != nil {
		l.ErrorContext(ctx, "jaccard scoring failed",
			"error", err,
		)
		return
	}
	attrs := []any{
		"shape", r.Shape.String(),
		"scored", r.Scored,
		"missing", r.Missing,
		"unmatched", r.Unmatched,
		"took", r.Elapsed,
	}
	// JSON cannot carry NaN.
	if r.Scored > 0 {
		attrs = append(attrs, "mean", r.MeanScore)
	}
	l.InfoContext(ctx, "jaccard scoring completed", attrs...)
}
