package internal

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dataset-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler logs text
// to stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewWriterLogger logs to w, as JSON when asJSON is set.
func NewWriterLogger(w io.Writer, level slog.Level, asJSON bool) *Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return NewLogger(slog.NewJSONHandler(w, opts))
	}
	return NewLogger(slog.NewTextHandler(w, opts))
}

// NoopLogger discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (l *Logger) WithPair(name string) *Logger {
	return &Logger{Logger: l.Logger.With("pair", name)}
}

// LogPair logs the outcome of one image pair.
func (l *Logger) LogPair(ctx context.Context, name string, samples int, err error) {
	if err != nil {
		l.WarnContext(ctx, "pair skipped",
			"pair", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "pair processed",
		"pair", name,
		"samples", samples,
	)
}

// LogDataset logs the outcome of a dataset run.
func (l *Logger) LogDataset(ctx context.Context, path string, pairs, skipped, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset failed",
			"path", path,
			"pairs", pairs,
			"error", err,
		)
		return
	}
	if skipped > 0 {
		l.WarnContext(ctx, "dataset written with skipped pairs",
			"path", path,
			"pairs", pairs,
			"skipped", skipped,
			"rows", rows,
		)
		return
	}
	l.InfoContext(ctx, "dataset written",
		"path", path,
		"pairs", pairs,
		"rows", rows,
	)
}
