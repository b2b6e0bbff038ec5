package parange

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with parange-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithWidth adds the element width in bits to the logger.
func (l *Logger) WithWidth(bits uint) *Logger {
	return &Logger{
		Logger: l.Logger.With("bits", bits),
	}
}

// WithRange adds the range bounds to the logger.
func (l *Logger) WithRange(r fmt.Stringer) *Logger {
	return &Logger{
		Logger: l.Logger.With("range", r.String()),
	}
}

// LogDrive logs the outcome of a drive. path names the bridge that ran it and
// n is the element count when it was known.
func (l *Logger) LogDrive(ctx context.Context, path string, n uint, known bool, err error) {
	args := []any{"path", path}
	if known {
		args = append(args, "len", n)
	}

	if err != nil {
		l.ErrorContext(ctx, "drive failed", append(args, "error", err)...)
	} else {
		l.DebugContext(ctx, "drive completed", args...)
	}
}
