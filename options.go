package parange

import (
	"log/slog"
	"math"

	"github.com/hupe1980/parange/plumbing"
)

type options struct {
	logger        *Logger
	observer      MetricsObserver
	maxWorkers    int
	minLen        uint
	maxLen        uint
	recoverPanics bool
	scheduler     *plumbing.Scheduler
}

// Option configures a drive.
type Option func(*options)

// WithLogger configures structured logging for drives.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := parange.NewJSONLogger(slog.LevelDebug)
//	sum, _ := parange.DriveUnindexed(ctx, it, collect.Sum[int64](), parange.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsObserver configures an observer for scheduling events.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsObserver:
//
//	metrics := &parange.BasicMetricsObserver{}
//	_, _ = parange.DriveUnindexed(ctx, it, c, parange.WithMetricsObserver(metrics))
//	fmt.Println(metrics.Stats().Splits())
func WithMetricsObserver(mo MetricsObserver) Option {
	return func(o *options) {
		if mo == nil {
			mo = NoopMetricsObserver{}
		}
		o.observer = mo
	}
}

// WithMaxWorkers bounds the goroutines used by one drive, the caller included.
// If n <= 0, GOMAXPROCS is used. n == 1 drives sequentially.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.maxWorkers = n
	}
}

// WithMinLen sets the smallest piece the exact-length bridge will split into.
func WithMinLen(n uint) Option {
	return func(o *options) {
		o.minLen = max(n, 1)
	}
}

// WithMaxLen sets the largest piece the exact-length bridge will fold without
// splitting further.
func WithMaxLen(n uint) Option {
	return func(o *options) {
		o.maxLen = max(n, 1)
	}
}

// WithPanicRecovery makes drives return a *PanicError instead of re-raising
// panics, including *SplitIndexError contract violations.
func WithPanicRecovery(enabled bool) Option {
	return func(o *options) {
		o.recoverPanics = enabled
	}
}

// WithScheduler runs the drive on s. Worker, observer, logger and panic
// options are then ignored in favour of s's own configuration.
func WithScheduler(s *plumbing.Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:   NoopLogger(),
		observer: NoopMetricsObserver{},
		minLen:   1,
		maxLen:   math.MaxUint,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) newScheduler() *plumbing.Scheduler {
	if o.scheduler != nil {
		return o.scheduler
	}
	return plumbing.NewScheduler(plumbing.Config{
		MaxWorkers:    o.maxWorkers,
		Logger:        o.logger.Logger,
		Observer:      o.observer,
		RecoverPanics: o.recoverPanics,
	})
}
