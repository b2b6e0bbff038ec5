package plumbing

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hupe1980/parange/internal/resource"
)

// Kind identifies which bridge performed a split or folded a leaf.
type Kind uint8

const (
	// KindIndexed is the exact-length bridge (Bridge).
	KindIndexed Kind = iota
	// KindUnindexed is the halving bridge (BridgeUnindexed).
	KindUnindexed
)

func (k Kind) String() string {
	switch k {
	case KindIndexed:
		return "indexed"
	case KindUnindexed:
		return "unindexed"
	default:
		return "unknown"
	}
}

// Observer receives scheduling events. Implementations must be safe for
// concurrent use; events arrive from every worker goroutine.
type Observer interface {
	// OnSplit is called each time a producer is divided.
	OnSplit(kind Kind)
	// OnLeaf is called after a producer was folded sequentially.
	OnLeaf(kind Kind, items uint)
	// OnFork is called when a right half is handed to a new goroutine.
	OnFork()
	// OnInline is called when no worker slot was free at split time. The
	// right half may still be stolen later, see OnSteal.
	OnInline()
	// OnSteal is called when a right half left behind at split time was
	// picked up by a goroutine that waited for a free worker slot.
	OnSteal()
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnSplit(Kind)      {}
func (NoopObserver) OnLeaf(Kind, uint) {}
func (NoopObserver) OnFork()           {}
func (NoopObserver) OnInline()         {}
func (NoopObserver) OnSteal()          {}

// Config configures a Scheduler.
type Config struct {
	// MaxWorkers bounds the goroutines working on a drive, the caller
	// included. If 0, defaults to GOMAXPROCS.
	MaxWorkers int

	// Logger receives sampled debug traces of split decisions.
	// If nil, traces are discarded.
	Logger *slog.Logger

	// Observer receives scheduling events. If nil, NoopObserver is used.
	Observer Observer

	// RecoverPanics turns panics raised during a drive into *PanicError
	// results instead of re-raising them on the caller.
	RecoverPanics bool
}

// Scheduler runs bridges. A Scheduler may be shared by concurrent drives;
// they then compete for the same worker slots.
type Scheduler struct {
	threads       uint
	workers       *resource.Controller
	logger        *slog.Logger
	observer      Observer
	recoverPanics bool

	trace rate.Sometimes
}

// NewScheduler creates a scheduler from cfg.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = runtime.GOMAXPROCS(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Observer == nil {
		cfg.Observer = NoopObserver{}
	}

	return &Scheduler{
		threads: uint(cfg.MaxWorkers),
		// The calling goroutine is a worker without holding a slot.
		workers:       resource.NewController(resource.Config{MaxWorkers: int64(cfg.MaxWorkers - 1)}),
		logger:        cfg.Logger,
		observer:      cfg.Observer,
		recoverPanics: cfg.RecoverPanics,
		trace:         rate.Sometimes{First: 16, Interval: time.Second},
	}
}

var defaultScheduler = sync.OnceValue(func() *Scheduler {
	return NewScheduler(Config{})
})

// DefaultScheduler returns the shared scheduler used when nil is passed to
// Bridge or BridgeUnindexed.
func DefaultScheduler() *Scheduler {
	return defaultScheduler()
}

// Workers returns the maximum number of goroutines per drive.
func (s *Scheduler) Workers() int {
	return int(s.threads)
}

// ActiveForks returns the number of forked or stolen halves currently holding
// a worker slot.
func (s *Scheduler) ActiveForks() int64 {
	return s.workers.WorkersInUse()
}

func (s *Scheduler) tracef(ctx context.Context, msg string, args ...any) {
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	s.trace.Do(func() {
		s.logger.DebugContext(ctx, msg, args...)
	})
}

func (s *Scheduler) recoverInto(err *error) {
	if !s.recoverPanics {
		return
	}
	if v := recover(); v != nil {
		*err = &PanicError{Value: v, Stack: debug.Stack()}
	}
}
