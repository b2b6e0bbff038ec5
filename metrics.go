package parange

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/parange/plumbing"
)

// MetricsObserver receives scheduling events from drives.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see package promobserver).
type MetricsObserver = plumbing.Observer

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver = plumbing.NoopObserver

// counter is an atomic counter on its own cache line. Workers update these
// concurrently from every goroutine of a drive.
type counter struct {
	atomic.Uint64
	_ cpu.CacheLinePad
}

// BasicMetricsObserver provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsObserver struct {
	indexedSplits   counter
	unindexedSplits counter
	indexedLeaves   counter
	unindexedLeaves counter
	items           counter
	forks           counter
	inline          counter
	steals          counter
}

var _ MetricsObserver = (*BasicMetricsObserver)(nil)

// OnSplit implements MetricsObserver.
func (b *BasicMetricsObserver) OnSplit(kind plumbing.Kind) {
	if kind == plumbing.KindIndexed {
		b.indexedSplits.Add(1)
		return
	}
	b.unindexedSplits.Add(1)
}

// OnLeaf implements MetricsObserver.
func (b *BasicMetricsObserver) OnLeaf(kind plumbing.Kind, items uint) {
	if kind == plumbing.KindIndexed {
		b.indexedLeaves.Add(1)
	} else {
		b.unindexedLeaves.Add(1)
	}
	b.items.Add(uint64(items))
}

// OnFork implements MetricsObserver.
func (b *BasicMetricsObserver) OnFork() { b.forks.Add(1) }

// OnInline implements MetricsObserver.
func (b *BasicMetricsObserver) OnInline() { b.inline.Add(1) }

// OnSteal implements MetricsObserver.
func (b *BasicMetricsObserver) OnSteal() { b.steals.Add(1) }

// Stats returns a snapshot of current metrics.
func (b *BasicMetricsObserver) Stats() BasicMetricsStats {
	return BasicMetricsStats{
		IndexedSplits:   b.indexedSplits.Load(),
		UnindexedSplits: b.unindexedSplits.Load(),
		IndexedLeaves:   b.indexedLeaves.Load(),
		UnindexedLeaves: b.unindexedLeaves.Load(),
		Items:           b.items.Load(),
		Forks:           b.forks.Load(),
		Inline:          b.inline.Load(),
		Steals:          b.steals.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsObserver state.
type BasicMetricsStats struct {
	IndexedSplits   uint64
	UnindexedSplits uint64
	IndexedLeaves   uint64
	UnindexedLeaves uint64
	// Items is the number of elements folded across all leaves.
	Items  uint64
	Forks  uint64
	Inline uint64
	// Steals counts inline right halves that another worker took over.
	Steals uint64
}

// Splits returns the total number of splits of either kind.
func (s BasicMetricsStats) Splits() uint64 { return s.IndexedSplits + s.UnindexedSplits }

// Leaves returns the total number of leaves of either kind.
func (s BasicMetricsStats) Leaves() uint64 { return s.IndexedLeaves + s.UnindexedLeaves }
