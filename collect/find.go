package collect

import (
	"math"
	"sync/atomic"

	"github.com/hupe1980/parange/plumbing"
)

// Found is the result of FindFirst and FindLast.
type Found[T any] struct {
	Value T
	OK    bool
}

type matchPosition uint8

const (
	matchFirst matchPosition = iota
	matchLast
)

// findConsumer searches the pieces of a drive concurrently. Every piece owns a
// window [lower, upper] of abstract positions that is ordered like the range
// itself. best holds the position of the best match reported so far, which
// lets pieces that cannot beat it stop early.
type findConsumer[T any] struct {
	pred  func(T) bool
	pos   matchPosition
	lower uint64
	upper uint64
	best  *atomic.Uint64
}

// FindFirst returns a consumer yielding the lowest element for which pred
// holds. pred may be called for elements past the match.
func FindFirst[T any](pred func(T) bool) plumbing.UnindexedConsumer[T, Found[T]] {
	best := new(atomic.Uint64)
	best.Store(math.MaxUint64)
	return &findConsumer[T]{pred: pred, pos: matchFirst, lower: 1, upper: math.MaxUint64, best: best}
}

// FindLast returns a consumer yielding the highest element for which pred
// holds.
func FindLast[T any](pred func(T) bool) plumbing.UnindexedConsumer[T, Found[T]] {
	return &findConsumer[T]{pred: pred, pos: matchLast, lower: 1, upper: math.MaxUint64, best: new(atomic.Uint64)}
}

func (c *findConsumer[T]) halves() (left, right *findConsumer[T]) {
	mid := c.lower + (c.upper-c.lower)/2
	l, r := *c, *c
	l.upper = mid
	r.lower = mid
	return &l, &r
}

func (c *findConsumer[T]) SplitAt(uint) (plumbing.Consumer[T, Found[T]], plumbing.Consumer[T, Found[T]], plumbing.Reducer[Found[T]]) {
	l, r := c.halves()
	return l, r, c.ToReducer()
}

func (c *findConsumer[T]) SplitOffLeft() plumbing.UnindexedConsumer[T, Found[T]] {
	l, r := c.halves()
	*c = *r
	return l
}

func (c *findConsumer[T]) IntoFolder() plumbing.Folder[T, Found[T]] {
	boundary := c.lower
	if c.pos == matchLast {
		boundary = c.upper
	}
	return &findFolder[T]{c: c, boundary: boundary}
}

// Full reports that a better match than anything in this window was found.
func (c *findConsumer[T]) Full() bool {
	if c.pos == matchFirst {
		return c.best.Load() < c.lower
	}
	return c.best.Load() > c.upper
}

func (c *findConsumer[T]) ToReducer() plumbing.Reducer[Found[T]] {
	if c.pos == matchFirst {
		return plumbing.ReduceFunc[Found[T]](func(left, right Found[T]) Found[T] {
			if left.OK {
				return left
			}
			return right
		})
	}
	return plumbing.ReduceFunc[Found[T]](func(left, right Found[T]) Found[T] {
		if right.OK {
			return right
		}
		return left
	})
}

var _ plumbing.Reversible[int] = (*findFolder[int])(nil)

type findFolder[T any] struct {
	c        *findConsumer[T]
	boundary uint64
	item     T
	found    bool
	// backward is set when items arrive in descending order, so the first
	// match is final for FindLast too.
	backward bool
}

// Reversed lets a FindLast leaf scan from its end and stop at the first match.
func (f *findFolder[T]) Reversed() (plumbing.Sink[T], bool) {
	if f.c.pos != matchLast {
		return nil, false
	}
	f.backward = true
	return f, true
}

func (f *findFolder[T]) done() bool {
	return f.found && (f.c.pos == matchFirst || f.backward)
}

func (f *findFolder[T]) Consume(item T) {
	if f.done() {
		return
	}
	if !f.c.pred(item) {
		return
	}
	f.item, f.found = item, true
	f.publish()
}

func (f *findFolder[T]) publish() {
	for {
		cur := f.c.best.Load()
		better := f.boundary < cur
		if f.c.pos == matchLast {
			better = f.boundary > cur
		}
		if !better || f.c.best.CompareAndSwap(cur, f.boundary) {
			return
		}
	}
}

func (f *findFolder[T]) Full() bool {
	if f.done() {
		return true
	}
	if f.c.pos == matchFirst {
		return f.c.best.Load() < f.boundary
	}
	return f.c.best.Load() > f.boundary
}

func (f *findFolder[T]) Complete() Found[T] {
	return Found[T]{Value: f.item, OK: f.found}
}
