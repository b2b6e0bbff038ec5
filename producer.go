package parange

import (
	"math"

	"github.com/hupe1980/parange/plumbing"
)

// IndexedProducer owns one range of a statically indexed width and splits it
// at exact positions.
type IndexedProducer[T, L any, W Width[T, L]] struct {
	r      Range[T, L, W]
	minLen uint
	maxLen uint
}

var _ plumbing.Producer[int8, IndexedProducer[int8, uint8, I8]] = IndexedProducer[int8, uint8, I8]{}

// NewIndexedProducer returns a producer over r. It reports false when W is not
// statically indexed on this platform.
func NewIndexedProducer[T, L any, W Width[T, L]](r Range[T, L, W]) (IndexedProducer[T, L, W], bool) {
	if !IsIndexed[T, L, W]() {
		return IndexedProducer[T, L, W]{}, false
	}
	return IndexedProducer[T, L, W]{r: r, minLen: 1, maxLen: math.MaxUint}, true
}

func (p IndexedProducer[T, L, W]) Range() Range[T, L, W] { return p.r }

// Len returns the exact number of elements.
func (p IndexedProducer[T, L, W]) Len() uint {
	n, _ := p.r.IndexLen()
	return n
}

// SplitAt returns a producer holding the first index elements and one holding
// the rest. It panics with *SplitIndexError if index > Len().
func (p IndexedProducer[T, L, W]) SplitAt(index uint) (IndexedProducer[T, L, W], IndexedProducer[T, L, W]) {
	n := p.Len()
	if index > n {
		panic(&SplitIndexError{Index: index, Len: n})
	}

	left, right := p, p
	switch index {
	case 0:
		left.r = emptyAt[T, L, W](p.r.start)
	case n:
		right.r = emptyAt[T, L, W](p.r.end)
	default:
		var w W
		left.r, right.r = p.r.split(w.FromIndex(index))
	}
	return left, right
}

// FoldWith feeds the elements into s in ascending order.
func (p IndexedProducer[T, L, W]) FoldWith(s plumbing.Sink[T]) {
	plumbing.FoldSeq(p.r.All(), s)
}

// FoldBackward feeds the elements into s in descending order.
func (p IndexedProducer[T, L, W]) FoldBackward(s plumbing.Sink[T]) {
	plumbing.FoldSeq(p.r.Backward(), s)
}

func (p IndexedProducer[T, L, W]) MinLen() uint { return p.minLen }

func (p IndexedProducer[T, L, W]) MaxLen() uint { return p.maxLen }

// UnindexedProducer owns one range of any width and splits it in halves.
type UnindexedProducer[T, L any, W Width[T, L]] struct {
	r Range[T, L, W]
}

var (
	_ plumbing.UnindexedProducer[Int128, UnindexedProducer[Int128, Uint128, I128]] = UnindexedProducer[Int128, Uint128, I128]{}
	_ plumbing.BackwardProducer[Int128]                                            = UnindexedProducer[Int128, Uint128, I128]{}
)

// NewUnindexedProducer returns a producer over r.
func NewUnindexedProducer[T, L any, W Width[T, L]](r Range[T, L, W]) UnindexedProducer[T, L, W] {
	return UnindexedProducer[T, L, W]{r: r}
}

func (p UnindexedProducer[T, L, W]) Range() Range[T, L, W] { return p.r }

// OptLen returns the number of elements if it fits in a uint.
func (p UnindexedProducer[T, L, W]) OptLen() (uint, bool) {
	return p.r.IndexLen()
}

// Split halves the range. The left half gets floor(n/2) elements. A range
// with fewer than two elements is returned unchanged with ok == false.
func (p UnindexedProducer[T, L, W]) Split() (left, right UnindexedProducer[T, L, W], ok bool) {
	if p.r.empty {
		return p, right, false
	}

	var w W
	half := w.Half(w.Span(p.r.start, p.r.end))
	if w.IsZero(half) {
		return p, right, false
	}

	left.r, right.r = p.r.split(half)
	return left, right, true
}

// FoldWith feeds the elements into s in ascending order.
func (p UnindexedProducer[T, L, W]) FoldWith(s plumbing.Sink[T]) {
	plumbing.FoldSeq(p.r.All(), s)
}

// FoldBackward feeds the elements into s in descending order.
func (p UnindexedProducer[T, L, W]) FoldBackward(s plumbing.Sink[T]) {
	plumbing.FoldSeq(p.r.Backward(), s)
}

// offsetProducer re-expresses a range whose length fits a uint as the index
// window [lo, hi) over base; index i yields base + i with wraparound.
type offsetProducer[T, L any, W Width[T, L]] struct {
	base   T
	lo, hi uint
	minLen uint
	maxLen uint
}

func (p offsetProducer[T, L, W]) len() uint { return p.hi - p.lo }

func (p offsetProducer[T, L, W]) SplitAt(index uint) (offsetProducer[T, L, W], offsetProducer[T, L, W]) {
	if n := p.len(); index > n {
		panic(&SplitIndexError{Index: index, Len: n})
	}
	left, right := p, p
	left.hi = p.lo + index
	right.lo = p.lo + index
	return left, right
}

func (p offsetProducer[T, L, W]) FoldWith(s plumbing.Sink[T]) {
	if s.Full() {
		return
	}
	var w W
	for i := p.lo; i < p.hi; i++ {
		s.Consume(w.Offset(p.base, w.FromIndex(i)))
		if s.Full() {
			return
		}
	}
}

func (p offsetProducer[T, L, W]) FoldBackward(s plumbing.Sink[T]) {
	if s.Full() {
		return
	}
	var w W
	for i := p.hi; i > p.lo; {
		i--
		s.Consume(w.Offset(p.base, w.FromIndex(i)))
		if s.Full() {
			return
		}
	}
}

func (p offsetProducer[T, L, W]) MinLen() uint { return p.minLen }

func (p offsetProducer[T, L, W]) MaxLen() uint { return p.maxLen }
