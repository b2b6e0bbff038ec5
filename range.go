package parange

import (
	"fmt"
	"iter"
)

// Range is the inclusive range [start, end] over the element type of W.
// It is an immutable value; splitting returns new ranges.
type Range[T, L any, W Width[T, L]] struct {
	start, end T
	empty      bool
}

// NewRange returns [start, end]. The range is empty when start > end.
func NewRange[T, L any, W Width[T, L]](start, end T) Range[T, L, W] {
	var w W
	return Range[T, L, W]{start: start, end: end, empty: w.Compare(start, end) > 0}
}

// Start returns the inclusive lower bound.
func (r Range[T, L, W]) Start() T { return r.start }

// End returns the inclusive upper bound.
func (r Range[T, L, W]) End() T { return r.end }

// IsEmpty reports whether r has no elements.
func (r Range[T, L, W]) IsEmpty() bool { return r.empty }

// Len returns the cardinality of r. See Cardinality.
func (r Range[T, L, W]) Len() (L, bool) {
	if r.empty {
		var zero L
		return zero, true
	}
	return Cardinality[T, L, W](r.start, r.end)
}

// IndexLen returns the cardinality of r as a uint, or false if it does not fit.
func (r Range[T, L, W]) IndexLen() (uint, bool) {
	if r.empty {
		return 0, true
	}
	return indexLen[T, L, W](r.start, r.end)
}

// Contains reports whether v is an element of r.
func (r Range[T, L, W]) Contains(v T) bool {
	if r.empty {
		return false
	}
	var w W
	return w.Compare(r.start, v) <= 0 && w.Compare(v, r.end) <= 0
}

// All yields the elements of r in ascending order. It stops at end without
// stepping past it, so ranges ending at the type's maximum terminate.
func (r Range[T, L, W]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if r.empty {
			return
		}
		var w W
		one := w.FromIndex(1)
		for v := r.start; ; v = w.Offset(v, one) {
			if !yield(v) {
				return
			}
			if w.Compare(v, r.end) == 0 {
				return
			}
		}
	}
}

// Backward yields the elements of r in descending order.
func (r Range[T, L, W]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if r.empty {
			return
		}
		var w W
		for k := w.Span(r.start, r.end); ; k = w.Dec(k) {
			if !yield(w.Offset(r.start, k)) || w.IsZero(k) {
				return
			}
		}
	}
}

func (r Range[T, L, W]) String() string {
	if r.empty {
		return "(empty)"
	}
	return fmt.Sprintf("%v..=%v", r.start, r.end)
}

// split divides r so that left holds exactly index elements.
// It requires 0 < index < cardinality.
func (r Range[T, L, W]) split(index L) (left, right Range[T, L, W]) {
	var w W
	mid := w.Offset(r.start, index)
	left = Range[T, L, W]{start: r.start, end: w.Offset(r.start, w.Dec(index))}
	right = Range[T, L, W]{start: mid, end: r.end}
	return left, right
}

func (r Range[T, L, W]) bits() uint {
	var w W
	return w.Bits()
}

func emptyAt[T, L any, W Width[T, L]](v T) Range[T, L, W] {
	return Range[T, L, W]{start: v, end: v, empty: true}
}
