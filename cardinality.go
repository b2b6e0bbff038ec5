package parange

// Cardinality returns the number of elements in the inclusive range
// [start, end] measured in L.
//
// The count of a full-domain range is 2^Bits, one more than L can hold. In
// that case Cardinality saturates at L's maximum and reports exact == false.
// A range with start > end has no elements.
func Cardinality[T, L any, W Width[T, L]](start, end T) (n L, exact bool) {
	var w W
	if w.Compare(start, end) > 0 {
		return n, true
	}

	span := w.Span(start, end)
	if count, ok := w.Inc(span); ok {
		return count, true
	}

	// span is all ones here.
	return span, false
}

// indexLen returns the cardinality of [start, end] as a uint when it fits.
// A saturated full-domain count is 2^Bits, which fits whenever W is narrower
// than the index type.
func indexLen[T, L any, W Width[T, L]](start, end T) (uint, bool) {
	var w W
	n, exact := Cardinality[T, L, W](start, end)
	if exact {
		return w.ToIndex(n)
	}
	if b := w.Bits(); b < IndexBits {
		return 1 << b, true
	}
	return 0, false
}
