package parange

import "math/bits"

// indexedWidths maps the pointer-sized index width to the element widths whose
// maximal cardinality (2^bits) is always representable as a uint.
var indexedWidths = map[uint]map[uint]bool{
	16: {8: true},
	32: {8: true, 16: true},
	64: {8: true, 16: true, 32: true},
}

// IndexBits is the width of the pointer-sized index type (uint).
const IndexBits = bits.UintSize

func staticallyIndexed(elemBits, indexBits uint) bool {
	return indexedWidths[indexBits][elemBits]
}

// IsIndexed reports whether every range over W has a length that fits in a
// uint on this platform. Such ranges are driven by exact-length splitting.
func IsIndexed[T, L any, W Width[T, L]]() bool {
	var w W
	return staticallyIndexed(w.Bits(), IndexBits)
}
