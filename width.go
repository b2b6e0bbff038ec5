package parange

import (
	"cmp"
	"math/bits"

	"github.com/hupe1980/parange/internal/conv"
)

// Integer is the set of native Go integer element types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Unsigned is the set of native cardinality ("length") types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Width describes the arithmetic of one fixed-width integer element type T
// whose cardinalities are measured in the same-width unsigned type L.
//
// Implementations are zero-size types; the range code calls methods on the
// zero value. Every method is total. Wraparound is intentional in Span, Offset,
// Inc and Dec and nowhere else.
type Width[T, L any] interface {
	// Bits returns the native width of T.
	Bits() uint
	// Compare orders a and b in T's own signed or unsigned order.
	Compare(a, b T) int
	// Span returns end - start modulo 2^Bits. For start <= end this is the
	// element count minus one, which always fits L.
	Span(start, end T) L
	// Offset returns v + n modulo 2^Bits.
	Offset(v T, n L) T
	// Half returns floor((span+1)/2) without overflowing.
	Half(span L) L
	// Inc returns n+1 and false when the addition wraps to zero.
	Inc(n L) (L, bool)
	// Dec returns n-1 modulo 2^Bits.
	Dec(n L) L
	IsZero(n L) bool
	// ToIndex narrows n to the pointer-sized index type.
	ToIndex(n L) (uint, bool)
	// FromIndex widens (or, for narrower L, truncates) i to L.
	FromIndex(i uint) L
}

// Native is the Width of a native Go integer T measured in L.
// L must have the same width as T.
type Native[T Integer, L Unsigned] struct{}

// Native widths.
type (
	I8    = Native[int8, uint8]
	I16   = Native[int16, uint16]
	I32   = Native[int32, uint32]
	I64   = Native[int64, uint64]
	Isize = Native[int, uint]
	U8    = Native[uint8, uint8]
	U16   = Native[uint16, uint16]
	U32   = Native[uint32, uint32]
	U64   = Native[uint64, uint64]
	Usize = Native[uint, uint]
	Uptr  = Native[uintptr, uintptr]
)

var (
	_ Width[int8, uint8]      = I8{}
	_ Width[uint64, uint64]   = U64{}
	_ Width[uintptr, uintptr] = Uptr{}
)

func (Native[T, L]) Bits() uint { return uint(bits.OnesCount64(uint64(^L(0)))) }

func (Native[T, L]) Compare(a, b T) int { return cmp.Compare(a, b) }

func (Native[T, L]) Span(start, end T) L { return L(end) - L(start) }

func (Native[T, L]) Offset(v T, n L) T { return v + T(n) }

func (Native[T, L]) Half(span L) L { return span/2 + span&1 }

func (Native[T, L]) Inc(n L) (L, bool) {
	m := n + 1
	return m, m != 0
}

func (Native[T, L]) Dec(n L) L { return n - 1 }

func (Native[T, L]) IsZero(n L) bool { return n == 0 }

func (Native[T, L]) ToIndex(n L) (uint, bool) {
	i, err := conv.Uint64ToUint(uint64(n))
	return i, err == nil
}

func (Native[T, L]) FromIndex(i uint) L { return L(i) }
