package parange

import (
	"cmp"
	"math"
	"math/big"

	"lukechampine.com/uint128"

	"github.com/hupe1980/parange/internal/conv"
)

// Uint128 is an unsigned 128-bit integer. Range code only uses its wrapping
// operations (AddWrap, SubWrap); Add and Sub panic on overflow.
type Uint128 = uint128.Uint128

// Int128 is a signed two's complement 128-bit integer sharing Uint128's
// bit layout. Arithmetic wraps like int64 does.
type Int128 struct {
	Hi, Lo uint64
}

var (
	Uint128Max = uint128.Max
	Int128Min  = Int128{Hi: 1 << 63}
	Int128Max  = Int128{Hi: 1<<63 - 1, Lo: math.MaxUint64}
)

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// Uint128From64 returns v as a Uint128.
func Uint128From64(v uint64) Uint128 { return uint128.From64(v) }

// Int128From64 returns v sign-extended to 128 bits.
func Int128From64(v int64) Int128 {
	var hi uint64
	if v < 0 {
		hi = math.MaxUint64
	}
	return Int128{Hi: hi, Lo: uint64(v)}
}

// Uint128FromBig converts v. It reports false if v is out of range.
func Uint128FromBig(v *big.Int) (Uint128, bool) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return Uint128{}, false
	}
	return uint128.FromBig(v), true
}

// Int128FromBig converts v. It reports false if v is out of range.
func Int128FromBig(v *big.Int) (Int128, bool) {
	if v.Cmp(Int128Min.Big()) < 0 || v.Cmp(Int128Max.Big()) > 0 {
		return Int128{}, false
	}
	x := v
	if v.Sign() < 0 {
		x = new(big.Int).Add(v, two128)
	}
	return int128Bits(uint128.FromBig(x)), true
}

// int128Bits reinterprets the bits of u as a signed value.
func int128Bits(u Uint128) Int128 { return Int128{Hi: u.Hi, Lo: u.Lo} }

// Add returns i + v, wrapping on overflow.
func (i Int128) Add(v Int128) Int128 {
	return int128Bits(i.Uint128().AddWrap(v.Uint128()))
}

// Cmp compares i and v in signed order and returns -1, 0 or +1.
func (i Int128) Cmp(v Int128) int {
	if i.Hi != v.Hi {
		return cmp.Compare(int64(i.Hi), int64(v.Hi))
	}
	return cmp.Compare(i.Lo, v.Lo)
}

// Uint128 reinterprets the bits of i as an unsigned value.
func (i Int128) Uint128() Uint128 { return uint128.New(i.Lo, i.Hi) }

// Big returns i as a big.Int.
func (i Int128) Big() *big.Int {
	b := i.Uint128().Big()
	if int64(i.Hi) < 0 {
		b.Sub(b, two128)
	}
	return b
}

func (i Int128) String() string { return i.Big().String() }

// U128 is the Width of Uint128.
type U128 struct{}

// I128 is the Width of Int128.
type I128 struct{}

var (
	_ Width[Uint128, Uint128] = U128{}
	_ Width[Int128, Uint128]  = I128{}
)

var one128 = uint128.From64(1)

func (U128) Bits() uint { return 128 }
func (U128) Compare(a, b Uint128) int { return a.Cmp(b) }
func (U128) Span(start, end Uint128) Uint128 { return end.SubWrap(start) }
func (U128) Offset(v Uint128, n Uint128) Uint128 { return v.AddWrap(n) }
func (U128) Half(span Uint128) Uint128 { return half128(span) }
func (U128) Inc(n Uint128) (Uint128, bool) { return inc128(n) }
func (U128) Dec(n Uint128) Uint128 { return n.SubWrap(one128) }
func (U128) IsZero(n Uint128) bool { return n.IsZero() }
func (U128) ToIndex(n Uint128) (uint, bool) { return index128(n) }
func (U128) FromIndex(i uint) Uint128 { return uint128.From64(uint64(i)) }

func (I128) Bits() uint { return 128 }
func (I128) Compare(a, b Int128) int { return a.Cmp(b) }
func (I128) Span(start, end Int128) Uint128 { return end.Uint128().SubWrap(start.Uint128()) }
func (I128) Offset(v Int128, n Uint128) Int128 { return int128Bits(v.Uint128().AddWrap(n)) }
func (I128) Half(span Uint128) Uint128 { return half128(span) }
func (I128) Inc(n Uint128) (Uint128, bool) { return inc128(n) }
func (I128) Dec(n Uint128) Uint128 { return n.SubWrap(one128) }
func (I128) IsZero(n Uint128) bool { return n.IsZero() }
func (I128) ToIndex(n Uint128) (uint, bool) { return index128(n) }
func (I128) FromIndex(i uint) Uint128 { return uint128.From64(uint64(i)) }

func half128(span Uint128) Uint128 {
	return span.Rsh(1).AddWrap(uint128.From64(span.Lo & 1))
}

func inc128(n Uint128) (Uint128, bool) {
	m := n.AddWrap(one128)
	return m, !m.IsZero()
}

func index128(n Uint128) (uint, bool) {
	if n.Hi != 0 {
		return 0, false
	}
	i, err := conv.Uint64ToUint(n.Lo)
	return i, err == nil
}
