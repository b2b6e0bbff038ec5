package parange

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/parange/testutil"
)

func TestCardinality(t *testing.T) {
	t.Run("ExhaustiveInt8", func(t *testing.T) {
		for s := math.MinInt8; s <= math.MaxInt8; s++ {
			for e := math.MinInt8; e <= math.MaxInt8; e++ {
				n, exact := Cardinality[int8, uint8, I8](int8(s), int8(e))
				want := max(e-s+1, 0)
				if want == 256 {
					assert.False(t, exact)
					assert.Equal(t, uint8(math.MaxUint8), n)
					continue
				}
				require.True(t, exact, "%d..=%d", s, e)
				require.Equal(t, uint8(want), n, "%d..=%d", s, e)
			}
		}
	})

	t.Run("ExhaustiveUint8", func(t *testing.T) {
		for s := 0; s <= math.MaxUint8; s++ {
			for e := 0; e <= math.MaxUint8; e++ {
				n, exact := Cardinality[uint8, uint8, U8](uint8(s), uint8(e))
				want := max(e-s+1, 0)
				if want == 256 {
					assert.False(t, exact)
					continue
				}
				require.True(t, exact)
				require.Equal(t, uint8(want), n)
			}
		}
	})

	t.Run("FullDomains", func(t *testing.T) {
		n16, exact := Cardinality[int16, uint16, I16](math.MinInt16, math.MaxInt16)
		assert.False(t, exact)
		assert.Equal(t, uint16(math.MaxUint16), n16)

		n32, exact := Cardinality[uint32, uint32, U32](0, math.MaxUint32)
		assert.False(t, exact)
		assert.Equal(t, uint32(math.MaxUint32), n32)

		n64, exact := Cardinality[int64, uint64, I64](math.MinInt64, math.MaxInt64)
		assert.False(t, exact)
		assert.Equal(t, uint64(math.MaxUint64), n64)

		n128, exact := Cardinality[Int128, Uint128, I128](Int128Min, Int128Max)
		assert.False(t, exact)
		assert.Equal(t, Uint128Max, n128)

		u128, exact := Cardinality[Uint128, Uint128, U128](Uint128{}, Uint128Max)
		assert.False(t, exact)
		assert.Equal(t, Uint128Max, u128)
	})

	t.Run("OneShortOfFull", func(t *testing.T) {
		n, exact := Cardinality[uint64, uint64, U64](1, math.MaxUint64)
		assert.True(t, exact)
		assert.Equal(t, uint64(math.MaxUint64), n)

		m, exact := Cardinality[Int128, Uint128, I128](Int128Min.Add(Int128From64(1)), Int128Max)
		assert.True(t, exact)
		assert.Equal(t, Uint128Max, m)
	})

	t.Run("Empty", func(t *testing.T) {
		n, exact := Cardinality[int64, uint64, I64](5, 4)
		assert.True(t, exact)
		assert.Zero(t, n)

		m, exact := Cardinality[Int128, Uint128, I128](Int128Max, Int128Min)
		assert.True(t, exact)
		assert.True(t, m.IsZero())
	})

	t.Run("SingleElement", func(t *testing.T) {
		n, exact := Cardinality[int64, uint64, I64](math.MinInt64, math.MinInt64)
		assert.True(t, exact)
		assert.Equal(t, uint64(1), n)
	})

	t.Run("Int64MatchesBig", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		for range 1000 {
			s, e := rng.Int64Bounds()
			want := new(big.Int).Sub(big.NewInt(e), big.NewInt(s))
			want.Add(want, big.NewInt(1))

			n, exact := Cardinality[int64, uint64, I64](s, e)
			if !want.IsUint64() {
				assert.False(t, exact)
				continue
			}
			assert.True(t, exact)
			assert.Equal(t, want.Uint64(), n)
		}
	})

	t.Run("Int128Octillion", func(t *testing.T) {
		octillion, _ := new(big.Int).SetString("1000000000000000000000000000", 10)
		lo, ok := Int128FromBig(new(big.Int).Neg(octillion))
		require.True(t, ok)
		hi, ok := Int128FromBig(octillion)
		require.True(t, ok)

		n, exact := Cardinality[Int128, Uint128, I128](lo, hi)
		assert.True(t, exact)
		assert.Equal(t, "2000000000000000000000000001", n.String())
	})

	t.Run("Uint128MatchesBig", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		for range 500 {
			a := Uint128{Hi: rng.Uint64(), Lo: rng.Uint64()}
			b := Uint128{Hi: rng.Uint64(), Lo: rng.Uint64()}
			if a.Cmp(b) > 0 {
				a, b = b, a
			}
			want := new(big.Int).Sub(b.Big(), a.Big())
			want.Add(want, big.NewInt(1))

			n, exact := Cardinality[Uint128, Uint128, U128](a, b)
			require.True(t, exact)
			assert.Equal(t, want.String(), n.String())
		}
	})
}

func TestIndexLen(t *testing.T) {
	t.Run("FullDomainFitsWhenNarrow", func(t *testing.T) {
		n, ok := indexLen[int8, uint8, I8](math.MinInt8, math.MaxInt8)
		assert.True(t, ok)
		assert.Equal(t, uint(256), n)

		n, ok = indexLen[uint16, uint16, U16](0, math.MaxUint16)
		assert.True(t, ok)
		assert.Equal(t, uint(1<<16), n)
	})

	t.Run("FullDomainOfIndexWidth", func(t *testing.T) {
		_, ok := indexLen[uint, uint, Usize](0, math.MaxUint)
		assert.False(t, ok)

		_, ok = indexLen[Uint128, Uint128, U128](Uint128{}, Uint128Max)
		assert.False(t, ok)
	})

	t.Run("Empty", func(t *testing.T) {
		n, ok := indexLen[int64, uint64, I64](1, 0)
		assert.True(t, ok)
		assert.Zero(t, n)
	})
}
