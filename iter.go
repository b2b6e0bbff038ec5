package parange

import (
	"context"
	"iter"
	"math"

	"github.com/hupe1980/parange/plumbing"
)

const (
	pathIndexed   = "indexed"
	pathSplitting = "splitting"
)

// Iter is the parallel-iterable form of an inclusive range.
type Iter[T, L any, W Width[T, L]] struct {
	r Range[T, L, W]
}

// Over returns the parallel-iterable form of [start, end].
func Over[T, L any, W Width[T, L]](start, end T) Iter[T, L, W] {
	return Iter[T, L, W]{r: NewRange[T, L, W](start, end)}
}

// FromInt8 ranges over the int8 values in [start, end].
func FromInt8(start, end int8) Iter[int8, uint8, I8] { return Over[int8, uint8, I8](start, end) }

// FromInt16 ranges over the int16 values in [start, end].
func FromInt16(start, end int16) Iter[int16, uint16, I16] { return Over[int16, uint16, I16](start, end) }

// FromInt32 ranges over the int32 values in [start, end].
func FromInt32(start, end int32) Iter[int32, uint32, I32] { return Over[int32, uint32, I32](start, end) }

// FromInt64 ranges over the int64 values in [start, end].
func FromInt64(start, end int64) Iter[int64, uint64, I64] { return Over[int64, uint64, I64](start, end) }

// FromInt ranges over the int values in [start, end].
func FromInt(start, end int) Iter[int, uint, Isize] { return Over[int, uint, Isize](start, end) }

// FromUint8 ranges over the uint8 values in [start, end].
func FromUint8(start, end uint8) Iter[uint8, uint8, U8] { return Over[uint8, uint8, U8](start, end) }

// FromUint16 ranges over the uint16 values in [start, end].
func FromUint16(start, end uint16) Iter[uint16, uint16, U16] {
	return Over[uint16, uint16, U16](start, end)
}

// FromUint32 ranges over the uint32 values in [start, end].
func FromUint32(start, end uint32) Iter[uint32, uint32, U32] {
	return Over[uint32, uint32, U32](start, end)
}

// FromUint64 ranges over the uint64 values in [start, end].
func FromUint64(start, end uint64) Iter[uint64, uint64, U64] {
	return Over[uint64, uint64, U64](start, end)
}

// FromUint ranges over the uint values in [start, end].
func FromUint(start, end uint) Iter[uint, uint, Usize] { return Over[uint, uint, Usize](start, end) }

// FromUintptr ranges over the uintptr values in [start, end].
func FromUintptr(start, end uintptr) Iter[uintptr, uintptr, Uptr] {
	return Over[uintptr, uintptr, Uptr](start, end)
}

// FromInt128 ranges over the Int128 values in [start, end].
func FromInt128(start, end Int128) Iter[Int128, Uint128, I128] {
	return Over[Int128, Uint128, I128](start, end)
}

// FromUint128 ranges over the Uint128 values in [start, end].
func FromUint128(start, end Uint128) Iter[Uint128, Uint128, U128] {
	return Over[Uint128, Uint128, U128](start, end)
}

// Range returns the underlying range.
func (it Iter[T, L, W]) Range() Range[T, L, W] { return it.r }

// OptLen returns the number of elements if it fits in a uint.
func (it Iter[T, L, W]) OptLen() (uint, bool) { return it.r.IndexLen() }

// Indexed reports whether W is statically indexed. See IsIndexed.
func (it Iter[T, L, W]) Indexed() bool { return IsIndexed[T, L, W]() }

// AsIndexed returns the exact-length view of it when W is statically indexed.
func (it Iter[T, L, W]) AsIndexed() (IndexedIter[T, L, W], bool) {
	if !it.Indexed() {
		return IndexedIter[T, L, W]{}, false
	}
	return IndexedIter[T, L, W]{r: it.r}, true
}

// Seq yields the elements sequentially.
func (it Iter[T, L, W]) Seq() iter.Seq[T] { return it.r.All() }

// IndexedIter is an Iter whose length always fits in a uint.
type IndexedIter[T, L any, W Width[T, L]] struct {
	r Range[T, L, W]
}

func (it IndexedIter[T, L, W]) Range() Range[T, L, W] { return it.r }

// Len returns the exact number of elements.
func (it IndexedIter[T, L, W]) Len() uint {
	n, _ := it.r.IndexLen()
	return n
}

// DriveUnindexed drives every element of it into c and returns the reduced
// result.
//
// When the element count fits in a uint the range is driven through the
// exact-length bridge, even for widths that are not statically indexed; the
// index i maps back to start+i with wraparound. Otherwise the range is halved
// recursively. Both paths yield the same elements in the same order.
func DriveUnindexed[T, L any, W Width[T, L], R any](ctx context.Context, it Iter[T, L, W], c plumbing.UnindexedConsumer[T, R], opts ...Option) (R, error) {
	o := applyOptions(opts)
	s := o.newScheduler()

	var (
		res  R
		err  error
		path string
	)
	n, ok := it.OptLen()
	if ok {
		path = pathIndexed
		res, err = driveByIndex(ctx, s, it.r, n, plumbing.Consumer[T, R](c), o)
	} else {
		path = pathSplitting
		res, err = driveBySplitting(ctx, s, it.r, c)
	}

	err = translateError(err)
	o.logger.WithWidth(it.r.bits()).WithRange(it.r).LogDrive(ctx, path, n, ok, err)
	return res, err
}

// Drive drives every element of it into the length-aware consumer c.
func Drive[T, L any, W Width[T, L], R any](ctx context.Context, it IndexedIter[T, L, W], c plumbing.Consumer[T, R], opts ...Option) (R, error) {
	o := applyOptions(opts)
	s := o.newScheduler()

	n := it.Len()
	res, err := driveByIndex(ctx, s, it.r, n, c, o)

	err = translateError(err)
	o.logger.WithWidth(it.r.bits()).WithRange(it.r).LogDrive(ctx, pathIndexed, n, true, err)
	return res, err
}

// WithProducer hands an IndexedProducer over it to cb.
func WithProducer[T, L any, W Width[T, L], O any](it IndexedIter[T, L, W], cb func(IndexedProducer[T, L, W]) O) O {
	return cb(IndexedProducer[T, L, W]{r: it.r, minLen: 1, maxLen: math.MaxUint})
}

func driveByIndex[T, L any, W Width[T, L], R any](ctx context.Context, s *plumbing.Scheduler, r Range[T, L, W], n uint, c plumbing.Consumer[T, R], o options) (R, error) {
	if p, ok := NewIndexedProducer(r); ok {
		p.minLen, p.maxLen = o.minLen, o.maxLen
		return plumbing.Bridge(ctx, s, n, p, c)
	}

	p := offsetProducer[T, L, W]{base: r.start, hi: n, minLen: o.minLen, maxLen: o.maxLen}
	return plumbing.Bridge(ctx, s, n, p, c)
}

func driveBySplitting[T, L any, W Width[T, L], R any](ctx context.Context, s *plumbing.Scheduler, r Range[T, L, W], c plumbing.UnindexedConsumer[T, R]) (R, error) {
	return plumbing.BridgeUnindexed(ctx, s, NewUnindexedProducer(r), c)
}
