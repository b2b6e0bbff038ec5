// Package parange splits inclusive integer ranges for parallel processing.
//
// A range [start, end] over any fixed-width integer type, including
// Int128Min..=Int128Max and other full-domain ranges, is divided into disjoint
// sub-ranges that cover it. Workers fold the sub-ranges concurrently and the
// partial results are reduced back in range order. Lengths and midpoints are
// computed without ever overflowing the element type.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	// Sum 1..=1_000_000 on all cores.
//	sum, _ := parange.DriveUnindexed(ctx, parange.FromInt64(1, 1_000_000), collect.Sum[int64]())
//
//	// Collect into a presized slice (8- and 16-bit ranges, and 32-bit ranges on
//	// 64-bit platforms, have a length that always fits in a uint).
//	it, _ := parange.FromInt16(-100, 100).AsIndexed()
//	out, _ := collect.Slice[int16](it.Len())
//	vals, _ := parange.Drive(ctx, it, out)
//
// # Widths
//
// Every element type is described by a Width: its bit size, its same-width
// unsigned length type, and the wraparound arithmetic the splitting math
// needs. Native Go integers use Native (I8, U64, Isize, ...); 128-bit ranges
// use Int128 and Uint128 with the I128 and U128 widths.
//
// # Indexed and Unindexed Splitting
//
// A width is statically indexed when 2^bits fits in a uint (see IsIndexed).
// Its ranges expose an exact Len and split at any index (IndexedProducer).
// Wider types use UnindexedProducer, which only halves a range and reports an
// optional length.
//
// DriveUnindexed picks the exact-length path whenever a particular range's
// length fits in a uint, even for wide types, and falls back to recursive
// halving otherwise. Both paths produce the same elements in the same order.
//
// # Split Convention
//
// SplitAt(i) gives the left producer exactly i elements; the right producer
// starts at start+i. Split gives the left half floor(n/2) elements. Either
// way the halves are disjoint and their concatenation is the original range.
//
// # Scheduling
//
// Drives run on a plumbing.Scheduler. Options control the worker count,
// minimum and maximum piece sizes, logging, metrics and panic recovery:
//
//	metrics := &parange.BasicMetricsObserver{}
//	n, err := parange.DriveUnindexed(ctx, parange.FromUint64(0, 1<<40), collect.Count[uint64](),
//	    parange.WithMaxWorkers(4),
//	    parange.WithMetricsObserver(metrics),
//	    parange.WithLogLevel(slog.LevelDebug),
//	)
//
// Splitting past a producer's length is a scheduler bug and panics with
// *SplitIndexError. A cancelled context stops the drive with an error
// matching ErrCanceled.
package parange
