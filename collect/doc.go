// Package collect provides the consumers that terminate a parallel drive.
//
// Slice is length-aware and writes each element into its final position of
// one preallocated slice. The other consumers can also be split without
// knowing where the producer split, so they work with both bridges:
//
//	sum, err := parange.DriveUnindexed(ctx, parange.FromInt64(1, 100), collect.Sum[int64]())
//
//	first, err := parange.DriveUnindexed(ctx, it, collect.FindFirst(func(v uint64) bool {
//	    return v%7 == 0
//	}))
//
// Every consumer is safe to split across goroutines. A consumer value is
// meant for a single drive.
package collect
