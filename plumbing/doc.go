// Package plumbing defines the producer/consumer contracts used to drive a
// splittable range in parallel, and a small fork/join scheduler that runs them.
//
// # Contracts
//
// A Producer owns a piece of work of known length and can be split at any
// index. An UnindexedProducer only knows how to halve itself. Both fold their
// remaining items into a Sink once the scheduler stops splitting.
//
// A Consumer is split alongside its producer and hands out a Folder for each
// leaf. Leaf results are combined by the Reducer returned from the split, left
// result first, so the final result follows producer order regardless of
// which goroutine finished first.
//
// # Scheduling
//
//	s := plumbing.NewScheduler(plumbing.Config{MaxWorkers: 8})
//	res, err := plumbing.Bridge(ctx, s, n, producer, consumer)
//
// The scheduler splits adaptively: it starts with a split budget equal to the
// worker count, halves it at every split and refills it whenever a right half
// starts on another goroutine. The left half always runs on the goroutine that
// split. The right half is forked when a worker slot is free. Otherwise it
// waits to be stolen by the next goroutine that gets a slot, or is run inline
// once the left half is done. A goroutine blocked on a stolen half lends its
// slot out while it waits.
//
// Folders that implement Reversible are fed backward by producers that
// implement BackwardProducer, so a search for the last match stops early.
//
// Panics raised while folding or splitting on a forked goroutine are re-raised
// on the goroutine that called Bridge, unless Config.RecoverPanics is set, in
// which case they are returned as *PanicError.
package plumbing
