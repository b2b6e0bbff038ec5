// Package testutil provides testing utilities for parange.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe random source for picking range
// bounds and small helpers for checking the elements a drive produced.
//
// # Random Bounds
//
//	rng := testutil.NewRNG(seed)
//	lo, hi := rng.Bounds64()      // lo <= hi, biased towards the type's edges
//	s, e := rng.Int64Bounds()
//
// # Sequence Checks
//
//	got := testutil.Collect(it.Seq())
//	ok := testutil.Consecutive(got, func(a, b int8) bool { return b == a+1 })
package testutil
