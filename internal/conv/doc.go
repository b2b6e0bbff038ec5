// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking when narrowing between the
// pointer-sized index type (uint) and the types Go uses for sizes and
// counters (int, uint64).
//
// Use cases:
//   - Sizing slices from a range length, which may exceed math.MaxInt
//   - Narrowing externally supplied counts to the index type
//
// For conversions that are provably safe by construction (e.g. a length
// already known to fit), use direct type casts instead to avoid overhead.
package conv
