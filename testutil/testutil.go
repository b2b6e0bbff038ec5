package testutil

import (
	"iter"
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// edgeUint64 returns a value near 0, near MaxUint64, near the signed
// boundary, or uniformly anywhere, each a quarter of the time.
// Caller must hold r.mu.
func (r *RNG) edgeUint64() uint64 {
	const near = 1 << 10
	switch r.rand.Intn(4) {
	case 0:
		return uint64(r.rand.Intn(near))
	case 1:
		return math.MaxUint64 - uint64(r.rand.Intn(near))
	case 2:
		return 1<<63 - near/2 + uint64(r.rand.Intn(near))
	default:
		return r.rand.Uint64()
	}
}

// Bounds64 returns a random pair lo <= hi. Both ends favour values near the
// edges of the uint64 domain, where wraparound bugs live.
func (r *RNG) Bounds64() (lo, hi uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, b := r.edgeUint64(), r.edgeUint64()
	return min(a, b), max(a, b)
}

// Int64Bounds is Bounds64 for the int64 domain.
func (r *RNG) Int64Bounds() (lo, hi int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, b := int64(r.edgeUint64()), int64(r.edgeUint64())
	return min(a, b), max(a, b)
}

// Window returns a random pair lo <= hi with hi-lo < n, starting anywhere in
// the uint64 domain that leaves room for the window.
func (r *RNG) Window(n uint64) (lo, hi uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lo = r.edgeUint64()
	if lo > math.MaxUint64-n {
		lo = math.MaxUint64 - n
	}
	return lo, lo + uint64(r.rand.Int63n(int64(n)))
}

// Collect gathers seq into a slice.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// Consecutive reports whether every element of s is the successor of the one
// before it.
func Consecutive[T any](s []T, succ func(a, b T) bool) bool {
	for i := 1; i < len(s); i++ {
		if !succ(s[i-1], s[i]) {
			return false
		}
	}
	return true
}
