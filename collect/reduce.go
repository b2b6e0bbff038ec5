package collect

import "github.com/hupe1980/parange/plumbing"

// Number is the set of element types Sum accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

type reduceConsumer[T, R any] struct {
	identity func() R
	fold     func(acc R, item T) R
	reduce   func(left, right R) R
}

// Reduce returns a consumer that folds each piece starting from identity()
// and combines adjacent pieces with reduce. reduce must be associative and
// identity() must be its neutral element; the halves are always combined in
// range order, so reduce need not be commutative.
func Reduce[T, R any](identity func() R, fold func(acc R, item T) R, reduce func(left, right R) R) plumbing.UnindexedConsumer[T, R] {
	return reduceConsumer[T, R]{identity: identity, fold: fold, reduce: reduce}
}

// Sum returns a consumer adding all elements. Integer sums wrap on overflow.
func Sum[T Number]() plumbing.UnindexedConsumer[T, T] {
	add := func(a, b T) T { return a + b }
	return Reduce(func() T { return 0 }, add, add)
}

// Count returns a consumer counting the elements.
func Count[T any]() plumbing.UnindexedConsumer[T, uint64] {
	return Reduce(
		func() uint64 { return 0 },
		func(n uint64, _ T) uint64 { return n + 1 },
		func(a, b uint64) uint64 { return a + b },
	)
}

func (c reduceConsumer[T, R]) SplitAt(uint) (plumbing.Consumer[T, R], plumbing.Consumer[T, R], plumbing.Reducer[R]) {
	return c, c, c.ToReducer()
}

func (c reduceConsumer[T, R]) IntoFolder() plumbing.Folder[T, R] {
	return &reduceFolder[T, R]{acc: c.identity(), fold: c.fold}
}

func (c reduceConsumer[T, R]) Full() bool { return false }

func (c reduceConsumer[T, R]) SplitOffLeft() plumbing.UnindexedConsumer[T, R] { return c }

func (c reduceConsumer[T, R]) ToReducer() plumbing.Reducer[R] { return plumbing.ReduceFunc[R](c.reduce) }

type reduceFolder[T, R any] struct {
	acc  R
	fold func(R, T) R
}

func (f *reduceFolder[T, R]) Consume(item T) { f.acc = f.fold(f.acc, item) }

func (f *reduceFolder[T, R]) Full() bool { return false }

func (f *reduceFolder[T, R]) Complete() R { return f.acc }
