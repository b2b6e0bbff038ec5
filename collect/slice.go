package collect

import (
	"fmt"

	"github.com/hupe1980/parange/internal/conv"
	"github.com/hupe1980/parange/plumbing"
)

type sliceConsumer[T any] struct {
	buf []T
}

// Slice returns a length-aware consumer that writes exactly n elements into a
// single slice allocated up front. Each half of a split writes into its own
// window of that slice, so reducing two halves only extends the left window.
func Slice[T any](n uint) (plumbing.Consumer[T, []T], error) {
	size, err := conv.UintToInt(n)
	if err != nil {
		return nil, fmt.Errorf("collect: slice of %d elements: %w", n, err)
	}
	return sliceConsumer[T]{buf: make([]T, size)}, nil
}

func (c sliceConsumer[T]) SplitAt(index uint) (plumbing.Consumer[T, []T], plumbing.Consumer[T, []T], plumbing.Reducer[[]T]) {
	if index > uint(len(c.buf)) {
		panic(fmt.Sprintf("collect: split at %d of a %d element window", index, len(c.buf)))
	}
	i := int(index)
	return sliceConsumer[T]{buf: c.buf[:i]}, sliceConsumer[T]{buf: c.buf[i:]}, plumbing.ReduceFunc[[]T](joinWindows[T])
}

func (c sliceConsumer[T]) IntoFolder() plumbing.Folder[T, []T] {
	return &sliceFolder[T]{buf: c.buf}
}

func (c sliceConsumer[T]) Full() bool { return false }

// joinWindows merges two windows that are adjacent in the same backing array.
func joinWindows[T any](left, right []T) []T {
	return left[:len(left)+len(right)]
}

type sliceFolder[T any] struct {
	buf []T
	n   int
}

func (f *sliceFolder[T]) Consume(item T) {
	if f.n == len(f.buf) {
		panic(fmt.Sprintf("collect: more than %d elements written to window", len(f.buf)))
	}
	f.buf[f.n] = item
	f.n++
}

func (f *sliceFolder[T]) Full() bool { return false }

func (f *sliceFolder[T]) Complete() []T {
	if f.n != len(f.buf) {
		panic(fmt.Sprintf("collect: expected %d elements, got %d", len(f.buf), f.n))
	}
	return f.buf
}

type appendConsumer[T any] struct{}

// Append returns a consumer that gathers the elements into a new slice in
// range order. Unlike Slice it needs no length up front.
func Append[T any]() plumbing.UnindexedConsumer[T, []T] {
	return appendConsumer[T]{}
}

func (c appendConsumer[T]) SplitAt(uint) (plumbing.Consumer[T, []T], plumbing.Consumer[T, []T], plumbing.Reducer[[]T]) {
	return c, c, c.ToReducer()
}

func (c appendConsumer[T]) IntoFolder() plumbing.Folder[T, []T] { return &appendFolder[T]{} }

func (c appendConsumer[T]) Full() bool { return false }

func (c appendConsumer[T]) SplitOffLeft() plumbing.UnindexedConsumer[T, []T] { return c }

func (c appendConsumer[T]) ToReducer() plumbing.Reducer[[]T] {
	return plumbing.ReduceFunc[[]T](func(left, right []T) []T {
		return append(left, right...)
	})
}

type appendFolder[T any] struct {
	out []T
}

func (f *appendFolder[T]) Consume(item T) { f.out = append(f.out, item) }

func (f *appendFolder[T]) Full() bool { return false }

func (f *appendFolder[T]) Complete() []T { return f.out }
