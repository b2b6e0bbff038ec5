package plumbing

import "iter"

// Sink receives items sequentially.
type Sink[T any] interface {
	Consume(item T)
	// Full reports that no further items are needed.
	Full() bool
}

// Folder is a Sink that produces a result once all items are consumed.
type Folder[T, R any] interface {
	Sink[T]
	Complete() R
}

// Reversible is implemented by folders that can finish sooner when their items
// arrive in descending order.
type Reversible[T any] interface {
	// Reversed switches the folder to descending order and returns the sink
	// to feed. It returns false, leaving the folder unchanged, when the folder
	// gains nothing from it.
	Reversed() (Sink[T], bool)
}

// Reducer combines the results of two adjacent halves.
type Reducer[R any] interface {
	Reduce(left, right R) R
}

// ReduceFunc adapts a function to the Reducer interface.
type ReduceFunc[R any] func(left, right R) R

func (f ReduceFunc[R]) Reduce(left, right R) R { return f(left, right) }

// Consumer is the length-aware side of a drive. It is split at the same index
// as its producer.
type Consumer[T, R any] interface {
	SplitAt(index uint) (left, right Consumer[T, R], reducer Reducer[R])
	IntoFolder() Folder[T, R]
	Full() bool
}

// UnindexedConsumer can additionally be split without knowing where the
// producer split.
type UnindexedConsumer[T, R any] interface {
	Consumer[T, R]
	// SplitOffLeft returns a consumer for the left half. The receiver keeps
	// the right half.
	SplitOffLeft() UnindexedConsumer[T, R]
	ToReducer() Reducer[R]
}

// FoldSeq feeds seq into s until seq is exhausted or s is full.
func FoldSeq[T any](seq iter.Seq[T], s Sink[T]) {
	if s.Full() {
		return
	}
	for v := range seq {
		s.Consume(v)
		if s.Full() {
			return
		}
	}
}

type countingSink[T any] struct {
	Sink[T]
	n uint
}

func (c *countingSink[T]) Consume(item T) {
	c.n++
	c.Sink.Consume(item)
}
