package plumbing

// Producer is a splittable piece of work of known length. P is the concrete
// producer type, so splitting returns values rather than interfaces.
type Producer[T, P any] interface {
	// SplitAt returns a producer for the first index items and one for the
	// rest. index must not exceed the producer's length.
	SplitAt(index uint) (P, P)
	// FoldWith feeds the remaining items into s in order.
	FoldWith(s Sink[T])
	// MinLen is the smallest length worth splitting into.
	MinLen() uint
	// MaxLen is the largest length allowed to run without splitting.
	MaxLen() uint
}

// UnindexedProducer is a piece of work that can only be halved.
type UnindexedProducer[T, P any] interface {
	// Split returns the two halves and true, or the receiver and false when
	// it cannot be divided further.
	Split() (P, P, bool)
	FoldWith(s Sink[T])
}

// BackwardProducer is implemented by producers that can feed their items in
// descending order.
type BackwardProducer[T any] interface {
	// FoldBackward feeds the remaining items into s, last item first.
	FoldBackward(s Sink[T])
}

type foldable[T any] interface {
	FoldWith(s Sink[T])
}
