package parange

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/parange/plumbing"
)

var (
	// ErrSplitIndexOutOfRange matches *SplitIndexError via errors.Is.
	ErrSplitIndexOutOfRange = errors.New("split index out of range")

	// ErrCanceled is returned when a drive stops because its context is done.
	// The context's own error is wrapped alongside it.
	ErrCanceled = errors.New("drive canceled")
)

// SplitIndexError is the panic value raised when a producer is asked to split
// past its length. It signals a scheduler bug, not a data error.
type SplitIndexError struct {
	Index uint
	Len   uint
}

func (e *SplitIndexError) Error() string {
	return fmt.Sprintf("split index %d out of range for length %d", e.Index, e.Len)
}

func (e *SplitIndexError) Is(target error) bool { return target == ErrSplitIndexOutOfRange }

// PanicError is returned instead of re-raising a panic when a drive runs with
// WithPanicRecovery(true).
type PanicError = plumbing.PanicError

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	return err
}
