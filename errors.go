package bvh

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a point set is empty, when
	// dimensionalities disagree, or when a query parameter is out of range.
	// Every validation error in this package matches it with errors.Is.
	ErrInvalidInput = errors.New("bvh: invalid input")

	// ErrCorruptSnapshot is returned by ReadIndex when the stream is not a
	// well-formed index snapshot.
	ErrCorruptSnapshot = errors.New("bvh: corrupt snapshot")
)

// DimensionMismatchError reports a row whose length differs from the
// dimensionality of the rest of the data. It matches ErrInvalidInput.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	Row      int // -1 when the mismatch is between two indexes
}

func (e *DimensionMismatchError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("bvh: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("bvh: dimension mismatch at row %d: expected %d, got %d", e.Row, e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrInvalidInput }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorruptSnapshot}, args...)...)
}
