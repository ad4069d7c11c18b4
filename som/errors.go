package som

import "errors"

var (
	// ErrInvalidInput is returned when construction or training receives
	// malformed arguments: an empty data set, an irregular table,
	// a non-positive node count or an out-of-range dimension.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch is returned by vector operations receiving
	// a vector of the wrong length.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDegenerateInput is returned when normalization meets a
	// zero-variance dimension, which would otherwise divide by zero.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrNotFound is returned by the best-match search when the map
	// holds no nodes. Construction invariants make this unreachable
	// through the public API.
	ErrNotFound = errors.New("not found")
)
