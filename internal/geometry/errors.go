package geometry

import "errors"

var (
	// ErrDegenerateVector is returned when a direction or normal has (near) zero length.
	ErrDegenerateVector = errors.New("degenerate vector")

	// ErrTooFewPoints is returned when a point sequence is too short for an operation.
	ErrTooFewPoints = errors.New("too few points for operation")

	// ErrZeroLength is returned when a point sequence has zero total arc length.
	ErrZeroLength = errors.New("zero-length point sequence")
)
