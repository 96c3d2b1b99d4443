package tube

import "errors"

var (
	// ErrInsufficientGeometry is returned when a path has fewer than two points.
	ErrInsufficientGeometry = errors.New("insufficient geometry")
	// ErrInvalidRadius is returned for a radius that is not strictly positive.
	ErrInvalidRadius = errors.New("radius must be positive")
)
