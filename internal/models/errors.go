// Package models defines the core data structures shared by the centerline,
// tube and device packages, together with their field-level validation.
package models

import "errors"

var (
	// ErrInvalidParameter is returned when a tube or placement parameter is outside its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidGraph is returned when a polyline graph references points that do not exist.
	ErrInvalidGraph = errors.New("invalid polyline graph")

	// ErrTubeIndexOutOfRange is returned when a tube slot outside the tube set is addressed.
	ErrTubeIndexOutOfRange = errors.New("tube index out of range")
)
