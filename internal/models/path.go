package models

import (
	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
)

// Path is an ordered point sequence. Index order is position along the path.
type Path []r3.Vector

// OrderedPoints lets a path act as its own point source.
func (p Path) OrderedPoints() Path {
	return p
}

// ArcLength returns the cumulative Euclidean length of the path.
func (p Path) ArcLength() float64 {
	return geometry.ArcLength(p)
}

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// First returns the first point. The path must not be empty.
func (p Path) First() r3.Vector {
	return p[0]
}

// Last returns the last point. The path must not be empty.
func (p Path) Last() r3.Vector {
	return p[len(p)-1]
}
