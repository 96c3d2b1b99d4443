// Package resample turns a raw centerline into the smooth point sequence a
// tube is swept along: sub-range extraction by arc length, moving-average
// smoothing, control-point reduction and spline refinement.
package resample

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

// ErrInvalidLength is returned when a non-positive segment length is requested.
var ErrInvalidLength = errors.New("segment length must be positive")

// SegmentOffsets returns the arc-length window [start, end] that
// ExtractSegment cuts from a path of total length total.
//
// Position 0 anchors the window at the start and position 1 at the end;
// anything in between is the window centre. The window is shifted back
// inside the path so that end-start is always min(length, total).
func SegmentOffsets(total, length, position float64) (start, end float64) {
	switch {
	case position <= 0:
		start = 0
	case position >= 1:
		start = total - length
	default:
		start = position*total - length/2
	}
	start = math.Max(0, math.Min(start, total-length))
	end = math.Min(total, start+length)
	return start, end
}

// ExtractSegment returns the part of path that covers length units of arc
// around position. The first and last points are interpolated exactly at the
// window ends; every original point strictly inside the window is kept.
// Points within geometry.Epsilon of either end are dropped so the ends are
// never doubled.
func ExtractSegment(path models.Path, length, position float64) (models.Path, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("extract segment: %d points: %w", len(path), geometry.ErrTooFewPoints)
	}
	if !(length > 0) {
		return nil, fmt.Errorf("extract segment: length %v: %w", length, ErrInvalidLength)
	}

	cum := geometry.CumulativeLengths(path)
	total := cum[len(cum)-1]
	if total < geometry.Epsilon {
		return nil, fmt.Errorf("extract segment: %w", geometry.ErrZeroLength)
	}

	start, end := SegmentOffsets(total, length, position)

	out := models.Path{pointAt(path, cum, start)}
	for i, d := range cum {
		if d > start+geometry.Epsilon && d < end-geometry.Epsilon {
			out = append(out, path[i])
		}
	}
	out = append(out, pointAt(path, cum, end))
	return out, nil
}

// pointAt returns the point at arc length d along path.
func pointAt(path models.Path, cum []float64, d float64) r3.Vector {
	i := sort.SearchFloat64s(cum, d)
	switch {
	case i == 0:
		return path[0]
	case i >= len(path):
		return path[len(path)-1]
	case cum[i] == d:
		return path[i]
	}
	edge := cum[i] - cum[i-1]
	if edge <= 0 {
		return path[i]
	}
	return geometry.Lerp(path[i-1], path[i], (d-cum[i-1])/edge)
}
