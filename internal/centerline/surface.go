package centerline

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

const (
	// SurfaceSlices is the number of levels sampled along the longest axis.
	SurfaceSlices = 20
	// SurfaceTolerance is the slab half-width as a fraction of the largest extent.
	SurfaceTolerance = 0.05
)

// FromSurface estimates a centerline from an unordered point cloud.
//
// The cloud is cut into SurfaceSlices evenly spaced levels along its longest
// bounding-box axis. Each level contributes the mean of the two remaining
// coordinates of every point within SurfaceTolerance of the largest extent,
// or the bounding-box centre when no point is that close. This is a
// heuristic for roughly straight tubular shapes, not a medial axis.
func FromSurface(points models.Path) (models.Path, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("surface: %w", ErrNoGeometry)
	}

	lo, hi := geometry.Bounds(points)
	extent := hi.Sub(lo)
	axis := longestAxis(extent)
	tol := max(extent.X, extent.Y, extent.Z) * SurfaceTolerance
	if tol == 0 {
		return nil, fmt.Errorf("surface collapses to a point: %w", ErrNoGeometry)
	}
	center := lo.Add(hi).Mul(0.5)

	out := make(models.Path, SurfaceSlices)
	for i := range out {
		t := float64(i) / float64(SurfaceSlices-1)
		level := component(lo, axis) + t*component(extent, axis)

		var sum r3.Vector
		n := 0
		for _, p := range points {
			if d := component(p, axis) - level; d >= -tol && d <= tol {
				sum = sum.Add(p)
				n++
			}
		}

		c := center
		if n > 0 {
			c = sum.Mul(1 / float64(n))
		}
		out[i] = withComponent(c, axis, level)
	}
	slogger().Debug("estimated centerline from surface", "points", len(points), "axis", axis)
	return out, nil
}

// longestAxis returns 0, 1 or 2 for x, y or z. Ties prefer z, then y.
func longestAxis(extent r3.Vector) int {
	switch {
	case extent.Z >= extent.X && extent.Z >= extent.Y:
		return 2
	case extent.Y >= extent.X && extent.Y >= extent.Z:
		return 1
	default:
		return 0
	}
}

func component(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func withComponent(v r3.Vector, axis int, value float64) r3.Vector {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}
