package resample

import "github.com/evarsim/core/internal/models"

// ControlPoints is the size of the reduced skeleton.
const ControlPoints = 4

// ReduceToControlPoints keeps the first point, the points at N/3 and 2N/3 and
// the last point. Paths of four points or fewer pass through unchanged.
func ReduceToControlPoints(path models.Path) models.Path {
	n := len(path)
	if n <= ControlPoints {
		return path.Clone()
	}
	return models.Path{
		path[0],
		path[n/3],
		path[(2*n)/3],
		path[n-1],
	}
}
