package device

import "github.com/evarsim/core/internal/resample"

// Options tunes the resampling stage of every tube.
type Options struct {
	// Spline selects the interpolator used to re-densify control points.
	Spline resample.SplineKind
	// RefineCount is the number of points each tube centerline is refined to.
	RefineCount int
}

// DefaultOptions uses a Catmull-Rom spline refined to 20 points.
func DefaultOptions() Options {
	return Options{
		Spline:      resample.CatmullRomSpline,
		RefineCount: resample.DefaultRefineCount,
	}
}
