package resample

import (
	"errors"
	"fmt"
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

// DefaultRefineCount is the number of points SplineRefine produces by default.
const DefaultRefineCount = 20

// SplineKind names the per-axis interpolator used by SplineRefineWith.
type SplineKind string

const (
	// CatmullRomSpline is a cardinal spline with zero tension.
	CatmullRomSpline SplineKind = "catmull-rom"
	// NaturalCubicSpline has zero second derivative at both ends.
	NaturalCubicSpline SplineKind = "natural-cubic"
	// AkimaSpline avoids overshoot near abrupt changes.
	AkimaSpline SplineKind = "akima"
)

// ErrUnknownSpline is returned for an unrecognised SplineKind.
var ErrUnknownSpline = errors.New("unknown spline kind")

// Predictor returns a fresh, unfitted interpolator of kind k.
func (k SplineKind) Predictor() (interp.FittablePredictor, error) {
	switch k {
	case CatmullRomSpline, "":
		return &CatmullRom{}, nil
	case NaturalCubicSpline:
		return &interp.NaturalCubic{}, nil
	case AkimaSpline:
		return &interp.AkimaSpline{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpline, string(k))
	}
}

// SplineRefine densifies control points into count points with a Catmull-Rom spline.
func SplineRefine(control models.Path, count int) (models.Path, error) {
	return SplineRefineWith(control, count, CatmullRomSpline)
}

// SplineRefineWith densifies control points into count points.
//
// Two control points are joined linearly. Three or more get one spline per
// axis, parametrized by control-point index, sampled at count evenly spaced
// parameters over [0, len(control)-1]. The first and last output points are
// always exactly the first and last control points.
func SplineRefineWith(control models.Path, count int, kind SplineKind) (models.Path, error) {
	if len(control) < 2 {
		return nil, fmt.Errorf("spline refine: %d control points: %w", len(control), geometry.ErrTooFewPoints)
	}
	if count < 2 {
		count = DefaultRefineCount
	}

	last := len(control) - 1
	params := floats.Span(make([]float64, count), 0, float64(last))
	out := make(models.Path, count)

	if len(control) == 2 {
		for i, t := range params {
			out[i] = geometry.Lerp(control[0], control[1], t)
		}
	} else {
		axes, err := fitAxes(control, kind)
		if err != nil {
			return nil, err
		}
		for i, t := range params {
			out[i] = r3.Vector{X: axes[0].Predict(t), Y: axes[1].Predict(t), Z: axes[2].Predict(t)}
		}
	}

	out[0], out[count-1] = control[0], control[last]
	return out, nil
}

func fitAxes(control models.Path, kind SplineKind) ([3]interp.FittablePredictor, error) {
	var axes [3]interp.FittablePredictor

	xs := make([]float64, len(control))
	for i := range xs {
		xs[i] = float64(i)
	}
	ys := [3][]float64{
		make([]float64, len(control)),
		make([]float64, len(control)),
		make([]float64, len(control)),
	}
	for i, p := range control {
		ys[0][i], ys[1][i], ys[2][i] = p.X, p.Y, p.Z
	}

	for a := range axes {
		pred, err := kind.Predictor()
		if err != nil {
			return axes, fmt.Errorf("spline refine: %w", err)
		}
		if err := pred.Fit(xs, ys[a]); err != nil {
			return axes, fmt.Errorf("spline refine: fit axis %d: %w", a, err)
		}
		axes[a] = pred
	}
	return axes, nil
}

// CatmullRom is a cubic Hermite interpolator whose knot tangents are the
// (1-Tension)-scaled secants of the neighbouring knots. With Tension 0 it is
// the Catmull-Rom spline. It satisfies interp.FittablePredictor.
type CatmullRom struct {
	Tension float64

	xs, ys, ms []float64
}

// Fit stores the knots and computes their tangents. xs must be strictly increasing.
func (c *CatmullRom) Fit(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("catmull-rom: %d xs and %d ys", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return fmt.Errorf("catmull-rom: %w", geometry.ErrTooFewPoints)
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return fmt.Errorf("catmull-rom: xs not strictly increasing at %d", i)
		}
	}

	n := len(xs)
	scale := 1 - c.Tension
	ms := make([]float64, n)
	ms[0] = scale * (ys[1] - ys[0]) / (xs[1] - xs[0])
	ms[n-1] = scale * (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2])
	for i := 1; i < n-1; i++ {
		ms[i] = scale * (ys[i+1] - ys[i-1]) / (xs[i+1] - xs[i-1])
	}

	c.xs = append([]float64(nil), xs...)
	c.ys = append([]float64(nil), ys...)
	c.ms = ms
	return nil
}

// Predict evaluates the spline at x. Values outside the knot range are
// clamped to the end knots.
func (c *CatmullRom) Predict(x float64) float64 {
	n := len(c.xs)
	if n == 0 {
		return 0
	}
	if x <= c.xs[0] {
		return c.ys[0]
	}
	if x >= c.xs[n-1] {
		return c.ys[n-1]
	}

	i := sort.SearchFloat64s(c.xs, x)
	if c.xs[i] == x {
		return c.ys[i]
	}

	h := c.xs[i] - c.xs[i-1]
	t := (x - c.xs[i-1]) / h
	t2, t3 := t*t, t*t*t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*c.ys[i-1] + h10*h*c.ms[i-1] + h01*c.ys[i] + h11*h*c.ms[i]
}
