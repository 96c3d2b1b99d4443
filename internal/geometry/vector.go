// Package geometry provides the vector primitives shared by the centerline and
// tube packages. Points and directions are both represented as r3.Vector; the
// distinction is carried by naming only.
package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

var (
	// AxisX is the unit x axis.
	AxisX = r3.Vector{X: 1}
	// AxisZ is the unit z axis.
	AxisZ = r3.Vector{Z: 1}
)

// Normalize returns the unit vector in the direction of v.
// It fails with ErrDegenerateVector when v has (near) zero length; callers
// are expected to substitute a fallback axis.
func Normalize(v r3.Vector) (r3.Vector, error) {
	n := v.Norm()
	if n < Epsilon || math.IsNaN(n) {
		return r3.Vector{}, fmt.Errorf("normalize %v: %w", v, ErrDegenerateVector)
	}
	return v.Mul(1 / n), nil
}

// NormalizeOr returns the unit vector of v, or fallback when v is degenerate.
func NormalizeOr(v, fallback r3.Vector) r3.Vector {
	u, err := Normalize(v)
	if err != nil {
		return fallback
	}
	return u
}

// Lerp linearly interpolates between p1 and p2. t is not clamped.
func Lerp(p1, p2 r3.Vector, t float64) r3.Vector {
	return p1.Add(p2.Sub(p1).Mul(t))
}

// EdgeLengths returns the Euclidean length of every consecutive pair in pts.
// The result has len(pts)-1 entries, or none for fewer than two points.
func EdgeLengths(pts []r3.Vector) []float64 {
	if len(pts) < 2 {
		return nil
	}
	lengths := make([]float64, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		lengths[i-1] = pts[i].Distance(pts[i-1])
	}
	return lengths
}

// CumulativeLengths returns the arc length at every point of pts, starting at 0.
func CumulativeLengths(pts []r3.Vector) []float64 {
	if len(pts) == 0 {
		return nil
	}
	cum := make([]float64, len(pts))
	if edges := EdgeLengths(pts); len(edges) > 0 {
		floats.CumSum(cum[1:], edges)
	}
	return cum
}

// ArcLength returns the sum of consecutive distances along pts.
// A single point (or none) has length 0.
func ArcLength(pts []r3.Vector) float64 {
	return floats.Sum(EdgeLengths(pts))
}

// OrthonormalBasis returns two unit vectors u and v that, together with the
// normalized normal, form an orthonormal frame with u × v = normal.
// The z axis is used as the reference "up" unless the normal is nearly
// parallel to it, in which case the x axis is used.
func OrthonormalBasis(normal r3.Vector) (u, v r3.Vector, err error) {
	n, err := Normalize(normal)
	if err != nil {
		return r3.Vector{}, r3.Vector{}, fmt.Errorf("orthonormal basis: %w", err)
	}

	up := AxisZ
	if math.Abs(n.Z) >= 0.9 {
		up = AxisX
	}

	if u, err = Normalize(n.Cross(up)); err != nil {
		return r3.Vector{}, r3.Vector{}, fmt.Errorf("orthonormal basis: %w", err)
	}
	if v, err = Normalize(n.Cross(u)); err != nil {
		return r3.Vector{}, r3.Vector{}, fmt.Errorf("orthonormal basis: %w", err)
	}
	return u, v, nil
}

// Bounds returns the axis-aligned bounding box of pts.
// Both corners are the zero vector when pts is empty.
func Bounds(pts []r3.Vector) (lo, hi r3.Vector) {
	if len(pts) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = r3.Vector{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vector{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return lo, hi
}

// ApproxEqual reports whether a and b are within tol of each other on every axis.
func ApproxEqual(a, b r3.Vector, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}
