package resample

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/models"
)

// WindowSize returns the moving-average window used for a smoothing factor:
// 3 + round(4*factor), forced odd, never below 3.
func WindowSize(factor float64) int {
	w := 3 + int(math.Round(factor*4))
	if w%2 == 0 {
		w++
	}
	if w < 3 {
		w = 3
	}
	return w
}

// Smooth applies a centre-weighted moving average to the interior of path and
// blends it with the original: out = (1-factor)*original + factor*smoothed.
// The first and last WindowSize/2 points are never moved. Factors at or
// below zero, and paths shorter than three points, are returned unchanged.
func Smooth(path models.Path, factor float64) models.Path {
	if factor <= 0 || len(path) < 3 {
		return path.Clone()
	}
	factor = math.Min(factor, 1)

	window := WindowSize(factor)
	half := window / 2
	out := path.Clone()

	for i := half; i < len(path)-half; i++ {
		var sum r3.Vector
		for j := i - half; j <= i+half; j++ {
			w := 1.0
			if j == i {
				w = 2.0
			}
			sum = sum.Add(path[j].Mul(w))
		}
		smoothed := sum.Mul(1 / float64(window+1))
		out[i] = path[i].Mul(1 - factor).Add(smoothed.Mul(factor))
	}
	return out
}
