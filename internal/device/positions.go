package device

import (
	"math"

	"github.com/evarsim/core/internal/models"
)

// spacing is the fraction of a tube length between neighbouring merged
// tubes, leaving a 20% overlap.
const spacing = 0.8

// PlacementPositions returns the normalized position of each of count tubes
// of the given length on a centerline of arc length total.
//
// Merged mode centres a span of (count-1)*length*0.8, capped at
// total-length, on base and spreads the tubes evenly across it, clamped to
// [0, 1]. When no span fits every tube sits at base.
//
// Separate mode ignores base: two tubes go to 0.2 and 0.8, more are spread
// from 0.1 to 0.9 inclusive.
func PlacementPositions(mode models.PlacementMode, count int, base, length, total float64) []float64 {
	if count <= 1 {
		return []float64{base}
	}
	positions := make([]float64, count)

	if mode == models.ModeSeparate {
		if count == 2 {
			return []float64{0.2, 0.8}
		}
		for i := range positions {
			positions[i] = 0.1 + float64(i)*0.8/float64(count-1)
		}
		return positions
	}

	span := math.Min(float64(count-1)*length*spacing, total-length)
	if span <= 0 {
		for i := range positions {
			positions[i] = base
		}
		return positions
	}

	half := span / (2 * total)
	lo, hi := math.Max(0, base-half), math.Min(1, base+half)
	for i := range positions {
		positions[i] = lo + float64(i)/float64(count-1)*(hi-lo)
	}
	positions[count-1] = hi
	return positions
}
