package resample

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

// zigzag alternates x between 0 and 1 while climbing z.
func zigzag(n int) models.Path {
	p := make(models.Path, n)
	for i := range p {
		p[i] = r3.Vector{X: float64(i % 2), Z: float64(i)}
	}
	return p
}

func TestWindowSize(t *testing.T) {
	tests := []struct {
		factor float64
		expect int
	}{
		{0, 3},
		{0.1, 3},
		{0.3, 5},
		{0.5, 5},
		{0.75, 7},
		{1, 7},
		{-1, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, WindowSize(tt.factor), "factor %v", tt.factor)
	}
}

func TestSmooth(t *testing.T) {
	t.Run("zero factor is identity", func(t *testing.T) {
		path := zigzag(12)

		assert.Equal(t, path, Smooth(path, 0))
		assert.Equal(t, path, Smooth(path, -0.5))
	})

	t.Run("short paths are unchanged", func(t *testing.T) {
		path := models.Path{{}, {X: 5, Z: 1}}

		assert.Equal(t, path, Smooth(path, 1))
	})

	t.Run("full smoothing anchors the ends", func(t *testing.T) {
		path := zigzag(12)
		half := WindowSize(1) / 2

		out := Smooth(path, 1)

		require.Len(t, out, len(path))
		for i := 0; i < half; i++ {
			assert.Equal(t, path[i], out[i])
			assert.Equal(t, path[len(path)-1-i], out[len(out)-1-i])
		}
	})

	t.Run("full smoothing is the weighted average", func(t *testing.T) {
		path := zigzag(12)

		out := Smooth(path, 1)

		// window 7 centred on index 3: x = 0,1,0,[1],0,1,0 with the centre doubled
		assert.InDelta(t, 4.0/8.0, out[3].X, 1e-12)
		// index 4 is x=0: neighbours 1,0,1,[0],1,0,1
		assert.InDelta(t, 4.0/8.0, out[4].X, 1e-12)
		assert.InDelta(t, 3.0, out[3].Z, 1e-12, "linear coordinates are preserved")
	})

	t.Run("partial factor blends", func(t *testing.T) {
		path := zigzag(12)
		factor := 0.5
		window := WindowSize(factor)
		require.Equal(t, 5, window)

		out := Smooth(path, factor)

		// index 5 (x=1): neighbours 1,0,[1],0,1 -> (1+0+2+0+1)/6
		smoothed := 4.0 / 6.0
		assert.InDelta(t, 0.5*1+0.5*smoothed, out[5].X, 1e-12)
	})

	t.Run("reduces zigzag amplitude", func(t *testing.T) {
		path := zigzag(40)

		out := Smooth(path, 1)

		var before, after float64
		for i := 5; i < 35; i++ {
			before = math.Max(before, math.Abs(path[i].X-0.5))
			after = math.Max(after, math.Abs(out[i].X-0.5))
		}
		assert.Less(t, after, before)
	})

	t.Run("does not alias input", func(t *testing.T) {
		path := zigzag(10)
		orig := path.Clone()

		_ = Smooth(path, 0.7)

		assert.Equal(t, orig, path)
	})
}

func TestReduceToControlPoints(t *testing.T) {
	t.Run("exactly four points for long paths", func(t *testing.T) {
		for n := 5; n < 50; n++ {
			path := straightPath(n-1, float64(n))

			out := ReduceToControlPoints(path)

			require.Len(t, out, ControlPoints)
			assert.Equal(t, path[0], out[0])
			assert.Equal(t, path[n/3], out[1])
			assert.Equal(t, path[(2*n)/3], out[2])
			assert.Equal(t, path[n-1], out[3])
		}
	})

	t.Run("short paths pass through and are idempotent", func(t *testing.T) {
		for n := 0; n <= 4; n++ {
			path := straightPath(4, 1)[:n]

			once := ReduceToControlPoints(path)
			twice := ReduceToControlPoints(once)

			assert.Equal(t, path, once)
			assert.Equal(t, once, twice)
		}
	})
}

func TestSplineRefine(t *testing.T) {
	t.Run("two control points interpolate linearly", func(t *testing.T) {
		a, b := r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 11, Y: -8, Z: 3}

		out, err := SplineRefine(models.Path{a, b}, DefaultRefineCount)
		require.NoError(t, err)

		require.Len(t, out, DefaultRefineCount)
		assert.Equal(t, a, out[0])
		assert.Equal(t, b, out[len(out)-1])
		mid := geometry.Lerp(a, b, 10.0/19.0)
		assert.True(t, geometry.ApproxEqual(mid, out[10], 1e-12))
	})

	t.Run("passes through end points", func(t *testing.T) {
		ctrl := models.Path{{}, {X: 3, Z: 5}, {X: -2, Z: 10}, {Z: 15}}

		for _, kind := range []SplineKind{CatmullRomSpline, NaturalCubicSpline, AkimaSpline} {
			out, err := SplineRefineWith(ctrl, 25, kind)
			require.NoError(t, err, kind)

			assert.Len(t, out, 25)
			assert.Equal(t, ctrl[0], out[0])
			assert.Equal(t, ctrl[3], out[24])
		}
	})

	t.Run("catmull-rom hits interior knots", func(t *testing.T) {
		ctrl := models.Path{{}, {X: 3, Z: 5}, {X: -2, Z: 10}, {Z: 15}}

		// 7 samples over [0, 3] land on every half knot
		out, err := SplineRefine(ctrl, 7)
		require.NoError(t, err)

		assert.True(t, geometry.ApproxEqual(ctrl[1], out[2], 1e-12))
		assert.True(t, geometry.ApproxEqual(ctrl[2], out[4], 1e-12))
	})

	t.Run("collinear control points stay on the line", func(t *testing.T) {
		ctrl := models.Path{{}, {Z: 1}, {Z: 2}, {Z: 3}}

		out, err := SplineRefine(ctrl, 20)
		require.NoError(t, err)

		for i, p := range out {
			assert.InDelta(t, 0, p.X, 1e-12)
			assert.InDelta(t, 3*float64(i)/19, p.Z, 1e-9)
		}
	})

	t.Run("small count falls back to default", func(t *testing.T) {
		out, err := SplineRefine(models.Path{{}, {Z: 1}}, 0)
		require.NoError(t, err)

		assert.Len(t, out, DefaultRefineCount)
	})

	t.Run("too few control points", func(t *testing.T) {
		_, err := SplineRefine(models.Path{{}}, 20)

		assert.ErrorIs(t, err, geometry.ErrTooFewPoints)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := SplineRefineWith(models.Path{{}, {Z: 1}, {Z: 2}}, 20, "bezier")

		assert.ErrorIs(t, err, ErrUnknownSpline)
	})
}

func TestCatmullRom(t *testing.T) {
	t.Run("interpolates knots and clamps", func(t *testing.T) {
		c := &CatmullRom{}
		require.NoError(t, c.Fit([]float64{0, 1, 2, 3}, []float64{0, 1, 0, 1}))

		assert.Equal(t, 0.0, c.Predict(0))
		assert.Equal(t, 1.0, c.Predict(1))
		assert.Equal(t, 0.0, c.Predict(2))
		assert.Equal(t, 1.0, c.Predict(3))
		assert.Equal(t, 0.0, c.Predict(-5))
		assert.Equal(t, 1.0, c.Predict(10))
	})

	t.Run("symmetric segment midpoint", func(t *testing.T) {
		c := &CatmullRom{}
		require.NoError(t, c.Fit([]float64{0, 1, 2, 3}, []float64{0, 1, 0, 1}))

		// tangents at 1 and 2 are both zero
		assert.InDelta(t, 0.5, c.Predict(1.5), 1e-12)
	})

	t.Run("tension one flattens tangents", func(t *testing.T) {
		c := &CatmullRom{Tension: 1}
		require.NoError(t, c.Fit([]float64{0, 1}, []float64{0, 1}))

		// zero tangents give the smoothstep curve
		assert.InDelta(t, 0.5, c.Predict(0.5), 1e-12)
		assert.InDelta(t, 0.104, c.Predict(0.2), 1e-12)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		c := &CatmullRom{}

		assert.Error(t, c.Fit([]float64{0}, []float64{0}))
		assert.Error(t, c.Fit([]float64{0, 1}, []float64{0}))
		assert.Error(t, c.Fit([]float64{0, 0}, []float64{0, 1}))
		assert.Equal(t, 0.0, (&CatmullRom{}).Predict(1))
	})
}
