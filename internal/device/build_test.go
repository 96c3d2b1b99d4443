package device

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evarsim/core/internal/centerline"
	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
	"github.com/evarsim/core/internal/resample"
)

// straightCenterline runs 100 units up the z axis in 10 unit steps.
func straightCenterline() models.Path {
	p := make(models.Path, 11)
	for i := range p {
		p[i] = r3.Vector{Z: 10 * float64(i)}
	}
	return p
}

func tubeParams(position float64) models.TubeParameters {
	return models.TubeParameters{
		Radius:          2,
		Length:          20,
		Position:        position,
		Resolution:      16,
		SmoothingFactor: 0.3,
	}
}

// verticesPerTube is the vertex count of a straight tube refined to the
// default 20 points at resolution 16.
const verticesPerTube = resample.DefaultRefineCount*16 + 2

func TestBuildDevice(t *testing.T) {
	t.Run("centred segment", func(t *testing.T) {
		mesh, err := BuildDevice(straightCenterline(), tubeParams(0.5), DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, verticesPerTube, mesh.VertexCount())
		lo, hi := geometry.Bounds(mesh.Vertices)
		assert.InDelta(t, 40, lo.Z, 1e-9)
		assert.InDelta(t, 60, hi.Z, 1e-9)
		assert.InDelta(t, 2, hi.X, 1e-9)
	})

	t.Run("every spline kind builds", func(t *testing.T) {
		path := models.Path{{}, {X: 5, Z: 20}, {X: 5, Z: 40}, {X: -5, Z: 60}, {Z: 80}, {Z: 100}}

		for _, kind := range []resample.SplineKind{resample.CatmullRomSpline, resample.NaturalCubicSpline, resample.AkimaSpline} {
			mesh, err := BuildDevice(path, tubeParams(0.4), Options{Spline: kind, RefineCount: 30})
			require.NoError(t, err, kind)

			assert.Equal(t, 30*16+2, mesh.VertexCount(), kind)
		}
	})

	t.Run("invalid parameters", func(t *testing.T) {
		p := tubeParams(0.5)
		p.Radius = 0

		_, err := BuildDevice(straightCenterline(), p, DefaultOptions())

		assert.ErrorIs(t, err, models.ErrInvalidParameter)
	})

	t.Run("too few points", func(t *testing.T) {
		_, err := BuildDevice(models.Path{{}}, tubeParams(0.5), DefaultOptions())

		assert.ErrorIs(t, err, centerline.ErrNoGeometry)
	})

	t.Run("zero length centerline is a failure", func(t *testing.T) {
		_, err := BuildDevice(models.Path{{X: 1}, {X: 1}}, tubeParams(0.5), DefaultOptions())

		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, "could not position tube", f.Message)
		assert.ErrorIs(t, err, geometry.ErrZeroLength)
	})
}

func TestPlaceTubes(t *testing.T) {
	placement := models.Placement{
		Radius:          2,
		Length:          10,
		BasePosition:    0.5,
		Count:           3,
		Resolution:      16,
		SmoothingFactor: 0.3,
	}

	t.Run("merged mode combines tubes", func(t *testing.T) {
		p := placement
		p.Mode = models.ModeMerged

		res, err := PlaceTubes(straightCenterline(), p, DefaultOptions())
		require.NoError(t, err)

		require.Len(t, res.Meshes, 1)
		assert.Equal(t, 3*verticesPerTube, res.Meshes[0].VertexCount())
		assert.Equal(t, []int{0, 1, 2}, res.Slots)
		assert.InDeltaSlice(t, []float64{0.42, 0.5, 0.58}, res.Positions, 1e-12)
	})

	t.Run("empty mode means merged", func(t *testing.T) {
		res, err := PlaceTubes(straightCenterline(), placement, DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, models.ModeMerged, res.Mode)
		assert.Len(t, res.Meshes, 1)
	})

	t.Run("separate mode keeps tubes apart", func(t *testing.T) {
		p := placement
		p.Mode = models.ModeSeparate
		p.Count = 2

		res, err := PlaceTubes(straightCenterline(), p, DefaultOptions())
		require.NoError(t, err)

		require.Len(t, res.Meshes, 2)
		assert.Equal(t, []float64{0.2, 0.8}, res.Positions)
		for _, m := range res.Meshes {
			assert.Equal(t, verticesPerTube, m.VertexCount())
		}
	})

	t.Run("single tube is not merged", func(t *testing.T) {
		p := placement
		p.Count = 1

		res, err := PlaceTubes(straightCenterline(), p, DefaultOptions())
		require.NoError(t, err)

		require.Len(t, res.Meshes, 1)
		assert.Equal(t, verticesPerTube, res.Meshes[0].VertexCount())
	})

	t.Run("nothing built", func(t *testing.T) {
		_, err := PlaceTubes(models.Path{{X: 1}, {X: 1}, {X: 1}}, placement, DefaultOptions())

		assert.ErrorIs(t, err, ErrNoTubesGenerated)
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, "could not create any tubes", f.Message)
	})

	t.Run("invalid placement", func(t *testing.T) {
		p := placement
		p.Count = 11

		_, err := PlaceTubes(straightCenterline(), p, DefaultOptions())

		assert.ErrorIs(t, err, models.ErrInvalidParameter)
	})
}

func TestBuildDeviceSet(t *testing.T) {
	t.Run("separate meshes per tube", func(t *testing.T) {
		tubes := []models.TubeParameters{tubeParams(0.1), tubeParams(0.9)}

		res, err := BuildDeviceSet(straightCenterline(), tubes, models.ModeSeparate, DefaultOptions())
		require.NoError(t, err)

		assert.Len(t, res.Meshes, 2)
		assert.Equal(t, []int{0, 1}, res.Slots)
		assert.Equal(t, []float64{0.1, 0.9}, res.Positions)
	})

	t.Run("merged into one mesh", func(t *testing.T) {
		tubes := []models.TubeParameters{tubeParams(0.1), tubeParams(0.5), tubeParams(0.9)}

		res, err := BuildDeviceSet(straightCenterline(), tubes, models.ModeMerged, DefaultOptions())
		require.NoError(t, err)

		require.Len(t, res.Meshes, 1)
		assert.Equal(t, 3*verticesPerTube, res.Meshes[0].VertexCount())
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := BuildDeviceSet(straightCenterline(), []models.TubeParameters{tubeParams(0.5)}, "stacked", DefaultOptions())

		assert.ErrorIs(t, err, models.ErrInvalidParameter)
	})

	t.Run("no tubes", func(t *testing.T) {
		_, err := BuildDeviceSet(straightCenterline(), nil, models.ModeMerged, DefaultOptions())

		assert.ErrorIs(t, err, models.ErrInvalidParameter)
	})

	t.Run("bad path aborts before building", func(t *testing.T) {
		_, err := BuildDeviceSet(models.Path{{}}, []models.TubeParameters{tubeParams(0.5)}, models.ModeMerged, DefaultOptions())

		assert.ErrorIs(t, err, centerline.ErrNoGeometry)
		assert.NotErrorIs(t, err, ErrNoTubesGenerated)
	})
}

func TestBuildFromSource(t *testing.T) {
	graph := &models.PolylineGraph{
		Points:   models.Path{{}, {Z: 50}, {Z: 100}, {X: 5, Y: 5, Z: 5}, {X: 5, Y: 5, Z: 5}},
		Segments: [][]int{{0, 1, 2}, {3, 4}},
	}
	branch := func(i int) *int { return &i }

	t.Run("per tube branches skip failures", func(t *testing.T) {
		var buf bytes.Buffer
		SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
		t.Cleanup(func() { SetLogger(nil) })

		good, bad := tubeParams(0.5), tubeParams(0.5)
		good.Branch, bad.Branch = branch(0), branch(1)

		res, err := BuildFromSource(models.Source{Graph: graph}, []models.TubeParameters{bad, good}, models.ModeSeparate, DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, []int{1}, res.Slots)
		require.Len(t, res.Meshes, 1)
		assert.Contains(t, buf.String(), "skipping tube")
	})

	t.Run("out of range branch uses branch 0", func(t *testing.T) {
		p := tubeParams(0.5)
		p.Branch = branch(9)

		res, err := BuildFromSource(models.Source{Graph: graph}, []models.TubeParameters{p}, models.ModeMerged, DefaultOptions())
		require.NoError(t, err)

		lo, _ := geometry.Bounds(res.Meshes[0].Vertices)
		assert.InDelta(t, 40, lo.Z, 1e-9)
	})

	t.Run("every tube failing", func(t *testing.T) {
		p := tubeParams(0.5)
		p.Branch = branch(1)

		_, err := BuildFromSource(models.Source{Graph: graph}, []models.TubeParameters{p, p}, models.ModeMerged, DefaultOptions())

		assert.ErrorIs(t, err, ErrNoTubesGenerated)
		assert.ErrorIs(t, err, geometry.ErrZeroLength)
	})

	t.Run("empty source", func(t *testing.T) {
		_, err := BuildFromSource(models.Source{}, []models.TubeParameters{tubeParams(0.5)}, models.ModeMerged, DefaultOptions())

		var f *Failure
		require.True(t, errors.As(err, &f))
		assert.Equal(t, "no valid centerline source", f.Message)
		assert.ErrorIs(t, err, centerline.ErrNoGeometry)
	})
}
