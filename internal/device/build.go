// Package device runs the full tube pipeline: smooth the centerline, cut the
// requested segment, reduce it to control points, spline-refine it and sweep
// a capped tube around it. It also lays out several tubes along one
// centerline and rebuilds single tubes of a set on demand.
package device

import (
	"errors"
	"fmt"

	"github.com/evarsim/core/internal/centerline"
	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
	"github.com/evarsim/core/internal/resample"
	"github.com/evarsim/core/internal/tube"
)

// Result is the output of a multi-tube build.
//
// In separate mode Meshes, Slots and Positions are parallel, one entry per
// tube that was built. In merged mode Meshes holds the single combined mesh
// while Slots and Positions still list every tube it contains.
type Result struct {
	Mode      models.PlacementMode
	Slots     []int
	Positions []float64
	Meshes    []*models.TubeMesh
}

// BuildDevice builds the tube described by params along path.
func BuildDevice(path models.Path, params models.TubeParameters, opts Options) (*models.TubeMesh, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("build device: %d points: %w", len(path), centerline.ErrNoGeometry)
	}

	smoothed := resample.Smooth(path, params.SmoothingFactor)
	return buildSegment(smoothed, params.Length, params.Position, params.Radius, params.Resolution, opts)
}

// buildSegment runs extract, reduce, refine and sweep on an already smoothed
// centerline.
func buildSegment(smoothed models.Path, length, position, radius float64, resolution int, opts Options) (*models.TubeMesh, error) {
	segment, err := resample.ExtractSegment(smoothed, length, position)
	if err != nil {
		return nil, fail("could not position tube", err)
	}
	control := resample.ReduceToControlPoints(segment)
	refined, err := resample.SplineRefineWith(control, opts.RefineCount, opts.Spline)
	if err != nil {
		return nil, fail("could not refine tube centerline", err)
	}
	mesh, err := tube.BuildTube(refined, radius, resolution)
	if err != nil {
		return nil, fail("could not build tube", err)
	}

	Logger().Debug("tube built",
		"segment_points", len(segment),
		"refined_points", len(refined),
		"vertices", mesh.VertexCount(),
		"faces", mesh.FaceCount())
	return mesh, nil
}

// PlaceTubes builds placement.Count identical tubes along path at the
// positions given by PlacementPositions. Tubes that fail are skipped; when
// none succeed the error wraps ErrNoTubesGenerated.
func PlaceTubes(path models.Path, placement models.Placement, opts Options) (*Result, error) {
	if placement.Mode == "" {
		placement.Mode = models.ModeMerged
	}
	if err := placement.Validate(); err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("place tubes: %d points: %w", len(path), centerline.ErrNoGeometry)
	}

	smoothed := resample.Smooth(path, placement.SmoothingFactor)
	positions := PlacementPositions(placement.Mode, placement.Count,
		placement.BasePosition, placement.Length, geometry.ArcLength(smoothed))

	res := &Result{Mode: placement.Mode}
	var errs []error
	for slot, pos := range positions {
		mesh, err := buildSegment(smoothed, placement.Length, pos, placement.Radius, placement.Resolution, opts)
		if err != nil {
			Logger().Warn("skipping tube", "slot", slot, "position", pos, "err", err)
			errs = append(errs, fmt.Errorf("tube %d: %w", slot, err))
			continue
		}
		res.Slots = append(res.Slots, slot)
		res.Positions = append(res.Positions, pos)
		res.Meshes = append(res.Meshes, mesh)
	}
	return finish(res, errs)
}

// BuildDeviceSet builds one tube per entry of tubes along path. Each tube
// keeps its own position, length and radius.
func BuildDeviceSet(path models.Path, tubes []models.TubeParameters, mode models.PlacementMode, opts Options) (*Result, error) {
	return buildSet(tubes, mode, opts, func(int) (models.Path, error) {
		if len(path) < 2 {
			return nil, fmt.Errorf("%d points: %w", len(path), centerline.ErrNoGeometry)
		}
		return path, nil
	})
}

// BuildFromSource is BuildDeviceSet with the centerline resolved from src.
// When src is a graph each tube follows its own branch.
func BuildFromSource(src models.Source, tubes []models.TubeParameters, mode models.PlacementMode, opts Options) (*Result, error) {
	return buildSet(tubes, mode, opts, func(branch int) (models.Path, error) {
		return centerline.Extract(src, branch)
	})
}

func buildSet(tubes []models.TubeParameters, mode models.PlacementMode, opts Options, resolve func(branch int) (models.Path, error)) (*Result, error) {
	if mode == "" {
		mode = models.ModeMerged
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", models.ErrInvalidParameter, mode)
	}
	if len(tubes) < models.MinTubes || len(tubes) > models.MaxTubes {
		return nil, fmt.Errorf("%w: tube count %d outside [%d, %d]",
			models.ErrInvalidParameter, len(tubes), models.MinTubes, models.MaxTubes)
	}

	paths := make(map[int]models.Path)
	for slot, p := range tubes {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("tube %d: %w", slot, err)
		}
		branch := p.BranchIndex()
		if _, ok := paths[branch]; ok {
			continue
		}
		path, err := resolve(branch)
		if err != nil {
			return nil, fail("no valid centerline source", err)
		}
		paths[branch] = path
	}

	res := &Result{Mode: mode}
	var errs []error
	for slot, p := range tubes {
		mesh, err := BuildDevice(paths[p.BranchIndex()], p, opts)
		if err != nil {
			Logger().Warn("skipping tube", "slot", slot, "position", p.Position, "err", err)
			errs = append(errs, fmt.Errorf("tube %d: %w", slot, err))
			continue
		}
		res.Slots = append(res.Slots, slot)
		res.Positions = append(res.Positions, p.Position)
		res.Meshes = append(res.Meshes, mesh)
	}
	return finish(res, errs)
}

// finish merges the meshes of a merged-mode result and reports a failure
// when nothing was built.
func finish(res *Result, errs []error) (*Result, error) {
	if len(res.Meshes) == 0 {
		errs = append([]error{ErrNoTubesGenerated}, errs...)
		return nil, fail("could not create any tubes", errors.Join(errs...))
	}
	if res.Mode == models.ModeMerged && len(res.Meshes) > 1 {
		res.Meshes = []*models.TubeMesh{tube.Append(res.Meshes...)}
	}
	Logger().Info("device built",
		"mode", string(res.Mode),
		"tubes", len(res.Slots),
		"skipped", len(errs),
		"meshes", len(res.Meshes))
	return res, nil
}
