// Package tube sweeps a circular cross-section along a point sequence and
// closes it with flat end caps. The side wall and both caps share their rim
// vertices after cleanup, so a tube is a single closed surface with outward
// normals.
package tube

import (
	"fmt"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

const (
	// MinResolution is the fewest sides a tube is built with. Smaller
	// requests are raised to it.
	MinResolution = 8
	// DedupTolerance is the distance within which vertices are merged.
	DedupTolerance = 1e-4
)

// BuildTube returns a capped tube of uniform radius around path.
//
// The side wall has one ring of resolution vertices per path point. The start
// cap faces against the first edge and the end cap along the last one. Both
// caps are perpendicular to their edge regardless of how the wall bends.
func BuildTube(path models.Path, radius float64, resolution int) (*models.TubeMesh, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("build tube: %d points: %w", len(path), ErrInsufficientGeometry)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("build tube: radius %v: %w", radius, ErrInvalidRadius)
	}
	resolution = max(resolution, MinResolution)

	pts := collapse(path, DedupTolerance)
	if len(pts) < 2 {
		return nil, fmt.Errorf("build tube: path collapses to a point: %w", geometry.ErrDegenerateVector)
	}

	tangents, err := pathTangents(pts)
	if err != nil {
		return nil, fmt.Errorf("build tube: %w", err)
	}

	startCap, err := BuildCap(pts.First(), tangents[0].Mul(-1), radius, resolution)
	if err != nil {
		return nil, fmt.Errorf("build tube: start cap: %w", err)
	}
	endCap, err := BuildCap(pts.Last(), tangents[len(tangents)-1], radius, resolution)
	if err != nil {
		return nil, fmt.Errorf("build tube: end cap: %w", err)
	}

	wall, err := sweepWall(pts, tangents, radius, resolution)
	if err != nil {
		return nil, fmt.Errorf("build tube: %w", err)
	}

	mesh := Clean(Append(wall, startCap, endCap), DedupTolerance)
	OrientOutward(mesh)
	ComputeNormals(mesh)
	return mesh, nil
}

// collapse drops points closer than tol to the previously kept point. The
// final point of path is always kept.
func collapse(path models.Path, tol float64) models.Path {
	out := models.Path{path[0]}
	for _, p := range path[1:] {
		if p.Distance(out[len(out)-1]) > tol {
			out = append(out, p)
		}
	}
	if last := path.Last(); len(out) > 1 && out.Last() != last {
		out[len(out)-1] = last
	}
	return out
}
