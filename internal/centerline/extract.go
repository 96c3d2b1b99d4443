// Package centerline resolves the ordered point sequence a device is placed
// along. A request carries a curve, a polyline graph with a branch index, or
// a bare surface point cloud; each is reduced to a models.Path here.
package centerline

import (
	"errors"
	"fmt"

	"github.com/evarsim/core/internal/branchgraph"
	"github.com/evarsim/core/internal/models"
)

// ErrNoGeometry is returned when a source yields fewer than two points.
var ErrNoGeometry = errors.New("no centerline geometry")

// PointSource supplies an already ordered centerline, such as a curve.
type PointSource interface {
	OrderedPoints() models.Path
}

// GraphSource supplies a polyline graph from which a branch is selected.
type GraphSource interface {
	PolylineGraph() *models.PolylineGraph
}

// FromCurve returns a copy of the points of src.
func FromCurve(src PointSource) (models.Path, error) {
	if src == nil {
		return nil, fmt.Errorf("curve: %w", ErrNoGeometry)
	}
	pts := src.OrderedPoints()
	if len(pts) < 2 {
		return nil, fmt.Errorf("curve has %d points: %w", len(pts), ErrNoGeometry)
	}
	return pts.Clone(), nil
}

// FromGraph returns the points of branch of the graph supplied by src.
//
// An out-of-range branch falls back to branch 0 with a warning. A graph with
// points but no segments is treated as a surface and goes through
// FromSurface.
func FromGraph(src GraphSource, branch int) (models.Path, error) {
	if src == nil {
		return nil, fmt.Errorf("graph: %w", ErrNoGeometry)
	}
	g := src.PolylineGraph()
	if g == nil {
		return nil, fmt.Errorf("graph: %w", ErrNoGeometry)
	}
	if len(g.Segments) == 0 {
		slogger().Debug("graph has no segments, using surface heuristic", "points", len(g.Points))
		return FromSurface(g.Points)
	}

	analysis, err := branchgraph.Analyze(g)
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	if analysis.Len() == 0 {
		return nil, fmt.Errorf("graph has no usable branches: %w", ErrNoGeometry)
	}

	path, err := analysis.Branch(branch)
	if errors.Is(err, branchgraph.ErrBranchIndexOutOfRange) {
		slogger().Warn("branch out of range, using branch 0", "branch", branch, "branches", analysis.Len())
		path, err = analysis.Branch(0)
	}
	if err != nil {
		return nil, fmt.Errorf("graph: %w", err)
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("branch has %d points: %w", len(path), ErrNoGeometry)
	}
	return path, nil
}

// Extract resolves src into a centerline. A curve wins over a graph, and a
// graph over a surface.
func Extract(src models.Source, branch int) (models.Path, error) {
	switch {
	case len(src.Curve) > 0:
		return FromCurve(src.Curve)
	case src.Graph != nil:
		return FromGraph(src.Graph, branch)
	case len(src.Surface) > 0:
		return FromSurface(src.Surface)
	default:
		return nil, fmt.Errorf("empty source: %w", ErrNoGeometry)
	}
}
