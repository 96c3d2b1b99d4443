// Package branchgraph derives branch topology from a polyline graph: point
// connectivity, branch and end points, per-segment branch records and a
// classification of every segment around the dominant bifurcation.
//
// The classification assumes a star topology around one principal
// bifurcation point. It does not decompose multi-level branching trees.
package branchgraph

import (
	"fmt"
	"sort"

	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

// Options tunes which segments are reported as branches.
type Options struct {
	// MinSegmentPoints is the smallest point count a segment needs to be
	// listed as a branch. Connectivity always includes every segment.
	MinSegmentPoints int
}

// DefaultOptions lists every segment that has at least two points.
func DefaultOptions() Options {
	return Options{MinSegmentPoints: 2}
}

// Analysis is the derived, read-only view of a PolylineGraph.
type Analysis struct {
	Connectivity models.Connectivity `json:"connectivity"`
	Branches     []models.Branch     `json:"branches"`
	BranchPoints []int               `json:"branch_points"`
	Endpoints    []int               `json:"endpoints"`
	Terminations map[int]int         `json:"terminations"`
	// Principal is the point with the most segment terminations, or -1.
	Principal int `json:"principal"`

	graph *models.PolylineGraph
}

// Analyze builds the analysis of g with DefaultOptions.
func Analyze(g *models.PolylineGraph) (*Analysis, error) {
	return AnalyzeWithOptions(g, DefaultOptions())
}

// AnalyzeWithOptions builds the analysis of g.
func AnalyzeWithOptions(g *models.PolylineGraph, opts Options) (*Analysis, error) {
	if g == nil {
		return nil, fmt.Errorf("analyze: %w", ErrNilGraph)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if opts.MinSegmentPoints < 2 {
		opts.MinSegmentPoints = 2
	}

	a := &Analysis{
		Connectivity: BuildConnectivity(g),
		Branches:     []models.Branch{},
		Terminations: countTerminations(g.Segments),
		graph:        g,
	}
	a.BranchPoints, a.Endpoints = classifyPoints(a.Connectivity)
	a.Principal = principalPoint(a.Terminations)

	for si, seg := range g.Segments {
		if len(seg) < opts.MinSegmentPoints {
			continue
		}
		a.Branches = append(a.Branches, buildBranch(g, len(a.Branches), si, a.Principal))
	}

	return a, nil
}

// BuildConnectivity registers a symmetric edge for every consecutive point
// pair of every segment.
func BuildConnectivity(g *models.PolylineGraph) models.Connectivity {
	c := models.Connectivity{}
	for _, seg := range g.Segments {
		for i := 1; i < len(seg); i++ {
			c.Connect(seg[i-1], seg[i])
		}
	}
	return c
}

func classifyPoints(c models.Connectivity) (branchPoints, endpoints []int) {
	branchPoints, endpoints = []int{}, []int{}
	for _, p := range c.Points() {
		switch d := c.Degree(p); {
		case d > 2:
			branchPoints = append(branchPoints, p)
		case d == 1:
			endpoints = append(endpoints, p)
		}
	}
	return branchPoints, endpoints
}

func countTerminations(segments [][]int) map[int]int {
	counts := make(map[int]int)
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		counts[seg[0]]++
		if len(seg) > 1 {
			counts[seg[len(seg)-1]]++
		}
	}
	return counts
}

// principalPoint picks the most frequent termination; ties go to the lowest index.
func principalPoint(counts map[int]int) int {
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	best, bestCount := -1, 0
	for _, id := range ids {
		if counts[id] > bestCount {
			best, bestCount = id, counts[id]
		}
	}
	return best
}

func buildBranch(g *models.PolylineGraph, index, segment, principal int) models.Branch {
	ids := g.Segments[segment]
	path := g.SegmentPath(segment)
	start, end := path.First(), path.Last()

	pointIDs := make([]int, len(ids))
	copy(pointIDs, ids)

	return models.Branch{
		Index:        index,
		SegmentIndex: segment,
		PointIDs:     pointIDs,
		Start:        start,
		End:          end,
		Direction:    geometry.NormalizeOr(end.Sub(start), r3.Vector{}),
		PointCount:   len(ids),
		ArcLength:    path.ArcLength(),
		Role:         classifySegment(ids, principal),
	}
}

func classifySegment(ids []int, principal int) models.BranchRole {
	switch {
	case principal < 0:
		return models.RoleDisconnected
	case ids[0] == principal:
		return models.RoleStartsAtBranchPoint
	case ids[len(ids)-1] == principal:
		return models.RoleEndsAtBranchPoint
	}
	for _, id := range ids[1 : len(ids)-1] {
		if id == principal {
			return models.RoleContainsBranchPoint
		}
	}
	return models.RoleDisconnected
}
