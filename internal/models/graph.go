// Package models defines the core data structures shared by the centerline,
// tube and device packages, together with their field-level validation.
package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/golang/geo/r3"
)

// PolylineGraph is raw centerline input: a point table plus segments that
// reference it by index. It is never mutated after load.
type PolylineGraph struct {
	Points   Path    `json:"points"`
	Segments [][]int `json:"segments"`
}

// PolylineGraph lets a graph act as its own graph source.
func (g *PolylineGraph) PolylineGraph() *PolylineGraph {
	return g
}

// Validate checks that every segment index refers to an existing point.
func (g *PolylineGraph) Validate() error {
	for si, seg := range g.Segments {
		for _, id := range seg {
			if id < 0 || id >= len(g.Points) {
				return fmt.Errorf("%w: segment %d references point %d, have %d points",
					ErrInvalidGraph, si, id, len(g.Points))
			}
		}
	}
	return nil
}

// SegmentPath resolves the point indices of segment i into coordinates.
func (g *PolylineGraph) SegmentPath(i int) Path {
	seg := g.Segments[i]
	path := make(Path, len(seg))
	for j, id := range seg {
		path[j] = g.Points[id]
	}
	return path
}

// Connectivity maps a point index to the set of point indices it shares a
// segment edge with. Edges are always registered in both directions.
type Connectivity map[int]map[int]struct{}

// Connect registers the symmetric edge a-b. Self edges are ignored.
func (c Connectivity) Connect(a, b int) {
	if a == b {
		return
	}
	if c[a] == nil {
		c[a] = make(map[int]struct{})
	}
	if c[b] == nil {
		c[b] = make(map[int]struct{})
	}
	c[a][b] = struct{}{}
	c[b][a] = struct{}{}
}

// Degree returns the number of distinct neighbours of point i.
func (c Connectivity) Degree(i int) int {
	return len(c[i])
}

// Connected reports whether a and b share an edge.
func (c Connectivity) Connected(a, b int) bool {
	_, ok := c[a][b]
	return ok
}

// Neighbors returns the neighbours of point i in ascending order.
func (c Connectivity) Neighbors(i int) []int {
	out := make([]int, 0, len(c[i]))
	for n := range c[i] {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Points returns every point index that has at least one edge, ascending.
func (c Connectivity) Points() []int {
	out := make([]int, 0, len(c))
	for p := range c {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// MarshalJSON encodes the connectivity as a sorted adjacency list.
func (c Connectivity) MarshalJSON() ([]byte, error) {
	adj := make(map[int][]int, len(c))
	for p := range c {
		adj[p] = c.Neighbors(p)
	}
	return json.Marshal(adj)
}

// BranchRole classifies a segment relative to the principal bifurcation point.
type BranchRole string

const (
	RoleStartsAtBranchPoint BranchRole = "from_branch"
	RoleEndsAtBranchPoint   BranchRole = "to_branch"
	RoleContainsBranchPoint BranchRole = "contains_branch"
	RoleDisconnected        BranchRole = "disconnected"
)

// Branch is a read-only view of one segment of a PolylineGraph.
type Branch struct {
	Index        int        `json:"index"`
	SegmentIndex int        `json:"segment_index"`
	PointIDs     []int      `json:"point_ids"`
	Start        r3.Vector  `json:"start"`
	End          r3.Vector  `json:"end"`
	Direction    r3.Vector  `json:"direction"`
	PointCount   int        `json:"point_count"`
	ArcLength    float64    `json:"arc_length"`
	Role         BranchRole `json:"role,omitempty"`
}
