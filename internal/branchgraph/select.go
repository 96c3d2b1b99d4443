package branchgraph

import (
	"errors"
	"fmt"

	"github.com/evarsim/core/internal/models"
)

var (
	// ErrBranchIndexOutOfRange is returned when a branch outside the analysis is requested.
	ErrBranchIndexOutOfRange = errors.New("branch index out of range")

	// ErrNilGraph is returned when no graph is supplied.
	ErrNilGraph = errors.New("polyline graph is nil")
)

// Len returns the number of branches.
func (a *Analysis) Len() int {
	return len(a.Branches)
}

// Branch returns the ordered coordinates of branch i. An out-of-range index
// yields an empty path and ErrBranchIndexOutOfRange; the caller is expected
// to fall back to a default branch.
func (a *Analysis) Branch(i int) (models.Path, error) {
	if i < 0 || i >= len(a.Branches) {
		return models.Path{}, fmt.Errorf("%w: %d (have %d)", ErrBranchIndexOutOfRange, i, len(a.Branches))
	}
	return a.graph.SegmentPath(a.Branches[i].SegmentIndex), nil
}

// IsBranchPoint reports whether point p has more than two neighbours.
func (a *Analysis) IsBranchPoint(p int) bool {
	return a.Connectivity.Degree(p) > 2
}

// IsEndpoint reports whether point p has exactly one neighbour.
func (a *Analysis) IsEndpoint(p int) bool {
	return a.Connectivity.Degree(p) == 1
}

// BranchesWithRole returns the branches classified as role, in order.
func (a *Analysis) BranchesWithRole(role models.BranchRole) []models.Branch {
	var out []models.Branch
	for _, b := range a.Branches {
		if b.Role == role {
			out = append(out, b)
		}
	}
	return out
}

// Longest returns the branch with the greatest arc length that is longer
// than minLength. The second result is false when no branch qualifies.
func (a *Analysis) Longest(minLength float64) (models.Branch, bool) {
	best, found := models.Branch{}, false
	for _, b := range a.Branches {
		if b.ArcLength <= minLength {
			continue
		}
		if !found || b.ArcLength > best.ArcLength {
			best, found = b, true
		}
	}
	return best, found
}
