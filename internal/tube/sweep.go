package tube

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

// pathTangents returns a unit tangent per point: the edge direction at either
// end and the bisector of the adjacent edges in between.
func pathTangents(pts models.Path) ([]r3.Vector, error) {
	dirs := make([]r3.Vector, len(pts)-1)
	for i := range dirs {
		d, err := geometry.Normalize(pts[i+1].Sub(pts[i]))
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		dirs[i] = d
	}

	tangents := make([]r3.Vector, len(pts))
	tangents[0] = dirs[0]
	tangents[len(pts)-1] = dirs[len(dirs)-1]
	for i := 1; i < len(pts)-1; i++ {
		// a full reversal has no bisector
		tangents[i] = geometry.NormalizeOr(dirs[i-1].Add(dirs[i]), dirs[i-1])
	}
	return tangents, nil
}

// sweepWall builds the uncapped side wall as quads between consecutive rings.
//
// The first ring reuses the start cap's rim points and the last ring the end
// cap's, so the three pieces meet exactly. In between, the ring frame is
// carried along by projection onto each cross-section plane, and whatever
// twist is needed to land on the end cap's rim is spread evenly over the arc
// length.
func sweepWall(pts models.Path, tangents []r3.Vector, radius float64, resolution int) (*models.TubeMesh, error) {
	n := len(pts)

	u0, v0, err := geometry.OrthonormalBasis(tangents[0].Mul(-1))
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	ue, ve, err := geometry.OrthonormalBasis(tangents[n-1])
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	startRim := capRim(pts[0], u0, v0, radius, resolution)
	endRim := capRim(pts[n-1], ue, ve, radius, resolution)

	frames := make([]r3.Vector, n)
	frames[0] = u0
	for i := 1; i < n; i++ {
		t := tangents[i]
		prev := frames[i-1]
		a, err := geometry.Normalize(prev.Sub(t.Mul(prev.Dot(t))))
		if err != nil {
			if a, _, err = geometry.OrthonormalBasis(t); err != nil {
				return nil, fmt.Errorf("sweep: frame %d: %w", i, err)
			}
		}
		frames[i] = a
	}

	step := 2 * math.Pi / float64(resolution)
	last := frames[n-1]
	phi := math.Atan2(last.Dot(ve), last.Dot(ue))
	shift := int(math.Round(phi / step))
	twist := float64(shift)*step - phi

	cum := geometry.CumulativeLengths(pts)
	total := cum[n-1]

	mesh := &models.TubeMesh{
		Vertices: make(models.Path, 0, n*resolution),
		Faces:    make([][]int, 0, (n-1)*resolution),
	}
	for i, p := range pts {
		switch i {
		case 0:
			for k := 0; k < resolution; k++ {
				mesh.Vertices = append(mesh.Vertices, startRim[(resolution-k)%resolution])
			}
		case n - 1:
			for k := 0; k < resolution; k++ {
				mesh.Vertices = append(mesh.Vertices, endRim[mod(k+shift, resolution)])
			}
		default:
			t := tangents[i]
			alpha := twist * cum[i] / total
			a := frames[i].Mul(math.Cos(alpha)).Add(t.Cross(frames[i]).Mul(math.Sin(alpha)))
			b := t.Cross(a)
			mesh.Vertices = append(mesh.Vertices, capRim(p, a, b, radius, resolution)...)
		}
	}

	for i := 0; i < n-1; i++ {
		row, next := i*resolution, (i+1)*resolution
		for k := 0; k < resolution; k++ {
			k1 := (k + 1) % resolution
			mesh.Faces = append(mesh.Faces, []int{row + k, row + k1, next + k1, next + k})
		}
	}
	return mesh, nil
}

func mod(a, m int) int {
	return ((a % m) + m) % m
}
