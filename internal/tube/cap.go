package tube

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

// BuildCap returns a flat disk of the given radius centred on center and
// facing normal. Vertex 0 is the centre and vertices 1..resolution are the
// rim, counter-clockwise about normal, so every fan triangle faces normal.
func BuildCap(center, normal r3.Vector, radius float64, resolution int) (*models.TubeMesh, error) {
	u, v, err := geometry.OrthonormalBasis(normal)
	if err != nil {
		return nil, fmt.Errorf("build cap: %w", err)
	}

	rim := capRim(center, u, v, radius, resolution)

	mesh := &models.TubeMesh{
		Vertices: make(models.Path, 0, resolution+1),
		Faces:    make([][]int, 0, resolution),
	}
	mesh.Vertices = append(mesh.Vertices, center)
	mesh.Vertices = append(mesh.Vertices, rim...)
	for i := 0; i < resolution; i++ {
		mesh.Faces = append(mesh.Faces, []int{0, i + 1, (i+1)%resolution + 1})
	}
	return mesh, nil
}

// capRim places resolution points on the circle of radius around center in
// the plane spanned by u and v, starting on u.
func capRim(center, u, v r3.Vector, radius float64, resolution int) models.Path {
	rim := make(models.Path, resolution)
	for i := range rim {
		angle := 2 * math.Pi * float64(i) / float64(resolution)
		offset := u.Mul(math.Cos(angle)).Add(v.Mul(math.Sin(angle)))
		rim[i] = center.Add(offset.Mul(radius))
	}
	return rim
}
