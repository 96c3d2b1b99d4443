package tube

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
	"github.com/evarsim/core/internal/models"
)

// Append concatenates meshes into one, offsetting face indices. Nil and empty
// meshes are skipped. Normals are carried over only when every input has them.
func Append(meshes ...*models.TubeMesh) *models.TubeMesh {
	out := &models.TubeMesh{}
	withNormals := true
	for _, m := range meshes {
		if m == nil || m.IsEmpty() {
			continue
		}
		if len(m.PointNormals) != len(m.Vertices) || len(m.FaceNormals) != len(m.Faces) {
			withNormals = false
		}

		offset := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			face := make([]int, len(f))
			for i, idx := range f {
				face[i] = idx + offset
			}
			out.Faces = append(out.Faces, face)
		}
		out.PointNormals = append(out.PointNormals, m.PointNormals...)
		out.FaceNormals = append(out.FaceNormals, m.FaceNormals...)
	}
	if !withNormals || out.IsEmpty() {
		out.PointNormals, out.FaceNormals = nil, nil
	}
	return out
}

type cell struct {
	x, y, z int64
}

func cellOf(p r3.Vector, size float64) cell {
	return cell{
		x: int64(math.Floor(p.X / size)),
		y: int64(math.Floor(p.Y / size)),
		z: int64(math.Floor(p.Z / size)),
	}
}

// Clean merges vertices within tol of each other, drops faces that collapse
// to fewer than three distinct corners and removes vertices no face uses.
// The first vertex of each merged group survives and vertex order is kept.
// Normals are discarded.
func Clean(mesh *models.TubeMesh, tol float64) *models.TubeMesh {
	if tol <= 0 {
		tol = geometry.Epsilon
	}

	grid := make(map[cell][]int)
	unique := make(models.Path, 0, len(mesh.Vertices))
	remap := make([]int, len(mesh.Vertices))
	for i, p := range mesh.Vertices {
		remap[i] = -1
		c := cellOf(p, tol)
	search:
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, u := range grid[cell{c.x + dx, c.y + dy, c.z + dz}] {
						if unique[u].Distance(p) <= tol {
							remap[i] = u
							break search
						}
					}
				}
			}
		}
		if remap[i] < 0 {
			remap[i] = len(unique)
			grid[c] = append(grid[c], len(unique))
			unique = append(unique, p)
		}
	}

	faces := make([][]int, 0, len(mesh.Faces))
	used := make([]bool, len(unique))
	for _, f := range mesh.Faces {
		face := make([]int, 0, len(f))
		for _, idx := range f {
			v := remap[idx]
			if len(face) == 0 || face[len(face)-1] != v {
				face = append(face, v)
			}
		}
		for len(face) > 1 && face[0] == face[len(face)-1] {
			face = face[:len(face)-1]
		}
		if len(face) < 3 {
			continue
		}
		for _, v := range face {
			used[v] = true
		}
		faces = append(faces, face)
	}

	compact := make([]int, len(unique))
	out := &models.TubeMesh{Vertices: make(models.Path, 0, len(unique))}
	for i, p := range unique {
		if !used[i] {
			continue
		}
		compact[i] = len(out.Vertices)
		out.Vertices = append(out.Vertices, p)
	}
	for _, f := range faces {
		for i, v := range f {
			f[i] = compact[v]
		}
	}
	out.Faces = faces
	return out
}

// faceNormal returns the Newell normal of face. Its length is twice the
// polygon area.
func faceNormal(verts models.Path, face []int) r3.Vector {
	var n r3.Vector
	for i, idx := range face {
		cur, next := verts[idx], verts[face[(i+1)%len(face)]]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// SignedVolume returns the volume enclosed by a closed mesh. It is positive
// when the faces wind counter-clockwise seen from outside.
func SignedVolume(mesh *models.TubeMesh) float64 {
	var vol float64
	for _, f := range mesh.Faces {
		p0 := mesh.Vertices[f[0]]
		for i := 1; i+1 < len(f); i++ {
			vol += p0.Dot(mesh.Vertices[f[i]].Cross(mesh.Vertices[f[i+1]]))
		}
	}
	return vol / 6
}

// OrientOutward reverses every face when the mesh encloses negative volume.
// It reports whether the faces were flipped.
func OrientOutward(mesh *models.TubeMesh) bool {
	if SignedVolume(mesh) >= 0 {
		return false
	}
	for _, f := range mesh.Faces {
		for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
			f[i], f[j] = f[j], f[i]
		}
	}
	return true
}

// ComputeNormals fills in unit face normals and area-weighted unit vertex
// normals. Vertices shared between faces get a single blended normal.
func ComputeNormals(mesh *models.TubeMesh) {
	mesh.FaceNormals = make(models.Path, len(mesh.Faces))
	sums := make(models.Path, len(mesh.Vertices))
	for i, f := range mesh.Faces {
		n := faceNormal(mesh.Vertices, f)
		mesh.FaceNormals[i] = geometry.NormalizeOr(n, r3.Vector{})
		for _, idx := range f {
			sums[idx] = sums[idx].Add(n)
		}
	}

	mesh.PointNormals = make(models.Path, len(mesh.Vertices))
	for i, s := range sums {
		mesh.PointNormals[i] = geometry.NormalizeOr(s, r3.Vector{})
	}
}
