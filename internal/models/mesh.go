package models

import (
	"github.com/golang/geo/r3"

	"github.com/evarsim/core/internal/geometry"
)

// TubeMesh is a polygon mesh: shared vertices plus faces that index into them.
// Side walls use quads, caps use triangles. Normals are optional and, when
// present, parallel Vertices and Faces respectively.
type TubeMesh struct {
	Vertices     Path    `json:"vertices"`
	Faces        [][]int `json:"faces"`
	PointNormals Path    `json:"point_normals,omitempty"`
	FaceNormals  Path    `json:"face_normals,omitempty"`
}

// MeshStats summarises a mesh for logs and responses.
type MeshStats struct {
	Vertices  int       `json:"vertices"`
	Faces     int       `json:"faces"`
	Triangles int       `json:"triangles"`
	Min       r3.Vector `json:"min"`
	Max       r3.Vector `json:"max"`
}

// VertexCount returns the number of vertices.
func (m *TubeMesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of polygons.
func (m *TubeMesh) FaceCount() int {
	return len(m.Faces)
}

// TriangleCount returns the number of triangles the faces fan out into.
func (m *TubeMesh) TriangleCount() int {
	n := 0
	for _, f := range m.Faces {
		if len(f) >= 3 {
			n += len(f) - 2
		}
	}
	return n
}

// IsEmpty returns true if the mesh has no geometry.
func (m *TubeMesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Faces) == 0
}

// Stats returns counts and bounds of the mesh.
func (m *TubeMesh) Stats() MeshStats {
	lo, hi := geometry.Bounds(m.Vertices)
	return MeshStats{
		Vertices:  m.VertexCount(),
		Faces:     m.FaceCount(),
		Triangles: m.TriangleCount(),
		Min:       lo,
		Max:       hi,
	}
}
