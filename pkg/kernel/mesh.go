package kernel

import (
	"math"

	"github.com/chazu/charmander/pkg/geom"
)

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	CellName string    `json:"cellName"` // which cell this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no geometry. A cell lying entirely
// outside the preview bounds produces an empty mesh.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Extent returns the bounding box of the mesh vertices. It returns zero
// points for an empty mesh.
func (m *Mesh) Extent() (min, max geom.Point) {
	if m.IsEmpty() {
		return min, max
	}
	min = geom.Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = geom.Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		x, y, z := float64(m.Vertices[i]), float64(m.Vertices[i+1]), float64(m.Vertices[i+2])
		min = geom.Point{X: math.Min(min.X, x), Y: math.Min(min.Y, y), Z: math.Min(min.Z, z)}
		max = geom.Point{X: math.Max(max.X, x), Y: math.Max(max.Y, y), Z: math.Max(max.Z, z)}
	}
	return min, max
}
