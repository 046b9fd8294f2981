// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/kernel"
	"github.com/chazu/charmander/pkg/surface"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface checks.
var _ kernel.Kernel = (*SdfxKernel)(nil)
var _ sdf.SDF3 = (*halfSpace)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 64

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// halfSpace adapts one side of a surface to sdf.SDF3. sdfx treats negative
// values as inside, so the positive side of a surface is negated.
//
// The surface field is not a true distance (a cylinder's field is
// quadratic), but marching cubes only relies on its sign and continuity.
type halfSpace struct {
	s        surface.Surface
	positive bool
	bb       sdf.Box3
}

func (h *halfSpace) Evaluate(p v3.Vec) float64 {
	v := h.s.Evaluate(geom.Point{X: p.X, Y: p.Y, Z: p.Z})
	if h.positive {
		return -v
	}
	return v
}

func (h *halfSpace) BoundingBox() sdf.Box3 {
	return h.bb
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func toVec(p geom.Point) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

func toBox3(b kernel.Bounds) sdf.Box3 {
	return sdf.Box3{Min: toVec(b.Min), Max: toVec(b.Max)}
}

// Box returns the solid filling b. sdf.Box3D centers the box at the origin,
// so it is moved to the center of b.
func (k *SdfxKernel) Box(b kernel.Bounds) kernel.Solid {
	size := b.Size()
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(toVec(b.Center()))
	return wrap(sdf.Transform3D(s, m))
}

// Region returns the part of b on the selected side of s.
func (k *SdfxKernel) Region(s surface.Surface, positive bool, b kernel.Bounds) kernel.Solid {
	hs := &halfSpace{s: s, positive: positive, bb: toBox3(b)}
	// The box goes first: sdfx takes the bounding box of the first operand.
	return wrap(sdf.Intersect3D(unwrap(k.Box(b)), hs))
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid, cells int) (*kernel.Mesh, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numVerts := len(triangles) * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
