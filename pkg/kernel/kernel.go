// Package kernel defines the solid-modeling backend used to preview a
// geometry setup. Surfaces from package surface are turned into bounded
// regions, combined with boolean operations and meshed for display.
// The tracking kernel itself never goes through this interface.
package kernel

import (
	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/surface"
)

// Solid is an opaque handle to a backend solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Bounds is the axis-aligned box every preview solid is clipped to.
// Surfaces are infinite, so a region only becomes a finite solid once
// clipped.
type Bounds struct {
	Min, Max geom.Point
}

// Size returns the extent of b along each axis.
func (b Bounds) Size() geom.Direction {
	return geom.DirectionFrom(b.Max.Sub(b.Min))
}

// Center returns the midpoint of b.
func (b Bounds) Center() geom.Point {
	return geom.Point{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Kernel is the abstract solid-modeling interface.
type Kernel interface {
	// Primitives
	Box(b Bounds) Solid
	Region(s surface.Surface, positive bool, b Bounds) Solid // one side of s, clipped to b

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Mesh output; cells <= 0 selects the backend default resolution.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
