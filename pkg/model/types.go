// Package model holds the geometry produced by a setup script: named
// surfaces and the cells bounded by them. A Geometry is built once during
// setup and treated as read-only afterwards.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/surface"
)

// ID is a content-addressed identifier for surfaces and cells.
type ID string

// ZeroID is the empty identifier.
const ZeroID ID = ""

// NewID derives an ID from a path such as "surface/fuel-wall".
func NewID(path string) ID {
	sum := sha256.Sum256([]byte(path))
	return ID(hex.EncodeToString(sum[:]))
}

// IsZero reports whether id is unset.
func (id ID) IsZero() bool { return id == ZeroID }

// Short returns the first 8 characters of the ID for messages.
func (id ID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// SurfaceKind enumerates the surface families a setup can define.
type SurfaceKind int

const (
	KindPlane    SurfaceKind = iota // general or axis-aligned plane
	KindCylinder                    // infinite circular cylinder
)

func (k SurfaceKind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindCylinder:
		return "cylinder"
	default:
		return "unknown"
	}
}

// SurfaceSpec records the parameters a surface was defined with, before any
// normalization, so that setup mistakes can be reported.
type SurfaceSpec struct {
	Kind SurfaceKind

	// Plane: A·x + B·y + C·z = D.
	A, B, C, D float64

	// Cylinder.
	Radius float64
	Axis   geom.Direction
	Center geom.Point
}

// PlaneSpec returns the spec of the plane a·x + b·y + c·z = d.
func PlaneSpec(a, b, c, d float64) SurfaceSpec {
	return SurfaceSpec{Kind: KindPlane, A: a, B: b, C: c, D: d}
}

// CylinderSpec returns the spec of a cylinder of radius r around the line
// through center along axis.
func CylinderSpec(r float64, axis geom.Direction, center geom.Point) SurfaceSpec {
	return SurfaceSpec{Kind: KindCylinder, Radius: r, Axis: axis, Center: center}
}

// Build constructs the kernel surface for the spec.
func (s SurfaceSpec) Build() (surface.Surface, error) {
	switch s.Kind {
	case KindPlane:
		return surface.NewPlane(s.A, s.B, s.C, s.D), nil
	case KindCylinder:
		return surface.NewCylinder(s.Radius, s.Axis, s.Center), nil
	default:
		return nil, fmt.Errorf("model: unknown surface kind %v", s.Kind)
	}
}

func (s SurfaceSpec) String() string {
	switch s.Kind {
	case KindPlane:
		return fmt.Sprintf("(plane %g %g %g %g)", s.A, s.B, s.C, s.D)
	case KindCylinder:
		return fmt.Sprintf("(cylinder :radius %g :axis %v :center %v)", s.Radius, s.Axis, s.Center)
	default:
		return "(unknown)"
	}
}

// SurfaceDef is a named surface in the geometry.
type SurfaceDef struct {
	ID      ID
	Name    string
	Spec    SurfaceSpec
	Surface surface.Surface
}

// Bound references one side of a surface.
type Bound struct {
	Surface  ID
	Positive bool
}

// CellDef is a named cell: the intersection of its bounds.
type CellDef struct {
	ID     ID
	Name   string
	Bounds []Bound
}

// Box is an axis-aligned region used for previews.
type Box struct {
	Min, Max geom.Point
}

// Defaults carries geometry-wide settings.
type Defaults struct {
	Units          string  // length unit of all coordinates
	FPTolerance    float64 // informational; the kernel uses geom.FPTolerance
	CoincidentSurf float64 // informational; the kernel uses geom.CoincidentSurf
	Bounds         Box     // preview clip region
	MeshCells      int     // marching cubes resolution along the longest side
}

// DefaultBounds is the preview region used when a setup does not set one.
var DefaultBounds = Box{
	Min: geom.Point{X: -10, Y: -10, Z: -10},
	Max: geom.Point{X: 10, Y: 10, Z: 10},
}

// DefaultMeshCells is the default preview resolution.
const DefaultMeshCells = 64
