package surface

import (
	"fmt"
	"math"

	"github.com/chazu/charmander/pkg/geom"
)

// Compile-time interface check.
var _ Surface = Plane{}

// Plane is the surface a·x + b·y + c·z = d. Its positive side is the one
// the coefficient vector (a, b, c) points into.
type Plane struct {
	a, b, c, d float64
}

// NewPlane returns the plane a·x + b·y + c·z = d. Coefficients are taken
// as given; (a, b, c) must not be zero for Normal to be defined.
func NewPlane(a, b, c, d float64) Plane {
	return Plane{a: a, b: b, c: c, d: d}
}

// NewXPlane returns the plane x = x0.
func NewXPlane(x0 float64) Plane { return NewPlane(1, 0, 0, x0) }

// NewYPlane returns the plane y = y0.
func NewYPlane(y0 float64) Plane { return NewPlane(0, 1, 0, y0) }

// NewZPlane returns the plane z = z0.
func NewZPlane(z0 float64) Plane { return NewPlane(0, 0, 1, z0) }

// Coefficients returns (a, b, c, d).
func (pl Plane) Coefficients() (a, b, c, d float64) {
	return pl.a, pl.b, pl.c, pl.d
}

// Evaluate returns a·x + b·y + c·z - d.
func (pl Plane) Evaluate(p geom.Point) float64 {
	return pl.a*p.X + pl.b*p.Y + pl.c*p.Z - pl.d
}

// Normal returns the normalized coefficient vector. The gradient of a plane
// is constant, so p is ignored.
func (pl Plane) Normal(geom.Point) geom.Direction {
	return geom.Normalize(geom.Direction{X: pl.a, Y: pl.b, Z: pl.c})
}

// Distance returns the travel distance along d from p to the plane.
// Rays parallel to the plane, including rays lying in it, never cross.
func (pl Plane) Distance(p geom.Point, d geom.Direction) float64 {
	denom := pl.a*d.X + pl.b*d.Y + pl.c*d.Z
	if math.Abs(denom) < geom.FPTolerance {
		return math.Inf(1)
	}

	t := -pl.Evaluate(p) / denom
	if t > geom.CoincidentSurf {
		return t
	}
	return math.Inf(1)
}

func (pl Plane) String() string {
	return fmt.Sprintf("Plane(%g, %g, %g, %g)", pl.a, pl.b, pl.c, pl.d)
}
