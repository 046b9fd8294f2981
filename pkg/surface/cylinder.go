package surface

import (
	"fmt"
	"math"

	"github.com/chazu/charmander/pkg/geom"
)

// Compile-time interface check.
var _ Surface = Cylinder{}

// Cylinder is an infinite circular cylinder of radius r around the line
// through center along axis. Points outside the cylinder are positive.
type Cylinder struct {
	r      float64
	axis   geom.Direction // unit length
	center geom.Point
}

// NewCylinder returns a cylinder of radius r around the line through center
// along axis. The axis may have any non-zero length; it is normalized here
// and never again.
func NewCylinder(r float64, axis geom.Direction, center geom.Point) Cylinder {
	return Cylinder{r: r, axis: geom.Normalize(axis), center: center}
}

// NewXCylinder returns a cylinder parallel to the x axis. The x coordinate
// of center has no effect on the field and is set to zero.
func NewXCylinder(r float64, center geom.Point) Cylinder {
	return NewCylinder(r, geom.Direction{X: 1}, geom.Point{Y: center.Y, Z: center.Z})
}

// NewYCylinder returns a cylinder parallel to the y axis.
func NewYCylinder(r float64, center geom.Point) Cylinder {
	return NewCylinder(r, geom.Direction{Y: 1}, geom.Point{X: center.X, Z: center.Z})
}

// NewZCylinder returns a cylinder parallel to the z axis.
func NewZCylinder(r float64, center geom.Point) Cylinder {
	return NewCylinder(r, geom.Direction{Z: 1}, geom.Point{X: center.X, Y: center.Y})
}

// Radius returns the cylinder radius.
func (c Cylinder) Radius() float64 { return c.r }

// Axis returns the unit axis direction.
func (c Cylinder) Axis() geom.Direction { return c.axis }

// Center returns the reference point on the axis.
func (c Cylinder) Center() geom.Point { return c.center }

// perp returns the component of v perpendicular to the axis.
func (c Cylinder) perp(v geom.Direction) geom.Direction {
	return v.Sub(c.axis.Scale(v.Dot(c.axis)))
}

// radial returns the offset from the axis to p, perpendicular to the axis.
func (c Cylinder) radial(p geom.Point) geom.Direction {
	return c.perp(geom.DirectionFrom(p.Sub(c.center)))
}

// Evaluate returns the squared distance from the axis minus r². It does not
// depend on the position along the axis.
func (c Cylinder) Evaluate(p geom.Point) float64 {
	w := c.radial(p)
	return w.Dot(w) - c.r*c.r
}

// Normal returns the radial unit vector from the axis towards p. It is
// undefined for points on the axis.
func (c Cylinder) Normal(p geom.Point) geom.Direction {
	return geom.Normalize(c.radial(p))
}

// Distance solves A·t² + B·t + C = 0 in the plane perpendicular to the axis
// and returns the smallest root beyond geom.CoincidentSurf.
func (c Cylinder) Distance(p geom.Point, d geom.Direction) float64 {
	dperp := c.perp(d)
	wperp := c.radial(p)

	a := dperp.Dot(dperp)
	b := 2 * wperp.Dot(dperp)
	cc := wperp.Dot(wperp) - c.r*c.r

	// No radial travel: the ray runs along the axis.
	if math.Abs(a) < geom.FPTolerance {
		return math.Inf(1)
	}

	disc := b*b - 4*a*cc
	if disc < 0 {
		return math.Inf(1)
	}

	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)

	dist := math.Inf(1)
	if r1 > geom.CoincidentSurf {
		dist = r1
	}
	if r2 > geom.CoincidentSurf && r2 < dist {
		dist = r2
	}
	return dist
}

func (c Cylinder) String() string {
	return fmt.Sprintf("Cylinder(r=%g, axis=%v, center=%v)", c.r, c.axis, c.center)
}
