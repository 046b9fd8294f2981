// Package surface defines the implicit bounding surfaces of the geometry
// kernel. A surface is a scalar field over space whose zero level set is the
// boundary; the sign of the field tells which side a point is on.
//
// Surfaces hold only their shape parameters, fixed at construction, and are
// safe for concurrent use.
package surface

import (
	"math"

	"github.com/chazu/charmander/pkg/geom"
)

// Surface is the capability every surface family implements.
type Surface interface {
	// Evaluate returns the signed implicit field at p. It is zero on the
	// surface and its sign denotes the side.
	Evaluate(p geom.Point) float64

	// Distance returns the travel distance along d from p to the nearest
	// forward crossing, or math.Inf(1) when there is none.
	Distance(p geom.Point, d geom.Direction) float64

	// Normal returns the unit normal at a point on or near the surface.
	Normal(p geom.Point) geom.Direction
}

// Sense reports whether p lies on the positive side of s. Points exactly on
// the surface (including +0) are positive; -0 is negative.
func Sense(s Surface, p geom.Point) bool {
	return !math.Signbit(s.Evaluate(p))
}
