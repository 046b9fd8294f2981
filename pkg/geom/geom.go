// Package geom defines the vector primitives shared by every surface in the
// kernel: positions (Point), vectors (Direction) and the numeric tolerances
// that govern intersection math.
package geom

import (
	"fmt"
	"math"
)

// Distance queries return math.Inf(1) when no forward crossing exists;
// test for it with math.IsInf(d, 1).
const (
	// FPTolerance is the floating point fuzz used for parallel-ray checks
	// and fuzzy comparisons.
	FPTolerance = 1e-12

	// CoincidentSurf is the minimum travel distance for a crossing to count.
	// Roots at or below it are treated as the ray's own origin.
	CoincidentSurf = 1e-12
)

// Point is a position in space. Points are values; two points with equal
// coordinates are interchangeable.
type Point struct {
	X, Y, Z float64
}

// Direction is a vector in space. It is kept distinct from Point so that
// positions and displacements are not mixed by accident.
type Direction struct {
	X, Y, Z float64
}

// DirectionFrom reinterprets a point's coordinates as a direction.
func DirectionFrom(p Point) Direction {
	return Direction{X: p.X, Y: p.Y, Z: p.Z}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// AddDir returns the point reached by moving p along d.
func (p Point) AddDir(d Direction) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y, Z: p.Z + d.Z}
}

// SubDir returns the point reached by moving p against d.
func (p Point) SubDir(d Direction) Point {
	return Point{X: p.X - d.X, Y: p.Y - d.Y, Z: p.Z - d.Z}
}

func (p Point) String() string {
	return fmt.Sprintf("Point(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Add returns d + e.
func (d Direction) Add(e Direction) Direction {
	return Direction{X: d.X + e.X, Y: d.Y + e.Y, Z: d.Z + e.Z}
}

// Sub returns d - e.
func (d Direction) Sub(e Direction) Direction {
	return Direction{X: d.X - e.X, Y: d.Y - e.Y, Z: d.Z - e.Z}
}

// Neg returns -d.
func (d Direction) Neg() Direction {
	return Direction{X: -d.X, Y: -d.Y, Z: -d.Z}
}

// Scale returns s * d.
func (d Direction) Scale(s float64) Direction {
	return Direction{X: s * d.X, Y: s * d.Y, Z: s * d.Z}
}

// Dot returns the dot product d · e.
func (d Direction) Dot(e Direction) float64 {
	return d.X*e.X + d.Y*e.Y + d.Z*e.Z
}

// Length returns the Euclidean norm of d.
func (d Direction) Length() float64 {
	return math.Sqrt(d.Dot(d))
}

func (d Direction) String() string {
	return fmt.Sprintf("Direction(%g, %g, %g)", d.X, d.Y, d.Z)
}

// Normalize returns d scaled to unit length. The caller must pass a
// non-zero direction; a zero input produces NaN components.
func Normalize(d Direction) Direction {
	norm := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
	return Direction{X: d.X / norm, Y: d.Y / norm, Z: d.Z / norm}
}
