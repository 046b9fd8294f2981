package geom

import "math"

// FuzzyEqualPoints reports whether every component of a - b is below
// FPTolerance. The comparison is one-sided: a component of a that is far
// below the matching component of b still passes. Callers that need a true
// proximity test should use ApproxEqualPoints.
func FuzzyEqualPoints(a, b Point) bool {
	return a.X-b.X < FPTolerance && a.Y-b.Y < FPTolerance && a.Z-b.Z < FPTolerance
}

// FuzzyEqualDirections is the Direction counterpart of FuzzyEqualPoints and
// shares its one-sided comparison.
func FuzzyEqualDirections(a, b Direction) bool {
	return a.X-b.X < FPTolerance && a.Y-b.Y < FPTolerance && a.Z-b.Z < FPTolerance
}

// ApproxEqualPoints reports whether a and b agree to within tol in every
// component.
func ApproxEqualPoints(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

// ApproxEqualDirections reports whether a and b agree to within tol in every
// component.
func ApproxEqualDirections(a, b Direction, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}
