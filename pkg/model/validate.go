package model

import (
	"fmt"
	"math"
	"sort"

	"github.com/chazu/charmander/pkg/geom"
)

// ValidationSeverity indicates whether a validation finding blocks use of
// the geometry or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks use
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ID       ID                 // offending surface or cell (zero if geometry-level)
	Name     string             // its name, if any
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("[%s] %q: %s", e.Severity, e.Name, e.Message)
	case !e.ID.IsZero():
		return fmt.Sprintf("[%s] %s: %s", e.Severity, e.ID.Short(), e.Message)
	default:
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
}

// ValidationResult separates blocking errors from advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs every check on the geometry and returns all findings.
// It never mutates the geometry.
//
// The kernel itself trusts its inputs; these checks catch the setups that
// would otherwise produce NaN fields or regions that cannot be tracked.
func Validate(g *Geometry) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateSurfaces(g)...)
	errs = append(errs, validateCells(g)...)
	errs = append(errs, validateNames(g)...)
	errs = append(errs, validateUnused(g)...)
	return errs
}

// ValidateAll runs Validate and splits findings by severity.
func ValidateAll(g *Geometry) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(g) {
		if e.Severity == SeverityError {
			result.Errors = append(result.Errors, e)
		} else {
			result.Warnings = append(result.Warnings, e)
		}
	}
	return result
}

func validateSurfaces(g *Geometry) []ValidationError {
	var errs []ValidationError
	for _, s := range g.SurfaceList() {
		spec := s.Spec
		bad := func(format string, args ...any) {
			errs = append(errs, ValidationError{
				ID:       s.ID,
				Name:     s.Name,
				Message:  fmt.Sprintf(format, args...),
				Severity: SeverityError,
			})
		}
		switch spec.Kind {
		case KindPlane:
			n := geom.Direction{X: spec.A, Y: spec.B, Z: spec.C}
			if n.Length() < geom.FPTolerance {
				bad("plane has a zero normal vector")
			}
			if !finite(spec.A, spec.B, spec.C, spec.D) {
				bad("plane coefficients must be finite")
			}
		case KindCylinder:
			if spec.Axis.Length() < geom.FPTolerance {
				bad("cylinder axis has zero length")
			}
			if !(spec.Radius > 0) {
				bad("cylinder radius must be positive, got %g", spec.Radius)
			}
			if !finite(spec.Radius, spec.Axis.X, spec.Axis.Y, spec.Axis.Z,
				spec.Center.X, spec.Center.Y, spec.Center.Z) {
				bad("cylinder parameters must be finite")
			}
		default:
			bad("unknown surface kind %v", spec.Kind)
		}
	}
	return errs
}

func validateCells(g *Geometry) []ValidationError {
	var errs []ValidationError
	for _, c := range g.CellList() {
		if len(c.Bounds) == 0 {
			errs = append(errs, ValidationError{
				ID:       c.ID,
				Name:     c.Name,
				Message:  "cell has no bounding surfaces",
				Severity: SeverityError,
			})
		}
		for i, b := range c.Bounds {
			if _, ok := g.Surfaces[b.Surface]; !ok {
				errs = append(errs, ValidationError{
					ID:       c.ID,
					Name:     c.Name,
					Message:  fmt.Sprintf("bound %d references unknown surface %s", i, b.Surface.Short()),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

func validateNames(g *Geometry) []ValidationError {
	if len(g.redefined) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, n := range g.redefined {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)

	errs := make([]ValidationError, 0, len(names))
	for _, n := range names {
		errs = append(errs, ValidationError{
			Name:     n,
			Message:  "name defined more than once; the last definition wins",
			Severity: SeverityWarning,
		})
	}
	return errs
}

func validateUnused(g *Geometry) []ValidationError {
	used := make(map[ID]bool)
	for _, c := range g.Cells {
		for _, b := range c.Bounds {
			used[b.Surface] = true
		}
	}
	var errs []ValidationError
	for _, s := range g.SurfaceList() {
		if !used[s.ID] {
			errs = append(errs, ValidationError{
				ID:       s.ID,
				Name:     s.Name,
				Message:  "surface does not bound any cell",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
