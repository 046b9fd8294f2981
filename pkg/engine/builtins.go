package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/charmander/pkg/cell"
	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/model"
	"github.com/chazu/charmander/pkg/surface"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites setup source into something zygomys accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords never
//     collide with user variables.
//  2. Kebab-case identifiers become snake case (z-cylinder -> z_cylinder),
//     since zygomys reads the hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals are copied through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := []byte(source)
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"' || c == '`':
			j := skipString(b, i)
			out.Write(b[i:j])
			i = j

		case c == ';':
			out.WriteString("//")
			for i < len(b) && b[i] == ';' {
				i++
			}
			j := i
			for j < len(b) && b[j] != '\n' {
				j++
			}
			out.Write(b[i:j])
			i = j

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			fmt.Fprintf(&out, "%q", kwPrefix+string(b[i+1:j]))
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// skipString returns the index just past the string literal starting at i.
// Double-quoted strings honor backslash escapes; backtick strings do not.
func skipString(b []byte, i int) int {
	quote := b[i]
	j := i + 1
	for j < len(b) && b[j] != quote {
		if quote == '"' && b[j] == '\\' && j+1 < len(b) {
			j += 2
			continue
		}
		j++
	}
	if j < len(b) {
		j++
	}
	return j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpPoint struct {
	p geom.Point
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %g %g %g)", s.p.X, s.p.Y, s.p.Z)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

type sexpDirection struct {
	d geom.Direction
}

func (s *sexpDirection) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(direction %g %g %g)", s.d.X, s.d.Y, s.d.Z)
}
func (s *sexpDirection) Type() *zygo.RegisteredType { return nil }

// sexpSurface is a surface expression that has not been registered yet.
type sexpSurface struct {
	spec model.SurfaceSpec
}

func (s *sexpSurface) SexpString(ps *zygo.PrintState) string { return s.spec.String() }
func (s *sexpSurface) Type() *zygo.RegisteredType             { return nil }

// sexpSurfaceRef refers to a surface registered in the geometry.
type sexpSurfaceRef struct {
	def *model.SurfaceDef
}

func (s *sexpSurfaceRef) SexpString(ps *zygo.PrintState) string {
	if s.def.Name != "" {
		return fmt.Sprintf("(surf %q)", s.def.Name)
	}
	return fmt.Sprintf("(surf %s)", s.def.ID.Short())
}
func (s *sexpSurfaceRef) Type() *zygo.RegisteredType { return nil }

// sexpHalfSpace is one side of a registered surface, ready for defcell.
type sexpHalfSpace struct {
	bound model.Bound
	label string
}

func (s *sexpHalfSpace) SexpString(ps *zygo.PrintState) string {
	if s.bound.Positive {
		return fmt.Sprintf("(above %s)", s.label)
	}
	return fmt.Sprintf("(below %s)", s.label)
}
func (s *sexpHalfSpace) Type() *zygo.RegisteredType { return nil }

// sexpCellRef refers to a cell registered in the geometry.
type sexpCellRef struct {
	def *model.CellDef
}

func (s *sexpCellRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(cell %q)", cellLabel(s.def))
}
func (s *sexpCellRef) Type() *zygo.RegisteredType { return nil }

func cellLabel(def *model.CellDef) string {
	if def.Name != "" {
		return def.Name
	}
	return def.ID.Short()
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string and returns the
// keyword name without its prefix.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toPoint(s zygo.Sexp) (geom.Point, error) {
	if v, ok := s.(*sexpPoint); ok {
		return v.p, nil
	}
	return geom.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

func toDirection(s zygo.Sexp) (geom.Direction, error) {
	if v, ok := s.(*sexpDirection); ok {
		return v.d, nil
	}
	return geom.Direction{}, fmt.Errorf("expected direction, got %T (%s)", s, s.SexpString(nil))
}

// toSurface accepts a registered surface or an unregistered surface
// expression.
func toSurface(s zygo.Sexp) (surface.Surface, error) {
	switch v := s.(type) {
	case *sexpSurfaceRef:
		return v.def.Surface, nil
	case *sexpSurface:
		return v.spec.Build()
	}
	return nil, fmt.Errorf("expected surface, got %T (%s)", s, s.SexpString(nil))
}

func toCell(s zygo.Sexp) (*model.CellDef, error) {
	if v, ok := s.(*sexpCellRef); ok {
		return v.def, nil
	}
	return nil, fmt.Errorf("expected cell, got %T (%s)", s, s.SexpString(nil))
}

// floats extracts exactly n numbers from args.
func floats(fn string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", fn, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the setup builtins into a zygomys environment.
// Definitions are recorded in g as the script runs.
//
// Source must be preprocessed with preprocessSource so that :keyword and
// kebab-case tokens are in the form the builtins expect.
func registerBuiltins(env *zygo.Zlisp, g *model.Geometry) {
	registerPrimitives(env)
	registerSurfaces(env)
	registerDefinitions(env, g)
	registerQueries(env, g)
}

func registerPrimitives(env *zygo.Zlisp) {
	// (point 1 2 3)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floats("point", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint{p: geom.Point{X: v[0], Y: v[1], Z: v[2]}}, nil
	})

	// (direction 0 0 1)
	env.AddFunction("direction", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floats("direction", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpDirection{d: geom.Direction{X: v[0], Y: v[1], Z: v[2]}}, nil
	})

	// (normalize (direction 1 1 0))
	env.AddFunction("normalize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("normalize requires exactly 1 argument, got %d", len(args))
		}
		d, err := toDirection(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("normalize: %w", err)
		}
		if d.Length() == 0 {
			return zygo.SexpNull, fmt.Errorf("normalize: zero-length direction")
		}
		return &sexpDirection{d: geom.Normalize(d)}, nil
	})
}

func registerSurfaces(env *zygo.Zlisp) {
	// (plane a b c d) is the plane a·x + b·y + c·z = d.
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := floats("plane", args, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSurface{spec: model.PlaneSpec(v[0], v[1], v[2], v[3])}, nil
	})

	// (x-plane 1.5), (y-plane ...), (z-plane ...)
	axisPlanes := map[string]func(float64) model.SurfaceSpec{
		"x_plane": func(v float64) model.SurfaceSpec { return model.PlaneSpec(1, 0, 0, v) },
		"y_plane": func(v float64) model.SurfaceSpec { return model.PlaneSpec(0, 1, 0, v) },
		"z_plane": func(v float64) model.SurfaceSpec { return model.PlaneSpec(0, 0, 1, v) },
	}
	for fn, mk := range axisPlanes {
		display := strings.ReplaceAll(fn, "_", "-")
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			v, err := floats(display, args, 1)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpSurface{spec: mk(v[0])}, nil
		})
	}

	// (cylinder :radius 0.4 :axis (direction 0 0 1) :center (point 0 0 0))
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r, center, err := cylinderArgs("cylinder", pa)
		if err != nil {
			return zygo.SexpNull, err
		}
		v, ok := pa.kw["axis"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cylinder: :axis is required")
		}
		axis, err := toDirection(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: axis: %w", err)
		}
		return &sexpSurface{spec: model.CylinderSpec(r, axis, center)}, nil
	})

	// (z-cylinder :radius 0.4 :center (point 1 1 0)). The center coordinate
	// along the axis is ignored.
	axisCylinders := map[string]geom.Direction{
		"x_cylinder": {X: 1},
		"y_cylinder": {Y: 1},
		"z_cylinder": {Z: 1},
	}
	for fn, axis := range axisCylinders {
		display := strings.ReplaceAll(fn, "_", "-")
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			r, center, err := cylinderArgs(display, parseArgs(args))
			if err != nil {
				return zygo.SexpNull, err
			}
			center = center.SubDir(axis.Scale(axis.Dot(geom.DirectionFrom(center))))
			return &sexpSurface{spec: model.CylinderSpec(r, axis, center)}, nil
		})
	}
}

// cylinderArgs reads the :radius and optional :center keywords shared by
// all cylinder builtins. The center defaults to the origin.
func cylinderArgs(fn string, pa kwArgs) (float64, geom.Point, error) {
	v, ok := pa.kw["radius"]
	if !ok {
		return 0, geom.Point{}, fmt.Errorf("%s: :radius is required", fn)
	}
	r, err := toFloat64(v)
	if err != nil {
		return 0, geom.Point{}, fmt.Errorf("%s: radius: %w", fn, err)
	}
	var center geom.Point
	if v, ok := pa.kw["center"]; ok {
		center, err = toPoint(v)
		if err != nil {
			return 0, geom.Point{}, fmt.Errorf("%s: center: %w", fn, err)
		}
	}
	return r, center, nil
}

func registerDefinitions(env *zygo.Zlisp, g *model.Geometry) {
	// (defsurface "fuel-wall" (z-cylinder :radius 0.4))
	env.AddFunction("defsurface", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defsurface requires a name and a surface expression")
		}
		surfName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defsurface: name: %w", err)
		}
		expr, ok := args[1].(*sexpSurface)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("defsurface: expected surface expression, got %T (%s)",
				args[1], args[1].SexpString(nil))
		}
		def, err := g.AddSurface(surfName, expr.spec)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defsurface: %w", err)
		}
		return &sexpSurfaceRef{def: def}, nil
	})

	// (surf "fuel-wall")
	env.AddFunction("surf", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("surf requires a name argument")
		}
		surfName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("surf: name: %w", err)
		}
		def := g.Surface(surfName)
		if def == nil {
			return zygo.SexpNull, fmt.Errorf("surf: no surface named %q", surfName)
		}
		return &sexpSurfaceRef{def: def}, nil
	})

	// (above s) and (below s) select the positive or negative side of s.
	// An unregistered surface expression is registered anonymously.
	for fn, positive := range map[string]bool{"above": true, "below": false} {
		env.AddFunction(fn, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 surface argument", fn)
			}
			var def *model.SurfaceDef
			switch v := args[0].(type) {
			case *sexpSurfaceRef:
				def = v.def
			case *sexpSurface:
				var err error
				if def, err = g.AddSurface("", v.spec); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", fn, err)
				}
			default:
				return zygo.SexpNull, fmt.Errorf("%s: expected surface, got %T (%s)",
					fn, args[0], args[0].SexpString(nil))
			}
			label := (&sexpSurfaceRef{def: def}).SexpString(nil)
			return &sexpHalfSpace{bound: model.Bound{Surface: def.ID, Positive: positive}, label: label}, nil
		})
	}

	// (defcell "fuel" (below (surf "fuel-wall")) (above (surf "bottom")) ...)
	env.AddFunction("defcell", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("defcell requires a name argument")
		}
		cellName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defcell: name: %w", err)
		}
		bounds := make([]model.Bound, 0, len(args)-1)
		for i := 1; i < len(args); i++ {
			hs, ok := args[i].(*sexpHalfSpace)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("defcell: bound %d: expected (above ...) or (below ...), got %T (%s)",
					i, args[i], args[i].SexpString(nil))
			}
			bounds = append(bounds, hs.bound)
		}
		return &sexpCellRef{def: g.AddCell(cellName, bounds...)}, nil
	})

	// (cell "fuel")
	env.AddFunction("cell", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("cell requires a name argument")
		}
		cellName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cell: name: %w", err)
		}
		def := g.Cell(cellName)
		if def == nil {
			return zygo.SexpNull, fmt.Errorf("cell: no cell named %q", cellName)
		}
		return &sexpCellRef{def: def}, nil
	})

	// (preview-bounds :min (point -2 -2 -2) :max (point 2 2 2) :mesh-cells 48)
	env.AddFunction("preview_bounds", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		box := g.Defaults.Bounds
		if v, ok := pa.kw["min"]; ok {
			p, err := toPoint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("preview-bounds: min: %w", err)
			}
			box.Min = p
		}
		if v, ok := pa.kw["max"]; ok {
			p, err := toPoint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("preview-bounds: max: %w", err)
			}
			box.Max = p
		}
		if box.Min.X >= box.Max.X || box.Min.Y >= box.Max.Y || box.Min.Z >= box.Max.Z {
			return zygo.SexpNull, fmt.Errorf("preview-bounds: min %v must be below max %v", box.Min, box.Max)
		}
		if v, ok := pa.kw["mesh-cells"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("preview-bounds: mesh-cells: %w", err)
			}
			if n <= 0 {
				return zygo.SexpNull, fmt.Errorf("preview-bounds: mesh-cells must be positive, got %d", n)
			}
			g.Defaults.MeshCells = n
		}
		g.Defaults.Bounds = box
		return zygo.SexpNull, nil
	})
}

func registerQueries(env *zygo.Zlisp, g *model.Geometry) {
	// (evaluate s p) is the signed surface field at p.
	env.AddFunction("evaluate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, p, err := surfacePoint("evaluate", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: s.Evaluate(p)}, nil
	})

	// (sense s p) is true on the positive side of s, including the surface.
	env.AddFunction("sense", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, p, err := surfacePoint("sense", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpBool{Val: surface.Sense(s, p)}, nil
	})

	// (distance s p d) is the distance along d to s, or +Inf.
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		s, p, err := surfacePoint("distance", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		d, err := toDirection(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: direction: %w", err)
		}
		return &zygo.SexpFloat{Val: s.Distance(p, d)}, nil
	})

	// (in-cell c p)
	env.AddFunction("in_cell", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c, p, err := cellPoint(g, "in-cell", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpBool{Val: c.Contains(p)}, nil
	})

	// (cell-distance c p d) is the distance along d to the boundary of c.
	env.AddFunction("cell_distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c, p, err := cellPoint(g, "cell-distance", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		d, err := toDirection(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cell-distance: direction: %w", err)
		}
		dist, _ := c.Distance(p, d)
		return &zygo.SexpFloat{Val: dist}, nil
	})

	// (find-cell p) is the name of the first cell containing p, or nil.
	env.AddFunction("find_cell", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("find-cell requires exactly 1 argument, got %d", len(args))
		}
		p, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("find-cell: %w", err)
		}
		cells, err := g.BuildCells()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("find-cell: %w", err)
		}
		i := cell.Find(cells, p)
		if i < 0 {
			return zygo.SexpNull, nil
		}
		return &zygo.SexpStr{S: cellLabel(g.CellList()[i])}, nil
	})
}

// surfacePoint checks the argument count and extracts the leading surface
// and point arguments shared by the surface queries.
func surfacePoint(fn string, args []zygo.Sexp, n int) (surface.Surface, geom.Point, error) {
	if len(args) != n {
		return nil, geom.Point{}, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, n, len(args))
	}
	s, err := toSurface(args[0])
	if err != nil {
		return nil, geom.Point{}, fmt.Errorf("%s: %w", fn, err)
	}
	p, err := toPoint(args[1])
	if err != nil {
		return nil, geom.Point{}, fmt.Errorf("%s: %w", fn, err)
	}
	return s, p, nil
}

func cellPoint(g *model.Geometry, fn string, args []zygo.Sexp, n int) (*cell.Cell, geom.Point, error) {
	if len(args) != n {
		return nil, geom.Point{}, fmt.Errorf("%s requires exactly %d arguments, got %d", fn, n, len(args))
	}
	def, err := toCell(args[0])
	if err != nil {
		return nil, geom.Point{}, fmt.Errorf("%s: %w", fn, err)
	}
	c, err := g.BuildCell(def)
	if err != nil {
		return nil, geom.Point{}, fmt.Errorf("%s: %w", fn, err)
	}
	p, err := toPoint(args[1])
	if err != nil {
		return nil, geom.Point{}, fmt.Errorf("%s: %w", fn, err)
	}
	return c, p, nil
}
