package model

import (
	"fmt"

	"github.com/chazu/charmander/pkg/cell"
	"github.com/chazu/charmander/pkg/geom"
)

// Geometry is the top-level structure produced by a setup script. Surfaces
// and cells keep their definition order so that cell lookup is deterministic.
type Geometry struct {
	Surfaces map[ID]*SurfaceDef
	Cells    map[ID]*CellDef
	Defaults Defaults

	// Surfaces and cells are named independently; a cell may share its
	// name with a surface.
	SurfaceNames map[string]ID
	CellNames    map[string]ID

	surfaceOrder []ID
	cellOrder    []ID
	redefined    []string // names registered more than once within one kind
}

// New creates an empty Geometry with default settings.
func New() *Geometry {
	return &Geometry{
		Surfaces:     make(map[ID]*SurfaceDef),
		Cells:        make(map[ID]*CellDef),
		SurfaceNames: make(map[string]ID),
		CellNames:    make(map[string]ID),
		Defaults: Defaults{
			Units:          "cm",
			FPTolerance:    geom.FPTolerance,
			CoincidentSurf: geom.CoincidentSurf,
			Bounds:         DefaultBounds,
			MeshCells:      DefaultMeshCells,
		},
	}
}

// AddSurface builds the kernel surface for spec and registers it under name.
// An empty name registers an anonymous surface with a generated ID.
func (g *Geometry) AddSurface(name string, spec SurfaceSpec) (*SurfaceDef, error) {
	s, err := spec.Build()
	if err != nil {
		return nil, err
	}
	path := "surface/" + name
	if name == "" {
		path = fmt.Sprintf("anon/surface/%d", len(g.surfaceOrder))
	}
	def := &SurfaceDef{ID: NewID(path), Name: name, Spec: spec, Surface: s}
	if _, exists := g.Surfaces[def.ID]; !exists {
		g.surfaceOrder = append(g.surfaceOrder, def.ID)
	}
	g.Surfaces[def.ID] = def
	g.index(g.SurfaceNames, name, def.ID)
	return def, nil
}

// AddCell registers a cell under name. Bounds are not checked here; see
// Validate.
func (g *Geometry) AddCell(name string, bounds ...Bound) *CellDef {
	path := "cell/" + name
	if name == "" {
		path = fmt.Sprintf("anon/cell/%d", len(g.cellOrder))
	}
	def := &CellDef{ID: NewID(path), Name: name, Bounds: bounds}
	if _, exists := g.Cells[def.ID]; !exists {
		g.cellOrder = append(g.cellOrder, def.ID)
	}
	g.Cells[def.ID] = def
	g.index(g.CellNames, name, def.ID)
	return def
}

func (g *Geometry) index(names map[string]ID, name string, id ID) {
	if name == "" {
		return
	}
	if _, taken := names[name]; taken {
		g.redefined = append(g.redefined, name)
	}
	names[name] = id
}

// Surface returns the surface named name, or nil.
func (g *Geometry) Surface(name string) *SurfaceDef {
	id, ok := g.SurfaceNames[name]
	if !ok {
		return nil
	}
	return g.Surfaces[id]
}

// Cell returns the cell named name, or nil.
func (g *Geometry) Cell(name string) *CellDef {
	id, ok := g.CellNames[name]
	if !ok {
		return nil
	}
	return g.Cells[id]
}

// SurfaceList returns surfaces in definition order.
func (g *Geometry) SurfaceList() []*SurfaceDef {
	out := make([]*SurfaceDef, 0, len(g.surfaceOrder))
	for _, id := range g.surfaceOrder {
		out = append(out, g.Surfaces[id])
	}
	return out
}

// CellList returns cells in definition order.
func (g *Geometry) CellList() []*CellDef {
	out := make([]*CellDef, 0, len(g.cellOrder))
	for _, id := range g.cellOrder {
		out = append(out, g.Cells[id])
	}
	return out
}

// SurfaceCount returns the number of surfaces.
func (g *Geometry) SurfaceCount() int { return len(g.Surfaces) }

// CellCount returns the number of cells.
func (g *Geometry) CellCount() int { return len(g.Cells) }

// BuildCell resolves a cell definition into a kernel cell.
func (g *Geometry) BuildCell(def *CellDef) (*cell.Cell, error) {
	hs := make([]cell.HalfSpace, 0, len(def.Bounds))
	for _, b := range def.Bounds {
		s, ok := g.Surfaces[b.Surface]
		if !ok {
			return nil, fmt.Errorf("model: cell %q references unknown surface %s", def.Name, b.Surface.Short())
		}
		hs = append(hs, cell.HalfSpace{Surface: s.Surface, Positive: b.Positive})
	}
	return cell.New(def.Name, hs...), nil
}

// BuildCells resolves every cell in definition order.
func (g *Geometry) BuildCells() ([]*cell.Cell, error) {
	cells := make([]*cell.Cell, 0, len(g.cellOrder))
	for _, def := range g.CellList() {
		c, err := g.BuildCell(def)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return cells, nil
}
