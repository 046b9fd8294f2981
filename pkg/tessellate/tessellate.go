// Package tessellate turns the cells of a geometry into triangle meshes
// using a solid-modeling kernel. One mesh is produced per cell, clipped to
// the geometry's preview bounds.
package tessellate

import (
	"fmt"

	"github.com/chazu/charmander/pkg/kernel"
	"github.com/chazu/charmander/pkg/model"
)

// Tessellate walks the cells of g in definition order and meshes each one.
// It is read-only and never mutates the geometry. Cells entirely outside
// the bounds yield empty meshes rather than errors.
func Tessellate(g *model.Geometry, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	bounds := kernel.Bounds{Min: g.Defaults.Bounds.Min, Max: g.Defaults.Bounds.Max}

	var meshes []*kernel.Mesh
	for _, def := range g.CellList() {
		solid, err := cellSolid(g, k, def, bounds)
		if err != nil {
			return nil, fmt.Errorf("tessellate: cell %q: %w", def.Name, err)
		}

		mesh, err := k.ToMesh(solid, g.Defaults.MeshCells)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for cell %q: %w", def.Name, err)
		}

		// Prefer the cell's name, fall back to short ID.
		if def.Name != "" {
			mesh.CellName = def.Name
		} else {
			mesh.CellName = def.ID.Short()
		}
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// cellSolid intersects the regions of every bound of the cell.
func cellSolid(g *model.Geometry, k kernel.Kernel, def *model.CellDef, bounds kernel.Bounds) (kernel.Solid, error) {
	solid := k.Box(bounds)
	for _, b := range def.Bounds {
		s, ok := g.Surfaces[b.Surface]
		if !ok {
			return nil, fmt.Errorf("unknown surface %s", b.Surface.Short())
		}
		solid = k.Intersection(solid, k.Region(s.Surface, b.Positive, bounds))
	}
	return solid, nil
}
