package tessellate_test

import (
	"math"
	"testing"

	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/kernel"
	"github.com/chazu/charmander/pkg/kernel/sdfx"
	"github.com/chazu/charmander/pkg/model"
	"github.com/chazu/charmander/pkg/tessellate"
)

// newKernel returns a fresh sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.New()
}

// makePin builds a pin cell inside a z-cylinder of radius r, between
// z = -h and z = h, plus the surrounding moderator.
func makePin(t *testing.T, r, h float64) *model.Geometry {
	t.Helper()
	g := model.New()
	g.Defaults.Bounds = model.Box{
		Min: geom.Point{X: -2, Y: -2, Z: -2},
		Max: geom.Point{X: 2, Y: 2, Z: 2},
	}
	g.Defaults.MeshCells = 32

	wall, err := g.AddSurface("wall", model.CylinderSpec(r, geom.Direction{Z: 1}, geom.Point{}))
	if err != nil {
		t.Fatal(err)
	}
	bottom, _ := g.AddSurface("bottom", model.PlaneSpec(0, 0, 1, -h))
	top, _ := g.AddSurface("top", model.PlaneSpec(0, 0, 1, h))

	g.AddCell("fuel",
		model.Bound{Surface: wall.ID, Positive: false},
		model.Bound{Surface: bottom.ID, Positive: true},
		model.Bound{Surface: top.ID, Positive: false},
	)
	g.AddCell("moderator", model.Bound{Surface: wall.ID, Positive: true})
	return g
}

func TestNilGeometry(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil, newKernel())
	if err != nil || meshes != nil {
		t.Errorf("Tessellate(nil) = %v, %v; want nil, nil", meshes, err)
	}
}

func TestEmptyGeometry(t *testing.T) {
	meshes, err := tessellate.Tessellate(model.New(), newKernel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("expected 0 meshes, got %d", len(meshes))
	}
}

func TestPinCells(t *testing.T) {
	g := makePin(t, 1, 1)
	meshes, err := tessellate.Tessellate(g, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}
	if meshes[0].CellName != "fuel" || meshes[1].CellName != "moderator" {
		t.Errorf("cell names = %q, %q; want fuel, moderator", meshes[0].CellName, meshes[1].CellName)
	}
	for _, m := range meshes {
		if m.IsEmpty() {
			t.Errorf("cell %q: empty mesh", m.CellName)
		}
	}

	// The fuel is clipped by its own planes, not just the preview box.
	min, max := meshes[0].Extent()
	const tol = 0.2
	if math.Abs(min.Z+1) > tol || math.Abs(max.Z-1) > tol {
		t.Errorf("fuel z extent = [%f, %f], want ~[-1, 1]", min.Z, max.Z)
	}
	if math.Abs(max.X-1) > tol {
		t.Errorf("fuel max x = %f, want ~1", max.X)
	}

	// The moderator fills out to the preview bounds.
	min, max = meshes[1].Extent()
	if math.Abs(min.X+2) > tol || math.Abs(max.X-2) > tol {
		t.Errorf("moderator x extent = [%f, %f], want ~[-2, 2]", min.X, max.X)
	}
}

func TestCellOutsideBounds(t *testing.T) {
	g := model.New()
	g.Defaults.MeshCells = 16
	far, _ := g.AddSurface("far", model.PlaneSpec(1, 0, 0, 1000))
	g.AddCell("beyond", model.Bound{Surface: far.ID, Positive: true})

	meshes, err := tessellate.Tessellate(g, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(meshes) != 1 || !meshes[0].IsEmpty() {
		t.Errorf("expected one empty mesh, got %d meshes", len(meshes))
	}
}

func TestDanglingSurface(t *testing.T) {
	g := model.New()
	g.AddCell("ghost", model.Bound{Surface: model.NewID("surface/nowhere")})
	if _, err := tessellate.Tessellate(g, newKernel()); err == nil {
		t.Fatal("expected error for dangling surface reference")
	}
}

func TestAnonymousCellName(t *testing.T) {
	g := model.New()
	g.Defaults.MeshCells = 16
	s, _ := g.AddSurface("", model.PlaneSpec(1, 0, 0, 0))
	def := g.AddCell("", model.Bound{Surface: s.ID, Positive: true})

	meshes, err := tessellate.Tessellate(g, newKernel())
	if err != nil {
		t.Fatalf("Tessellate: %v", err)
	}
	if len(meshes) != 1 || meshes[0].CellName != def.ID.Short() {
		t.Errorf("expected mesh named %q", def.ID.Short())
	}
}
