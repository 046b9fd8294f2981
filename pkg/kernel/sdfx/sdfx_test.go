package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/kernel"
	"github.com/chazu/charmander/pkg/surface"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var unitBounds = kernel.Bounds{
	Min: geom.Point{X: -2, Y: -2, Z: -2},
	Max: geom.Point{X: 2, Y: 2, Z: 2},
}

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(unitBounds)
	mesh, err := k.ToMesh(box, 16)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
}

func TestBoxBoundingBox(t *testing.T) {
	k := New()
	b := kernel.Bounds{Min: geom.Point{X: 1, Y: 2, Z: 3}, Max: geom.Point{X: 5, Y: 4, Z: 9}}
	min, max := k.Box(b).BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{1, 2, 3}
	expectMax := [3]float64{5, 4, 9}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestHalfSpaceSign(t *testing.T) {
	pl := surface.NewXPlane(0)
	pos := &halfSpace{s: pl, positive: true}
	neg := &halfSpace{s: pl, positive: false}

	inPos := v3.Vec{X: 1}
	if pos.Evaluate(inPos) >= 0 {
		t.Errorf("positive half-space Evaluate(%v) = %g, want < 0 (inside)", inPos, pos.Evaluate(inPos))
	}
	if neg.Evaluate(inPos) <= 0 {
		t.Errorf("negative half-space Evaluate(%v) = %g, want > 0 (outside)", inPos, neg.Evaluate(inPos))
	}
}

func TestPlaneRegion(t *testing.T) {
	k := New()
	r := k.Region(surface.NewXPlane(0), true, unitBounds)

	mesh, err := k.ToMesh(r, 32)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("region mesh is empty")
	}

	// The positive side of x=0 within the box spans x in [0, 2].
	min, max := mesh.Extent()
	const tol = 0.2
	if math.Abs(min.X) > tol || math.Abs(max.X-2) > tol {
		t.Errorf("x extent = [%f, %f], want ~[0, 2]", min.X, max.X)
	}
	if math.Abs(min.Y+2) > tol || math.Abs(max.Y-2) > tol {
		t.Errorf("y extent = [%f, %f], want ~[-2, 2]", min.Y, max.Y)
	}
}

func TestCylinderRegion(t *testing.T) {
	k := New()
	r := k.Region(surface.NewZCylinder(1, geom.Point{}), false, unitBounds)

	mesh, err := k.ToMesh(r, 48)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("cylinder region mesh is empty")
	}

	min, max := mesh.Extent()
	const tol = 0.15
	if math.Abs(min.X+1) > tol || math.Abs(max.X-1) > tol {
		t.Errorf("x extent = [%f, %f], want ~[-1, 1]", min.X, max.X)
	}
	if math.Abs(min.Z+2) > tol || math.Abs(max.Z-2) > tol {
		t.Errorf("z extent = [%f, %f], want ~[-2, 2]", min.Z, max.Z)
	}
	t.Logf("cylinder region triangle count: %d", mesh.TriangleCount())
}

func TestRegionOutsideBounds(t *testing.T) {
	k := New()
	r := k.Region(surface.NewXPlane(100), true, unitBounds)
	mesh, err := k.ToMesh(r, 16)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if !mesh.IsEmpty() {
		t.Errorf("expected empty mesh, got %d triangles", mesh.TriangleCount())
	}
}

func TestDifference(t *testing.T) {
	k := New()

	box := k.Box(unitBounds)
	boxMesh, err := k.ToMesh(box, 32)
	if err != nil {
		t.Fatalf("ToMesh(box) failed: %v", err)
	}

	rod := k.Region(surface.NewZCylinder(1, geom.Point{}), false, unitBounds)
	diff := k.Difference(box, rod)
	diffMesh, err := k.ToMesh(diff, 32)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
	// A box with a hole should have more triangles than a plain box.
	if diffMesh.TriangleCount() <= boxMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffMesh.TriangleCount(), boxMesh.TriangleCount())
	}
}

func TestUnionAndIntersection(t *testing.T) {
	k := New()
	left := k.Region(surface.NewXPlane(-1), false, unitBounds)
	right := k.Region(surface.NewXPlane(1), true, unitBounds)

	u, err := k.ToMesh(k.Union(left, right), 32)
	if err != nil {
		t.Fatalf("ToMesh(union) failed: %v", err)
	}
	if u.IsEmpty() {
		t.Fatal("union mesh is empty")
	}

	// The two slabs do not overlap.
	i, err := k.ToMesh(k.Intersection(left, right), 32)
	if err != nil {
		t.Fatalf("ToMesh(intersection) failed: %v", err)
	}
	if !i.IsEmpty() {
		t.Errorf("intersection of disjoint slabs has %d triangles, want 0", i.TriangleCount())
	}
}
