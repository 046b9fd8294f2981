package cell

import (
	"math"
	"testing"

	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/surface"
)

// pin returns a finite rod: inside a unit x-cylinder, between x=-1 and x=1.
func pin() *Cell {
	return New("pin",
		HalfSpace{Surface: surface.NewXCylinder(1, geom.Point{}), Positive: false},
		HalfSpace{Surface: surface.NewXPlane(-1), Positive: true},
		HalfSpace{Surface: surface.NewXPlane(1), Positive: false},
	)
}

func TestCellContains(t *testing.T) {
	c := pin()
	tests := []struct {
		name string
		p    geom.Point
		want bool
	}{
		{"center", geom.Point{}, true},
		{"near wall", geom.Point{X: 0.9, Y: 0.5, Z: 0.5}, true},
		{"outside radius", geom.Point{Y: 2}, false},
		{"past right plane", geom.Point{X: 1.5}, false},
		{"before left plane", geom.Point{X: -1.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestEmptyCellContainsEverything(t *testing.T) {
	c := New("world")
	if !c.Contains(geom.Point{X: 1e9, Y: -1e9, Z: 3}) {
		t.Error("empty cell should contain every point")
	}
	d, idx := c.Distance(geom.Point{}, geom.Direction{X: 1})
	if !math.IsInf(d, 1) || idx != -1 {
		t.Errorf("Distance = (%g, %d), want (+Inf, -1)", d, idx)
	}
}

func TestCellDistance(t *testing.T) {
	c := pin()
	tests := []struct {
		name    string
		d       geom.Direction
		want    float64
		wantIdx int
	}{
		{"radial", geom.Direction{Z: 1}, 1, 0},
		{"axial right", geom.Direction{X: 1}, 1, 2},
		{"axial left", geom.Direction{X: -1}, 1, 1},
	}
	start := geom.Point{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, idx := c.Distance(start, tt.d)
			if math.Abs(got-tt.want) > 1e-12 || idx != tt.wantIdx {
				t.Errorf("Distance(%v) = (%g, %d), want (%g, %d)", tt.d, got, idx, tt.want, tt.wantIdx)
			}
		})
	}
}

func TestCellDistanceOblique(t *testing.T) {
	c := pin()
	d := geom.Normalize(geom.Direction{X: 1, Z: 1})
	got, idx := c.Distance(geom.Point{X: 0.5}, d)

	// The radial wall at z=1 is reached after sqrt(2); the plane x=1 after
	// sqrt(2)/2, so the plane wins.
	want := math.Sqrt2 / 2
	if math.Abs(got-want) > 1e-12 || idx != 2 {
		t.Errorf("Distance = (%g, %d), want (%g, 2)", got, idx, want)
	}
}

func TestFind(t *testing.T) {
	inner := pin()
	outer := New("moderator", HalfSpace{Surface: surface.NewXCylinder(1, geom.Point{}), Positive: true})
	cells := []*Cell{inner, outer}

	tests := []struct {
		name string
		p    geom.Point
		want int
	}{
		{"in pin", geom.Point{}, 0},
		{"in moderator", geom.Point{Y: 3}, 1},
		{"in neither", geom.Point{X: 5}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(cells, tt.p); got != tt.want {
				t.Errorf("Find(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
}

func TestTrackAcrossCells(t *testing.T) {
	// Walk a ray through the pin and out into the moderator, nudging past
	// each boundary the way a tracking loop would.
	inner := pin()
	outer := New("moderator", HalfSpace{Surface: surface.NewXCylinder(1, geom.Point{}), Positive: true})
	cells := []*Cell{inner, outer}

	p := geom.Point{Y: -0.5}
	d := geom.Direction{Y: 1}

	idx := Find(cells, p)
	if idx != 0 {
		t.Fatalf("start cell = %d, want 0", idx)
	}
	dist, surf := cells[idx].Distance(p, d)
	if math.Abs(dist-1.5) > 1e-12 || surf != 0 {
		t.Fatalf("first leg = (%g, %d), want (1.5, 0)", dist, surf)
	}

	p = p.AddDir(d.Scale(dist + 1e-9))
	if idx = Find(cells, p); idx != 1 {
		t.Fatalf("after crossing cell = %d, want 1", idx)
	}
	if dist, _ = cells[idx].Distance(p, d); !math.IsInf(dist, 1) {
		t.Errorf("moderator leg = %g, want +Inf", dist)
	}
}

func TestTrack(t *testing.T) {
	wall := surface.NewXCylinder(1, geom.Point{})
	cells := []*Cell{
		pin(),
		New("moderator", HalfSpace{Surface: wall, Positive: true}),
	}

	tests := []struct {
		name    string
		p       geom.Point
		d       geom.Direction
		max     int
		wantLen []float64
		wantIdx []int
	}{
		{"pin then moderator", geom.Point{Y: -0.5}, geom.Direction{Y: 1}, 10, []float64{1.5, math.Inf(1)}, []int{0, 1}},
		{"moderator through pin", geom.Point{Y: -3}, geom.Direction{Y: 1}, 10, []float64{2, 2, math.Inf(1)}, []int{1, 0, 1}},
		{"capped", geom.Point{Y: -3}, geom.Direction{Y: 1}, 2, []float64{2, 2}, []int{1, 0}},
		{"outside every cell", geom.Point{X: 5}, geom.Direction{Y: 1}, 10, nil, nil},
		// Touches the wall at (0, 0, 1) without entering the pin.
		{"grazing the wall", geom.Point{Y: -3, Z: 1}, geom.Direction{Y: 1}, 10, []float64{math.Inf(1)}, []int{1}},
		{"grazing, capped", geom.Point{Y: -3, Z: 1}, geom.Direction{Y: 1}, 1, []float64{3}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Track(cells, tt.p, tt.d, tt.max)
			if len(segs) != len(tt.wantLen) {
				t.Fatalf("got %d segments, want %d: %+v", len(segs), len(tt.wantLen), segs)
			}
			for i, s := range segs {
				if s.Cell != tt.wantIdx[i] {
					t.Errorf("segment %d: cell %d, want %d", i, s.Cell, tt.wantIdx[i])
				}
				want := tt.wantLen[i]
				if math.IsInf(want, 1) {
					if !math.IsInf(s.Length, 1) {
						t.Errorf("segment %d: length %g, want +Inf", i, s.Length)
					}
					continue
				}
				// Every leg after the first starts TrackNudge past a boundary.
				if math.Abs(s.Length-want) > 2*TrackNudge {
					t.Errorf("segment %d: length %g, want %g", i, s.Length, want)
				}
			}
		})
	}
}
