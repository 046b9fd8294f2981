package cell

import (
	"math"

	"github.com/chazu/charmander/pkg/geom"
)

// TrackNudge is how far Track moves past a boundary before locating the
// next cell. It must exceed geom.CoincidentSurf so that the crossed surface
// is not found again.
const TrackNudge = 1e-9

// Segment is one straight leg of a track inside a single cell.
type Segment struct {
	Cell   int // index into the cell slice
	Start  geom.Point
	Length float64 // math.Inf(1) when the leg never leaves the cell
}

// Track follows the ray from p along d through cells. It stops when the ray
// reaches a point outside every cell, enters a cell it never leaves, or after
// maxSegments boundary crossings. A start point outside every cell yields no
// segments.
//
// A crossing that leaves the ray in the same cell, as when it grazes a
// cylinder, extends the current segment instead of starting a new one.
func Track(cells []*Cell, p geom.Point, d geom.Direction, maxSegments int) []Segment {
	var segs []Segment
	for step := 0; step < maxSegments; step++ {
		idx := Find(cells, p)
		if idx < 0 {
			break
		}
		dist, _ := cells[idx].Distance(p, d)
		if n := len(segs); n > 0 && segs[n-1].Cell == idx {
			segs[n-1].Length += TrackNudge + dist
		} else {
			segs = append(segs, Segment{Cell: idx, Start: p, Length: dist})
		}
		if math.IsInf(dist, 1) {
			break
		}
		p = p.AddDir(d.Scale(dist + TrackNudge))
	}
	return segs
}
