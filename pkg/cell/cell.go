// Package cell composes surfaces into regions. A cell is the intersection of
// half-spaces, each being one side of a surface as reported by
// surface.Sense. Cells are read-only once built and share their surfaces.
package cell

import (
	"math"

	"github.com/chazu/charmander/pkg/geom"
	"github.com/chazu/charmander/pkg/surface"
)

// HalfSpace selects one side of a surface.
type HalfSpace struct {
	Surface  surface.Surface
	Positive bool
}

// Contains reports whether p is on the selected side.
func (h HalfSpace) Contains(p geom.Point) bool {
	return surface.Sense(h.Surface, p) == h.Positive
}

// Cell is the intersection of its half-spaces. A cell with no half-spaces
// contains every point.
type Cell struct {
	Name       string
	HalfSpaces []HalfSpace
}

// New returns a cell bounded by the given half-spaces.
func New(name string, hs ...HalfSpace) *Cell {
	return &Cell{Name: name, HalfSpaces: hs}
}

// Contains reports whether p lies inside every half-space of the cell.
func (c *Cell) Contains(p geom.Point) bool {
	for _, h := range c.HalfSpaces {
		if !h.Contains(p) {
			return false
		}
	}
	return true
}

// Distance returns the nearest boundary crossing along d from p and the
// index of the half-space whose surface is crossed. When no surface is
// crossed it returns math.Inf(1) and -1.
func (c *Cell) Distance(p geom.Point, d geom.Direction) (float64, int) {
	best := math.Inf(1)
	idx := -1
	for i, h := range c.HalfSpaces {
		if t := h.Surface.Distance(p, d); t < best {
			best = t
			idx = i
		}
	}
	return best, idx
}

// Find returns the index of the first cell containing p, or -1.
func Find(cells []*Cell, p geom.Point) int {
	for i, c := range cells {
		if c.Contains(p) {
			return i
		}
	}
	return -1
}
