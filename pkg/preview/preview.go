// Package preview runs a setup script end to end and returns what a viewer
// needs to draw it: one colored mesh per cell plus any diagnostics.
package preview

import (
	"log"

	"github.com/chazu/charmander/pkg/engine"
	"github.com/chazu/charmander/pkg/kernel"
	"github.com/chazu/charmander/pkg/kernel/sdfx"
	"github.com/chazu/charmander/pkg/model"
	"github.com/chazu/charmander/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to cells.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Previewer evaluates setup scripts and meshes the resulting cells.
type Previewer struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format handed to viewers.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	CellName string    `json:"cellName"`
	Color    string    `json:"color"`
}

// Diagnostic is a JSON-serializable error or warning.
type Diagnostic struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// Result is the full outcome of one evaluation.
type Result struct {
	Meshes   []MeshData   `json:"meshes"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`

	// Geometry is the evaluated setup, or nil if evaluation failed.
	Geometry *model.Geometry `json:"-"`
}

// OK reports whether the evaluation produced no errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// New creates a Previewer backed by the sdfx kernel.
func New() *Previewer {
	return NewWithKernel(sdfx.New())
}

// NewWithKernel creates a Previewer that meshes with k.
func NewWithKernel(k kernel.Kernel) *Previewer {
	return &Previewer{
		engine: engine.NewEngine(),
		kernel: k,
	}
}

// Evaluate takes setup source and returns mesh data and diagnostics.
// Meshing is skipped when evaluation or validation reports errors.
func (p *Previewer) Evaluate(source string) Result {
	result := Result{
		Meshes:   []MeshData{},
		Errors:   []Diagnostic{},
		Warnings: []Diagnostic{},
	}

	g, evalErrs, err := p.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, Diagnostic{Message: err.Error()})
		return result
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, Diagnostic{Line: e.Line, Col: e.Col, Message: e.Message})
	}
	if len(result.Errors) > 0 {
		return result
	}
	result.Geometry = g

	vr := model.ValidateAll(g)
	for _, e := range vr.Errors {
		result.Errors = append(result.Errors, Diagnostic{Name: e.Name, Message: e.Message})
	}
	for _, w := range vr.Warnings {
		result.Warnings = append(result.Warnings, Diagnostic{Name: w.Name, Message: w.Message})
	}
	if !vr.OK() {
		return result
	}

	meshes, err := tessellate.Tessellate(g, p.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, Diagnostic{Message: "tessellation failed: " + err.Error()})
		return result
	}

	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			CellName: m.CellName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}
