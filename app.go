package main

import (
	"context"
	"log"
	"os"

	"github.com/chazu/csgforge/pkg/engine"
	"github.com/chazu/csgforge/pkg/graph"
	"github.com/chazu/csgforge/pkg/kernel"
	"github.com/chazu/csgforge/pkg/kernel/bspsolid"
	"github.com/chazu/csgforge/pkg/tessellate"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// defaultColor is used for any rendered object whose node has no explicit
// color() / color_rgba() wrapper.
const defaultColor = "#A8A8A8"

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	NodeName string    `json:"nodeName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// FileResult is returned by OpenFile with the file contents and path.
type FileResult struct {
	Content string `json:"content"`
	Path    string `json:"path"`
}

// NewApp creates a new App with an engine and the default BSP/hull kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: bspsolid.New(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes Lisp source and returns mesh data + errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a design graph.
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    0,
			Col:     0,
			Message: err.Error(),
		})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: validate the graph structurally before tessellating it.
	for _, ve := range graph.Validate(g) {
		if ve.Severity == graph.SeverityError {
			result.Errors = append(result.Errors, EvalErrorData{Message: ve.Error()})
		}
	}
	if len(result.Errors) > 0 {
		return result
	}

	// Step 4: Tessellate the design graph into triangle meshes.
	meshes, err := tessellate.Tessellate(g, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    0,
			Col:     0,
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 5: convert kernel meshes to the frontend MeshData format, pulling
	// each object's color from the node the mesh was lowered from.
	for _, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			NodeName: m.NodeName,
			Color:    colorForNode(g, graph.NodeID(m.NodeID)),
		})
	}

	return result
}

// colorForNode returns the hex color assigned to id via color()/color_rgba(),
// or defaultColor if the node carries no explicit color.
func colorForNode(g *graph.DesignGraph, id graph.NodeID) string {
	n := g.Get(id)
	if n == nil || n.Color == nil {
		return defaultColor
	}
	return n.Color.Hex()
}

// csgFileFilter is the dialog filter for .csgf script files.
var csgFileFilter = runtime.FileFilter{
	DisplayName: "csgforge Files (*.csgf)",
	Pattern:     "*.csgf",
}

// OpenFile shows an open file dialog and returns the file contents + path.
func (a *App) OpenFile() (FileResult, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Open csgforge File",
		Filters: []runtime.FileFilter{
			csgFileFilter,
		},
	})
	if err != nil {
		return FileResult{}, err
	}
	// User cancelled the dialog.
	if path == "" {
		return FileResult{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, err
	}
	return FileResult{
		Content: string(data),
		Path:    path,
	}, nil
}

// SaveFile saves content to the given path (or shows a save dialog if path is empty).
func (a *App) SaveFile(content string, path string) (string, error) {
	if path == "" {
		var err error
		path, err = runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
			Title:           "Save csgforge File",
			DefaultFilename: "untitled.csgf",
			Filters: []runtime.FileFilter{
				csgFileFilter,
			},
		})
		if err != nil {
			return "", err
		}
		// User cancelled the dialog.
		if path == "" {
			return "", nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// SetTitle updates the window title.
func (a *App) SetTitle(title string) {
	runtime.WindowSetTitle(a.ctx, title)
}
