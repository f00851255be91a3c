package engine

import (
	"encoding/json"

	"github.com/inamate/pathconv/internal/pathdata"
)

// Engine owns one path being edited: its source text, the canonical
// re-encoding, the converted path and the transform and style it is drawn
// with. It is not safe for concurrent use.
type Engine struct {
	conv pathdata.Converter

	// Path state
	source    string
	formatted string
	path      []PathCommand

	// Placement
	transform Transform
	style     Style

	// Cached render output, rebuilt when dirty
	rendered string
	dirty    bool
}

// NewEngine creates an engine with an empty path.
func NewEngine(conv pathdata.Converter) *Engine {
	return &Engine{
		conv:      conv,
		transform: IdentityTransform(),
		dirty:     true,
	}
}

// --- Commands ---

// SetPath converts d and makes it the current path. On error the previous
// path is kept.
func (e *Engine) SetPath(d string) error {
	formatted, prims, err := e.conv.FormatConvert(d)
	if err != nil {
		return err
	}

	e.source = d
	e.formatted = formatted
	e.path = FromPrimitives(prims)
	e.dirty = true
	return nil
}

// SetTransform sets where the path is drawn.
func (e *Engine) SetTransform(t Transform) {
	e.transform = t
	e.dirty = true
}

// SetStyle sets the paint for the path.
func (e *Engine) SetStyle(s Style) {
	e.style = s
	e.dirty = true
}

// --- Queries ---

// Source returns the path text as last set.
func (e *Engine) Source() string { return e.source }

// Formatted returns the canonical re-encoding of the current path.
func (e *Engine) Formatted() string { return e.formatted }

// Path returns the current path commands.
func (e *Engine) Path() []PathCommand { return e.path }

// Transform returns the current transform.
func (e *Engine) Transform() Transform { return e.transform }

// DrawCommand compiles the current path.
func (e *Engine) DrawCommand(id string) DrawCommand {
	return CompileDrawCommand(id, e.path, e.transform.Matrix(), e.style)
}

// Bounds returns the world-space bounding box of the current path.
func (e *Engine) Bounds() Rect {
	return PathBounds(e.path, e.transform.Matrix())
}

// Render returns the draw commands for the current path as JSON.
func (e *Engine) Render() string {
	if len(e.path) == 0 {
		return "[]"
	}
	if e.dirty {
		e.rendered, _ = DrawCommandsToJSON([]DrawCommand{e.DrawCommand("")})
		e.dirty = false
	}
	return e.rendered
}

// GetBounds returns the bounding box of the current path as JSON.
func (e *Engine) GetBounds() string {
	data, _ := json.Marshal(e.Bounds())
	return string(data)
}
