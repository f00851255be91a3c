package engine

import (
	"encoding/json"

	"github.com/inamate/pathconv/internal/pathdata"
)

// DrawCommand represents a single drawing operation for the renderer to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "path"
	ID          string        `json:"id,omitempty"`          // For correlating results with requests
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	Bounds      Rect          `json:"bounds"`                // World-space bounding box
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y],
// ["Q", cx, cy, x, y], ["A", rx, ry, rotation, largeArc, sweep, x, y], ["Z"].
type PathCommand []interface{}

// Style is the paint applied to a compiled path.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// FromPrimitives lowers interpreter output to Canvas2D path commands.
func FromPrimitives(prims []pathdata.Primitive) []PathCommand {
	path := make([]PathCommand, 0, len(prims))
	for _, p := range prims {
		switch p := p.(type) {
		case pathdata.MoveTo:
			path = append(path, PathCommand{"M", p.X, p.Y})
		case pathdata.LineTo:
			path = append(path, PathCommand{"L", p.X, p.Y})
		case pathdata.CubicTo:
			path = append(path, PathCommand{"C", p.C1X, p.C1Y, p.C2X, p.C2Y, p.X, p.Y})
		case pathdata.QuadTo:
			path = append(path, PathCommand{"Q", p.CX, p.CY, p.X, p.Y})
		case pathdata.ArcTo:
			path = append(path, PathCommand{"A", p.RX, p.RY, p.Rotation, p.LargeArc, p.Sweep, p.X, p.Y})
		case pathdata.ClosePath:
			path = append(path, PathCommand{"Z"})
		}
	}
	return path
}

// CompileDrawCommand packages a path for the renderer. The transform is
// omitted when it is the identity.
func CompileDrawCommand(id string, path []PathCommand, m Matrix2D, style Style) DrawCommand {
	cmd := DrawCommand{
		Op:          "path",
		ID:          id,
		Path:        path,
		Fill:        style.Fill,
		Stroke:      style.Stroke,
		StrokeWidth: style.StrokeWidth,
		Bounds:      PathBounds(path, m),
	}
	if !m.IsIdentity() {
		cmd.Transform = m.ToSlice()
	}
	return cmd
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
