package engine

import "math"

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// PathBounds computes the axis-aligned bounding box of a path in world space.
// Curves contribute their control points, so the box may be looser than
// the drawn outline; arcs contribute their endpoint only.
func PathBounds(path []PathCommand, worldTransform Matrix2D) Rect {
	var minX, minY, maxX, maxY float64
	first := true

	include := func(x, y float64) {
		wx, wy := worldTransform.TransformPoint(x, y)
		if first {
			minX, maxX = wx, wx
			minY, maxY = wy, wy
			first = false
			return
		}
		minX = math.Min(minX, wx)
		maxX = math.Max(maxX, wx)
		minY = math.Min(minY, wy)
		maxY = math.Max(maxY, wy)
	}

	for _, cmd := range path {
		if len(cmd) == 0 {
			continue
		}
		op, ok := cmd[0].(string)
		if !ok {
			continue
		}

		switch op {
		case "M", "L", "C", "Q":
			// Every argument pair is a point.
			for i := 1; i+1 < len(cmd); i += 2 {
				include(toFloat64(cmd[i]), toFloat64(cmd[i+1]))
			}
		case "A":
			if len(cmd) >= 8 {
				include(toFloat64(cmd[6]), toFloat64(cmd[7]))
			}
		case "Z":
			// Close path - no new points
		}
	}

	if first {
		return Rect{}
	}

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// toFloat64 converts an interface{} to float64.
func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
