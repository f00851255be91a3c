package pathdata

import (
	"math"
	"strconv"
)

// Point is a position in the path's own coordinate space.
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return strconv.FormatFloat(p.X, 'g', -1, 64) + "," + strconv.FormatFloat(p.Y, 'g', -1, 64)
}

// Add returns p translated by the offset o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rotate turns p about pivot by deg degrees, counter-clockwise in a
// y-up frame:
//
//	nx = px + (x-px)*cos - (y-py)*sin
//	ny = py + (x-px)*sin + (y-py)*cos
func Rotate(p, pivot Point, deg float64) Point {
	sin, cos := sincosDegrees(deg)
	dx, dy := p.X-pivot.X, p.Y-pivot.Y
	return Point{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// Reflect mirrors p through pivot (a half turn).
func Reflect(p, pivot Point) Point {
	return Rotate(p, pivot, 180)
}

// sincosDegrees is exact for whole quarter turns, where math.Sincos of
// the radian value leaves residue around 1e-16.
func sincosDegrees(deg float64) (sin, cos float64) {
	if q := deg / 90; q == math.Trunc(q) && !math.IsInf(q, 0) {
		switch int64(math.Mod(q, 4)+4) % 4 {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		case 3:
			return -1, 0
		}
	}
	return math.Sincos(deg * math.Pi / 180.0)
}
