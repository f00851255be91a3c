package pathdata

import "fmt"

// Primitive is one absolute drawing instruction. The set of variants is
// closed: MoveTo, LineTo, CubicTo, QuadTo, ArcTo and ClosePath.
type Primitive interface {
	// Op is the single-letter absolute command this primitive draws.
	Op() byte
	primitive()
}

type MoveTo struct {
	X, Y float64
}

type LineTo struct {
	X, Y float64
}

type CubicTo struct {
	C1X, C1Y float64
	C2X, C2Y float64
	X, Y     float64
}

type QuadTo struct {
	CX, CY float64
	X, Y   float64
}

// ArcTo is an elliptical arc; Rotation is the x-axis rotation in degrees.
type ArcTo struct {
	RX, RY   float64
	Rotation float64
	X, Y     float64
	LargeArc bool
	Sweep    bool
}

type ClosePath struct{}

func (MoveTo) Op() byte    { return 'M' }
func (LineTo) Op() byte    { return 'L' }
func (CubicTo) Op() byte   { return 'C' }
func (QuadTo) Op() byte    { return 'Q' }
func (ArcTo) Op() byte     { return 'A' }
func (ClosePath) Op() byte { return 'Z' }

func (MoveTo) primitive()    {}
func (LineTo) primitive()    {}
func (CubicTo) primitive()   {}
func (QuadTo) primitive()    {}
func (ArcTo) primitive()     {}
func (ClosePath) primitive() {}

func (p MoveTo) String() string { return fmt.Sprintf("MoveTo(%g,%g)", p.X, p.Y) }
func (p LineTo) String() string { return fmt.Sprintf("LineTo(%g,%g)", p.X, p.Y) }
func (p CubicTo) String() string {
	return fmt.Sprintf("CubicTo(%g,%g,%g,%g,%g,%g)", p.C1X, p.C1Y, p.C2X, p.C2Y, p.X, p.Y)
}
func (p QuadTo) String() string { return fmt.Sprintf("QuadTo(%g,%g,%g,%g)", p.CX, p.CY, p.X, p.Y) }
func (p ArcTo) String() string {
	return fmt.Sprintf("ArcTo(%g,%g,%g,%g,%g,%t,%t)", p.RX, p.RY, p.Rotation, p.X, p.Y, p.LargeArc, p.Sweep)
}
func (ClosePath) String() string { return "ClosePath()" }

// End returns the point the primitive leaves the pen at. ok is false for
// ClosePath, which does not move the cursor.
func End(p Primitive) (pt Point, ok bool) {
	switch p := p.(type) {
	case MoveTo:
		return Point{p.X, p.Y}, true
	case LineTo:
		return Point{p.X, p.Y}, true
	case CubicTo:
		return Point{p.X, p.Y}, true
	case QuadTo:
		return Point{p.X, p.Y}, true
	case ArcTo:
		return Point{p.X, p.Y}, true
	}
	return Point{}, false
}
