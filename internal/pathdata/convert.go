package pathdata

import (
	"log/slog"
	"math"
)

// CursorState is the pen state threaded through one conversion.
type CursorState struct {
	Current     Point
	LastControl Point
	Bearing     float64 // degrees
	LastBearing float64 // degrees
}

// Step applies one argument group of cmd and returns the primitive it
// draws, or nil when the group only changes state (B, b) or cmd is not a
// path command. args must hold exactly one group for cmd.
//
// Quirks kept on purpose: the bearing rotates only h; Z leaves Current
// where it was; LastControl survives non-curve commands, so a smooth
// curve after a line reflects a stale control point.
func (s *CursorState) Step(cmd byte, args []float64) Primitive {
	cur := s.Current
	switch cmd {
	case 'M', 'm':
		p := s.resolve(cmd, args[0], args[1])
		s.Current = p
		return MoveTo{X: p.X, Y: p.Y}

	case 'L', 'l':
		p := s.resolve(cmd, args[0], args[1])
		s.Current = p
		return LineTo{X: p.X, Y: p.Y}

	case 'H':
		s.Current = Point{X: args[0], Y: cur.Y}
		return LineTo{X: s.Current.X, Y: s.Current.Y}

	case 'h':
		p := Point{X: cur.X + args[0], Y: cur.Y}
		if s.Bearing != 0 {
			p = Rotate(p, cur, s.Bearing)
		}
		s.Current = p
		return LineTo{X: p.X, Y: p.Y}

	case 'V':
		s.Current = Point{X: cur.X, Y: args[0]}
		return LineTo{X: s.Current.X, Y: s.Current.Y}

	case 'v':
		s.Current = Point{X: cur.X, Y: cur.Y + args[0]}
		return LineTo{X: s.Current.X, Y: s.Current.Y}

	case 'C', 'c':
		c1 := s.resolve(cmd, args[0], args[1])
		c2 := s.resolve(cmd, args[2], args[3])
		p := s.resolve(cmd, args[4], args[5])
		s.Current, s.LastControl = p, c2
		return CubicTo{C1X: c1.X, C1Y: c1.Y, C2X: c2.X, C2Y: c2.Y, X: p.X, Y: p.Y}

	case 'S', 's':
		c1 := Reflect(s.LastControl, cur)
		c2 := s.resolve(cmd, args[0], args[1])
		p := s.resolve(cmd, args[2], args[3])
		s.Current, s.LastControl = p, c2
		return CubicTo{C1X: c1.X, C1Y: c1.Y, C2X: c2.X, C2Y: c2.Y, X: p.X, Y: p.Y}

	case 'Q', 'q':
		c := s.resolve(cmd, args[0], args[1])
		p := s.resolve(cmd, args[2], args[3])
		s.Current, s.LastControl = p, c
		return QuadTo{CX: c.X, CY: c.Y, X: p.X, Y: p.Y}

	case 'T', 't':
		c := Reflect(s.LastControl, cur)
		p := s.resolve(cmd, args[0], args[1])
		s.Current, s.LastControl = p, c
		return QuadTo{CX: c.X, CY: c.Y, X: p.X, Y: p.Y}

	case 'A', 'a':
		p := s.resolve(cmd, args[5], args[6])
		s.Current = p
		return ArcTo{
			RX:       args[0],
			RY:       args[1],
			Rotation: args[2],
			X:        p.X,
			Y:        p.Y,
			LargeArc: args[3] == 1,
			Sweep:    args[4] == 1,
		}

	case 'Z', 'z':
		return ClosePath{}

	case 'B':
		s.Bearing = args[0]
		s.LastBearing = s.Bearing
		return nil

	case 'b':
		s.Bearing = math.Mod(s.LastBearing+args[0], 360)
		s.LastBearing = s.Bearing
		return nil
	}
	return nil
}

// resolve turns an argument pair into an absolute point: as given for
// upper-case commands, offset from Current for lower-case ones.
func (s *CursorState) resolve(cmd byte, x, y float64) Point {
	if cmd >= 'a' {
		return s.Current.Add(Point{X: x, Y: y})
	}
	return Point{X: x, Y: y}
}

// Converter turns path data into primitives. The zero value skips unknown
// command letters and logs them through slog.Default. A Converter holds no
// per-call state and may be shared between goroutines.
type Converter struct {
	// Strict makes unknown command letters an *UnsupportedCommandError.
	Strict bool
	Logger *slog.Logger
}

// Convert resolves d into absolute primitives using a default Converter.
func Convert(d string) ([]Primitive, error) {
	return Converter{}.Convert(d)
}

// Convert resolves d into absolute primitives. Any error aborts the whole
// conversion and no primitives are returned.
func (c Converter) Convert(d string) ([]Primitive, error) {
	var b primitiveBuilder
	if err := c.walk(d, b.add); err != nil {
		return nil, err
	}
	return b.prims, nil
}

// FormatConvert returns both the canonical text and the primitives of d
// from a single scan, so each skipped command is reported once.
func (c Converter) FormatConvert(d string) (string, []Primitive, error) {
	var (
		tb textBuilder
		pb primitiveBuilder
	)
	tb.Grow(len(d))
	err := c.walk(d, func(seg Segment, groups [][]number) {
		tb.add(seg, groups)
		pb.add(seg, groups)
	})
	if err != nil {
		return "", nil, err
	}
	return tb.String(), pb.prims, nil
}

// walk scans d and hands every known segment and its argument groups to
// visit, in order.
func (c Converter) walk(d string, visit func(Segment, [][]number)) error {
	for seg, err := range Segments(d) {
		if err != nil {
			return err
		}
		groups, ok, err := c.groups(seg)
		if err != nil {
			return err
		}
		if ok {
			visit(seg, groups)
		}
	}
	return nil
}

type primitiveBuilder struct {
	state CursorState
	prims []Primitive
}

func (b *primitiveBuilder) add(seg Segment, groups [][]number) {
	if len(groups) == 0 {
		// Z and z
		b.prims = append(b.prims, b.state.Step(seg.Command, nil))
		return
	}
	for i, group := range groups {
		if p := b.state.Step(groupCommand(seg.Command, i), values(group)); p != nil {
			b.prims = append(b.prims, p)
		}
	}
}

// groups scans the arguments of seg. ok is false when seg is an unknown
// letter that should be skipped.
func (c Converter) groups(seg Segment) (groups [][]number, ok bool, err error) {
	kinds, known := arity(seg.Command)
	if !known {
		if c.Strict {
			return nil, false, &UnsupportedCommandError{Command: seg.Command, Offset: seg.Offset}
		}
		c.logger().Warn("skipping unsupported path command", "command", string(seg.Command), "offset", seg.Offset)
		return nil, false, nil
	}
	groups, err = scanGroups(seg, kinds)
	if err != nil {
		return nil, false, err
	}
	return groups, true, nil
}

func (c Converter) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// groupCommand maps repeated coordinate pairs after a moveto onto the
// implicit lineto of the same case.
func groupCommand(cmd byte, i int) byte {
	if i > 0 {
		switch cmd {
		case 'M':
			return 'L'
		case 'm':
			return 'l'
		}
	}
	return cmd
}

func values(group []number) []float64 {
	vs := make([]float64, len(group))
	for i, n := range group {
		vs[i] = n.value
	}
	return vs
}
