package pathdata

import "strings"

// Format rewrites d with canonical separators using a default Converter.
func Format(d string) (string, error) {
	return Converter{}.Format(d)
}

// Format rewrites d with canonical separators: commas inside coordinate
// pairs, single spaces between pairs and around arc scalars, one command
// letter per argument group. Extra coordinate pairs after M or m are
// written with L or l, the implicit lineto SVG gives them. Numbers keep
// their original spelling, so the result converts to exactly the same
// primitives as d.
//
//	M10 10 20 20   ->  M10,10L20,20
//	c1 2 3 4 5 6   ->  c1,2 3,4 5,6
//	a25 26-30 011 0 -> a25,26 -30 0 1 1,0
func (c Converter) Format(d string) (string, error) {
	var b textBuilder
	b.Grow(len(d))
	if err := c.walk(d, b.add); err != nil {
		return "", err
	}
	return b.String(), nil
}

type textBuilder struct {
	strings.Builder
}

func (b *textBuilder) add(seg Segment, groups [][]number) {
	if len(groups) == 0 {
		b.WriteByte(seg.Command)
		return
	}
	layout := separators(seg.Command)
	for i, group := range groups {
		b.WriteByte(groupCommand(seg.Command, i))
		for j, n := range group {
			if j > 0 {
				b.WriteByte(layout[j-1])
			}
			b.WriteString(n.text)
		}
	}
}

// separators returns the byte written between consecutive arguments of a
// group: a comma inside x,y pairs and a space elsewhere.
func separators(cmd byte) string {
	switch cmd | 0x20 {
	case 'c':
		return ", , ,"
	case 's', 'q':
		return ", ,"
	case 'a':
		return ",    ,"
	default:
		return ","
	}
}
