package pathdata

import "iter"

// Segment is one command letter and the raw argument text that follows it
// up to the next command letter.
type Segment struct {
	Command byte
	Args    string
	Offset  int // byte offset of Command in the source
}

// Absolute reports whether the command letter is upper case.
func (s Segment) Absolute() bool {
	return s.Command >= 'A' && s.Command <= 'Z'
}

func (s Segment) String() string {
	return string(s.Command) + s.Args
}

// Segments yields the segments of d from left to right. The sequence is
// lazy and can be ranged over any number of times; each pass rescans d.
// Only a bad start is an error here: text before the first letter, or a
// first letter that is not a path command. Argument text and later
// unknown letters are left to the consumers.
func Segments(d string) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		start := skipSpace(d, 0)
		if start == len(d) {
			return
		}
		if _, known := arity(d[start]); !isLetter(d[start]) || !known {
			end := start + 1
			for end < len(d) && !isCommandAt(d, end) {
				end++
			}
			yield(Segment{}, &MalformedInputError{
				Offset: start,
				Text:   d[start:end],
				Reason: "path data must begin with a path command",
			})
			return
		}

		for i := start; i < len(d); {
			j := i + 1
			for j < len(d) && !isCommandAt(d, j) {
				j++
			}
			if !yield(Segment{Command: d[i], Args: d[i+1 : j], Offset: i}, nil) {
				return
			}
			i = j
		}
	}
}

// Tokenize collects Segments(d) into a slice.
func Tokenize(d string) ([]Segment, error) {
	var segs []Segment
	for seg, err := range Segments(d) {
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// isCommandAt reports whether d[i] starts a new segment. An e or E
// sitting between a mantissa and an exponent belongs to the number.
func isCommandAt(d string, i int) bool {
	c := d[i]
	if !isLetter(c) {
		return false
	}
	if (c == 'e' || c == 'E') && i > 0 && i+1 < len(d) {
		prev, next := d[i-1], d[i+1]
		if (isDigit(prev) || prev == '.') && (isDigit(next) || next == '+' || next == '-') {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}
