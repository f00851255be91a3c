package pathdata

import (
	"math"
	"strconv"

	lexnum "github.com/tdewolff/parse/v2/strconv"
)

type argKind uint8

const (
	argNumber argKind = iota
	argFlag
)

var (
	arityPair   = []argKind{argNumber, argNumber}
	arityScalar = []argKind{argNumber}
	arityCubic  = []argKind{argNumber, argNumber, argNumber, argNumber, argNumber, argNumber}
	arityQuad   = []argKind{argNumber, argNumber, argNumber, argNumber}
	arityArc    = []argKind{argNumber, argNumber, argNumber, argFlag, argFlag, argNumber, argNumber}
)

// arity returns the argument layout of one group of cmd. ok is false for
// letters that are not path commands; Z has an empty layout.
func arity(cmd byte) (kinds []argKind, ok bool) {
	switch cmd | 0x20 {
	case 'm', 'l', 't':
		return arityPair, true
	case 'h', 'v', 'b':
		return arityScalar, true
	case 'c':
		return arityCubic, true
	case 's', 'q':
		return arityQuad, true
	case 'a':
		return arityArc, true
	case 'z':
		return nil, true
	}
	return nil, false
}

// number is one scanned argument: its lexeme as written and its value.
type number struct {
	text  string
	value float64
}

// scanGroups splits the arguments of seg into groups of exactly the
// command's arity. Separators are any run of commas and whitespace; a sign
// or a second decimal point also ends a number. Flags are single 0 or 1
// characters so they may be glued to what follows.
func scanGroups(seg Segment, kinds []argKind) ([][]number, error) {
	args := seg.Args
	base := seg.Offset + 1

	if len(kinds) == 0 {
		if i := skipSeparators(args, 0); i < len(args) {
			return nil, &MalformedInputError{
				Offset: base + i,
				Text:   args[i:],
				Reason: "close path takes no arguments",
			}
		}
		return nil, nil
	}

	var groups [][]number
	i := skipSeparators(args, 0)
	for i < len(args) {
		group := make([]number, 0, len(kinds))
		for _, kind := range kinds {
			i = skipSeparators(args, i)
			if i == len(args) {
				return nil, &StructuralError{Command: seg.Command, Offset: seg.Offset, Want: len(kinds), Got: len(group)}
			}
			var (
				n   number
				err error
			)
			if kind == argFlag {
				n, i, err = scanFlag(args, i, base)
			} else {
				n, i, err = scanNumber(args, i, base)
			}
			if err != nil {
				return nil, err
			}
			group = append(group, n)
		}
		groups = append(groups, group)
		i = skipSeparators(args, i)
	}
	if len(groups) == 0 {
		return nil, &StructuralError{Command: seg.Command, Offset: seg.Offset, Want: len(kinds), Got: 0}
	}
	return groups, nil
}

// scanNumber takes the extent of the number from the lexer and its value
// from strconv, which rounds correctly across the whole float64 range.
func scanNumber(s string, i, base int) (number, int, error) {
	_, n := lexnum.ParseFloat([]byte(s[i:]))
	if n == 0 || !hasDigit(s[i:i+n]) {
		return number{}, i, &MalformedInputError{
			Offset: base + i,
			Text:   badToken(s, i),
			Reason: "expected a number",
		}
	}
	text := s[i : i+n]
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		reason := "expected a number"
		if math.IsInf(f, 0) {
			reason = "number out of range"
		}
		return number{}, i, &MalformedInputError{
			Offset: base + i,
			Text:   text,
			Reason: reason,
		}
	}
	return number{text: text, value: f}, i + n, nil
}

func scanFlag(s string, i, base int) (number, int, error) {
	switch s[i] {
	case '0':
		return number{text: "0", value: 0}, i + 1, nil
	case '1':
		return number{text: "1", value: 1}, i + 1, nil
	}
	return number{}, i, &MalformedInputError{
		Offset: base + i,
		Text:   badToken(s, i),
		Reason: "arc flag must be 0 or 1",
	}
}

func skipSeparators(s string, i int) int {
	for i < len(s) && (s[i] == ',' || isSpace(s[i])) {
		i++
	}
	return i
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			return true
		}
	}
	return false
}

// badToken returns the offending text up to the next separator.
func badToken(s string, i int) string {
	j := i + 1
	for j < len(s) && s[j] != ',' && !isSpace(s[j]) {
		j++
	}
	return s[i:j]
}
