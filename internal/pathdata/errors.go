package pathdata

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput     = errors.New("malformed path data")
	ErrStructural         = errors.New("missing path arguments")
	ErrUnsupportedCommand = errors.New("unsupported path command")
)

// MalformedInputError reports text that is not path data: stray leading
// text, a numeric token that does not parse, or arguments where none are
// allowed.
type MalformedInputError struct {
	Offset int
	Text   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed path data at offset %d (%q): %s", e.Offset, e.Text, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return ErrMalformedInput }

// StructuralError reports a command whose argument list does not contain
// a whole number of argument groups.
type StructuralError struct {
	Command byte
	Offset  int
	Want    int // numbers per group
	Got     int // numbers found in the incomplete group
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("command %q at offset %d needs %d arguments per group, got %d", e.Command, e.Offset, e.Want, e.Got)
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

// UnsupportedCommandError is only returned in strict mode; otherwise
// unknown letters are skipped.
type UnsupportedCommandError struct {
	Command byte
	Offset  int
}

func (e *UnsupportedCommandError) Error() string {
	return fmt.Sprintf("unsupported command %q at offset %d", e.Command, e.Offset)
}

func (e *UnsupportedCommandError) Unwrap() error { return ErrUnsupportedCommand }

// Kind names the error class for API responses.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedInput):
		return "malformed"
	case errors.Is(err, ErrStructural):
		return "structural"
	case errors.Is(err, ErrUnsupportedCommand):
		return "unsupported"
	default:
		return ""
	}
}

// Offset returns the byte offset carried by a path error, or -1.
func Offset(err error) int {
	var malformed *MalformedInputError
	var structural *StructuralError
	var unsupported *UnsupportedCommandError
	switch {
	case errors.As(err, &malformed):
		return malformed.Offset
	case errors.As(err, &structural):
		return structural.Offset
	case errors.As(err, &unsupported):
		return unsupported.Offset
	default:
		return -1
	}
}
