package pathdata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{"empty", "", nil},
		{"blank", " \t\n", nil},
		{"simple", "M10 10L20 20", []Segment{
			{Command: 'M', Args: "10 10", Offset: 0},
			{Command: 'L', Args: "20 20", Offset: 6},
		}},
		{"leading space", "  M1,1", []Segment{
			{Command: 'M', Args: "1,1", Offset: 2},
		}},
		{"close", "M0,0z", []Segment{
			{Command: 'M', Args: "0,0", Offset: 0},
			{Command: 'z', Args: "", Offset: 4},
		}},
		{"exponent", "M1e5,2E-3L1,1", []Segment{
			{Command: 'M', Args: "1e5,2E-3", Offset: 0},
			{Command: 'L', Args: "1,1", Offset: 9},
		}},
		{"unknown letter", "M0,0X5", []Segment{
			{Command: 'M', Args: "0,0", Offset: 0},
			{Command: 'X', Args: "5", Offset: 4},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeStrayLeadingText(t *testing.T) {
	_, err := Tokenize("10,10L5,5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 0, malformed.Offset)
	assert.Equal(t, "10,10", malformed.Text)
}

func TestTokenizeUnknownLeadingLetter(t *testing.T) {
	tests := []struct {
		in     string
		offset int
		text   string
	}{
		{"X5 5M0,0L1,1", 0, "X5 5"},
		{"x", 0, "x"},
		{"  r1e3", 2, "r1e3"},
	}
	for _, tt := range tests {
		_, err := Tokenize(tt.in)
		var malformed *MalformedInputError
		require.ErrorAs(t, err, &malformed, tt.in)
		assert.Equal(t, tt.offset, malformed.Offset, tt.in)
		assert.Equal(t, tt.text, malformed.Text, tt.in)
	}
}

func TestSegmentsRestartable(t *testing.T) {
	seq := Segments("M0,0L1,1L2,2Z")

	collect := func() []byte {
		var cmds []byte
		for seg, err := range seq {
			require.NoError(t, err)
			cmds = append(cmds, seg.Command)
		}
		return cmds
	}
	assert.Equal(t, []byte("MLLZ"), collect())
	assert.Equal(t, []byte("MLLZ"), collect())

	var first []byte
	for seg := range seq {
		first = append(first, seg.Command)
		break
	}
	assert.Equal(t, []byte("M"), first)
}

func TestSegmentAbsolute(t *testing.T) {
	assert.True(t, Segment{Command: 'C'}.Absolute())
	assert.False(t, Segment{Command: 'c'}.Absolute())
	assert.Equal(t, "L1,2", Segment{Command: 'L', Args: "1,2"}.String())
}
