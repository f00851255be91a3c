package pathdata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formatTests = []struct {
	in   string
	want string
}{
	{"M10 10L20 20", "M10,10L20,20"},
	{"M10,10 20,20", "M10,10L20,20"},
	{"m1 2 3 4", "m1,2l3,4"},
	{"L1 2 3 4", "L1,2L3,4"},
	{"M 10\n10\tL 20 , 20", "M10,10L20,20"},
	{"M10-20L.5.5", "M10,-20L.5,.5"},
	{"M1e2 2E-1", "M1e2,2E-1"},
	{"H10 V20", "H10V20"},
	{"h1 2", "h1h2"},
	{"C1 2 3 4 5 6", "C1,2 3,4 5,6"},
	{"c1,2,3,4,5,6", "c1,2 3,4 5,6"},
	{"C1,2 3,4 5,6", "C1,2 3,4 5,6"},
	{"C1 2,3 4,5 6", "C1,2 3,4 5,6"},
	{"c1 2 3 4 5 6 7 8 9 10 11 12", "c1,2 3,4 5,6c7,8 9,10 11,12"},
	{"S1 2 3 4", "S1,2 3,4"},
	{"s1,2,3,4", "s1,2 3,4"},
	{"Q1 2 3 4", "Q1,2 3,4"},
	{"q1,2 3,4", "q1,2 3,4"},
	{"T5 5", "T5,5"},
	{"t5 5 6 6", "t5,5t6,6"},
	{"B45", "B45"},
	{"b -10", "b-10"},
	{"A25 26 -30 0 1 50 -25", "A25,26 -30 0 1 50,-25"},
	{"a25,26,-30,0,1,50,-25", "a25,26 -30 0 1 50,-25"},
	{"a25,26-30 011,0", "a25,26 -30 0 1 1,0"},
	{"M0,0 z", "M0,0z"},
	{"Z", "Z"},
	{"M0,0X1L1,1", "M0,0L1,1"},
	{"", ""},
	{"   ", ""},
}

func TestFormat(t *testing.T) {
	for _, tt := range formatTests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	for _, tt := range formatTests {
		once, err := Format(tt.in)
		require.NoError(t, err)
		twice, err := Format(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, tt.in)
	}
}

func TestFormatPreservesMeaning(t *testing.T) {
	for _, tt := range formatTests {
		formatted, err := Format(tt.in)
		require.NoError(t, err)

		want, err := Convert(tt.in)
		require.NoError(t, err)
		got, err := Convert(formatted)
		require.NoError(t, err)
		assert.Equal(t, want, got, tt.in)
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"10,10L5,5", ErrMalformedInput},
		{"C1 2 3", ErrStructural},
		{"M0,0L1,#", ErrMalformedInput},
		{"M0,0a1 1 0 5 0 1 1", ErrMalformedInput},
	}
	for _, tt := range tests {
		got, err := Format(tt.in)
		assert.Empty(t, got, tt.in)
		assert.True(t, errors.Is(err, tt.want), "%s: %v", tt.in, err)
	}
}

func TestFormatStrict(t *testing.T) {
	_, err := Converter{Strict: true}.Format("M0,0X1")
	assert.True(t, errors.Is(err, ErrUnsupportedCommand))
	assert.Equal(t, "unsupported", Kind(err))
}

func TestErrorKindAndOffset(t *testing.T) {
	_, err := Format("M0,0C1 2 3")
	assert.Equal(t, "structural", Kind(err))
	assert.Equal(t, 4, Offset(err))

	_, err = Format("  7")
	assert.Equal(t, "malformed", Kind(err))
	assert.Equal(t, 2, Offset(err))

	assert.Equal(t, "", Kind(errors.New("other")))
	assert.Equal(t, -1, Offset(errors.New("other")))
}

func TestFormatConvert(t *testing.T) {
	for _, tt := range formatTests {
		formatted, prims, err := Converter{}.FormatConvert(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, formatted, tt.in)

		want, err := Convert(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, want, prims, tt.in)
	}

	_, prims, err := Converter{}.FormatConvert("M0,0C1")
	assert.Nil(t, prims)
	assert.True(t, errors.Is(err, ErrStructural))
}
