package pathdata

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateQuarterTurnsAreExact(t *testing.T) {
	origin := Point{}
	tests := []struct {
		deg  float64
		want Point
	}{
		{0, Point{1, 0}},
		{90, Point{0, 1}},
		{180, Point{-1, 0}},
		{270, Point{0, -1}},
		{360, Point{1, 0}},
		{-90, Point{0, -1}},
		{450, Point{0, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rotate(Point{1, 0}, origin, tt.deg), "deg=%v", tt.deg)
	}
}

func TestRotateAboutPivot(t *testing.T) {
	got := Rotate(Point{2, 1}, Point{1, 1}, 45)
	assert.InDelta(t, 1+math.Sqrt2/2, got.X, 1e-12)
	assert.InDelta(t, 1+math.Sqrt2/2, got.Y, 1e-12)

	got = Rotate(Point{5, 5}, Point{5, 5}, 33)
	assert.Equal(t, Point{5, 5}, got)
}

func TestReflect(t *testing.T) {
	assert.Equal(t, Point{40, -10}, Reflect(Point{20, 10}, Point{30, 0}))
	assert.Equal(t, Point{0, 0}, Reflect(Point{4, -6}, Point{2, -3}))
}

func TestPointString(t *testing.T) {
	assert.Equal(t, "1.5,-2", Point{1.5, -2}.String())
}
