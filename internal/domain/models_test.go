package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0, "0"},
		{15, "15"},
		{-4, "-4"},
		{120.4, "120.4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestUnitsDefaultWhenEmpty(t *testing.T) {
	assert.Equal(t, "15px", Px(15).String())
	assert.Equal(t, "7px", Length{Value: 7}.String())
	assert.Equal(t, "50%", Length{Value: 50, Unit: UnitPercent}.String())
	assert.Equal(t, "35deg", Deg(35).String())
	assert.Equal(t, "-10deg", Angle{Value: -10}.String())
}

func TestRectCenter(t *testing.T) {
	x, y := Rect{X: 60, Y: 150, Width: 100, Height: 60}.Center()
	assert.Equal(t, 110.0, x)
	assert.Equal(t, 180.0, y)
}

func TestViewModeValid(t *testing.T) {
	assert.True(t, ViewDesktop.Valid())
	assert.True(t, ViewMobile.Valid())
	assert.False(t, ViewMode("watch").Valid())
}
