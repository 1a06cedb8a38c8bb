package domain

import (
	"strconv"
)

// ElementID is the stable identifier the host assigns to a manipulable element.
// It is only used for selectable-registry membership, never for frame lookup.
type ElementID string

// Units used by lengths and angles
const (
	UnitPx      = "px"
	UnitDeg     = "deg"
	UnitPercent = "%"
)

// Length is a number with a length unit (e.g. 15px)
type Length struct {
	Value float64
	Unit  string
}

// Px returns a pixel length
func Px(v float64) Length {
	return Length{Value: v, Unit: UnitPx}
}

func (l Length) String() string {
	unit := l.Unit
	if unit == "" {
		unit = UnitPx
	}
	return FormatNumber(l.Value) + unit
}

// Angle is a number with an angle unit (e.g. 35deg)
type Angle struct {
	Value float64
	Unit  string
}

// Deg returns an angle in degrees
func Deg(v float64) Angle {
	return Angle{Value: v, Unit: UnitDeg}
}

func (a Angle) String() string {
	unit := a.Unit
	if unit == "" {
		unit = UnitDeg
	}
	return FormatNumber(a.Value) + unit
}

// FormatNumber renders whole numbers without a decimal point
func FormatNumber(v float64) string {
	if v == 0 {
		// avoids "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Rect is an axis-aligned rectangle in board coordinates
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the rectangle's center point
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// ViewMode is the board width class
type ViewMode string

const (
	ViewDesktop ViewMode = "desktop"
	ViewTablet  ViewMode = "tablet"
	ViewMobile  ViewMode = "mobile"
)

// Valid reports whether the view mode is one of the known modes
func (v ViewMode) Valid() bool {
	switch v {
	case ViewDesktop, ViewTablet, ViewMobile:
		return true
	}
	return false
}
