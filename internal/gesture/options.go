package gesture

import (
	"artboard/internal/domain"
)

// Options is the configuration the recognizer accepts from the coordinator
type Options struct {
	Draggable bool
	Resizable bool
	Rotatable bool

	Snappable  bool
	SnapCenter bool

	ThrottleDrag   float64
	ThrottleResize float64
	ThrottleRotate float64

	KeepRatio        bool
	RotationAtCorner bool

	Scrollable      bool
	ScrollThreshold float64

	ElementGuidelines    []domain.Rect
	VerticalGuidelines   []float64
	HorizontalGuidelines []float64
}

// DefaultOptions mirrors the board defaults: everything enabled, no throttling
func DefaultOptions() Options {
	return Options{
		Draggable:       true,
		Resizable:       true,
		Rotatable:       true,
		Snappable:       true,
		SnapCenter:      true,
		Scrollable:      true,
		ScrollThreshold: 1,
	}
}

// DefaultShiftThrottleRotate is the rotation increment in degrees while
// the constrain modifier is held
const DefaultShiftThrottleRotate = 30
