// Package tooltip reports numeric deltas while a gesture is active.
package tooltip

import (
	"fmt"

	"artboard/internal/domain"
)

// Pointer offsets applied before anchoring the tooltip by its bottom-right corner
const (
	OffsetX = 50
	OffsetY = -10
)

// Tooltip is the transient feedback box shown during a gesture
type Tooltip struct {
	visible bool
	text    string
	x, y    float64

	zoom      float64
	selection func() int // number of selected elements
}

// New creates a hidden tooltip. zoom is the ambient view zoom; selection
// reports the size of the active selection.
func New(zoom float64, selection func() int) *Tooltip {
	if zoom <= 0 {
		zoom = 1
	}
	return &Tooltip{zoom: zoom, selection: selection}
}

// SetZoom changes the ambient view zoom
func (t *Tooltip) SetZoom(zoom float64) {
	if zoom > 0 {
		t.zoom = zoom
	}
}

// Scale is 1 for group selections, which have no single local scale, and
// the view zoom otherwise
func (t *Tooltip) Scale() float64 {
	if t.selection != nil && t.selection() > 1 {
		return 1
	}
	return t.zoom
}

// Show displays text near the pointer
func (t *Tooltip) Show(clientX, clientY float64, text string) {
	scale := t.Scale()
	t.x = clientX/scale + OffsetX
	t.y = clientY/scale + OffsetY
	t.text = text
	t.visible = true
}

// Hide hides the tooltip. Safe to call repeatedly.
func (t *Tooltip) Hide() {
	t.visible = false
}

// Visible reports whether the tooltip is shown
func (t *Tooltip) Visible() bool {
	return t.visible
}

// Text returns the current content
func (t *Tooltip) Text() string {
	return t.text
}

// Position returns the anchor point: the tooltip's bottom-right corner
func (t *Tooltip) Position() (float64, float64) {
	return t.x, t.y
}

// Style renders the tooltip placement as a style fragment
func (t *Tooltip) Style() string {
	if !t.visible {
		return "display: none;"
	}
	return fmt.Sprintf("display: block; transform: translate(%s, %s) translate(-100%%, -100%%);",
		domain.Px(t.x), domain.Px(t.y))
}
