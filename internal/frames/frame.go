// Package frames owns the per-element transform records.
//
// Frames live in an arena: each mounted element gets a Handle (slot index plus
// generation) and the frame for that handle is created lazily on first read.
// Releasing a handle frees the slot; a later Mount may reuse the slot under a
// new generation, so stale handles never alias a newer element's frame.
package frames

import (
	"fmt"
	"strings"

	"artboard/internal/domain"
)

// Property names a single frame field
type Property int

const (
	PropTranslateX Property = iota
	PropTranslateY
	PropRotate
	PropScaleX
	PropScaleY
	PropWidth
	PropHeight
)

func (p Property) String() string {
	switch p {
	case PropTranslateX:
		return "translateX"
	case PropTranslateY:
		return "translateY"
	case PropRotate:
		return "rotate"
	case PropScaleX:
		return "scaleX"
	case PropScaleY:
		return "scaleY"
	case PropWidth:
		return "width"
	case PropHeight:
		return "height"
	default:
		return fmt.Sprintf("Property(%d)", int(p))
	}
}

// Frame is the transform record of one element
type Frame struct {
	TranslateX domain.Length
	TranslateY domain.Length
	Rotate     domain.Angle
	ScaleX     float64
	ScaleY     float64
	Width      *domain.Length // nil when unset
	Height     *domain.Length // nil when unset
}

// NewFrame returns the identity frame: 0px, 0px, 0deg, scale 1, no size
func NewFrame() *Frame {
	return &Frame{
		TranslateX: domain.Px(0),
		TranslateY: domain.Px(0),
		Rotate:     domain.Deg(0),
		ScaleX:     1,
		ScaleY:     1,
	}
}

// Get returns the numeric value of a property. Unset sizes read as 0.
func (f *Frame) Get(p Property) float64 {
	switch p {
	case PropTranslateX:
		return f.TranslateX.Value
	case PropTranslateY:
		return f.TranslateY.Value
	case PropRotate:
		return f.Rotate.Value
	case PropScaleX:
		return f.ScaleX
	case PropScaleY:
		return f.ScaleY
	case PropWidth:
		if f.Width == nil {
			return 0
		}
		return f.Width.Value
	case PropHeight:
		if f.Height == nil {
			return 0
		}
		return f.Height.Value
	}
	return 0
}

// set writes one property in place
func (f *Frame) set(p Property, v float64) {
	switch p {
	case PropTranslateX:
		f.TranslateX = domain.Px(v)
	case PropTranslateY:
		f.TranslateY = domain.Px(v)
	case PropRotate:
		f.Rotate = domain.Deg(v)
	case PropScaleX:
		f.ScaleX = v
	case PropScaleY:
		f.ScaleY = v
	case PropWidth:
		l := domain.Px(v)
		f.Width = &l
	case PropHeight:
		l := domain.Px(v)
		f.Height = &l
	}
}

// clone returns a deep copy
func (f *Frame) clone() Frame {
	c := *f
	if f.Width != nil {
		w := *f.Width
		c.Width = &w
	}
	if f.Height != nil {
		h := *f.Height
		c.Height = &h
	}
	return c
}

// Transform renders the transform functions in fixed order:
// translate, then rotate, then scale.
func (f *Frame) Transform() string {
	return fmt.Sprintf("translateX(%s) translateY(%s) rotate(%s) scaleX(%s) scaleY(%s)",
		f.TranslateX, f.TranslateY, f.Rotate,
		domain.FormatNumber(f.ScaleX), domain.FormatNumber(f.ScaleY))
}

// Style renders the frame as a style fragment. Applying the same frame twice
// yields the same string.
func (f *Frame) Style() string {
	var b strings.Builder
	b.WriteString("transform: ")
	b.WriteString(f.Transform())
	b.WriteString(";")
	if f.Width != nil {
		b.WriteString(" width: ")
		b.WriteString(f.Width.String())
		b.WriteString(";")
	}
	if f.Height != nil {
		b.WriteString(" height: ")
		b.WriteString(f.Height.String())
		b.WriteString(";")
	}
	return b.String()
}
