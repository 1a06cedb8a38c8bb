package ui

import (
	"fmt"
	"math"
	"slices"

	"artboard/internal/domain"
	"artboard/internal/frames"
)

// Board pixels covered by one terminal cell at zoom 1
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// Element size when its frame carries no width or height
const (
	DefaultElementWidth  = 100.0
	DefaultElementHeight = 60.0
)

// Demo grid placement
const (
	gridOriginX = 60.0
	gridOriginY = 150.0
)

// Element is a mounted board element
type Element struct {
	ID     domain.ElementID
	Label  string
	Handle frames.Handle
	BaseX  float64 // px, before the frame's translation
	BaseY  float64
}

// Part is what a pointer position hits
type Part int

const (
	PartNone Part = iota
	PartBody
	PartLabel // nested content inside the element wrapper
	PartResize
	PartRotate
)

// Hit is the result of a hit test
type Hit struct {
	Part    Part
	Element *Element
}

// Layout maps board pixels to terminal cells and hit-tests elements
type Layout struct {
	store    *frames.Store
	elements []*Element
	zoom     float64
	scroll   int // board rows scrolled off the top
	handles  HandlePositions
}

// HandlePositions are the board cells holding the selection handles
type HandlePositions struct {
	Visible   bool
	ResizeCol int
	ResizeRow int
	RotateCol int
	RotateRow int
}

// NewLayout creates a layout over the frame store
func NewLayout(store *frames.Store, zoom float64) *Layout {
	l := &Layout{store: store}
	l.SetZoom(zoom)
	return l
}

// SetZoom sets the zoom; non-positive values reset it to 1
func (l *Layout) SetZoom(zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	l.zoom = zoom
}

// Zoom returns the zoom factor
func (l *Layout) Zoom() float64 {
	return l.zoom
}

// GridElements places count elements in the demo grid: columns left to right,
// rows top to bottom within each column, spacing px apart
func GridElements(columns, rows int, spacing float64) []*Element {
	var out []*Element
	index := 0
	for column := 0; column < columns; column++ {
		for i := 0; i < rows; i++ {
			index++
			out = append(out, &Element{
				Label: fmt.Sprintf("test__%d", index),
				BaseX: float64(column)*spacing + gridOriginX,
				BaseY: float64(i)*spacing + gridOriginY,
			})
		}
	}
	return out
}

// Add appends an element
func (l *Layout) Add(e *Element) {
	l.elements = append(l.elements, e)
}

// Remove drops the element with id
func (l *Layout) Remove(id domain.ElementID) {
	for i, e := range l.elements {
		if e.ID == id {
			l.elements = slices.Delete(slices.Clone(l.elements), i, i+1)
			return
		}
	}
}

// Elements returns the elements in paint order
func (l *Layout) Elements() []*Element {
	return slices.Clone(l.elements)
}

// Find returns the element holding handle h
func (l *Layout) Find(h frames.Handle) *Element {
	for _, e := range l.elements {
		if e.Handle == h {
			return e
		}
	}
	return nil
}

// Rect returns an element's rectangle in board px
func (l *Layout) Rect(e *Element) domain.Rect {
	f := l.store.GetFrame(e.Handle)
	w, h := DefaultElementWidth, DefaultElementHeight
	if f.Width != nil {
		w = f.Width.Value
	}
	if f.Height != nil {
		h = f.Height.Value
	}
	return domain.Rect{
		X:      e.BaseX + f.Get(frames.PropTranslateX),
		Y:      e.BaseY + f.Get(frames.PropTranslateY),
		Width:  w,
		Height: h,
	}
}

// Bounds returns the rectangle enclosing the given handles
func (l *Layout) Bounds(handles []frames.Handle) (domain.Rect, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := false
	for _, h := range handles {
		e := l.Find(h)
		if e == nil {
			continue
		}
		r := l.Rect(e)
		minX, minY = math.Min(minX, r.X), math.Min(minY, r.Y)
		maxX, maxY = math.Max(maxX, r.X+r.Width), math.Max(maxY, r.Y+r.Height)
		found = true
	}
	if !found {
		return domain.Rect{}, false
	}
	return domain.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// Col converts board px to a board column
func (l *Layout) Col(px float64) int {
	return int(math.Floor(px * l.zoom / CellWidth))
}

// Row converts board px to a board row
func (l *Layout) Row(px float64) int {
	return int(math.Floor(px * l.zoom / CellHeight))
}

// PxX converts a board column to px at the cell's left edge
func (l *Layout) PxX(col int) float64 {
	return float64(col) * CellWidth / l.zoom
}

// PxY converts a board row to px at the cell's top edge
func (l *Layout) PxY(row int) float64 {
	return float64(row) * CellHeight / l.zoom
}

// Cells returns the cell rectangle an element covers
func (l *Layout) Cells(e *Element) (col, row, width, height int) {
	r := l.Rect(e)
	col, row = l.Col(r.X), l.Row(r.Y)
	width = max(1, int(math.Round(r.Width*l.zoom/CellWidth)))
	height = max(1, int(math.Round(r.Height*l.zoom/CellHeight)))
	return col, row, width, height
}

// SetScroll sets how many board rows are scrolled off the top
func (l *Layout) SetScroll(rows int) {
	l.scroll = max(0, rows)
}

// Scroll returns the scroll offset in rows
func (l *Layout) Scroll() int {
	return l.scroll
}

// PlaceHandles positions the selection handles around a px rectangle:
// resize at the bottom-right corner, rotate one row above the top center or,
// with atCorner, above the top-right corner
func (l *Layout) PlaceHandles(r domain.Rect, ok, atCorner bool) {
	if !ok {
		l.handles = HandlePositions{}
		return
	}
	right := l.Col(r.X) + max(1, int(math.Round(r.Width*l.zoom/CellWidth)))
	bottom := l.Row(r.Y) + max(1, int(math.Round(r.Height*l.zoom/CellHeight)))
	cx, _ := r.Center()
	rotateCol := l.Col(cx)
	if atCorner {
		rotateCol = right
	}
	l.handles = HandlePositions{
		Visible:   true,
		ResizeCol: right,
		ResizeRow: bottom,
		RotateCol: rotateCol,
		RotateRow: l.Row(r.Y) - 1,
	}
}

// Handles returns the current handle positions
func (l *Layout) Handles() HandlePositions {
	return l.handles
}

// HitTest finds what lies under a board cell. Handles win over elements,
// later elements over earlier ones.
func (l *Layout) HitTest(col, row int, rotatable bool) Hit {
	if h := l.handles; h.Visible {
		if col == h.ResizeCol && row == h.ResizeRow {
			return Hit{Part: PartResize}
		}
		if rotatable && col == h.RotateCol && row == h.RotateRow {
			return Hit{Part: PartRotate}
		}
	}

	for i := len(l.elements) - 1; i >= 0; i-- {
		e := l.elements[i]
		c, r, w, h := l.Cells(e)
		if col < c || col >= c+w || row < r || row >= r+h {
			continue
		}
		labelRow := r + h/2
		if row == labelRow && col < c+len([]rune(e.Label)) {
			return Hit{Part: PartLabel, Element: e}
		}
		return Hit{Part: PartBody, Element: e}
	}
	return Hit{}
}

// Intersecting returns the elements overlapping a px rectangle
func (l *Layout) Intersecting(r domain.Rect) []*Element {
	var out []*Element
	for _, e := range l.elements {
		er := l.Rect(e)
		if er.X < r.X+r.Width && r.X < er.X+er.Width && er.Y < r.Y+r.Height && r.Y < er.Y+er.Height {
			out = append(out, e)
		}
	}
	return out
}
