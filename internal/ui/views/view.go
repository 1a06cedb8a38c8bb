package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box is an element laid out in screen cells, scroll already applied
type Box struct {
	Label    string
	Col, Row int
	Width    int
	Height   int
	Rotate   string // empty when unrotated
	Selected bool
	Primary  bool
}

// Handles are the control points drawn around the selection
type Handles struct {
	Visible      bool
	ResizeCol    int
	ResizeRow    int
	RotateCol    int
	RotateRow    int
	ShowRotation bool
}

// TooltipBox is the feedback box anchored by its bottom-right corner
type TooltipBox struct {
	Text     string
	Col, Row int
}

// Scene is everything the renderer needs for one frame
type Scene struct {
	Width, Height int

	Boxes   []Box
	Handles Handles
	Tooltip *TooltipBox

	ShowRulers bool
	RulerCols  int // width of the vertical ruler
	RulerRows  int // height of the horizontal ruler
	PxPerCol   float64
	PxPerRow   float64
	ScrollRow  int   // board rows scrolled off the top, for ruler labels
	VGuides    []int // screen columns
	HGuides    []int // screen rows
	EdgeCol    int   // board width limit, 0 when unbounded

	Header string
	Status string
	Footer string
	Popup  string // modal content drawn over a greyed board
}

// Renderer handles the main view rendering
type Renderer struct {
	styles  *Styles
	palette map[Paint]lipgloss.Style
	popup   *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	s := NewStyles()
	return &Renderer{
		styles: s,
		palette: map[Paint]lipgloss.Style{
			PaintElement:   s.Element,
			PaintSelected:  s.Selected,
			PaintPrimary:   s.Primary,
			PaintHandle:    s.Handle,
			PaintRuler:     s.Ruler,
			PaintGuideline: s.Guideline,
			PaintBoardEdge: s.BoardEdge,
		},
		popup: NewPopupRenderer(s),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render renders the complete UI
func (r *Renderer) Render(sc Scene) string {
	header := r.styles.Title.Render(sc.Header)
	footer := sc.Footer
	status := r.styles.Status.Render(sc.Status)

	boardHeight := sc.Height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	if boardHeight < 1 {
		boardHeight = 1
	}

	canvas := r.Paint(sc, boardHeight)
	if sc.Popup != "" {
		return strings.Join([]string{header, r.popup.RenderPopupOverlay(canvas, sc.Popup), status, footer}, "\n")
	}

	var overlays []Overlay
	if sc.Tooltip != nil && sc.Tooltip.Text != "" {
		block := r.styles.Tooltip.Render(sc.Tooltip.Text)
		// anchored by the bottom-right corner
		overlays = append(overlays, Overlay{
			X:     sc.Tooltip.Col - lipgloss.Width(block) + 1,
			Y:     sc.Tooltip.Row - lipgloss.Height(block) + 1,
			Block: block,
		})
	}

	return strings.Join([]string{header, canvas.Render(r.palette, overlays...), status, footer}, "\n")
}

// Paint draws the board into a canvas without styling decisions beyond
// paint classes
func (r *Renderer) Paint(sc Scene, height int) *Canvas {
	c := NewCanvas(sc.Width, height)

	if sc.EdgeCol > 0 {
		for y := 0; y < height; y++ {
			c.Set(sc.EdgeCol, y, '┊', PaintBoardEdge)
		}
	}

	for _, col := range sc.VGuides {
		for y := 0; y < height; y++ {
			c.Set(col, y, '│', PaintGuideline)
		}
	}
	for _, row := range sc.HGuides {
		for x := 0; x < sc.Width; x++ {
			c.Set(x, row, '─', PaintGuideline)
		}
	}

	for _, b := range sc.Boxes {
		paint := PaintElement
		switch {
		case b.Primary:
			paint = PaintPrimary
		case b.Selected:
			paint = PaintSelected
		}
		row := b.Row
		c.Fill(b.Col, row, b.Width, b.Height, ' ', paint)
		label := b.Label
		if b.Rotate != "" {
			label += " " + b.Rotate
		}
		if len([]rune(label)) > b.Width {
			label = string([]rune(label)[:max(b.Width, 0)])
		}
		c.Text(b.Col, row+b.Height/2, label, paint)
	}

	if sc.Handles.Visible {
		c.Set(sc.Handles.ResizeCol, sc.Handles.ResizeRow, '◢', PaintHandle)
		if sc.Handles.ShowRotation {
			c.Set(sc.Handles.RotateCol, sc.Handles.RotateRow, '↻', PaintHandle)
		}
	}

	if sc.ShowRulers {
		r.paintRulers(c, sc, height)
	}
	return c
}

func (r *Renderer) paintRulers(c *Canvas, sc Scene, height int) {
	for row := 0; row < sc.RulerRows; row++ {
		c.Fill(0, row, sc.Width, 1, ' ', PaintRuler)
	}
	for col := 0; col < sc.RulerCols; col++ {
		c.Fill(col, 0, 1, height, ' ', PaintRuler)
	}

	// readings start where the rulers meet; labels every 100px, ticks every 50px
	for x := sc.RulerCols; x < sc.Width; x++ {
		px := float64(x-sc.RulerCols) * sc.PxPerCol
		prev := float64(x-sc.RulerCols-1) * sc.PxPerCol
		switch {
		case crosses(prev, px, 100):
			c.Text(x, 0, fmt.Sprintf("|%d", int(px)/100*100), PaintRuler)
		case crosses(prev, px, 50) && c.At(x, 0) == ' ':
			c.Set(x, 0, '\'', PaintRuler)
		}
	}
	for y := sc.RulerRows; y < height; y++ {
		px := float64(y-sc.RulerRows+sc.ScrollRow) * sc.PxPerRow
		prev := float64(y-sc.RulerRows+sc.ScrollRow-1) * sc.PxPerRow
		if crosses(prev, px, 100) {
			c.Text(0, y, fmt.Sprintf("%d", int(px)/100), PaintRuler)
		}
	}
}

// crosses reports whether a multiple of step lies in (prev, cur]
func crosses(prev, cur, step float64) bool {
	if step <= 0 || cur <= 0 {
		return false
	}
	return int(cur/step) != int(prev/step)
}
