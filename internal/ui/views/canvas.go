package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Paint selects the style of a canvas cell
type Paint int

const (
	PaintNone Paint = iota
	PaintElement
	PaintSelected
	PaintPrimary
	PaintHandle
	PaintRuler
	PaintGuideline
	PaintBoardEdge
)

type cell struct {
	r     rune
	paint Paint
}

// Canvas is a fixed-size grid of styled cells
type Canvas struct {
	width, height int
	cells         [][]cell
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

// Size returns the canvas dimensions in cells
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Set paints one cell. Cells outside the canvas are ignored.
func (c *Canvas) Set(x, y int, r rune, p Paint) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, paint: p}
}

// At returns the rune at a cell, or 0 outside the canvas
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return 0
	}
	return c.cells[y][x].r
}

// Fill paints a rectangle
func (c *Canvas) Fill(x, y, w, h int, r rune, p Paint) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.Set(col, row, r, p)
		}
	}
}

// Text writes a string starting at x, y without wrapping
func (c *Canvas) Text(x, y int, s string, p Paint) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, p)
	}
}

// Overlay is a pre-rendered block placed over the canvas with its top-left
// corner at X, Y
type Overlay struct {
	X, Y  int
	Block string
}

// Render renders every row, styling runs of equal paint with the palette,
// then splices overlays in. A nil palette renders plain text.
func (c *Canvas) Render(palette map[Paint]lipgloss.Style, overlays ...Overlay) string {
	lines := make([]string, c.height)
	covered := make([]bool, c.height)
	for _, o := range overlays {
		for i, line := range strings.Split(o.Block, "\n") {
			row := o.Y + i
			if row < 0 || row >= c.height || covered[row] {
				continue
			}
			lines[row] = spliceRow(c.cells[row], o.X, line, palette)
			covered[row] = true
		}
	}
	for y, row := range c.cells {
		if !covered[y] {
			lines[y] = renderRun(row, palette)
		}
	}
	return strings.Join(lines, "\n")
}

func renderRun(row []cell, palette map[Paint]lipgloss.Style) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].paint == row[start].paint {
			continue
		}
		seg := make([]rune, 0, i-start)
		for _, cl := range row[start:i] {
			seg = append(seg, cl.r)
		}
		if style, ok := palette[row[start].paint]; ok {
			b.WriteString(style.Render(string(seg)))
		} else {
			b.WriteString(string(seg))
		}
		start = i
	}
	return b.String()
}

// spliceRow renders a row with line inserted at column x
func spliceRow(row []cell, x int, line string, palette map[Paint]lipgloss.Style) string {
	if x < 0 {
		x = 0
	}
	if x > len(row) {
		x = len(row)
	}
	end := x + lipgloss.Width(line)
	if end > len(row) {
		end = len(row)
	}
	return renderRun(row[:x], palette) + line + renderRun(row[end:], palette)
}
