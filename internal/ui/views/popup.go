package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
	grey   map[Paint]lipgloss.Style
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	grey := make(map[Paint]lipgloss.Style)
	for _, p := range []Paint{PaintElement, PaintSelected, PaintPrimary, PaintHandle, PaintRuler, PaintGuideline, PaintBoardEdge} {
		grey[p] = styles.Dim
	}
	return &PopupRenderer{styles: styles, grey: grey}
}

// RenderPopupOverlay renders the popup centered over the board, with the
// board itself greyed out
func (pr *PopupRenderer) RenderPopupOverlay(base *Canvas, popupContent string) string {
	// Render the popup with its style without forcing width/height
	block := pr.styles.Popup.Render(popupContent)

	width, height := base.Size()
	x := max(0, (width-lipgloss.Width(block))/2)
	y := max(0, (height-lipgloss.Height(block))/2)

	return base.Render(pr.grey, Overlay{X: x, Y: y, Block: block})
}
