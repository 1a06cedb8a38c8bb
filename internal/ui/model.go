package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"artboard/internal/board"
	"artboard/internal/domain"
	"artboard/internal/frames"
	"artboard/internal/interaction"
	"artboard/internal/ui/input"
	"artboard/internal/ui/views"
)

// Ruler size in cells; the rulers cover the top-left corner of the board
const (
	rulerCols = 2
	rulerRows = 1
)

// headerRows is the number of screen rows above the board
const headerRows = 1

// Board widths for the narrower view modes, in px
var viewWidths = map[domain.ViewMode]float64{
	domain.ViewTablet: 768,
	domain.ViewMobile: 375,
}

// Model represents the UI state
type Model struct {
	board  *board.Board
	logger *log.Logger

	layout     *Layout
	recognizer *Recognizer
	input      *input.Handler
	renderer   *views.Renderer
	pager      *PagerOps

	// UI-specific state
	width       int
	height      int
	help        help.Model
	showHelp    bool
	showRulers  bool
	inPagerMode bool
	view        domain.ViewMode

	// ruler guides in px, before the ruler offset
	vGuides []float64
	hGuides []float64

	// modifiers held because a mouse event reported them
	mouseHeld map[string]bool

	mountCmds []tea.Cmd
	status    string

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates the UI model and mounts the demo grid on the board
func NewModel(b *board.Board, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	cfg := b.Config()

	m := &Model{
		board:      b,
		logger:     logger,
		layout:     NewLayout(b.Frames, cfg.Board.Zoom),
		input:      input.New(input.NewKeyMap(cfg.Keys)),
		renderer:   views.NewRenderer(),
		pager:      NewPagerOps(),
		help:       help.New(),
		showRulers: cfg.Snap.ShowRulers,
		view:       cfg.Board.View,
		mouseHeld:  make(map[string]bool),
	}
	m.recognizer = NewRecognizer(b, m.layout, logger)

	spacing := float64(cfg.Board.Spacing)
	for _, e := range GridElements(cfg.Board.Columns, cfg.Board.Rows, spacing) {
		e.ID = domain.ElementID(uuid.NewString())
		h, cmd := b.MountElement(e.ID)
		e.Handle = h
		m.layout.Add(e)
		m.mountCmds = append(m.mountCmds, cmd)
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Layout returns the board layout
func (m *Model) Layout() *Layout {
	return m.layout
}

// Init registers the mounted elements as selectable on the first turn of
// the event loop
func (m *Model) Init() tea.Cmd {
	cmds := m.mountCmds
	m.mountCmds = nil
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case board.RegisteredMsg:
		if msg.Changed {
			m.logger.Debug("selectable registered", "id", msg.ID)
		}

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		actions, _ := m.input.HandleKey(msg)
		var cmds []tea.Cmd
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.inPagerMode {
			return m, nil
		}
		m.handleMouse(msg)

	case tea.BlurMsg:
		m.recognizer.Cancel()
		m.board.Blur()
		for k := range m.mouseHeld {
			delete(m.mouseHeld, k)
		}

	case EventMsg:
		m.handleEvent(msg.Event)

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case framesPagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.logger.Error("frame pager failed", "err", msg.err)
			m.status = fmt.Sprintf("pager: %v", msg.err)
		}
	}

	return m, nil
}

func (m *Model) handleEvent(e domain.DomainEvent) {
	switch ev := e.(type) {
	case domain.GestureEndedEvent:
		if !ev.Matched {
			m.logger.Debug("unmatched gesture end", "kind", ev.Kind)
		}
	case domain.LockChangedEvent:
		if !ev.Locked {
			m.recognizer.UpdateRect()
		}
	}
}

// processAction executes one input action
func (m *Model) processAction(action input.Action) tea.Cmd {
	switch a := action.(type) {
	case input.QuitAction:
		m.recognizer.Cancel()
		m.board.Close()
		return tea.Quit

	case input.ToggleModifierAction:
		m.board.Keys.Toggle(a.Key)

	case input.SelectAllAction:
		m.board.SelectAll(m.recognizer.UpdateRect)

	case input.ClearSelectionAction:
		m.board.Selection.Clear(m.recognizer.UpdateRect)

	case input.DeleteSelectionAction:
		m.deleteSelection()

	case input.NudgeAction:
		m.refreshGuidelines()
		m.recognizer.Nudge(a.DX, a.DY)

	case input.RotateAction:
		m.recognizer.Rotate(a.Degrees)

	case input.ResizeAction:
		m.recognizer.Resize(a.DW, a.DH)

	case input.ToggleRulersAction:
		m.showRulers = !m.showRulers
		m.refreshGuidelines()

	case input.ZoomAction:
		m.zoom(a.Factor)

	case input.CycleViewAction:
		m.view = nextView(m.view)

	case input.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case input.ShowFramesAction:
		return m.showFrames()
	}
	return nil
}

// Zoom limits
const (
	minZoom = 0.25
	maxZoom = 4.0
)

func (m *Model) zoom(factor float64) {
	if m.recognizer.Active() {
		return
	}
	zoom := min(maxZoom, max(minZoom, m.layout.Zoom()*factor))
	m.layout.SetZoom(zoom)
	m.board.SetZoom(zoom)
	m.recognizer.UpdateRect()
}

// deleteSelection unmounts the selected elements. Nothing happens while a
// gesture holds the lock.
func (m *Model) deleteSelection() {
	if m.board.Lock.Locked() {
		return
	}
	for _, h := range m.board.Selection.Selected() {
		e := m.layout.Find(h)
		if e == nil {
			continue
		}
		m.board.UnmountElement(e.ID)
		m.layout.Remove(e.ID)
	}
	m.recognizer.UpdateRect()
}

func nextView(v domain.ViewMode) domain.ViewMode {
	switch v {
	case domain.ViewDesktop:
		return domain.ViewTablet
	case domain.ViewTablet:
		return domain.ViewMobile
	default:
		return domain.ViewDesktop
	}
}

// showFrames returns a command that shows the frame dump using ov pager
func (m *Model) showFrames() tea.Cmd {
	if m.program == nil {
		m.status = "pager unavailable"
		return nil
	}
	content := FrameDump(m.layout, m.board.Frames.Snapshot())
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return framesPagerMsg{err: err}
	}
}

// handleMouse routes pointer input to the rulers or the recognizer
func (m *Model) handleMouse(msg tea.MouseMsg) {
	screenRow := msg.Y - headerRows
	if screenRow < 0 {
		// a gesture dragged onto the header still moves and ends
		if msg.Action == tea.MouseActionPress ||
			(msg.Action == tea.MouseActionMotion && !m.recognizer.Active()) {
			return
		}
		screenRow = 0
	}
	boardRow := screenRow + m.layout.Scroll()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if m.board.Config().Scroll.Scrollable {
			m.layout.SetScroll(m.layout.Scroll() - 1)
		}
		return
	case msg.Button == tea.MouseButtonWheelDown:
		if m.board.Config().Scroll.Scrollable {
			m.layout.SetScroll(m.layout.Scroll() + 1)
		}
		return
	}

	p := Pointer{
		X:       m.layout.PxX(msg.X),
		Y:       m.layout.PxY(boardRow),
		ClientX: float64(msg.X) * CellWidth,
		ClientY: float64(msg.Y) * CellHeight,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.showRulers && m.pressRuler(msg.X, screenRow, boardRow) {
			return
		}
		m.holdMouseModifiers(msg)
		m.refreshGuidelines()
		m.recognizer.Press(p)

	case tea.MouseActionMotion:
		if !m.recognizer.Active() {
			return
		}
		m.autoScroll(screenRow)
		m.recognizer.Move(p)

	case tea.MouseActionRelease:
		m.recognizer.Release(p)
		m.releaseMouseModifiers()
	}
}

// pressRuler adds a guide when the press lands on a ruler
func (m *Model) pressRuler(col, screenRow, boardRow int) bool {
	switch {
	case col < rulerCols && screenRow < rulerRows:
		return true
	case screenRow < rulerRows:
		m.vGuides = append(m.vGuides, m.layout.PxX(col-rulerCols))
	case col < rulerCols:
		m.hGuides = append(m.hGuides, m.layout.PxY(boardRow-rulerRows))
	default:
		return false
	}
	m.refreshGuidelines()
	return true
}

// holdMouseModifiers presses modifiers a mouse event reports for the
// duration of the gesture
func (m *Model) holdMouseModifiers(msg tea.MouseMsg) {
	for key, down := range map[string]bool{interaction.KeyShift: msg.Shift, interaction.KeyCtrl: msg.Ctrl} {
		if down && m.board.Keys.KeyDown(key) {
			m.mouseHeld[key] = true
		}
	}
}

func (m *Model) releaseMouseModifiers() {
	for key := range m.mouseHeld {
		m.board.Keys.KeyUp(key)
		delete(m.mouseHeld, key)
	}
}

// autoScroll scrolls when a gesture nears the top or bottom edge
func (m *Model) autoScroll(screenRow int) {
	cfg := m.board.Config().Scroll
	if !cfg.Scrollable {
		return
	}
	threshold := int(cfg.Threshold)
	switch {
	case screenRow <= threshold && m.layout.Scroll() > 0:
		m.layout.SetScroll(m.layout.Scroll() - 1)
	case screenRow >= m.boardHeight()-1-threshold:
		m.layout.SetScroll(m.layout.Scroll() + 1)
	}
}

// refreshGuidelines hands ruler guides and visible elements to the
// coordinator's options
func (m *Model) refreshGuidelines() {
	var vertical, horizontal []float64
	if m.showRulers {
		offset := m.board.Config().Snap.GuidelineOffset
		for _, g := range m.vGuides {
			vertical = append(vertical, g+offset)
		}
		for _, g := range m.hGuides {
			horizontal = append(horizontal, g+offset)
		}
	}

	var visible []domain.Rect
	top, bottom := m.layout.Scroll(), m.layout.Scroll()+m.boardHeight()
	for _, e := range m.layout.Elements() {
		_, row, _, h := m.layout.Cells(e)
		if row+h > top && row < bottom {
			visible = append(visible, m.layout.Rect(e))
		}
	}
	m.board.Gestures.SetGuidelines(vertical, horizontal, visible)
}

func (m *Model) boardHeight() int {
	// header, status and footer rows
	h := m.height - headerRows - 2
	if h < 1 {
		return 1
	}
	return h
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.scene())
}

func (m *Model) scene() views.Scene {
	scroll := m.layout.Scroll()
	sc := views.Scene{
		Width:      m.width,
		Height:     m.height,
		ShowRulers: m.showRulers,
		RulerCols:  rulerCols,
		RulerRows:  rulerRows,
		PxPerCol:   CellWidth / m.layout.Zoom(),
		PxPerRow:   CellHeight / m.layout.Zoom(),
		ScrollRow:  scroll,
		Header:     fmt.Sprintf("Artboard · %s · %.0f%%", m.view, m.layout.Zoom()*100),
		Status:     m.statusLine(),
		Footer:     m.help.View(m.input.KeyMap()),
	}

	if m.showHelp {
		sc.Popup = "Keys\n\n" + m.help.FullHelpView(m.input.KeyMap().FullHelp())
	}

	if w, ok := viewWidths[m.view]; ok {
		sc.EdgeCol = m.layout.Col(w)
	}

	selected := m.board.Selection.Selected()
	for _, e := range m.layout.Elements() {
		col, row, w, h := m.layout.Cells(e)
		box := views.Box{
			Label:  e.Label,
			Col:    col,
			Row:    row - scroll,
			Width:  w,
			Height: h,
		}
		if deg := m.board.Frames.GetFrame(e.Handle).Get(frames.PropRotate); deg != 0 {
			box.Rotate = fmt.Sprintf("%s°", domain.FormatNumber(deg))
		}
		for i, s := range selected {
			if s == e.Handle {
				box.Selected = true
				box.Primary = i == 0 && len(selected) > 1
			}
		}
		sc.Boxes = append(sc.Boxes, box)
	}

	if hp := m.layout.Handles(); hp.Visible {
		sc.Handles = views.Handles{
			Visible:      true,
			ResizeCol:    hp.ResizeCol,
			ResizeRow:    hp.ResizeRow - scroll,
			RotateCol:    hp.RotateCol,
			RotateRow:    hp.RotateRow - scroll,
			ShowRotation: m.board.Gestures.Options().Rotatable,
		}
	}

	if m.showRulers {
		offset := m.board.Config().Snap.GuidelineOffset
		for _, g := range m.vGuides {
			sc.VGuides = append(sc.VGuides, m.layout.Col(g+offset))
		}
		for _, g := range m.hGuides {
			sc.HGuides = append(sc.HGuides, m.layout.Row(g+offset)-scroll)
		}
	}

	if tip := m.board.Tooltip; tip.Visible() {
		x, y := tip.Position()
		scale := tip.Scale()
		sc.Tooltip = &views.TooltipBox{
			Text: tip.Text(),
			Col:  int(x * scale / CellWidth),
			Row:  int(y*scale/CellHeight) - headerRows,
		}
	}
	return sc
}

func (m *Model) statusLine() string {
	styles := m.renderer.Styles()
	keys := m.board.Keys.Snapshot()
	flag := func(name string, on bool) string {
		if on {
			return styles.ModifierOn.Render(name + " ●")
		}
		return styles.ModifierOff.Render(name + " ○")
	}

	parts := []string{
		flag("shift", keys.Shift),
		flag("ctrl", keys.Ctrl),
		flag("r", keys.Toggle),
		fmt.Sprintf("selected %d", m.board.Selection.Count()),
	}
	if m.board.Lock.Locked() {
		parts = append(parts, styles.Locked.Render("locked"))
	}
	if rect, ok := m.recognizer.Marquee(); ok {
		parts = append(parts, fmt.Sprintf("marquee %.0f×%.0f", rect.Width, rect.Height))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, "  ")
}
