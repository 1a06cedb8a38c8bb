package input

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"

	"artboard/internal/interaction"
)

// Step sizes for keyboard transforms
const (
	NudgeStep  = 10.0 // px
	RotateStep = 15.0 // degrees
	ResizeStep = 10.0 // px
	ZoomStep   = 1.25
)

// Handler maps key presses to actions
type Handler struct {
	keys KeyMap
}

// New creates a handler for the given key map
func New(keys KeyMap) *Handler {
	return &Handler{keys: keys}
}

// KeyMap returns the handler's bindings
func (h *Handler) KeyMap() KeyMap {
	return h.keys
}

// HandleKey processes a key message. The second result reports whether the
// key was consumed.
func (h *Handler) HandleKey(msg tea.KeyMsg) ([]Action, bool) {
	k := h.keys
	switch {
	case key.Matches(msg, k.Quit):
		return []Action{QuitAction{}}, true

	// Terminals report no key-up, so modifier keys toggle
	case key.Matches(msg, k.Constrain):
		return []Action{ToggleModifierAction{Key: interaction.KeyShift}}, true
	case key.Matches(msg, k.Multi):
		return []Action{ToggleModifierAction{Key: interaction.KeyCtrl}}, true
	case key.Matches(msg, k.Toggle):
		return []Action{ToggleModifierAction{Key: interaction.KeyToggle}}, true

	case key.Matches(msg, k.SelectAll):
		return []Action{SelectAllAction{}}, true
	case key.Matches(msg, k.Clear):
		return []Action{ClearSelectionAction{}}, true
	case key.Matches(msg, k.Delete):
		return []Action{DeleteSelectionAction{}}, true

	case key.Matches(msg, k.Up):
		return []Action{NudgeAction{DY: -NudgeStep}}, true
	case key.Matches(msg, k.Down):
		return []Action{NudgeAction{DY: NudgeStep}}, true
	case key.Matches(msg, k.Left):
		return []Action{NudgeAction{DX: -NudgeStep}}, true
	case key.Matches(msg, k.Right):
		return []Action{NudgeAction{DX: NudgeStep}}, true

	case key.Matches(msg, k.RotateLeft):
		return []Action{RotateAction{Degrees: -RotateStep}}, true
	case key.Matches(msg, k.RotateRight):
		return []Action{RotateAction{Degrees: RotateStep}}, true
	case key.Matches(msg, k.Grow):
		return []Action{ResizeAction{DW: ResizeStep, DH: ResizeStep}}, true
	case key.Matches(msg, k.Shrink):
		return []Action{ResizeAction{DW: -ResizeStep, DH: -ResizeStep}}, true

	case key.Matches(msg, k.ZoomIn):
		return []Action{ZoomAction{Factor: ZoomStep}}, true
	case key.Matches(msg, k.ZoomOut):
		return []Action{ZoomAction{Factor: 1 / ZoomStep}}, true

	case key.Matches(msg, k.Rulers):
		return []Action{ToggleRulersAction{}}, true
	case key.Matches(msg, k.View):
		return []Action{CycleViewAction{}}, true
	case key.Matches(msg, k.Frames):
		return []Action{ShowFramesAction{}}, true
	case key.Matches(msg, k.Help):
		return []Action{ToggleHelpAction{}}, true
	}
	return nil, false
}
