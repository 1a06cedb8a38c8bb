package input

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Modifier actions
type ToggleModifierAction struct {
	Key string // interaction.KeyShift, KeyCtrl or KeyToggle
}

func (a ToggleModifierAction) Type() string { return "toggle_modifier" }

// Selection actions
type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

type DeleteSelectionAction struct{}

func (a DeleteSelectionAction) Type() string { return "delete_selection" }

// Transform actions, applied to the selection as synthetic gestures
type NudgeAction struct {
	DX, DY float64 // px
}

func (a NudgeAction) Type() string { return "nudge" }

type RotateAction struct {
	Degrees float64
}

func (a RotateAction) Type() string { return "rotate" }

type ResizeAction struct {
	DW, DH float64 // px
}

func (a ResizeAction) Type() string { return "resize" }

// View actions
type ToggleRulersAction struct{}

func (a ToggleRulersAction) Type() string { return "toggle_rulers" }

type ZoomAction struct {
	Factor float64 // multiplies the current zoom
}

func (a ZoomAction) Type() string { return "zoom" }

type CycleViewAction struct{}

func (a CycleViewAction) Type() string { return "cycle_view" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type ShowFramesAction struct{}

func (a ShowFramesAction) Type() string { return "show_frames" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
