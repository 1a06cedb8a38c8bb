package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"artboard/internal/config"
)

// KeyMap holds the board key bindings. It implements help.KeyMap.
type KeyMap struct {
	Constrain key.Binding
	Multi     key.Binding
	Toggle    key.Binding

	SelectAll key.Binding
	Clear     key.Binding
	Delete    key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	RotateLeft  key.Binding
	RotateRight key.Binding
	Grow        key.Binding
	Shrink      key.Binding

	ZoomIn  key.Binding
	ZoomOut key.Binding

	Rulers key.Binding
	View   key.Binding
	Frames key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// NewKeyMap builds the key map. Modifier toggle keys come from configuration.
func NewKeyMap(keys config.KeySettings) KeyMap {
	constrain := orDefault(keys.Constrain, "S")
	multi := orDefault(keys.Multi, "C")
	toggle := orDefault(keys.Toggle, "R")

	return KeyMap{
		Constrain: key.NewBinding(key.WithKeys(constrain), key.WithHelp(constrain, "shift lock")),
		Multi:     key.NewBinding(key.WithKeys(multi), key.WithHelp(multi, "multi-select")),
		Toggle:    key.NewBinding(key.WithKeys(toggle), key.WithHelp(toggle, "toggle key")),

		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove selected")),

		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "nudge up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "nudge down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "nudge left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "nudge right")),

		RotateLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "rotate -15°")),
		RotateRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "rotate +15°")),
		Grow:        key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow")),
		Shrink:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink")),

		ZoomIn:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("Z"), key.WithHelp("Z", "zoom out")),

		Rulers: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "rulers")),
		View:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view mode")),
		Frames: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "frame dump")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// ShortHelp returns the footer bindings
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Constrain, k.Multi, k.SelectAll, k.Rulers, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped in columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Constrain, k.Multi, k.Toggle},
		{k.SelectAll, k.Clear, k.Delete, k.Up, k.Down, k.Left, k.Right},
		{k.RotateLeft, k.RotateRight, k.Grow, k.Shrink, k.ZoomIn, k.ZoomOut},
		{k.Rulers, k.View, k.Frames, k.Help, k.Quit},
	}
}
