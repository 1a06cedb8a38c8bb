package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Help        lipgloss.Style
	Element     lipgloss.Style
	Selected    lipgloss.Style
	Primary     lipgloss.Style
	Handle      lipgloss.Style
	Ruler       lipgloss.Style
	Guideline   lipgloss.Style
	BoardEdge   lipgloss.Style
	Tooltip     lipgloss.Style
	Popup       lipgloss.Style
	ModifierOn  lipgloss.Style
	ModifierOff lipgloss.Style
	Locked      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:   lipgloss.NewStyle().Faint(true),
		Element: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("248")), // #aaa
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("33")),
		Primary: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("27")).
			Bold(true),
		Handle:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Ruler:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")),
		Guideline: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		BoardEdge: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Tooltip: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("54")).
			Padding(0, 1),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		ModifierOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		ModifierOff: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Locked:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true), // red
	}
}
