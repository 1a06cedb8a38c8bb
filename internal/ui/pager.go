package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"artboard/internal/frames"
)

// framesPagerMsg contains the result of the frame dump pager
type framesPagerMsg struct {
	err error
}

// PagerOps shows long text in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show hands the terminal to ov until the user quits it
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Don't write the document back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// FrameDump renders every live frame as one line per element, in layout order
func FrameDump(layout *Layout, snapshot map[frames.Handle]frames.Frame) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	type row struct {
		label string
		style string
	}
	var rows []row
	for _, e := range layout.Elements() {
		f, ok := snapshot[e.Handle]
		if !ok {
			continue
		}
		rows = append(rows, row{label: e.Label, style: f.Style()})
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Transform frames (%d)", len(rows))))
	b.WriteString("\n\n")
	if len(rows) == 0 {
		b.WriteString("no live frames\n")
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n", labelStyle.Render(fmt.Sprintf("%-10s", r.label)), r.style))
	}
	return b.String()
}
