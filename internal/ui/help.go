package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates the full help text shown in the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	line := func(k, desc string) string {
		return fmt.Sprintf("  %-14s %s\n", keyStyle.Render(k), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("gridselect Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(line("←↑↓→", "Move the active cell"))
	help.WriteString(line("Home/End", "First/last column"))
	help.WriteString(line("PgUp/PgDn", "Page up/down"))
	help.WriteString(line("click", "Activate a cell"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Cell selection"))
	help.WriteString("\n")
	help.WriteString(line("Shift+←↑↓→", "Extend the last range from the active cell"))
	help.WriteString(line("drag", "Select a rectangle"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Row selection"))
	help.WriteString("\n")
	help.WriteString(line("Shift+↑↓", "Extend the selected rows (multi-select)"))
	help.WriteString(line("Ctrl+click", "Toggle a row"))
	help.WriteString(line("Shift+click", "Select rows up to the clicked one"))
	help.WriteString(line(r.keys.Toggle.Help().Key, "Toggle the active row"))
	help.WriteString(line(r.keys.RangeTo.Help().Key, "Select rows up to the active one"))
	help.WriteString(line("drag", "Select rows (when drag to select is on)"))
	help.WriteString(line("drag on ≡", "Move rows (when the row move handle is on)"))
	help.WriteString("\n")
	help.WriteString(noteStyle.Render("  Many terminals do not report Ctrl/Shift on mouse events; use space and enter instead."))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(line(r.keys.Clear.Help().Key, "Clear the selection"))
	help.WriteString(line(r.keys.SwitchModel.Help().Key, "Switch between cell and row selection"))
	help.WriteString(line(r.keys.MultiSelect.Help().Key, "Toggle grid multi-select"))
	help.WriteString(line(r.keys.Editor.Help().Key, "Toggle the editor lock (blocks drag selection)"))
	help.WriteString(line(r.keys.Refresh.Help().Key, "Re-validate the selection"))
	help.WriteString(line(r.keys.Save.Help().Key, "Save the configuration"))
	help.WriteString(line(r.keys.Help.Help().Key, "Show this help"))
	help.WriteString(line(r.keys.Quit.Help().Key, "Quit"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	// Create a reader from the help content string
	reader := strings.NewReader(helpContent)

	// Create oviewer root from the reader
	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false

	root.SetConfig(config)

	// Run the oviewer (this will take over the terminal)
	return root.Run()
}
