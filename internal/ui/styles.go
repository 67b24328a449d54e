package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	RowHeader    lipgloss.Style
	Cell         lipgloss.Style
	Active       lipgloss.Style
	Selected     lipgloss.Style
	Unselectable lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	Locked       lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
		RowHeader:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Cell:         lipgloss.NewStyle(),
		Active:       lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15")),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("226")),
		Unselectable: lipgloss.NewStyle().Faint(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Locked:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")), // yellow
		Help:         lipgloss.NewStyle().Faint(true),
	}
}
