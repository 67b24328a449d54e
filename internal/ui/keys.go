package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gridselect/internal/grid"
)

// KeyMap defines the application key bindings
type KeyMap struct {
	Navigate    key.Binding
	Extend      key.Binding
	Toggle      key.Binding
	RangeTo     key.Binding
	Clear       key.Binding
	SwitchModel key.Binding
	MultiSelect key.Binding
	Editor      key.Binding
	Refresh     key.Binding
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Navigate:    key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Extend:      key.NewBinding(key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"), key.WithHelp("shift+←↑↓→", "extend")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle row")),
		RangeTo:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "range to row")),
		Clear:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		SwitchModel: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cell/row model")),
		MultiSelect: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "multi-select")),
		Editor:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editor lock")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Save:        key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save config")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Extend, k.Toggle, k.SwitchModel, k.Editor, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Navigate, k.Extend},
		{k.Toggle, k.RangeTo, k.Clear},
		{k.SwitchModel, k.MultiSelect, k.Editor, k.Refresh},
		{k.Save, k.Help, k.Quit},
	}
}

// keyEventFromMsg translates a terminal key into a grid key event
func keyEventFromMsg(msg tea.KeyMsg) (grid.KeyEvent, bool) {
	var ev grid.KeyEvent
	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftUp, tea.KeyCtrlUp, tea.KeyCtrlShiftUp:
		ev.Which = grid.KeyUp
	case tea.KeyDown, tea.KeyShiftDown, tea.KeyCtrlDown, tea.KeyCtrlShiftDown:
		ev.Which = grid.KeyDown
	case tea.KeyLeft, tea.KeyShiftLeft, tea.KeyCtrlLeft, tea.KeyCtrlShiftLeft:
		ev.Which = grid.KeyLeft
	case tea.KeyRight, tea.KeyShiftRight, tea.KeyCtrlRight, tea.KeyCtrlShiftRight:
		ev.Which = grid.KeyRight
	case tea.KeyHome, tea.KeyShiftHome, tea.KeyCtrlHome, tea.KeyCtrlShiftHome:
		ev.Which = grid.KeyHome
	case tea.KeyEnd, tea.KeyShiftEnd, tea.KeyCtrlEnd, tea.KeyCtrlShiftEnd:
		ev.Which = grid.KeyEnd
	case tea.KeyPgUp, tea.KeyCtrlPgUp:
		ev.Which = grid.KeyPageUp
	case tea.KeyPgDown, tea.KeyCtrlPgDown:
		ev.Which = grid.KeyPageDown
	default:
		return ev, false
	}

	switch msg.Type {
	case tea.KeyShiftUp, tea.KeyShiftDown, tea.KeyShiftLeft, tea.KeyShiftRight,
		tea.KeyShiftHome, tea.KeyShiftEnd:
		ev.Shift = true
	case tea.KeyCtrlUp, tea.KeyCtrlDown, tea.KeyCtrlLeft, tea.KeyCtrlRight,
		tea.KeyCtrlHome, tea.KeyCtrlEnd, tea.KeyCtrlPgUp, tea.KeyCtrlPgDown:
		ev.Ctrl = true
	case tea.KeyCtrlShiftUp, tea.KeyCtrlShiftDown, tea.KeyCtrlShiftLeft, tea.KeyCtrlShiftRight,
		tea.KeyCtrlShiftHome, tea.KeyCtrlShiftEnd:
		ev.Shift = true
		ev.Ctrl = true
	}
	ev.Alt = msg.Alt
	return ev, true
}
