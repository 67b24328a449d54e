package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gridselect/internal/config"
	"gridselect/internal/domain"
	"gridselect/internal/eventbus"
	"gridselect/internal/grid"
	"gridselect/internal/rowmove"
	"gridselect/internal/selection"
)

// mouseGesture tracks a left-button press until it is released
type mouseGesture struct {
	start    domain.Cell
	mods     grid.Modifiers
	started  bool // a drag was attempted
	accepted bool // a plugin claimed the drag
}

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService

	grid      *grid.Memory
	rowMove   *rowmove.RowMoveManager
	modelKind string

	keys    KeyMap
	help    help.Model
	styles  *Styles
	helpOps *HelpOps

	width     int
	height    int
	status    string
	statusErr bool
	gesture   *mouseGesture

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model for the grid described by cfg
func NewModel(bus eventbus.EventBus, svc config.ConfigService, cfg *config.Config) (*Model, error) {
	g := NewGrid(cfg)

	m := &Model{
		bus:       bus,
		config:    cfg,
		configSvc: svc,
		grid:      g,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		styles:    NewStyles(),
		helpOps:   NewHelpOps(nil),
	}

	rm, err := NewRowMoveManager(cfg, g)
	if err != nil {
		return nil, err
	}
	m.rowMove = rm
	if rm != nil {
		rm.OnMoveRows().Subscribe(m.handleMoveRows)
	}

	g.OnSelectionChanged().Subscribe(m.handleSelectionChanged)

	if err := m.useSelectionModel(cfg.Selection.Model); err != nil {
		return nil, err
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Grid returns the host grid driven by the UI
func (m *Model) Grid() *grid.Memory {
	return m.grid
}

// ModelKind returns the name of the active selection model kind
func (m *Model) ModelKind() string {
	return m.modelKind
}

// useSelectionModel replaces the grid's selection model with a new one of the given kind
func (m *Model) useSelectionModel(kind string) error {
	sm, err := NewSelectionModel(kind, m.config.Selection)
	if err != nil {
		return err
	}
	if err := m.grid.SetSelectionModel(sm); err != nil {
		return fmt.Errorf("failed to install %s selection model: %w", kind, err)
	}
	m.modelKind = kind
	return nil
}

func (m *Model) handleSelectionChanged(_ *grid.EventData, args grid.SelectionChangedArgs) {
	if m.bus == nil {
		return
	}
	name := ""
	if sm := m.grid.SelectionModel(); sm != nil {
		name = sm.PluginName()
	}
	m.bus.Publish(eventbus.SelectionChangedEvent{
		Model:  name,
		Ranges: append([]domain.Range(nil), args.Ranges...),
		Caller: args.Caller,
	})
}

func (m *Model) handleMoveRows(_ *grid.EventData, args rowmove.MoveRowsArgs) {
	m.grid.MoveRows(args.Rows, args.InsertBefore)
	if rs, ok := m.grid.SelectionModel().(*selection.RowSelectionModel); ok {
		rs.SetSelectedRows(rowmove.MovedRows(args.Rows, args.InsertBefore))
	}
	if m.bus != nil {
		m.bus.Publish(eventbus.RowsMovedEvent{Rows: append([]int(nil), args.Rows...), InsertBefore: args.InsertBefore})
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewport()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case EventMsg:
		m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("help pager failed: %v", msg.err))
		}
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m.fetchHelpPager(NewHelpRenderer(m.keys).RenderHelpContent())

	case key.Matches(msg, m.keys.SwitchModel):
		next := config.ModelRow
		if m.modelKind == config.ModelRow {
			next = config.ModelCell
		}
		if err := m.useSelectionModel(next); err != nil {
			m.setError(err.Error())
			return nil
		}
		m.setStatus(fmt.Sprintf("%s selection", next))

	case key.Matches(msg, m.keys.MultiSelect):
		opts := m.grid.Options()
		opts.MultiSelect = !opts.MultiSelect
		m.grid.SetOptions(opts)
		m.config.Grid.MultiSelect = opts.MultiSelect
		m.setStatus(fmt.Sprintf("multi-select %s", onOff(opts.MultiSelect)))

	case key.Matches(msg, m.keys.Editor):
		lock := m.grid.Lock()
		if lock.IsActive() {
			lock.Deactivate()
		} else {
			lock.Activate()
		}
		m.setStatus(fmt.Sprintf("editor lock %s", onOff(lock.IsActive())))

	case key.Matches(msg, m.keys.Refresh):
		if sm := m.grid.SelectionModel(); sm != nil {
			sm.RefreshSelections()
		}

	case key.Matches(msg, m.keys.Clear):
		if sm := m.grid.SelectionModel(); sm != nil {
			sm.SetSelectedRanges(nil, "")
		}

	case key.Matches(msg, m.keys.Save):
		m.config.Selection.Model = m.modelKind
		if err := m.configSvc.Save(m.config); err != nil {
			m.setError(err.Error())
		}

	case key.Matches(msg, m.keys.Toggle):
		m.clickActive(grid.Modifiers{Ctrl: true})

	case key.Matches(msg, m.keys.RangeTo):
		m.clickActive(grid.Modifiers{Shift: true})

	default:
		if ev, ok := keyEventFromMsg(msg); ok {
			m.grid.KeyDown(ev)
		}
	}
	return nil
}

// clickActive clicks the active cell with modifiers, for terminals that do not report them on mouse events
func (m *Model) clickActive(mods grid.Modifiers) {
	active := m.grid.ActiveCell()
	if active == nil {
		return
	}
	m.grid.Click(active.Row, active.Cell, mods)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		row, cell, ok := m.cellAt(msg.X, msg.Y)
		if !ok {
			m.gesture = nil
			return
		}
		m.gesture = &mouseGesture{
			start: domain.Cell{Row: row, Cell: cell},
			mods:  grid.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl, Alt: msg.Alt},
		}

	case tea.MouseActionMotion:
		if m.gesture == nil {
			return
		}
		if !m.gesture.started {
			m.gesture.started = true
			m.gesture.accepted = m.grid.BeginDrag(m.gesture.start.Row, m.gesture.start.Cell)
		}
		if m.gesture.accepted {
			row, cell := m.clampedCellAt(msg.X, msg.Y)
			m.grid.DragTo(row, cell)
		}

	case tea.MouseActionRelease:
		gesture := m.gesture
		m.gesture = nil
		if gesture == nil {
			return
		}
		switch {
		case gesture.accepted:
			m.grid.EndDrag()
		case !gesture.started:
			m.grid.Click(gesture.start.Row, gesture.start.Cell, gesture.mods)
		}
	}
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.SelectionChangedEvent:
		m.setStatus(fmt.Sprintf("%s: %s", e.Model, describeRanges(e.Ranges)))
	case eventbus.RowsMovedEvent:
		m.setStatus(fmt.Sprintf("moved %d row(s) before row %d", len(e.Rows), e.InsertBefore))
	case eventbus.ConfigSavedEvent:
		m.setStatus(fmt.Sprintf("saved %s", e.Path))
	case eventbus.ConfigLoadedEvent:
		m.setStatus(fmt.Sprintf("loaded %s", e.Path))
	case eventbus.ErrorEvent:
		log.Printf("UI error: %s: %v", e.Message, e.Err)
		m.setError(e.Message)
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(helpContent)}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func describeRanges(ranges []domain.Range) string {
	switch len(ranges) {
	case 0:
		return "nothing selected"
	case 1:
		return ranges[0].String()
	default:
		return fmt.Sprintf("%d ranges, last %s", len(ranges), ranges[len(ranges)-1])
	}
}
