package grid

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"gridselect/internal/domain"
)

// Column describes one grid column
type Column struct {
	ID           string
	Name         string
	Width        int
	Unselectable bool // cells in this column never join a selection
	Unfocusable  bool // cells in this column never become active
}

// Lock is a simple editor lock
type Lock struct {
	active bool
}

func (l *Lock) IsActive() bool { return l.active }

// Activate marks an editor as open
func (l *Lock) Activate() { l.active = true }

// Deactivate marks the editor as closed
func (l *Lock) Deactivate() { l.active = false }

type overlay struct {
	r     domain.Range
	style lipgloss.Style
}

// Viewport is the visible window of the grid, in rows and columns
type Viewport struct {
	Top    int
	Left   int
	Height int
	Width  int
}

// Memory is an in-memory host grid. It owns the data, the active cell, the
// plugin registry and the viewport, and it drives its plugins through
// synchronous events the same way an interactive grid would.
type Memory struct {
	columns []Column
	data    [][]string
	options Options
	lock    *Lock

	activeCell   *domain.Cell
	unselectable map[domain.Cell]bool
	viewport     Viewport
	overlays     map[string]overlay

	plugins        []Plugin
	selectionModel SelectionModel
	selectionUnsub func()
	selected       []domain.Range

	dragging bool
	dragLast DragArgs

	onActiveCellChanged *Event[ActiveCellArgs]
	onKeyDown           *Event[KeyEvent]
	onClick             *Event[ClickArgs]
	onDragInit          *Event[DragArgs]
	onDragStart         *Event[DragArgs]
	onDrag              *Event[DragArgs]
	onDragEnd           *Event[DragArgs]
	onScrollIntoView    *Event[ScrollArgs]
	onSelectionChanged  *Event[SelectionChangedArgs]
}

// NewMemory creates a grid over the given columns and rows
func NewMemory(columns []Column, data [][]string, opts Options) *Memory {
	return &Memory{
		columns:      columns,
		data:         data,
		options:      opts,
		lock:         &Lock{},
		unselectable: make(map[domain.Cell]bool),
		overlays:     make(map[string]overlay),
		viewport:     Viewport{Height: len(data), Width: len(columns)},

		onActiveCellChanged: NewEvent[ActiveCellArgs]("onActiveCellChanged"),
		onKeyDown:           NewEvent[KeyEvent]("onKeyDown"),
		onClick:             NewEvent[ClickArgs]("onClick"),
		onDragInit:          NewEvent[DragArgs]("onDragInit"),
		onDragStart:         NewEvent[DragArgs]("onDragStart"),
		onDrag:              NewEvent[DragArgs]("onDrag"),
		onDragEnd:           NewEvent[DragArgs]("onDragEnd"),
		onScrollIntoView:    NewEvent[ScrollArgs]("onScrollIntoView"),
		onSelectionChanged:  NewEvent[SelectionChangedArgs]("onSelectionChanged"),
	}
}

// NewBlankMemory creates a rows x cols grid with empty cell values
func NewBlankMemory(rows, cols int, opts Options) *Memory {
	columns := make([]Column, cols)
	for i := range columns {
		columns[i] = Column{ID: columnName(i), Name: columnName(i), Width: 6}
	}
	data := make([][]string, rows)
	for i := range data {
		data[i] = make([]string, cols)
	}
	return NewMemory(columns, data, opts)
}

// columnName returns spreadsheet-style column letters: A..Z, AA..
func columnName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

func (m *Memory) OnActiveCellChanged() *Event[ActiveCellArgs]      { return m.onActiveCellChanged }
func (m *Memory) OnKeyDown() *Event[KeyEvent]                      { return m.onKeyDown }
func (m *Memory) OnClick() *Event[ClickArgs]                       { return m.onClick }
func (m *Memory) OnDragInit() *Event[DragArgs]                     { return m.onDragInit }
func (m *Memory) OnDragStart() *Event[DragArgs]                    { return m.onDragStart }
func (m *Memory) OnDrag() *Event[DragArgs]                         { return m.onDrag }
func (m *Memory) OnDragEnd() *Event[DragArgs]                      { return m.onDragEnd }
func (m *Memory) OnScrollIntoView() *Event[ScrollArgs]             { return m.onScrollIntoView }
func (m *Memory) OnSelectionChanged() *Event[SelectionChangedArgs] { return m.onSelectionChanged }

// Data access

func (m *Memory) Columns() []Column      { return m.columns }
func (m *Memory) ColumnCount() int       { return len(m.columns) }
func (m *Memory) DataLength() int        { return len(m.data) }
func (m *Memory) Options() Options       { return m.options }
func (m *Memory) EditorLock() EditorLock { return m.lock }

// Lock returns the concrete editor lock so hosts can open and close editors
func (m *Memory) Lock() *Lock { return m.lock }

// SetOptions replaces the grid options
func (m *Memory) SetOptions(opts Options) {
	m.options = opts
}

// Value returns the value at row, cell or "" when out of range
func (m *Memory) Value(row, cell int) string {
	if !m.inBounds(row, cell) || cell >= len(m.data[row]) {
		return ""
	}
	return m.data[row][cell]
}

// SetValue stores a value in an existing cell
func (m *Memory) SetValue(row, cell int, v string) {
	if !m.inBounds(row, cell) {
		return
	}
	for len(m.data[row]) <= cell {
		m.data[row] = append(m.data[row], "")
	}
	m.data[row][cell] = v
}

// SetData replaces the rows and re-validates the selection
func (m *Memory) SetData(data [][]string) {
	m.data = data
	if m.activeCell != nil && !m.inBounds(m.activeCell.Row, m.activeCell.Cell) {
		m.ResetActiveCell()
	}
	m.clampViewport()
	if m.selectionModel != nil {
		m.selectionModel.RefreshSelections()
	}
}

// SetColumns replaces the columns and re-validates the selection
func (m *Memory) SetColumns(columns []Column) {
	m.columns = columns
	if m.activeCell != nil && !m.inBounds(m.activeCell.Row, m.activeCell.Cell) {
		m.ResetActiveCell()
	}
	m.clampViewport()
	if m.selectionModel != nil {
		m.selectionModel.RefreshSelections()
	}
}

// MoveRows moves the given rows so they sit before insertBefore, keeping their order
func (m *Memory) MoveRows(rows []int, insertBefore int) {
	moving := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < len(m.data) {
			moving[r] = true
		}
	}
	if len(moving) == 0 {
		return
	}

	sorted := make([]int, 0, len(moving))
	for r := range moving {
		sorted = append(sorted, r)
	}
	sort.Ints(sorted)

	var before, after, moved [][]string
	for i, row := range m.data {
		switch {
		case moving[i]:
			continue
		case i < insertBefore:
			before = append(before, row)
		default:
			after = append(after, row)
		}
	}
	for _, r := range sorted {
		moved = append(moved, m.data[r])
	}

	data := make([][]string, 0, len(m.data))
	data = append(data, before...)
	data = append(data, moved...)
	data = append(data, after...)
	m.data = data
}

// Selectability

func (m *Memory) inBounds(row, cell int) bool {
	return row >= 0 && row < len(m.data) && cell >= 0 && cell < len(m.columns)
}

// SetCellSelectable marks a single cell as selectable or not
func (m *Memory) SetCellSelectable(row, cell int, selectable bool) {
	key := domain.Cell{Row: row, Cell: cell}
	if selectable {
		delete(m.unselectable, key)
	} else {
		m.unselectable[key] = true
	}
}

func (m *Memory) CanCellBeSelected(row, cell int) bool {
	if !m.inBounds(row, cell) || m.columns[cell].Unselectable {
		return false
	}
	return !m.unselectable[domain.Cell{Row: row, Cell: cell}]
}

func (m *Memory) CanCellBeActive(row, cell int) bool {
	return m.inBounds(row, cell) && !m.columns[cell].Unfocusable
}

// Active cell

func (m *Memory) ActiveCell() *domain.Cell {
	if m.activeCell == nil {
		return nil
	}
	c := *m.activeCell
	return &c
}

func (m *Memory) SetActiveCell(row, cell int, suppressEvent bool) {
	if !m.inBounds(row, cell) {
		return
	}
	m.activeCell = &domain.Cell{Row: row, Cell: cell}
	m.reveal(row, cell)
	if !suppressEvent {
		r, c := row, cell
		m.onActiveCellChanged.Notify(ActiveCellArgs{Row: &r, Cell: &c}, nil)
	}
}

// ResetActiveCell clears the active cell and notifies with an undefined cell
func (m *Memory) ResetActiveCell() {
	m.activeCell = nil
	m.onActiveCellChanged.Notify(ActiveCellArgs{}, nil)
}

// Viewport

// SetViewport sets the visible window size
func (m *Memory) SetViewport(height, width int) {
	m.viewport.Height = max(height, 1)
	m.viewport.Width = max(width, 1)
	m.clampViewport()
}

func (m *Memory) Viewport() Viewport { return m.viewport }

func (m *Memory) ScrollRowIntoView(row int) {
	m.onScrollIntoView.Notify(ScrollArgs{Row: row, Cell: -1}, nil)
	m.revealRow(row)
}

func (m *Memory) ScrollCellIntoView(row, cell int) {
	m.onScrollIntoView.Notify(ScrollArgs{Row: row, Cell: cell}, nil)
	m.reveal(row, cell)
}

func (m *Memory) reveal(row, cell int) {
	m.revealRow(row)
	if cell < 0 || cell >= len(m.columns) {
		return
	}
	if cell < m.viewport.Left {
		m.viewport.Left = cell
	} else if cell >= m.viewport.Left+m.viewport.Width {
		m.viewport.Left = cell - m.viewport.Width + 1
	}
}

func (m *Memory) revealRow(row int) {
	if row < 0 || row >= len(m.data) {
		return
	}
	if row < m.viewport.Top {
		m.viewport.Top = row
	} else if row >= m.viewport.Top+m.viewport.Height {
		m.viewport.Top = row - m.viewport.Height + 1
	}
}

func (m *Memory) clampViewport() {
	m.viewport.Top = max(0, min(m.viewport.Top, len(m.data)-m.viewport.Height))
	m.viewport.Left = max(0, min(m.viewport.Left, len(m.columns)-m.viewport.Width))
}

// Plugins

func (m *Memory) RegisterPlugin(p Plugin) error {
	if err := p.Init(m); err != nil {
		return err
	}
	m.plugins = append(m.plugins, p)
	return nil
}

func (m *Memory) UnregisterPlugin(p Plugin) {
	for i := len(m.plugins) - 1; i >= 0; i-- {
		if m.plugins[i] == p {
			m.plugins = append(m.plugins[:i:i], m.plugins[i+1:]...)
			p.Destroy()
			return
		}
	}
}

func (m *Memory) PluginByName(name string) Plugin {
	for i := len(m.plugins) - 1; i >= 0; i-- {
		if m.plugins[i].PluginName() == name {
			return m.plugins[i]
		}
	}
	return nil
}

// Plugins returns the registered plugins in registration order
func (m *Memory) Plugins() []Plugin {
	return append([]Plugin(nil), m.plugins...)
}

// SetSelectionModel binds sm to the grid, destroying the previous model.
// A nil sm only removes the current model.
func (m *Memory) SetSelectionModel(sm SelectionModel) error {
	if m.selectionModel != nil {
		m.selectionUnsub()
		m.selectionModel.Destroy()
		m.selectionModel = nil
		m.selected = nil
	}
	if sm == nil {
		return nil
	}

	if err := sm.Init(m); err != nil {
		return err
	}
	m.selectionModel = sm
	m.selectionUnsub = sm.OnSelectedRangesChanged().Subscribe(func(e *EventData, args SelectionChangedArgs) {
		m.selected = args.Ranges
		m.onSelectionChanged.Notify(args, nil)
	})
	return nil
}

func (m *Memory) SelectionModel() SelectionModel { return m.selectionModel }

// SelectedRanges returns the ranges last published by the selection model
func (m *Memory) SelectedRanges() []domain.Range {
	return m.selected
}

// IsCellSelected reports whether any selected range covers the cell
func (m *Memory) IsCellSelected(row, cell int) bool {
	for _, r := range m.selected {
		if r.Contains(row, cell) {
			return true
		}
	}
	return false
}

// Overlays

func (m *Memory) ShowOverlay(name string, r domain.Range, style lipgloss.Style) {
	m.overlays[name] = overlay{r: r.Normalize(), style: style}
}

func (m *Memory) HideOverlay(name string) {
	delete(m.overlays, name)
}

// Overlay returns the named overlay range, if shown
func (m *Memory) Overlay(name string) (domain.Range, bool) {
	o, ok := m.overlays[name]
	return o.r, ok
}

// OverlayStyleAt returns the style of an overlay covering the cell
func (m *Memory) OverlayStyleAt(row, cell int) (lipgloss.Style, bool) {
	for _, o := range m.overlays {
		if o.r.Contains(row, cell) {
			return o.style, true
		}
	}
	return lipgloss.Style{}, false
}

// Input

// KeyDown dispatches a key event to subscribers and then applies the
// default arrow-key navigation unless a handler claimed the key.
func (m *Memory) KeyDown(ev KeyEvent) *EventData {
	data := m.onKeyDown.Notify(ev, nil)
	if data.IsImmediatePropagationStopped() || data.IsDefaultPrevented() {
		return data
	}
	if !ev.Modifiers.None() {
		return data
	}

	switch ev.Which {
	case KeyLeft:
		m.navigate(0, -1)
	case KeyRight:
		m.navigate(0, 1)
	case KeyUp:
		m.navigate(-1, 0)
	case KeyDown:
		m.navigate(1, 0)
	case KeyPageUp:
		m.navigate(-max(m.viewport.Height-1, 1), 0)
	case KeyPageDown:
		m.navigate(max(m.viewport.Height-1, 1), 0)
	case KeyHome:
		if m.activeCell != nil {
			m.navigate(0, -m.activeCell.Cell)
		}
	case KeyEnd:
		if m.activeCell != nil {
			m.navigate(0, len(m.columns)-1-m.activeCell.Cell)
		}
	}
	return data
}

// navigate moves the active cell by the given offset, skipping cells that
// cannot be active along the way
func (m *Memory) navigate(dRow, dCell int) {
	if len(m.data) == 0 || len(m.columns) == 0 {
		return
	}
	if m.activeCell == nil {
		for c := range m.columns {
			if m.CanCellBeActive(0, c) {
				m.SetActiveCell(0, c, false)
				return
			}
		}
		return
	}

	row := max(0, min(m.activeCell.Row+dRow, len(m.data)-1))
	cell := m.activeCell.Cell + dCell
	step := 1
	if dCell < 0 {
		step = -1
	}
	for cell >= 0 && cell < len(m.columns) && !m.CanCellBeActive(row, cell) {
		cell += step
	}
	if cell < 0 || cell >= len(m.columns) {
		return
	}
	if row == m.activeCell.Row && cell == m.activeCell.Cell {
		return
	}
	m.SetActiveCell(row, cell, false)
}

// Click dispatches a click on a cell. When no handler stopped immediate
// propagation the clicked cell becomes active.
func (m *Memory) Click(row, cell int, mods Modifiers) *EventData {
	if !m.inBounds(row, cell) {
		return NewEventData()
	}
	data := m.onClick.Notify(ClickArgs{Row: row, Cell: cell, Modifiers: mods}, nil)
	if data.IsImmediatePropagationStopped() {
		return data
	}
	if m.CanCellBeActive(row, cell) {
		m.SetActiveCell(row, cell, false)
	}
	return data
}

// BeginDrag starts a drag gesture on a cell and reports whether a handler accepted it
func (m *Memory) BeginDrag(row, cell int) bool {
	m.dragging = false
	if !m.inBounds(row, cell) {
		return false
	}
	args := DragArgs{Row: row, Cell: cell}
	m.onDragInit.Notify(args, nil)
	data := m.onDragStart.Notify(args, nil)
	if data.Vetoed() {
		return false
	}
	m.dragging = true
	m.dragLast = args
	return true
}

// DragTo moves an accepted drag gesture to a cell, clamped to the grid
func (m *Memory) DragTo(row, cell int) {
	if !m.dragging {
		return
	}
	m.dragLast = DragArgs{
		Row:  max(0, min(row, len(m.data)-1)),
		Cell: max(0, min(cell, len(m.columns)-1)),
	}
	m.onDrag.Notify(m.dragLast, nil)
}

// EndDrag finishes the current drag gesture at its last position
func (m *Memory) EndDrag() {
	if !m.dragging {
		return
	}
	m.dragging = false
	m.onDragEnd.Notify(m.dragLast, nil)
}

// IsDragging reports whether a drag gesture is in progress
func (m *Memory) IsDragging() bool { return m.dragging }
