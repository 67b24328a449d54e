package selection

import (
	"fmt"
	"sort"

	"gridselect/internal/domain"
	"gridselect/internal/grid"
	"gridselect/internal/rangeselector"
)

// Plugin names consulted for row move handle columns
var rowMoveManagerNames = []string{"RowMoveManager", "CrossGridRowMoveManager"}

// RowSelectionModel keeps the selection as whole rows. Rows are selected by
// moving the active row, by Ctrl/Shift clicks, by Shift+Up/Down and, when
// enabled, by dragging over rows.
type RowSelectionModel struct {
	options  RowOptions
	grid     grid.Grid
	ranges   []domain.Range
	selector RangeSelector
	handler  *grid.EventHandler

	// inHandler is set while a grid event handler runs; nested grid events
	// raised by that handler are dropped
	inHandler bool

	onSelectedRangesChanged *grid.Event[grid.SelectionChangedArgs]
}

// NewRowSelectionModel creates a model with the given options
func NewRowSelectionModel(opts RowOptions) *RowSelectionModel {
	return &RowSelectionModel{
		options:                 opts,
		ranges:                  []domain.Range{},
		handler:                 grid.NewEventHandler(),
		onSelectedRangesChanged: grid.NewEvent[grid.SelectionChangedArgs]("onSelectedRangesChanged"),
	}
}

func (m *RowSelectionModel) PluginName() string { return RowSelectionModelName }

// OnSelectedRangesChanged fires on every non-empty update of the selection
func (m *RowSelectionModel) OnSelectedRangesChanged() *grid.Event[grid.SelectionChangedArgs] {
	return m.onSelectedRangesChanged
}

// Selector returns the drag selector, or nil when drag selection is off
func (m *RowSelectionModel) Selector() RangeSelector {
	return m.selector
}

// Init binds the model to g. It fails when g cannot report drag gestures, or
// when drag selection needs a default selector and g cannot draw its decorator.
func (m *RowSelectionModel) Init(g grid.Grid) error {
	if _, ok := g.(grid.Draggable); !ok {
		return fmt.Errorf("row selection model: %w", grid.ErrDraggableUnavailable)
	}

	selector := m.options.CellRangeSelector
	if selector == nil && m.options.DragToSelect {
		if _, ok := g.(grid.Overlayer); !ok {
			return fmt.Errorf("row selection model: drag to select: %w", grid.ErrDecoratorUnavailable)
		}
		selector = rangeselector.New(rangeselector.Options{
			SelectionStyle: rangeselector.PlainSelectionStyle,
			AutoScroll:     m.options.AutoScrollWhenDrag,
		})
	}

	m.grid = g
	m.selector = selector
	grid.Subscribe(m.handler, g.OnActiveCellChanged(), wrapHandler(m, m.handleActiveCellChange))
	grid.Subscribe(m.handler, g.OnKeyDown(), wrapHandler(m, m.handleKeyDown))
	grid.Subscribe(m.handler, g.OnClick(), wrapHandler(m, m.handleClick))

	if m.selector != nil {
		if err := g.RegisterPlugin(m.selector); err != nil {
			m.handler.UnsubscribeAll()
			return fmt.Errorf("row selection model: %w", err)
		}
		grid.Subscribe(m.handler, m.selector.OnCellRangeSelecting(), m.handleCellRangeSelected)
		grid.Subscribe(m.handler, m.selector.OnCellRangeSelected(), m.handleCellRangeSelected)
		grid.Subscribe(m.handler, m.selector.OnBeforeCellRangeSelected(), m.handleBeforeCellRangeSelected)
	}
	return nil
}

// Destroy releases every subscription and unregisters the drag selector
func (m *RowSelectionModel) Destroy() {
	m.handler.UnsubscribeAll()
	if m.selector != nil && m.grid != nil {
		m.grid.UnregisterPlugin(m.selector)
	}
}

// wrapHandler drops invocations that happen while another grid handler of
// the same model is still running
func wrapHandler[T any](m *RowSelectionModel, h grid.Handler[T]) grid.Handler[T] {
	return func(e *grid.EventData, args T) {
		if m.inHandler {
			return
		}
		m.inHandler = true
		defer func() { m.inHandler = false }()
		h(e, args)
	}
}

func (m *RowSelectionModel) lastCell() int {
	return m.grid.ColumnCount() - 1
}

func (m *RowSelectionModel) rowsToRanges(rows []int) []domain.Range {
	return RowsToRanges(rows, m.lastCell())
}

// SelectedRows returns the selected row indices in selection order
func (m *RowSelectionModel) SelectedRows() []int {
	return RangesToRows(m.ranges)
}

// SetSelectedRows selects the given rows
func (m *RowSelectionModel) SetSelectedRows(rows []int) {
	m.SetSelectedRanges(m.rowsToRanges(rows), callerRowSetSelectedRows)
}

// SelectedRanges returns the current selection. Callers must not modify it.
func (m *RowSelectionModel) SelectedRanges() []domain.Range {
	return m.ranges
}

// SetSelectedRanges replaces the selection and notifies observers. Only an
// empty-to-empty update is skipped; repeated identical selections notify
// every time.
func (m *RowSelectionModel) SetSelectedRanges(ranges []domain.Range, caller string) {
	if len(m.ranges) == 0 && len(ranges) == 0 {
		return
	}

	if caller == "" {
		caller = callerRowSetSelectedRanges
	}
	m.ranges = append([]domain.Range{}, ranges...)
	m.onSelectedRangesChanged.Notify(grid.SelectionChangedArgs{Ranges: m.ranges, Caller: caller}, nil)
}

// RefreshSelections re-derives the rows from the current ranges and applies them again
func (m *RowSelectionModel) RefreshSelections() {
	m.SetSelectedRows(m.SelectedRows())
}

func (m *RowSelectionModel) handleActiveCellChange(_ *grid.EventData, args grid.ActiveCellArgs) {
	if m.options.SelectActiveRow && args.Row != nil {
		m.SetSelectedRanges([]domain.Range{domain.RowRange(*args.Row, *args.Row, m.lastCell())}, "")
	}
}

func (m *RowSelectionModel) handleKeyDown(e *grid.EventData, ev grid.KeyEvent) {
	active := m.grid.ActiveCell()
	if !m.grid.Options().MultiSelect || active == nil {
		return
	}
	if !ev.Shift || ev.Ctrl || ev.Alt || ev.Meta || (ev.Which != grid.KeyUp && ev.Which != grid.KeyDown) {
		return
	}

	rows := m.SelectedRows()
	sort.Ints(rows)
	if len(rows) == 0 {
		rows = []int{active.Row}
	}

	top := rows[0]
	bottom := rows[len(rows)-1]
	var next int
	if ev.Which == grid.KeyDown {
		if active.Row < bottom || top == bottom {
			bottom++
			next = bottom
		} else {
			top++
			next = top
		}
	} else {
		if active.Row < bottom {
			bottom--
			next = bottom
		} else {
			top--
			next = top
		}
	}

	if next >= 0 && next < m.grid.DataLength() {
		m.grid.ScrollRowIntoView(next)
		m.SetSelectedRanges(m.rowsToRanges(rowsRange(top, bottom)), "")
	}

	e.PreventDefault()
	e.StopPropagation()
}

func (m *RowSelectionModel) handleClick(e *grid.EventData, args grid.ClickArgs) {
	if !m.grid.CanCellBeActive(args.Row, args.Cell) {
		return
	}
	toggle := args.Ctrl || args.Meta
	if !m.grid.Options().MultiSelect || (!toggle && !args.Shift) {
		return
	}

	selection := RangesToRows(m.ranges)
	idx := indexOf(selection, args.Row)

	switch {
	case idx == -1 && toggle:
		selection = append(selection, args.Row)
		m.grid.SetActiveCell(args.Row, args.Cell, false)
	case idx != -1 && toggle:
		kept := selection[:0]
		for _, row := range selection {
			if row != args.Row {
				kept = append(kept, row)
			}
		}
		selection = kept
		m.grid.SetActiveCell(args.Row, args.Cell, false)
	case len(selection) > 0 && args.Shift:
		// the most recently selected row anchors the range and stays last
		anchor := selection[len(selection)-1]
		from, to := min(args.Row, anchor), max(args.Row, anchor)
		selection = selection[:0]
		for row := from; row <= to; row++ {
			if row != anchor {
				selection = append(selection, row)
			}
		}
		selection = append(selection, anchor)
		m.grid.SetActiveCell(args.Row, args.Cell, false)
	}

	m.SetSelectedRanges(m.rowsToRanges(selection), "")
	e.StopImmediatePropagation()
	e.SetReturnValue(true)
}

func (m *RowSelectionModel) handleBeforeCellRangeSelected(e *grid.EventData, cell domain.Cell) {
	if m.grid.EditorLock().IsActive() || m.isRowMoveHandlerColumn(cell.Cell) {
		e.StopPropagation()
		e.SetReturnValue(false)
		return
	}
	m.grid.SetActiveCell(cell.Row, cell.Cell, false)
}

func (m *RowSelectionModel) isRowMoveHandlerColumn(cell int) bool {
	for _, name := range rowMoveManagerNames {
		if p := m.grid.PluginByName(name); p != nil {
			if checker, ok := p.(grid.HandlerColumnChecker); ok {
				return checker.IsHandlerColumn(cell)
			}
			return false
		}
	}
	return false
}

func (m *RowSelectionModel) handleCellRangeSelected(_ *grid.EventData, args grid.RangeArgs) {
	if !m.grid.Options().MultiSelect || !m.options.SelectActiveRow {
		return
	}
	r := args.Range.Normalize()
	m.SetSelectedRanges([]domain.Range{domain.RowRange(r.FromRow, r.ToRow, m.lastCell())}, "")
}
