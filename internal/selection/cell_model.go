package selection

import (
	"fmt"

	"gridselect/internal/domain"
	"gridselect/internal/grid"
	"gridselect/internal/rangeselector"
)

// CellSelectionModel keeps a list of selected cell ranges. The selection
// follows the active cell and can be extended with Shift+arrow keys or
// replaced by a drag gesture.
type CellSelectionModel struct {
	options  CellOptions
	grid     grid.Grid
	ranges   []domain.Range
	selector RangeSelector
	handler  *grid.EventHandler

	// ownSelector is set when the model built its selector itself
	ownSelector   bool
	selectorBound bool

	onSelectedRangesChanged *grid.Event[grid.SelectionChangedArgs]
}

// NewCellSelectionModel creates a model. A default drag selector is built
// when opts does not carry one.
func NewCellSelectionModel(opts CellOptions) *CellSelectionModel {
	selector := opts.CellRangeSelector
	own := selector == nil
	if own {
		selector = rangeselector.New(rangeselector.Options{
			SelectionStyle: rangeselector.BorderedSelectionStyle,
		})
	}

	return &CellSelectionModel{
		options:                 opts,
		ranges:                  []domain.Range{},
		selector:                selector,
		handler:                 grid.NewEventHandler(),
		ownSelector:             own,
		onSelectedRangesChanged: grid.NewEvent[grid.SelectionChangedArgs]("onSelectedRangesChanged"),
	}
}

func (m *CellSelectionModel) PluginName() string { return CellSelectionModelName }

// OnSelectedRangesChanged fires once per actual change of the selection
func (m *CellSelectionModel) OnSelectedRangesChanged() *grid.Event[grid.SelectionChangedArgs] {
	return m.onSelectedRangesChanged
}

// Selector returns the drag selector the model listens to
func (m *CellSelectionModel) Selector() RangeSelector {
	return m.selector
}

// Init binds the model to g and registers its drag selector as a plugin.
// On a grid that cannot report drags or draw overlays the default selector
// is left out and only active-cell and keyboard selection work. An injected
// selector is always registered and its failure is returned.
func (m *CellSelectionModel) Init(g grid.Grid) error {
	m.grid = g
	grid.Subscribe(m.handler, g.OnActiveCellChanged(), m.handleActiveCellChange)
	grid.Subscribe(m.handler, g.OnKeyDown(), m.handleKeyDown)

	if m.ownSelector && !supportsDragSelection(g) {
		return nil
	}
	if err := g.RegisterPlugin(m.selector); err != nil {
		m.handler.UnsubscribeAll()
		return fmt.Errorf("cell selection model: %w", err)
	}
	m.selectorBound = true
	grid.Subscribe(m.handler, m.selector.OnCellRangeSelected(), m.handleCellRangeSelected)
	grid.Subscribe(m.handler, m.selector.OnBeforeCellRangeSelected(), m.handleBeforeCellRangeSelected)
	return nil
}

func supportsDragSelection(g grid.Grid) bool {
	_, draggable := g.(grid.Draggable)
	_, overlays := g.(grid.Overlayer)
	return draggable && overlays
}

// Destroy releases every subscription and unregisters the drag selector
func (m *CellSelectionModel) Destroy() {
	m.handler.UnsubscribeAll()
	if m.selectorBound {
		m.grid.UnregisterPlugin(m.selector)
		m.selectorBound = false
	}
}

// SelectedRanges returns the current selection. Callers must not modify it.
func (m *CellSelectionModel) SelectedRanges() []domain.Range {
	return m.ranges
}

// SetSelectedRanges stores the selectable subset of ranges and notifies
// observers when it differs from the current selection. An empty caller is
// replaced by the model's own tag.
func (m *CellSelectionModel) SetSelectedRanges(ranges []domain.Range, caller string) {
	if len(m.ranges) == 0 && len(ranges) == 0 {
		return
	}

	// without a grid there is nothing to validate against yet;
	// RefreshSelections filters once the model is bound
	valid := append([]domain.Range{}, ranges...)
	if m.grid != nil {
		valid = RemoveInvalidRanges(m.grid, ranges)
	}
	if RangesEqual(m.ranges, valid) {
		return
	}

	if caller == "" {
		caller = callerCellSetSelectedRanges
	}
	m.ranges = valid
	m.onSelectedRangesChanged.Notify(grid.SelectionChangedArgs{Ranges: m.ranges, Caller: caller}, nil)
}

// RefreshSelections re-validates the current selection against the grid
func (m *CellSelectionModel) RefreshSelections() {
	m.SetSelectedRanges(m.SelectedRanges(), "")
}

func (m *CellSelectionModel) handleBeforeCellRangeSelected(e *grid.EventData, _ domain.Cell) {
	if m.grid.EditorLock().IsActive() {
		e.StopPropagation()
		e.SetReturnValue(false)
	}
}

func (m *CellSelectionModel) handleCellRangeSelected(_ *grid.EventData, args grid.RangeArgs) {
	m.grid.SetActiveCell(args.Range.FromRow, args.Range.FromCell, true)
	m.SetSelectedRanges([]domain.Range{args.Range}, "")
}

func (m *CellSelectionModel) handleActiveCellChange(_ *grid.EventData, args grid.ActiveCellArgs) {
	switch {
	case m.options.SelectActiveCell && args.Row != nil && args.Cell != nil:
		m.SetSelectedRanges([]domain.Range{domain.CellRange(*args.Row, *args.Cell)}, "")
	case !m.options.SelectActiveCell:
		// clear the previous selection once the cell changes
		m.SetSelectedRanges(nil, "")
	}
}

func (m *CellSelectionModel) handleKeyDown(e *grid.EventData, ev grid.KeyEvent) {
	active := m.grid.ActiveCell()
	if active == nil || !ev.Shift || ev.Ctrl || ev.Meta || ev.Alt || !ev.Which.IsArrow() {
		return
	}

	ranges := append([]domain.Range(nil), m.SelectedRanges()...)
	if len(ranges) == 0 {
		ranges = append(ranges, domain.CellRange(active.Row, active.Cell))
	}

	// keyboard extension only works on the last range
	last := ranges[len(ranges)-1]
	ranges = ranges[:len(ranges)-1]
	if !last.Contains(active.Row, active.Cell) {
		last = domain.CellRange(active.Row, active.Cell)
	}

	dRow := last.ToRow - last.FromRow
	dCell := last.ToCell - last.FromCell
	dirRow, dirCell := -1, -1
	if active.Row == last.FromRow {
		dirRow = 1
	}
	if active.Cell == last.FromCell {
		dirCell = 1
	}

	switch ev.Which {
	case grid.KeyLeft:
		dCell -= dirCell
	case grid.KeyRight:
		dCell += dirCell
	case grid.KeyUp:
		dRow -= dirRow
	case grid.KeyDown:
		dRow += dirRow
	}

	next := domain.NewRange(active.Row, active.Cell, active.Row+dirRow*dRow, active.Cell+dirCell*dCell)
	if len(RemoveInvalidRanges(m.grid, []domain.Range{next})) > 0 {
		ranges = append(ranges, next)
		viewRow, viewCell := next.FromRow, next.FromCell
		if dirRow > 0 {
			viewRow = next.ToRow
		}
		if dirCell > 0 {
			viewCell = next.ToCell
		}
		m.grid.ScrollRowIntoView(viewRow)
		m.grid.ScrollCellIntoView(viewRow, viewCell)
	} else {
		ranges = append(ranges, last)
	}

	m.SetSelectedRanges(ranges, "")

	e.PreventDefault()
	e.StopPropagation()
}
