package rangeselector

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"gridselect/internal/domain"
	"gridselect/internal/grid"
)

// PluginName identifies the selector in the grid plugin registry
const PluginName = "CellRangeSelector"

var (
	// BorderedSelectionStyle outlines the dragged rectangle
	BorderedSelectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("252")).Bold(true)

	// PlainSelectionStyle only tints the dragged rectangle
	PlainSelectionStyle = lipgloss.NewStyle().Background(lipgloss.Color("238"))
)

// Options configures a CellRangeSelector
type Options struct {
	SelectionStyle lipgloss.Style
	AutoScroll     bool
	// Decorator overrides the default overlay decorator
	Decorator Decorator
}

// CellRangeSelector turns a drag gesture on the grid into a candidate range.
// A gesture is reported as OnBeforeCellRangeSelected (cancelable), any number
// of OnCellRangeSelecting, and one OnCellRangeSelected.
type CellRangeSelector struct {
	options   Options
	grid      grid.Grid
	decorator Decorator
	handler   *grid.EventHandler

	dragging bool
	start    domain.Cell
	end      domain.Cell

	onBeforeCellRangeSelected *grid.Event[domain.Cell]
	onCellRangeSelecting      *grid.Event[grid.RangeArgs]
	onCellRangeSelected       *grid.Event[grid.RangeArgs]
}

// New creates a selector; it does nothing until registered with a grid
func New(opts Options) *CellRangeSelector {
	return &CellRangeSelector{
		options:                   opts,
		handler:                   grid.NewEventHandler(),
		onBeforeCellRangeSelected: grid.NewEvent[domain.Cell]("onBeforeCellRangeSelected"),
		onCellRangeSelecting:      grid.NewEvent[grid.RangeArgs]("onCellRangeSelecting"),
		onCellRangeSelected:       grid.NewEvent[grid.RangeArgs]("onCellRangeSelected"),
	}
}

func (s *CellRangeSelector) PluginName() string { return PluginName }

func (s *CellRangeSelector) OnBeforeCellRangeSelected() *grid.Event[domain.Cell] {
	return s.onBeforeCellRangeSelected
}

func (s *CellRangeSelector) OnCellRangeSelecting() *grid.Event[grid.RangeArgs] {
	return s.onCellRangeSelecting
}

func (s *CellRangeSelector) OnCellRangeSelected() *grid.Event[grid.RangeArgs] {
	return s.onCellRangeSelected
}

// Init binds the selector to the grid's drag gestures
func (s *CellRangeSelector) Init(g grid.Grid) error {
	dg, ok := g.(grid.Draggable)
	if !ok {
		return fmt.Errorf("cell range selector: %w", grid.ErrDraggableUnavailable)
	}

	decorator := s.options.Decorator
	if decorator == nil {
		d, err := NewCellRangeDecorator(g, s.options.SelectionStyle)
		if err != nil {
			return fmt.Errorf("cell range selector: %w", err)
		}
		decorator = d
	}

	s.grid = g
	s.decorator = decorator
	s.dragging = false
	grid.Subscribe(s.handler, dg.OnDragStart(), s.handleDragStart)
	grid.Subscribe(s.handler, dg.OnDrag(), s.handleDrag)
	grid.Subscribe(s.handler, dg.OnDragEnd(), s.handleDragEnd)
	return nil
}

// Destroy releases the grid subscriptions and clears any drawn rectangle
func (s *CellRangeSelector) Destroy() {
	s.handler.UnsubscribeAll()
	if s.decorator != nil {
		s.decorator.Hide()
	}
	s.dragging = false
}

// IsDragging reports whether a gesture is in progress
func (s *CellRangeSelector) IsDragging() bool {
	return s.dragging
}

// CurrentRange returns the rectangle of the gesture in progress
func (s *CellRangeSelector) CurrentRange() (domain.Range, bool) {
	if !s.dragging {
		return domain.Range{}, false
	}
	return domain.NewRange(s.start.Row, s.start.Cell, s.end.Row, s.end.Cell), true
}

func (s *CellRangeSelector) handleDragStart(e *grid.EventData, args grid.DragArgs) {
	start := domain.Cell{Row: args.Row, Cell: args.Cell}
	if s.onBeforeCellRangeSelected.Notify(start, nil).Vetoed() {
		return
	}
	if !s.grid.CanCellBeSelected(start.Row, start.Cell) {
		return
	}

	s.dragging = true
	s.start = start
	s.end = start
	e.StopImmediatePropagation()
	e.SetReturnValue(true)
	s.decorator.Show(domain.CellRange(start.Row, start.Cell))
}

func (s *CellRangeSelector) handleDrag(e *grid.EventData, args grid.DragArgs) {
	if !s.dragging {
		return
	}
	e.StopImmediatePropagation()

	if s.options.AutoScroll {
		s.grid.ScrollCellIntoView(args.Row, args.Cell)
	}
	if !s.grid.CanCellBeSelected(args.Row, args.Cell) {
		return
	}

	s.end = domain.Cell{Row: args.Row, Cell: args.Cell}
	r, _ := s.CurrentRange()
	s.decorator.Show(r)
	s.onCellRangeSelecting.Notify(grid.RangeArgs{Range: r}, nil)
}

func (s *CellRangeSelector) handleDragEnd(e *grid.EventData, args grid.DragArgs) {
	if !s.dragging {
		return
	}
	r, _ := s.CurrentRange()
	s.dragging = false
	e.StopImmediatePropagation()

	s.decorator.Hide()
	s.onCellRangeSelected.Notify(grid.RangeArgs{Range: r}, nil)
}
