package grid

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"gridselect/internal/domain"
)

var (
	// ErrDraggableUnavailable is returned when a plugin needs drag gestures
	// and the host grid does not implement Draggable
	ErrDraggableUnavailable = errors.New("grid does not support drag interactions")

	// ErrDecoratorUnavailable is returned when a range decorator is needed
	// and the host grid does not implement Overlayer
	ErrDecoratorUnavailable = errors.New("grid does not support range decorators")
)

// Options are the host grid options plugins may read
type Options struct {
	MultiSelect bool
}

// EditorLock reports whether an in-place editor currently owns input
type EditorLock interface {
	IsActive() bool
}

// Plugin is anything that binds itself to a grid for its lifetime
type Plugin interface {
	Init(g Grid) error
	Destroy()
	PluginName() string
}

// Grid is the host grid as seen by selection models and their collaborators
type Grid interface {
	OnActiveCellChanged() *Event[ActiveCellArgs]
	OnKeyDown() *Event[KeyEvent]
	OnClick() *Event[ClickArgs]

	CanCellBeSelected(row, cell int) bool
	CanCellBeActive(row, cell int) bool
	ActiveCell() *domain.Cell
	// SetActiveCell moves the active cell; OnActiveCellChanged fires
	// synchronously unless suppressEvent is set
	SetActiveCell(row, cell int, suppressEvent bool)

	ColumnCount() int
	DataLength() int
	Options() Options
	EditorLock() EditorLock

	ScrollRowIntoView(row int)
	ScrollCellIntoView(row, cell int)

	// RegisterPlugin calls p.Init and keeps p until it is unregistered
	RegisterPlugin(p Plugin) error
	// UnregisterPlugin removes p and calls its Destroy
	UnregisterPlugin(p Plugin)
	PluginByName(name string) Plugin
}

// SelectionModel owns the selection of a grid
type SelectionModel interface {
	Plugin
	SelectedRanges() []domain.Range
	SetSelectedRanges(ranges []domain.Range, caller string)
	RefreshSelections()
	OnSelectedRangesChanged() *Event[SelectionChangedArgs]
}

// Draggable is implemented by grids that report pointer drag gestures
type Draggable interface {
	OnDragInit() *Event[DragArgs]
	OnDragStart() *Event[DragArgs]
	OnDrag() *Event[DragArgs]
	OnDragEnd() *Event[DragArgs]
}

// Overlayer is implemented by grids that can draw named range overlays
type Overlayer interface {
	ShowOverlay(name string, r domain.Range, style lipgloss.Style)
	HideOverlay(name string)
}

// HandlerColumnChecker is implemented by plugins that reserve columns for their own gestures
type HandlerColumnChecker interface {
	IsHandlerColumn(cell int) bool
}

// SelectionModelHost is implemented by grids that expose their bound selection model
type SelectionModelHost interface {
	SelectionModel() SelectionModel
}
