package rowmove

import (
	"fmt"
	"sort"

	"gridselect/internal/grid"
)

// PluginName identifies the manager in the grid plugin registry
const PluginName = "RowMoveManager"

// MoveRowsArgs describes a pending or completed row move
type MoveRowsArgs struct {
	Rows         []int
	InsertBefore int
}

// Options configures a RowMoveManager
type Options struct {
	// ColumnIndex is the handle column; drags starting there move rows
	ColumnIndex int
}

// rowSelector is the part of a row selection model the manager uses
type rowSelector interface {
	SelectedRows() []int
	SetSelectedRows(rows []int)
}

// RowMoveManager reserves a handle column for reordering rows by drag.
// Selection models consult IsHandlerColumn so they leave those drags alone.
type RowMoveManager struct {
	options Options
	grid    grid.Grid
	handler *grid.EventHandler

	dragging     bool
	canMove      bool
	rows         []int
	insertBefore int

	onBeforeMoveRows *grid.Event[MoveRowsArgs]
	onMoveRows       *grid.Event[MoveRowsArgs]
}

// New creates a manager
func New(opts Options) *RowMoveManager {
	return &RowMoveManager{
		options:          opts,
		handler:          grid.NewEventHandler(),
		insertBefore:     -1,
		onBeforeMoveRows: grid.NewEvent[MoveRowsArgs]("onBeforeMoveRows"),
		onMoveRows:       grid.NewEvent[MoveRowsArgs]("onMoveRows"),
	}
}

func (r *RowMoveManager) PluginName() string { return PluginName }

// OnBeforeMoveRows fires while dragging; a false return value refuses the drop position
func (r *RowMoveManager) OnBeforeMoveRows() *grid.Event[MoveRowsArgs] { return r.onBeforeMoveRows }

// OnMoveRows fires when rows are dropped at an accepted position
func (r *RowMoveManager) OnMoveRows() *grid.Event[MoveRowsArgs] { return r.onMoveRows }

// IsHandlerColumn reports whether cell is the handle column
func (r *RowMoveManager) IsHandlerColumn(cell int) bool {
	return cell == r.options.ColumnIndex
}

// Init binds the manager to the grid's drag gestures
func (r *RowMoveManager) Init(g grid.Grid) error {
	dg, ok := g.(grid.Draggable)
	if !ok {
		return fmt.Errorf("row move manager: %w", grid.ErrDraggableUnavailable)
	}
	r.grid = g
	grid.Subscribe(r.handler, dg.OnDragStart(), r.handleDragStart)
	grid.Subscribe(r.handler, dg.OnDrag(), r.handleDrag)
	grid.Subscribe(r.handler, dg.OnDragEnd(), r.handleDragEnd)
	return nil
}

// Destroy releases the grid subscriptions
func (r *RowMoveManager) Destroy() {
	r.handler.UnsubscribeAll()
	r.reset()
}

// IsDragging reports whether rows are being moved
func (r *RowMoveManager) IsDragging() bool { return r.dragging }

// Pending returns the rows being moved and the current drop position
func (r *RowMoveManager) Pending() (MoveRowsArgs, bool) {
	if !r.dragging || !r.canMove {
		return MoveRowsArgs{}, false
	}
	return MoveRowsArgs{Rows: append([]int(nil), r.rows...), InsertBefore: r.insertBefore}, true
}

func (r *RowMoveManager) reset() {
	r.dragging = false
	r.canMove = false
	r.rows = nil
	r.insertBefore = -1
}

func (r *RowMoveManager) selector() rowSelector {
	host, ok := r.grid.(grid.SelectionModelHost)
	if !ok {
		return nil
	}
	sel, _ := host.SelectionModel().(rowSelector)
	return sel
}

func (r *RowMoveManager) handleDragStart(e *grid.EventData, args grid.DragArgs) {
	if !r.IsHandlerColumn(args.Cell) {
		return
	}
	if r.grid.EditorLock().IsActive() {
		e.SetReturnValue(false)
		return
	}

	rows := []int{args.Row}
	if sel := r.selector(); sel != nil {
		selected := sel.SelectedRows()
		if indexOf(selected, args.Row) >= 0 {
			rows = uniqueSorted(selected)
		} else {
			sel.SetSelectedRows(rows)
		}
	}

	r.dragging = true
	r.canMove = false
	r.rows = rows
	r.insertBefore = -1
	e.StopImmediatePropagation()
	e.SetReturnValue(true)
}

func (r *RowMoveManager) handleDrag(e *grid.EventData, args grid.DragArgs) {
	if !r.dragging {
		return
	}
	e.StopImmediatePropagation()

	insertBefore := DropPosition(r.rows, args.Row, r.grid.DataLength())
	if insertBefore < 0 {
		r.canMove = false
		return
	}

	data := r.onBeforeMoveRows.Notify(MoveRowsArgs{Rows: r.rows, InsertBefore: insertBefore}, nil)
	r.canMove = !data.Vetoed()
	r.insertBefore = insertBefore
}

func (r *RowMoveManager) handleDragEnd(e *grid.EventData, _ grid.DragArgs) {
	if !r.dragging {
		return
	}
	e.StopImmediatePropagation()

	if r.canMove && r.insertBefore >= 0 {
		r.onMoveRows.Notify(MoveRowsArgs{Rows: r.rows, InsertBefore: r.insertBefore}, nil)
	}
	r.reset()
}

// DropPosition returns the insert-before index for dropping sorted rows on
// the pointer row, or -1 when the drop would leave them where they are
func DropPosition(rows []int, pointerRow, dataLength int) int {
	if len(rows) == 0 || pointerRow < 0 || pointerRow >= dataLength {
		return -1
	}
	first, last := rows[0], rows[len(rows)-1]
	switch {
	case pointerRow < first:
		return pointerRow
	case pointerRow > last:
		return pointerRow + 1
	default:
		return -1
	}
}

// MovedRows returns the indices the moved rows occupy after the move
func MovedRows(rows []int, insertBefore int) []int {
	before := 0
	for _, row := range rows {
		if row < insertBefore {
			before++
		}
	}
	start := insertBefore - before
	moved := make([]int, len(rows))
	for i := range rows {
		moved[i] = start + i
	}
	return moved
}

// uniqueSorted returns a sorted copy of rows without duplicates;
// overlapping selected ranges report a row more than once
func uniqueSorted(rows []int) []int {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)
	out := sorted[:0]
	for _, row := range sorted {
		if len(out) == 0 || row != out[len(out)-1] {
			out = append(out, row)
		}
	}
	return out
}

func indexOf(rows []int, row int) int {
	for i, r := range rows {
		if r == row {
			return i
		}
	}
	return -1
}
