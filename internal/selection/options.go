package selection

import (
	"gridselect/internal/domain"
	"gridselect/internal/grid"
)

// Default caller tags attached to change notifications
const (
	CellSelectionModelName = "CellSelectionModel"
	RowSelectionModelName  = "RowSelectionModel"

	callerCellSetSelectedRanges = "CellSelectionModel.SetSelectedRanges"
	callerRowSetSelectedRanges  = "RowSelectionModel.SetSelectedRanges"
	callerRowSetSelectedRows    = "RowSelectionModel.SetSelectedRows"
)

// RangeSelector is the drag-rectangle collaborator a model listens to
type RangeSelector interface {
	grid.Plugin
	OnBeforeCellRangeSelected() *grid.Event[domain.Cell]
	OnCellRangeSelecting() *grid.Event[grid.RangeArgs]
	OnCellRangeSelected() *grid.Event[grid.RangeArgs]
}

// CellOptions configures a CellSelectionModel
type CellOptions struct {
	// SelectActiveCell makes the selection follow the active cell.
	// When false, moving the active cell clears the selection.
	SelectActiveCell bool
	// CellRangeSelector replaces the default drag selector
	CellRangeSelector RangeSelector
}

// DefaultCellOptions returns the options used when none are given
func DefaultCellOptions() CellOptions {
	return CellOptions{SelectActiveCell: true}
}

// RowOptions configures a RowSelectionModel
type RowOptions struct {
	// SelectActiveRow makes the selection follow the active row
	SelectActiveRow bool
	// DragToSelect enables drag-rectangle row selection
	DragToSelect bool
	// AutoScrollWhenDrag is passed to the default drag selector
	AutoScrollWhenDrag bool
	// CellRangeSelector replaces the default drag selector
	CellRangeSelector RangeSelector
}

// DefaultRowOptions returns the options used when none are given
func DefaultRowOptions() RowOptions {
	return RowOptions{
		SelectActiveRow:    true,
		DragToSelect:       false,
		AutoScrollWhenDrag: true,
	}
}
