package domain

import "fmt"

// Cell identifies a single grid cell by row and column index
type Cell struct {
	Row  int
	Cell int
}

// Range is an axis-aligned rectangle of cells, inclusive on both ends.
// Ranges built through NewRange always satisfy From <= To on both axes.
type Range struct {
	FromRow  int
	FromCell int
	ToRow    int
	ToCell   int
}

// NewRange creates a range spanning the two corners in any order
func NewRange(fromRow, fromCell, toRow, toCell int) Range {
	return Range{
		FromRow:  min(fromRow, toRow),
		FromCell: min(fromCell, toCell),
		ToRow:    max(fromRow, toRow),
		ToCell:   max(fromCell, toCell),
	}
}

// CellRange creates a range covering exactly one cell
func CellRange(row, cell int) Range {
	return Range{FromRow: row, FromCell: cell, ToRow: row, ToCell: cell}
}

// RowRange creates a range covering rows from..to across columns 0..lastCell
func RowRange(fromRow, toRow, lastCell int) Range {
	return Range{FromRow: min(fromRow, toRow), FromCell: 0, ToRow: max(fromRow, toRow), ToCell: lastCell}
}

// Contains reports whether the cell lies inside the range
func (r Range) Contains(row, cell int) bool {
	n := r.Normalize()
	return row >= n.FromRow && row <= n.ToRow &&
		cell >= n.FromCell && cell <= n.ToCell
}

// Normalize returns the range with From <= To on both axes
func (r Range) Normalize() Range {
	return NewRange(r.FromRow, r.FromCell, r.ToRow, r.ToCell)
}

// IsSingleCell reports whether the range covers one cell
func (r Range) IsSingleCell() bool {
	return r.FromRow == r.ToRow && r.FromCell == r.ToCell
}

// IsSingleRow reports whether the range covers one row
func (r Range) IsSingleRow() bool {
	return r.FromRow == r.ToRow
}

// Corners returns the top-left and bottom-right cells
func (r Range) Corners() (Cell, Cell) {
	return Cell{Row: r.FromRow, Cell: r.FromCell}, Cell{Row: r.ToRow, Cell: r.ToCell}
}

func (r Range) String() string {
	if r.IsSingleCell() {
		return fmt.Sprintf("(%d:%d)", r.FromRow, r.FromCell)
	}
	return fmt.Sprintf("(%d:%d - %d:%d)", r.FromRow, r.FromCell, r.ToRow, r.ToCell)
}
