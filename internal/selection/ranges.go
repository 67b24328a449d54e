package selection

import (
	"gridselect/internal/domain"
	"gridselect/internal/grid"
)

// RangesEqual reports whether two selections have the same length and the
// same coordinates at every position
func RangesEqual(a, b []domain.Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RemoveInvalidRanges keeps the ranges whose two corners can both be selected
func RemoveInvalidRanges(g grid.Grid, ranges []domain.Range) []domain.Range {
	result := make([]domain.Range, 0, len(ranges))
	for _, r := range ranges {
		if g.CanCellBeSelected(r.FromRow, r.FromCell) && g.CanCellBeSelected(r.ToRow, r.ToCell) {
			result = append(result, r)
		}
	}
	return result
}

// RangesToRows expands ranges into the row indices they cover, in order
func RangesToRows(ranges []domain.Range) []int {
	var rows []int
	for _, r := range ranges {
		n := r.Normalize()
		for row := n.FromRow; row <= n.ToRow; row++ {
			rows = append(rows, row)
		}
	}
	return rows
}

// RowsToRanges turns each row into a range spanning columns 0..lastCell
func RowsToRanges(rows []int, lastCell int) []domain.Range {
	ranges := make([]domain.Range, 0, len(rows))
	for _, row := range rows {
		ranges = append(ranges, domain.Range{FromRow: row, FromCell: 0, ToRow: row, ToCell: lastCell})
	}
	return ranges
}

// rowsRange lists the rows top..bottom. When the boundaries have crossed
// (top > bottom) it lists bottom..top-1, which leaves the selection on the
// side the user is moving toward.
func rowsRange(top, bottom int) []int {
	var rows []int
	for i := top; i <= bottom; i++ {
		rows = append(rows, i)
	}
	for i := bottom; i < top; i++ {
		rows = append(rows, i)
	}
	return rows
}

func indexOf(rows []int, row int) int {
	for i, r := range rows {
		if r == row {
			return i
		}
	}
	return -1
}
