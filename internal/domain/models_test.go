package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRangeNormalizes(t *testing.T) {
	r := NewRange(5, 4, 1, 2)
	assert.Equal(t, Range{FromRow: 1, FromCell: 2, ToRow: 5, ToCell: 4}, r)
	assert.Equal(t, r, r.Normalize())
}

func TestRangeContains(t *testing.T) {
	r := NewRange(1, 1, 3, 2)

	assert.True(t, r.Contains(1, 1))
	assert.True(t, r.Contains(3, 2))
	assert.True(t, r.Contains(2, 2))
	assert.False(t, r.Contains(0, 1))
	assert.False(t, r.Contains(2, 3))

	// reversed corners behave the same
	reversed := Range{FromRow: 3, FromCell: 2, ToRow: 1, ToCell: 1}
	assert.True(t, reversed.Contains(2, 1))
}

func TestRangeShape(t *testing.T) {
	assert.True(t, CellRange(2, 3).IsSingleCell())
	assert.True(t, CellRange(2, 3).IsSingleRow())
	assert.False(t, NewRange(2, 0, 2, 4).IsSingleCell())
	assert.True(t, NewRange(2, 0, 2, 4).IsSingleRow())
	assert.False(t, NewRange(2, 0, 3, 0).IsSingleRow())
}

func TestRowRange(t *testing.T) {
	assert.Equal(t, Range{FromRow: 2, FromCell: 0, ToRow: 5, ToCell: 9}, RowRange(5, 2, 9))
	// lastCell is kept even for a grid without columns
	assert.Equal(t, Range{FromRow: 0, FromCell: 0, ToRow: 0, ToCell: -1}, RowRange(0, 0, -1))
}

func TestRangeCornersAndString(t *testing.T) {
	from, to := NewRange(1, 2, 3, 4).Corners()
	assert.Equal(t, Cell{Row: 1, Cell: 2}, from)
	assert.Equal(t, Cell{Row: 3, Cell: 4}, to)

	assert.Equal(t, "(1:2)", CellRange(1, 2).String())
	assert.Equal(t, "(1:2 - 3:4)", NewRange(1, 2, 3, 4).String())
}
