package rowmove

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridselect/internal/domain"
	"gridselect/internal/grid"
)

type plainGrid struct {
	grid.Grid
}

// rowsModel is a minimal row selection model for the manager to consult
type rowsModel struct {
	rows    []int
	changed *grid.Event[grid.SelectionChangedArgs]
}

func newRowsModel() *rowsModel {
	return &rowsModel{changed: grid.NewEvent[grid.SelectionChangedArgs]("changed")}
}

func (m *rowsModel) Init(grid.Grid) error { return nil }
func (m *rowsModel) Destroy()             {}
func (m *rowsModel) PluginName() string   { return "rows" }

func (m *rowsModel) SelectedRanges() []domain.Range           { return nil }
func (m *rowsModel) SetSelectedRanges([]domain.Range, string) {}
func (m *rowsModel) RefreshSelections()                       {}
func (m *rowsModel) SelectedRows() []int                      { return m.rows }
func (m *rowsModel) SetSelectedRows(rows []int)               { m.rows = rows }

func (m *rowsModel) OnSelectedRangesChanged() *grid.Event[grid.SelectionChangedArgs] {
	return m.changed
}

func newManager(t *testing.T) (*RowMoveManager, *grid.Memory, *rowsModel) {
	t.Helper()
	g := grid.NewBlankMemory(10, 4, grid.Options{MultiSelect: true})
	sel := newRowsModel()
	require.NoError(t, g.SetSelectionModel(sel))
	r := New(Options{ColumnIndex: 0})
	require.NoError(t, g.RegisterPlugin(r))
	return r, g, sel
}

func TestManagerInitRequiresDraggable(t *testing.T) {
	g := grid.NewBlankMemory(2, 2, grid.Options{})

	err := New(Options{}).Init(plainGrid{Grid: g})

	assert.ErrorIs(t, err, grid.ErrDraggableUnavailable)
}

func TestManagerHandlerColumn(t *testing.T) {
	r := New(Options{ColumnIndex: 2})

	assert.Equal(t, "RowMoveManager", r.PluginName())
	assert.True(t, r.IsHandlerColumn(2))
	assert.False(t, r.IsHandlerColumn(0))
}

func TestManagerMovesSelectedRows(t *testing.T) {
	r, g, sel := newManager(t)
	sel.rows = []int{5, 3}

	var before, moved []MoveRowsArgs
	r.OnBeforeMoveRows().Subscribe(func(_ *grid.EventData, a MoveRowsArgs) { before = append(before, a) })
	r.OnMoveRows().Subscribe(func(_ *grid.EventData, a MoveRowsArgs) { moved = append(moved, a) })

	require.True(t, g.BeginDrag(3, 0))
	assert.True(t, r.IsDragging())

	g.DragTo(4, 0) // inside the moving block
	_, ok := r.Pending()
	assert.False(t, ok)

	g.DragTo(1, 0)
	pending, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, MoveRowsArgs{Rows: []int{3, 5}, InsertBefore: 1}, pending)

	g.EndDrag()
	assert.False(t, r.IsDragging())
	assert.Equal(t, []MoveRowsArgs{{Rows: []int{3, 5}, InsertBefore: 1}}, before)
	assert.Equal(t, []MoveRowsArgs{{Rows: []int{3, 5}, InsertBefore: 1}}, moved)
}

func TestManagerSelectsUnselectedRow(t *testing.T) {
	r, g, sel := newManager(t)
	sel.rows = []int{1}

	require.True(t, g.BeginDrag(6, 0))
	assert.Equal(t, []int{6}, sel.rows)

	g.DragTo(9, 0)
	pending, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, MoveRowsArgs{Rows: []int{6}, InsertBefore: 10}, pending)
}

func TestManagerMovesOverlappingSelectionOnce(t *testing.T) {
	r, g, sel := newManager(t)
	sel.rows = []int{2, 3, 4, 3}

	require.True(t, g.BeginDrag(3, 0))
	g.DragTo(7, 0)

	pending, ok := r.Pending()
	require.True(t, ok)
	assert.Equal(t, MoveRowsArgs{Rows: []int{2, 3, 4}, InsertBefore: 8}, pending)
	assert.Equal(t, []int{5, 6, 7}, MovedRows(pending.Rows, pending.InsertBefore))
	assert.Equal(t, []int{2, 3, 4, 3}, sel.rows, "the model's rows are left as they were")
}

func TestManagerIgnoresOtherColumns(t *testing.T) {
	r, g, _ := newManager(t)

	g.BeginDrag(3, 1)

	assert.False(t, r.IsDragging())
}

func TestManagerEditorLockVetoes(t *testing.T) {
	r, g, _ := newManager(t)
	g.Lock().Activate()

	assert.False(t, g.BeginDrag(3, 0))
	assert.False(t, r.IsDragging())
}

func TestManagerBeforeMoveVeto(t *testing.T) {
	r, g, _ := newManager(t)
	r.OnBeforeMoveRows().Subscribe(func(e *grid.EventData, _ MoveRowsArgs) { e.SetReturnValue(false) })
	moved := 0
	r.OnMoveRows().Subscribe(func(_ *grid.EventData, _ MoveRowsArgs) { moved++ })

	require.True(t, g.BeginDrag(3, 0))
	g.DragTo(0, 0)
	_, ok := r.Pending()
	assert.False(t, ok)
	g.EndDrag()

	assert.Equal(t, 0, moved)
}

func TestManagerDestroy(t *testing.T) {
	r, g, _ := newManager(t)
	require.True(t, g.BeginDrag(3, 0))

	g.UnregisterPlugin(r)

	assert.False(t, r.IsDragging())
	assert.Equal(t, 0, g.OnDragStart().HandlerCount())
}

func TestDropPosition(t *testing.T) {
	tests := []struct {
		name    string
		rows    []int
		pointer int
		want    int
	}{
		{"above", []int{3, 4}, 1, 1},
		{"below", []int{3, 4}, 7, 8},
		{"inside", []int{3, 5}, 4, -1},
		{"on first", []int{3, 5}, 3, -1},
		{"out of range", []int{3}, 10, -1},
		{"negative", []int{3}, -1, -1},
		{"no rows", nil, 2, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DropPosition(tt.rows, tt.pointer, 10))
		})
	}
}

func TestMovedRows(t *testing.T) {
	assert.Equal(t, []int{1, 2}, MovedRows([]int{3, 4}, 1))
	assert.Equal(t, []int{6, 7}, MovedRows([]int{3, 4}, 8))
	assert.Equal(t, []int{8, 9}, MovedRows([]int{1, 2}, 10))
	assert.Empty(t, MovedRows(nil, 0))
}
