package rangeselector

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

type dragOnlyGrid struct {
	grid.Grid
	grid.Draggable
}

type recordingDecorator struct {
	shown  []domain.Range
	hidden int
}

func (d *recordingDecorator) Show(r domain.Range) { d.shown = append(d.shown, r) }
func (d *recordingDecorator) Hide()               { d.hidden++ }

func newSelector(t *testing.T, opts Options) (*CellRangeSelector, *grid.Memory) {
	t.Helper()
	g := grid.NewBlankMemory(10, 10, grid.Options{})
	s := New(opts)
	require.NoError(t, g.RegisterPlugin(s))
	return s, g
}

func TestSelectorInitRequiresDraggable(t *testing.T) {
	g := grid.NewBlankMemory(2, 2, grid.Options{})

	err := New(Options{}).Init(plainGrid{Grid: g})

	assert.ErrorIs(t, err, grid.ErrDraggableUnavailable)
}

func TestSelectorInitRequiresOverlaysForDefaultDecorator(t *testing.T) {
	g := grid.NewBlankMemory(2, 2, grid.Options{})

	err := New(Options{}).Init(dragOnlyGrid{Grid: g, Draggable: g})
	assert.ErrorIs(t, err, grid.ErrDecoratorUnavailable)
	assert.Equal(t, 0, g.OnDragStart().HandlerCount())

	err = New(Options{Decorator: &recordingDecorator{}}).Init(dragOnlyGrid{Grid: g, Draggable: g})
	assert.NoError(t, err)
}

func TestSelectorDragGesture(t *testing.T) {
	s, g := newSelector(t, Options{SelectionStyle: PlainSelectionStyle})
	assert.Equal(t, "CellRangeSelector", s.PluginName())

	var before []domain.Cell
	var selecting, selected []domain.Range
	s.OnBeforeCellRangeSelected().Subscribe(func(_ *grid.EventData, c domain.Cell) { before = append(before, c) })
	s.OnCellRangeSelecting().Subscribe(func(_ *grid.EventData, a grid.RangeArgs) { selecting = append(selecting, a.Range) })
	s.OnCellRangeSelected().Subscribe(func(_ *grid.EventData, a grid.RangeArgs) { selected = append(selected, a.Range) })

	require.True(t, g.BeginDrag(4, 4))
	assert.True(t, s.IsDragging())
	assert.Equal(t, []domain.Cell{{Row: 4, Cell: 4}}, before)

	r, ok := g.Overlay("cell-range-decorator")
	require.True(t, ok)
	assert.Equal(t, domain.CellRange(4, 4), r)

	g.DragTo(2, 6)
	current, ok := s.CurrentRange()
	require.True(t, ok)
	assert.Equal(t, domain.NewRange(2, 4, 4, 6), current)
	r, _ = g.Overlay("cell-range-decorator")
	assert.Equal(t, current, r)

	g.EndDrag()
	assert.False(t, s.IsDragging())
	assert.Equal(t, []domain.Range{domain.NewRange(2, 4, 4, 6)}, selecting)
	assert.Equal(t, []domain.Range{domain.NewRange(2, 4, 4, 6)}, selected)
	_, ok = g.Overlay("cell-range-decorator")
	assert.False(t, ok)
	_, ok = s.CurrentRange()
	assert.False(t, ok)
}

func TestSelectorVetoedStart(t *testing.T) {
	s, g := newSelector(t, Options{})
	s.OnBeforeCellRangeSelected().Subscribe(func(e *grid.EventData, _ domain.Cell) { e.SetReturnValue(false) })
	selected := 0
	s.OnCellRangeSelected().Subscribe(func(_ *grid.EventData, _ grid.RangeArgs) { selected++ })

	g.BeginDrag(1, 1)
	g.DragTo(2, 2)
	g.EndDrag()

	assert.False(t, s.IsDragging())
	assert.Equal(t, 0, selected)
	_, ok := g.Overlay("cell-range-decorator")
	assert.False(t, ok)
}

func TestSelectorUnselectableStart(t *testing.T) {
	s, g := newSelector(t, Options{})
	g.SetCellSelectable(1, 1, false)

	g.BeginDrag(1, 1)

	assert.False(t, s.IsDragging())
}

func TestSelectorSkipsUnselectableCells(t *testing.T) {
	s, g := newSelector(t, Options{})
	g.SetCellSelectable(3, 3, false)

	require.True(t, g.BeginDrag(1, 1))
	g.DragTo(2, 2)
	g.DragTo(3, 3)

	current, _ := s.CurrentRange()
	assert.Equal(t, domain.NewRange(1, 1, 2, 2), current, "the last selectable position is kept")
}

func TestSelectorAutoScroll(t *testing.T) {
	tests := []struct {
		name       string
		autoScroll bool
		want       []grid.ScrollArgs
	}{
		{"enabled", true, []grid.ScrollArgs{{Row: 8, Cell: 7}}},
		{"disabled", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, g := newSelector(t, Options{AutoScroll: tt.autoScroll})
			var scrolls []grid.ScrollArgs
			g.OnScrollIntoView().Subscribe(func(_ *grid.EventData, a grid.ScrollArgs) { scrolls = append(scrolls, a) })

			require.True(t, g.BeginDrag(1, 1))
			g.DragTo(8, 7)

			assert.Equal(t, tt.want, scrolls)
		})
	}
}

func TestSelectorCustomDecorator(t *testing.T) {
	d := &recordingDecorator{}
	_, g := newSelector(t, Options{Decorator: d})

	g.BeginDrag(1, 1)
	g.DragTo(2, 3)
	g.EndDrag()

	assert.Equal(t, []domain.Range{domain.CellRange(1, 1), domain.NewRange(1, 1, 2, 3)}, d.shown)
	assert.Equal(t, 1, d.hidden)
	_, ok := g.Overlay("cell-range-decorator")
	assert.False(t, ok, "the grid overlay is not used")
}

func TestSelectorDestroy(t *testing.T) {
	s, g := newSelector(t, Options{})
	require.True(t, g.BeginDrag(1, 1))

	g.UnregisterPlugin(s)

	assert.False(t, s.IsDragging())
	assert.Equal(t, 0, g.OnDragStart().HandlerCount())
	_, ok := g.Overlay("cell-range-decorator")
	assert.False(t, ok, "the rectangle is cleared")
}

func TestCellRangeDecorator(t *testing.T) {
	g := grid.NewBlankMemory(5, 5, grid.Options{})

	_, err := NewCellRangeDecorator(plainGrid{Grid: g}, PlainSelectionStyle)
	assert.ErrorIs(t, err, grid.ErrDecoratorUnavailable)

	d, err := NewCellRangeDecorator(g, BorderedSelectionStyle)
	require.NoError(t, err)
	assert.False(t, d.Shown())

	d.Show(domain.NewRange(0, 0, 1, 1))
	assert.True(t, d.Shown())
	_, ok := g.OverlayStyleAt(1, 1)
	assert.True(t, ok)

	d.Hide()
	d.Hide()
	assert.False(t, d.Shown())
	_, ok = g.OverlayStyleAt(1, 1)
	assert.False(t, ok)
}
