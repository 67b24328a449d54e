package selection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gridselect/internal/domain"
	"gridselect/internal/grid"
)

// plainGrid hides every capability of the wrapped grid except the Grid interface
type plainGrid struct {
	grid.Grid
}

// dragOnlyGrid can report drags but cannot draw overlays
type dragOnlyGrid struct {
	grid.Grid
	grid.Draggable
}

// bareGrid is a host with no optional capabilities. Plugins registered on it
// are bound to the bare host as well.
type bareGrid struct {
	grid.Grid
	plugins []grid.Plugin
}

func (b *bareGrid) RegisterPlugin(p grid.Plugin) error {
	if err := p.Init(b); err != nil {
		return err
	}
	b.plugins = append(b.plugins, p)
	return nil
}

func (b *bareGrid) UnregisterPlugin(p grid.Plugin) {
	for i, registered := range b.plugins {
		if registered == p {
			b.plugins = append(b.plugins[:i:i], b.plugins[i+1:]...)
			p.Destroy()
			return
		}
	}
}

func (b *bareGrid) PluginByName(name string) grid.Plugin {
	for _, p := range b.plugins {
		if p.PluginName() == name {
			return p
		}
	}
	return nil
}

func newTestGrid() *grid.Memory {
	return grid.NewBlankMemory(10, 10, grid.Options{MultiSelect: true})
}

// recorder collects change notifications
type recorder struct {
	calls []grid.SelectionChangedArgs
}

func record(t *testing.T, sm grid.SelectionModel) *recorder {
	t.Helper()
	r := &recorder{}
	sm.OnSelectedRangesChanged().Subscribe(func(_ *grid.EventData, args grid.SelectionChangedArgs) {
		r.calls = append(r.calls, args)
	})
	return r
}

func (r *recorder) last() grid.SelectionChangedArgs {
	return r.calls[len(r.calls)-1]
}

func install(t *testing.T, g *grid.Memory, sm grid.SelectionModel) {
	t.Helper()
	require.NoError(t, g.SetSelectionModel(sm))
}

func shift(k grid.Key) grid.KeyEvent {
	return grid.KeyEvent{Which: k, Modifiers: grid.Modifiers{Shift: true}}
}

// fakeSelector is a RangeSelector driven directly by tests
type fakeSelector struct {
	initErr   error
	destroyed int
	before    *grid.Event[domain.Cell]
	selecting *grid.Event[grid.RangeArgs]
	selected  *grid.Event[grid.RangeArgs]
}

func newFakeSelector() *fakeSelector {
	return &fakeSelector{
		before:    grid.NewEvent[domain.Cell]("before"),
		selecting: grid.NewEvent[grid.RangeArgs]("selecting"),
		selected:  grid.NewEvent[grid.RangeArgs]("selected"),
	}
}

func (s *fakeSelector) Init(grid.Grid) error { return s.initErr }
func (s *fakeSelector) Destroy()             { s.destroyed++ }
func (s *fakeSelector) PluginName() string   { return "FakeSelector" }

func (s *fakeSelector) OnBeforeCellRangeSelected() *grid.Event[domain.Cell] { return s.before }
func (s *fakeSelector) OnCellRangeSelecting() *grid.Event[grid.RangeArgs]   { return s.selecting }
func (s *fakeSelector) OnCellRangeSelected() *grid.Event[grid.RangeArgs]    { return s.selected }
