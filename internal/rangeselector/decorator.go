package rangeselector

import (
	"github.com/charmbracelet/lipgloss"

	"gridselect/internal/domain"
	"gridselect/internal/grid"
)

// Decorator draws the rectangle of an in-progress drag
type Decorator interface {
	Show(r domain.Range)
	Hide()
}

// CellRangeDecorator draws the drag rectangle as a named grid overlay
type CellRangeDecorator struct {
	overlayer grid.Overlayer
	name      string
	style     lipgloss.Style
	shown     bool
}

// NewCellRangeDecorator creates a decorator for g.
// It fails with grid.ErrDecoratorUnavailable when g cannot draw overlays.
func NewCellRangeDecorator(g grid.Grid, style lipgloss.Style) (*CellRangeDecorator, error) {
	ov, ok := g.(grid.Overlayer)
	if !ok {
		return nil, grid.ErrDecoratorUnavailable
	}
	return &CellRangeDecorator{
		overlayer: ov,
		name:      "cell-range-decorator",
		style:     style,
	}, nil
}

// Show draws r, replacing any previous rectangle
func (d *CellRangeDecorator) Show(r domain.Range) {
	d.overlayer.ShowOverlay(d.name, r, d.style)
	d.shown = true
}

// Hide removes the rectangle
func (d *CellRangeDecorator) Hide() {
	if !d.shown {
		return
	}
	d.overlayer.HideOverlay(d.name)
	d.shown = false
}

// Shown reports whether the rectangle is currently drawn
func (d *CellRangeDecorator) Shown() bool {
	return d.shown
}
