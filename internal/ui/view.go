package ui

import (
	"fmt"
	"strings"
)

// Screen layout
const (
	gridTop        = 2 // title and column header lines
	footerLines    = 2 // status and help lines
	rowHeaderWidth = 5
)

// updateViewport sizes the grid viewport to the terminal
func (m *Model) updateViewport() {
	rows := max(m.height-gridTop-footerLines, 1)

	widest := 1
	for _, c := range m.grid.Columns() {
		widest = max(widest, c.Width)
	}
	cols := max((m.width-rowHeaderWidth)/(widest+1), 1)

	m.grid.SetViewport(rows, cols)
}

// visibleColumns returns the first and one-past-last visible column
func (m *Model) visibleColumns() (int, int) {
	vp := m.grid.Viewport()
	return vp.Left, min(vp.Left+vp.Width, m.grid.ColumnCount())
}

// cellAt maps a screen position to a grid cell
func (m *Model) cellAt(x, y int) (int, int, bool) {
	vp := m.grid.Viewport()
	if y < gridTop || y >= gridTop+vp.Height || x < rowHeaderWidth {
		return 0, 0, false
	}
	row := vp.Top + y - gridTop
	if row >= m.grid.DataLength() {
		return 0, 0, false
	}

	x -= rowHeaderWidth
	first, last := m.visibleColumns()
	columns := m.grid.Columns()
	for c := first; c < last; c++ {
		w := columns[c].Width + 1
		if x < w {
			return row, c, true
		}
		x -= w
	}
	return 0, 0, false
}

// clampedCellAt is cellAt for drags: positions outside the visible grid map
// to the row or column just beyond the edge so the drag can scroll
func (m *Model) clampedCellAt(x, y int) (int, int) {
	vp := m.grid.Viewport()

	var row int
	switch {
	case y < gridTop:
		row = vp.Top - 1
	case y >= gridTop+vp.Height:
		row = vp.Top + vp.Height
	default:
		row = vp.Top + y - gridTop
	}

	first, last := m.visibleColumns()
	if x < rowHeaderWidth {
		return row, first - 1
	}
	x -= rowHeaderWidth
	columns := m.grid.Columns()
	for c := first; c < last; c++ {
		w := columns[c].Width + 1
		if x < w {
			return row, c
		}
		x -= w
	}
	return row, last
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	vp := m.grid.Viewport()
	end := min(vp.Top+vp.Height, m.grid.DataLength())
	for row := vp.Top; row < end; row++ {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}
	for row := end; row < vp.Top+vp.Height; row++ {
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) renderTitle() string {
	parts := []string{
		m.styles.Title.Render("gridselect"),
		fmt.Sprintf("%s selection", m.modelKind),
		fmt.Sprintf("multi-select %s", onOff(m.grid.Options().MultiSelect)),
	}
	if m.grid.Lock().IsActive() {
		parts = append(parts, m.styles.Locked.Render("EDITING"))
	}
	if m.rowMove != nil && m.rowMove.IsDragging() {
		if pending, ok := m.rowMove.Pending(); ok {
			parts = append(parts, fmt.Sprintf("drop %d row(s) before %d", len(pending.Rows), pending.InsertBefore+1))
		}
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowHeaderWidth))
	first, last := m.visibleColumns()
	columns := m.grid.Columns()
	for c := first; c < last; c++ {
		b.WriteString(m.styles.Header.Render(fit(columns[c].Name, columns[c].Width)))
		b.WriteString(" ")
	}
	return b.String()
}

func (m *Model) renderRow(row int) string {
	var b strings.Builder
	b.WriteString(m.styles.RowHeader.Render(fmt.Sprintf("%*d ", rowHeaderWidth-1, row+1)))

	active := m.grid.ActiveCell()
	first, last := m.visibleColumns()
	columns := m.grid.Columns()
	for c := first; c < last; c++ {
		text := fit(m.grid.Value(row, c), columns[c].Width)

		style := m.styles.Cell
		if overlay, ok := m.grid.OverlayStyleAt(row, c); ok {
			style = overlay
		} else if active != nil && active.Row == row && active.Cell == c {
			style = m.styles.Active
		} else if m.grid.IsCellSelected(row, c) {
			style = m.styles.Selected
		} else if !m.grid.CanCellBeSelected(row, c) {
			style = m.styles.Unselectable
		}
		b.WriteString(style.Render(text))
		b.WriteString(" ")
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	var parts []string
	if m.config.UI.ShowCoordinates {
		if active := m.grid.ActiveCell(); active != nil {
			parts = append(parts, fmt.Sprintf("R%dC%d", active.Row, active.Cell))
		} else {
			parts = append(parts, "-")
		}
	}
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusError
		}
		parts = append(parts, style.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

// fit truncates or right-aligns s to exactly w runes
func fit(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		r = r[:w]
	}
	return fmt.Sprintf("%*s", w, string(r))
}
