package ui

import (
	"fmt"
	"strconv"

	"gridselect/internal/config"
	"gridselect/internal/grid"
	"gridselect/internal/rowmove"
	"gridselect/internal/selection"
)

// NewGrid builds the demo grid described by cfg
func NewGrid(cfg *config.Config) *grid.Memory {
	g := grid.NewBlankMemory(cfg.Grid.Rows, cfg.Grid.Columns, grid.Options{MultiSelect: cfg.Grid.MultiSelect})

	columns := g.Columns()
	for i := range columns {
		if cfg.Grid.ColumnWidth > 0 {
			columns[i].Width = cfg.Grid.ColumnWidth
		}
	}
	for _, c := range cfg.Grid.UnselectableColumns {
		if c >= 0 && c < len(columns) {
			columns[c].Unselectable = true
		}
	}
	for _, c := range cfg.Grid.UnfocusableColumns {
		if c >= 0 && c < len(columns) {
			columns[c].Unfocusable = true
		}
	}
	if cfg.RowMove.Enabled {
		columns[cfg.RowMove.HandleColumn].Name = "≡"
	}
	g.SetColumns(columns)

	for row := 0; row < cfg.Grid.Rows; row++ {
		for cell := 0; cell < cfg.Grid.Columns; cell++ {
			if cfg.RowMove.Enabled && cell == cfg.RowMove.HandleColumn {
				g.SetValue(row, cell, "≡")
				continue
			}
			g.SetValue(row, cell, strconv.Itoa((row+1)*(cell+1)))
		}
	}
	for _, pair := range cfg.Grid.UnselectableCells {
		if len(pair) == 2 {
			g.SetCellSelectable(pair[0], pair[1], false)
		}
	}
	return g
}

// NewSelectionModel builds the selection model named by kind
func NewSelectionModel(kind string, sel config.SelectionConfig) (grid.SelectionModel, error) {
	switch kind {
	case config.ModelCell:
		opts := selection.DefaultCellOptions()
		opts.SelectActiveCell = sel.SelectActiveCell
		return selection.NewCellSelectionModel(opts), nil
	case config.ModelRow:
		opts := selection.DefaultRowOptions()
		opts.SelectActiveRow = sel.SelectActiveRow
		opts.DragToSelect = sel.DragToSelect
		opts.AutoScrollWhenDrag = sel.AutoScrollWhenDrag
		return selection.NewRowSelectionModel(opts), nil
	default:
		return nil, fmt.Errorf("unknown selection model %q", kind)
	}
}

// NewRowMoveManager builds and registers the row move manager when enabled
func NewRowMoveManager(cfg *config.Config, g *grid.Memory) (*rowmove.RowMoveManager, error) {
	if !cfg.RowMove.Enabled {
		return nil, nil
	}
	rm := rowmove.New(rowmove.Options{ColumnIndex: cfg.RowMove.HandleColumn})
	if err := g.RegisterPlugin(rm); err != nil {
		return nil, fmt.Errorf("failed to register row move manager: %w", err)
	}
	return rm, nil
}
