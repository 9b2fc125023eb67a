package models

// Default layout metrics used when a sheet does not override them. Column
// width is in Excel character units, row height in points.
const (
	DefaultColumnWidth = 9.0
	DefaultRowHeight   = 18.0
)

// Sheet is a fully materialized worksheet: ordered rows plus the layout
// metadata the renderer needs (merges, column widths, row heights, charts).
type Sheet struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Rows holds the sheet's rows in document order.
	Rows []Row `json:"rows"`
	// MergedCells lists merge ranges as range strings ("A1:B2").
	MergedCells []string `json:"merged_cells,omitempty"`
	// ColumnWidths maps 0-based column index to width in character units.
	ColumnWidths map[int]float64 `json:"column_widths,omitempty"`
	// RowHeights maps 0-based row index to height in points.
	RowHeights map[int]float64 `json:"row_heights,omitempty"`
	// DefaultColumnWidth is the width for columns absent from ColumnWidths.
	DefaultColumnWidth float64 `json:"default_column_width,omitempty"`
	// DefaultRowHeight is the height for rows absent from RowHeights.
	DefaultRowHeight float64 `json:"default_row_height,omitempty"`
	// Charts holds chart and image objects anchored on the sheet.
	Charts []Chart `json:"charts,omitempty"`
}

// ColumnWidth returns the width of a column, falling back to the sheet
// default and then the package default.
func (s *Sheet) ColumnWidth(col int) float64 {
	if w, ok := s.ColumnWidths[col]; ok {
		return w
	}
	if s.DefaultColumnWidth > 0 {
		return s.DefaultColumnWidth
	}
	return DefaultColumnWidth
}

// RowHeight returns the height of a row, falling back to the sheet default
// and then the package default.
func (s *Sheet) RowHeight(row int) float64 {
	if h, ok := s.RowHeights[row]; ok {
		return h
	}
	if s.DefaultRowHeight > 0 {
		return s.DefaultRowHeight
	}
	return DefaultRowHeight
}
