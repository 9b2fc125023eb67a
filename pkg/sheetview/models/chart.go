package models

// ChartKind distinguishes chart objects from embedded images; the two use
// different overlay position and size rules.
type ChartKind string

const (
	// KindChart is a plotted chart (bar, line, pie, ...).
	KindChart ChartKind = "chart"
	// KindImage is an embedded picture.
	KindImage ChartKind = "image"
)

// ChartSeries is one data series of a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// Categories holds the category labels, if any.
	Categories []string `json:"categories,omitempty"`
	// Values holds the series data points.
	Values []float64 `json:"values,omitempty"`
}

// ChartData holds the plottable content of a chart.
type ChartData struct {
	// Type is the chart type name (Bar, Line, Pie, ...).
	Type string `json:"type"`
	// Title is the chart title, if any.
	Title string `json:"title,omitempty"`
	// Series is the list of data series.
	Series []ChartSeries `json:"series,omitempty"`
}

// ChartPosition is a two-cell drawing anchor: a from cell and a to cell,
// each with a sub-cell offset in EMU. Row and column indices are 0-based.
type ChartPosition struct {
	FromRow       int   `json:"from_row"`
	FromCol       int   `json:"from_col"`
	FromRowOffset int64 `json:"from_row_offset"`
	FromColOffset int64 `json:"from_col_offset"`
	ToRow         int   `json:"to_row"`
	ToCol         int   `json:"to_col"`
	ToRowOffset   int64 `json:"to_row_offset"`
	ToColOffset   int64 `json:"to_col_offset"`
}

// Chart is a chart or image object anchored on a sheet.
type Chart struct {
	// Name is the drawing object name.
	Name string `json:"name"`
	// Kind tags the object as a chart or an image.
	Kind ChartKind `json:"kind"`
	// Anchor is the anchor cell reference ("B2"), informational only.
	Anchor string `json:"anchor,omitempty"`
	// Data is the plottable chart content, nil for images or when the
	// chart's series could not be read.
	Data *ChartData `json:"data,omitempty"`
	// Position is the drawing anchor, nil when the object carries no
	// positioning information.
	Position *ChartPosition `json:"position,omitempty"`
}
