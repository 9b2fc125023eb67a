// Package render turns a parsed sheet model into styled HTML: the table
// skeleton, per-cell content, CSS classes, and positioned chart/image
// overlays.
package render

// Unit conversion constants for drawing coordinates.
// 1 inch = 914400 EMU = 96 px (at 96 DPI) = 72 pt.
const (
	// EMUPerInch is the number of EMUs (English Metric Units) per inch.
	EMUPerInch = 914400

	// EMUToPx converts EMU to pixels at 96 DPI.
	EMUToPx = 96.0 / EMUPerInch

	// EMUToPt converts EMU to points.
	EMUToPt = 72.0 / EMUPerInch

	// PtToPx converts points to pixels.
	PtToPx = 1.333
)

// Layout calibration constants. These are empirically tuned against a
// browser rendering target and are not derived from the file format;
// recalibrate before reusing them for a different target.
const (
	// ColWidthToPx converts Excel column-width character units to pixels.
	ColWidthToPx = 8.45

	// OverflowWidthThreshold is the display width (CJK glyphs count as 2)
	// above which an unwrapped cell spills into an empty right neighbor.
	OverflowWidthThreshold = 8
)

// Overlay size floors, keeping degenerate anchors visible.
const (
	MinChartWidthPx  = 50.0
	MinChartHeightPt = 50.0
	MinImageWidthPx  = 20.0
	MinImageHeightPt = 15.0
)

// Default image extent used when a picture anchor carries no terminal
// offset: roughly 1 inch wide by 0.31 inch tall.
const (
	DefaultImageWidthEMU  = 914400
	DefaultImageHeightEMU = 285750
)
