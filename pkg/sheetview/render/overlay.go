package render

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// OverlayBox is the computed placement of a chart or image over the
// table. Left and Width are pixels; Top and Height are points and are
// converted to pixels on output.
type OverlayBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// PositionCalculator converts drawing anchors into overlay boxes using
// the sheet's column-width and row-height metadata.
type PositionCalculator struct {
	sheet *models.Sheet
}

// NewPositionCalculator returns a calculator for one sheet.
func NewPositionCalculator(sheet *models.Sheet) *PositionCalculator {
	return &PositionCalculator{sheet: sheet}
}

// cellOrigin returns the top-left corner of a cell: the cumulative size
// of all columns and rows strictly before it. X is pixels, Y is points.
func (c *PositionCalculator) cellOrigin(col, row int) (x, y float64) {
	for i := 0; i < col; i++ {
		x += c.sheet.ColumnWidth(i) * ColWidthToPx
	}
	for i := 0; i < row; i++ {
		y += c.sheet.RowHeight(i)
	}
	return x, y
}

// ChartBox computes the overlay box for a plotted chart anchor.
func (c *PositionCalculator) ChartBox(pos *models.ChartPosition) OverlayBox {
	x, y := c.cellOrigin(pos.FromCol, pos.FromRow)
	return OverlayBox{
		Left:   x + float64(pos.FromColOffset)*EMUToPx,
		Top:    y + float64(pos.FromRowOffset)*EMUToPt,
		Width:  c.chartWidth(pos),
		Height: c.chartHeight(pos),
	}
}

// ImageBox computes the overlay box for an embedded picture anchor.
// Unlike charts, image extents derive from the raw offset difference
// rather than accumulated cell sizes.
func (c *PositionCalculator) ImageBox(pos *models.ChartPosition) OverlayBox {
	x, y := c.cellOrigin(pos.FromCol, pos.FromRow)
	return OverlayBox{
		Left:   x + float64(pos.FromColOffset)*EMUToPx,
		Top:    y + float64(pos.FromRowOffset)*EMUToPt,
		Width:  c.imageWidth(pos),
		Height: c.imageHeight(pos),
	}
}

// Box dispatches on the object kind.
func (c *PositionCalculator) Box(chart models.Chart) OverlayBox {
	if chart.Kind == models.KindImage {
		return c.ImageBox(chart.Position)
	}
	return c.ChartBox(chart.Position)
}

func (c *PositionCalculator) chartWidth(pos *models.ChartPosition) float64 {
	var w float64
	if pos.FromCol == pos.ToCol {
		w = float64(pos.ToColOffset-pos.FromColOffset) * EMUToPx
	} else {
		// Remaining width of the anchor column past the offset, plus
		// every full column strictly between anchor and terminal.
		w = c.sheet.ColumnWidth(pos.FromCol)*ColWidthToPx - float64(pos.FromColOffset)*EMUToPx
		for i := pos.FromCol + 1; i < pos.ToCol; i++ {
			w += c.sheet.ColumnWidth(i) * ColWidthToPx
		}
		// A zero terminal offset means the object occupies the whole
		// terminal column, not that it ends at its left edge.
		if pos.ToColOffset == 0 {
			w += c.sheet.ColumnWidth(pos.ToCol) * ColWidthToPx
		} else {
			w += float64(pos.ToColOffset) * EMUToPx
		}
	}
	return max(MinChartWidthPx, w)
}

func (c *PositionCalculator) chartHeight(pos *models.ChartPosition) float64 {
	var h float64
	if pos.FromRow == pos.ToRow {
		h = float64(pos.ToRowOffset-pos.FromRowOffset) * EMUToPt
	} else {
		h = c.sheet.RowHeight(pos.FromRow) - float64(pos.FromRowOffset)*EMUToPt
		for i := pos.FromRow + 1; i < pos.ToRow; i++ {
			h += c.sheet.RowHeight(i)
		}
		if pos.ToRowOffset == 0 {
			h += c.sheet.RowHeight(pos.ToRow)
		} else {
			h += float64(pos.ToRowOffset) * EMUToPt
		}
	}
	return max(MinChartHeightPt, h)
}

func (c *PositionCalculator) imageWidth(pos *models.ChartPosition) float64 {
	emu := pos.ToColOffset - pos.FromColOffset
	if pos.ToColOffset == 0 {
		emu = DefaultImageWidthEMU
	}
	return max(MinImageWidthPx, float64(emu)*EMUToPx)
}

func (c *PositionCalculator) imageHeight(pos *models.ChartPosition) float64 {
	emu := pos.ToRowOffset - pos.FromRowOffset
	if pos.ToRowOffset == 0 {
		emu = DefaultImageHeightEMU
	}
	return max(MinImageHeightPt, float64(emu)*EMUToPt)
}

// WrapOverlay wraps already-rendered chart or image markup in an
// absolutely positioned element at the box's coordinates, layered above
// the table. Point values convert to pixels here.
func WrapOverlay(box OverlayBox, inner string) string {
	return fmt.Sprintf(
		`<div class="chart-overlay" style="position: absolute; left: %.1fpx; top: %.1fpx; width: %.1fpx; height: %.1fpx; z-index: 10;">%s</div>`,
		box.Left, box.Top*PtToPx, box.Width, box.Height*PtToPx, inner)
}

// OverlayCharts renders every positioned chart and image of a sheet as
// absolutely positioned overlay fragments. A failing chart body becomes
// an inline error placeholder, never an error.
func OverlayCharts(sheet *models.Sheet, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}
	calc := NewPositionCalculator(sheet)
	var parts []string
	for _, chart := range sheet.Charts {
		if chart.Position == nil {
			continue
		}
		box := calc.Box(chart)
		body := chartBody(chart, box, logger)
		parts = append(parts, WrapOverlay(box, body))
	}
	return strings.Join(parts, "\n")
}

// chartBody renders the inner markup of an overlay: an SVG plot for
// charts with data, a frame for images, a placeholder otherwise.
func chartBody(chart models.Chart, box OverlayBox, logger *zap.Logger) string {
	if chart.Kind == models.KindImage {
		return fmt.Sprintf(`<div class="image-frame" data-name="%s"></div>`, html.EscapeString(chart.Name))
	}
	if chart.Data == nil {
		return `<div class="chart-placeholder">Chart data not available</div>`
	}
	svg, err := ChartSVG(chart.Data, int(box.Width), int(box.Height*PtToPx))
	if err != nil {
		logger.Warn("chart rendering failed",
			zap.String("chart", chart.Name), zap.Error(err))
		return `<div class="chart-error">Chart rendering failed</div>`
	}
	return svg
}

// StandaloneCharts renders charts without positioning information as a
// plain section below the table.
func StandaloneCharts(charts []models.Chart, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}
	var parts []string
	for _, chart := range charts {
		if chart.Position != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf(`<div class="chart-container" data-anchor="%s">`, html.EscapeString(chart.Anchor)))
		parts = append(parts, fmt.Sprintf("<h3>%s</h3>", html.EscapeString(chart.Name)))
		if chart.Data != nil {
			svg, err := ChartSVG(chart.Data, 480, 300)
			if err != nil {
				logger.Warn("chart rendering failed",
					zap.String("chart", chart.Name), zap.Error(err))
				parts = append(parts, `<div class="chart-error">Chart rendering failed</div>`)
			} else {
				parts = append(parts, svg)
			}
		} else {
			parts = append(parts, `<div class="chart-placeholder">Chart data not available</div>`)
		}
		parts = append(parts, "</div>")
	}
	if len(parts) == 0 {
		return ""
	}
	return "<h2>Charts</h2>\n" + strings.Join(parts, "\n")
}
