package render

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// ErrNoSeries indicates a chart with nothing to plot.
var ErrNoSeries = errors.New("chart has no plottable series")

const svgPadding = 30.0

// ChartSVG renders chart data as a simple inline SVG plot. Bar charts
// draw grouped rectangles, line charts draw one polyline per series;
// other chart types fall back to bars. This is an approximation for
// embedding, not a faithful reproduction of the source application.
func ChartSVG(data *models.ChartData, widthPx, heightPx int) (string, error) {
	if data == nil || len(data.Series) == 0 {
		return "", ErrNoSeries
	}
	points := 0
	for _, s := range data.Series {
		points += len(s.Values)
	}
	if points == 0 {
		return "", ErrNoSeries
	}
	if widthPx < 10 || heightPx < 10 {
		return "", fmt.Errorf("degenerate chart area %dx%d", widthPx, heightPx)
	}

	minV, maxV := valueBounds(data.Series)
	if minV > 0 {
		minV = 0
	}
	if maxV == minV {
		maxV = minV + 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		widthPx, heightPx, widthPx, heightPx)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff" stroke="#cccccc"/>`, widthPx, heightPx)
	if data.Title != "" {
		fmt.Fprintf(&b, `<text x="%d" y="16" text-anchor="middle" font-size="12">%s</text>`,
			widthPx/2, html.EscapeString(data.Title))
	}

	plotW := float64(widthPx) - 2*svgPadding
	plotH := float64(heightPx) - 2*svgPadding
	scaleY := func(v float64) float64 {
		return svgPadding + plotH*(1-(v-minV)/(maxV-minV))
	}

	switch strings.ToLower(data.Type) {
	case "line", "xyscatter":
		renderLines(&b, data.Series, plotW, scaleY)
	default:
		renderBars(&b, data.Series, plotW, plotH, minV, maxV)
	}

	b.WriteString("</svg>")
	return b.String(), nil
}

var seriesColors = []string{"#4472c4", "#ed7d31", "#a5a5a5", "#ffc000", "#5b9bd5", "#70ad47"}

func renderBars(b *strings.Builder, series []models.ChartSeries, plotW, plotH, minV, maxV float64) {
	groups := 0
	for _, s := range series {
		if len(s.Values) > groups {
			groups = len(s.Values)
		}
	}
	if groups == 0 {
		return
	}
	groupW := plotW / float64(groups)
	barW := groupW / float64(len(series)+1)
	baseY := svgPadding + plotH*(1-(0-minV)/(maxV-minV))

	for si, s := range series {
		color := seriesColors[si%len(seriesColors)]
		for vi, v := range s.Values {
			x := svgPadding + float64(vi)*groupW + float64(si)*barW
			top := svgPadding + plotH*(1-(v-minV)/(maxV-minV))
			y := math.Min(top, baseY)
			h := math.Abs(baseY - top)
			fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
				x, y, barW, h, color)
		}
	}
}

func renderLines(b *strings.Builder, series []models.ChartSeries, plotW float64, scaleY func(float64) float64) {
	for si, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		color := seriesColors[si%len(seriesColors)]
		step := plotW
		if len(s.Values) > 1 {
			step = plotW / float64(len(s.Values)-1)
		}
		var pts []string
		for vi, v := range s.Values {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", svgPadding+float64(vi)*step, scaleY(v)))
		}
		fmt.Fprintf(b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"/>`,
			strings.Join(pts, " "), color)
	}
}

func valueBounds(series []models.ChartSeries) (minV, maxV float64) {
	first := true
	for _, s := range series {
		for _, v := range s.Values {
			if first {
				minV, maxV = v, v
				first = false
				continue
			}
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	return minV, maxV
}
