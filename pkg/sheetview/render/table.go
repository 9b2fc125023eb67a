package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/width"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// cellSpan records the rowspan/colspan of a merge anchor.
type cellSpan struct {
	rowSpan int
	colSpan int
}

// coord addresses one cell, 0-based.
type coord struct {
	row int
	col int
}

// TableBuilder emits the HTML table skeleton for a sheet: caption,
// thead/tbody split, merge spans, per-cell classes and tooltips.
type TableBuilder struct {
	logger *zap.Logger
}

// NewTableBuilder returns a builder logging through the given logger.
// A nil logger disables logging.
func NewTableBuilder(logger *zap.Logger) *TableBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TableBuilder{logger: logger}
}

// Build renders the sheet as an HTML table. styles maps CSS class ids to
// the styles collected by CollectStyles; headerRows rows render inside
// <thead>. A malformed merge range is skipped, never fatal.
func (b *TableBuilder) Build(sheet *models.Sheet, styles map[string]*models.Style, headerRows int) string {
	occupied := make(map[coord]bool)
	spans := make(map[coord]cellSpan)

	for _, rng := range sheet.MergedCells {
		startRow, startCol, endRow, endCol, err := parseRangeRef(rng)
		if err != nil {
			b.logger.Warn("skipping unparsable merge range",
				zap.String("sheet", sheet.Name), zap.String("range", rng), zap.Error(err))
			continue
		}
		rowSpan := endRow - startRow + 1
		colSpan := endCol - startCol + 1
		if rowSpan <= 1 && colSpan <= 1 {
			continue
		}
		spans[coord{startRow, startCol}] = cellSpan{rowSpan: rowSpan, colSpan: colSpan}
		for r := startRow; r <= endRow; r++ {
			for c := startCol; c <= endCol; c++ {
				if r != startRow || c != startCol {
					occupied[coord{r, c}] = true
				}
			}
		}
	}

	keyToID := styleKeyToID(styles)

	var parts []string
	parts = append(parts, fmt.Sprintf(`<table role="table" aria-label="Table: %s">`, html.EscapeString(sheet.Name)))
	if strings.TrimSpace(sheet.Name) != "" {
		parts = append(parts, fmt.Sprintf("<caption>Table: %s</caption>", html.EscapeString(sheet.Name)))
	}

	if headerRows > 0 && len(sheet.Rows) > 0 {
		if headerRows > len(sheet.Rows) {
			headerRows = len(sheet.Rows)
		}
		parts = append(parts, "<thead>")
		parts = b.appendRows(parts, sheet.Rows[:headerRows], 0, occupied, spans, keyToID, true)
		parts = append(parts, "</thead>")
		if len(sheet.Rows) > headerRows {
			parts = append(parts, "<tbody>")
			parts = b.appendRows(parts, sheet.Rows[headerRows:], headerRows, occupied, spans, keyToID, false)
			parts = append(parts, "</tbody>")
		}
	} else {
		parts = b.appendRows(parts, sheet.Rows, 0, occupied, spans, keyToID, false)
	}

	parts = append(parts, "</table>")
	return strings.Join(parts, "\n")
}

func (b *TableBuilder) appendRows(parts []string, rows []models.Row, rowOffset int,
	occupied map[coord]bool, spans map[coord]cellSpan, keyToID map[string]string, isHeader bool) []string {

	for i, row := range rows {
		rowIdx := rowOffset + i
		last := lastMeaningfulColumn(row, rowIdx, spans)
		parts = append(parts, "<tr>")
		for colIdx, cell := range row.Cells {
			if colIdx > last {
				break
			}
			pos := coord{rowIdx, colIdx}
			if occupied[pos] {
				continue
			}
			parts = append(parts, b.cellHTML(cell, row, colIdx, spans[pos], keyToID, isHeader))
		}
		parts = append(parts, "</tr>")
	}
	return parts
}

// lastMeaningfulColumn finds the rightmost column of a row worth
// emitting. Authoring tools often leave phantom trailing cells; dropping
// them keeps the generated table compact.
func lastMeaningfulColumn(row models.Row, rowIdx int, spans map[coord]cellSpan) int {
	last := -1
	for colIdx, cell := range row.Cells {
		if isMeaningful(cell) {
			last = colIdx
			continue
		}
		if _, ok := spans[coord{rowIdx, colIdx}]; ok {
			last = colIdx
		}
	}
	return last
}

// isMeaningful reports whether a cell carries content that must render:
// a value, a formula, a non-default fill, or any border.
func isMeaningful(cell models.Cell) bool {
	if !cell.Value.IsNull() && strings.TrimSpace(cell.Value.String()) != "" {
		return true
	}
	if cell.Formula != "" {
		return true
	}
	if cell.Style != nil {
		if cell.Style.BackgroundColor != "" {
			return true
		}
		if cell.Style.HasBorder() {
			return true
		}
	}
	return false
}

func (b *TableBuilder) cellHTML(cell models.Cell, row models.Row, colIdx int,
	span cellSpan, keyToID map[string]string, isHeader bool) string {

	var classes []string
	if cell.Style != nil {
		if id, ok := keyToID[StyleKey(cell.Style)]; ok {
			classes = append(classes, id)
		}
		if cell.Style.WrapText {
			classes = append(classes, "wrap-text")
		}
	}

	overflowStyle := ""
	if shouldOverflow(cell, row, colIdx) {
		classes = append(classes, "text-overflow")
		overflowStyle = ` style="overflow: visible; white-space: nowrap; position: relative; z-index: 5;"`
	}

	classAttr := ""
	if len(classes) > 0 {
		classAttr = fmt.Sprintf(` class="%s"`, strings.Join(classes, " "))
	}

	spanAttrs := ""
	if span.rowSpan > 1 {
		spanAttrs += fmt.Sprintf(` rowspan="%d"`, span.rowSpan)
	}
	if span.colSpan > 1 {
		spanAttrs += fmt.Sprintf(` colspan="%d"`, span.colSpan)
	}

	var titleParts []string
	if cell.Style != nil && cell.Style.Comment != "" {
		titleParts = append(titleParts, cell.Style.Comment)
	}
	if cell.Formula != "" {
		titleParts = append(titleParts, "Formula: "+cell.Formula)
	}
	titleAttr := ""
	if len(titleParts) > 0 {
		titleAttr = fmt.Sprintf(` title="%s"`, html.EscapeString(strings.Join(titleParts, " | ")))
	}

	dataAttr := ""
	if cell.Style != nil && cell.Style.NumberFormat != "" {
		dataAttr = fmt.Sprintf(` data-number-format="%s"`, html.EscapeString(cell.Style.NumberFormat))
	}

	content := FormatCell(cell)
	if cell.Style != nil && cell.Style.Hyperlink != "" {
		content = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(cell.Style.Hyperlink), content)
	}

	tag := "td"
	if isHeader {
		tag = "th"
	}
	return fmt.Sprintf("<%s%s%s%s%s%s>%s</%s>", tag, classAttr, spanAttrs, titleAttr, dataAttr, overflowStyle, content, tag)
}

// shouldOverflow decides whether a cell's text should spill over its
// right neighbor, mimicking spreadsheet behavior: long unwrapped text
// next to an empty cell renders outside its box.
func shouldOverflow(cell models.Cell, row models.Row, colIdx int) bool {
	text := strings.TrimSpace(cell.Value.String())
	if text == "" {
		return false
	}
	if displayWidth(text) <= OverflowWidthThreshold {
		return false
	}
	if cell.Style != nil && cell.Style.WrapText {
		return false
	}
	if colIdx+1 < len(row.Cells) {
		if occupiesCell(row.Cells[colIdx+1].Value) {
			return false
		}
	}
	return true
}

// occupiesCell reports whether a value blocks text spilling into its
// cell. Zero numbers and false booleans count as empty, like blank
// strings.
func occupiesCell(v models.Value) bool {
	switch v.Kind() {
	case models.KindNull:
		return false
	case models.KindNumber:
		return v.Num() != 0
	case models.KindBool:
		return v.Bool()
	}
	return v.String() != ""
}

// displayWidth computes the approximate rendered width of a string in
// character cells. East Asian wide and fullwidth glyphs count as 2.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// parseRangeRef parses a range string like "A1:B2" (or a single cell
// "A1") into 0-based start/end coordinates.
func parseRangeRef(rng string) (startRow, startCol, endRow, endCol int, err error) {
	rng = strings.TrimSpace(rng)
	start, end, found := strings.Cut(rng, ":")
	if !found {
		end = start
	}
	sc, sr, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	ec, er, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	return sr - 1, sc - 1, er - 1, ec - 1, nil
}
