// Package parser materializes the sheet model from xlsx workbooks via
// excelize and exposes a lazy row source for streaming access. The
// renderer and streaming layers consume its output and never touch raw
// spreadsheet bytes themselves.
package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// Parser builds sheet models from workbook files.
type Parser struct {
	logger *zap.Logger
}

// New returns a parser logging through the given logger. A nil logger
// disables logging.
func New(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// SupportsStreaming reports whether the file format allows lazy row
// access without materializing the whole sheet.
func SupportsStreaming(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Parse materializes every sheet of a workbook: cell values with their
// resolved styles, rich text, hyperlinks, comments, formulas, merge
// ranges, layout metrics, and chart/image anchors.
func (p *Parser) Parse(path string) ([]*models.Sheet, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	defer f.Close()

	// Chart and image anchors come from the drawing parts directly;
	// excelize has no chart read API.
	charts, err := ParseDrawings(path)
	if err != nil {
		p.logger.Warn("drawing extraction failed", zap.String("path", path), zap.Error(err))
		charts = nil
	}

	styleCache := make(map[int]*models.Style)
	var sheets []*models.Sheet
	for _, name := range f.GetSheetList() {
		sheet, err := p.parseSheet(f, name, styleCache)
		if err != nil {
			return nil, NewParseError(name, "cells", err)
		}
		sheet.Charts = charts[name]
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func (p *Parser) parseSheet(f *excelize.File, name string, styleCache map[int]*models.Style) (*models.Sheet, error) {
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	comments := commentMap(f, name)

	maxCols := 0
	rows := make([]models.Row, len(raw))
	for rowIdx, rawRow := range raw {
		if len(rawRow) > maxCols {
			maxCols = len(rawRow)
		}
		cells := make([]models.Cell, len(rawRow))
		for colIdx, rawVal := range rawRow {
			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			cells[colIdx] = p.parseCell(f, name, cellName, rawVal, styleCache, comments)
		}
		rows[rowIdx] = models.Row{Cells: cells}
	}

	sheet := &models.Sheet{
		Name:               name,
		Rows:               rows,
		DefaultColumnWidth: models.DefaultColumnWidth,
		DefaultRowHeight:   models.DefaultRowHeight,
	}

	if merges, err := f.GetMergeCells(name); err == nil {
		for _, m := range merges {
			sheet.MergedCells = append(sheet.MergedCells, m.GetStartAxis()+":"+m.GetEndAxis())
		}
	}

	sheet.ColumnWidths = make(map[int]float64, maxCols)
	for i := 0; i < maxCols; i++ {
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		if w, err := f.GetColWidth(name, colName); err == nil {
			sheet.ColumnWidths[i] = w
		}
	}
	sheet.RowHeights = make(map[int]float64, len(rows))
	for i := range rows {
		if h, err := f.GetRowHeight(name, i+1); err == nil {
			sheet.RowHeights[i] = h
		}
	}

	return sheet, nil
}

// parseCell builds one cell: a typed value, optional formula, and the
// deduped style. Per-cell read failures degrade to a plain string value.
func (p *Parser) parseCell(f *excelize.File, sheet, cellName, rawVal string,
	styleCache map[int]*models.Style, comments map[string]string) models.Cell {

	var cell models.Cell

	if styleID, err := f.GetCellStyle(sheet, cellName); err == nil && styleID > 0 {
		style, ok := styleCache[styleID]
		if !ok {
			style = p.convertStyle(f, styleID)
			styleCache[styleID] = style
		}
		if style != nil {
			// Hyperlink and comment are per cell, not per style id.
			cell.Style = cloneForCell(style)
		}
	}

	if formula, err := f.GetCellFormula(sheet, cellName); err == nil && formula != "" {
		cell.Formula = formula
	}
	if has, target, err := f.GetCellHyperLink(sheet, cellName); err == nil && has && target != "" {
		if cell.Style == nil {
			cell.Style = &models.Style{}
		}
		cell.Style.Hyperlink = target
	}
	if comment, ok := comments[cellName]; ok && comment != "" {
		if cell.Style == nil {
			cell.Style = &models.Style{}
		}
		cell.Style.Comment = comment
	}

	if runs, err := f.GetCellRichText(sheet, cellName); err == nil && len(runs) > 1 {
		cell.Value = models.RichTextValue(convertRichText(runs))
		return cell
	}

	cell.Value = p.typedValue(f, sheet, cellName, rawVal, cell.Style)
	return cell
}

// typedValue resolves the raw stored value into the tagged value model.
func (p *Parser) typedValue(f *excelize.File, sheet, cellName, rawVal string, style *models.Style) models.Value {
	if rawVal == "" {
		return models.NullValue()
	}

	ctype, err := f.GetCellType(sheet, cellName)
	if err != nil {
		return models.StringValue(rawVal)
	}

	switch ctype {
	case excelize.CellTypeBool:
		return models.BoolValue(rawVal == "1" || strings.EqualFold(rawVal, "true"))
	case excelize.CellTypeInlineString, excelize.CellTypeSharedString:
		return models.StringValue(rawVal)
	case excelize.CellTypeDate:
		if serial, err := strconv.ParseFloat(rawVal, 64); err == nil {
			return models.DateTimeValue(models.SerialToTime(serial))
		}
		return models.StringValue(rawVal)
	}

	if num, err := strconv.ParseFloat(rawVal, 64); err == nil {
		if style != nil && isDateFormat(style.NumberFormat) {
			return models.DateTimeValue(models.SerialToTime(num))
		}
		return models.NumberValue(num)
	}
	return models.StringValue(rawVal)
}

func convertRichText(runs []excelize.RichTextRun) []models.RichTextFragment {
	frags := make([]models.RichTextFragment, 0, len(runs))
	for _, run := range runs {
		frag := models.RichTextFragment{Text: run.Text}
		if run.Font != nil {
			if run.Font.Family != "" {
				name := run.Font.Family
				frag.Style.FontName = &name
			}
			if run.Font.Size > 0 {
				size := run.Font.Size
				frag.Style.FontSize = &size
			}
			if c := normalizeColor(run.Font.Color); c != "" {
				frag.Style.FontColor = &c
			}
			frag.Style.Bold = run.Font.Bold
			frag.Style.Italic = run.Font.Italic
			frag.Style.Underline = run.Font.Underline != "" && run.Font.Underline != "none"
		}
		frags = append(frags, frag)
	}
	return frags
}

// borderStyleNames maps the format's border style ids onto line style
// names.
var borderStyleNames = map[int]string{
	1: "thin",
	2: "medium",
	3: "dashed",
	4: "dotted",
	5: "thick",
	6: "double",
	7: "hair",
}

// builtinNumFmts covers the builtin number format ids the formatter
// recognizes.
var builtinNumFmts = map[int]string{
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	22: "m/d/yy h:mm",
}

func (p *Parser) convertStyle(f *excelize.File, styleID int) *models.Style {
	xs, err := f.GetStyle(styleID)
	if err != nil || xs == nil {
		return nil
	}

	var s models.Style
	if xs.Font != nil {
		if xs.Font.Family != "" {
			name := xs.Font.Family
			s.FontName = &name
		}
		if xs.Font.Size > 0 {
			size := xs.Font.Size
			s.FontSize = &size
		}
		if c := normalizeColor(xs.Font.Color); c != "" && c != "#000000" {
			s.FontColor = &c
		}
		s.Bold = xs.Font.Bold
		s.Italic = xs.Font.Italic
		s.Underline = xs.Font.Underline != "" && xs.Font.Underline != "none"
	}
	if xs.Fill.Type == "pattern" && xs.Fill.Pattern == 1 && len(xs.Fill.Color) > 0 {
		if c := normalizeColor(xs.Fill.Color[0]); c != "" && c != "#FFFFFF" {
			s.BackgroundColor = c
		}
	}
	if xs.Alignment != nil {
		s.TextAlign = horizontalAlign(xs.Alignment.Horizontal)
		s.VerticalAlign = verticalAlign(xs.Alignment.Vertical)
		s.WrapText = xs.Alignment.WrapText
	}
	for _, b := range xs.Border {
		styleName, ok := borderStyleNames[b.Style]
		if !ok {
			continue
		}
		switch b.Type {
		case "top":
			s.BorderTop = styleName
		case "bottom":
			s.BorderBottom = styleName
		case "left":
			s.BorderLeft = styleName
		case "right":
			s.BorderRight = styleName
		default:
			continue
		}
		if c := normalizeColor(b.Color); c != "" {
			s.BorderColor = c
		}
	}
	if xs.CustomNumFmt != nil && *xs.CustomNumFmt != "" {
		s.NumberFormat = *xs.CustomNumFmt
	} else if nf, ok := builtinNumFmts[xs.NumFmt]; ok {
		s.NumberFormat = nf
	}
	return &s
}

// cloneForCell copies a cached style so per-cell hyperlink/comment
// additions never leak into the shared style id.
func cloneForCell(s *models.Style) *models.Style {
	c := *s
	return &c
}

func horizontalAlign(h string) string {
	switch h {
	case "center", "centerContinuous", "distributed":
		return "center"
	case "right":
		return "right"
	case "justify":
		return "justify"
	case "left":
		return "left"
	}
	return ""
}

func verticalAlign(v string) string {
	switch v {
	case "top":
		return "top"
	case "center":
		return "middle"
	case "bottom":
		return "bottom"
	}
	return ""
}

// normalizeColor converts format color values ("FF00AA55", "00AA55",
// "#00aa55") to "#RRGGBB", dropping an alpha prefix.
func normalizeColor(c string) string {
	c = strings.TrimPrefix(strings.TrimSpace(c), "#")
	if len(c) == 8 {
		c = c[2:]
	}
	if len(c) != 6 {
		return ""
	}
	return "#" + strings.ToUpper(c)
}

// isDateFormat reports whether a number format renders dates. Builtin
// date ids are mapped to their patterns before this check.
func isDateFormat(format string) bool {
	if format == "" {
		return false
	}
	if strings.Contains(format, "月") && strings.Contains(format, "日") {
		return true
	}
	lower := strings.ToLower(format)
	if strings.ContainsAny(lower, "#0") {
		return false
	}
	if strings.Contains(lower, "yy") {
		return true
	}
	return strings.Contains(lower, "m") && strings.Contains(lower, "d")
}

func commentMap(f *excelize.File, sheet string) map[string]string {
	out := make(map[string]string)
	comments, err := f.GetComments(sheet)
	if err != nil {
		return out
	}
	for _, c := range comments {
		text := c.Text
		if text == "" {
			var b strings.Builder
			for _, p := range c.Paragraph {
				b.WriteString(p.Text)
			}
			text = b.String()
		}
		if text != "" {
			out[c.Cell] = text
		}
	}
	return out
}
