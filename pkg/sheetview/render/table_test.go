package render

import (
	"strings"
	"testing"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

func sheetFromStrings(rows [][]string) *models.Sheet {
	s := &models.Sheet{Name: "Sheet1"}
	for _, r := range rows {
		row := models.Row{}
		for _, v := range r {
			var val models.Value
			if v != "" {
				val = models.StringValue(v)
			}
			row.Cells = append(row.Cells, models.Cell{Value: val})
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

func TestBuildMergedCells(t *testing.T) {
	sheet := sheetFromStrings([][]string{
		{"Merged", "", "C"},
		{"", "", "F"},
	})
	sheet.MergedCells = []string{"A1:B2"}

	b := NewTableBuilder(nil)
	out := b.Build(sheet, nil, 0)

	if !strings.Contains(out, `rowspan="2"`) {
		t.Errorf("expected rowspan=2 on merge anchor, got:\n%s", out)
	}
	if !strings.Contains(out, `colspan="2"`) {
		t.Errorf("expected colspan=2 on merge anchor, got:\n%s", out)
	}
	// The anchor renders once; the three covered cells are suppressed.
	if got := strings.Count(out, "<td"); got != 3 {
		t.Errorf("expected 3 td elements (anchor + 2 in column C), got %d:\n%s", got, out)
	}
}

func TestBuildHeaderSplit(t *testing.T) {
	sheet := sheetFromStrings([][]string{
		{"Name", "Age"},
		{"Alice", "30"},
	})

	b := NewTableBuilder(nil)
	out := b.Build(sheet, nil, 1)

	if !strings.Contains(out, "<thead>") || !strings.Contains(out, "<tbody>") {
		t.Fatalf("expected thead/tbody split, got:\n%s", out)
	}
	if !strings.Contains(out, "<th>Name</th>") {
		t.Errorf("expected header cell as th, got:\n%s", out)
	}
	if !strings.Contains(out, "<td>Alice</td>") {
		t.Errorf("expected body cell as td, got:\n%s", out)
	}
	if !strings.Contains(out, "<caption>Table: Sheet1</caption>") {
		t.Errorf("expected caption, got:\n%s", out)
	}
}

func TestBuildSkipsBadMergeRange(t *testing.T) {
	sheet := sheetFromStrings([][]string{{"A"}})
	sheet.MergedCells = []string{"not-a-range"}

	out := NewTableBuilder(nil).Build(sheet, nil, 0)
	if !strings.Contains(out, "<td>A</td>") {
		t.Errorf("malformed merge range must not break rendering, got:\n%s", out)
	}
}

func TestShouldOverflow(t *testing.T) {
	long := models.Cell{Value: models.StringValue("123456789")}
	short := models.Cell{Value: models.StringValue("short")}
	empty := models.Cell{Value: models.NullValue()}
	filled := models.Cell{Value: models.StringValue("x")}
	wrapped := models.Cell{
		Value: models.StringValue("123456789"),
		Style: &models.Style{WrapText: true},
	}

	tests := []struct {
		name     string
		row      models.Row
		col      int
		expected bool
	}{
		{"long text with empty neighbor", models.Row{Cells: []models.Cell{long, empty}}, 0, true},
		{"long text at row end", models.Row{Cells: []models.Cell{long}}, 0, true},
		{"long text with filled neighbor", models.Row{Cells: []models.Cell{long, filled}}, 0, false},
		{"short text", models.Row{Cells: []models.Cell{short, empty}}, 0, false},
		{"wrap text disables overflow", models.Row{Cells: []models.Cell{wrapped, empty}}, 0, false},
		{
			"zero-valued neighbor does not block",
			models.Row{Cells: []models.Cell{long, {Value: models.NumberValue(0)}}}, 0, true,
		},
		{
			"false neighbor does not block",
			models.Row{Cells: []models.Cell{long, {Value: models.BoolValue(false)}}}, 0, true,
		},
		{
			"nonzero neighbor blocks",
			models.Row{Cells: []models.Cell{long, {Value: models.NumberValue(5)}}}, 0, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldOverflow(tt.row.Cells[tt.col], tt.row, tt.col)
			if got != tt.expected {
				t.Errorf("shouldOverflow = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"abc", 3},
		{"日本語", 6},
		{"ab日", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := displayWidth(tt.input); got != tt.expected {
			t.Errorf("displayWidth(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestLastMeaningfulColumn(t *testing.T) {
	row := models.Row{Cells: []models.Cell{
		{Value: models.StringValue("a")},
		{Value: models.NullValue()},
		{Value: models.StringValue("c")},
		{Value: models.NullValue()},
		{Value: models.NullValue()},
	}}
	if got := lastMeaningfulColumn(row, 0, nil); got != 2 {
		t.Errorf("lastMeaningfulColumn = %d, expected 2", got)
	}

	// A styled-but-empty trailing cell still counts when it has a fill.
	row.Cells[4].Style = &models.Style{BackgroundColor: "#FF0000"}
	if got := lastMeaningfulColumn(row, 0, nil); got != 4 {
		t.Errorf("lastMeaningfulColumn with fill = %d, expected 4", got)
	}
}

func TestBuildTrailingCellsSuppressed(t *testing.T) {
	sheet := sheetFromStrings([][]string{
		{"a", "", "", ""},
	})
	out := NewTableBuilder(nil).Build(sheet, nil, 0)
	if got := strings.Count(out, "<td"); got != 1 {
		t.Errorf("expected 1 td after trailing suppression, got %d:\n%s", got, out)
	}
}

func TestCellAttributes(t *testing.T) {
	sheet := &models.Sheet{
		Name: "S",
		Rows: []models.Row{{Cells: []models.Cell{
			{
				Value:   models.NumberValue(1234.5),
				Formula: "SUM(A1:A9)",
				Style: &models.Style{
					NumberFormat: "#,##0.00",
					Hyperlink:    "https://example.com",
					Comment:      "note",
				},
			},
		}}},
	}
	styles := CollectStyles(sheet)
	out := NewTableBuilder(nil).Build(sheet, styles, 0)

	if !strings.Contains(out, `title="note | Formula: SUM(A1:A9)"`) {
		t.Errorf("expected comment and formula tooltip, got:\n%s", out)
	}
	if !strings.Contains(out, `data-number-format="#,##0.00"`) {
		t.Errorf("expected data-number-format attribute, got:\n%s", out)
	}
	if !strings.Contains(out, `<a href="https://example.com">1,234.50</a>`) {
		t.Errorf("expected hyperlink wrapping formatted value, got:\n%s", out)
	}
	if !strings.Contains(out, `class="style_1"`) {
		t.Errorf("expected style class on cell, got:\n%s", out)
	}
}

func TestParseRangeRef(t *testing.T) {
	sr, sc, er, ec, err := parseRangeRef("A1:B2")
	if err != nil {
		t.Fatalf("parseRangeRef failed: %v", err)
	}
	if sr != 0 || sc != 0 || er != 1 || ec != 1 {
		t.Errorf("parseRangeRef(A1:B2) = %d,%d,%d,%d", sr, sc, er, ec)
	}

	sr, sc, er, ec, err = parseRangeRef("C3")
	if err != nil {
		t.Fatalf("parseRangeRef failed: %v", err)
	}
	if sr != 2 || sc != 2 || er != 2 || ec != 2 {
		t.Errorf("parseRangeRef(C3) = %d,%d,%d,%d", sr, sc, er, ec)
	}

	if _, _, _, _, err := parseRangeRef("bogus"); err == nil {
		t.Error("expected error for malformed range")
	}
}
