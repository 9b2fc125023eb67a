package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// writeTestWorkbook creates a small workbook exercising values, styles,
// merges, and layout metadata.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Name")
	f.SetCellValue(sheet, "B1", "Score")
	f.SetCellValue(sheet, "A2", "Alice")
	f.SetCellValue(sheet, "B2", 90.5)
	f.SetCellValue(sheet, "A3", "Bob")
	f.SetCellBool(sheet, "B3", true)
	f.MergeCell(sheet, "A4", "B5")
	f.SetCellValue(sheet, "A4", "Merged")

	styleID, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: 4, // #,##0.00
	})
	if err != nil {
		t.Fatalf("NewStyle failed: %v", err)
	}
	if err := f.SetCellStyle(sheet, "B2", "B2", styleID); err != nil {
		t.Fatalf("SetCellStyle failed: %v", err)
	}

	f.SetColWidth(sheet, "A", "A", 15)
	f.SetRowHeight(sheet, 1, 24)

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

func TestParse(t *testing.T) {
	path := writeTestWorkbook(t)

	sheets, err := New(nil).Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(sheets))
	}
	sheet := sheets[0]

	if sheet.Name != "Sheet1" {
		t.Errorf("sheet name = %q", sheet.Name)
	}
	if len(sheet.Rows) < 4 {
		t.Fatalf("expected at least 4 rows, got %d", len(sheet.Rows))
	}

	if got := sheet.Rows[0].Cells[0].Value; got.Kind() != models.KindString || got.Str() != "Name" {
		t.Errorf("A1 = %v, expected string Name", got.Interface())
	}
	if got := sheet.Rows[1].Cells[1].Value; got.Kind() != models.KindNumber || got.Num() != 90.5 {
		t.Errorf("B2 = %v, expected number 90.5", got.Interface())
	}
	if got := sheet.Rows[2].Cells[1].Value; got.Kind() != models.KindBool || !got.Bool() {
		t.Errorf("B3 = %v, expected bool true", got.Interface())
	}

	b2 := sheet.Rows[1].Cells[1]
	if b2.Style == nil || !b2.Style.Bold {
		t.Error("expected bold style on B2")
	}
	if b2.Style == nil || b2.Style.NumberFormat != "#,##0.00" {
		t.Errorf("expected builtin number format on B2, got %+v", b2.Style)
	}

	if len(sheet.MergedCells) != 1 || sheet.MergedCells[0] != "A4:B5" {
		t.Errorf("merged cells = %v, expected [A4:B5]", sheet.MergedCells)
	}
	if w := sheet.ColumnWidth(0); w != 15 {
		t.Errorf("column A width = %v, expected 15", w)
	}
	if h := sheet.RowHeight(0); h != 24 {
		t.Errorf("row 1 height = %v, expected 24", h)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := New(nil).Parse("/nonexistent/file.xlsx"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.xlsx")
	if err := os.WriteFile(bad, []byte("not a workbook"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(nil).Parse(bad); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestSupportsStreaming(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"book.xlsx", true},
		{"book.XLSX", true},
		{"macro.xlsm", true},
		{"data.csv", false},
		{"legacy.xls", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := SupportsStreaming(tt.path); got != tt.expected {
			t.Errorf("SupportsStreaming(%q) = %v, expected %v", tt.path, got, tt.expected)
		}
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"FF00AA55", "#00AA55"},
		{"00aa55", "#00AA55"},
		{"#00AA55", "#00AA55"},
		{"", ""},
		{"FFF", ""},
	}
	for _, tt := range tests {
		if got := normalizeColor(tt.input); got != tt.expected {
			t.Errorf("normalizeColor(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		format   string
		expected bool
	}{
		{"", false},
		{"yyyy-mm-dd", true},
		{"m月d日", true},
		{"m/d", true},
		{"#,##0.00", false},
		{"0%", false},
		{"yy", true},
	}
	for _, tt := range tests {
		if got := isDateFormat(tt.format); got != tt.expected {
			t.Errorf("isDateFormat(%q) = %v, expected %v", tt.format, got, tt.expected)
		}
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewParseError("Sheet1", "cells", inner)
	if !errors.Is(err, inner) {
		t.Error("ParseError must unwrap to its cause")
	}
	if err.Error() == "" {
		t.Error("ParseError must describe itself")
	}
}
