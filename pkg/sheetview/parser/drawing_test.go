package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

func TestParseDrawings(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	for i, v := range []int{10, 20, 30} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		f.SetCellValue(sheet, cell, v)
	}
	if err := f.AddChart(sheet, "E1", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{Name: "S1", Values: "Sheet1!$A$1:$A$3"},
		},
	}); err != nil {
		t.Fatalf("AddChart failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "chart.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	charts, err := ParseDrawings(path)
	if err != nil {
		t.Fatalf("ParseDrawings failed: %v", err)
	}
	got := charts[sheet]
	if len(got) != 1 {
		t.Fatalf("expected 1 chart on %s, got %d", sheet, len(got))
	}

	c := got[0]
	if c.Kind != models.KindChart {
		t.Errorf("Kind = %q, expected chart", c.Kind)
	}
	if c.Position == nil {
		t.Fatal("expected anchor position")
	}
	if c.Position.FromCol != 4 || c.Position.FromRow != 0 {
		t.Errorf("anchor = col %d row %d, expected E1 (4, 0)",
			c.Position.FromCol, c.Position.FromRow)
	}
	if c.Anchor != "E1" {
		t.Errorf("Anchor = %q, expected E1", c.Anchor)
	}
	if c.Data == nil || c.Data.Type != "Bar" {
		t.Errorf("expected bar chart data, got %+v", c.Data)
	}
}

func TestParseDrawingsNoDrawings(t *testing.T) {
	path := writeTestWorkbook(t)
	charts, err := ParseDrawings(path)
	if err != nil {
		t.Fatalf("ParseDrawings failed: %v", err)
	}
	if len(charts) != 0 {
		t.Errorf("expected no charts, got %v", charts)
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		baseDir  string
		expected string
	}{
		{"../drawings/drawing1.xml", "xl/worksheets", "xl/drawings/drawing1.xml"},
		{"../charts/chart1.xml", "xl/drawings", "xl/charts/chart1.xml"},
		{"/xl/drawings/drawing1.xml", "xl/worksheets", "xl/drawings/drawing1.xml"},
	}
	for _, tt := range tests {
		if got := resolveRelativePath(tt.target, tt.baseDir); got != tt.expected {
			t.Errorf("resolveRelativePath(%q, %q) = %q, expected %q",
				tt.target, tt.baseDir, got, tt.expected)
		}
	}
}
