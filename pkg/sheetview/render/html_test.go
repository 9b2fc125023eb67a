package render

import (
	"strings"
	"testing"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

func TestRendererSheet(t *testing.T) {
	sheet := sheetFromStrings([][]string{
		{"Name", "Score"},
		{"Alice", "90"},
	})

	out := New(DefaultOptions()).Sheet(sheet)

	if !strings.Contains(out, "<style>") {
		t.Error("expected embedded style block")
	}
	if !strings.Contains(out, `<div class="table-container">`) {
		t.Error("expected positioned table container")
	}
	if !strings.Contains(out, "<thead>") {
		t.Error("expected default single header row")
	}
}

func TestRendererCompact(t *testing.T) {
	sheet := sheetFromStrings([][]string{{"a"}})
	out := New(Options{Compact: true}).Sheet(sheet)

	if strings.Contains(out, ">\n<") {
		t.Errorf("compact output must not contain inter-tag newlines:\n%s", out)
	}
	if !strings.Contains(out, "<td>a</td>") {
		t.Errorf("content lost during compaction:\n%s", out)
	}
}

func TestRendererPage(t *testing.T) {
	sheet := sheetFromStrings([][]string{
		{"r1"}, {"r2"}, {"r3"}, {"r4"}, {"r5"},
	})
	r := New(Options{HeaderRows: 0})

	out, info := r.Page(sheet, 2, 2)
	if info.Page != 2 || info.TotalPages != 3 || info.StartRow != 2 || info.EndRow != 4 {
		t.Errorf("unexpected page info: %+v", info)
	}
	if !strings.Contains(out, "<td>r3</td>") || !strings.Contains(out, "<td>r4</td>") {
		t.Errorf("expected rows 3 and 4 on page 2, got:\n%s", out)
	}
	if strings.Contains(out, "<td>r1</td>") || strings.Contains(out, "<td>r5</td>") {
		t.Errorf("page 2 must not contain other pages' rows:\n%s", out)
	}
	if !strings.Contains(out, "Page 2 of 3 (rows 3-4 of 5)") {
		t.Errorf("expected pagination footer, got:\n%s", out)
	}

	// Page numbers past the end clamp to the last page.
	_, info = r.Page(sheet, 2, 99)
	if info.Page != 3 || info.StartRow != 4 || info.EndRow != 5 {
		t.Errorf("expected clamp to last page, got %+v", info)
	}
}

func TestRendererPageEmptySheet(t *testing.T) {
	r := New(Options{HeaderRows: 0})
	out, info := r.Page(&models.Sheet{Name: "Empty"}, 10, 1)

	if info.TotalPages != 1 || info.TotalRows != 0 {
		t.Errorf("unexpected page info for empty sheet: %+v", info)
	}
	if !strings.Contains(out, "Page 1 of 1 (rows 0-0 of 0)") {
		t.Errorf("expected zeroed footer for empty sheet, got:\n%s", out)
	}
}

func TestFormatCellEscaping(t *testing.T) {
	cell := sheetFromStrings([][]string{{"<b>&"}}).Rows[0].Cells[0]
	if got := FormatCell(cell); got != "&lt;b&gt;&amp;" {
		t.Errorf("FormatCell = %q, expected escaped markup", got)
	}
}
