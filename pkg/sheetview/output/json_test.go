package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
	"github.com/ukaji3/sheetview-go/pkg/sheetview/stream"
)

func testRows() []models.Row {
	return []models.Row{
		{Cells: []models.Cell{
			{Value: models.StringValue("Name")},
			{Value: models.StringValue("Score")},
		}},
		{Cells: []models.Cell{
			{Value: models.StringValue("Alice")},
			{Value: models.NumberValue(90.5)},
		}},
		{Cells: []models.Cell{
			{Value: models.StringValue("Bob")},
			{Value: models.NullValue()},
		}},
	}
}

func TestWriteChunks(t *testing.T) {
	r := stream.NewReader(stream.NewRowsSource(testRows()))
	chunks, err := r.Chunks(2, nil)
	if err != nil {
		t.Fatalf("Chunks failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteChunks(&buf, "Sheet1", chunks); err != nil {
		t.Fatalf("WriteChunks failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 NDJSON lines, got %d:\n%s", len(lines), buf.String())
	}

	var first ChunkDocument
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON on line 1: %v", err)
	}
	if first.Sheet != "Sheet1" || first.ChunkIndex != 0 || first.TotalChunks != 2 {
		t.Errorf("unexpected first document: %+v", first)
	}
	if len(first.Rows) != 2 || first.Rows[1][1] != 90.5 {
		t.Errorf("unexpected rows payload: %v", first.Rows)
	}

	var second ChunkDocument
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid JSON on line 2: %v", err)
	}
	if second.StartRow != 2 || len(second.Rows) != 1 {
		t.Errorf("unexpected second document: %+v", second)
	}
	if second.Rows[0][1] != nil {
		t.Errorf("null cell should export as JSON null, got %v", second.Rows[0][1])
	}
}

func TestChunkDoc(t *testing.T) {
	doc := ChunkDoc("S", stream.Chunk{
		Rows:        testRows()[:1],
		Headers:     []string{"Name", "Score"},
		Index:       3,
		TotalChunks: 5,
		StartRow:    6,
	})
	if doc.ChunkIndex != 3 || doc.TotalChunks != 5 || doc.StartRow != 6 {
		t.Errorf("metadata not carried over: %+v", doc)
	}
	if doc.Rows[0][0] != "Name" {
		t.Errorf("unexpected cell payload: %v", doc.Rows[0])
	}
}

func TestToJSONPretty(t *testing.T) {
	data, err := ToJSON(map[string]int{"a": 1}, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(data), "\n") {
		t.Error("pretty output should be indented")
	}
}

func TestSheetToJSON(t *testing.T) {
	sheet := &models.Sheet{Name: "S", Rows: testRows()}
	data, err := SheetToJSON(sheet, false)
	if err != nil {
		t.Fatalf("SheetToJSON failed: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["name"] != "S" {
		t.Errorf("expected sheet name in payload, got %v", decoded["name"])
	}
}
