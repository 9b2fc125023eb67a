// Package output serializes chunk and sheet records for export tooling.
package output

import (
	"bufio"
	"encoding/json"
	"io"
	"iter"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
	"github.com/ukaji3/sheetview-go/pkg/sheetview/stream"
)

// ChunkDocument is the JSON shape of one exported chunk.
type ChunkDocument struct {
	Sheet       string          `json:"sheet,omitempty"`
	ChunkIndex  int             `json:"chunk_index"`
	TotalChunks int             `json:"total_chunks"`
	StartRow    int             `json:"start_row"`
	Headers     []string        `json:"headers"`
	Rows        [][]interface{} `json:"rows"`
}

// ChunkDoc converts a stream chunk to its export document.
func ChunkDoc(sheetName string, c stream.Chunk) ChunkDocument {
	rows := make([][]interface{}, len(c.Rows))
	for i, row := range c.Rows {
		cells := make([]interface{}, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.Value.Interface()
		}
		rows[i] = cells
	}
	return ChunkDocument{
		Sheet:       sheetName,
		ChunkIndex:  c.Index,
		TotalChunks: c.TotalChunks,
		StartRow:    c.StartRow,
		Headers:     c.Headers,
		Rows:        rows,
	}
}

// ToJSON marshals a value, optionally pretty-printed.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteChunks streams chunk documents to w as newline-delimited JSON,
// one document per chunk, consuming the sequence in order.
func WriteChunks(w io.Writer, sheetName string, chunks iter.Seq2[stream.Chunk, error]) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for chunk, err := range chunks {
		if err != nil {
			return err
		}
		if err := enc.Encode(ChunkDoc(sheetName, chunk)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SheetToJSON marshals a materialized sheet.
func SheetToJSON(sheet *models.Sheet, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}
