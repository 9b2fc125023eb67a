// Package stream provides memory-bounded, chunked access to large
// sheets. A Reader yields bounded row chunks with optional row and
// column filtering over any RowSource, lazy or fully materialized.
package stream

import (
	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// RowSource is the uniform read contract over a sheet's rows. A lazily
// addressable source and a fully materialized one expose equivalent
// semantics, so the Reader treats them interchangeably.
type RowSource interface {
	// TotalRows returns the number of rows in the source.
	TotalRows() (int, error)
	// Row fetches a single row by 0-based index.
	Row(i int) (models.Row, error)
	// Range fetches up to count contiguous rows starting at start,
	// clamped to the source's extent.
	Range(start, count int) ([]models.Row, error)
}

// SheetSource adapts a fully materialized sheet to the RowSource
// contract.
type SheetSource struct {
	rows []models.Row
}

// NewSheetSource wraps a materialized sheet.
func NewSheetSource(sheet *models.Sheet) *SheetSource {
	return &SheetSource{rows: sheet.Rows}
}

// NewRowsSource wraps a plain row slice.
func NewRowsSource(rows []models.Row) *SheetSource {
	return &SheetSource{rows: rows}
}

func (s *SheetSource) TotalRows() (int, error) {
	return len(s.rows), nil
}

func (s *SheetSource) Row(i int) (models.Row, error) {
	if i < 0 || i >= len(s.rows) {
		return models.Row{}, nil
	}
	return s.rows[i], nil
}

func (s *SheetSource) Range(start, count int) ([]models.Row, error) {
	if start < 0 {
		start = 0
	}
	if start >= len(s.rows) || count <= 0 {
		return nil, nil
	}
	end := start + count
	if end > len(s.rows) {
		end = len(s.rows)
	}
	return s.rows[start:end], nil
}
