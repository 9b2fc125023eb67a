package parser

import (
	"errors"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// LazySheet is a row source over one worksheet that never materializes
// the whole sheet: rows are decoded on demand through the workbook's
// forward row iterator. It satisfies the streaming layer's RowSource
// contract. Not safe for concurrent use.
type LazySheet struct {
	file  *excelize.File
	sheet string

	total   int
	counted bool
}

// NewLazySheet opens a workbook for lazy row access. An empty sheetName
// selects the first sheet.
func NewLazySheet(path, sheetName string) (*LazySheet, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if sheetName == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			f.Close()
			return nil, ErrUnknownSheet
		}
		sheetName = list[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		f.Close()
		return nil, ErrUnknownSheet
	}
	return &LazySheet{file: f, sheet: sheetName}, nil
}

// Close releases the underlying workbook.
func (l *LazySheet) Close() error {
	return l.file.Close()
}

// Name returns the sheet name.
func (l *LazySheet) Name() string {
	return l.sheet
}

// TotalRows counts the sheet's rows, cached after the first call.
func (l *LazySheet) TotalRows() (int, error) {
	if l.counted {
		return l.total, nil
	}
	it, err := l.file.Rows(l.sheet)
	if err != nil {
		return 0, err
	}
	defer it.Close()
	n := 0
	for it.Next() {
		n++
	}
	if err := it.Error(); err != nil {
		return 0, err
	}
	l.total = n
	l.counted = true
	return n, nil
}

// Row fetches a single row by 0-based index. An index past the end
// yields an empty row.
func (l *LazySheet) Row(i int) (models.Row, error) {
	rows, err := l.Range(i, 1)
	if err != nil {
		return models.Row{}, err
	}
	if len(rows) == 0 {
		return models.Row{}, nil
	}
	return rows[0], nil
}

// Range fetches up to count contiguous rows starting at start by
// scanning the forward iterator, clamped to the sheet's extent.
func (l *LazySheet) Range(start, count int) ([]models.Row, error) {
	if start < 0 {
		start = 0
	}
	if count <= 0 {
		return nil, nil
	}
	it, err := l.file.Rows(l.sheet)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []models.Row
	idx := 0
	for it.Next() {
		if idx >= start+count {
			break
		}
		if idx >= start {
			cols, err := it.Columns()
			if err != nil {
				return nil, err
			}
			out = append(out, coerceRow(cols))
		}
		idx++
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

// coerceRow converts an iterator row of display strings into model
// cells, recovering numeric types where possible.
func coerceRow(cols []string) models.Row {
	cells := make([]models.Cell, len(cols))
	for i, s := range cols {
		cells[i] = models.Cell{Value: coerceValue(s)}
	}
	return models.Row{Cells: cells}
}

// coerceValue parses a cell's display string as a number when it looks
// like one, keeping the string otherwise. Empty strings are null.
func coerceValue(s string) models.Value {
	if s == "" {
		return models.NullValue()
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return models.NumberValue(float64(n))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NumberValue(f)
	}
	return models.StringValue(s)
}
