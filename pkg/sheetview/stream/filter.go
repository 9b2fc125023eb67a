package stream

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Filter configures row and column selection for chunked iteration.
// RangeRef, when set, overrides StartRow, MaxRows, and both column
// selectors; otherwise ColumnIndices takes precedence over Columns.
type Filter struct {
	// Columns selects columns by header name. Unknown names are dropped
	// with a warning.
	Columns []string
	// ColumnIndices selects columns by 0-based index.
	ColumnIndices []int
	// StartRow is the 0-based first row to read.
	StartRow int
	// MaxRows bounds the number of rows read; 0 means unbounded.
	MaxRows int
	// RangeRef is a spreadsheet-style range ("A1:D10") decomposed into
	// start row, row bound, and column index list.
	RangeRef string
}

// rangeBounds is a RangeRef decomposed for iteration.
type rangeBounds struct {
	startRow int
	maxRows  int
	columns  []int
}

// parseRangeRef decomposes "A1:D10" into 0-based bounds.
func parseRangeRef(ref string) (rangeBounds, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	start, end, found := strings.Cut(ref, ":")
	if !found {
		return rangeBounds{}, fmt.Errorf("invalid range %q: expected a form like A1:D10", ref)
	}
	sc, sr, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return rangeBounds{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	ec, er, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return rangeBounds{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	cols := make([]int, 0, ec-sc+1)
	for c := sc - 1; c <= ec-1; c++ {
		cols = append(cols, c)
	}
	return rangeBounds{
		startRow: sr - 1,
		maxRows:  er - sr + 1,
		columns:  cols,
	}, nil
}

// filterHeaders applies the filter's column selection to the header list
// and returns the filtered headers plus the index list used to re-index
// each row. A nil index list means no column filtering.
func filterHeaders(headers []string, f *Filter, rangeColumns []int, logger *zap.Logger) ([]string, []int) {
	if rangeColumns != nil {
		filtered := make([]string, 0, len(rangeColumns))
		for _, i := range rangeColumns {
			if i < len(headers) {
				filtered = append(filtered, headers[i])
			}
		}
		return filtered, rangeColumns
	}

	if len(f.ColumnIndices) > 0 {
		indices := make([]int, 0, len(f.ColumnIndices))
		filtered := make([]string, 0, len(f.ColumnIndices))
		for _, i := range f.ColumnIndices {
			if i >= 0 && i < len(headers) {
				indices = append(indices, i)
				filtered = append(filtered, headers[i])
			}
		}
		return filtered, indices
	}

	if len(f.Columns) > 0 {
		var indices []int
		var filtered []string
		for _, name := range f.Columns {
			idx := -1
			for i, h := range headers {
				if h == name {
					idx = i
					break
				}
			}
			if idx < 0 {
				logger.Warn("column not found in headers", zap.String("column", name))
				continue
			}
			indices = append(indices, idx)
			filtered = append(filtered, name)
		}
		return filtered, indices
	}

	return headers, nil
}
