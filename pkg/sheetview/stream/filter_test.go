package stream

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseRangeRef(t *testing.T) {
	tests := []struct {
		ref      string
		startRow int
		maxRows  int
		columns  []int
	}{
		{"A1:D10", 0, 10, []int{0, 1, 2, 3}},
		{"b3:c8", 2, 6, []int{1, 2}},
		{" A1:A1 ", 0, 1, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			b, err := parseRangeRef(tt.ref)
			if err != nil {
				t.Fatalf("parseRangeRef(%q) failed: %v", tt.ref, err)
			}
			if b.startRow != tt.startRow || b.maxRows != tt.maxRows {
				t.Errorf("bounds = %d/%d, expected %d/%d",
					b.startRow, b.maxRows, tt.startRow, tt.maxRows)
			}
			if len(b.columns) != len(tt.columns) {
				t.Fatalf("columns = %v, expected %v", b.columns, tt.columns)
			}
			for i := range tt.columns {
				if b.columns[i] != tt.columns[i] {
					t.Errorf("columns = %v, expected %v", b.columns, tt.columns)
					break
				}
			}
		})
	}

	for _, bad := range []string{"", "A1", "1:10", "A0:B2"} {
		if _, err := parseRangeRef(bad); err == nil {
			t.Errorf("parseRangeRef(%q) should fail", bad)
		}
	}
}

func TestFilterHeadersPrecedence(t *testing.T) {
	headers := []string{"A", "B", "C"}
	logger := zap.NewNop()

	// Range columns beat both other selectors.
	got, idx := filterHeaders(headers, &Filter{
		Columns:       []string{"C"},
		ColumnIndices: []int{0},
	}, []int{1}, logger)
	if len(got) != 1 || got[0] != "B" || len(idx) != 1 || idx[0] != 1 {
		t.Errorf("range columns should win: %v %v", got, idx)
	}

	// Indices beat names.
	got, idx = filterHeaders(headers, &Filter{
		Columns:       []string{"C"},
		ColumnIndices: []int{2, 7},
	}, nil, logger)
	if len(got) != 1 || got[0] != "C" || len(idx) != 1 || idx[0] != 2 {
		t.Errorf("indices should win and drop out-of-range entries: %v %v", got, idx)
	}

	// No selectors: headers pass through with nil indices.
	got, idx = filterHeaders(headers, &Filter{}, nil, logger)
	if len(got) != 3 || idx != nil {
		t.Errorf("empty filter should pass everything: %v %v", got, idx)
	}
}
