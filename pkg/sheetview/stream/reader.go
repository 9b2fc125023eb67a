package stream

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// Chunk is one bounded, ordered batch of rows, paired with the (possibly
// column-filtered) headers and positional metadata. Chunks are produced
// in increasing row-offset order; rows keep source order.
type Chunk struct {
	// Rows holds the chunk's rows after column filtering.
	Rows []models.Row
	// Headers is the header list, column-filtered the same way as Rows.
	Headers []string
	// Index is the 0-based chunk index.
	Index int
	// TotalChunks is the number of chunks the iteration will produce.
	TotalChunks int
	// StartRow is the chunk's absolute starting row offset.
	StartRow int
}

// Info summarizes a reader's source.
type Info struct {
	TotalRows    int      `json:"total_rows"`
	TotalColumns int      `json:"total_columns"`
	Headers      []string `json:"headers"`
	Streaming    bool     `json:"streaming"`
}

// Reader provides chunked iteration over a RowSource. It caches the
// header list and total row count for its lifetime and is not safe for
// concurrent use; create one Reader per consumer.
type Reader struct {
	source    RowSource
	logger    *zap.Logger
	streaming bool

	headers    []string
	haveHeader bool
	totalRows  int
	haveTotal  bool
}

// ReaderOption customizes a Reader.
type ReaderOption func(*Reader)

// WithLogger routes reader warnings through the given logger.
func WithLogger(logger *zap.Logger) ReaderOption {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStreaming marks the reader as backed by a lazy source, reported
// through Info.
func WithStreaming(streaming bool) ReaderOption {
	return func(r *Reader) { r.streaming = streaming }
}

// NewReader wraps a row source.
func NewReader(source RowSource, opts ...ReaderOption) *Reader {
	r := &Reader{source: source, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TotalRows returns the source's row count, cached after the first call.
func (r *Reader) TotalRows() (int, error) {
	if !r.haveTotal {
		n, err := r.source.TotalRows()
		if err != nil {
			return 0, err
		}
		r.totalRows = n
		r.haveTotal = true
	}
	return r.totalRows, nil
}

// Headers derives the header list from row zero, cached for the reader's
// lifetime. An absent row zero yields empty headers; an empty header
// cell gets a positional placeholder label.
func (r *Reader) Headers() ([]string, error) {
	if r.haveHeader {
		return r.headers, nil
	}
	total, err := r.TotalRows()
	if err != nil {
		return nil, err
	}
	if total == 0 {
		r.headers = nil
		r.haveHeader = true
		return nil, nil
	}
	first, err := r.source.Row(0)
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	headers := make([]string, len(first.Cells))
	for i, cell := range first.Cells {
		s := cell.Value.String()
		if s == "" {
			s = fmt.Sprintf("Column_%d", i)
		}
		headers[i] = s
	}
	r.headers = headers
	r.haveHeader = true
	return headers, nil
}

// Info reports source metadata: row/column counts, headers, and whether
// the backing source streams.
func (r *Reader) Info() (Info, error) {
	total, err := r.TotalRows()
	if err != nil {
		return Info{}, err
	}
	headers, err := r.Headers()
	if err != nil {
		return Info{}, err
	}
	return Info{
		TotalRows:    total,
		TotalColumns: len(headers),
		Headers:      headers,
		Streaming:    r.streaming,
	}, nil
}

// Chunks returns a pull-based sequence of row chunks of at most
// chunkRows rows each, honoring the filter. chunkRows must be positive;
// a violation fails here, before any row is fetched. A source with no
// remaining rows yields an empty sequence, not an error.
func (r *Reader) Chunks(chunkRows int, f *Filter) (iter.Seq2[Chunk, error], error) {
	if chunkRows <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkRows)
	}

	startRow := 0
	maxRows := 0
	var rangeColumns []int
	if f != nil {
		if f.RangeRef != "" {
			bounds, err := parseRangeRef(f.RangeRef)
			if err != nil {
				return nil, err
			}
			startRow = bounds.startRow
			maxRows = bounds.maxRows
			rangeColumns = bounds.columns
		} else {
			startRow = f.StartRow
			maxRows = f.MaxRows
		}
	}
	if startRow < 0 {
		startRow = 0
	}

	totalRows, err := r.TotalRows()
	if err != nil {
		return nil, err
	}
	headers, err := r.Headers()
	if err != nil {
		return nil, err
	}

	var indices []int
	if f != nil {
		headers, indices = filterHeaders(headers, f, rangeColumns, r.logger)
		if len(indices) == 0 {
			indices = nil
		}
	}

	remaining := totalRows - startRow
	if maxRows > 0 && maxRows < remaining {
		remaining = maxRows
	}
	totalChunks := 0
	if remaining > 0 {
		totalChunks = (remaining + chunkRows - 1) / chunkRows
	}

	seq := func(yield func(Chunk, error) bool) {
		chunkIndex := 0
		current := startRow
		for current < totalRows {
			size := chunkRows
			if rest := totalRows - current; rest < size {
				size = rest
			}
			if maxRows > 0 {
				if rest := maxRows - (current - startRow); rest < size {
					size = rest
				}
			}
			if size <= 0 {
				return
			}

			rows, err := r.source.Range(current, size)
			if err != nil {
				yield(Chunk{}, fmt.Errorf("reading rows %d..%d: %w", current, current+size, err))
				return
			}
			if indices != nil {
				rows = reindexRows(rows, indices)
			}

			chunk := Chunk{
				Rows:        rows,
				Headers:     headers,
				Index:       chunkIndex,
				TotalChunks: totalChunks,
				StartRow:    current,
			}
			if !yield(chunk, nil) {
				return
			}
			current += size
			chunkIndex++
		}
	}
	return seq, nil
}

// reindexRows applies column filtering to fetched rows. An index beyond
// a row's actual cell count yields a null-valued cell, not an error.
func reindexRows(rows []models.Row, indices []int) []models.Row {
	filtered := make([]models.Row, len(rows))
	for ri, row := range rows {
		cells := make([]models.Cell, len(indices))
		for ci, idx := range indices {
			if idx >= 0 && idx < len(row.Cells) {
				cells[ci] = row.Cells[idx]
			} else {
				cells[ci] = models.Cell{Value: models.NullValue()}
			}
		}
		filtered[ri] = models.Row{Cells: cells}
	}
	return filtered
}
