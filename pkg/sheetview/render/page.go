package render

import (
	"fmt"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// PageInfo describes one rendered page of a paginated sheet.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalRows  int `json:"total_rows"`
	StartRow   int `json:"start_row"`
	EndRow     int `json:"end_row"`
}

// Page renders one page of a sheet: pageSize rows starting at
// (pageNumber-1)*pageSize, with the sheet's layout metadata preserved,
// plus a footer describing the pagination state. pageNumber is 1-based
// and clamps into the valid range.
func (r *Renderer) Page(sheet *models.Sheet, pageSize, pageNumber int) (string, PageInfo) {
	if pageSize < 1 {
		pageSize = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	totalRows := len(sheet.Rows)
	totalPages := 1
	if totalRows > 0 {
		totalPages = (totalRows + pageSize - 1) / pageSize
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > totalRows {
		end = totalRows
	}

	page := &models.Sheet{
		Name:               sheet.Name,
		Rows:               sheet.Rows[start:end],
		MergedCells:        sheet.MergedCells,
		ColumnWidths:       sheet.ColumnWidths,
		RowHeights:         sheet.RowHeights,
		DefaultColumnWidth: sheet.DefaultColumnWidth,
		DefaultRowHeight:   sheet.DefaultRowHeight,
		Charts:             sheet.Charts,
	}

	info := PageInfo{
		Page:       pageNumber,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalRows:  totalRows,
		StartRow:   start,
		EndRow:     end,
	}

	html := r.Sheet(page)
	displayStart := info.StartRow + 1
	if info.EndRow == 0 {
		displayStart = 0
	}
	footer := fmt.Sprintf(
		`<div class="pagination">Page %d of %d (rows %d-%d of %d)</div>`,
		info.Page, info.TotalPages, displayStart, info.EndRow, info.TotalRows)
	return html + "\n" + footer, info
}
