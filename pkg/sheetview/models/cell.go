package models

// RichTextFragment is one run of styled text inside a rich-text cell.
type RichTextFragment struct {
	// Text is the fragment's text content.
	Text string `json:"text"`
	// Style is the subset of font styling applied to this fragment.
	Style FragmentStyle `json:"style"`
}

// FragmentStyle is the font styling subset available to rich-text runs.
// Absent optional properties are nil.
type FragmentStyle struct {
	FontName  *string  `json:"font_name,omitempty"`
	FontSize  *float64 `json:"font_size,omitempty"`
	FontColor *string  `json:"font_color,omitempty"`
	Bold      bool     `json:"bold,omitempty"`
	Italic    bool     `json:"italic,omitempty"`
	Underline bool     `json:"underline,omitempty"`
}

// Cell is a single spreadsheet cell: a value plus optional formula and style.
type Cell struct {
	// Value is the cell's content.
	Value Value `json:"value"`
	// Formula is the cell's formula string without the leading "=", if any.
	Formula string `json:"formula,omitempty"`
	// Style is the resolved cell style, or nil for an unstyled cell.
	Style *Style `json:"style,omitempty"`
}

// Row is an ordered sequence of cells; index position is column position.
type Row struct {
	Cells []Cell `json:"cells"`
}
