package models

// Style holds the visual properties of a cell. Optional properties are
// pointers so that "not set" is distinguishable from a zero value.
type Style struct {
	// Font properties.
	FontName  *string  `json:"font_name,omitempty"`
	FontSize  *float64 `json:"font_size,omitempty"`
	FontColor *string  `json:"font_color,omitempty"`
	Bold      bool     `json:"bold,omitempty"`
	Italic    bool     `json:"italic,omitempty"`
	Underline bool     `json:"underline,omitempty"`

	// BackgroundColor is the fill color as "#RRGGBB", empty if default.
	BackgroundColor string `json:"background_color,omitempty"`

	// Alignment. Empty means unspecified.
	TextAlign     string `json:"text_align,omitempty"`     // left, center, right, justify
	VerticalAlign string `json:"vertical_align,omitempty"` // top, middle, bottom

	// Borders. Each side holds a line style name (thin, medium, ...) or
	// empty for no border. BorderColor applies to all drawn sides.
	BorderTop    string `json:"border_top,omitempty"`
	BorderBottom string `json:"border_bottom,omitempty"`
	BorderLeft   string `json:"border_left,omitempty"`
	BorderRight  string `json:"border_right,omitempty"`
	BorderColor  string `json:"border_color,omitempty"`

	WrapText     bool   `json:"wrap_text,omitempty"`
	NumberFormat string `json:"number_format,omitempty"`

	// Hyperlink is the link target URL, if the cell is a link.
	Hyperlink string `json:"hyperlink,omitempty"`
	// Comment is the cell's comment text, rendered as a tooltip.
	Comment string `json:"comment,omitempty"`
}

// HasBorder reports whether any border side is set.
func (s *Style) HasBorder() bool {
	if s == nil {
		return false
	}
	return s.BorderTop != "" || s.BorderBottom != "" || s.BorderLeft != "" || s.BorderRight != ""
}
