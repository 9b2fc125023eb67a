package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// StyleKey derives a stable dedup key from a style's visual properties.
// Two styles with the same visible appearance produce the same key.
func StyleKey(s *models.Style) string {
	if s == nil {
		return "default"
	}
	var parts []string
	if s.FontName != nil {
		parts = append(parts, "fn:"+*s.FontName)
	}
	if s.FontSize != nil {
		parts = append(parts, fmt.Sprintf("fs:%g", *s.FontSize))
	}
	if s.FontColor != nil {
		parts = append(parts, "fc:"+*s.FontColor)
	}
	if s.BackgroundColor != "" {
		parts = append(parts, "bg:"+s.BackgroundColor)
	}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.Underline {
		parts = append(parts, "underline")
	}
	if s.TextAlign != "" {
		parts = append(parts, "ta:"+s.TextAlign)
	}
	if s.VerticalAlign != "" {
		parts = append(parts, "va:"+s.VerticalAlign)
	}
	if s.BorderTop != "" {
		parts = append(parts, "bt:"+s.BorderTop)
	}
	if s.BorderBottom != "" {
		parts = append(parts, "bb:"+s.BorderBottom)
	}
	if s.BorderLeft != "" {
		parts = append(parts, "bl:"+s.BorderLeft)
	}
	if s.BorderRight != "" {
		parts = append(parts, "br:"+s.BorderRight)
	}
	if s.BorderColor != "" {
		parts = append(parts, "bc:"+s.BorderColor)
	}
	if s.WrapText {
		parts = append(parts, "wrap")
	}
	if s.NumberFormat != "" {
		parts = append(parts, "nf:"+s.NumberFormat)
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, "|")
}

// CollectStyles walks a sheet and assigns a CSS class id (style_1,
// style_2, ...) to every distinct cell style, in first-seen order.
// The returned map is class id -> style.
func CollectStyles(sheet *models.Sheet) map[string]*models.Style {
	styles := make(map[string]*models.Style)
	seen := make(map[string]bool)
	counter := 0
	for _, row := range sheet.Rows {
		for _, cell := range row.Cells {
			if cell.Style == nil {
				continue
			}
			key := StyleKey(cell.Style)
			if seen[key] {
				continue
			}
			seen[key] = true
			counter++
			styles[fmt.Sprintf("style_%d", counter)] = cell.Style
		}
	}
	return styles
}

// styleKeyToID inverts a class-id map into a key -> class-id lookup for
// per-cell class resolution.
func styleKeyToID(styles map[string]*models.Style) map[string]string {
	m := make(map[string]string, len(styles))
	for id, s := range styles {
		m[StyleKey(s)] = id
	}
	return m
}

// baseCSS is the document-level style block shared by every rendered
// table.
const baseCSS = `table { border-collapse: collapse; width: 100%; font-family: Arial, sans-serif; color: #000000; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: left; vertical-align: top; overflow: hidden; }
th { background-color: #f5f5f5; font-weight: bold; }
.wrap-text { white-space: normal; word-wrap: break-word; }
.text-overflow { overflow: visible; white-space: nowrap; }
.table-container { position: relative; }
.chart-overlay { position: absolute; z-index: 10; }
.chart-error, .chart-placeholder { border: 1px dashed #c00; color: #c00; padding: 4px; font-size: 10pt; }
`

// GenerateCSS emits the base style block plus one rule per deduped cell
// style class, in class-id order.
func GenerateCSS(styles map[string]*models.Style) string {
	var b strings.Builder
	b.WriteString("<style>\n")
	b.WriteString(baseCSS)

	ids := make([]string, 0, len(styles))
	for id := range styles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		// style_2 before style_10
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		css := styleCSS(styles[id])
		if css != "" {
			fmt.Fprintf(&b, ".%s { %s }\n", id, css)
		}
	}
	b.WriteString("</style>")
	return b.String()
}

// styleCSS renders the CSS declarations of one cell style.
func styleCSS(s *models.Style) string {
	var parts []string
	if s.FontName != nil {
		parts = append(parts, fmt.Sprintf("font-family: %s;", fontFamilyCSS(*s.FontName)))
	}
	if s.FontSize != nil {
		parts = append(parts, fmt.Sprintf("font-size: %s;", fontSizeCSS(*s.FontSize)))
	}
	if s.FontColor != nil {
		parts = append(parts, fmt.Sprintf("color: %s;", *s.FontColor))
	}
	if s.BackgroundColor != "" {
		parts = append(parts, fmt.Sprintf("background-color: %s;", s.BackgroundColor))
	}
	if s.Bold {
		parts = append(parts, "font-weight: bold;")
	}
	if s.Italic {
		parts = append(parts, "font-style: italic;")
	}
	if s.Underline {
		parts = append(parts, "text-decoration: underline;")
	}
	if s.TextAlign != "" {
		parts = append(parts, fmt.Sprintf("text-align: %s;", s.TextAlign))
	}
	if s.VerticalAlign != "" {
		parts = append(parts, fmt.Sprintf("vertical-align: %s;", s.VerticalAlign))
	}
	parts = append(parts, borderCSS(s)...)
	if s.WrapText {
		parts = append(parts, "white-space: normal; word-wrap: break-word;")
	}
	return strings.Join(parts, " ")
}

// borderStyleCSS maps spreadsheet border style names onto CSS border
// shorthand fragments.
var borderStyleCSS = map[string]string{
	"thin":   "1px solid",
	"medium": "2px solid",
	"thick":  "3px solid",
	"dashed": "1px dashed",
	"dotted": "1px dotted",
	"double": "3px double",
	"hair":   "1px solid",
}

func borderCSS(s *models.Style) []string {
	color := s.BorderColor
	if color == "" {
		color = "#000000"
	}
	var parts []string
	sides := []struct {
		prop  string
		style string
	}{
		{"border-top", s.BorderTop},
		{"border-bottom", s.BorderBottom},
		{"border-left", s.BorderLeft},
		{"border-right", s.BorderRight},
	}
	for _, side := range sides {
		if side.style == "" {
			continue
		}
		shorthand, ok := borderStyleCSS[side.style]
		if !ok {
			shorthand = "1px solid"
		}
		parts = append(parts, fmt.Sprintf("%s: %s %s;", side.prop, shorthand, color))
	}
	return parts
}
