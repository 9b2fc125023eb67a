package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// FormatCell renders one cell's value as an HTML-safe string, applying the
// cell's number format when one is set. Formatting problems never
// propagate: the raw stringified value is used instead.
func FormatCell(cell models.Cell) string {
	if cell.Value.Kind() == models.KindRichText {
		return formatRichText(cell.Value.RichText())
	}
	if cell.Value.IsNull() {
		return ""
	}
	if cell.Style != nil && cell.Style.NumberFormat != "" {
		if s, ok := applyNumberFormat(cell.Value, cell.Style.NumberFormat); ok {
			return html.EscapeString(s)
		}
	}
	if cell.Value.Kind() == models.KindNumber {
		return html.EscapeString(formatBareFloat(cell.Value.Num()))
	}
	return html.EscapeString(cell.Value.String())
}

// formatRichText emits one inline-styled span per fragment, concatenated
// in order.
func formatRichText(frags []models.RichTextFragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(formatFragment(f))
	}
	return b.String()
}

func formatFragment(f models.RichTextFragment) string {
	var css []string
	if f.Style.FontName != nil {
		css = append(css, fmt.Sprintf("font-family: %s;", fontFamilyCSS(*f.Style.FontName)))
	}
	if f.Style.FontSize != nil {
		css = append(css, fmt.Sprintf("font-size: %s;", fontSizeCSS(*f.Style.FontSize)))
	}
	if f.Style.FontColor != nil {
		css = append(css, fmt.Sprintf("color: %s;", *f.Style.FontColor))
	}
	if f.Style.Bold {
		css = append(css, "font-weight: bold;")
	}
	if f.Style.Italic {
		css = append(css, "font-style: italic;")
	}
	if f.Style.Underline {
		css = append(css, "text-decoration: underline;")
	}

	if len(css) == 0 {
		return fmt.Sprintf("<span>%s</span>", html.EscapeString(f.Text))
	}
	return fmt.Sprintf(`<span style=%q>%s</span>`, strings.Join(css, " "), html.EscapeString(f.Text))
}

// fontFamilyCSS quotes a font name for CSS, adding a generic fallback.
func fontFamilyCSS(name string) string {
	if strings.ContainsAny(name, " ,") {
		return fmt.Sprintf("'%s', sans-serif", name)
	}
	return name + ", sans-serif"
}

// fontSizeCSS renders a point size, trimming a trailing .0.
func fontSizeCSS(size float64) string {
	s := fmt.Sprintf("%.1fpt", size)
	return strings.Replace(s, ".0pt", "pt", 1)
}
