package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// grouped formats numbers with thousands separators.
var grouped = message.NewPrinter(language.English)

// numberFormats maps recognized literal format patterns to pure
// formatting functions. Unmatched patterns fall through to the heuristics
// in applyNumberFormat.
var numberFormats = map[string]func(float64) string{
	"General":  func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"0":        func(v float64) string { return fmt.Sprintf("%.0f", v) },
	"0.0":      func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"0.00":     func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"#,##0":    func(v float64) string { return grouped.Sprintf("%.0f", v) },
	"#,##0.0":  func(v float64) string { return grouped.Sprintf("%.1f", v) },
	"#,##0.00": func(v float64) string { return grouped.Sprintf("%.2f", v) },
	"0%":       func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	"0.0%":     func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	"0.00%":    func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) },
}

// dateFormats maps Excel date patterns (matched by containment, lowercase)
// to Go reference layouts.
var dateFormats = []struct {
	pattern string
	layout  string
}{
	{"yyyy-mm-dd", "2006-01-02"},
	{"mm/dd/yyyy", "01/02/2006"},
	{"dd/mm/yyyy", "02/01/2006"},
	{"yyyy/mm/dd", "2006/01/02"},
	{"mm-dd-yyyy", "01-02-2006"},
	{"dd-mm-yyyy", "02-01-2006"},
}

// isCJKDateFormat reports whether a number format uses the CJK month/day
// markers.
func isCJKDateFormat(format string) bool {
	return strings.Contains(format, "月") && strings.Contains(format, "日")
}

// formatCJKDate renders a date in the CJK style the format asks for:
// with a year part when the format contains a year marker, month/day
// otherwise.
func formatCJKDate(t time.Time, format string) string {
	if strings.Contains(format, "年") {
		return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
	}
	return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
}

// applyNumberFormat renders a value under a number format. It reports
// ok=false when the format does not apply to the value; callers then fall
// back to raw stringification.
func applyNumberFormat(v models.Value, format string) (string, bool) {
	if fn, ok := numberFormats[format]; ok {
		if v.Kind() == models.KindNumber {
			return fn(v.Num()), true
		}
		return v.String(), true
	}

	// A numeric value under a CJK month/day format is a serial date.
	if v.Kind() == models.KindNumber && isCJKDateFormat(format) {
		return formatCJKDate(models.SerialToTime(v.Num()), format), true
	}

	if v.Kind() == models.KindDateTime {
		if isCJKDateFormat(format) {
			return formatCJKDate(v.Time(), format), true
		}
		lower := strings.ToLower(format)
		if strings.Contains(lower, "yyyy") || strings.Contains(lower, "mm") || strings.Contains(lower, "dd") {
			for _, df := range dateFormats {
				if strings.Contains(lower, df.pattern) {
					return v.Time().Format(df.layout), true
				}
			}
			return v.Time().Format("2006-01-02"), true
		}
	}

	if v.Kind() == models.KindNumber {
		if strings.Contains(format, "%") {
			return fmt.Sprintf("%.1f%%", v.Num()*100), true
		}
		if strings.Contains(format, ",") {
			return grouped.Sprintf("%.2f", v.Num()), true
		}
	}

	return "", false
}

// formatBareFloat renders a float with two decimals, trimming trailing
// zeros and the decimal point, so integral values render as integers.
func formatBareFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
