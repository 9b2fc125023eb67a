package render

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
)

// Options configures HTML rendering.
type Options struct {
	// HeaderRows is the number of leading rows rendered inside <thead>.
	HeaderRows int
	// Compact collapses inter-tag whitespace in the output.
	Compact bool
	// Logger receives warnings for recoverable defects (bad merge
	// ranges, failed chart bodies). Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the default rendering options: one header row,
// full output.
func DefaultOptions() Options {
	return Options{HeaderRows: 1}
}

// Renderer assembles the full HTML fragment for a sheet: deduped style
// classes, the table skeleton, and chart/image overlays in one container.
type Renderer struct {
	opts   Options
	logger *zap.Logger
	table  *TableBuilder
}

// New returns a renderer with the given options.
func New(opts Options) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		opts:   opts,
		logger: logger,
		table:  NewTableBuilder(logger),
	}
}

// Sheet renders one sheet as an HTML fragment: a <style> block, then a
// relatively positioned container holding the table with any positioned
// chart/image overlays layered above it, then charts without anchors.
func (r *Renderer) Sheet(sheet *models.Sheet) string {
	styles := CollectStyles(sheet)

	var b strings.Builder
	b.WriteString(GenerateCSS(styles))
	b.WriteString("\n")
	b.WriteString(`<div class="table-container">`)
	b.WriteString("\n")
	b.WriteString(r.table.Build(sheet, styles, r.opts.HeaderRows))
	if overlays := OverlayCharts(sheet, r.logger); overlays != "" {
		b.WriteString("\n")
		b.WriteString(overlays)
	}
	b.WriteString("\n</div>")
	if standalone := StandaloneCharts(sheet.Charts, r.logger); standalone != "" {
		b.WriteString("\n")
		b.WriteString(standalone)
	}

	out := b.String()
	if r.opts.Compact {
		out = compactHTML(out)
	}
	return out
}

var interTagWS = regexp.MustCompile(`>\s+<`)

// compactHTML strips whitespace between tags.
func compactHTML(s string) string {
	return interTagWS.ReplaceAllString(strings.TrimSpace(s), "><")
}
