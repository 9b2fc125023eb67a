// Package main provides the CLI entry point for sheetview-go.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetview-go/pkg/sheetview/models"
	"github.com/ukaji3/sheetview-go/pkg/sheetview/output"
	"github.com/ukaji3/sheetview-go/pkg/sheetview/parser"
	"github.com/ukaji3/sheetview-go/pkg/sheetview/render"
	"github.com/ukaji3/sheetview-go/pkg/sheetview/stream"
)

var (
	outputPath string
	sheetName  string
	verbose    bool

	headerRows int
	compact    bool
	pageSize   int
	pageNumber int

	chunkRows  int
	rangeRef   string
	columns    []string
	colIndices []int
	startRow   int
	maxRows    int
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetview",
		Short: "Render spreadsheets to styled HTML and export them in chunks",
		Long: `sheetview renders parsed spreadsheets into styled HTML tables with
positioned chart overlays, and provides memory-bounded chunked export
of large sheets as JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Sheet name (default: all sheets for render, first for export)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable warning output")

	renderCmd := &cobra.Command{
		Use:   "render [input.xlsx]",
		Short: "Render a workbook as styled HTML",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&headerRows, "header-rows", 1, "Number of leading rows rendered as table header")
	renderCmd.Flags().BoolVar(&compact, "compact", false, "Strip whitespace between tags")
	renderCmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (0 renders the whole sheet)")
	renderCmd.Flags().IntVar(&pageNumber, "page", 1, "Page number to render (1-based)")

	exportCmd := &cobra.Command{
		Use:   "export [input.xlsx]",
		Short: "Export sheet rows as newline-delimited JSON chunks",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().IntVar(&chunkRows, "chunk-rows", 1000, "Rows per chunk")
	exportCmd.Flags().StringVar(&rangeRef, "range", "", `Range filter like "A1:D10" (overrides row/column flags)`)
	exportCmd.Flags().StringSliceVar(&columns, "columns", nil, "Column names to include")
	exportCmd.Flags().IntSliceVar(&colIndices, "column-indices", nil, "0-based column indices to include")
	exportCmd.Flags().IntVar(&startRow, "start-row", 0, "First row to export (0-based)")
	exportCmd.Flags().IntVar(&maxRows, "max-rows", 0, "Maximum rows to export (0 = all)")

	infoCmd := &cobra.Command{
		Use:   "info [input.xlsx]",
		Short: "Print sheet metadata (row count, headers, streaming support)",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(renderCmd, exportCmd, infoCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	sheets, err := parser.New(logger).Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if sheetName != "" {
		sheets = selectSheet(sheets, sheetName)
		if len(sheets) == 0 {
			return fmt.Errorf("sheet %q not found", sheetName)
		}
	}

	r := render.New(render.Options{
		HeaderRows: headerRows,
		Compact:    compact,
		Logger:     logger,
	})

	var parts []string
	for _, sheet := range sheets {
		if pageSize > 0 {
			html, _ := r.Page(sheet, pageSize, pageNumber)
			parts = append(parts, html)
		} else {
			parts = append(parts, r.Sheet(sheet))
		}
	}
	return writeOutput(strings.Join(parts, "\n"))
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	reader, name, closeFn, err := openReader(args[0], logger)
	if err != nil {
		return err
	}
	defer closeFn()

	filter := &stream.Filter{
		Columns:       columns,
		ColumnIndices: colIndices,
		StartRow:      startRow,
		MaxRows:       maxRows,
		RangeRef:      rangeRef,
	}
	chunks, err := reader.Chunks(chunkRows, filter)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	w := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := output.WriteChunks(w, name, chunks); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	reader, _, closeFn, err := openReader(args[0], logger)
	if err != nil {
		return err
	}
	defer closeFn()

	info, err := reader.Info()
	if err != nil {
		return err
	}
	data, err := output.ToJSON(info, pretty)
	if err != nil {
		return err
	}
	return writeOutput(string(data))
}

// openReader builds a streaming reader over the file, lazily when the
// format supports it, over a fully parsed sheet otherwise.
func openReader(path string, logger *zap.Logger) (*stream.Reader, string, func(), error) {
	if parser.SupportsStreaming(path) {
		lazy, err := parser.NewLazySheet(path, sheetName)
		if err != nil {
			return nil, "", nil, fmt.Errorf("opening %s: %w", path, err)
		}
		reader := stream.NewReader(lazy, stream.WithLogger(logger), stream.WithStreaming(true))
		return reader, lazy.Name(), func() { lazy.Close() }, nil
	}

	sheets, err := parser.New(logger).Parse(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("parsing failed: %w", err)
	}
	if sheetName != "" {
		sheets = selectSheet(sheets, sheetName)
	}
	if len(sheets) == 0 {
		return nil, "", nil, fmt.Errorf("no sheets in %s", path)
	}
	sheet := sheets[0]
	reader := stream.NewReader(stream.NewSheetSource(sheet), stream.WithLogger(logger))
	return reader, sheet.Name, func() {}, nil
}

func selectSheet(sheets []*models.Sheet, name string) []*models.Sheet {
	for _, s := range sheets {
		if s.Name == name {
			return []*models.Sheet{s}
		}
	}
	return nil
}

func writeOutput(content string) error {
	if outputPath == "" {
		fmt.Println(content)
		return nil
	}
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outputPath, []byte(content+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
