package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/output"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/render"
)

type extractFlags struct {
	outputPath string
	jsonPath   string
	pretty     bool
	summary    bool
	sheetsDir  string
}

func newExtractCmd(a *app) *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract <input.xlsx>",
		Short: "Extract entity columns and write the annotated workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExtract(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output workbook (default: <input dir>/<prefix>_<timestamp>.xlsx)")
	cmd.Flags().StringVar(&f.jsonPath, "json", "", "Also write the extraction as JSON (- for stdout)")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "Print a per-sheet summary table")
	cmd.Flags().StringVar(&f.sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")
	cmd.Flags().String("marker", "", "Header marker text (default: entity column name)")
	cmd.Flags().Bool("strict-fk", false, "Require FK as a whole word")

	return cmd
}

func (a *app) runExtract(cmd *cobra.Command, input string, f extractFlags) error {
	opts, err := a.cfg.ExtractOptions(a.log)
	if err != nil {
		return err
	}

	tbl, err := srcmatrix.Extract(input, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	a.log.Info("extraction complete",
		zap.String("book", tbl.BookName),
		zap.Int("sheets", len(tbl.Sheets)),
		zap.Int("rows", tbl.MaxEntries()),
	)

	outPath := f.outputPath
	if outPath == "" {
		outPath = a.cfg.DefaultOutputPath(input, time.Now())
	}
	if err := render.WriteMatrixWorkbook(outPath, tbl, opts.Registry, a.cfg.MatrixOptions()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.log.Info("output saved", zap.String("path", outPath))

	if f.jsonPath != "" {
		if err := writeJSON(cmd.OutOrStdout(), f.jsonPath, tbl, f.pretty); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	}

	if f.sheetsDir != "" {
		if err := writeSheetFiles(tbl, f.sheetsDir, f.pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if f.summary {
		output.WriteSummary(cmd.OutOrStdout(), tbl)
	}

	return nil
}

func writeJSON(stdout io.Writer, path string, tbl *models.ExtractionTable, pretty bool) error {
	data, err := output.ToJSON(tbl, pretty)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func writeSheetFiles(tbl *models.ExtractionTable, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range tbl.Sheets {
		sheet := &tbl.Sheets[i]
		data, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fileName(sheet.SheetName)+".json")
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

// fileName replaces path separators in a sheet name.
func fileName(sheet string) string {
	out := []rune(sheet)
	for i, r := range out {
		if r == '/' || r == '\\' {
			out[i] = '_'
		}
	}
	return string(out)
}

func newLegendCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Print the system color registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := a.cfg.Registry()
			if err != nil {
				return err
			}
			output.WriteLegend(cmd.OutOrStdout(), reg)
			return nil
		},
	}
}
