package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/palette"
)

const (
	// DefaultMatrixSheet is the sheet holding the extracted columns.
	DefaultMatrixSheet = "Extracted Columns"
	// DefaultLegendSheet is the sheet holding the color legend.
	DefaultLegendSheet = "Legend"

	defaultSystemLabel = " (or unrecognized)"
	linkColor          = "0563C1"
	maxColWidth        = 60
)

// MatrixOptions names the output sheets.
type MatrixOptions struct {
	MatrixSheet string
	LegendSheet string
}

// DefaultMatrixOptions returns the standard sheet names.
func DefaultMatrixOptions() MatrixOptions {
	return MatrixOptions{
		MatrixSheet: DefaultMatrixSheet,
		LegendSheet: DefaultLegendSheet,
	}
}

// Matrix writes the extraction table with sheets as columns and entry names
// as rows. Each header links to cell A1 of its source sheet. PK cells get the
// entry color and a bold font, FK cells the fixed FK fill; other cells stay
// unstyled.
func Matrix(f *excelize.File, t *models.ExtractionTable, reg *palette.Registry, sheet string) error {
	if _, err := ensureSheet(f, sheet); err != nil {
		return err
	}
	styles := newStyleCache(f)

	for col, s := range t.Sheets {
		header := cellName(col+1, 1)
		if err := f.SetCellStr(sheet, header, s.SheetName); err != nil {
			return err
		}
		display, tooltip := s.SheetName, "Go to "+s.SheetName
		if err := f.SetCellHyperLink(sheet, header, SheetRef(s.SheetName, "A1"), "Location",
			excelize.HyperlinkOpts{Display: &display, Tooltip: &tooltip}); err != nil {
			return fmt.Errorf("hyperlink for %q: %w", s.SheetName, err)
		}
		if err := styles.apply(sheet, header, styleSpec{FontColor: linkColor, Underline: true}); err != nil {
			return err
		}

		width := utf8.RuneCountInString(s.SheetName)
		for row, e := range s.Entries {
			cell := cellName(col+1, row+2)
			if err := f.SetCellStr(sheet, cell, e.Name); err != nil {
				return err
			}
			if spec, ok := entryStyle(e, reg); ok {
				if err := styles.apply(sheet, cell, spec); err != nil {
					return err
				}
			}
			width = max(width, utf8.RuneCountInString(e.Name))
		}

		colName, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(sheet, colName, colName, float64(min(width+2, maxColWidth))); err != nil {
			return err
		}
	}

	return nil
}

// entryStyle returns the cell style for an entry, ok=false for unstyled cells.
func entryStyle(e models.ColumnEntry, reg *palette.Registry) (styleSpec, bool) {
	switch e.Classification {
	case models.PK:
		c, err := palette.ToARGB(e.Color)
		if err != nil {
			return styleSpec{}, false
		}
		return styleSpec{Fill: c.RGB(), Bold: true}, true
	case models.FK:
		return styleSpec{Fill: reg.FKColor().RGB()}, true
	}
	return styleSpec{}, false
}

// Legend writes one horizontal row: "PK:", a swatch per system, "FK:" and the
// foreign key swatch.
func Legend(f *excelize.File, reg *palette.Registry, sheet string) error {
	if _, err := ensureSheet(f, sheet); err != nil {
		return err
	}
	styles := newStyleCache(f)
	bold := styleSpec{Bold: true}

	put := func(col int, value string, spec styleSpec) error {
		cell := cellName(col, 1)
		if err := f.SetCellStr(sheet, cell, value); err != nil {
			return err
		}
		colName, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(sheet, colName, colName, float64(min(utf8.RuneCountInString(value)+2, maxColWidth))); err != nil {
			return err
		}
		return styles.apply(sheet, cell, spec)
	}

	col := 1
	if err := put(col, "PK:", bold); err != nil {
		return err
	}
	def := reg.Default()
	for _, s := range reg.Systems() {
		col++
		label := s.Name
		if s.Code == def.Code {
			label += defaultSystemLabel
		}
		if err := put(col, label, styleSpec{Bold: true, Fill: s.Color.RGB()}); err != nil {
			return err
		}
	}

	col++
	if err := put(col, "FK:", bold); err != nil {
		return err
	}
	col++
	return put(col, "Foreign Key", styleSpec{Bold: true, Fill: reg.FKColor().RGB()})
}

// WriteMatrixWorkbook renders the extraction table and the legend into a new
// workbook saved at path.
func WriteMatrixWorkbook(path string, t *models.ExtractionTable, reg *palette.Registry, opts MatrixOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", opts.MatrixSheet); err != nil {
		return err
	}
	if err := Matrix(f, t, reg, opts.MatrixSheet); err != nil {
		return fmt.Errorf("render %s: %w", opts.MatrixSheet, err)
	}
	if err := Legend(f, reg, opts.LegendSheet); err != nil {
		return fmt.Errorf("render %s: %w", opts.LegendSheet, err)
	}

	idx, err := f.GetSheetIndex(opts.MatrixSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	return f.SaveAs(path)
}
