package srcmatrix

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/classify"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/palette"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/parser"
)

// Extract extracts entity columns from every qualifying sheet of an xlsx file.
func Extract(path string, opts Options) (*models.ExtractionTable, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return ExtractWorkbook(f, filepath.Base(path), opts), nil
}

// ExtractWorkbook extracts from an open workbook. Sheets are processed in
// workbook order; skipped or unreadable sheets are logged and left out.
func ExtractWorkbook(f *excelize.File, bookName string, opts Options) *models.ExtractionTable {
	x := newExtractor(opts)
	table := &models.ExtractionTable{BookName: bookName, Sheets: []models.SheetResult{}}

	for _, sheetName := range f.GetSheetList() {
		g, err := parser.LoadGrid(f, sheetName)
		if err != nil {
			// Log warning and continue with the remaining sheets
			x.log.Warn("cannot read sheet", zap.Error(NewExtractionError(sheetName, ComponentGrid, err)))
			continue
		}

		res, err := x.sheet(sheetName, g)
		if err != nil {
			x.log.Debug("sheet skipped", zap.String("sheet", sheetName), zap.Error(err))
			continue
		}

		x.log.Debug("sheet extracted",
			zap.String("sheet", sheetName),
			zap.Int("entries", len(res.Entries)),
			zap.Int("pk", res.Count(models.PK)),
			zap.Int("fk", res.Count(models.FK)),
		)
		table.Add(res)
	}

	return table
}

// ExtractSheet extracts one sheet grid. A sheet that does not qualify yields a
// *SkipError wrapping ErrNarrowSheet or ErrMissingHeaderMarker.
func ExtractSheet(sheetName string, g parser.Grid, opts Options) (models.SheetResult, error) {
	return newExtractor(opts).sheet(sheetName, g)
}

type extractor struct {
	layout     Layout
	classifier *classify.Classifier
	registry   *palette.Registry
	log        *zap.Logger
}

func newExtractor(opts Options) *extractor {
	return &extractor{
		layout:     opts.Layout,
		classifier: classify.New(classify.DefaultRules(opts.StrictFK)),
		registry:   opts.registry(),
		log:        opts.logger(),
	}
}

func (x *extractor) sheet(sheetName string, g parser.Grid) (models.SheetResult, error) {
	if b, hasData := parser.DataBounds(g); b.Width() < x.layout.MinColumns {
		reason := fmt.Errorf("%w: %d < %d", ErrNarrowSheet, b.Width(), x.layout.MinColumns)
		if hasData {
			reason = fmt.Errorf("%w: %d < %d (data in %s)", ErrNarrowSheet, b.Width(), x.layout.MinColumns, b.Range())
		}
		return models.SheetResult{}, &SkipError{SheetName: sheetName, Reason: reason}
	}

	headerRow, ok := parser.LocateHeader(g, x.layout.NameColumn, x.layout.Marker)
	if !ok {
		return models.SheetResult{}, &SkipError{SheetName: sheetName, Reason: ErrMissingHeaderMarker}
	}

	counter := classify.NewCounter()
	def := x.registry.Default()
	entries := []models.ColumnEntry{}

	for row, name := range parser.WalkColumn(g, x.layout.NameColumn, headerRow+1) {
		desc := g.CellAt(row, x.layout.DescriptionColumn).String()
		class := x.classifier.Classify(desc)

		entry := models.ColumnEntry{
			Name:           name.String(),
			Row:            row + 1,
			Classification: class,
			SequenceID:     counter.Next(class),
			Description:    desc,
			SourceSystem:   def.Name,
			Color:          string(def.Color),
		}

		if class == models.PK {
			p := classify.ResolveProvenance(g, x.layout.LookupColumn, name, x.registry)
			entry.SourceSystem = p.System.Name
			entry.Color = string(p.System.Color)
			if !p.Resolved {
				x.log.Debug("provenance defaulted",
					zap.String("sheet", sheetName),
					zap.String("column", entry.Name),
					zap.Int("match_row", p.MatchRow),
					zap.String("code", p.Code),
				)
			}
		}

		entries = append(entries, entry)
	}

	return models.SheetResult{
		SheetName: sheetName,
		HeaderRow: headerRow + 1,
		Entries:   entries,
	}, nil
}
