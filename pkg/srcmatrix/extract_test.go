package srcmatrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/palette"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/parser"
)

func setCells(t *testing.T, f *excelize.File, sheet string, cells map[string]any) {
	t.Helper()
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, ref, v))
	}
}

// writeSourceMatrix builds a workbook covering the main extraction scenarios.
func writeSourceMatrix(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Customers"))

	setCells(t, f, "Customers", map[string]any{
		"H1":  "wide",
		"D2":  "Entity Column Name",
		"D3":  "CustomerId",
		"G3":  "Primary Key, not null",
		"D4":  "CustomerName",
		"D6":  "AfterSentinel",
		"G6":  "Primary Key",
		"A10": "CustomerId",
		"A11": "SYS01",
	})
	setCells(t, f, "Narrow", map[string]any{
		"D2": "Entity Column Name",
		"D3": "Id",
		"E3": "Primary Key",
	})
	setCells(t, f, "Orders", map[string]any{
		"D1": "entity column name",
		"D2": "OrderId",
		"G2": "unique identifier",
		"D3": "OrderFk",
		"G3": "fk to orders table",
		"D4": "CustomerFk",
		"G4": "Foreign key to customers",
		"D5": "LineNo",
		"G5": "PK part 2",
		"A7": "OrderFk",
		"A8": "SYS02",
	})
	setCells(t, f, "NoMarker", map[string]any{
		"A1": "a", "H1": "h", "D3": "CustomerId",
	})
	setCells(t, f, "Blank", map[string]any{
		"H1": "wide",
		"D4": "ENTITY COLUMN NAME",
		"D6": "Late",
	})

	path := filepath.Join(t.TempDir(), "DWH_Source_Matrix.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExtract(t *testing.T) {
	path := writeSourceMatrix(t)

	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)

	tbl, err := Extract(path, opts)
	require.NoError(t, err)

	assert.Equal(t, "DWH_Source_Matrix.xlsx", tbl.BookName)
	assert.Equal(t, []string{"Customers", "Orders", "Blank"}, tbl.SheetNames())

	customers, ok := tbl.Sheet("Customers")
	require.True(t, ok)
	assert.Equal(t, 2, customers.HeaderRow)
	assert.Equal(t, []string{"CustomerId", "CustomerName"}, customers.Names())

	pk := customers.Entries[0]
	assert.Equal(t, models.PK, pk.Classification)
	assert.Equal(t, "PK01", pk.SequenceID)
	assert.Equal(t, "D365", pk.SourceSystem)
	assert.Equal(t, "FFD9E1F2", pk.Color)
	assert.Equal(t, 3, pk.Row)
	assert.Equal(t, "Primary Key, not null", pk.Description)

	plain := customers.Entries[1]
	assert.Equal(t, models.None, plain.Classification)
	assert.Empty(t, plain.SequenceID)
	assert.Empty(t, plain.Description)
	assert.Equal(t, "DWH", plain.SourceSystem)
	assert.Equal(t, "FFEAD1DC", plain.Color)

	orders, ok := tbl.Sheet("Orders")
	require.True(t, ok)
	require.Len(t, orders.Entries, 4)

	assert.Equal(t, "PK01", orders.Entries[0].SequenceID)
	assert.Equal(t, "DWH", orders.Entries[0].SourceSystem, "no lookup match defaults to DWH")

	assert.Equal(t, models.FK, orders.Entries[1].Classification)
	assert.Equal(t, "FK01", orders.Entries[1].SequenceID)
	assert.Equal(t, "DWH", orders.Entries[1].SourceSystem, "FK entries never resolve provenance")

	assert.Equal(t, "FK02", orders.Entries[2].SequenceID)
	assert.Equal(t, "PK02", orders.Entries[3].SequenceID)

	blank, ok := tbl.Sheet("Blank")
	require.True(t, ok)
	assert.Equal(t, 4, blank.HeaderRow)
	assert.Empty(t, blank.Entries)

	_, ok = tbl.Sheet("Narrow")
	assert.False(t, ok)
	_, ok = tbl.Sheet("NoMarker")
	assert.False(t, ok)
}

func TestExtractSkipsUnreadableSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	setCells(t, f, "Data", map[string]any{
		"D1": "Entity Column Name",
		"D2": "CustomerId",
		"G2": "Primary Key",
		"D3": "CustomerName",
		"G3": "free text",
	})
	require.NoError(t, f.AddChartSheet("Chart", &excelize.Chart{
		Type:   excelize.Col,
		Series: []excelize.ChartSeries{{Name: "Data!$D$1", Categories: "Data!$D$2:$D$3", Values: "Data!$G$2:$G$3"}},
	}))
	path := filepath.Join(t.TempDir(), "with_chart.xlsx")
	require.NoError(t, f.SaveAs(path))

	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	tbl, err := Extract(path, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data"}, tbl.SheetNames())

	warns := logs.FilterMessage("cannot read sheet").All()
	require.Len(t, warns, 1)
	assert.Equal(t, zapcore.WarnLevel, warns[0].Level)
	require.Len(t, warns[0].Context, 1)
	logged, ok := warns[0].Context[0].Interface.(error)
	require.True(t, ok)
	var extErr *ExtractionError
	require.ErrorAs(t, logged, &extErr)
	assert.Equal(t, "Chart", extErr.SheetName)
	assert.Equal(t, ComponentGrid, extErr.Component)
}

func TestExtractIsRepeatable(t *testing.T) {
	path := writeSourceMatrix(t)

	first, err := Extract(path, DefaultOptions())
	require.NoError(t, err)
	second, err := Extract(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(t.TempDir(), "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a zip"), 0644))
	_, err = Extract(bad, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

// sheetGrid lays out rows of (colA, colD, colG) triples on an 8-column grid.
func sheetGrid(rows ...[3]string) parser.Grid {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r[0], "", "", r[1], "", "", r[2], "x"}
	}
	return parser.GridFromStrings(out)
}

func TestExtractSheet(t *testing.T) {
	g := sheetGrid(
		[3]string{"", "Entity Column Name", "Description"},
		[3]string{"", "CustomerId", "Primary Key, not null"},
		[3]string{"", "AccountId", "PK"},
		[3]string{"", "RegionFk", "fk to regions"},
		[3]string{"CustomerId", "", ""},
		[3]string{"SRC04", "", ""},
	)

	res, err := ExtractSheet("S", g, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Entries, 3)

	assert.Equal(t, "PDM", res.Entries[0].SourceSystem)
	assert.Equal(t, "FFF4CCCC", res.Entries[0].Color)
	assert.Equal(t, "PK02", res.Entries[1].SequenceID)
	assert.Equal(t, "DWH", res.Entries[1].SourceSystem)
	assert.Equal(t, "FK01", res.Entries[2].SequenceID)
}

func TestExtractSheetSkips(t *testing.T) {
	narrow := parser.GridFromStrings([][]string{
		{"", "", "", "Entity Column Name", "", ""},
		{"", "", "", "CustomerId", "", "x"},
	})
	_, err := ExtractSheet("Narrow", narrow, DefaultOptions())
	var skip *SkipError
	require.ErrorAs(t, err, &skip)
	assert.Equal(t, "Narrow", skip.SheetName)
	assert.ErrorIs(t, err, ErrNarrowSheet)
	assert.Contains(t, err.Error(), "6 < 7 (data in D1:F2)")

	_, err = ExtractSheet("Empty", parser.GridFromStrings(nil), DefaultOptions())
	assert.ErrorIs(t, err, ErrNarrowSheet)
	assert.Contains(t, err.Error(), "0 < 7")

	noMarker := sheetGrid([3]string{"", "Column", "x"})
	_, err = ExtractSheet("NoMarker", noMarker, DefaultOptions())
	assert.ErrorIs(t, err, ErrMissingHeaderMarker)
}

func TestExtractSheetCustomRegistryAndLayout(t *testing.T) {
	reg, err := palette.Default().With(palette.System{Code: "42", Name: "Kafka", Color: "123456"})
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Registry = reg
	opts.Layout.Marker = "column"

	g := sheetGrid(
		[3]string{"EventId", "Column", ""},
		[3]string{"T-42", "EventId", "unique key"},
	)

	res, err := ExtractSheet("Events", g, opts)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Kafka", res.Entries[0].SourceSystem)
	assert.Equal(t, "FF123456", res.Entries[0].Color)
}

func TestExtractSheetStrictFK(t *testing.T) {
	g := sheetGrid(
		[3]string{"", "Entity Column Name", ""},
		[3]string{"", "Flag", "Selfknown flag"},
	)

	res, err := ExtractSheet("S", g, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.FK, res.Entries[0].Classification)

	opts := DefaultOptions()
	opts.StrictFK = true
	res, err = ExtractSheet("S", g, opts)
	require.NoError(t, err)
	assert.Equal(t, models.None, res.Entries[0].Classification)
}
