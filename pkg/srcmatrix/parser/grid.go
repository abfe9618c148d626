// Package parser provides positional access to source-matrix sheets.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Kind is the type of a cell value.
type Kind int

const (
	// KindEmpty is a blank cell.
	KindEmpty Kind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
)

// CellValue is a single cell: empty, text or number.
type CellValue struct {
	Kind   Kind
	Text   string
	Number float64
}

// Empty is the zero CellValue.
var Empty = CellValue{}

// Text returns a text cell. An empty string yields Empty.
func Text(s string) CellValue {
	if s == "" {
		return Empty
	}
	return CellValue{Kind: KindText, Text: s}
}

// Number returns a numeric cell.
func Number(n float64) CellValue {
	return CellValue{Kind: KindNumber, Number: n}
}

// IsEmpty reports whether the cell is blank.
func (v CellValue) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// String coerces the value to text. Numbers use the shortest decimal form,
// so 101 renders as "101" rather than "101.0".
func (v CellValue) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return ""
}

// Equal is type-sensitive: text "101" is not equal to number 101.
func (v CellValue) Equal(o CellValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindText:
		return v.Text == o.Text
	case KindNumber:
		return v.Number == o.Number
	}
	return true
}

// Grid is a read-only rectangular view of one sheet. Rows and columns are 0-based;
// cells outside the populated area read as Empty.
type Grid interface {
	CellAt(row, col int) CellValue
	Rows() int
	Cols() int
}

// MemGrid is an in-memory Grid.
type MemGrid struct {
	cells [][]CellValue
	cols  int
}

// NewMemGrid builds a grid from rows of cells. Rows may be ragged.
func NewMemGrid(rows [][]CellValue) *MemGrid {
	g := &MemGrid{cells: rows}
	for _, r := range rows {
		if len(r) > g.cols {
			g.cols = len(r)
		}
	}
	return g
}

// GridFromStrings builds a grid from string rows, detecting numbers the way
// LoadGrid does for untyped cells.
func GridFromStrings(rows [][]string) *MemGrid {
	cells := make([][]CellValue, len(rows))
	for i, row := range rows {
		cells[i] = make([]CellValue, len(row))
		for j, s := range row {
			cells[i][j] = parseValue(s)
		}
	}
	return NewMemGrid(cells)
}

// CellAt returns the cell at (row, col).
func (g *MemGrid) CellAt(row, col int) CellValue {
	if row < 0 || row >= len(g.cells) || col < 0 {
		return Empty
	}
	r := g.cells[row]
	if col >= len(r) {
		return Empty
	}
	return r[col]
}

// Rows returns the number of rows.
func (g *MemGrid) Rows() int {
	return len(g.cells)
}

// Cols returns the width of the widest row.
func (g *MemGrid) Cols() int {
	return g.cols
}

// LoadGrid reads a sheet into memory. Cells stored as numbers become KindNumber,
// everything else non-blank becomes KindText.
func LoadGrid(f *excelize.File, sheetName string) (*MemGrid, error) {
	// Chart and dialog sheets have no cell grid; GetRows reads them as empty.
	if _, err := f.GetSheetProps(sheetName); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	cells := make([][]CellValue, len(rows))
	for rowIdx, row := range rows {
		cells[rowIdx] = make([]CellValue, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[rowIdx][colIdx] = typedValue(typ, raw)
		}
	}

	return NewMemGrid(cells), nil
}

// typedValue converts a raw cell string according to its stored type.
func typedValue(typ excelize.CellType, raw string) CellValue {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return parseValue(raw)
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return Text("TRUE")
		}
		return Text("FALSE")
	default:
		return Text(raw)
	}
}

// parseValue attempts to parse a string value as a number.
// Returns a number cell on success, otherwise a text cell.
func parseValue(s string) CellValue {
	if s == "" {
		return Empty
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return Number(n)
	}
	return Text(s)
}
