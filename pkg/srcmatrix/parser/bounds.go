package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Bounds is the bounding box of non-empty cells (0-based, inclusive).
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Range returns the bounds in Excel range notation (e.g. "A1:D10").
func (b Bounds) Range() string {
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DataBounds finds the bounding box of non-empty cells.
// ok is false when the grid holds no data.
func DataBounds(g Grid) (b Bounds, ok bool) {
	b = Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx := 0; rowIdx < g.Rows(); rowIdx++ {
		for colIdx := 0; colIdx < g.Cols(); colIdx++ {
			if g.CellAt(rowIdx, colIdx).IsEmpty() {
				continue
			}
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if b.MaxRow < 0 || rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if b.MaxCol < 0 || colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b, b.MinRow >= 0
}

// Width returns the number of columns from column A through MaxCol, or 0
// for the bounds of an empty grid. Columns are addressed positionally, so
// leading blank columns still count.
func (b Bounds) Width() int {
	return b.MaxCol + 1
}
