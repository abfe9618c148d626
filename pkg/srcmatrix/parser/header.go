package parser

import (
	"iter"
	"strings"
)

// LocateHeader scans column col for the first text cell containing marker
// (case-insensitive) and returns its 0-based row. Numeric cells never match.
func LocateHeader(g Grid, col int, marker string) (int, bool) {
	needle := strings.ToLower(marker)
	for row := 0; row < g.Rows(); row++ {
		v := g.CellAt(row, col)
		if v.Kind != KindText {
			continue
		}
		if strings.Contains(strings.ToLower(v.Text), needle) {
			return row, true
		}
	}
	return -1, false
}

// WalkColumn yields (row, value) pairs from start downward in column col and
// stops at the first empty cell or the end of the grid. Cells below the
// sentinel are never read.
func WalkColumn(g Grid, col, start int) iter.Seq2[int, CellValue] {
	from := max(start, 0)
	return func(yield func(int, CellValue) bool) {
		for row := from; row < g.Rows(); row++ {
			v := g.CellAt(row, col)
			if v.IsEmpty() {
				return
			}
			if !yield(row, v) {
				return
			}
		}
	}
}
