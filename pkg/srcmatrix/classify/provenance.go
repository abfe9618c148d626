package classify

import (
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/palette"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/parser"
)

// Provenance is the system attributed to a key.
type Provenance struct {
	System palette.System
	// Resolved is false when the default system was used.
	Resolved bool
	// MatchRow is the 0-based row of the entity name in the lookup column, -1 if absent.
	MatchRow int
	// Code is the two-character code read below the match, if any.
	Code string
}

// LookupSystemCode scans column col from the top for the first cell equal to
// name and returns the last two characters of the cell one row below.
// ok is false when there is no match, the match is on the last row, or the
// text below is shorter than two characters. Cost is O(rows) per call.
func LookupSystemCode(g parser.Grid, col int, name parser.CellValue) (matchRow int, code string, ok bool) {
	matchRow = -1
	for row := 0; row < g.Rows(); row++ {
		if g.CellAt(row, col).Equal(name) {
			matchRow = row
			break
		}
	}
	if matchRow < 0 || matchRow >= g.Rows()-1 {
		return matchRow, "", false
	}

	below := []rune(g.CellAt(matchRow+1, col).String())
	if len(below) < 2 {
		return matchRow, "", false
	}
	return matchRow, string(below[len(below)-2:]), true
}

// ResolveProvenance attributes a key to a system via LookupSystemCode, falling
// back to the registry default for unknown or missing codes.
func ResolveProvenance(g parser.Grid, col int, name parser.CellValue, reg *palette.Registry) Provenance {
	row, code, ok := LookupSystemCode(g, col, name)
	p := Provenance{System: reg.Default(), MatchRow: row, Code: code}
	if !ok {
		return p
	}
	if s, found := reg.Lookup(code); found {
		p.System = s
		p.Resolved = true
	}
	return p
}
