package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/palette"
)

// WriteSummary prints one row per extracted sheet with its entry and key
// counts and the systems its primary keys resolved to.
func WriteSummary(w io.Writer, t *models.ExtractionTable) {
	if len(t.Sheets) == 0 {
		_, _ = fmt.Fprintln(w, "(0 sheets)")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Sheet", "Header Row", "Entries", "PK", "FK", "Systems"})

	var entries, pks, fks int
	for _, s := range t.Sheets {
		pk, fk := s.Count(models.PK), s.Count(models.FK)
		tw.AppendRow(table.Row{s.SheetName, s.HeaderRow, len(s.Entries), pk, fk, strings.Join(pkSystems(s), ", ")})
		entries += len(s.Entries)
		pks += pk
		fks += fk
	}
	tw.AppendFooter(table.Row{"Total", "", entries, pks, fks, ""})

	tw.Render()
}

// pkSystems returns the distinct source systems of the primary keys, sorted.
func pkSystems(s models.SheetResult) []string {
	seen := make(map[string]struct{})
	for _, e := range s.Entries {
		if e.Classification == models.PK {
			seen[e.SourceSystem] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// WriteLegend prints the registry in code order. The fallback system is
// marked in the last column.
func WriteLegend(w io.Writer, reg *palette.Registry) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Code", "System", "Color", "Default"})

	def := reg.Default()
	for _, s := range reg.Systems() {
		mark := ""
		if s.Code == def.Code {
			mark = "yes"
		}
		tw.AppendRow(table.Row{s.Code, s.Name, string(s.Color), mark})
	}
	tw.AppendFooter(table.Row{"", "Foreign Key", string(reg.FKColor()), ""})

	tw.Render()
}
