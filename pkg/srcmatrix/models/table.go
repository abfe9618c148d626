package models

// ExtractionTable is the workbook-level container handed to renderers.
// Sheets keep the order in which they were processed.
type ExtractionTable struct {
	// BookName is the source workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets holds one result per extracted sheet.
	Sheets []SheetResult `json:"sheets"`
}

// Add appends a sheet result.
func (t *ExtractionTable) Add(s SheetResult) {
	t.Sheets = append(t.Sheets, s)
}

// Sheet returns the result for the named sheet.
func (t *ExtractionTable) Sheet(name string) (SheetResult, bool) {
	for _, s := range t.Sheets {
		if s.SheetName == name {
			return s, true
		}
	}
	return SheetResult{}, false
}

// SheetNames returns the sheet names in processing order.
func (t *ExtractionTable) SheetNames() []string {
	names := make([]string, len(t.Sheets))
	for i, s := range t.Sheets {
		names[i] = s.SheetName
	}
	return names
}

// MaxEntries returns the length of the longest sheet, i.e. the row count of
// the rectangular view.
func (t *ExtractionTable) MaxEntries() int {
	n := 0
	for _, s := range t.Sheets {
		if len(s.Entries) > n {
			n = len(s.Entries)
		}
	}
	return n
}

// Cell returns the entry at (row, col) of the rectangular view where columns
// are sheets and rows are entries. Shorter sheets report ok=false for their
// trailing rows.
func (t *ExtractionTable) Cell(row, col int) (ColumnEntry, bool) {
	if col < 0 || col >= len(t.Sheets) || row < 0 {
		return ColumnEntry{}, false
	}
	entries := t.Sheets[col].Entries
	if row >= len(entries) {
		return ColumnEntry{}, false
	}
	return entries[row], true
}
