package models

// SheetResult represents the extracted entity columns of a single sheet.
type SheetResult struct {
	// SheetName is the source sheet name.
	SheetName string `json:"sheet_name"`
	// HeaderRow is the 1-based row holding the header marker.
	HeaderRow int `json:"header_row"`
	// Entries are the extracted columns in worksheet row order.
	Entries []ColumnEntry `json:"entries"`
}

// Count returns the number of entries with the given classification.
func (s SheetResult) Count(c Classification) int {
	n := 0
	for _, e := range s.Entries {
		if e.Classification == c {
			n++
		}
	}
	return n
}

// Names returns the entry names in order.
func (s SheetResult) Names() []string {
	names := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		names[i] = e.Name
	}
	return names
}
