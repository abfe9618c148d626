// Package models defines data structures for source-matrix extraction.
package models

// Classification is the key role inferred from a column description.
type Classification string

const (
	// None marks a column that is neither a primary nor a foreign key.
	None Classification = ""
	// PK marks a primary key column.
	PK Classification = "PK"
	// FK marks a foreign key column.
	FK Classification = "FK"
)

// ColumnEntry represents one extracted entity column with its key classification.
type ColumnEntry struct {
	// Name is the entity column name as written in the name column.
	Name string `json:"name"`
	// Row is the 1-based worksheet row the name was read from.
	Row int `json:"row"`
	// Classification is PK, FK or empty.
	Classification Classification `json:"type,omitempty"`
	// SequenceID is the per-sheet identifier (PK01, FK02, ...), empty for None.
	SequenceID string `json:"custom_identifier,omitempty"`
	// Description is the raw description text ("" when the cell is empty).
	Description string `json:"description"`
	// SourceSystem is the upstream system owning the key.
	SourceSystem string `json:"source_system"`
	// Color is the 8-digit aRGB fill associated with SourceSystem.
	Color string `json:"color"`
}
