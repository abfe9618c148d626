// Package output serializes extraction results as JSON and console tables.
package output

import (
	"encoding/json"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
)

// ToJSON serializes the extraction table.
func ToJSON(t *models.ExtractionTable, pretty bool) ([]byte, error) {
	return marshal(t, pretty)
}

// SheetToJSON serializes a single sheet result.
func SheetToJSON(s *models.SheetResult, pretty bool) ([]byte, error) {
	return marshal(s, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
