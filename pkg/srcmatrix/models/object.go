package models

import "strings"

// DBObject is a table or view read from a database catalog.
type DBObject struct {
	Schema  string `json:"schema"`
	Name    string `json:"name"`
	Type    string `json:"type"` // "BASE TABLE" or "VIEW"
	Comment string `json:"comment,omitempty"`
}

// QualifiedName returns schema.name, or name when the schema is empty.
func (o DBObject) QualifiedName() string {
	if o.Schema == "" {
		return o.Name
	}
	return o.Schema + "." + o.Name
}

// ObjectListItem is one row of the object list workbook.
type ObjectListItem struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ReportsTag  string `json:"reports_tag"`
	Checked     bool   `json:"checked"`
}

// ObjectListFrom splits catalog objects into data warehouse and data mart
// object lists by schema (case-insensitive). Objects in other schemas are dropped.
// Each list is numbered from 1 in input order.
func ObjectListFrom(objects []DBObject, dwhSchema, martSchema string) (dwh, mart []ObjectListItem) {
	for _, o := range objects {
		item := ObjectListItem{
			Name:        o.QualifiedName(),
			Description: o.Comment,
		}
		switch {
		case strings.EqualFold(o.Schema, dwhSchema):
			item.Number = len(dwh) + 1
			dwh = append(dwh, item)
		case strings.EqualFold(o.Schema, martSchema):
			item.Number = len(mart) + 1
			mart = append(mart, item)
		}
	}
	return dwh, mart
}
