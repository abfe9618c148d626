// Package srcmatrix extracts entity columns with primary/foreign key
// classification and provenance from source-matrix workbooks.
package srcmatrix

import (
	"go.uber.org/zap"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/palette"
)

// Layout holds the positional conventions of a source-matrix sheet.
// Column indices are 0-based (3 is column D).
type Layout struct {
	// Marker is the case-insensitive header text searched in NameColumn.
	Marker string
	// NameColumn holds the header marker and the entity column names.
	NameColumn int
	// DescriptionColumn holds the free-text description used for PK/FK inference.
	DescriptionColumn int
	// LookupColumn is scanned to resolve the owning system of a primary key.
	LookupColumn int
	// MinColumns is the minimum sheet width; narrower sheets are skipped.
	MinColumns int
}

// DefaultLayout returns the standard source-matrix layout.
func DefaultLayout() Layout {
	return Layout{
		Marker:            "entity column name",
		NameColumn:        3,
		DescriptionColumn: 6,
		LookupColumn:      0,
		MinColumns:        7,
	}
}

// Options configures extraction behavior.
type Options struct {
	// Layout specifies where to look in each sheet.
	Layout Layout
	// StrictFK requires "FK" as a whole word for foreign keys.
	// The default matches "fk" anywhere in the description.
	StrictFK bool
	// Registry resolves system codes. If nil, palette.Default() is used.
	Registry *palette.Registry
	// Logger receives per-sheet diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Layout: DefaultLayout(),
	}
}

func (o Options) registry() *palette.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return palette.Default()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}
