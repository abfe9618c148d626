package srcmatrix

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNarrowSheet indicates a sheet with too few columns to be a source matrix.
var ErrNarrowSheet = errors.New("sheet has too few columns")

// ErrMissingHeaderMarker indicates the header marker was not found.
var ErrMissingHeaderMarker = errors.New("header marker not found")

// SkipError reports a sheet that was left out of the extraction table.
type SkipError struct {
	SheetName string
	Reason    error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("sheet %q skipped: %v", e.SheetName, e.Reason)
}

func (e *SkipError) Unwrap() error {
	return e.Reason
}

// Component names the extraction step that failed.
type Component string

// ComponentGrid is the step that reads a sheet's cells into a grid.
const ComponentGrid Component = "grid"

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component Component
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName string, component Component, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
