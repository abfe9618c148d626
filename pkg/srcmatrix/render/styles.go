// Package render writes extraction results and catalog listings to xlsx workbooks.
package render

import (
	"github.com/xuri/excelize/v2"
)

// styleSpec describes a cell style. It is comparable and doubles as the cache key.
type styleSpec struct {
	Fill       string // RGB hex, empty for no fill
	Bold       bool
	Size       float64
	FontColor  string
	Underline  bool
	Border     bool
	Horizontal string
	Vertical   string
	WrapText   bool
}

// styleCache creates each distinct style once per workbook.
type styleCache struct {
	f     *excelize.File
	cache map[styleSpec]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, cache: make(map[styleSpec]int)}
}

func (s *styleCache) get(spec styleSpec) (int, error) {
	if id, ok := s.cache[spec]; ok {
		return id, nil
	}

	style := &excelize.Style{}
	if spec.Bold || spec.Size > 0 || spec.FontColor != "" || spec.Underline {
		style.Font = &excelize.Font{
			Bold:  spec.Bold,
			Size:  spec.Size,
			Color: spec.FontColor,
		}
		if spec.Underline {
			style.Font.Underline = "single"
		}
	}
	if spec.Fill != "" {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{spec.Fill},
			Pattern: 1,
		}
	}
	if spec.Horizontal != "" || spec.Vertical != "" || spec.WrapText {
		style.Alignment = &excelize.Alignment{
			Horizontal: spec.Horizontal,
			Vertical:   spec.Vertical,
			WrapText:   spec.WrapText,
		}
	}
	if spec.Border {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.cache[spec] = id
	return id, nil
}

// apply styles a single cell.
func (s *styleCache) apply(sheet, cell string, spec styleSpec) error {
	id, err := s.get(spec)
	if err != nil {
		return err
	}
	return s.f.SetCellStyle(sheet, cell, cell, id)
}

// ensureSheet creates sheet unless it exists and returns its index.
func ensureSheet(f *excelize.File, sheet string) (int, error) {
	if idx, err := f.GetSheetIndex(sheet); err == nil && idx >= 0 {
		return idx, nil
	}
	return f.NewSheet(sheet)
}

// cellName converts 1-based coordinates; callers only pass valid ones.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
