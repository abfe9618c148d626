package render

import (
	"strings"
	"unicode/utf8"
)

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

// SheetRef returns a sheet-qualified cell reference such as 'My Sheet'!A1.
// The sheet name is always quoted; embedded quotes are doubled.
func SheetRef(sheet, cell string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cell
}

// sheetTitle trims a name to the Excel sheet name limit and replaces the
// characters Excel forbids.
func sheetTitle(name string) string {
	name = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_").Replace(name)
	if utf8.RuneCountInString(name) <= maxSheetName {
		return name
	}
	return string([]rune(name)[:maxSheetName])
}
