package render

import (
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
)

// DefaultObjectListSheet is the sheet written by ObjectList.
const DefaultObjectListSheet = "object list"

var (
	dwhHeaders  = []string{"Dwh object number", "Dwh object name", "Dwh object description", "Reports Tag", "checked"}
	martHeaders = []string{"Data mart object number", "Data mart object name", "Data mart object description", "Reports Tag"}
)

const (
	objectColumns     = 5
	descriptionHeight = 45
)

// ObjectList writes the data warehouse objects followed directly by the data
// mart objects. Data warehouse object names link to a sheet of the same name.
func ObjectList(f *excelize.File, sheet string, dwh, mart []models.ObjectListItem) error {
	if _, err := ensureSheet(f, sheet); err != nil {
		return err
	}
	styles := newStyleCache(f)

	if err := writeHeaders(f, sheet, 1, dwhHeaders); err != nil {
		return err
	}
	row := 2
	for _, item := range dwh {
		if err := writeObjectRow(f, sheet, row, item, true); err != nil {
			return err
		}
		if err := f.SetCellHyperLink(sheet, cellName(2, row), SheetRef(item.Name, "A1"), "Location"); err != nil {
			return err
		}
		if err := f.SetRowHeight(sheet, row, descriptionHeight); err != nil {
			return err
		}
		row++
	}

	martHeaderRow := row
	if err := writeHeaders(f, sheet, martHeaderRow, martHeaders); err != nil {
		return err
	}
	row++
	for _, item := range mart {
		if err := writeObjectRow(f, sheet, row, item, false); err != nil {
			return err
		}
		row++
	}

	if err := f.SetColWidth(sheet, "B", "B", 10); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "C", "C", 80); err != nil {
		return err
	}

	// Style every cell of the used range: borders everywhere, alignment by column.
	for r := 1; r < row; r++ {
		header := r == 1 || r == martHeaderRow
		linked := r > 1 && r < martHeaderRow
		for c := 1; c <= objectColumns; c++ {
			if err := styles.apply(sheet, cellName(c, r), objectCellStyle(c, header, linked)); err != nil {
				return err
			}
		}
	}

	return nil
}

func objectCellStyle(col int, header, linked bool) styleSpec {
	spec := styleSpec{Border: true, Horizontal: "left", Vertical: "bottom"}
	if col == 3 {
		spec.Horizontal, spec.Vertical, spec.WrapText = "center", "center", true
	}
	if header {
		spec.Bold, spec.Size = true, 12
	} else if col == 2 && linked {
		spec.FontColor, spec.Underline = linkColor, true
	}
	return spec
}

func writeHeaders(f *excelize.File, sheet string, row int, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	return f.SetSheetRow(sheet, cellName(1, row), &values)
}

func writeObjectRow(f *excelize.File, sheet string, row int, item models.ObjectListItem, checked bool) error {
	values := []interface{}{item.Number, item.Name, item.Description, item.ReportsTag}
	if checked {
		values = append(values, item.Checked)
	}
	return f.SetSheetRow(sheet, cellName(1, row), &values)
}

// WriteObjectListWorkbook saves the object list at path.
func WriteObjectListWorkbook(path string, dwh, mart []models.ObjectListItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DefaultObjectListSheet); err != nil {
		return err
	}
	if err := ObjectList(f, DefaultObjectListSheet, dwh, mart); err != nil {
		return err
	}
	return f.SaveAs(path)
}
