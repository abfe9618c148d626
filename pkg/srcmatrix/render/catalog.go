package render

import (
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
)

// EnvObjects is the catalog listing of one environment.
type EnvObjects struct {
	Env     string
	Objects []models.DBObject
}

var catalogHeaders = []string{"Object_Type", "Object_Name", "Object_Schema"}

// CatalogSheetName returns the sheet name used for an environment.
func CatalogSheetName(env string) string {
	return sheetTitle(env + "_Tables_Views")
}

// Catalog writes one sheet per environment listing its tables and views.
func Catalog(f *excelize.File, envs []EnvObjects) error {
	styles := newStyleCache(f)

	for _, env := range envs {
		sheet := CatalogSheetName(env.Env)
		if _, err := ensureSheet(f, sheet); err != nil {
			return err
		}

		for i, h := range catalogHeaders {
			cell := cellName(i+1, 1)
			if err := f.SetCellStr(sheet, cell, h); err != nil {
				return err
			}
			if err := styles.apply(sheet, cell, styleSpec{Bold: true}); err != nil {
				return err
			}
		}

		for i, o := range env.Objects {
			row := []interface{}{o.Type, o.Name, o.Schema}
			if err := f.SetSheetRow(sheet, cellName(1, i+2), &row); err != nil {
				return err
			}
		}

		if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", "C", 40); err != nil {
			return err
		}
	}

	return nil
}

// WriteCatalogWorkbook saves the catalog listing of all environments at path.
func WriteCatalogWorkbook(path string, envs []EnvObjects) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := Catalog(f, envs); err != nil {
		return err
	}
	if len(envs) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
		f.SetActiveSheet(0)
	}
	return f.SaveAs(path)
}
