package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/render"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Customers"))
	for ref, v := range map[string]string{
		"H1":  "wide",
		"D2":  "Entity Column Name",
		"D3":  "CustomerId",
		"G3":  "Primary Key",
		"D4":  "RegionFk",
		"G4":  "fk to regions",
		"A10": "CustomerId",
		"A11": "SRC03",
	} {
		require.NoError(t, f.SetCellStr("Customers", ref, v))
	}

	path := filepath.Join(dir, "DWH_Source_Matrix.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeCatalogDB(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "dev.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	for _, stmt := range []string{
		"CREATE TABLE customers (id INTEGER)",
		"CREATE VIEW v_customers AS SELECT * FROM customers",
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func writeConfigFile(t *testing.T, dir, dbPath string) string {
	t.Helper()
	path := filepath.Join(dir, "srcmatrix.yaml")
	content := "log:\n  level: error\nenvironments:\n  DEV:\n    driver: sqlite\n    dsn: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "srcmatrix "+Version+"\n", out)
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeInput(t, dir)
	outPath := filepath.Join(dir, "out.xlsx")
	sheetsDir := filepath.Join(dir, "sheets")

	out, err := execute(t, "extract", input, "-o", outPath, "--json", "-", "--summary", "--sheets-dir", sheetsDir, "--log-level", "error")
	require.NoError(t, err)

	jsonEnd := strings.Index(out, "\n")
	require.Positive(t, jsonEnd)
	var tbl models.ExtractionTable
	require.NoError(t, json.Unmarshal([]byte(out[:jsonEnd]), &tbl))
	require.Len(t, tbl.Sheets, 1)
	assert.Equal(t, "SalesForce", tbl.Sheets[0].Entries[0].SourceSystem)
	assert.Equal(t, models.FK, tbl.Sheets[0].Entries[1].Classification)
	assert.Contains(t, out[jsonEnd:], "Customers")

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(render.DefaultMatrixSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Customers"}, {"CustomerId"}, {"RegionFk"}}, rows)

	_, err = os.Stat(filepath.Join(sheetsDir, "Customers.json"))
	assert.NoError(t, err)
}

func TestExtractDefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeInput(t, dir)

	_, err := execute(t, "extract", input, "--log-level", "error")
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "DWH_Entity_Columns_Output_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExtractMissingInput(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := execute(t, "extract", "missing.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestLegendCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := execute(t, "legend")
	require.NoError(t, err)
	assert.Contains(t, out, "Order Management")
	assert.Contains(t, out, "FFEAD1DC")
}

func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfgPath := writeConfigFile(t, dir, writeCatalogDB(t, dir))

	catalogPath := filepath.Join(dir, "catalog.xlsx")
	_, err := execute(t, "catalog", "--config", cfgPath, "-o", catalogPath)
	require.NoError(t, err)

	f, err := excelize.OpenFile(catalogPath)
	require.NoError(t, err)
	rows, err := f.GetRows("DEV_Tables_Views")
	require.NoError(t, err)
	_ = f.Close()
	assert.Equal(t, [][]string{
		{"Object_Type", "Object_Name", "Object_Schema"},
		{"BASE TABLE", "customers", "main"},
		{"VIEW", "v_customers", "main"},
	}, rows)

	objectsPath := filepath.Join(dir, "objects.xlsx")
	_, err = execute(t, "objects", "--config", cfgPath, "--env", "DEV", "--dwh-schema", "main", "-o", objectsPath)
	require.NoError(t, err)

	f, err = excelize.OpenFile(objectsPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err = f.GetRows(render.DefaultObjectListSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "main.customers", rows[1][1])
	assert.Equal(t, "main.v_customers", rows[2][1])
	assert.Equal(t, "Data mart object number", rows[3][0])

	_, err = execute(t, "catalog", "--config", cfgPath, "--env", "QA")
	assert.Error(t, err)
}
