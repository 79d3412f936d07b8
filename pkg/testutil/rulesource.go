package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/foldermgr/pkg/types"
)

// Headers of the rule sheets.
var (
	MainHeader    = []string{"path"}
	MigrateHeader = []string{"name", "content_types", "extensions", "pattern", "target_path"}
	ZipHeader     = []string{"name", "content_types", "extensions", "pattern", "size", "support_migrate_folder"}
)

// WriteRulesYAML writes a YAML rule source holding sheets.
func WriteRulesYAML(t *testing.T, fsys types.FS, path string, sheets map[string][][]string) {
	t.Helper()

	data, err := yaml.Marshal(sheets)
	if err != nil {
		t.Fatalf("Failed to marshal rule source: %v", err)
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write rule source %s: %v", path, err)
	}
}

// WriteWorkbook writes an .xlsx workbook at path on the OS filesystem
// holding sheets.
func WriteWorkbook(t *testing.T, path string, sheets map[string][][]string) {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()

	for name, rows := range sheets {
		if _, err := book.NewSheet(name); err != nil {
			t.Fatalf("Failed to create sheet %s: %v", name, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("Invalid cell: %v", err)
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := book.SetSheetRow(name, cell, &values); err != nil {
				t.Fatalf("Failed to write row %d of %s: %v", i+1, name, err)
			}
		}
	}
	if _, ok := sheets["Sheet1"]; !ok && len(sheets) > 0 {
		if err := book.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("Failed to delete default sheet: %v", err)
		}
	}
	if err := book.SaveAs(path); err != nil {
		t.Fatalf("Failed to save workbook %s: %v", path, err)
	}
}
