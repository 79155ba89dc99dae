package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Weight,Qty\nCrate,4,2\nBox,3,1\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Weight;Qty\nCrate;4;2\nBox;3;1\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tWeight\tQty\nCrate\t4\t2\nBox\t3\t1\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Weight|Qty\nCrate|4|2\nBox|3|1\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_SingleColumn(t *testing.T) {
	data := []byte("4\n8\n1.5\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected default comma delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Weight", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Weight != 1 {
		t.Errorf("expected Weight at 1, got %d", mapping.Weight)
	}
	if mapping.Quantity != 2 {
		t.Errorf("expected Quantity at 2, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_CaseInsensitive(t *testing.T) {
	row := []string{"NAME", "WEIGHT", "QTY"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Weight != 1 || mapping.Quantity != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Item Name", "Size", "Pcs"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Weight != 1 || mapping.Quantity != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Qty", "Weight", "Label"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 {
		t.Errorf("expected Quantity at 0, got %d", mapping.Quantity)
	}
	if mapping.Weight != 1 {
		t.Errorf("expected Weight at 1, got %d", mapping.Weight)
	}
	if mapping.Label != 2 {
		t.Errorf("expected Label at 2, got %d", mapping.Label)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Crate", "4", "2"})
	if isHeader {
		t.Error("expected no header detection for numeric data")
	}
	if mapping.Label != 0 || mapping.Weight != 1 || mapping.Quantity != 2 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}

	mapping, isHeader = DetectColumns([]string{"7.5"})
	if isHeader {
		t.Error("expected no header detection for a bare weight")
	}
	if mapping.Label != -1 || mapping.Weight != 0 || mapping.Quantity != -1 {
		t.Errorf("expected weight-only mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Weight,Quantity\nCrate,4,2\nBox,3.5,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}

	if result.Items[0].Label != "Crate" {
		t.Errorf("expected label 'Crate', got '%s'", result.Items[0].Label)
	}
	if result.Items[0].Weight != 4 {
		t.Errorf("expected weight 4, got %f", result.Items[0].Weight)
	}
	if result.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", result.Items[0].Quantity)
	}
	if result.Items[1].Weight != 3.5 {
		t.Errorf("expected weight 3.5, got %f", result.Items[1].Weight)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Crate,4,2\nBox,3,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Label != "Crate" {
		t.Errorf("expected label 'Crate', got '%s'", result.Items[0].Label)
	}
	if result.Items[0].Weight != 4 {
		t.Errorf("expected weight 4, got %f", result.Items[0].Weight)
	}
}

func TestImportCSVFromReader_BareWeights(t *testing.T) {
	data := "4\n8\n1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	got := result.Weights()
	want := []float64{4, 8, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if result.Items[2].Label != "Item 3" {
		t.Errorf("expected auto-generated label 'Item 3', got '%s'", result.Items[2].Label)
	}
}

func TestImportCSVFromReader_QuantityDefaultsToOne(t *testing.T) {
	data := "Label,Weight\nCrate,4\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", result.Items[0].Quantity)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	data := "Label;Weight;Quantity\nCrate;4;2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Crate" {
		t.Errorf("expected label 'Crate', got '%s'", result.Items[0].Label)
	}
}

func TestImportCSVFromReader_ReorderedColumns(t *testing.T) {
	data := "Qty,Weight,Name\n2,4,Crate\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Crate" || result.Items[0].Weight != 4 || result.Items[0].Quantity != 2 {
		t.Errorf("unexpected item %+v", result.Items[0])
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSVFromReader_InvalidWeight(t *testing.T) {
	data := "Label,Weight,Quantity\nCrate,abc,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid weight")
	}
	if len(result.Items) != 0 {
		t.Errorf("expected 0 items, got %d", len(result.Items))
	}
}

func TestImportCSVFromReader_InvalidQuantity(t *testing.T) {
	data := "Label,Weight,Quantity\nCrate,4,abc\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid quantity")
	}
}

func TestImportCSVFromReader_NonPositiveValues(t *testing.T) {
	for _, row := range []string{"Crate,-4,2", "Crate,0,2", "Crate,4,0"} {
		result := ImportCSVFromReader(strings.NewReader("Label,Weight,Quantity\n"+row+"\n"), ',')
		if len(result.Errors) == 0 {
			t.Errorf("expected error for row %q", row)
		}
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Weight,Quantity\nGood,4,2\nBad,abc,2\nAlsoGood,3,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Errorf("expected 2 valid items, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
	if !strings.HasPrefix(result.Errors[0], "Line 3:") {
		t.Errorf("expected error on line 3, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "Label,Weight,Quantity\nCrate,4,2\n\n\nBox,3,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Errorf("expected 2 items (skipping empty rows), got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Label,Weight,Quantity\n,4,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Item 1" {
		t.Errorf("expected auto-generated label 'Item 1', got '%s'", result.Items[0].Label)
	}
}

func TestImportCSVFromReader_MissingWeightColumn(t *testing.T) {
	data := "Label,Quantity\nCrate,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	foundMissing := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Required columns not found") {
			foundMissing = true
		}
	}
	if !foundMissing {
		t.Errorf("expected 'Required columns not found' error, got: %v", result.Errors)
	}
}

func TestImportCSVFromReader_UnrecognizedHeader(t *testing.T) {
	data := "Thing,Heft,Copies\nCrate,4,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Weight != 4 {
		t.Errorf("expected weight 4, got %f", result.Items[0].Weight)
	}
}

func TestImportResult_WeightsExpandsQuantity(t *testing.T) {
	data := "Label,Weight,Quantity\nCrate,4,2\nBox,3,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	got := result.Weights()
	want := []float64{4, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	content := "Label,Weight,Quantity\nCrate,4,2\nBox,3,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	content := "Label;Weight;Quantity\nCrate;4;2\nBox;3;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}

	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "items.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Weight", "Quantity"},
		{"Crate", 4, 2},
		{"Box", 3.5, 1},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Crate" {
		t.Errorf("expected 'Crate', got '%s'", result.Items[0].Label)
	}
	if result.Items[1].Weight != 3.5 {
		t.Errorf("expected weight 3.5, got %f", result.Items[1].Weight)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Crate", 4, 2},
		{"Box", 3, 1},
	})

	result := ImportExcel(path)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Weight", "Quantity"},
		{"Crate", "abc", 2},
	})

	result := ImportExcel(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid weight")
	}
	if !strings.HasPrefix(result.Errors[0], "Row 2:") {
		t.Errorf("expected error on row 2, got %q", result.Errors[0])
	}
}

func TestImportFile_DispatchesByExtension(t *testing.T) {
	xlsx := createTestExcel(t, [][]interface{}{
		{"Weight"},
		{5},
	})
	if got := ImportFile(xlsx); len(got.Items) != 1 {
		t.Errorf("expected 1 item from xlsx, got %d (errors: %v)", len(got.Items), got.Errors)
	}

	dir := t.TempDir()
	txt := filepath.Join(dir, "weights.txt")
	if err := os.WriteFile(txt, []byte("5\n6\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if got := ImportFile(txt); len(got.Items) != 2 {
		t.Errorf("expected 2 items from txt, got %d (errors: %v)", len(got.Items), got.Errors)
	}
}

// ─── ParseWeights Tests ────────────────────────────────────

func TestParseWeights(t *testing.T) {
	got, err := ParseWeights("4, 8 1;4\t2.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{4, 8, 1, 4, 2.5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if _, err := ParseWeights("  , "); err == nil {
		t.Error("expected error for empty list")
	}
	if _, err := ParseWeights("4,x"); err == nil {
		t.Error("expected error for non-numeric weight")
	}
}

// ─── Edge Cases ────────────────────────────────────────────

func TestImportCSVFromReader_OnlyHeaders(t *testing.T) {
	data := "Label,Weight,Quantity\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 0 {
		t.Errorf("expected 0 items for header-only file, got %d", len(result.Items))
	}
}

func TestImportCSVFromReader_WhitespaceInValues(t *testing.T) {
	data := "Label , Weight , Quantity\n Crate , 4 , 2 \n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Weight != 4 {
		t.Errorf("expected weight 4, got %f", result.Items[0].Weight)
	}
	if result.Items[0].Label != "Crate" {
		t.Errorf("expected label 'Crate', got '%s'", result.Items[0].Label)
	}
}
