package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestExtractMissingFile(t *testing.T) {
	e := New(t.TempDir())
	out := e.Extract("/nonexistent/path", "text/plain")
	if !strings.Contains(out, "File not found") {
		t.Errorf("Extract() = %q, want it to contain %q", out, "File not found")
	}
	if !strings.Contains(out, "/nonexistent/path") {
		t.Errorf("Extract() = %q, want it to echo the original path", out)
	}
}

func TestExtractRelativePathResolution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "note.txt", "hello from uploads")
	e := New(dir)

	out := e.Extract("note.txt", "text/plain")
	if !strings.Contains(out, "hello from uploads") {
		t.Errorf("Extract() = %q, want content of uploads/note.txt", out)
	}
}

func TestExtractTextTruncation(t *testing.T) {
	dir := t.TempDir()
	big := strings.Repeat("a", 12000)
	path := writeFile(t, dir, "big.txt", big)
	e := New(dir)

	out := e.Extract(path, "text/plain")
	if !strings.HasPrefix(out, "Text File Content:") {
		t.Errorf("Extract() missing text label: %q", out[:40])
	}
	limit := textLimit + len("Text File Content:\n")
	if len(out) > limit {
		t.Errorf("Extract() length = %d, want <= %d", len(out), limit)
	}
}

func TestExtractCSVKeepsFirst50Rows(t *testing.T) {
	dir := t.TempDir()
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, "a,b,c")
	}
	path := writeFile(t, dir, "data.csv", strings.Join(lines, "\n"))
	e := New(dir)

	out := e.Extract(path, "text/csv")
	if !strings.Contains(out, "CSV File Content (first 50 rows)") {
		t.Errorf("Extract() missing CSV label: %q", out[:60])
	}
	if n := strings.Count(out, "\n"); n > 51 {
		t.Errorf("Extract() has %d newlines, want <= 51", n)
	}
}

func TestExtractCSVWinsOverText(t *testing.T) {
	// text/csv 同样包含 "text" 子串，必须命中 CSV 分支
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "x,y\n1,2")
	e := New(dir)

	out := e.Extract(path, "text/csv")
	if strings.HasPrefix(out, "Text File Content:") {
		t.Errorf("Extract() used text branch for text/csv: %q", out[:40])
	}
}

func TestExtractJSONPrettyPrint(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", `{"kits":200,"site":"well A"}`)
	e := New(dir)

	out := e.Extract(path, "application/json")
	if !strings.HasPrefix(out, "JSON File Content:") {
		t.Errorf("Extract() missing JSON label: %q", out[:40])
	}
	if !strings.Contains(out, "\n  \"kits\": 200") {
		t.Errorf("Extract() output is not pretty-printed: %q", out)
	}
}

func TestExtractJSONFallsBackToRaw(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.json", `{"kits": 200`)
	e := New(dir)

	out := e.Extract(path, "application/json")
	if !strings.HasPrefix(out, "JSON File Content:") {
		t.Errorf("Extract() missing JSON label: %q", out)
	}
	if !strings.Contains(out, `{"kits": 200`) {
		t.Errorf("Extract() lost raw content on parse failure: %q", out)
	}
}

func TestExtractXMLBounded(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.xml", "<root>"+strings.Repeat("<x/>", 3000)+"</root>")
	e := New(dir)

	out := e.Extract(path, "application/xml")
	if !strings.HasPrefix(out, "XML File Content:") {
		t.Errorf("Extract() missing XML label: %q", out[:40])
	}
	if len(out) > textLimit+len("XML File Content:\n") {
		t.Errorf("Extract() length = %d exceeds budget", len(out))
	}
}

func TestExtractPDFPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "report.pdf", "%PDF-1.4 fake")
	e := New(dir)

	out := e.Extract(path, "application/pdf")
	if !strings.Contains(out, "PDF") || !strings.Contains(out, "disabled") {
		t.Errorf("Extract() = %q, want PDF placeholder", out)
	}
}

func TestExtractImagePlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.png", "\x89PNG")
	e := New(dir)

	out := e.Extract(path, "image/png")
	if !strings.Contains(out, "not analyzed") {
		t.Errorf("Extract() = %q, want image placeholder", out)
	}
}

func TestExtractExcelFirstSheetOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "budget.xlsx")

	f := excelize.NewFile()
	for i := 1; i <= 30; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i)
		if err := f.SetCellValue("Sheet1", cell, i); err != nil {
			t.Fatalf("set cell: %v", err)
		}
	}
	if _, err := f.NewSheet("Sheet2"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	f.Close()

	e := New(dir)
	out := e.Extract(path, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if !strings.Contains(out, "Excel File Content (2 sheets)") {
		t.Errorf("Extract() missing sheet count label: %q", out)
	}
	if !strings.Contains(out, "Sheet: Sheet1") {
		t.Errorf("Extract() missing first sheet label: %q", out)
	}
	if strings.Contains(out, "Sheet: Sheet2") {
		t.Errorf("Extract() included a second sheet: %q", out)
	}
	// 首表 30 行只保留 20 行
	if strings.Contains(out, "\n25\n") {
		t.Errorf("Extract() kept rows past the 20-row budget: %q", out)
	}
}

func TestExtractExcelByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.xlsx")

	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "v"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	f.Close()

	e := New(dir)
	// 声明类型不含 excel/spreadsheet，扩展名兜底
	out := e.Extract(path, "application/octet-stream")
	if !strings.Contains(out, "Excel File Content") {
		t.Errorf("Extract() did not dispatch on extension: %q", out)
	}
}

func TestExtractGenericBinaryPlaceholder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80, 0x81}, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	e := New(dir)

	out := e.Extract(path, "application/octet-stream")
	if !strings.Contains(out, "application/octet-stream") || !strings.Contains(out, "not parsed") {
		t.Errorf("Extract() = %q, want binary placeholder with declared type", out)
	}
}

func TestExtractGenericBounded(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.md", strings.Repeat("b", 9000))
	e := New(dir)

	out := e.Extract(path, "application/unknown")
	if len(out) > genericLimit+len("File Content:\n") {
		t.Errorf("Extract() length = %d exceeds generic budget", len(out))
	}
}

func TestExtractAllPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "first excerpt body")
	writeFile(t, dir, "two.txt", "second excerpt body")
	e := New(dir)

	excerpts := e.ExtractAll(
		[]string{"one.txt", "missing.txt", "two.txt"},
		[]string{"text/plain", "text/plain", "text/plain"},
	)
	if len(excerpts) != 3 {
		t.Fatalf("ExtractAll() returned %d excerpts, want 3", len(excerpts))
	}
	if !strings.Contains(excerpts[0], "first excerpt body") {
		t.Errorf("excerpts[0] = %q", excerpts[0])
	}
	if !strings.Contains(excerpts[1], "File not found") {
		t.Errorf("excerpts[1] = %q, want placeholder for missing file", excerpts[1])
	}
	if !strings.Contains(excerpts[2], "second excerpt body") {
		t.Errorf("excerpts[2] = %q", excerpts[2])
	}
}
