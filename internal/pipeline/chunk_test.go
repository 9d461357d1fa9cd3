package pipeline

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"guestfile/internal/table"
)

func rowsTable(n int) *table.Table {
	t := table.New([]string{"firstName", "lastName"})
	for i := 0; i < n; i++ {
		t.AppendRow([]string{fmt.Sprintf("G%d", i), "Doe"})
	}
	return t
}

func TestExportRequiresRID(t *testing.T) {
	_, err := Export(rowsTable(1), t.TempDir(), "  ", 10)
	if err == nil {
		t.Fatalf("expected an error without a destination id")
	}
}

func TestExportSingleFileAtLimit(t *testing.T) {
	dir := t.TempDir()
	res, err := Export(rowsTable(10), dir, "R1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Chunks != 1 || filepath.Base(res.Path) != "R1_CLEANED.csv" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestExportChunksAboveLimit(t *testing.T) {
	dir := t.TempDir()
	res, err := Export(rowsTable(25), dir, "R1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Chunks != 3 || !strings.HasSuffix(res.Path, "R1_CLEANED_FILES.zip") {
		t.Fatalf("unexpected result: %+v", res)
	}

	zr, err := zip.OpenReader(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	if len(zr.File) != 3 {
		t.Fatalf("want 3 archive entries, got %d", len(zr.File))
	}
	if zr.File[0].Name != "R1_CLEANED_1.csv" || zr.File[2].Name != "R1_CLEANED_3.csv" {
		t.Fatalf("unexpected entry names: %v %v", zr.File[0].Name, zr.File[2].Name)
	}
}

// An exact multiple of the limit still yields rows/limit+1 chunks, the
// last holding headers only. Kept for output compatibility.
func TestExportExactMultipleTrailingEmptyChunk(t *testing.T) {
	dir := t.TempDir()
	res, err := Export(rowsTable(20), dir, "R1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.Chunks != 3 {
		t.Fatalf("want 3 chunks for 20 rows at limit 10, got %d", res.Chunks)
	}

	zr, err := zip.OpenReader(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	last, err := zr.File[2].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer last.Close()
	buf := make([]byte, 256)
	n, _ := last.Read(buf)
	content := string(buf[:n])
	if strings.Count(strings.TrimSpace(content), "\n") != 0 {
		t.Fatalf("trailing chunk should hold only the header row: %q", content)
	}
}
