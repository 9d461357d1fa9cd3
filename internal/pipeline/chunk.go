package pipeline

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"guestfile/internal/table"
)

// DefaultRowLimit is the most rows a single export file may carry.
const DefaultRowLimit = 50000

type ExportResult struct {
	Path   string
	Rows   int
	Chunks int
}

// Export writes the final table under outDir, named by the destination
// identifier rid. At or under the row limit it writes one CSV; above it,
// a ZIP of numbered CSV chunks in original row order.
//
// The chunk count is the historical rows/limit+1, which leaves a trailing
// headers-only chunk when rows is an exact multiple of the limit.
// Downstream tooling counts on the file names, so the arithmetic stays.
func Export(t *table.Table, outDir, rid string, limit int) (ExportResult, error) {
	rid = strings.TrimSpace(rid)
	if rid == "" {
		return ExportResult{}, errors.New("a destination id (RID) is required to name the output")
	}
	if limit <= 0 {
		limit = DefaultRowLimit
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ExportResult{}, err
	}

	if t.Len() <= limit {
		path := filepath.Join(outDir, rid+"_CLEANED.csv")
		f, err := os.Create(path)
		if err != nil {
			return ExportResult{}, err
		}
		if err := table.WriteCSV(f, t); err != nil {
			_ = f.Close()
			return ExportResult{}, err
		}
		if err := f.Close(); err != nil {
			return ExportResult{}, err
		}
		return ExportResult{Path: path, Rows: t.Len(), Chunks: 1}, nil
	}

	path := filepath.Join(outDir, rid+"_CLEANED_FILES.zip")
	f, err := os.Create(path)
	if err != nil {
		return ExportResult{}, err
	}
	archive := zip.NewWriter(f)

	chunks := chunkCount(t.Len(), limit)
	for i := 0; i < chunks; i++ {
		chunk := t.Slice(i*limit, (i+1)*limit)
		entry, err := archive.Create(fmt.Sprintf("%s_CLEANED_%d.csv", rid, i+1))
		if err != nil {
			_ = f.Close()
			return ExportResult{}, err
		}
		buf := &bytes.Buffer{}
		if err := table.WriteCSV(buf, chunk); err != nil {
			_ = f.Close()
			return ExportResult{}, err
		}
		if _, err := entry.Write(buf.Bytes()); err != nil {
			_ = f.Close()
			return ExportResult{}, err
		}
	}

	if err := archive.Close(); err != nil {
		_ = f.Close()
		return ExportResult{}, err
	}
	if err := f.Close(); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Path: path, Rows: t.Len(), Chunks: chunks}, nil
}

func chunkCount(rows, limit int) int {
	return rows/limit + 1
}
