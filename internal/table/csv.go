package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DecodeText decodes an uploaded file as UTF-8, falling back to Latin-1
// when the bytes are not valid UTF-8. Returns the decoded text and the
// encoding that was used.
func DecodeText(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, bomUTF8)
	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("decode input: %w", err)
	}
	return string(decoded), "latin-1", nil
}

// Preview returns the first n rows of a delimited file header-less, so a
// caller can pick which row carries the headers.
func Preview(data []byte, n int) ([][]string, error) {
	text, _, err := DecodeText(data)
	if err != nil {
		return nil, err
	}

	reader := newCSVReader(text)
	out := make([][]string, 0, n)
	for len(out) < n {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		out = append(out, row)
	}
	if len(out) == 0 {
		return nil, errors.New("empty file: nothing to preview")
	}
	return out, nil
}

// ReadCSV parses delimited text into a table. headerRow is the zero-based
// index of the row holding column names; rows above it are discarded.
// Short rows pad with blanks, long rows truncate.
func ReadCSV(data []byte, headerRow int) (*Table, string, error) {
	text, encoding, err := DecodeText(data)
	if err != nil {
		return nil, "", err
	}

	reader := newCSVReader(text)
	rowNo := -1
	var t *Table
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		rowNo++
		if rowNo < headerRow {
			continue
		}
		if rowNo == headerRow {
			headers := make([]string, len(row))
			for i, h := range row {
				headers[i] = strings.TrimSpace(h)
			}
			t = New(headers)
			continue
		}
		t.AppendRow(row)
	}

	if t == nil {
		return nil, "", errors.New("no header row found in input")
	}
	return t, encoding, nil
}

// ReadFile loads a guest list from disk, dispatching on extension:
// .xlsx/.xls via the spreadsheet reader, .html/.htm via the HTML table
// reader, anything else as delimited text.
func ReadFile(path string, headerRow int) (*Table, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		t, err := ReadXLSX(data, headerRow)
		return t, "xlsx", err
	case ".html", ".htm":
		t, err := ReadHTML(data, headerRow)
		return t, "html", err
	default:
		return ReadCSV(data, headerRow)
	}
}

// WriteCSV renders the table as delimited text, headers first.
func WriteCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func newCSVReader(text string) *csv.Reader {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}
