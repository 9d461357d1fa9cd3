package table

import (
	"bytes"
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads the first sheet of a workbook as a table. headerRow is
// the zero-based index of the header row within the sheet.
func ReadXLSX(data []byte, headerRow int) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if headerRow >= len(rows) {
		return nil, errors.New("no header row found in workbook")
	}

	headers := make([]string, len(rows[headerRow]))
	for i, h := range rows[headerRow] {
		headers[i] = strings.TrimSpace(h)
	}

	t := New(headers)
	for _, row := range rows[headerRow+1:] {
		t.AppendRow(row)
	}
	return t, nil
}
