package table

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReadHTML loads the first <table> of an HTML export (some CRMs only offer
// "save as web page") as a table. headerRow is the zero-based index of the
// header row within that table.
func ReadHTML(data []byte, headerRow int) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var rows [][]string
	doc.Find("table").First().Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := []string{}
		tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	if headerRow >= len(rows) {
		return nil, errors.New("no table rows found in document")
	}

	t := New(rows[headerRow])
	for _, row := range rows[headerRow+1:] {
		t.AppendRow(row)
	}
	return t, nil
}
