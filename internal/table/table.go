// Package table holds the in-memory working table a pipeline run passes
// between stages: an ordered column set plus rows of text cells. Missing
// cells are empty strings, never nulls.
package table

type Table struct {
	Columns []string
	Rows    [][]string
}

func New(columns []string) *Table {
	return &Table{Columns: append([]string{}, columns...)}
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

func (t *Table) Get(row int, column string) string {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

func (t *Table) Set(row int, column, value string) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows[row][idx] = value
}

// AppendRow adds a row, padding or truncating to the column count.
func (t *Table) AppendRow(row []string) {
	cells := make([]string, len(t.Columns))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
}

// AddColumn appends an empty column if it does not exist yet.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// Rename applies a raw→standard column rename plan in place.
func (t *Table) Rename(plan map[string]string) {
	for i, col := range t.Columns {
		if target, ok := plan[col]; ok {
			t.Columns[i] = target
		}
	}
}

// Select produces a new table holding only the named columns, in the
// given order. Unknown names are skipped.
func (t *Table) Select(columns []string) *Table {
	indices := make([]int, 0, len(columns))
	kept := make([]string, 0, len(columns))
	for _, col := range columns {
		if idx := t.ColumnIndex(col); idx >= 0 {
			indices = append(indices, idx)
			kept = append(kept, col)
		}
	}

	out := New(kept)
	for _, row := range t.Rows {
		cells := make([]string, len(indices))
		for i, idx := range indices {
			cells[i] = row[idx]
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// Slice returns rows [from,to) as a new table sharing no row storage.
func (t *Table) Slice(from, to int) *Table {
	if from < 0 {
		from = 0
	}
	if from > len(t.Rows) {
		from = len(t.Rows)
	}
	if to > len(t.Rows) {
		to = len(t.Rows)
	}
	if to < from {
		to = from
	}
	out := New(t.Columns)
	for _, row := range t.Rows[from:to] {
		out.AppendRow(row)
	}
	return out
}

func (t *Table) Clone() *Table {
	return t.Slice(0, len(t.Rows))
}
