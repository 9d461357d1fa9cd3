package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"guestfile/internal/table"
)

// AppendTables stacks tables that share an identical header set into one.
func AppendTables(tables []*table.Table) (*table.Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("nothing to append")
	}

	out := tables[0].Clone()
	for i, t := range tables[1:] {
		if !sameColumns(out.Columns, t.Columns) {
			return nil, fmt.Errorf("file %d has different headers; all files must match exactly", i+2)
		}
		for _, row := range t.Rows {
			out.AppendRow(row)
		}
	}
	return out, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var mergeNoteKeywords = []string{"notes", "tags", "dietary"}

// MergeByID joins tables on a shared ID column. IDs keep first-seen order;
// the output columns are the ID followed by the union of all other
// columns. Notes-like columns (name contains notes/tags/dietary)
// concatenate values from every file with " | "; every other column takes
// the first non-blank value across files.
func MergeByID(tables []*table.Table, idColumn string) (*table.Table, error) {
	if len(tables) < 2 {
		return nil, fmt.Errorf("merging needs at least two files")
	}

	var ids []string
	seen := map[string]bool{}
	columnSet := map[string]bool{}
	for i, t := range tables {
		if !t.HasColumn(idColumn) {
			return nil, fmt.Errorf("file %d has no %q column", i+1, idColumn)
		}
		for r := range t.Rows {
			id := strings.TrimSpace(t.Get(r, idColumn))
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		for _, col := range t.Columns {
			if col != idColumn {
				columnSet[col] = true
			}
		}
	}

	columns := make([]string, 0, len(columnSet))
	for col := range columnSet {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	out := table.New(append([]string{idColumn}, columns...))
	for _, id := range ids {
		row := make([]string, 1, len(columns)+1)
		row[0] = id
		for _, col := range columns {
			row = append(row, mergedValue(tables, idColumn, id, col))
		}
		out.AppendRow(row)
	}
	return out, nil
}

func mergedValue(tables []*table.Table, idColumn, id, column string) string {
	notesLike := false
	lower := strings.ToLower(column)
	for _, kw := range mergeNoteKeywords {
		if strings.Contains(lower, kw) {
			notesLike = true
			break
		}
	}

	var parts []string
	for _, t := range tables {
		if !t.HasColumn(column) {
			continue
		}
		for r := range t.Rows {
			if strings.TrimSpace(t.Get(r, idColumn)) != id {
				continue
			}
			value := strings.TrimSpace(t.Get(r, column))
			if value == "" {
				continue
			}
			if !notesLike {
				return value
			}
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " | ")
}
