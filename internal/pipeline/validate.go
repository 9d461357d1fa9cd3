package pipeline

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"guestfile/internal"
	"guestfile/internal/table"
)

// ValidateRows applies the row-acceptance rules and reports how many rows
// they removed:
//  1. a blank lastName drops the row; a table with no lastName column at
//     all keeps no rows,
//  2. a row whose present contact fields are all blank drops. A table with
//     no contact columns at all is untouched by this rule.
func ValidateRows(t *table.Table) (*table.Table, int) {
	before := t.Len()

	if !t.HasColumn(internal.FieldLastName) {
		return t.Slice(0, 0), before
	}

	contacts := make([]string, 0, len(internal.ContactColumns))
	for _, col := range internal.ContactColumns {
		if t.HasColumn(col) {
			contacts = append(contacts, col)
		}
	}

	out := table.New(t.Columns)
	for i, row := range t.Rows {
		if strings.TrimSpace(t.Get(i, internal.FieldLastName)) == "" {
			continue
		}
		if len(contacts) > 0 {
			reachable := false
			for _, col := range contacts {
				if strings.TrimSpace(t.Get(i, col)) != "" {
					reachable = true
					break
				}
			}
			if !reachable {
				continue
			}
		}
		out.AppendRow(row)
	}
	return out, before - out.Len()
}

// EnsureGuestIDs enforces identity integrity. With an originalGuestId
// column present, rows with blank ids drop, then later duplicates of an
// earlier id drop (keep-first); the removed count is returned. Without the
// column, every row gets a fresh random id instead and created is true.
func EnsureGuestIDs(t *table.Table) (out *table.Table, dropped int, created bool) {
	if !t.HasColumn(internal.FieldOriginalGuestID) {
		t = t.Clone()
		t.AddColumn(internal.FieldOriginalGuestID)
		for i := range t.Rows {
			t.Set(i, internal.FieldOriginalGuestID, newGuestID())
		}
		return t, 0, true
	}

	before := t.Len()
	seen := map[string]bool{}
	out = table.New(t.Columns)
	for i, row := range t.Rows {
		id := strings.TrimSpace(t.Get(i, internal.FieldOriginalGuestID))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out.AppendRow(row)
	}
	return out, before - out.Len(), false
}

func newGuestID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
