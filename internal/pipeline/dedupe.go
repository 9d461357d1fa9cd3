package pipeline

import (
	"strings"

	"guestfile/internal"
	"guestfile/internal/table"
)

// Reconcile merges rows that describe the same person. Rows group on
// (firstName, lastName, dedup key) where the dedup key is the first
// non-blank of email, phoneNumber, mobileNumber. Per group:
//   - emailMarketingOk ORs across members,
//   - guestNotes unions distinct non-blank values, ", "-joined,
//   - every other column takes the first non-blank value in row order.
//
// Output keeps first-seen group order. Returns the merged-away row count.
// A table missing the name columns or every contact column passes through
// unmerged; that guard is reported to the caller via a zero count.
func Reconcile(t *table.Table) (*table.Table, int) {
	if !t.HasColumn(internal.FieldFirstName) || !t.HasColumn(internal.FieldLastName) {
		return t, 0
	}

	contacts := make([]string, 0, len(internal.ContactColumns))
	for _, col := range internal.ContactColumns {
		if t.HasColumn(col) {
			contacts = append(contacts, col)
		}
	}
	if len(contacts) == 0 {
		return t, 0
	}

	// Contact values are compared and emitted trimmed, so " a@x.com " and
	// "a@x.com" land in the same group.
	trimmed := t.Clone()
	for _, col := range contacts {
		for i := range trimmed.Rows {
			trimmed.Set(i, col, strings.TrimSpace(trimmed.Get(i, col)))
		}
	}

	groups := map[string][]int{}
	var order []string
	for i := range trimmed.Rows {
		key := groupKey(trimmed, i, contacts)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	out := table.New(trimmed.Columns)
	for _, key := range order {
		out.AppendRow(mergeGroup(trimmed, groups[key]))
	}
	return out, t.Len() - out.Len()
}

func groupKey(t *table.Table, row int, contacts []string) string {
	dedupKey := ""
	for _, col := range contacts {
		if v := t.Get(row, col); v != "" {
			dedupKey = v
			break
		}
	}
	return t.Get(row, internal.FieldFirstName) + "\x00" + t.Get(row, internal.FieldLastName) + "\x00" + dedupKey
}

func mergeGroup(t *table.Table, rows []int) []string {
	merged := make([]string, len(t.Columns))
	for col, name := range t.Columns {
		switch name {
		case internal.FieldEmailMarketingOk:
			merged[col] = "false"
			for _, r := range rows {
				if t.Rows[r][col] == "true" {
					merged[col] = "true"
					break
				}
			}
		case internal.FieldGuestNotes:
			seen := map[string]bool{}
			var parts []string
			for _, r := range rows {
				value := strings.TrimSpace(t.Rows[r][col])
				if value == "" || seen[value] {
					continue
				}
				seen[value] = true
				parts = append(parts, value)
			}
			merged[col] = strings.Join(parts, ", ")
		default:
			for _, r := range rows {
				if strings.TrimSpace(t.Rows[r][col]) != "" {
					merged[col] = t.Rows[r][col]
					break
				}
			}
		}
	}
	return merged
}
