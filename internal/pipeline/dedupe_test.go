package pipeline

import (
	"testing"

	"guestfile/internal/table"
)

func guestTable() *table.Table {
	return table.New([]string{"firstName", "lastName", "email", "phoneNumber", "emailMarketingOk", "guestNotes", "city"})
}

func TestReconcileMergesDuplicates(t *testing.T) {
	tab := guestTable()
	tab.AppendRow([]string{"Jane", "Doe", "jane@x.com", "", "false", "vegetarian", ""})
	tab.AppendRow([]string{"Jane", "Doe", "jane@x.com", "+441234", "true", "window seat", "London"})
	tab.AppendRow([]string{"Bob", "Smith", "bob@x.com", "", "false", "", ""})

	out, merged := Reconcile(tab)
	if out.Len() != 2 || merged != 1 {
		t.Fatalf("got %d rows, merged=%d", out.Len(), merged)
	}

	if out.Get(0, "emailMarketingOk") != "true" {
		t.Fatalf("consent should OR across the group")
	}
	if out.Get(0, "guestNotes") != "vegetarian, window seat" {
		t.Fatalf("notes union wrong: %q", out.Get(0, "guestNotes"))
	}
	// first non-blank wins for plain columns
	if out.Get(0, "phoneNumber") != "+441234" || out.Get(0, "city") != "London" {
		t.Fatalf("first-non-blank aggregation wrong: %v", out.Rows[0])
	}
	if out.Get(1, "firstName") != "Bob" {
		t.Fatalf("group order not first-seen: %v", out.Rows)
	}
}

func TestReconcileDedupKeyPriority(t *testing.T) {
	tab := guestTable()
	// Email outranks phone: the second row keys on its email even though
	// the phones match, so the rows stay separate.
	tab.AppendRow([]string{"Jane", "Doe", "", "+441234", "false", "", ""})
	tab.AppendRow([]string{"Jane", "Doe", "jane@x.com", "+441234", "false", "", ""})

	out, merged := Reconcile(tab)
	if merged != 0 || out.Len() != 2 {
		t.Fatalf("distinct keys merged: rows=%d merged=%d", out.Len(), merged)
	}

	tab = guestTable()
	tab.AppendRow([]string{"Jane", "Doe", "", "+441234", "false", "", ""})
	tab.AppendRow([]string{"Jane", "Doe", "", " +441234 ", "false", "", ""})
	out, merged = Reconcile(tab)
	if merged != 1 || out.Len() != 1 {
		t.Fatalf("same phone key should merge: rows=%d merged=%d", out.Len(), merged)
	}
}

func TestReconcileDifferentNamesNeverMerge(t *testing.T) {
	tab := guestTable()
	tab.AppendRow([]string{"Jane", "Doe", "shared@x.com", "", "false", "", ""})
	tab.AppendRow([]string{"John", "Doe", "shared@x.com", "", "false", "", ""})

	out, merged := Reconcile(tab)
	if out.Len() != 2 || merged != 0 {
		t.Fatalf("rows with different names merged")
	}
}

func TestReconcileSkipsWithoutKeyColumns(t *testing.T) {
	noNames := table.New([]string{"email"})
	noNames.AppendRow([]string{"jane@x.com"})
	noNames.AppendRow([]string{"jane@x.com"})
	out, merged := Reconcile(noNames)
	if out.Len() != 2 || merged != 0 {
		t.Fatalf("reconcile should skip without name columns")
	}

	noContacts := table.New([]string{"firstName", "lastName"})
	noContacts.AppendRow([]string{"Jane", "Doe"})
	noContacts.AppendRow([]string{"Jane", "Doe"})
	out, merged = Reconcile(noContacts)
	if out.Len() != 2 || merged != 0 {
		t.Fatalf("reconcile should skip without contact columns")
	}
}
