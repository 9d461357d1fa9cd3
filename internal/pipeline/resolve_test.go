package pipeline

import (
	"path/filepath"
	"reflect"
	"testing"

	"guestfile/internal/mappings"
	"guestfile/internal/table"
)

func seededStore(t *testing.T) *mappings.Store {
	t.Helper()
	s := mappings.Load(filepath.Join(t.TempDir(), "mappings.json"))
	for i := 0; i < mappings.DefaultThreshold; i++ {
		s.RecordMapping("email", "Email Address")
		s.RecordMapping("mobileNumber", "Mobile")
	}
	return s
}

func TestResolveHeadersAutoAndUnmapped(t *testing.T) {
	s := seededStore(t)
	columns := []string{"Email Address", "Surname", "Favourite Drink", "firstName"}

	plan := ResolveHeaders(columns, s, mappings.DefaultThreshold)
	if plan.Auto["Email Address"] != "email" || plan.Auto["Surname"] != "lastName" {
		t.Fatalf("unexpected auto plan: %v", plan.Auto)
	}
	if len(plan.Auto) != 2 {
		t.Fatalf("unexpected auto plan size: %v", plan.Auto)
	}
	// Already-standard names never need a decision.
	if !reflect.DeepEqual(plan.Unmapped, []string{"Favourite Drink"}) {
		t.Fatalf("unexpected unmapped: %v", plan.Unmapped)
	}
}

func TestResolveHeadersIgnoresColumnOrderAndIsIdempotent(t *testing.T) {
	s := seededStore(t)
	forward := []string{"Email Address", "Mobile", "Surname"}
	reversed := []string{"Surname", "Mobile", "Email Address"}

	a := ResolveHeaders(forward, s, mappings.DefaultThreshold)
	b := ResolveHeaders(reversed, s, mappings.DefaultThreshold)
	if !reflect.DeepEqual(a.Auto, b.Auto) {
		t.Fatalf("auto plan depends on column order: %v vs %v", a.Auto, b.Auto)
	}

	again := ResolveHeaders(forward, s, mappings.DefaultThreshold)
	if !reflect.DeepEqual(a, again) {
		t.Fatalf("plan not idempotent: %v vs %v", a, again)
	}
}

func TestResolveHeadersBelowThreshold(t *testing.T) {
	s := mappings.Load(filepath.Join(t.TempDir(), "mappings.json"))
	s.RecordMapping("email", "Email Address")

	plan := ResolveHeaders([]string{"Email Address"}, s, mappings.DefaultThreshold)
	if len(plan.Auto) != 0 {
		t.Fatalf("unconfirmed variant auto-mapped: %v", plan.Auto)
	}
	if len(plan.Unmapped) != 1 {
		t.Fatalf("unconfirmed variant not reported: %v", plan.Unmapped)
	}
}

func TestApplyManualMappings(t *testing.T) {
	tab := table.New([]string{"Postcode", "Drink", "Comments"})
	tab.AppendRow([]string{"SW1A 1AA", "tea", "vip"})

	confirmed := ApplyManualMappings(tab, map[string]string{
		"Postcode": "zipCode",
		"Drink":    "notAField",
		"Comments": "guestNotes", // not a manual target
		"Missing":  "city",
	})

	if len(confirmed) != 1 || confirmed["Postcode"] != "zipCode" {
		t.Fatalf("unexpected confirmed set: %v", confirmed)
	}
	if !tab.HasColumn("zipCode") || tab.HasColumn("Postcode") {
		t.Fatalf("rename not applied: %v", tab.Columns)
	}
	if !tab.HasColumn("Comments") {
		t.Fatalf("guestNotes target should not rename: %v", tab.Columns)
	}
}
