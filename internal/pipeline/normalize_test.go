package pipeline

import (
	"reflect"
	"testing"

	"guestfile/internal/table"
)

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		first string
		last  string
	}{
		{name: "two words", input: "Jane Doe", first: "Jane", last: "Doe"},
		{name: "single word is a surname", input: "Prince", first: "", last: "Prince"},
		{name: "first whitespace run only", input: "Jane  van der Berg", first: "Jane", last: "van der Berg"},
		{name: "blank", input: "   ", first: "", last: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := SplitFullName(tc.input)
			if first != tc.first || last != tc.last {
				t.Fatalf("got (%q, %q) want (%q, %q)", first, last, tc.first, tc.last)
			}
		})
	}
}

func TestApplyNameSplitNeverOverwrites(t *testing.T) {
	tab := table.New([]string{"Full Name", "firstName", "lastName"})
	tab.AppendRow([]string{"Jane Doe", "", ""})
	tab.AppendRow([]string{"Bob Smith", "Robert", ""})

	ApplyNameSplit(tab, "Full Name")

	if tab.Get(0, "firstName") != "Jane" || tab.Get(0, "lastName") != "Doe" {
		t.Fatalf("blank fields not filled: %v", tab.Rows[0])
	}
	if tab.Get(1, "firstName") != "Robert" {
		t.Fatalf("existing value overwritten: %v", tab.Rows[1])
	}
	if tab.Get(1, "lastName") != "Smith" {
		t.Fatalf("blank last name not filled: %v", tab.Rows[1])
	}
}

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		name  string
		input string
		hint  string
		want  string
	}{
		{name: "plus prefix trims only", input: " +1 555 123 4567 ", want: "+1 555 123 4567"},
		{name: "uk heuristic", input: "442071234567", want: "+442071234567"},
		{name: "uk local no hint match", input: "07911123456", hint: "44", want: "07911123456"},
		{name: "hint prefix", input: "33 1 42 68 53 00", hint: "33", want: "+33142685300"},
		{name: "us exact eleven", input: "1-555-123-4567", want: "+15551234567"},
		{name: "us wrong length untouched", input: "555-1234", want: "555-1234"},
		{name: "france heuristic", input: "33142685300", want: "+33142685300"},
		{name: "blank passes through", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPhone(tc.input, tc.hint); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "1990-03-15", want: "1990-03-15"},
		{input: "03/15/1990", want: "1990-03-15"},
		{input: "15 Mar 1990", want: "1990-03-15"},
		{input: "not a date", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := FormatDate(tc.input); got != tc.want {
			t.Fatalf("FormatDate(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTitleCaseNames(t *testing.T) {
	tab := table.New([]string{"firstName", "lastName"})
	tab.AppendRow([]string{"jane", "DOE"})
	TitleCaseNames(tab)
	if tab.Get(0, "firstName") != "Jane" || tab.Get(0, "lastName") != "Doe" {
		t.Fatalf("unexpected casing: %v", tab.Rows[0])
	}
}

func TestResolveConsent(t *testing.T) {
	tab := table.New([]string{"emailMarketingOk"})
	for _, v := range []string{"Yes", " TRUE ", "nope", "", "oui"} {
		tab.AppendRow([]string{v})
	}

	ResolveConsent(tab, []string{"yes", "true", "1", "y", "oui"}, false)
	want := []string{"true", "true", "false", "false", "true"}
	for i, w := range want {
		if tab.Get(i, "emailMarketingOk") != w {
			t.Fatalf("row %d: got %q want %q", i, tab.Get(i, "emailMarketingOk"), w)
		}
	}
}

func TestResolveConsentAllNonBlank(t *testing.T) {
	tab := table.New([]string{"emailMarketingOk"})
	tab.AppendRow([]string{"whatever"})
	tab.AppendRow([]string{"  "})

	ResolveConsent(tab, nil, true)
	if tab.Get(0, "emailMarketingOk") != "true" || tab.Get(1, "emailMarketingOk") != "false" {
		t.Fatalf("unexpected consent values: %v", tab.Rows)
	}
}

func TestUnknownConsentValues(t *testing.T) {
	tab := table.New([]string{"emailMarketingOk"})
	for _, v := range []string{"yes", "Opted In", "opted in", "", "no"} {
		tab.AppendRow([]string{v})
	}

	got := UnknownConsentValues(tab, []string{"yes", "true", "1", "y"})
	if !reflect.DeepEqual(got, []string{"opted in", "no"}) {
		t.Fatalf("unexpected unknown values: %v", got)
	}
}

func TestCombineNotes(t *testing.T) {
	tab := table.New([]string{"Allergies", "Seating", "Extra"})
	tab.AppendRow([]string{" nuts ", "window", "nuts"})
	tab.AppendRow([]string{"", "", ""})

	CombineNotes(tab, []string{"Allergies", "Seating", "Extra", "Missing"})

	if tab.Get(0, "guestNotes") != "nuts, window" {
		t.Fatalf("got %q", tab.Get(0, "guestNotes"))
	}
	if tab.Get(1, "guestNotes") != "" {
		t.Fatalf("blank rows should combine to blank, got %q", tab.Get(1, "guestNotes"))
	}
}
