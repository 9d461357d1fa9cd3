package pipeline

import (
	"regexp"
	"strings"
	"time"

	"guestfile/internal"
	"guestfile/internal/table"
	"guestfile/internal/util"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SplitFullName splits a combined name on the first run of whitespace.
// A single-word name is treated as a surname: first comes back empty.
func SplitFullName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := whitespaceRe.Split(name, 2)
	if len(parts) == 1 {
		return "", parts[0]
	}
	return parts[0], parts[1]
}

// ApplyNameSplit fills firstName/lastName from a full-name column. Split
// results only land where the target field is blank; existing values win.
func ApplyNameSplit(t *table.Table, nameColumn string) {
	if !t.HasColumn(nameColumn) {
		return
	}
	t.AddColumn(internal.FieldFirstName)
	t.AddColumn(internal.FieldLastName)

	for i := range t.Rows {
		first, last := SplitFullName(t.Get(i, nameColumn))
		if strings.TrimSpace(t.Get(i, internal.FieldFirstName)) == "" {
			t.Set(i, internal.FieldFirstName, first)
		}
		if strings.TrimSpace(t.Get(i, internal.FieldLastName)) == "" {
			t.Set(i, internal.FieldLastName, last)
		}
	}
}

// FormatPhone normalises a free-text phone value. Values already carrying
// a + pass through trimmed. Otherwise the digits are checked against the
// hint dialing code, then against fixed UK/US/France shapes. A value that
// matches nothing comes back untouched: uncertain data is never discarded.
func FormatPhone(phone, hintCode string) string {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return phone
	}
	if strings.HasPrefix(trimmed, "+") {
		return trimmed
	}

	digits := util.Digits(phone)
	if hintCode != "" && strings.HasPrefix(digits, hintCode) {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "44") && len(digits) > 10 {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "1") && len(digits) == 11 {
		return "+" + digits
	}
	if strings.HasPrefix(digits, "33") && len(digits) > 9 {
		return "+" + digits
	}
	return phone
}

// FormatPhones runs FormatPhone over both phone columns.
func FormatPhones(t *table.Table, hintCode string) {
	for _, col := range []string{internal.FieldPhoneNumber, internal.FieldMobileNumber} {
		if !t.HasColumn(col) {
			continue
		}
		for i := range t.Rows {
			t.Set(i, col, FormatPhone(t.Get(i, col), hintCode))
		}
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"02.01.2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"20060102",
}

// FormatDate parses a free-text date into ISO YYYY-MM-DD. Unparseable
// values become blank rather than errors.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return ""
}

// FormatDates normalises both date columns to ISO form.
func FormatDates(t *table.Table) {
	for _, col := range []string{internal.FieldDateOfBirth, internal.FieldDateOfAnniversary} {
		if !t.HasColumn(col) {
			continue
		}
		for i := range t.Rows {
			t.Set(i, col, FormatDate(t.Get(i, col)))
		}
	}
}

// TitleCaseNames renders the name columns in title case. Runs after the
// split so split results are covered too.
func TitleCaseNames(t *table.Table) {
	for _, col := range []string{internal.FieldFirstName, internal.FieldLastName} {
		if !t.HasColumn(col) {
			continue
		}
		for i := range t.Rows {
			t.Set(i, col, util.Title(t.Get(i, col)))
		}
	}
}

// ResolveConsent rewrites emailMarketingOk to "true"/"false". With
// allNonBlank set, any non-blank value counts as consent; otherwise a
// value is consent iff its lowercased, trimmed form is in truthy.
func ResolveConsent(t *table.Table, truthy []string, allNonBlank bool) {
	if !t.HasColumn(internal.FieldEmailMarketingOk) {
		return
	}

	set := map[string]bool{}
	for _, v := range truthy {
		set[strings.ToLower(v)] = true
	}

	for i := range t.Rows {
		value := strings.TrimSpace(t.Get(i, internal.FieldEmailMarketingOk))
		ok := false
		if allNonBlank {
			ok = value != ""
		} else {
			ok = set[strings.ToLower(value)]
		}
		if ok {
			t.Set(i, internal.FieldEmailMarketingOk, "true")
		} else {
			t.Set(i, internal.FieldEmailMarketingOk, "false")
		}
	}
}

// UnknownConsentValues lists the distinct non-blank consent values not yet
// in the truthy set, in first-seen order, for the caller to rule on.
func UnknownConsentValues(t *table.Table, truthy []string) []string {
	if !t.HasColumn(internal.FieldEmailMarketingOk) {
		return nil
	}

	set := map[string]bool{}
	for _, v := range truthy {
		set[strings.ToLower(v)] = true
	}

	seen := map[string]bool{}
	var out []string
	for i := range t.Rows {
		value := strings.ToLower(strings.TrimSpace(t.Get(i, internal.FieldEmailMarketingOk)))
		if value == "" || set[value] || seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}

// CombineNotes joins the selected columns row-wise into guestNotes with
// ", ", trimming, dropping blanks, and deduping values within the row
// while keeping first-seen order.
func CombineNotes(t *table.Table, columns []string) {
	present := make([]string, 0, len(columns))
	for _, col := range columns {
		if t.HasColumn(col) {
			present = append(present, col)
		}
	}
	if len(present) == 0 {
		return
	}

	t.AddColumn(internal.FieldGuestNotes)
	for i := range t.Rows {
		seen := map[string]bool{}
		var parts []string
		for _, col := range present {
			value := strings.TrimSpace(t.Get(i, col))
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			parts = append(parts, value)
		}
		t.Set(i, internal.FieldGuestNotes, strings.Join(parts, ", "))
	}
}
