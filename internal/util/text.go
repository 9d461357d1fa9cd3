package util

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Title renders a value in title case, one capital per word.
func Title(input string) string {
	return titleCaser.String(input)
}

// Digits strips every non-digit character from the input.
func Digits(input string) string {
	out := strings.Builder{}
	for _, r := range input {
		if r >= '0' && r <= '9' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func StringPtr(v string) *string { return &v }
