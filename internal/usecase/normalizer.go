package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	nonWordRegex        = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex        = regexp.MustCompile(`<[^>]+>`)
)

// diacriticStripper decomposes to NFD and drops combining marks, so
// "mușețel" and "musetel" normalize to the same form.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize produces the canonical text form used by every matcher:
// lowercase, diacritics stripped, punctuation replaced by spaces,
// whitespace collapsed and trimmed. Total and idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripped, _, err := transform.String(diacriticStripper, lowered)
	if err != nil {
		// Malformed input passes through un-stripped rather than failing
		stripped = lowered
	}

	stripped = nonWordRegex.ReplaceAllString(stripped, " ")
	stripped = multipleSpacesRegex.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(stripped)
}

// StripHTML removes markup tags from catalog description fields.
// Tag-level only: HTML entities are not decoded. This is an accepted
// limitation of the catalog contract, not something to correct here.
func StripHTML(html string) string {
	out := htmlTagRegex.ReplaceAllString(html, " ")
	out = multipleSpacesRegex.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
