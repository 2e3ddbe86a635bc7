package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/natmag/chat-backend/internal/domain"
)

// markdownLinkRegex matches markdown-style [text](url) links with http(s) URLs
var markdownLinkRegex = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)

// anchorRegex matches an already-inserted anchor element
var anchorRegex = regexp.MustCompile(`<a\b[^>]*>.*?</a>`)

// LinkifyProductNames wraps every whole-word, case-insensitive occurrence of
// a catalog product name in the text with an anchor to its permalink.
// Longest names are applied first so a short product name never gets wrapped
// inside an occurrence of a longer one.
func LinkifyProductNames(text string, products []domain.FormattedProduct) string {
	sorted := make([]domain.FormattedProduct, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Name) > len(sorted[j].Name)
	})

	for _, p := range sorted {
		if p.Name == "" {
			continue
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p.Name) + `\b`)
		if err != nil {
			continue
		}
		anchor := `<a href="` + p.Permalink + `" target="_blank">` + p.Name + `</a>`
		text = replaceOutsideAnchors(text, pattern, anchor)
	}
	return text
}

// replaceOutsideAnchors applies the replacement only to text segments that
// are not already inside an anchor, so a shorter product name never gets
// re-linked within a longer name's anchor text or href.
func replaceOutsideAnchors(text string, pattern *regexp.Regexp, replacement string) string {
	anchors := anchorRegex.FindAllStringIndex(text, -1)
	if anchors == nil {
		return pattern.ReplaceAllLiteralString(text, replacement)
	}

	var b strings.Builder
	last := 0
	for _, loc := range anchors {
		b.WriteString(pattern.ReplaceAllLiteralString(text[last:loc[0]], replacement))
		b.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(pattern.ReplaceAllLiteralString(text[last:], replacement))
	return b.String()
}

// ConvertMarkdownLinks rewrites any remaining markdown [text](url) links as
// HTML anchors opening in a new tab
func ConvertMarkdownLinks(text string) string {
	return markdownLinkRegex.ReplaceAllString(text, `<a href="$2" target="_blank">$1</a>`)
}
