package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/natmag/chat-backend/internal/domain"
)

// sentenceRegex matches one sentence including its terminal punctuation
var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+`)

// maxDescriptionSentences caps the formatted description length
const maxDescriptionSentences = 3

// FormatProduct projects a raw catalog record into its display-ready shape
func FormatProduct(p domain.CatalogProduct) domain.FormattedProduct {
	return domain.FormattedProduct{
		Name:        p.Name,
		Permalink:   p.Permalink,
		Price:       formatPrice(p.Price),
		Description: summarizeDescription(p.Description),
		Categories:  strings.Join(p.Categories, ", "),
		Image:       firstOrEmpty(p.Images),
		Brand:       strings.Join(p.Attributes.Brand, ", "),
	}
}

// formatPrice renders the raw price with exactly two decimals.
// A price the catalog sends malformed renders as the literal "NaN",
// matching what the storefront already displays for such records.
func formatPrice(raw string) string {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "NaN"
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// summarizeDescription strips markup and keeps the first few sentences.
// Text without terminal punctuation yields no sentences and an empty summary.
func summarizeDescription(html string) string {
	stripped := StripHTML(html)
	sentences := sentenceRegex.FindAllString(stripped, maxDescriptionSentences)

	parts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		parts = append(parts, strings.TrimSpace(s))
	}
	return strings.Join(parts, " ")
}

func firstOrEmpty(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
