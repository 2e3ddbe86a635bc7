package usecase

import (
	"strings"
	"testing"

	"github.com/natmag/chat-backend/internal/domain"
)

func TestLinkifyProductNames(t *testing.T) {
	t.Run("wraps whole-word occurrences with anchors", func(t *testing.T) {
		products := []domain.FormattedProduct{
			{Name: "Ceai verde", Permalink: "https://natmag.ro/p/ceai-verde"},
		}
		got := LinkifyProductNames("Iti recomand Ceai verde dimineata", products)
		want := `Iti recomand <a href="https://natmag.ro/p/ceai-verde" target="_blank">Ceai verde</a> dimineata`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("matching is case-insensitive but keeps the canonical name", func(t *testing.T) {
		products := []domain.FormattedProduct{
			{Name: "Ceai verde", Permalink: "https://natmag.ro/p/ceai-verde"},
		}
		got := LinkifyProductNames("incearca CEAI VERDE", products)
		if !strings.Contains(got, ">Ceai verde</a>") {
			t.Errorf("canonical name not used in anchor: %q", got)
		}
	})

	t.Run("longer names are linked before their substrings", func(t *testing.T) {
		products := []domain.FormattedProduct{
			{Name: "Ceai", Permalink: "https://natmag.ro/p/ceai"},
			{Name: "Ceai de musetel", Permalink: "https://natmag.ro/p/ceai-de-musetel"},
		}
		got := LinkifyProductNames("Recomand Ceai de musetel seara", products)
		if !strings.Contains(got, `href="https://natmag.ro/p/ceai-de-musetel"`) {
			t.Errorf("longer name not linked: %q", got)
		}
		if strings.Contains(got, `href="https://natmag.ro/p/ceai"`) {
			t.Errorf("shorter name wrapped inside the longer one's occurrence: %q", got)
		}
	})

	t.Run("names with regex metacharacters are escaped literally", func(t *testing.T) {
		products := []domain.FormattedProduct{
			{Name: "Vitamina C (forte) 500mg", Permalink: "https://natmag.ro/p/vit-c"},
		}
		got := LinkifyProductNames("Am Vitamina C (forte) 500mg in stoc", products)
		if !strings.Contains(got, `target="_blank">Vitamina C (forte) 500mg</a>`) {
			t.Errorf("metacharacter name not linked: %q", got)
		}
	})

	t.Run("names ending in a non-word character are left unlinked", func(t *testing.T) {
		// The word-boundary pattern needs a word character on each side of
		// the name, so a trailing ")" can never sit on a boundary. Such
		// names pass through untouched rather than half-linked.
		products := []domain.FormattedProduct{
			{Name: "Vitamina C (forte)", Permalink: "https://natmag.ro/p/vit-c"},
		}
		text := "Am Vitamina C (forte) in stoc"
		if got := LinkifyProductNames(text, products); got != text {
			t.Errorf("got %q, want unchanged", got)
		}
	})

	t.Run("text without product names passes through", func(t *testing.T) {
		products := []domain.FormattedProduct{{Name: "Ceai verde", Permalink: "x"}}
		text := "nimic de legat aici"
		if got := LinkifyProductNames(text, products); got != text {
			t.Errorf("got %q, want unchanged", got)
		}
	})
}

func TestConvertMarkdownLinks(t *testing.T) {
	t.Run("converts markdown links to anchors", func(t *testing.T) {
		got := ConvertMarkdownLinks("Incearca [acest produs](https://x/y) azi")
		want := `Incearca <a href="https://x/y" target="_blank">acest produs</a> azi`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("converts multiple links", func(t *testing.T) {
		got := ConvertMarkdownLinks("[a](https://1) si [b](http://2)")
		if strings.Count(got, "<a href=") != 2 {
			t.Errorf("got %q, want two anchors", got)
		}
	})

	t.Run("ignores non-http schemes and plain brackets", func(t *testing.T) {
		text := "[nota] si [x](ftp://y)"
		if got := ConvertMarkdownLinks(text); got != text {
			t.Errorf("got %q, want unchanged", got)
		}
	})
}
