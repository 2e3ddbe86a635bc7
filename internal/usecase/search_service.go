package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/natmag/chat-backend/internal/domain"
)

// minFuzzyTermLen is the floor below which expanded terms are discarded in
// the fuzzy tier, keeping short generic words from matching half the catalog
const minFuzzyTermLen = 4

// defaultResultLimit caps how many products a search returns
const defaultResultLimit = 5

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	ResultLimit        int
	Synonyms           map[string][]string
	EnableDebugLogging bool
}

// SearchService runs the tiered product search over the remote catalog:
// exact name match, exact description match, then a fuzzy fallback with
// synonym expansion and substring matching.
type SearchService struct {
	catalog            domain.CatalogClient
	resultLimit        int
	synonyms           map[string][]string
	enableDebugLogging bool
}

// NewSearchService creates a new search service with the given configuration
func NewSearchService(catalog domain.CatalogClient, config SearchServiceConfig) *SearchService {
	limit := config.ResultLimit
	if limit <= 0 {
		limit = defaultResultLimit
	}

	synonyms := config.Synonyms
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}

	return &SearchService{
		catalog:            catalog,
		resultLimit:        limit,
		synonyms:           normalizeSynonyms(synonyms),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search runs the tiered search for a query. Strict tier order, first
// non-empty tier wins; the fuzzy flag is set only by the fallback tier.
//
// An empty or whitespace-only query normalizes to zero terms, every-word
// matching is then vacuously true, and the whole catalog comes back capped
// at the result limit. Callers rely on this contract; see AllFormatted for
// the uncapped variant.
func (s *SearchService) Search(ctx context.Context, query string) domain.SearchResult {
	all := s.loadCatalog(ctx)
	terms := strings.Fields(Normalize(query))

	if s.enableDebugLogging {
		log.Printf("[SEARCH] query=%q terms=%v catalog=%d", query, terms, len(all))
	}

	patterns := wordPatterns(terms)

	var nameMatches []domain.CatalogProduct
	for _, p := range all {
		if matchesAllWords(Normalize(p.Name), patterns) {
			nameMatches = append(nameMatches, p)
		}
	}

	var descMatches []domain.CatalogProduct
	for _, p := range all {
		if matchesAllWords(combinedDescription(p), patterns) {
			descMatches = append(descMatches, p)
		}
	}

	combined := mergeByID(nameMatches, descMatches)

	if len(combined) > 0 {
		if s.enableDebugLogging {
			log.Printf("[SEARCH] exact matches: %d (name=%d desc=%d)", len(combined), len(nameMatches), len(descMatches))
		}
		return domain.SearchResult{Products: s.formatCapped(combined)}
	}

	fuzzyMatches := s.fuzzySearch(all, terms)
	if len(fuzzyMatches) > 0 {
		if s.enableDebugLogging {
			log.Printf("[SEARCH] fuzzy matches: %d", len(fuzzyMatches))
		}
		return domain.SearchResult{Products: s.formatCapped(fuzzyMatches), Fuzzy: true}
	}

	return domain.SearchResult{}
}

// AllFormatted returns the entire catalog formatted, uncapped, in catalog
// order. Used by the name-linking pass over plain-text replies.
func (s *SearchService) AllFormatted(ctx context.Context) []domain.FormattedProduct {
	all := s.loadCatalog(ctx)
	formatted := make([]domain.FormattedProduct, 0, len(all))
	for _, p := range all {
		formatted = append(formatted, FormatProduct(p))
	}
	return formatted
}

// loadCatalog fetches the catalog, degrading to an empty list on any
// transport failure. Downstream matching treats "no catalog" and
// "no matches" identically, so fetch errors never reach the user.
func (s *SearchService) loadCatalog(ctx context.Context) []domain.CatalogProduct {
	products, err := s.catalog.FetchAll(ctx)
	if err != nil {
		log.Printf("[SEARCH] catalog fetch failed, continuing with empty catalog: %v", err)
		return nil
	}
	return products
}

// fuzzySearch is the fallback tier: expand terms with synonyms, then match
// any expanded term as a plain substring of name or description.
func (s *SearchService) fuzzySearch(all []domain.CatalogProduct, terms []string) []domain.CatalogProduct {
	expanded := s.expandTerms(terms)

	var matches []domain.CatalogProduct
	for _, p := range all {
		name := Normalize(p.Name)
		desc := combinedDescription(p)
		for _, term := range expanded {
			if len(term) < minFuzzyTermLen {
				continue
			}
			if strings.Contains(name, term) || strings.Contains(desc, term) {
				matches = append(matches, p)
				break
			}
		}
	}
	return matches
}

// expandTerms appends each term's synonym variants after the term itself,
// deduplicating across the whole expanded list
func (s *SearchService) expandTerms(terms []string) []string {
	seen := make(map[string]bool)
	var expanded []string

	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		expanded = append(expanded, term)
	}

	for _, term := range terms {
		add(term)
		for _, variant := range s.synonyms[term] {
			add(variant)
		}
	}
	return expanded
}

// formatCapped truncates to the result limit and formats each product
func (s *SearchService) formatCapped(products []domain.CatalogProduct) []domain.FormattedProduct {
	if len(products) > s.resultLimit {
		products = products[:s.resultLimit]
	}
	formatted := make([]domain.FormattedProduct, 0, len(products))
	for _, p := range products {
		formatted = append(formatted, FormatProduct(p))
	}
	return formatted
}

// wordPatterns compiles one word-boundary pattern per query term.
// Terms are already normalized, so QuoteMeta is belt and braces.
func wordPatterns(terms []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return patterns
}

// matchesAllWords reports whether every pattern matches the normalized text.
// Vacuously true for an empty pattern list.
func matchesAllWords(text string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if !pattern.MatchString(text) {
			return false
		}
	}
	return true
}

// combinedDescription joins both description fields, stripped and normalized
func combinedDescription(p domain.CatalogProduct) string {
	return Normalize(StripHTML(p.Description) + " " + StripHTML(p.ShortDescription))
}

// mergeByID returns the name-tier matches followed by description-tier
// matches not already present, preserving catalog order within each tier
func mergeByID(nameMatches, descMatches []domain.CatalogProduct) []domain.CatalogProduct {
	seen := make(map[int]bool, len(nameMatches))
	for _, p := range nameMatches {
		seen[p.ID] = true
	}

	combined := make([]domain.CatalogProduct, 0, len(nameMatches)+len(descMatches))
	combined = append(combined, nameMatches...)
	for _, p := range descMatches {
		if !seen[p.ID] {
			combined = append(combined, p)
		}
	}
	return combined
}

// normalizeSynonyms canonicalizes table keys and variants so lookups work
// regardless of how the table was written in configuration
func normalizeSynonyms(table map[string][]string) map[string][]string {
	normalized := make(map[string][]string, len(table))
	for stem, variants := range table {
		key := Normalize(stem)
		if key == "" {
			continue
		}
		cleaned := make([]string, 0, len(variants))
		for _, v := range variants {
			if nv := Normalize(v); nv != "" {
				cleaned = append(cleaned, nv)
			}
		}
		normalized[key] = cleaned
	}
	return normalized
}
