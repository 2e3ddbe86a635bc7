package usecase

// DefaultSynonyms returns the built-in stem-to-variants table consulted by
// the fuzzy search tier. Keys and variants are already in normalized form.
// The table is not assumed symmetric: a stem only expands to the variants
// listed under it. Overridable through configuration.
func DefaultSynonyms() map[string][]string {
	return map[string][]string{
		"menstruatie": {"menstruala", "menstruale", "menstruatii", "menstrual", "menstruatiei"},
		"menstruale":  {"menstruatie", "menstruala", "menstruatii", "menstrual", "menstruatiei"},
		"brun":        {"bruna", "brune", "bruni"},
		"germinare":   {"germinat", "germeni", "germina", "germinati"},
		"germinat":    {"germinare", "germeni", "germina", "germinati"},
		"suc":         {"sucuri", "bauturi racoritoare", "sucurile"},
		"confiat":     {"confiate", "confiata", "confiati"},
		"confiate":    {"confiat", "confiata", "confiati"},
	}
}
