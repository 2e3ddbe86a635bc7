package domain

// CatalogProduct represents a raw product record fetched from the remote catalog
type CatalogProduct struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Permalink        string            `json:"permalink"`
	Price            string            `json:"price"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	Categories       []string          `json:"categories"`
	Images           []string          `json:"images"`
	Attributes       ProductAttributes `json:"attributes"`
}

// ProductAttributes holds the optional attribute lists attached to a catalog record
type ProductAttributes struct {
	Brand []string `json:"pa_brand"`
}

// FormattedProduct is the presentation-ready projection of a CatalogProduct
type FormattedProduct struct {
	Name        string `json:"name"`
	Permalink   string `json:"permalink"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Categories  string `json:"categories"`
	Image       string `json:"image"`
	Brand       string `json:"brand"`
}

// SearchResult is an ordered, capped list of formatted products.
// Fuzzy is true only when the products came from the fuzzy fallback tier;
// exact-tier results never carry it.
type SearchResult struct {
	Products []FormattedProduct `json:"products"`
	Fuzzy    bool               `json:"fuzzy"`
}
