package domain

import "context"

// CatalogClient defines the interface for fetching the remote product catalog
type CatalogClient interface {
	// FetchAll retrieves the full product list in catalog order.
	// One fresh fetch per call: no retry, no caching.
	FetchAll(ctx context.Context) ([]CatalogProduct, error)
}

// ChatModel defines the interface for the LLM provider
type ChatModel interface {
	// DecideTurn sends the conversation with the product-search function
	// schema attached and returns the model's decision for this turn.
	DecideTurn(ctx context.Context, messages []ModelMessage) (*ModelDecision, error)

	// Complete runs a single bounded completion with the given parameters.
	Complete(ctx context.Context, params CompletionParams, prompt string) (string, error)
}
