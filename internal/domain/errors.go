package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCatalogUnavailable is returned when the catalog endpoint cannot be reached
	ErrCatalogUnavailable = errors.New("catalog request failed")

	// ErrMalformedFunctionArgs is returned when the model's function-call
	// arguments cannot be parsed as JSON
	ErrMalformedFunctionArgs = errors.New("malformed function call arguments")

	// ErrModelEmptyResponse is returned when the provider answers with no choices
	ErrModelEmptyResponse = errors.New("model returned no response choices")
)
