package domain

import "fmt"

// ModelMessage is a message sent to the LLM provider
type ModelMessage struct {
	Role    string
	Content string
}

// FunctionCall is the structured directive a model returns in lieu of free text
type FunctionCall struct {
	Name      string
	Arguments string // JSON-encoded argument object
}

// ModelDecision is the model's reply to one conversation turn: either free
// text content or a function-call directive
type ModelDecision struct {
	Content      string
	FunctionCall *FunctionCall
}

// CompletionParams bound a single standalone completion request
type CompletionParams struct {
	Model       string
	System      string
	MaxTokens   int
	Temperature float32
}

// ModelError carries an LLM provider failure with the provider's HTTP status
// so the delivery layer can surface it verbatim to the caller.
type ModelError struct {
	StatusCode int
	Message    string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model request failed (status %d): %s", e.StatusCode, e.Message)
}
