package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/natmag/chat-backend/internal/domain"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Client wraps the OpenAI chat-completion API behind the domain.ChatModel
// interface
type Client struct {
	client    *openai.Client
	model     string
	functions []openai.FunctionDefinition
	debug     bool
}

// NewClient creates a new OpenAI client. baseURL may be empty for the
// provider default; it exists so tests can point at a mock server.
func NewClient(apiKey, model, baseURL string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		functions: []openai.FunctionDefinition{productSearchFunction()},
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// productSearchFunction is the schema of the single function exposed to the
// model
func productSearchFunction() openai.FunctionDefinition {
	return openai.FunctionDefinition{
		Name:        "getProducts",
		Description: "Caută produse în catalog după un termen dat",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"query": {
					Type:        jsonschema.String,
					Description: "Termenul după care căutăm numele produsului",
				},
			},
			Required: []string{"query"},
		},
	}
}

// DecideTurn sends the conversation with the function schema attached and a
// function-call policy of "auto", returning the model's decision.
func (c *Client) DecideTurn(ctx context.Context, messages []domain.ModelMessage) (*domain.ModelDecision, error) {
	req := openai.ChatCompletionRequest{
		Model:        c.model,
		Messages:     toChatMessages(messages),
		Functions:    c.functions,
		FunctionCall: "auto",
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, wrapProviderError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.ErrModelEmptyResponse
	}

	msg := resp.Choices[0].Message
	decision := &domain.ModelDecision{Content: msg.Content}
	if msg.FunctionCall != nil {
		decision.FunctionCall = &domain.FunctionCall{
			Name:      msg.FunctionCall.Name,
			Arguments: msg.FunctionCall.Arguments,
		}
	}

	if c.debug {
		log.Printf("[LLM] decision: function_call=%v content_len=%d", decision.FunctionCall != nil, len(decision.Content))
	}
	return decision, nil
}

// Complete runs a single bounded completion
func (c *Client) Complete(ctx context.Context, params domain.CompletionParams, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if params.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: params.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       params.Model,
		Messages:    messages,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapProviderError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrModelEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

// toChatMessages converts domain messages to the provider's wire type
func toChatMessages(messages []domain.ModelMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}

// wrapProviderError converts provider API errors into domain.ModelError so
// the delivery layer can surface the provider's status without importing the
// SDK
func wrapProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPStatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return &domain.ModelError{StatusCode: status, Message: apiErr.Message}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		status := reqErr.HTTPStatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return &domain.ModelError{StatusCode: status, Message: fmt.Sprintf("%v", reqErr.Err)}
	}

	return err
}
