package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/natmag/chat-backend/internal/domain"
)

// FunctionGetProducts is the single function exposed to the model
const FunctionGetProducts = "getProducts"

// digestLimit caps how many results feed the explanation prompt
const digestLimit = 5

// turnState models one request/response exchange. A turn starts awaiting the
// model's decision and transitions through exactly one branch to a reply.
type turnState int

const (
	stateAwaitingModelDecision turnState = iota
	stateFunctionCall
	stateHallucinationGuard
	statePlainText
	stateReplyReady
)

// ChatServiceConfig holds configuration for the turn orchestrator
type ChatServiceConfig struct {
	SystemPrompt       string
	ExplanationModel   string
	ExplanationSystem  string
	ExplanationPrompt  string // template with {query} and {products} placeholders
	ExplanationTokens  int
	ExplanationTemp    float64
	KeywordExtraction  KeywordExtractionConfig
	NotFoundMessage    string
	NoRelevantMessage  string
	EnableDebugLogging bool
}

// KeywordExtractionConfig enables an optional model pass that reduces the
// search query to its relevant keywords before matching
type KeywordExtractionConfig struct {
	Enabled bool
	Model   string
	Prompt  string
}

// ChatService orchestrates one chat turn: it forwards the conversation to
// the model, classifies the model's decision, and executes the matching
// downstream action (product search, explanation, or name-linking).
type ChatService struct {
	model  domain.ChatModel
	search *SearchService
	config ChatServiceConfig
}

// NewChatService creates a new turn orchestrator with its dependencies
func NewChatService(model domain.ChatModel, search *SearchService, config ChatServiceConfig) *ChatService {
	return &ChatService{
		model:  model,
		search: search,
		config: config,
	}
}

// productQueryArgs is the argument object of the getProducts function call
type productQueryArgs struct {
	Query string `json:"query"`
}

// HandleTurn runs the state machine for one exchange. Model failures are
// not retried; they abort the turn and propagate to the caller.
func (s *ChatService) HandleTurn(ctx context.Context, messages []domain.ConversationMessage) (*domain.ChatReply, error) {
	if messages == nil {
		return nil, domain.ErrInvalidRequest
	}

	convo := make([]domain.ModelMessage, 0, len(messages)+1)
	convo = append(convo, domain.ModelMessage{Role: domain.RoleSystem, Content: s.config.SystemPrompt})
	for _, m := range messages {
		convo = append(convo, domain.ModelMessage{Role: m.Role, Content: m.Content})
	}

	decision, err := s.model.DecideTurn(ctx, convo)
	if err != nil {
		return nil, err
	}

	switch classifyDecision(decision) {
	case stateHallucinationGuard:
		log.Printf("[CHAT] hallucination guard: model produced a JSON array without a function call")
		return s.assistantReply(s.config.NoRelevantMessage, false, ""), nil
	case stateFunctionCall:
		return s.runProductSearch(ctx, decision.FunctionCall, messages)
	default:
		return s.renderPlainText(ctx, decision.Content), nil
	}
}

// classifyDecision maps a model decision onto the turn's next state
func classifyDecision(d *domain.ModelDecision) turnState {
	if d.FunctionCall != nil {
		if d.FunctionCall.Name == FunctionGetProducts {
			return stateFunctionCall
		}
		// Unknown function names fall through to the plain-text branch
		return statePlainText
	}
	if looksLikeProductJSON(d.Content) {
		return stateHallucinationGuard
	}
	return statePlainText
}

// looksLikeProductJSON is the hallucination-guard predicate: content that is
// syntactically a JSON array means the model hand-authored a product list it
// was instructed to never produce.
func looksLikeProductJSON(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")
}

// runProductSearch executes the getProducts branch: search the catalog and,
// when products are found, ask a second model for a short explanation.
func (s *ChatService) runProductSearch(ctx context.Context, call *domain.FunctionCall, messages []domain.ConversationMessage) (*domain.ChatReply, error) {
	var args productQueryArgs
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFunctionArgs, err)
	}

	query := args.Query
	if s.config.KeywordExtraction.Enabled {
		query = s.extractKeywords(ctx, query)
	}

	result := s.search.Search(ctx, query)
	if len(result.Products) == 0 {
		// isProducts stays true: the query had product intent even though
		// no product data follows
		return s.assistantReply(s.config.NotFoundMessage, true, ""), nil
	}

	userQuery := args.Query
	if userQuery == "" && len(messages) > 0 {
		userQuery = messages[len(messages)-1].Content
	}

	explanation, err := s.explainResults(ctx, userQuery, result.Products)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(result.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to encode products: %w", err)
	}

	return s.assistantReply(string(payload), true, explanation), nil
}

// explainResults runs the second, independent completion that turns the
// result digest into a short natural-language explanation
func (s *ChatService) explainResults(ctx context.Context, query string, products []domain.FormattedProduct) (string, error) {
	prompt := strings.NewReplacer(
		"{query}", query,
		"{products}", productDigest(products),
	).Replace(s.config.ExplanationPrompt)

	if s.config.EnableDebugLogging {
		log.Printf("[CHAT] explanation prompt: %q", prompt)
	}

	explanation, err := s.model.Complete(ctx, domain.CompletionParams{
		Model:       s.config.ExplanationModel,
		System:      s.config.ExplanationSystem,
		MaxTokens:   s.config.ExplanationTokens,
		Temperature: float32(s.config.ExplanationTemp),
	}, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(explanation), nil
}

// productDigest builds the numbered plain-text listing fed to the
// explanation prompt
func productDigest(products []domain.FormattedProduct) string {
	if len(products) > digestLimit {
		products = products[:digestLimit]
	}

	lines := make([]string, 0, len(products))
	for i, p := range products {
		line := fmt.Sprintf("%d. %s", i+1, p.Name)
		if p.Description != "" {
			line += " - " + p.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderPlainText post-processes a free-text reply: auto-link catalog
// product names, then convert leftover markdown links to anchors
func (s *ChatService) renderPlainText(ctx context.Context, content string) *domain.ChatReply {
	text := strings.TrimSpace(content)
	text = LinkifyProductNames(text, s.search.AllFormatted(ctx))
	text = ConvertMarkdownLinks(text)
	return s.assistantReply(text, false, "")
}

// extractKeywords asks the configured model to reduce the query to its
// relevant keywords. Any failure falls back to the raw query.
func (s *ChatService) extractKeywords(ctx context.Context, query string) string {
	out, err := s.model.Complete(ctx, domain.CompletionParams{
		Model:  s.config.KeywordExtraction.Model,
		System: "",
	}, s.config.KeywordExtraction.Prompt+"\n\n"+query)
	if err != nil {
		log.Printf("[CHAT] keyword extraction failed, using raw query: %v", err)
		return query
	}

	var keywords []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &keywords); err != nil || len(keywords) == 0 {
		log.Printf("[CHAT] keyword extraction returned no usable list, using raw query")
		return query
	}

	if s.config.EnableDebugLogging {
		log.Printf("[CHAT] extracted keywords: %v", keywords)
	}
	return strings.Join(keywords, " ")
}

func (s *ChatService) assistantReply(content string, isProducts bool, explanation string) *domain.ChatReply {
	return &domain.ChatReply{
		Message: domain.ReplyMessage{
			Role:    domain.RoleAssistant,
			Content: content,
		},
		IsProducts:  isProducts,
		Explanation: explanation,
	}
}
