package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/natmag/chat-backend/config"
	httpDelivery "github.com/natmag/chat-backend/internal/delivery/http"
	"github.com/natmag/chat-backend/internal/infrastructure/catalog"
	"github.com/natmag/chat-backend/internal/infrastructure/llm"
	"github.com/natmag/chat-backend/internal/usecase"
)

func main() {
	// Load .env before config so local runs can keep the API key out of the shell
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Natmag Chat Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s (timeout: %s)", cfg.Catalog.BaseURL, cfg.Catalog.FetchTimeout)

	// Initialize infrastructure dependencies
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.FetchTimeout)
	llmClient := llm.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		llmClient.SetDebug(true)
		log.Printf("Client debug mode enabled")
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(catalogClient, usecase.SearchServiceConfig{
		ResultLimit:        cfg.Search.ResultLimit,
		Synonyms:           cfg.Search.Synonyms,
		EnableDebugLogging: cfg.Search.EnableDebugLogging,
	})

	chatService := usecase.NewChatService(llmClient, searchService, usecase.ChatServiceConfig{
		SystemPrompt:      cfg.AI.SystemPrompt,
		ExplanationModel:  cfg.AI.Explanation.Model,
		ExplanationSystem: cfg.AI.Explanation.SystemPrompt,
		ExplanationPrompt: cfg.AI.Explanation.PromptTemplate,
		ExplanationTokens: cfg.AI.Explanation.MaxTokens,
		ExplanationTemp:   cfg.AI.Explanation.Temperature,
		KeywordExtraction: usecase.KeywordExtractionConfig{
			Enabled: cfg.AI.KeywordExtraction.Enabled,
			Model:   cfg.AI.KeywordExtraction.Model,
			Prompt:  cfg.AI.KeywordExtraction.Prompt,
		},
		NotFoundMessage:    cfg.UI.NotFoundMessage,
		NoRelevantMessage:  cfg.UI.NoRelevantMessage,
		EnableDebugLogging: cfg.Search.EnableDebugLogging,
	})

	log.Printf("Search: limit=%d, synonyms=%d stems, debug=%v",
		cfg.Search.ResultLimit, len(cfg.Search.Synonyms), cfg.Search.EnableDebugLogging)
	log.Printf("AI: model=%s, explanation=%s, keyword_extraction=%v",
		cfg.AI.Model, cfg.AI.Explanation.Model, cfg.AI.KeywordExtraction.Enabled)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(chatService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
