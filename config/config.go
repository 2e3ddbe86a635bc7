package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Search  SearchConfig
	AI      AIConfig
	UI      UIConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds remote catalog configuration
type CatalogConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// SearchConfig holds product matching configuration
type SearchConfig struct {
	ResultLimit        int                 `mapstructure:"result_limit"`
	Synonyms           map[string][]string `mapstructure:"synonyms"`
	EnableDebugLogging bool                `mapstructure:"enable_debug_logging"`
}

// AIConfig holds LLM provider configuration
type AIConfig struct {
	APIKey            string                  `mapstructure:"api_key"`
	BaseURL           string                  `mapstructure:"base_url"`
	Model             string                  `mapstructure:"model"`
	SystemPrompt      string                  `mapstructure:"system_prompt"`
	Explanation       ExplanationConfig       `mapstructure:"explanation"`
	KeywordExtraction KeywordExtractionConfig `mapstructure:"keyword_extraction"`
}

// ExplanationConfig holds the settings for the secondary explanation completion
type ExplanationConfig struct {
	Model          string  `mapstructure:"model"`
	SystemPrompt   string  `mapstructure:"system_prompt"`
	PromptTemplate string  `mapstructure:"prompt_template"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
}

// KeywordExtractionConfig holds the optional query keyword-extraction settings
type KeywordExtractionConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
	Prompt  string `mapstructure:"prompt"`
}

// UIConfig holds the user-facing fallback messages consumed by the backend
type UIConfig struct {
	NotFoundMessage   string `mapstructure:"not_found_message"`
	NoRelevantMessage string `mapstructure:"no_relevant_message"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/natmag-chat/")

	// Environment variable settings
	v.SetEnvPrefix("NATMAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://natmag.ro/wp-json/custom/v1/products")
	v.SetDefault("catalog.fetch_timeout", "10s")

	// Search defaults
	v.SetDefault("search.result_limit", 5)
	v.SetDefault("search.enable_debug_logging", false)

	// AI defaults. The api_key and base_url defaults are empty but must be
	// registered so AutomaticEnv picks them up during Unmarshal.
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.model", "gpt-3.5-turbo")
	v.SetDefault("ai.system_prompt",
		"You are a strict product assistant. For ANY user message that mentions a product, "+
			"a brand, or a category, you MUST use the function getProducts. DO NOT reply with "+
			"product lists yourself. You are not allowed to make assumptions or generate JSON "+
			"unless returned by getProducts. Your only job is to call getProducts and return "+
			"the raw array it provides. Always answer in Romanian.")
	v.SetDefault("ai.explanation.model", "gpt-4o")
	v.SetDefault("ai.explanation.system_prompt", "You are a helpful shopping assistant.")
	v.SetDefault("ai.explanation.prompt_template",
		"Un client a cautat \"{query}\" si am gasit aceste produse:\n{products}\n"+
			"Explica pe scurt, in romana, de ce aceste produse sunt potrivite pentru cautarea lui.")
	v.SetDefault("ai.explanation.max_tokens", 120)
	v.SetDefault("ai.explanation.temperature", 0.8)
	v.SetDefault("ai.keyword_extraction.enabled", false)
	v.SetDefault("ai.keyword_extraction.model", "gpt-4o")
	v.SetDefault("ai.keyword_extraction.prompt",
		"Extrage doar cuvintele cheie relevante pentru cautarea unui produs, din intrebarea "+
			"de mai jos. Ignora cuvintele generale. Raspunde doar cu lista JSON, fara alte "+
			"explicatii. Exemplu: 'ceva de folosire pentru probleme menstruale' => [\"menstruale\"]")

	// UI the backend consumes directly
	v.SetDefault("ui.not_found_message", "Nu am găsit acest produs.")
	v.SetDefault("ui.no_relevant_message", "Îmi pare rău, nu am găsit produse relevante.")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.AI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is required (set NATMAG_AI_API_KEY)")
	}

	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required")
	}

	if config.Catalog.FetchTimeout <= 0 {
		return fmt.Errorf("catalog fetch timeout must be positive, got: %s", config.Catalog.FetchTimeout)
	}

	if config.Search.ResultLimit <= 0 {
		return fmt.Errorf("search result limit must be positive, got: %d", config.Search.ResultLimit)
	}

	return nil
}
