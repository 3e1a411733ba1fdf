package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/invoice-advisor/internal/common"
	"github.com/Veraticus/invoice-advisor/internal/llm"
)

// llmConfig builds the assistant configuration from v. A missing API key is
// a ConfigurationError.
func llmConfig(v *viper.Viper) (llm.Config, error) {
	provider := strings.ToLower(v.GetString("llm.provider"))
	if provider == "" {
		provider = "openai"
	}

	cfg := llm.Config{
		Provider:    provider,
		Model:       v.GetString("llm.model"),
		BaseURL:     v.GetString("llm.base_url"),
		Temperature: v.GetFloat64("llm.temperature"),
		MaxTokens:   v.GetInt("llm.max_tokens"),
		MaxRetries:  v.GetInt("llm.max_retries"),
		RetryDelay:  v.GetDuration("llm.retry_delay"),
		CacheTTL:    v.GetDuration("llm.cache_ttl"),
		CacheSize:   v.GetInt("llm.cache_size"),
		RateLimit:   v.GetInt("llm.rate_limit"),
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 60 // requests per minute
	}

	var keyName, envName string
	switch provider {
	case "openai":
		keyName, envName = "llm.openai_api_key", "OPENAI_API_KEY"
	case "anthropic":
		keyName, envName = "llm.anthropic_api_key", "ANTHROPIC_API_KEY"
	default:
		return llm.Config{}, common.NewConfigurationError("llm.provider",
			fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, provider))
	}

	cfg.APIKey = v.GetString(keyName)
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(envName)
	}
	if cfg.APIKey == "" {
		return llm.Config{}, common.NewConfigurationError(keyName,
			fmt.Errorf("%w: set %s in the config file or the %s environment variable", common.ErrMissingConfig, keyName, envName))
	}

	return cfg, nil
}

// createAssistant builds the configured assistant.
func createAssistant(v *viper.Viper) (*llm.Assistant, error) {
	cfg, err := llmConfig(v)
	if err != nil {
		return nil, err
	}

	assistant, err := llm.NewAssistant(cfg, slog.Default())
	if err != nil {
		return nil, common.NewConfigurationError("llm", err)
	}
	return assistant, nil
}
