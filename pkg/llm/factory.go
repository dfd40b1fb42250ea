package llm

import (
	"fmt"
	"time"
)

// ProviderConfig holds what's needed to construct a completion client.
type ProviderConfig struct {
	Provider  string // "openai" or "anthropic"
	Model     string
	APIKey    string
	BaseURL   string
	Timeout   time.Duration // per request; zero waits indefinitely
	MaxTokens int64         // reply cap; zero keeps the provider default
}

// NewFromConfig creates the Client for the configured provider.
func NewFromConfig(cfg ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClient(cfg), nil

	case "anthropic":
		return NewAnthropicClient(cfg), nil

	case "":
		return nil, fmt.Errorf("no completion provider configured")

	default:
		return nil, fmt.Errorf("unknown completion provider: %q", cfg.Provider)
	}
}
