package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	FailureExit     = "exit"
	FailureReprompt = "reprompt"

	DefaultModel          = "gpt-3.5-turbo"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultOpeningTurn    = "Hello"
)

// Config holds all runtime configuration for the chat client.
type Config struct {
	Provider string `yaml:"provider" toml:"provider"`
	APIKey   string `yaml:"-" toml:"-"`
	BaseURL  string `yaml:"base_url" toml:"base_url"`
	Model    string `yaml:"model" toml:"model"`

	SystemPrompt    string        `yaml:"system_prompt" toml:"system_prompt"`
	OpeningTurn     string        `yaml:"opening_turn" toml:"opening_turn"`
	DisableOpening  bool          `yaml:"disable_opening" toml:"disable_opening"`
	MaxHistoryTurns int           `yaml:"max_history_turns" toml:"max_history_turns"`
	FailurePolicy   string        `yaml:"on_failure" toml:"on_failure"`
	RequestTimeout  time.Duration `yaml:"request_timeout" toml:"request_timeout"`
	MaxTokens       int64         `yaml:"max_tokens" toml:"max_tokens"`

	Markdown bool `yaml:"markdown" toml:"markdown"`
	Verbose  bool `yaml:"verbose" toml:"verbose"`
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Provider:      ProviderOpenAI,
		OpeningTurn:   DefaultOpeningTurn,
		FailurePolicy: FailureExit,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.FailurePolicy = strings.ToLower(strings.TrimSpace(cfg.FailurePolicy))

	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
		if cfg.Provider == ProviderAnthropic {
			cfg.Model = DefaultAnthropicModel
		}
	}
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = FailureExit
	}
	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}
	return cfg
}

// Validate reports configuration that cannot start a session.
func Validate(cfg Config) error {
	switch cfg.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is not set (%s)", apiKeyEnv(cfg.Provider))
	}
	if cfg.Model == "" {
		return errors.New("model is not set")
	}
	switch cfg.FailurePolicy {
	case FailureExit, FailureReprompt:
	default:
		return fmt.Errorf("unknown failure policy: %q", cfg.FailurePolicy)
	}
	if cfg.MaxHistoryTurns < 0 {
		return fmt.Errorf("max history turns must not be negative, got %d", cfg.MaxHistoryTurns)
	}
	if cfg.MaxTokens < 0 {
		return fmt.Errorf("max tokens must not be negative, got %d", cfg.MaxTokens)
	}
	return nil
}

// LoadFile overlays values from a YAML or TOML file onto cfg. The format is
// picked by extension; anything other than .toml is parsed as YAML.
func LoadFile(cfg Config, path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads a .env file if one exists and overlays the environment onto
// cfg. Credentials are read from the variable matching cfg's provider.
func LoadEnv(cfg Config) Config {
	_ = godotenv.Load()

	if v := strings.TrimSpace(os.Getenv("GPTCHAT_PROVIDER")); v != "" {
		cfg.Provider = v
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.APIKey = strings.TrimSpace(os.Getenv(apiKeyEnv(provider)))

	if provider == ProviderOpenAI || provider == "" {
		if v := strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")); v != "" {
			cfg.BaseURL = v
		}
		if v := strings.TrimSpace(os.Getenv("OPENAI_MODEL")); v != "" {
			cfg.Model = v
		}
	}
	return cfg
}

func apiKeyEnv(provider string) string {
	if provider == ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}
