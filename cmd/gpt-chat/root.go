package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhyannv/gpt-chat-go/pkg/chat"
	configpkg "github.com/minhyannv/gpt-chat-go/pkg/config"
	"github.com/minhyannv/gpt-chat-go/pkg/conversation"
	"github.com/minhyannv/gpt-chat-go/pkg/llm"
	loggerpkg "github.com/minhyannv/gpt-chat-go/pkg/logger"
)

// cliFlags mirrors the command-line flags before they are merged into the
// configuration.
type cliFlags struct {
	configPath string
	provider   string
	model      string
	baseURL    string
	system     string
	opening    string
	noOpening  bool
	maxHistory int
	onFailure  string
	timeout    time.Duration
	maxTokens  int64
	markdown   bool
	verbose    bool
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:           "gpt-chat",
		Short:         "Chat with a language model from the terminal",
		Long:          "gpt-chat sends every line you type, together with the conversation so far, to a chat completion service and prints the reply.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			appLogger := loggerpkg.NewZapLogger(errOut, cfg.Verbose)
			defer loggerpkg.Sync(appLogger)

			loop, err := newLoop(cfg, appLogger, out)
			if err != nil {
				return err
			}
			err = loop.Run(cmd.Context(), in, out)
			if errors.Is(err, chat.ErrFailed) {
				// The failure line has already been printed.
				loggerpkg.Debug(cfg.Verbose, appLogger, "session ended", map[string]any{
					"error": err.Error(),
				})
				return errSilentExit
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "Path to a YAML or TOML config file")
	f.StringVar(&flags.provider, "provider", "", "Completion provider: openai or anthropic")
	f.StringVar(&flags.model, "model", "", "Model identifier (default gpt-3.5-turbo for openai)")
	f.StringVar(&flags.baseURL, "base-url", "", "Override the provider API base URL")
	f.StringVar(&flags.system, "system", "", "System prompt sent ahead of the conversation")
	f.StringVar(&flags.opening, "opening", configpkg.DefaultOpeningTurn, "Opening user turn sent at startup")
	f.BoolVar(&flags.noOpening, "no-opening", false, "Do not send an opening turn")
	f.IntVar(&flags.maxHistory, "max-history", 0, "Resend at most this many recent turns (0 = all)")
	f.StringVar(&flags.onFailure, "on-failure", configpkg.FailureExit, "After a failed completion: exit or reprompt")
	f.DurationVar(&flags.timeout, "timeout", 0, "Per-request timeout (0 = wait indefinitely)")
	f.Int64Var(&flags.maxTokens, "max-tokens", 0, "Cap on reply tokens (0 = provider default)")
	f.BoolVar(&flags.markdown, "markdown", false, "Render replies as markdown")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose logging to stderr")

	return cmd
}

// errSilentExit makes main exit non-zero without printing anything further.
var errSilentExit = silentError{}

type silentError struct{}

func (silentError) Error() string { return "" }

// loadConfig merges defaults, the config file, the environment and flags, in
// that order of precedence.
func loadConfig(cmd *cobra.Command, flags cliFlags) (configpkg.Config, error) {
	cfg, err := configpkg.LoadFile(configpkg.DefaultConfig(), flags.configPath)
	if err != nil {
		return cfg, err
	}

	changed := cmd.Flags().Changed
	// The provider decides which credentials LoadEnv reads.
	if changed("provider") {
		cfg.Provider = flags.provider
	}
	cfg = configpkg.LoadEnv(cfg)
	if changed("provider") {
		cfg.Provider = flags.provider
	}

	if changed("model") {
		cfg.Model = flags.model
	}
	if changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if changed("system") {
		cfg.SystemPrompt = flags.system
	}
	if changed("opening") {
		cfg.OpeningTurn = flags.opening
	}
	if changed("no-opening") {
		cfg.DisableOpening = flags.noOpening
	}
	if changed("max-history") {
		cfg.MaxHistoryTurns = flags.maxHistory
	}
	if changed("on-failure") {
		cfg.FailurePolicy = flags.onFailure
	}
	if changed("timeout") {
		cfg.RequestTimeout = flags.timeout
	}
	if changed("max-tokens") {
		cfg.MaxTokens = flags.maxTokens
	}
	if changed("markdown") {
		cfg.Markdown = flags.markdown
	}
	if changed("verbose") {
		cfg.Verbose = flags.verbose
	}

	cfg = configpkg.Normalize(cfg)
	if err := configpkg.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLoop builds the completion client and the chat loop from cfg.
func newLoop(cfg configpkg.Config, appLogger loggerpkg.Logger, out io.Writer) (*chat.Loop, error) {
	loggerpkg.Debug(cfg.Verbose, appLogger, "chat init", map[string]any{
		"provider":    cfg.Provider,
		"model":       cfg.Model,
		"base_url":    cfg.BaseURL,
		"max_history": cfg.MaxHistoryTurns,
		"on_failure":  cfg.FailurePolicy,
		"timeout":     cfg.RequestTimeout.String(),
		"max_tokens":  cfg.MaxTokens,
	})

	client, err := llm.NewFromConfig(llm.ProviderConfig{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.RequestTimeout,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	policy, err := chat.ParseFailurePolicy(cfg.FailurePolicy)
	if err != nil {
		return nil, err
	}

	opening := cfg.OpeningTurn
	if cfg.DisableOpening {
		opening = ""
	}

	session := conversation.NewSession(
		conversation.WithSystemPrompt(strings.TrimSpace(cfg.SystemPrompt)),
		conversation.WithWindow(conversation.NewWindow(cfg.MaxHistoryTurns)),
	)

	opts := []chat.Option{
		chat.WithSession(session),
		chat.WithFailurePolicy(policy),
		chat.WithOpeningTurn(opening),
		chat.WithLogger(appLogger, cfg.Verbose),
	}
	if cfg.Markdown {
		renderer, err := chat.NewMarkdownRenderer(chat.TerminalWidth(out))
		if err != nil {
			return nil, fmt.Errorf("markdown renderer: %w", err)
		}
		opts = append(opts, chat.WithRenderer(renderer))
	}
	return chat.New(client, opts...)
}
