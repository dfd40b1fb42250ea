package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/minhyannv/gpt-chat-go/pkg/conversation"
)

const defaultAnthropicMaxTokens = 1024

// emptyTurnText stands in for blank turns, which the messages API rejects.
const emptyTurnText = "(empty message)"

// AnthropicClient wraps the Anthropic messages API.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

func NewAnthropicClient(cfg ProviderConfig) *AnthropicClient {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	c := anthropic.NewClient(opts...)
	return &AnthropicClient{
		client:    &c,
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, req conversation.Request) (conversation.Turn, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  toAnthropicMessages(req.Turns),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return conversation.Turn{}, statusError(apiErr.StatusCode, err)
		}
		return conversation.Turn{}, transportError(err)
	}

	var out strings.Builder
	found := false
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
			found = true
		}
	}
	if !found {
		return conversation.Turn{}, malformed("message has no text content")
	}
	return conversation.AssistantTurn(out.String()), nil
}

func toAnthropicMessages(turns []conversation.Turn) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, len(turns))
	for i, t := range turns {
		text := t.Content
		if strings.TrimSpace(text) == "" {
			text = emptyTurnText
		}
		if t.Role == conversation.RoleAssistant {
			out[i] = anthropic.NewAssistantMessage(anthropic.NewTextBlock(text))
		} else {
			out[i] = anthropic.NewUserMessage(anthropic.NewTextBlock(text))
		}
	}
	return out
}
