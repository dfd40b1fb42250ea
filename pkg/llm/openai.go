package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/minhyannv/gpt-chat-go/pkg/conversation"
)

// OpenAIClient wraps the OpenAI chat completions API.
type OpenAIClient struct {
	client    openai.Client
	model     string
	maxTokens int64
}

// NewOpenAIClient builds a client from cfg. SDK retries are disabled; a
// failed call is reported to the caller as is.
func NewOpenAIClient(cfg ProviderConfig) *OpenAIClient {
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
	return &OpenAIClient{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete sends req and returns the first choice's message.
func (c *OpenAIClient) Complete(ctx context.Context, req conversation.Request) (conversation.Turn, error) {
	completion, err := c.client.Chat.Completions.New(ctx, c.newChatParams(req))
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return conversation.Turn{}, statusError(apiErr.StatusCode, err)
		}
		return conversation.Turn{}, transportError(err)
	}
	if len(completion.Choices) == 0 {
		return conversation.Turn{}, malformed("empty completion choices")
	}

	message := completion.Choices[0].Message
	if !message.JSON.Content.Valid() {
		if message.Refusal != "" {
			return conversation.AssistantTurn(message.Refusal), nil
		}
		return conversation.Turn{}, malformed("completion choice has no content")
	}
	return conversation.AssistantTurn(message.Content), nil
}

func (c *OpenAIClient) newChatParams(req conversation.Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: toOpenAIMessages(req),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(c.maxTokens)
	}
	return params
}

func toOpenAIMessages(req conversation.Request) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	if req.System != "" {
		out = append(out, openai.SystemMessage(req.System))
	}
	for _, turn := range req.Turns {
		switch turn.Role {
		case conversation.RoleAssistant:
			out = append(out, openai.AssistantMessage(turn.Content))
		case conversation.RoleSystem:
			out = append(out, openai.SystemMessage(turn.Content))
		default:
			out = append(out, openai.UserMessage(turn.Content))
		}
	}
	return out
}
