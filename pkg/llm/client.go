// Package llm provides a provider-agnostic interface to chat completion
// services.
package llm

import (
	"context"

	"github.com/minhyannv/gpt-chat-go/pkg/conversation"
)

// Client sends a conversation to a completion service and returns the
// assistant's reply. Failures are reported as *CompletionError.
// Implementations exist for OpenAI and Anthropic.
type Client interface {
	Complete(ctx context.Context, req conversation.Request) (conversation.Turn, error)
}
