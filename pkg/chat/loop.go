// Package chat runs the conversation loop: each user line is appended to the
// session, the session is sent to the completion service, and the reply is
// appended and printed.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/minhyannv/gpt-chat-go/pkg/conversation"
	"github.com/minhyannv/gpt-chat-go/pkg/llm"
	loggerpkg "github.com/minhyannv/gpt-chat-go/pkg/logger"
)

// ErrFailed is returned by Run when the session ended on a completion failure.
var ErrFailed = errors.New("chat session failed")

// ErrSessionOver is returned by RunTurn once the loop is failed or closed.
var ErrSessionOver = errors.New("chat session is over")

// Loop holds the state of one chat session.
type Loop struct {
	client  llm.Client
	session *conversation.Session
	policy  FailurePolicy
	opening string
	render  Renderer

	logger  loggerpkg.Logger
	verbose bool

	state   State
	lastErr error
}

// Option configures a Loop.
type Option func(*Loop)

// WithSession replaces the default empty session.
func WithSession(s *conversation.Session) Option {
	return func(l *Loop) {
		if s != nil {
			l.session = s
		}
	}
}

// WithFailurePolicy sets how completion failures are handled.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(l *Loop) {
		l.policy = p
	}
}

// WithOpeningTurn sets the user turn sent before any input is read. An empty
// text disables it.
func WithOpeningTurn(text string) Option {
	return func(l *Loop) {
		l.opening = text
	}
}

// WithRenderer sets how assistant replies are printed.
func WithRenderer(r Renderer) Option {
	return func(l *Loop) {
		if r != nil {
			l.render = r
		}
	}
}

// WithLogger injects a logger dependency.
func WithLogger(logger loggerpkg.Logger, verbose bool) Option {
	return func(l *Loop) {
		l.logger = logger
		l.verbose = verbose
	}
}

// New builds a loop around client. By default the session is empty and
// unbounded, the first failure ends it, and "Hello" is sent as the opening
// turn.
func New(client llm.Client, opts ...Option) (*Loop, error) {
	if client == nil {
		return nil, errors.New("completion client is required")
	}
	l := &Loop{
		client:  client,
		session: conversation.NewSession(),
		policy:  FailExit,
		opening: "Hello",
		render:  PlainRenderer{},
		logger:  loggerpkg.NopLogger{},
		state:   StateAwaitingInput,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// State returns the current state.
func (l *Loop) State() State {
	return l.state
}

// Session returns the session owned by the loop.
func (l *Loop) Session() *conversation.Session {
	return l.session
}

// Err returns the failure that ended the session, if any.
func (l *Loop) Err() error {
	return l.lastErr
}

// RunTurn appends text as a user turn, sends the whole session to the
// completion service and appends the reply. On failure the user turn stays in
// the history and no assistant turn is added.
func (l *Loop) RunTurn(ctx context.Context, text string) (conversation.Turn, error) {
	if l.state != StateAwaitingInput {
		return conversation.Turn{}, fmt.Errorf("%w (state %s)", ErrSessionOver, l.state)
	}
	if err := l.session.Append(conversation.UserTurn(text)); err != nil {
		return conversation.Turn{}, err
	}

	req := l.session.Request()
	l.state = StateAwaitingCompletion
	loggerpkg.Debug(l.verbose, l.logger, "completion request", map[string]any{
		"session_id":    l.session.ID,
		"history_turns": l.session.Len(),
		"request_turns": len(req.Turns),
	})

	reply, err := l.client.Complete(ctx, req)
	if err != nil {
		return conversation.Turn{}, l.fail(err)
	}
	if reply.Role != conversation.RoleAssistant {
		return conversation.Turn{}, l.fail(&llm.CompletionError{
			Kind: llm.KindMalformedResponse,
			Err:  fmt.Errorf("reply has role %q", reply.Role),
		})
	}
	if err := l.session.Append(reply); err != nil {
		return conversation.Turn{}, l.fail(err)
	}

	l.state = StateAwaitingInput
	loggerpkg.Debug(l.verbose, l.logger, "completion received", map[string]any{
		"session_id":    l.session.ID,
		"history_turns": l.session.Len(),
		"reply_bytes":   len(reply.Content),
	})
	return reply, nil
}

func (l *Loop) fail(err error) error {
	kind := llm.KindOf(err)
	if l.policy.Fatal(kind) {
		l.state = StateFailed
		l.lastErr = err
	} else {
		l.state = StateAwaitingInput
	}
	if l.verbose {
		loggerpkg.Warn(l.logger, "completion failed", map[string]any{
			"session_id": l.session.ID,
			"kind":       string(kind),
			"state":      l.state.String(),
			"error":      err.Error(),
		})
	}
	return err
}

// Reset clears the history. The loop state is unchanged.
func (l *Loop) Reset() {
	l.session.Reset()
}
