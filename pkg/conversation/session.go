package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Session owns the history of one chat run. It is not safe for concurrent
// use; the chat loop is its only writer.
type Session struct {
	ID        string
	CreatedAt time.Time

	systemPrompt string
	window       WindowPolicy
	turns        []Turn
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSystemPrompt sets a system prompt that is sent ahead of the history on
// every request. It is not part of the history.
func WithSystemPrompt(prompt string) SessionOption {
	return func(s *Session) {
		s.systemPrompt = prompt
	}
}

// WithWindow sets the policy used to select turns for a request.
func WithWindow(w WindowPolicy) SessionOption {
	return func(s *Session) {
		if w != nil {
			s.window = w
		}
	}
}

// NewSession creates an empty session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		window:    Unbounded{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Append adds a turn to the end of the history.
func (s *Session) Append(t Turn) error {
	if err := validateTurn(t); err != nil {
		return err
	}
	s.turns = append(s.turns, t)
	return nil
}

// Len returns the number of turns in the history.
func (s *Session) Len() int {
	return len(s.turns)
}

// Turns returns a copy of the history in insertion order.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Reset drops the history and keeps the session settings.
func (s *Session) Reset() {
	s.turns = nil
}

// Request builds the payload for the next completion call from the current
// history.
func (s *Session) Request() Request {
	return BuildRequest(s.systemPrompt, s.turns, s.window)
}
