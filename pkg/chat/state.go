package chat

import (
	"fmt"
	"strings"

	"github.com/minhyannv/gpt-chat-go/pkg/llm"
)

// State is the position of a Loop in its turn cycle.
type State int

const (
	StateAwaitingInput State = iota
	StateAwaitingCompletion
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateAwaitingCompletion:
		return "awaiting_completion"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FailurePolicy decides what a completion failure does to the session.
type FailurePolicy string

const (
	// FailExit ends the session on any failure.
	FailExit FailurePolicy = "exit"
	// FailReprompt keeps the session open after transient failures.
	// Authentication and unclassified failures still end it.
	FailReprompt FailurePolicy = "reprompt"
)

// ParseFailurePolicy parses a policy name.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return FailExit, nil
	case FailExit, FailReprompt:
		return p, nil
	default:
		return "", fmt.Errorf("unknown failure policy: %q", s)
	}
}

// Fatal reports whether a failure of the given kind ends the session.
func (p FailurePolicy) Fatal(kind llm.ErrorKind) bool {
	if p != FailReprompt {
		return true
	}
	switch kind {
	case llm.KindRateLimit, llm.KindNetwork, llm.KindMalformedResponse:
		return false
	default:
		return true
	}
}

// GenericFailureMessage is printed for every failure under FailExit.
const GenericFailureMessage = "Rate limit reached"

// Message is the line shown to the user for a failed turn. FailExit always
// prints GenericFailureMessage; FailReprompt names the kind.
func (p FailurePolicy) Message(kind llm.ErrorKind) string {
	if p != FailReprompt {
		return GenericFailureMessage
	}
	switch kind {
	case llm.KindRateLimit:
		return GenericFailureMessage
	case llm.KindAuth:
		return "Authentication failed"
	case llm.KindNetwork:
		return "Completion service unreachable"
	case llm.KindMalformedResponse:
		return "Malformed completion response"
	default:
		return "Completion request failed"
	}
}
