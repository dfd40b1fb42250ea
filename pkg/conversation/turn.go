// Package conversation holds the in-memory dialogue state of a chat session:
// the turns exchanged so far and the policy that decides which of them are
// resent to the completion service.
package conversation

import "fmt"

// Role is the speaker of a turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the dialogue. Turns are values; a Turn stored in a
// Session is never modified.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn builds a user turn.
func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

// AssistantTurn builds an assistant turn.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

func validateTurn(t Turn) error {
	switch t.Role {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("invalid turn role: %q", t.Role)
	}
}
