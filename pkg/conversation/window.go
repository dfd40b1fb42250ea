package conversation

// WindowPolicy selects the turns of a history that are sent with a request.
// Implementations must not modify the input and must return turns in their
// original order.
type WindowPolicy interface {
	Window(turns []Turn) []Turn
}

// Unbounded resends the whole history on every request.
type Unbounded struct{}

func (Unbounded) Window(turns []Turn) []Turn {
	return turns
}

// LastN keeps the most recent N turns. A window never starts with an
// assistant turn, so it may hold fewer than N turns. N <= 0 disables the cap.
type LastN struct {
	N int
}

func (w LastN) Window(turns []Turn) []Turn {
	if w.N <= 0 || len(turns) <= w.N {
		return turns
	}
	out := turns[len(turns)-w.N:]
	for len(out) > 0 && out[0].Role == RoleAssistant {
		out = out[1:]
	}
	return out
}

// NewWindow maps a turn cap from configuration to a policy.
func NewWindow(maxTurns int) WindowPolicy {
	if maxTurns <= 0 {
		return Unbounded{}
	}
	return LastN{N: maxTurns}
}
