package conversation

// Request is the provider-neutral payload of one completion call.
type Request struct {
	System string
	Turns  []Turn
}

// BuildRequest derives a request from a history. The result depends only on
// its arguments and shares no memory with turns.
func BuildRequest(system string, turns []Turn, window WindowPolicy) Request {
	if window == nil {
		window = Unbounded{}
	}
	selected := window.Window(turns)
	out := make([]Turn, len(selected))
	copy(out, selected)
	return Request{System: system, Turns: out}
}
