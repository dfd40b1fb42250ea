package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minhyannv/gpt-chat-go/pkg/llm"
	loggerpkg "github.com/minhyannv/gpt-chat-go/pkg/logger"
)

const welcomeLine = "Welcome ! Ask anything and get your answers using AI."

// Run drives the session from console input until the input ends, the user
// quits, or a completion failure ends the session. The opening turn, if any,
// is sent before the first line is read. Run returns an error wrapping
// ErrFailed in the last case.
func (l *Loop) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if in == nil {
		return errors.New("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	st := stylesFor(out)
	reader := bufio.NewReader(in)
	printWelcome(out, st)
	loggerpkg.Debug(l.verbose, l.logger, "chat start", map[string]any{
		"session_id": l.session.ID,
		"created_at": l.session.CreatedAt,
		"policy":     string(l.policy),
		"opening":    l.opening,
	})

	if l.opening != "" {
		l.exchange(ctx, l.opening, out, st)
	}

	var readErr error
	for l.state == StateAwaitingInput {
		_, _ = fmt.Fprint(out, "> ")
		line, ok, err := readLine(reader)
		if err != nil {
			readErr = err
			break
		}
		if !ok {
			break
		}

		if isCommand(line) {
			if quit := l.handleCommand(line, out); quit {
				break
			}
			continue
		}

		l.exchange(ctx, line, out, st)
	}

	if l.state == StateFailed {
		return fmt.Errorf("%w: %w", ErrFailed, l.lastErr)
	}
	l.state = StateClosed
	if readErr != nil {
		return fmt.Errorf("read input: %w", readErr)
	}
	return nil
}

// readLine returns the next line without its terminator. ok is false once the
// input is exhausted. Lines have no length limit.
func readLine(r *bufio.Reader) (line string, ok bool, err error) {
	line, err = r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if line == "" {
			return "", false, nil
		}
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, true, nil
}

// exchange runs one turn and prints its outcome.
func (l *Loop) exchange(ctx context.Context, text string, out io.Writer, st styles) {
	reply, err := l.RunTurn(ctx, text)
	if err != nil {
		_, _ = fmt.Fprintln(out, st.failureText(l.policy.Message(llm.KindOf(err))))
		return
	}
	_, _ = fmt.Fprintln(out, l.render.Render(reply.Content))
}

func printWelcome(out io.Writer, st styles) {
	_, _ = fmt.Fprintln(out, st.bannerText(welcomeLine))
	_, _ = fmt.Fprintln(out, "Type /help for commands.")
}

func commandName(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}

// isCommand reports whether line is exactly one of the slash commands. Any
// other text, including other lines starting with "/", is a user turn.
func isCommand(line string) bool {
	switch commandName(line) {
	case "/help", "/h", "/clear", "/c", "/history", "/quit", "/exit", "/q":
		return true
	}
	return false
}

// handleCommand processes slash commands. It reports whether the loop
// should stop.
func (l *Loop) handleCommand(line string, out io.Writer) bool {
	switch commandName(line) {
	case "/help", "/h":
		printHelp(out)
	case "/clear", "/c":
		l.Reset()
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
	case "/history":
		_, _ = fmt.Fprintf(out, "%d turn(s) in history.\n", l.session.Len())
	case "/quit", "/exit", "/q":
		_, _ = fmt.Fprintln(out, "Goodbye!")
		return true
	}
	return false
}

func printHelp(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Commands:")
	_, _ = fmt.Fprintln(out, "  /help    - Show this help message")
	_, _ = fmt.Fprintln(out, "  /clear   - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /history - Show the number of turns kept")
	_, _ = fmt.Fprintln(out, "  /quit    - Exit the program")
	_, _ = fmt.Fprintln(out, "  /exit    - Exit the program")
}
