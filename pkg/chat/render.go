package chat

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Renderer turns an assistant reply into the text written to the console.
type Renderer interface {
	Render(content string) string
}

// PlainRenderer prints replies unchanged.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string) string {
	return content
}

// MarkdownRenderer renders replies as terminal markdown.
type MarkdownRenderer struct {
	r *glamour.TermRenderer
}

// NewMarkdownRenderer builds a renderer that wraps at width columns.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{r: r}, nil
}

// Render falls back to the raw content if rendering fails.
func (m *MarkdownRenderer) Render(content string) string {
	out, err := m.r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// TerminalWidth returns the column count of w, or 0 if w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// styles colours banner and failure lines when writing to a terminal.
type styles struct {
	enabled bool
	banner  lipgloss.Style
	failure lipgloss.Style
}

func stylesFor(w io.Writer) styles {
	return styles{
		enabled: TerminalWidth(w) > 0,
		banner:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (s styles) bannerText(text string) string {
	if !s.enabled {
		return text
	}
	return s.banner.Render(text)
}

func (s styles) failureText(text string) string {
	if !s.enabled {
		return text
	}
	return s.failure.Render(text)
}
