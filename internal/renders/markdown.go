package renders

import (
	"os"

	markdown "github.com/MichaelMure/go-term-markdown"
	"golang.org/x/term"
)

const defaultWidth = 100

// RenderMarkdown renders markdown for terminal display. When stdout is not a
// TTY the input is returned as-is so piped output stays plain markdown.
func RenderMarkdown(content string) string {
	if content == "" {
		return ""
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return content
	}

	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	return string(markdown.Render(content, width, 0))
}
