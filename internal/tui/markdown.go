package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

// RenderMarkdown renders text for a terminal of the given width.
func RenderMarkdown(input string, width int) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if width <= 0 {
		width = defaultWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle("dark"),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(input)
}
