// Package export writes generated posts in shareable formats.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Format represents supported export formats
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatMarkdown, FormatJSON, FormatHTML}

// Post is a generated post with its provenance.
type Post struct {
	Topic       string    `json:"topic"`
	Text        string    `json:"text"`
	Provider    string    `json:"provider,omitempty"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ParseFormat normalizes a format name. "md" and "txt" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, "txt", "":
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: text, markdown, json, html)", name)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// WritePost writes post to writer in the named format.
func WritePost(post Post, format string, writer io.Writer) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(post)
	case FormatHTML:
		body, err := RenderHTML(post.Text)
		if err != nil {
			return err
		}
		_, err = io.WriteString(writer, body)
		return err
	case FormatMarkdown:
		_, err := fmt.Fprintf(writer, "# %s\n\n%s\n", post.Topic, strings.TrimSpace(post.Text))
		return err
	default:
		_, err := io.WriteString(writer, strings.TrimSpace(post.Text)+"\n")
		return err
	}
}

// RenderHTML converts post text (plain paragraphs or markdown) to an HTML fragment.
func RenderHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
