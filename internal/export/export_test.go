package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func testPost() Post {
	return Post{
		Topic:       "gravity",
		Text:        "T1: Why do things fall?\n\nT4: **9.81 m/s²** at sea level.",
		Provider:    "anthropic",
		Model:       "claude-sonnet-4-20250514",
		GeneratedAt: time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestWritePost_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePost(testPost(), "json", &buf); err != nil {
		t.Fatalf("WritePost failed: %v", err)
	}

	var got Post
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if got.Topic != "gravity" || got.Model != "claude-sonnet-4-20250514" {
		t.Errorf("unexpected post %+v", got)
	}
}

func TestWritePost_HTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePost(testPost(), "HTML", &buf); err != nil {
		t.Fatalf("WritePost failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<p>T1: Why do things fall?</p>") {
		t.Errorf("expected first paragraph, got %s", out)
	}
	if !strings.Contains(out, "<strong>9.81 m/s²</strong>") {
		t.Errorf("expected bold evidence, got %s", out)
	}
}

func TestWritePost_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePost(testPost(), "md", &buf); err != nil {
		t.Fatalf("WritePost failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "# gravity\n\nT1: Why do things fall?") {
		t.Errorf("unexpected markdown %q", buf.String())
	}
}

func TestWritePost_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePost(testPost(), "", &buf); err != nil {
		t.Fatalf("WritePost failed: %v", err)
	}
	if buf.String() != testPost().Text+"\n" {
		t.Errorf("unexpected text %q", buf.String())
	}
}

func TestWritePost_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WritePost(testPost(), "xml", &buf)
	if err == nil {
		t.Fatal("Expected error for unsupported format, got nil")
	}
	if !strings.Contains(err.Error(), "unsupported export format") {
		t.Errorf("Expected 'unsupported export format' error, got: %v", err)
	}
}

func TestRenderHTML_HardWraps(t *testing.T) {
	out, err := RenderHTML("line one\nline two")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<br>") {
		t.Errorf("expected single newlines to be preserved, got %s", out)
	}
}

func TestFormat_ContentType(t *testing.T) {
	tests := map[Format]string{
		FormatJSON:     "application/json",
		FormatHTML:     "text/html; charset=utf-8",
		FormatMarkdown: "text/markdown; charset=utf-8",
		FormatText:     "text/plain; charset=utf-8",
	}
	for f, want := range tests {
		if got := f.ContentType(); got != want {
			t.Errorf("%s: got %s, want %s", f, got, want)
		}
	}
}
