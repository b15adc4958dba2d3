package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newOpenAIServer(t *testing.T, status int, body string, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if gotBody != nil {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, gotBody)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func testOpenAIConfig(baseURL string) Config {
	return Config{
		Provider:  ProviderOpenAI,
		Model:     "gpt-4o",
		MaxTokens: 1000,
		APIKey:    "sk-test",
		BaseURL:   baseURL + "/v1/",
	}
}

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "T1: wonder"}}
  ]
}`

func TestOpenAILLM_Generate_Success(t *testing.T) {
	var body map[string]any
	srv := newOpenAIServer(t, http.StatusOK, completionBody, &body)
	defer srv.Close()

	o, err := NewOpenAILLM(testOpenAIConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := o.Generate(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "T1: wonder" {
		t.Errorf("unexpected text %q", text)
	}

	if body["model"] != "gpt-4o" {
		t.Errorf("unexpected model %v", body["model"])
	}
	if body["max_tokens"] != float64(1000) {
		t.Errorf("unexpected max_tokens %v", body["max_tokens"])
	}
}

func TestOpenAILLM_Generate_EmptyChoices(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o","choices":[]}`, nil)
	defer srv.Close()

	o, _ := NewOpenAILLM(testOpenAIConfig(srv.URL))
	_, err := o.Generate(context.Background(), "p")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestOpenAILLM_Generate_APIError(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusBadRequest, `{"error":{"message":"bad request","type":"invalid_request_error"}}`, nil)
	defer srv.Close()

	o, _ := NewOpenAILLM(testOpenAIConfig(srv.URL))
	_, err := o.Generate(context.Background(), "p")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestOpenAILLM_Generate_ConnectionRefused(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusOK, completionBody, nil)
	url := srv.URL
	srv.Close()

	o, _ := NewOpenAILLM(testOpenAIConfig(url))
	_, err := o.Generate(context.Background(), "p")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestNewOpenAILLM_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	config := testOpenAIConfig("http://localhost")
	config.APIKey = ""
	_, err := NewOpenAILLM(config)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewOpenAILLM_KeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	config := testOpenAIConfig("http://localhost")
	config.APIKey = ""
	if _, err := NewOpenAILLM(config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
