package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Yates-Labs/t6post/internal/llm"
)

// funcLLM adapts a function to llm.LLM.
type funcLLM func(ctx context.Context, prompt string) (string, error)

func (f funcLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

// recorder collects every state a controller publishes.
type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) all() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, len(r.states))
	copy(out, r.states)
	return out
}

func newTestController(t *testing.T, model llm.LLM, opts ...Option) *Controller {
	t.Helper()
	c, err := NewController(model, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestController_Generate_EmptyTopic(t *testing.T) {
	topics := []string{"", " ", "\t", "\n  \t "}

	for _, topic := range topics {
		t.Run(fmt.Sprintf("%q", topic), func(t *testing.T) {
			mock := llm.NewMockLLM("unused")
			rec := &recorder{}
			c := newTestController(t, mock, OnChange(rec.record))

			_, err := c.Generate(context.Background(), topic)
			if !errors.Is(err, ErrEmptyTopic) {
				t.Fatalf("expected ErrEmptyTopic, got %v", err)
			}
			if mock.Calls() != 0 {
				t.Errorf("expected no request, got %d", mock.Calls())
			}

			state := c.State()
			if state.ErrorMessage != MsgEmptyTopic {
				t.Errorf("expected %q, got %q", MsgEmptyTopic, state.ErrorMessage)
			}
			for _, s := range rec.all() {
				if s.InFlight {
					t.Fatal("validation failure must never set InFlight")
				}
			}
		})
	}
}

func TestController_Generate_Success(t *testing.T) {
	var c *Controller
	var inFlightDuringCall bool
	model := funcLLM(func(ctx context.Context, p string) (string, error) {
		inFlightDuringCall = c.State().InFlight
		return "T1: ...", nil
	})
	c = newTestController(t, model)

	if c.State().InFlight {
		t.Fatal("InFlight should be false before Generate")
	}

	text, err := c.Generate(context.Background(), "gravity")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "T1: ..." {
		t.Errorf("unexpected text %q", text)
	}
	if !inFlightDuringCall {
		t.Error("InFlight should be true while the request is outstanding")
	}

	state := c.State()
	if state.Result != "T1: ..." {
		t.Errorf("expected result %q, got %q", "T1: ...", state.Result)
	}
	if state.ErrorMessage != "" {
		t.Errorf("expected no error, got %q", state.ErrorMessage)
	}
	if state.InFlight {
		t.Error("InFlight should be false after Generate")
	}
	if state.Topic != "gravity" {
		t.Errorf("expected topic to be recorded, got %q", state.Topic)
	}
}

func TestController_Generate_PromptContainsTopic(t *testing.T) {
	mock := llm.NewMockLLM("T1: ...")
	c := newTestController(t, mock)

	if _, err := c.Generate(context.Background(), "gravity"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.LastPrompt(), `Generate a post about "gravity"`) {
		t.Errorf("prompt missing topic: %q", mock.LastPrompt())
	}
	if mock.Calls() != 1 {
		t.Errorf("expected exactly one request, got %d", mock.Calls())
	}
}

func TestController_Generate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"malformed response", fmt.Errorf("%w: no content", llm.ErrMalformedResponse), MsgGenerationFailed},
		{"transport failure", fmt.Errorf("%w: connection refused", llm.ErrTransport), MsgConnectionFailure},
		{"unclassified error", errors.New("boom"), MsgConnectionFailure},
		{"cancelled", context.Canceled, MsgConnectionFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c *Controller
			var inFlightDuringCall bool
			model := funcLLM(func(ctx context.Context, p string) (string, error) {
				inFlightDuringCall = c.State().InFlight
				return "", tt.err
			})
			c = newTestController(t, model)

			_, err := c.Generate(context.Background(), "gravity")
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected wrapped %v, got %v", tt.err, err)
			}

			state := c.State()
			if state.ErrorMessage != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, state.ErrorMessage)
			}
			if state.Result != "" {
				t.Errorf("expected empty result, got %q", state.Result)
			}
			if !inFlightDuringCall {
				t.Error("InFlight should be true during the call")
			}
			if state.InFlight {
				t.Error("InFlight should be false after failure")
			}
		})
	}
}

func TestController_Generate_ClearsPreviousOutcome(t *testing.T) {
	responses := []struct {
		text string
		err  error
	}{
		{"first post", nil},
		{"", llm.ErrTransport},
		{"third post", nil},
	}
	call := 0
	model := funcLLM(func(ctx context.Context, p string) (string, error) {
		r := responses[call]
		call++
		return r.text, r.err
	})

	rec := &recorder{}
	c := newTestController(t, model, OnChange(rec.record))

	_, _ = c.Generate(context.Background(), "a")
	_, _ = c.Generate(context.Background(), "b")
	if c.State().Result != "" {
		t.Fatal("failed attempt must not keep the previous result")
	}
	_, _ = c.Generate(context.Background(), "c")

	// Every start state is clean.
	starts := 0
	for _, s := range rec.all() {
		if s.InFlight && s.Result == "" && s.ErrorMessage == "" {
			starts++
		}
	}
	if starts != 3 {
		t.Errorf("expected 3 clean start states, got %d", starts)
	}

	final := c.State()
	if final.Result != "third post" || final.ErrorMessage != "" {
		t.Errorf("unexpected final state %+v", final)
	}
}

func TestController_Generate_RejectsWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	model := funcLLM(func(ctx context.Context, p string) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return "done", nil
	})
	c := newTestController(t, model)

	done := make(chan error, 1)
	go func() {
		_, err := c.Generate(context.Background(), "first")
		done <- err
	}()
	<-started

	before := c.State()
	_, err := c.Generate(context.Background(), "second")
	if !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}
	if c.State() != before {
		t.Error("rejected call must not change state")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 request, got %d", calls)
	}
	if c.State().Topic != "first" {
		t.Errorf("expected topic %q, got %q", "first", c.State().Topic)
	}
}

func TestController_Generate_ConcurrentCallers(t *testing.T) {
	release := make(chan struct{})
	mock := funcLLM(func(ctx context.Context, p string) (string, error) {
		<-release
		return "ok", nil
	})
	c := newTestController(t, mock)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Generate(context.Background(), "topic")
			errs <- err
		}()
	}

	// Wait until one caller owns the flight, then let it finish.
	for !c.State().InFlight {
	}
	for i := 0; i < callers-1; i++ {
		if err := <-errs; !errors.Is(err, ErrInFlight) {
			t.Errorf("expected ErrInFlight, got %v", err)
		}
	}
	close(release)
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		t.Errorf("expected the winning caller to succeed, got %v", err)
	}
}

func TestController_Generate_PanicStillFinishes(t *testing.T) {
	model := funcLLM(func(ctx context.Context, p string) (string, error) {
		panic("provider exploded")
	})
	c := newTestController(t, model)

	func() {
		defer func() { _ = recover() }()
		_, _ = c.Generate(context.Background(), "topic")
	}()

	state := c.State()
	if state.InFlight {
		t.Fatal("InFlight must be reset even when the call panics")
	}
	if state.ErrorMessage != MsgConnectionFailure {
		t.Errorf("unexpected error message %q", state.ErrorMessage)
	}
}

func TestController_ClearResult(t *testing.T) {
	c := newTestController(t, llm.NewMockLLM("post"))
	if _, err := c.Generate(context.Background(), "gravity"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An error message from a later validation failure must survive Clear.
	_, _ = c.Generate(context.Background(), "   ")
	c.SetTopic("gravity")
	c.ClearResult()

	state := c.State()
	if state.Result != "" {
		t.Errorf("expected empty result, got %q", state.Result)
	}
	if state.Topic != "gravity" {
		t.Errorf("topic changed: %q", state.Topic)
	}
	if state.ErrorMessage != MsgEmptyTopic {
		t.Errorf("error message changed: %q", state.ErrorMessage)
	}
}

func TestController_CopyResult(t *testing.T) {
	cb := &fakeClipboard{}
	c := newTestController(t, llm.NewMockLLM("post body"), WithClipboard(cb))

	if err := c.CopyResult(); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}

	if _, err := c.Generate(context.Background(), "gravity"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.CopyResult(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cb.copied) != 1 || cb.copied[0] != "post body" {
		t.Errorf("unexpected clipboard contents %v", cb.copied)
	}
}

func TestController_CopyResult_ClipboardError(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no display")}
	c := newTestController(t, llm.NewMockLLM("post body"), WithClipboard(cb))
	_, _ = c.Generate(context.Background(), "gravity")

	if err := c.CopyResult(); err == nil || !strings.Contains(err.Error(), "no display") {
		t.Fatalf("expected clipboard error, got %v", err)
	}
}

func TestNewController_NilLLM(t *testing.T) {
	_, err := NewController(nil)
	if !errors.Is(err, llm.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
