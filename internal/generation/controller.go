// Package generation owns the session state of a T6 post generator and the
// single operation that changes it: build the prompt, make one LLM call,
// record the outcome.
package generation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Yates-Labs/t6post/internal/llm"
	"github.com/Yates-Labs/t6post/internal/prompt"
)

var (
	ErrEmptyTopic = errors.New("topic is empty")
	ErrInFlight   = errors.New("generation already in progress")
	ErrNoResult   = errors.New("no result to copy")
)

// Clipboard receives copied results.
type Clipboard interface {
	Copy(text string) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithClipboard sets the clipboard used by CopyResult.
func WithClipboard(cb Clipboard) Option {
	return func(c *Controller) { c.clipboard = cb }
}

// OnChange registers a function called with every new state. It runs
// after the controller lock is released.
func OnChange(fn func(State)) Option {
	return func(c *Controller) { c.observers = append(c.observers, fn) }
}

// Controller drives generation for one session. It is safe for concurrent
// use; at most one generation runs at a time.
type Controller struct {
	llm       llm.LLM
	clipboard Clipboard
	logger    *slog.Logger
	observers []func(State)

	mu    sync.Mutex
	state State
}

// NewController creates a controller backed by model.
func NewController(model llm.LLM, opts ...Option) (*Controller, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: LLM is required", llm.ErrInvalidConfig)
	}
	c := &Controller{llm: model}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c, nil
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetTopic records user input without starting a generation.
func (c *Controller) SetTopic(topic string) {
	c.dispatch(TopicChanged{Topic: topic})
}

// Generate builds the T6 prompt for topic and makes one LLM call. The
// returned text equals State().Result on success. Failures are reported
// both as the returned error and as State().ErrorMessage.
func (c *Controller) Generate(ctx context.Context, topic string) (string, error) {
	c.mu.Lock()
	if c.state.InFlight {
		c.mu.Unlock()
		return "", ErrInFlight
	}
	s := Next(c.state, TopicChanged{Topic: topic})
	if strings.TrimSpace(topic) == "" {
		c.state = Next(s, Rejected{Message: MsgEmptyTopic})
		snapshot := c.state
		c.mu.Unlock()
		c.notify(snapshot)
		return "", ErrEmptyTopic
	}
	c.state = Next(s, Started{})
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)

	// Failed is the outcome unless the call returns normally.
	outcome := Event(Failed{Message: MsgConnectionFailure})
	defer func() {
		c.dispatch(outcome, Finished{})
	}()

	c.logger.Debug("generating post", "topic", topic)

	text, err := c.llm.Generate(ctx, prompt.Build(topic))
	if err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			c.logger.Warn("generation returned no content", "topic", topic, "error", err)
			outcome = Failed{Message: MsgGenerationFailed}
		} else {
			c.logger.Error("generation request failed", "topic", topic, "error", err)
		}
		return "", fmt.Errorf("generate %q: %w", topic, err)
	}

	outcome = Succeeded{Text: text}
	c.logger.Info("post generated", "topic", topic, "chars", len(text))
	return text, nil
}

// CopyResult writes the current result to the clipboard.
func (c *Controller) CopyResult() error {
	result := c.State().Result
	if result == "" {
		return ErrNoResult
	}
	if c.clipboard == nil {
		return errors.New("no clipboard configured")
	}
	if err := c.clipboard.Copy(result); err != nil {
		return fmt.Errorf("copy result: %w", err)
	}
	return nil
}

// ClearResult empties the result. Topic and error message are kept.
func (c *Controller) ClearResult() {
	c.dispatch(Cleared{})
}

func (c *Controller) dispatch(events ...Event) {
	c.mu.Lock()
	for _, e := range events {
		c.state = Next(c.state, e)
	}
	snapshot := c.state
	c.mu.Unlock()
	c.notify(snapshot)
}

func (c *Controller) notify(s State) {
	for _, fn := range c.observers {
		fn(s)
	}
}
