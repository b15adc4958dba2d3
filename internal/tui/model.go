// Package tui is the terminal front end of the T6 post generator.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Yates-Labs/t6post/internal/generation"
	"github.com/Yates-Labs/t6post/internal/prompt"
)

// generatedMsg reports the end of a Generate call.
type generatedMsg struct {
	err error
}

// Model is the bubbletea model wrapping one generation controller.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	ctrl   *generation.Controller

	input   textinput.Model
	spinner spinner.Model

	// pending is set from the keypress until generatedMsg arrives.
	pending  bool
	width    int
	notice   string
	rendered string
	quitting bool
}

// New creates a model driving ctrl. The controller's topic seeds the input.
func New(ctx context.Context, ctrl *generation.Controller) Model {
	ctx, cancel := context.WithCancel(ctx)

	ti := textinput.New()
	ti.Placeholder = "e.g., artificial intelligence, climate change, human consciousness..."
	ti.CharLimit = 200
	ti.Width = 60
	ti.SetValue(ctrl.State().Topic)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentColor)

	m := Model{
		ctx:     ctx,
		cancel:  cancel,
		ctrl:    ctrl,
		input:   ti,
		spinner: s,
		width:   defaultWidth,
	}
	m.renderResult()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) busy() bool {
	return m.pending || m.ctrl.State().InFlight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(20, msg.Width-6)
		m.renderResult()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case generatedMsg:
		// A rejected call still ends this keypress; the controller's
		// InFlight flag keeps the model busy for the running one.
		m.pending = false
		m.renderResult()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case "enter":
		if m.busy() {
			return m, nil
		}
		m.pending = true
		m.notice = ""
		return m, tea.Batch(m.generate(m.input.Value()), m.spinner.Tick)

	case "ctrl+y":
		if err := m.ctrl.CopyResult(); err != nil {
			m.notice = "Copy failed: " + err.Error()
		} else {
			m.notice = "Copied to clipboard!"
		}
		return m, nil

	case "ctrl+l":
		m.ctrl.ClearResult()
		m.notice = ""
		m.renderResult()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetTopic(m.input.Value())
	return m, cmd
}

func (m Model) generate(topic string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		_, err := ctrl.Generate(ctx, topic)
		return generatedMsg{err: err}
	}
}

// renderResult caches the glamour rendering of the current result.
func (m *Model) renderResult() {
	result := m.ctrl.State().Result
	if result == "" {
		m.rendered = ""
		return
	}
	out, err := RenderMarkdown(result, m.width-4)
	if err != nil {
		m.rendered = result
		return
	}
	m.rendered = strings.TrimRight(out, "\n")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	state := m.ctrl.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("T6 Framework Post Generator"))
	b.WriteString("\n")
	b.WriteString(leadStyle.Width(max(20, m.width-2)).Render(
		"Generate X posts that flow through curiosity, analogy, insight, truth, groundbreaking ideas, " +
			"and paradigm shifts, building on data as stepping stones to transformation."))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Enter Your Topic"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.busy() {
		b.WriteString(m.spinner.View() + " " + buttonStyle.Render("Generating T6 Post..."))
	} else {
		b.WriteString(buttonStyle.Render("[enter] Generate T6 Post"))
	}
	b.WriteString("\n")

	if state.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(state.ErrorMessage))
		b.WriteString("\n")
	}

	if m.rendered != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Your T6 Post"))
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(m.rendered))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderTiers())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter generate • ctrl+y copy • ctrl+l clear • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func renderTiers() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("The T6 Framework Journey"))
	b.WriteString("\n")
	for _, t := range prompt.Tiers() {
		b.WriteString(tierNameStyle.Render(t.Label()))
		b.WriteString(" ")
		b.WriteString(tierSummaryStyle.Render(t.Summary))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the interactive program and blocks until the user quits.
func Run(ctx context.Context, ctrl *generation.Controller) error {
	_, err := tea.NewProgram(New(ctx, ctrl), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
