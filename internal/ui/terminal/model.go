package terminal

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reliance-drill-service/internal/domain"
)

// Options configures the terminal UI model.
type Options struct {
	NoColor bool
}

type screen int

const (
	screenIntro screen = iota
	screenQuestion
	screenFinished
	screenFailed
)

// Model renders a drill session with Bubble Tea.
type Model struct {
	ctx          context.Context
	session      Session
	events       <-chan Event
	keys         keyMap
	viewport     viewport.Model
	noColor      bool
	instructions string

	screen    screen
	starting  bool
	number    int
	question  domain.ParsedQuestion
	answer    domain.DisplayedAnswer
	remaining int
	report    domain.Report
	loadErr   error
	status    string
	width     int
}

// NewModel constructs a model that reads session events from events.
func NewModel(ctx context.Context, session Session, events <-chan Event, instructions string, opts Options) Model {
	vp := viewport.New(80, 20)
	return Model{
		ctx:          ctx,
		session:      session,
		events:       events,
		keys:         defaultKeyMap(),
		viewport:     vp,
		noColor:      opts.NoColor,
		instructions: instructions,
		screen:       screenIntro,
		width:        80,
	}
}

// Init waits for the first session event.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles key presses, session events and the results of session calls.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.viewport.Width = typed.Width
		m.viewport.Height = max(typed.Height-2, 1)
		if m.screen == screenFinished {
			m.viewport.SetContent(RenderReport(m.report, m.width, m.noColor))
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case EventMsg:
		m = applyEvent(m, typed.Event)
		return m, waitForEvent(m.events)
	case actionResultMsg:
		m.starting = false
		// Load failures arrive as an EventLoadError.
		if typed.err != nil && !errors.Is(typed.err, domain.ErrBankLoad) {
			m.status = typed.err.Error()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	switch m.screen {
	case screenIntro:
		if key.Matches(msg, m.keys.Start) && !m.starting {
			m.starting = true
			return m, startCmd(m.ctx, m.session)
		}
	case screenQuestion:
		switch {
		case key.Matches(msg, m.keys.Trust):
			return m, verdictCmd(m.session, domain.VerdictTrust)
		case key.Matches(msg, m.keys.Distrust):
			return m, verdictCmd(m.session, domain.VerdictDoNotTrust)
		}
	case screenFinished:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	switch m.screen {
	case screenQuestion:
		return lipgloss.JoinVertical(lipgloss.Left,
			renderQuestion(m.number, m.question, m.answer, m.remaining, m.width, m.noColor),
			m.renderStatus(),
			renderHelp(helpLine(m.keys.Trust, m.keys.Distrust, m.keys.Quit), m.noColor),
		)
	case screenFinished:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			renderHelp("up/down scroll | "+helpLine(m.keys.Quit), m.noColor),
		)
	case screenFailed:
		return lipgloss.JoinVertical(lipgloss.Left,
			renderTitle("The question bank could not be loaded", m.noColor),
			m.loadErr.Error(),
			"",
			renderHelp(helpLine(m.keys.Quit), m.noColor),
		)
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			renderTitle("Instructions", m.noColor),
			wrap(m.instructions, m.width),
			"",
			m.renderStatus(),
			renderHelp(helpLine(m.keys.Start, m.keys.Quit), m.noColor),
		)
	}
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	return stylize(m.status, m.noColor, lipgloss.Color("160"))
}

// EventMsg wraps a session event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// actionResultMsg carries the error returned by a session call.
type actionResultMsg struct {
	err error
}

// waitForEvent blocks until a session event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

// Session calls run as commands so presenter callbacks never wait on the UI loop.
func startCmd(ctx context.Context, session Session) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{err: session.Start(ctx)}
	}
}

func verdictCmd(session Session, verdict domain.Verdict) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{err: session.SubmitVerdict(verdict)}
	}
}

// applyEvent updates the model from a session event.
func applyEvent(m Model, event Event) Model {
	switch event.Kind {
	case EventQuestion:
		m.screen = screenQuestion
		m.number++
		m.question = event.Question
		m.answer = event.Answer
		m.remaining = event.Seconds
		m.status = ""
	case EventTick:
		m.remaining = event.Remaining
	case EventFinished:
		m.screen = screenFinished
		m.report = event.Report
		m.status = ""
		m.viewport.SetContent(RenderReport(event.Report, m.width, m.noColor))
		m.viewport.GotoTop()
	case EventLoadError:
		m.screen = screenFailed
		m.loadErr = event.Err
	}
	return m
}
