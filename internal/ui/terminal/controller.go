package terminal

import (
	"context"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"reliance-drill-service/internal/domain"
)

// Session is the part of a drill session the terminal UI drives.
type Session interface {
	Start(ctx context.Context) error
	SubmitVerdict(verdict domain.Verdict) error
}

// Controller implements app.Presenter by forwarding session callbacks to the UI event loop.
type Controller struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewController creates a controller whose events are consumed by Run.
func NewController() *Controller {
	return &Controller{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

// Run shows the instructions, drives session from key presses and blocks until the user
// quits. It must be given the session this controller was registered as presenter for.
func (c *Controller) Run(ctx context.Context, session Session, instructions string, stdout io.Writer, opts Options) error {
	if stdout == nil {
		stdout = os.Stdout
	}
	defer c.close()
	model := NewModel(ctx, session, c.events, instructions, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// OnQuestionReady forwards a presented question to the UI.
func (c *Controller) OnQuestionReady(q domain.ParsedQuestion, a domain.DisplayedAnswer, seconds int) {
	c.send(Event{Kind: EventQuestion, Question: q, Answer: a, Seconds: seconds})
}

// OnTick forwards the countdown to the UI.
func (c *Controller) OnTick(remaining int) {
	c.send(Event{Kind: EventTick, Remaining: remaining})
}

// OnFinished forwards the final report to the UI.
func (c *Controller) OnFinished(report domain.Report) {
	c.send(Event{Kind: EventFinished, Report: report})
}

// OnLoadError forwards a bank load failure to the UI.
func (c *Controller) OnLoadError(err error) {
	c.send(Event{Kind: EventLoadError, Err: err})
}

// send blocks until the UI accepts the event or has exited. Events must not be dropped
// since each one changes what the user is judging.
func (c *Controller) send(event Event) {
	select {
	case c.events <- event:
	case <-c.done:
	}
}

func (c *Controller) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
