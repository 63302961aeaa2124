package app_test

import (
	"context"
	"sync"
	"time"

	"reliance-drill-service/internal/app"
	"reliance-drill-service/internal/domain"
)

// manualClock fires timers only when the test calls Tick.
type manualClock struct {
	mu      sync.Mutex
	pending []*manualTimer
	stale   []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	f       func()
	stopped bool
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) app.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// Tick fires every timer that is due and not stopped.
func (c *manualClock) Tick() {
	c.mu.Lock()
	due := c.pending
	c.pending = nil
	var live []*manualTimer
	for _, t := range due {
		if t.stopped {
			c.stale = append(c.stale, t)
			continue
		}
		t.stopped = true
		live = append(live, t)
	}
	c.mu.Unlock()

	for _, t := range live {
		t.f()
	}
}

// Ticks fires n consecutive ticks.
func (c *manualClock) Ticks(n int) {
	for i := 0; i < n; i++ {
		c.Tick()
	}
}

// FireStale runs callbacks of timers that were stopped before firing, as a racing
// runtime timer could.
func (c *manualClock) FireStale() {
	c.mu.Lock()
	stale := c.stale
	for _, t := range c.pending {
		if t.stopped {
			stale = append(stale, t)
		}
	}
	c.stale = nil
	c.mu.Unlock()

	for _, t := range stale {
		t.f()
	}
}

type questionEvent struct {
	question domain.ParsedQuestion
	answer   domain.DisplayedAnswer
	seconds  int
}

type recordingPresenter struct {
	mu        sync.Mutex
	questions []questionEvent
	ticks     []int
	reports   []domain.Report
	loadErrs  []error
}

func (p *recordingPresenter) OnQuestionReady(q domain.ParsedQuestion, a domain.DisplayedAnswer, seconds int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.questions = append(p.questions, questionEvent{question: q, answer: a, seconds: seconds})
}

func (p *recordingPresenter) OnTick(remaining int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ticks = append(p.ticks, remaining)
}

func (p *recordingPresenter) OnFinished(report domain.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reports = append(p.reports, report)
}

func (p *recordingPresenter) OnLoadError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loadErrs = append(p.loadErrs, err)
}

func (p *recordingPresenter) lastAnswer() domain.DisplayedAnswer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.questions[len(p.questions)-1].answer
}

// sequenceCoin returns the given flips in order, then helpful forever.
func sequenceCoin(flips ...bool) app.Coin {
	var mu sync.Mutex
	return func() bool {
		mu.Lock()
		defer mu.Unlock()
		if len(flips) == 0 {
			return true
		}
		next := flips[0]
		flips = flips[1:]
		return next
	}
}

const (
	helpful = true
	harmful = false
)

func sampleBank() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{
			FullQuestion:       "Which gas do plants absorb? A. oxygen B. carbon dioxide C. nitrogen D. helium",
			HelpfulAnswer:      "B.",
			HelpfulExplanation: "carbon dioxide - plants use it for photosynthesis. it is fixed into sugars",
			HelpfulCorrect:     true,
			HarmfulAnswer:      "A",
			HarmfulExplanation: "oxygen - plants breathe it in",
			HarmfulCorrect:     false,
			CorrectAnswer:      "B",
		},
		{
			FullQuestion:       "What is 7 x 6? A. 42 B. 36 C. 48 D. 13",
			HelpfulAnswer:      "A",
			HelpfulExplanation: "42 - seven sixes are forty-two",
			HelpfulCorrect:     true,
			HarmfulAnswer:      "C",
			HarmfulExplanation: "48 - multiply and round up",
			HarmfulCorrect:     false,
			CorrectAnswer:      "A",
		},
		{
			FullQuestion:       "Which planet is largest? A. Mars B. Venus C. Jupiter D. Earth",
			HelpfulAnswer:      "C",
			HelpfulExplanation: "Jupiter - it is a gas giant",
			HelpfulCorrect:     true,
			HarmfulAnswer:      "D",
			HarmfulExplanation: "Earth - we live on the biggest one",
			HarmfulCorrect:     false,
			CorrectAnswer:      "C",
		},
	}
}

func staticBank(records []domain.QuestionRecord) app.BankSource {
	return app.BankSourceFunc(func(_ context.Context) ([]domain.QuestionRecord, error) {
		return records, nil
	})
}
