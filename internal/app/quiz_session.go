package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"reliance-drill-service/internal/domain"
	"reliance-drill-service/internal/textnorm"
)

// DefaultCountdownSeconds is the per-question budget when none is configured.
const DefaultCountdownSeconds = 40

// Presenter receives display events from a QuizSession. Calls are made in order while the
// session lock is held, so implementations must not call back into the session synchronously.
type Presenter interface {
	OnQuestionReady(question domain.ParsedQuestion, answer domain.DisplayedAnswer, seconds int)
	OnTick(remaining int)
	OnFinished(report domain.Report)
	OnLoadError(err error)
}

// BankSource loads the question records a session runs through.
type BankSource interface {
	LoadBank(ctx context.Context) ([]domain.QuestionRecord, error)
}

// BankSourceFunc adapts a function to BankSource.
type BankSourceFunc func(ctx context.Context) ([]domain.QuestionRecord, error)

func (f BankSourceFunc) LoadBank(ctx context.Context) ([]domain.QuestionRecord, error) {
	return f(ctx)
}

// SessionOptions tunes a QuizSession. Zero values fall back to production defaults.
type SessionOptions struct {
	CountdownSeconds int
	TickInterval     time.Duration
	Clock            Clock
	Coin             Coin
	Logger           *slog.Logger
}

// QuizSession runs one user through a question bank.
type QuizSession struct {
	id        string
	bank      BankSource
	presenter Presenter
	assigner  *ConditionAssigner
	logger    *slog.Logger
	seconds   int

	mu        sync.Mutex
	countdown *countdown
	records   []domain.QuestionRecord
	state     domain.SessionState
	current   *activeQuestion
	report    *domain.Report
	loading   bool
	loadErr   error
	closed    bool
}

type activeQuestion struct {
	record domain.QuestionRecord
	parsed domain.ParsedQuestion
	answer domain.DisplayedAnswer
}

func NewQuizSession(id string, bank BankSource, presenter Presenter, opts SessionOptions) *QuizSession {
	seconds := opts.CountdownSeconds
	if seconds <= 0 {
		seconds = DefaultCountdownSeconds
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if presenter == nil {
		presenter = nopPresenter{}
	}
	return &QuizSession{
		id:        id,
		bank:      bank,
		presenter: presenter,
		assigner:  NewConditionAssigner(opts.Coin),
		logger:    logger.With("session", id),
		seconds:   seconds,
		countdown: newCountdown(opts.Clock, opts.TickInterval),
		state: domain.SessionState{
			Phase:     domain.PhaseNotStarted,
			Responses: []domain.ResponseRecord{},
		},
	}
}

// ID returns the session identifier.
func (s *QuizSession) ID() string {
	return s.id
}

// Start loads the bank and presents the first question. A load failure leaves the
// session in NotStarted for good.
func (s *QuizSession) Start(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return domain.ErrSessionClosed
	case s.loadErr != nil:
		err := s.loadErr
		s.mu.Unlock()
		return err
	case s.loading || s.state.Phase != domain.PhaseNotStarted:
		s.mu.Unlock()
		return domain.ErrAlreadyStarted
	}
	s.loading = true
	s.mu.Unlock()

	records, err := s.bank.LoadBank(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %w", domain.ErrBankLoad, err)
		s.logger.Error("question bank load failed", "error", err)
		s.presenter.OnLoadError(s.loadErr)
		return s.loadErr
	}
	if s.closed {
		return domain.ErrSessionClosed
	}

	s.records = records
	s.state.TotalQuestions = len(records)
	s.state.Phase = domain.PhaseAwaitingAnswer
	s.logger.Info("drill session started", "questions", len(records), "countdown_seconds", s.seconds)
	s.presentLocked()
	return nil
}

// SubmitVerdict records the user's judgement for the current question and advances.
func (s *QuizSession) SubmitVerdict(verdict domain.Verdict) error {
	if !verdict.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidVerdict, verdict)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.state.Phase != domain.PhaseAwaitingAnswer {
		return domain.ErrNotAwaitingAnswer
	}
	s.recordLocked(verdict)
	return nil
}

// Snapshot returns a copy of the session state.
func (s *QuizSession) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.Responses = append([]domain.ResponseRecord(nil), s.state.Responses...)
	return snapshot
}

// Report returns the final report once the session has finished.
func (s *QuizSession) Report() (domain.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.report == nil {
		return domain.Report{}, false
	}
	return *s.report, true
}

// Close stops the countdown and rejects further events. It is safe to call more than once.
func (s *QuizSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.countdown.cancel()
}

// presentLocked enters AwaitingAnswer for the question at QuestionIndex, or finishes.
func (s *QuizSession) presentLocked() {
	if s.state.QuestionIndex >= len(s.records) {
		s.finishLocked()
		return
	}

	record := s.records[s.state.QuestionIndex]
	s.state.RemainingSeconds = s.seconds
	parsed := textnorm.ParseQuestion(record.FullQuestion)
	if err := textnorm.Validate(record.FullQuestion, parsed); err != nil {
		s.logger.Warn("question parsed with gaps", "question", s.state.QuestionIndex+1, "error", err)
	}
	answer := s.assigner.Assign(record)
	s.current = &activeQuestion{record: record, parsed: parsed, answer: answer}

	s.presenter.OnQuestionReady(parsed, answer, s.seconds)
	s.countdown.start(s.handleTick)
}

func (s *QuizSession) handleTick(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state.Phase != domain.PhaseAwaitingAnswer || !s.countdown.current(epoch) {
		return
	}

	s.state.RemainingSeconds--
	s.presenter.OnTick(s.state.RemainingSeconds)
	if s.state.RemainingSeconds <= 0 {
		s.recordLocked(domain.VerdictNoResponse)
		return
	}
	s.countdown.next(epoch)
}

func (s *QuizSession) recordLocked(verdict domain.Verdict) {
	s.countdown.cancel()

	record := domain.ResponseRecord{
		QuestionNumber: s.state.QuestionIndex + 1,
		Verdict:        verdict,
	}
	if q := s.current; q != nil {
		record.Question = q.parsed.Stem
		record.DisplayedChoice = q.answer.Choice
		record.DisplayedExplanation = q.answer.Explanation
		record.Condition = q.answer.Condition
		record.DisplayedAnswerCorrect = q.answer.IsCorrect
		record.CorrectAnswer = q.record.CorrectAnswer
		record.CorrectAnswerText = q.parsed.Option(q.record.CorrectAnswer)
	}

	s.state.Responses = append(s.state.Responses, record)
	s.state.QuestionIndex++
	s.current = nil
	s.presentLocked()
}

func (s *QuizSession) finishLocked() {
	s.countdown.cancel()
	s.state.Phase = domain.PhaseFinished
	s.state.RemainingSeconds = 0

	report := BuildReport(s.state.Responses, len(s.records))
	s.report = &report
	s.logger.Info("drill session finished",
		"attempted", report.QuestionsAttempted,
		"drills", report.TotalDrills,
		"over_reliance", report.OverRelianceCount)
	s.presenter.OnFinished(report)
}

type nopPresenter struct{}

func (nopPresenter) OnQuestionReady(domain.ParsedQuestion, domain.DisplayedAnswer, int) {}
func (nopPresenter) OnTick(int) {}
func (nopPresenter) OnFinished(domain.Report) {}
func (nopPresenter) OnLoadError(error) {}
