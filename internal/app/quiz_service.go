package app

import (
	"context"
	"fmt"
	"log/slog"

	"reliance-drill-service/internal/domain"

	"github.com/google/uuid"
)

// SessionRepository abstracts where live drill sessions are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	Put(session *QuizSession)
	Get(sessionID string) (*QuizSession, bool)
	Delete(sessionID string)
}

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error)
}

// QuizService opens drill sessions and routes events to them by id.
type QuizService struct {
	sessions    SessionRepository
	banks       BankRepository
	defaultBank string
	opts        SessionOptions
	logger      *slog.Logger
	newID       func() string
}

func NewQuizService(store SessionRepository, banks BankRepository, defaultBank string, opts SessionOptions) *QuizService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizService{
		sessions:    store,
		banks:       banks,
		defaultBank: defaultBank,
		opts:        opts,
		logger:      logger,
		newID:       uuid.NewString,
	}
}

// CountdownSeconds is the per-question budget sessions are created with.
func (s *QuizService) CountdownSeconds() int {
	if s.opts.CountdownSeconds <= 0 {
		return DefaultCountdownSeconds
	}
	return s.opts.CountdownSeconds
}

// Instructions formats the pre-start text for bankID using the size of the bank.
func (s *QuizService) Instructions(ctx context.Context, bankID string) (string, error) {
	if bankID == "" {
		bankID = s.defaultBank
	}
	records, err := s.banks.GetBank(ctx, bankID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrBankLoad, err)
	}
	return domain.Instructions(len(records), s.CountdownSeconds()), nil
}

// Open creates a session for bankID in NotStarted and registers it. An empty bankID
// selects the default bank.
func (s *QuizService) Open(bankID string, presenter Presenter) *QuizSession {
	if bankID == "" {
		bankID = s.defaultBank
	}
	bank := BankSourceFunc(func(ctx context.Context) ([]domain.QuestionRecord, error) {
		return s.banks.GetBank(ctx, bankID)
	})
	session := NewQuizSession(s.newID(), bank, presenter, s.opts)
	s.sessions.Put(session)
	s.logger.Info("drill session opened", "session", session.ID(), "bank", bankID)
	return session
}

// Start sends the start signal to a registered session.
func (s *QuizService) Start(ctx context.Context, sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	return session.Start(ctx)
}

// SubmitVerdict forwards a user verdict to a registered session.
func (s *QuizService) SubmitVerdict(sessionID string, verdict domain.Verdict) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	return session.SubmitVerdict(verdict)
}

// Snapshot returns the current state of a registered session.
func (s *QuizService) Snapshot(sessionID string) (domain.SessionState, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionState{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// Close tears the session down and forgets it.
func (s *QuizService) Close(sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
	s.logger.Info("drill session closed", "session", sessionID)
}
