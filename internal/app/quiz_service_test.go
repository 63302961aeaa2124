package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"reliance-drill-service/internal/app"
	"reliance-drill-service/internal/domain"
	"reliance-drill-service/internal/infra/memory"
)

func newTestService(t *testing.T, banks map[string][]domain.QuestionRecord) (*app.QuizService, *memory.SessionStore, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	store := memory.NewSessionStore()
	repo := memory.NewBankRepository(memory.NewStaticBankLoader(banks), time.Minute)
	svc := app.NewQuizService(store, repo, "sample", app.SessionOptions{
		CountdownSeconds: 3,
		Clock:            clock,
		Coin:             sequenceCoin(harmful, helpful, helpful),
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return svc, store, clock
}

func TestQuizServiceRunsSession(t *testing.T) {
	svc, store, clock := newTestService(t, map[string][]domain.QuestionRecord{"sample": sampleBank()})
	presenter := &recordingPresenter{}

	session := svc.Open("", presenter)
	if session.ID() == "" || store.Len() != 1 {
		t.Fatalf("expected registered session, got id=%q len=%d", session.ID(), store.Len())
	}
	if err := svc.Start(context.Background(), session.ID()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := svc.SubmitVerdict(session.ID(), domain.VerdictTrust); err != nil {
		t.Fatalf("verdict: %v", err)
	}
	clock.Ticks(3)
	if err := svc.SubmitVerdict(session.ID(), domain.VerdictDoNotTrust); err != nil {
		t.Fatalf("verdict: %v", err)
	}

	snap, err := svc.Snapshot(session.ID())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Phase != domain.PhaseFinished || len(snap.Responses) != 3 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Responses[1].Verdict != domain.VerdictNoResponse {
		t.Fatalf("expected second question to time out, got %s", snap.Responses[1].Verdict)
	}

	if len(presenter.reports) != 1 {
		t.Fatalf("expected one report, got %d", len(presenter.reports))
	}
	report := presenter.reports[0]
	if report.TotalDrills != 1 || report.OverRelianceCount != 1 || report.QuestionsAttempted != 2 {
		t.Fatalf("unexpected report %+v", report)
	}

	svc.Close(session.ID())
	if store.Len() != 0 {
		t.Fatalf("expected session to be forgotten")
	}
	if _, err := svc.Snapshot(session.ID()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQuizServiceUnknownSession(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	if err := svc.Start(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.SubmitVerdict("missing", domain.VerdictTrust); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	svc.Close("missing")
}

func TestQuizServiceUnknownBank(t *testing.T) {
	svc, _, _ := newTestService(t, map[string][]domain.QuestionRecord{"sample": sampleBank()})
	presenter := &recordingPresenter{}

	session := svc.Open("nope", presenter)
	defer svc.Close(session.ID())

	err := svc.Start(context.Background(), session.ID())
	if !errors.Is(err, domain.ErrBankLoad) || !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected wrapped bank-not-found, got %v", err)
	}
	if len(presenter.loadErrs) != 1 {
		t.Fatalf("expected load error callback")
	}
}

func TestQuizServiceCountdownSeconds(t *testing.T) {
	svc := app.NewQuizService(memory.NewSessionStore(), nil, "", app.SessionOptions{})
	if svc.CountdownSeconds() != app.DefaultCountdownSeconds {
		t.Fatalf("expected default countdown, got %d", svc.CountdownSeconds())
	}
}

func TestQuizServiceInstructions(t *testing.T) {
	svc, _, _ := newTestService(t, map[string][]domain.QuestionRecord{"sample": sampleBank()})

	text, err := svc.Instructions(context.Background(), "")
	if err != nil {
		t.Fatalf("instructions: %v", err)
	}
	if !strings.Contains(text, "presented with 3 multiple-choice questions") || !strings.Contains(text, "3-second timer") {
		t.Fatalf("unexpected instructions %q", text)
	}

	if _, err := svc.Instructions(context.Background(), "nope"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected bank not found, got %v", err)
	}
}
