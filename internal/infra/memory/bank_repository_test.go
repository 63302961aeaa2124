package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"reliance-drill-service/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(map[string][]domain.QuestionRecord{
			"bank-1": sampleBank(),
		}),
	}
	repo := NewBankRepository(loader, time.Minute)

	records, err := repo.GetBank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if loader.count() != 1 {
		t.Fatalf("expected loader once, got %d", loader.count())
	}

	if _, err := repo.GetBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.count())
	}
}

func TestBankRepositoryExpires(t *testing.T) {
	loader := &countingLoader{
		BankLoader: NewStaticBankLoader(map[string][]domain.QuestionRecord{"bank-1": sampleBank()}),
	}
	repo := NewBankRepository(loader, time.Minute)
	now := time.Now()
	repo.clock = func() time.Time { return now }

	if _, err := repo.GetBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank after expiry: %v", err)
	}
	if loader.count() != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.count())
	}
}

func TestBankRepositoryUnknownBank(t *testing.T) {
	repo := NewBankRepository(NewStaticBankLoader(nil), time.Minute)
	if _, err := repo.GetBank(context.Background(), "missing"); !errors.Is(err, domain.ErrBankNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type countingLoader struct {
	BankLoader
	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	return l.BankLoader.LoadBank(ctx, bankID)
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func sampleBank() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{
			FullQuestion:       "What is 2 + 2? A. 3 B. 4 C. 5 D. 22",
			HelpfulAnswer:      "B",
			HelpfulExplanation: "4 - two plus two is four",
			HelpfulCorrect:     true,
			HarmfulAnswer:      "D",
			HarmfulExplanation: "22 - the digits are concatenated",
			CorrectAnswer:      "B",
		},
		{
			FullQuestion:  "Which planet is largest? A. Mars B. Jupiter C. Venus D. Earth",
			HelpfulAnswer: "B",
			CorrectAnswer: "B",
		},
	}
}
