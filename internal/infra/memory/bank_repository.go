package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"reliance-drill-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

// BankLoader fetches a question bank from a backing store (static file, database).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error)
}

// BankRepository caches banks with TTL to avoid re-reading the backing store for every session.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.Mutex
	cache map[string]cachedBank
}

type cachedBank struct {
	records   []domain.QuestionRecord
	expiresAt time.Time
}

func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error) {
	if records, ok := r.lookup(bankID); ok {
		return records, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		if records, ok := r.lookup(bankID); ok {
			return records, nil
		}

		records, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[bankID] = cachedBank{
			records:   records,
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	// Sessions only read records, but hand each caller its own slice header.
	return append([]domain.QuestionRecord(nil), result.([]domain.QuestionRecord)...), nil
}

func (r *BankRepository) lookup(bankID string) ([]domain.QuestionRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.cache[bankID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return nil, false
	}
	return append([]domain.QuestionRecord(nil), entry.records...), true
}

// ttlWithJitter adds up to 10% to the TTL so banks loaded together do not expire together.
// rand.Rand is not goroutine-safe; the caller holds r.mu.
func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticBankLoader serves banks from an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	banks map[string][]domain.QuestionRecord
}

func NewStaticBankLoader(banks map[string][]domain.QuestionRecord) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, bankID string) ([]domain.QuestionRecord, error) {
	if records, ok := l.banks[bankID]; ok {
		return records, nil
	}
	return nil, domain.ErrBankNotFound
}
