package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"reliance-drill-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches a question bank from a backing store (static file, database).
type BankLoader interface {
	LoadBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error)
}

// BankRepository caches banks in Redis and falls back to a loader on cache miss.
// Each bank is a list of JSON-encoded records in bank order:
//
//	RPUSH drill:bank:{bankID} {record} ...
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error) {
	if records, ok := r.cached(ctx, bankID); ok {
		return records, nil
	}

	result, err, _ := r.sf.Do(bankID, func() (interface{}, error) {
		// Re-check cache in case another caller filled it.
		if records, ok := r.cached(ctx, bankID); ok {
			return records, nil
		}

		records, err := r.loader.LoadBank(ctx, bankID)
		if err != nil {
			return nil, err
		}
		r.store(ctx, bankID, records)
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.QuestionRecord), nil
}

func (r *BankRepository) cached(ctx context.Context, bankID string) ([]domain.QuestionRecord, bool) {
	raw, err := r.client.LRange(ctx, r.key(bankID), 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	records := make([]domain.QuestionRecord, 0, len(raw))
	for _, item := range raw {
		var record domain.QuestionRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			// A corrupt entry is treated as a miss; the loader rewrites the list.
			return nil, false
		}
		records = append(records, record)
	}
	return records, true
}

// store writes the bank best-effort; a failed write only costs a reload later.
func (r *BankRepository) store(ctx context.Context, bankID string, records []domain.QuestionRecord) {
	if len(records) == 0 {
		return
	}
	values := make([]interface{}, 0, len(records))
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return
		}
		values = append(values, string(data))
	}

	key := r.key(bankID)
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, values...)
	if ttl := r.ttlWithJitter(); ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func (r *BankRepository) key(bankID string) string {
	return "drill:bank:" + bankID
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// Invalidate drops the cached copy of a bank, e.g. after an import.
func (r *BankRepository) Invalidate(ctx context.Context, bankID string) error {
	if err := r.client.Del(ctx, r.key(bankID)).Err(); err != nil {
		return fmt.Errorf("invalidate bank %s: %w", bankID, err)
	}
	return nil
}
