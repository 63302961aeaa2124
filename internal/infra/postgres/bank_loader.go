package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"reliance-drill-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads question banks stored as one JSONB row per record.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM question_banks WHERE bank_id=$1 ORDER BY position`, bankID)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	defer rows.Close()

	var records []domain.QuestionRecord
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan bank row: %w", err)
		}
		var record domain.QuestionRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("unmarshal bank row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrBankNotFound, bankID)
	}
	return records, nil
}
