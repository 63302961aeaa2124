package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"reliance-drill-service/internal/domain"

	"github.com/uptrace/bun"
)

type bankRow struct {
	bun.BaseModel `bun:"table:question_banks"`

	BankID   string `bun:"bank_id,pk"`
	Position int    `bun:"position,pk"`
	Data     string `bun:"data,type:jsonb"`
}

// BankWriter replaces a bank's rows in one transaction.
type BankWriter struct {
	db *bun.DB
}

func NewBankWriter(db *bun.DB) *BankWriter {
	return &BankWriter{db: db}
}

func (w *BankWriter) SaveBank(ctx context.Context, bankID string, records []domain.QuestionRecord) error {
	rows := make([]bankRow, 0, len(records))
	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", i+1, err)
		}
		rows = append(rows, bankRow{BankID: bankID, Position: i, Data: string(data)})
	}

	return w.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*bankRow)(nil)).Where("bank_id = ?", bankID).Exec(ctx); err != nil {
			return fmt.Errorf("clear bank %s: %w", bankID, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("insert bank %s: %w", bankID, err)
		}
		return nil
	})
}
