// Package sqlite keeps question banks in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"reliance-drill-service/internal/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS question_banks (
    bank_id  TEXT    NOT NULL,
    position INTEGER NOT NULL,
    data     TEXT    NOT NULL,
    PRIMARY KEY (bank_id, position)
);`

// BankStore loads and saves banks in SQLite, one JSON row per record.
type BankStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*BankStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; modernc serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &BankStore{db: db}, nil
}

func (s *BankStore) Close() error {
	return s.db.Close()
}

func (s *BankStore) LoadBank(ctx context.Context, bankID string) ([]domain.QuestionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM question_banks WHERE bank_id = ? ORDER BY position`, bankID)
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	defer rows.Close()

	var records []domain.QuestionRecord
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan bank row: %w", err)
		}
		var record domain.QuestionRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
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

func (s *BankStore) SaveBank(ctx context.Context, bankID string, records []domain.QuestionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM question_banks WHERE bank_id = ?`, bankID); err != nil {
		return fmt.Errorf("clear bank %s: %w", bankID, err)
	}
	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record %d: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO question_banks (bank_id, position, data) VALUES (?, ?, ?)`,
			bankID, i, string(data)); err != nil {
			return fmt.Errorf("insert record %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
