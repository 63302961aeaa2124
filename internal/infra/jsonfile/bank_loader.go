// Package jsonfile serves question banks from static JSON files on disk.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"reliance-drill-service/internal/domain"
)

// BankLoader reads <dir>/<bankID>.json.
type BankLoader struct {
	dir string
}

func NewBankLoader(dir string) *BankLoader {
	return &BankLoader{dir: dir}
}

func (l *BankLoader) LoadBank(_ context.Context, bankID string) ([]domain.QuestionRecord, error) {
	if bankID == "" || strings.ContainsAny(bankID, `/\`) || strings.Contains(bankID, "..") {
		return nil, fmt.Errorf("%w: invalid bank id %q", domain.ErrBankNotFound, bankID)
	}
	return ReadFile(filepath.Join(l.dir, bankID+".json"))
}

// ReadFile decodes a bank from a single JSON file.
func ReadFile(path string) ([]domain.QuestionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBankNotFound, path)
		}
		return nil, fmt.Errorf("read bank: %w", err)
	}
	records, err := domain.DecodeBank(data)
	if err != nil {
		return nil, fmt.Errorf("decode bank %s: %w", path, err)
	}
	return records, nil
}
