package cli

import (
	"context"
	"fmt"
	"log/slog"

	"reliance-drill-service/internal/config"
	"reliance-drill-service/internal/infra/jsonfile"
	"reliance-drill-service/internal/infra/memory"
	pgloader "reliance-drill-service/internal/infra/postgres"
	"reliance-drill-service/internal/infra/sqlite"

	"github.com/jackc/pgx/v4/pgxpool"
)

// openBankLoader picks the bank backing store: Postgres when a URL is configured, then
// SQLite, then JSON files in the bank directory. The returned func releases it.
func openBankLoader(ctx context.Context, cfg config.Config, logger *slog.Logger) (memory.BankLoader, func(), error) {
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		logger.Info("serving question banks from postgres")
		return pgloader.NewBankLoader(pool), pool.Close, nil
	case cfg.SQLite.Path != "":
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("serving question banks from sqlite", "path", cfg.SQLite.Path)
		return store, func() { _ = store.Close() }, nil
	default:
		logger.Info("serving question banks from json files", "dir", cfg.Bank.Dir)
		return jsonfile.NewBankLoader(cfg.Bank.Dir), func() {}, nil
	}
}
