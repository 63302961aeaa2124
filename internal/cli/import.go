package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"reliance-drill-service/internal/config"
	"reliance-drill-service/internal/domain"
	"reliance-drill-service/internal/infra/jsonfile"
	pgloader "reliance-drill-service/internal/infra/postgres"
	redisinfra "reliance-drill-service/internal/infra/redis"
	"reliance-drill-service/internal/infra/sqlite"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewImportCmd loads a JSON question bank into the configured database.
func NewImportCmd(configPath *string) *cobra.Command {
	var bankID, file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON question bank into Postgres or SQLite",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, bankID, file)
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id to store the questions under")
	cmd.Flags().StringVar(&file, "file", "", "path to the JSON question bank")
	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type bankWriter interface {
	SaveBank(ctx context.Context, bankID string, records []domain.QuestionRecord) error
}

func runImport(ctx context.Context, configPath, bankID, file string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	records, err := jsonfile.ReadFile(file)
	if err != nil {
		return err
	}

	var writer bankWriter
	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg, logger); err != nil {
			return err
		}
		db := openBunDB(cfg.Postgres.URL)
		defer db.Close()
		writer = pgloader.NewBankWriter(db)
	case cfg.SQLite.Path != "":
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		writer = store
	default:
		return fmt.Errorf("import needs postgres.url or sqlite.path configured")
	}

	if err := writer.SaveBank(ctx, bankID, records); err != nil {
		return fmt.Errorf("save bank %s: %w", bankID, err)
	}
	logger.Info("question bank imported", "bank", bankID, "questions", len(records))

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := redisinfra.NewBankRepository(client, nil, 0).Invalidate(ctx, bankID); err != nil {
			logger.Warn("could not invalidate cached bank", "bank", bankID, "error", err)
		}
	}
	return nil
}
