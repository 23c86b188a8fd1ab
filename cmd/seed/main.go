package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"quantumfinance/internal/dataset"
	"quantumfinance/internal/repository"
	"quantumfinance/pkg/config"
	"quantumfinance/pkg/logger"
	"quantumfinance/pkg/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// seed copies the CSV dataset from DATA_DIR into Postgres, replacing the
// transaction and interaction rows and upserting users and products.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()

	snap, err := dataset.NewCSVSource(cfg.Data.Dir).Load(ctx)
	if err != nil {
		appLogger.Fatal("Failed to read CSV dataset", zap.String("dir", cfg.Data.Dir), zap.Error(err))
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := applySchema(ctx, db, findMigrations()); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	if err := seed(ctx, db, snap, appLogger); err != nil {
		appLogger.Fatal("Failed to seed database", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.Int("users", len(snap.Users)),
		zap.Int("products", len(snap.Products)),
		zap.Int("transactions", len(snap.Transactions)),
		zap.Int("interactions", len(snap.Interactions)),
	)
}

func findMigrations() string {
	for _, dir := range []string{"migrations", "../migrations", "../../migrations"} {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	return "migrations"
}

func applySchema(ctx context.Context, db *pgxpool.Pool, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", file, err)
		}
	}
	return nil
}

// seed writes the whole snapshot in one transaction so the dashboard never
// reads a half-written dataset.
func seed(ctx context.Context, db *pgxpool.Pool, snap *dataset.Snapshot, logger *zap.Logger) error {
	return pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		users := repository.NewUserRepository(tx, logger)
		products := repository.NewProductRepository(tx, logger)
		transactions := repository.NewTransactionRepository(tx, logger)
		interactions := repository.NewInteractionRepository(tx, logger)

		if err := transactions.DeleteAll(ctx); err != nil {
			return err
		}
		if err := interactions.DeleteAll(ctx); err != nil {
			return err
		}
		if err := users.CreateBatch(ctx, snap.Users); err != nil {
			return err
		}
		if err := products.CreateBatch(ctx, snap.Products); err != nil {
			return err
		}
		if err := transactions.CreateBatch(ctx, snap.Transactions); err != nil {
			return err
		}
		return interactions.CreateBatch(ctx, snap.Interactions)
	})
}
