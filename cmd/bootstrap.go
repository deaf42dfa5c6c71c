package cmd

import (
	"context"
	"fmt"

	"content-relations/core/config"
	"content-relations/core/database"
	"content-relations/core/logger"
	"content-relations/feature/relations/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadRuntime loads the configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// openDatabase connects to the database and prepares the relation tables.
func openDatabase(ctx context.Context, cfg database.Config, logg *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Seed(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to prepare relation tables: %w", err)
	}
	logg.Info("Connected to database", zap.String("driver", cfg.Driver), zap.String("name", cfg.Name))
	return db, nil
}
