package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	logger.Info("Applying database schema")
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		logger.Error("Failed to apply schema", zap.Error(err))
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
