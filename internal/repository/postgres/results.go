package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/domain"
)

type resultRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewResultRepository creates a new processing-result repository
func NewResultRepository(db *sql.DB, logger *zap.Logger) *resultRepository {
	return &resultRepository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the archive table if it does not exist yet.
func (r *resultRepository) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS processing_results (
			run_id       UUID PRIMARY KEY,
			order_number TEXT NOT NULL,
			order_value  DOUBLE PRECISION NOT NULL,
			started_at   TIMESTAMPTZ NOT NULL,
			finished_at  TIMESTAMPTZ NOT NULL,
			payload      JSONB NOT NULL
		)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Error("Failed to migrate processing_results", zap.Error(err))
		return err
	}

	return nil
}

// Save archives one processing result as a row plus the full JSON payload.
func (r *resultRepository) Save(ctx context.Context, result *domain.ProcessingResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO processing_results (run_id, order_number, order_value, started_at, finished_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// lib/pq would send []byte as bytea; jsonb needs the text form.
	_, err = r.db.ExecContext(ctx, query,
		result.RunID,
		result.Fields.OrderNumber,
		result.Fields.OrderValue,
		result.StartedAt,
		result.FinishedAt,
		string(payload),
	)

	if err != nil {
		r.logger.Error("Failed to save processing result", zap.Error(err))
		return err
	}

	return nil
}
