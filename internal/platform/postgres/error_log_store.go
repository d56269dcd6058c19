package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
)

// PostgresGenerationErrorLogStore implements store.GenerationErrorLogStore.
type PostgresGenerationErrorLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.GenerationErrorLogStore = (*PostgresGenerationErrorLogStore)(nil)

// NewPostgresGenerationErrorLogStore creates a PostgresGenerationErrorLogStore on db.
func NewPostgresGenerationErrorLogStore(db store.DBTX, logger *slog.Logger) *PostgresGenerationErrorLogStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGenerationErrorLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "generation_error_log_store")),
	}
}

// Create implements store.GenerationErrorLogStore.
func (s *PostgresGenerationErrorLogStore) Create(ctx context.Context, entry *domain.GenerationErrorLog) error {
	if entry.UserID == uuid.Nil || entry.ErrorCode == "" {
		return fmt.Errorf("%w: error log requires user and error code", store.ErrInvalidEntity)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO generation_error_logs (user_id, model, source_text_hash, source_text_length,
			error_code, error_message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		entry.UserID, entry.Model, entry.SourceTextHash, entry.SourceTextLength,
		entry.ErrorCode, entry.ErrorMessage, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return MapError(err)
	}
	return nil
}
