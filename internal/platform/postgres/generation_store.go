package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
)

const generationColumns = `id, user_id, model, generated_count, accepted_unedited_count,
	accepted_edited_count, source_text_hash, source_text_length, generation_duration,
	created_at, updated_at`

var generationTable = scopedTable[*domain.Generation]{
	table:    "generations",
	columns:  generationColumns,
	notFound: store.ErrGenerationNotFound,
	scan:     scanGeneration,
}

// PostgresGenerationStore implements store.GenerationStore.
type PostgresGenerationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.GenerationStore = (*PostgresGenerationStore)(nil)

// NewPostgresGenerationStore creates a PostgresGenerationStore on db.
func NewPostgresGenerationStore(db store.DBTX, logger *slog.Logger) *PostgresGenerationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGenerationStore{
		db:     db,
		logger: logger.With(slog.String("component", "generation_store")),
	}
}

// WithTx implements store.GenerationStore.
func (s *PostgresGenerationStore) WithTx(tx *sql.Tx) store.GenerationStore {
	return &PostgresGenerationStore{db: tx, logger: s.logger}
}

// Create implements store.GenerationStore.
func (s *PostgresGenerationStore) Create(ctx context.Context, g *domain.Generation) error {
	if g.UserID == uuid.Nil || g.Model == "" || g.GeneratedCount < 0 {
		return fmt.Errorf("%w: generation requires user, model and a non-negative count", store.ErrInvalidEntity)
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO generations (user_id, model, generated_count, accepted_unedited_count,
			accepted_edited_count, source_text_hash, source_text_length, generation_duration,
			created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		g.UserID, g.Model, g.GeneratedCount, g.AcceptedUneditedCount, g.AcceptedEditedCount,
		g.SourceTextHash, g.SourceTextLength, g.GenerationDuration, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		return MapError(err)
	}

	s.logger.Debug("generation created",
		slog.Int64("generation_id", g.ID),
		slog.String("user_id", g.UserID.String()),
		slog.Int("generated_count", g.GeneratedCount))
	return nil
}

// GetByID implements store.GenerationStore.
func (s *PostgresGenerationStore) GetByID(ctx context.Context, scope store.Scope) (*domain.Generation, error) {
	return generationTable.get(ctx, s.db, scope, false)
}

// GetForUpdate implements store.GenerationStore.
func (s *PostgresGenerationStore) GetForUpdate(ctx context.Context, scope store.Scope) (*domain.Generation, error) {
	return generationTable.get(ctx, s.db, scope, true)
}

// AddAccepted implements store.GenerationStore.
func (s *PostgresGenerationStore) AddAccepted(
	ctx context.Context,
	scope store.Scope,
	unedited, edited int,
	at time.Time,
) error {
	if !scope.Valid() {
		return store.ErrGenerationNotFound
	}
	if unedited < 0 || edited < 0 {
		return fmt.Errorf("%w: accepted increments must not be negative", store.ErrInvalidEntity)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE generations
		 SET accepted_unedited_count = COALESCE(accepted_unedited_count, 0) + $3,
		     accepted_edited_count = COALESCE(accepted_edited_count, 0) + $4,
		     updated_at = $5
		 WHERE `+ownedPredicate,
		scope.ID, scope.UserID, unedited, edited, at)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrGenerationNotFound)
}

// List implements store.GenerationStore.
func (s *PostgresGenerationStore) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.GenerationQuery,
) ([]*domain.Generation, error) {
	query.Normalize()
	dir := orderDirection(query.SortOrder == domain.SortAsc)

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM generations WHERE user_id = $1 ORDER BY created_at %s, id %s LIMIT $2 OFFSET $3",
			generationColumns, dir, dir),
		userID, query.PageSize, query.Offset())
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	generations := make([]*domain.Generation, 0)
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, MapError(err)
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return generations, nil
}

// Statistics implements store.GenerationStore.
func (s *PostgresGenerationStore) Statistics(ctx context.Context, userID uuid.UUID) (domain.GenerationStatistics, error) {
	var stats domain.GenerationStatistics
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(generated_count), 0),
		        COALESCE(SUM(COALESCE(accepted_unedited_count, 0) + COALESCE(accepted_edited_count, 0)), 0)
		 FROM generations
		 WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalGenerations, &stats.TotalGenerated, &stats.TotalAccepted)
	if err != nil {
		return domain.GenerationStatistics{}, MapError(err)
	}

	stats.OverallAcceptanceRate = domain.AcceptanceRate(stats.TotalAccepted, stats.TotalGenerated)
	return stats, nil
}

func scanGeneration(row rowScanner) (*domain.Generation, error) {
	var (
		g        domain.Generation
		unedited sql.NullInt32
		edited   sql.NullInt32
	)
	if err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Model,
		&g.GeneratedCount,
		&unedited,
		&edited,
		&g.SourceTextHash,
		&g.SourceTextLength,
		&g.GenerationDuration,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	g.AcceptedUneditedCount = nullIntPtr(unedited)
	g.AcceptedEditedCount = nullIntPtr(edited)
	return &g, nil
}
