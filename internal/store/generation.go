package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/google/uuid"
)

// GenerationStore defines persistence for generation records.
type GenerationStore interface {
	// Create inserts generation and fills in its ID and timestamps.
	Create(ctx context.Context, generation *domain.Generation) error

	// GetByID returns ErrGenerationNotFound when the generation is missing
	// or owned by someone else.
	GetByID(ctx context.Context, scope Scope) (*domain.Generation, error)

	// GetForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends. Concurrent batch accepts on one generation serialize
	// on this lock.
	GetForUpdate(ctx context.Context, scope Scope) (*domain.Generation, error)

	// AddAccepted increments the accepted counters (NULL counts as zero) and
	// sets updated_at.
	AddAccepted(ctx context.Context, scope Scope, unedited, edited int, at time.Time) error

	// List returns one page of the user's generations.
	List(ctx context.Context, userID uuid.UUID, query domain.GenerationQuery) ([]*domain.Generation, error)

	// Statistics aggregates all of the user's generations.
	Statistics(ctx context.Context, userID uuid.UUID) (domain.GenerationStatistics, error)

	// WithTx returns a GenerationStore bound to tx.
	WithTx(tx *sql.Tx) GenerationStore
}

// GenerationErrorLogStore is the append-only sink for failed generation
// attempts.
type GenerationErrorLogStore interface {
	Create(ctx context.Context, entry *domain.GenerationErrorLog) error
}
