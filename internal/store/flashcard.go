package store

import (
	"context"
	"database/sql"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/google/uuid"
)

// FlashcardStore defines persistence for flashcards. All lookups are scoped
// to the owning user.
type FlashcardStore interface {
	// Create inserts card and fills in its ID and timestamps.
	Create(ctx context.Context, card *domain.Flashcard) error

	// CreateMany inserts cards in order, filling in IDs and timestamps.
	// Run it inside RunInTransaction together with the generation counter
	// update; on its own it does not guarantee all-or-nothing.
	CreateMany(ctx context.Context, cards []*domain.Flashcard) error

	// GetByID returns ErrFlashcardNotFound when the card is missing or owned
	// by someone else.
	GetByID(ctx context.Context, scope Scope) (*domain.Flashcard, error)

	// Update writes front, back, source and updated_at of an owned card.
	// generation_id is never changed.
	Update(ctx context.Context, card *domain.Flashcard) error

	// Delete removes an owned card.
	Delete(ctx context.Context, scope Scope) error

	// List returns one page of the user's cards.
	List(ctx context.Context, userID uuid.UUID, query domain.FlashcardQuery) ([]*domain.Flashcard, error)

	// Count returns how many cards match query's filters, ignoring paging.
	Count(ctx context.Context, userID uuid.UUID, query domain.FlashcardQuery) (int, error)

	// ListByGeneration returns the user's cards accepted from one generation,
	// oldest first.
	ListByGeneration(ctx context.Context, scope Scope) ([]*domain.Flashcard, error)

	// WithTx returns a FlashcardStore bound to tx.
	WithTx(tx *sql.Tx) FlashcardStore
}
