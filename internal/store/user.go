package store

import (
	"context"
	"database/sql"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines persistence for users.
type UserStore interface {
	// Create inserts a new user. Returns ErrEmailExists when the normalized
	// email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound when no user has the ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail looks a user up by normalized email.
	// Returns ErrUserNotFound when there is no match.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes the user. Flashcards, generations and error logs are
	// removed by ON DELETE CASCADE.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to tx.
	WithTx(tx *sql.Tx) UserStore
}
