package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, store.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "fk"}, store.ErrInvalidEntity},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "chk"}, store.ErrInvalidEntity},
		{"not null", &pgconn.PgError{Code: "23502", ColumnName: "front"}, store.ErrInvalidEntity},
		{"email taken", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, store.ErrEmailExists},
		{"unknown generation", &pgconn.PgError{Code: "23503", ConstraintName: "flashcards_generation_id_fkey"}, store.ErrGenerationNotFound},
		{"unknown flashcard owner", &pgconn.PgError{Code: "23503", ConstraintName: "flashcards_user_id_fkey"}, store.ErrUserNotFound},
		{"unknown generation owner", &pgconn.PgError{Code: "23503", ConstraintName: "generations_user_id_fkey"}, store.ErrUserNotFound},
		{"unknown error log owner", &pgconn.PgError{Code: "23503", ConstraintName: "generation_error_logs_user_id_fkey"}, store.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, MapError(tt.err), tt.want)
			assert.ErrorIs(t, MapError(fmt.Errorf("wrapped: %w", tt.err)), tt.want)
		})
	}

	assert.NoError(t, MapError(nil))
	other := errors.New("connection refused")
	assert.Equal(t, other, MapError(other))
}

func TestMapError_NamedConstraintKeepsFamily(t *testing.T) {
	err := MapError(&pgconn.PgError{Code: "23503", ConstraintName: "flashcards_generation_id_fkey"})
	assert.True(t, store.IsNotFoundError(err))
	assert.NotErrorIs(t, err, store.ErrInvalidEntity)

	err = MapError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.True(t, store.IsDuplicateError(err))
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, store.ErrFlashcardNotFound))
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, store.ErrFlashcardNotFound), store.ErrFlashcardNotFound)
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver")}, nil))
	assert.Error(t, CheckRowsAffected(nil, nil))
}

func TestOrderDirection(t *testing.T) {
	assert.Equal(t, "ASC", orderDirection(true))
	assert.Equal(t, "DESC", orderDirection(false))
}
