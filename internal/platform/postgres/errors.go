package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// constraintErrors pins named constraints from the migrations to the store
// sentinel a caller can act on. Unlisted constraints fall back to the generic
// code-based mapping.
var constraintErrors = map[string]error{
	"users_email_key":                    store.ErrEmailExists,
	"flashcards_generation_id_fkey":      store.ErrGenerationNotFound,
	"flashcards_user_id_fkey":            store.ErrUserNotFound,
	"generations_user_id_fkey":           store.ErrUserNotFound,
	"generation_error_logs_user_id_fkey": store.ErrUserNotFound,
}

// MapError translates driver errors into store errors, keeping the original
// error in the chain for logging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if sentinel, ok := constraintErrors[pgErr.ConstraintName]; ok {
		return fmt.Errorf("%w: %v", sentinel, err)
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case foreignKeyViolationCode, checkViolationCode:
		return fmt.Errorf("%w: %s: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w: %s is null: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	}
	return err
}

// CheckRowsAffected returns notFound when an UPDATE or DELETE matched no
// owned row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if notFound == nil {
		return store.ErrNotFound
	}
	return notFound
}
