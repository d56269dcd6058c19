package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/KKuznik/10x-cards/internal/store"
)

// ownedPredicate is the row-level scoping condition shared by every
// single-row query on user-owned tables. $1 is the row id, $2 the owner.
const ownedPredicate = "id = $1 AND user_id = $2"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scopedTable describes how to read one user-owned entity.
type scopedTable[T any] struct {
	table    string
	columns  string
	notFound error
	scan     func(rowScanner) (T, error)
}

// get loads the row matching scope. Missing rows and rows owned by another
// user both yield t.notFound.
func (t scopedTable[T]) get(ctx context.Context, db store.DBTX, scope store.Scope, forUpdate bool) (T, error) {
	var zero T
	if !scope.Valid() {
		return zero, t.notFound
	}

	query := "SELECT " + t.columns + " FROM " + t.table + " WHERE " + ownedPredicate
	if forUpdate {
		query += " FOR UPDATE"
	}

	v, err := t.scan(db.QueryRowContext(ctx, query, scope.ID, scope.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, t.notFound
		}
		return zero, MapError(err)
	}
	return v, nil
}

// delete removes the row matching scope.
func (t scopedTable[T]) delete(ctx context.Context, db store.DBTX, scope store.Scope) error {
	if !scope.Valid() {
		return t.notFound
	}

	result, err := db.ExecContext(ctx, "DELETE FROM "+t.table+" WHERE "+ownedPredicate, scope.ID, scope.UserID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, t.notFound)
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullIntPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func orderDirection(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}
