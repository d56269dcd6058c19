package store

import (
	"fmt"

	"github.com/google/uuid"
)

// Scope identifies one row owned by one user. It is the single ownership
// predicate (id AND user_id) behind every get, update, delete and
// batch-accept lookup.
type Scope struct {
	UserID uuid.UUID
	ID     int64
}

// Owned builds a Scope.
func Owned(userID uuid.UUID, id int64) Scope {
	return Scope{UserID: userID, ID: id}
}

// Valid reports whether the scope can match any row at all.
func (s Scope) Valid() bool {
	return s.UserID != uuid.Nil && s.ID > 0
}

func (s Scope) String() string {
	return fmt.Sprintf("id=%d user_id=%s", s.ID, s.UserID)
}
