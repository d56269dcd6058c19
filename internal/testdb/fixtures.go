package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// SourceText returns a string of exactly n characters that passes source
// text validation when 1000 <= n <= 10000.
func SourceText(n int) string {
	const unit = "Photosynthesis converts light energy into chemical energy. "
	return strings.Repeat(unit, n/len(unit)+1)[:n]
}

// CreateTestUser inserts a user with a unique email through db.
func CreateTestUser(t *testing.T, db store.DBTX) *domain.User {
	t.Helper()

	user, err := domain.NewUser(
		fmt.Sprintf("test-%s@example.com", uuid.NewString()[:8]),
		"$2a$10$abcdefghijklmnopqrstuu5mGBDJ4V2sSQkT0Lw0z7.0Bvfk3jS5K",
	)
	require.NoError(t, err)

	_, err = db.ExecContext(context.Background(),
		`INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	require.NoError(t, err, "Failed to insert test user")

	return user
}

// CreateCommittedUser inserts a user outside any test transaction and
// deletes it, with everything it owns, when the test ends.
func CreateCommittedUser(t *testing.T, db *sql.DB) *domain.User {
	t.Helper()

	user := CreateTestUser(t, db)
	t.Cleanup(func() {
		if _, err := db.ExecContext(context.Background(), "DELETE FROM users WHERE id = $1", user.ID); err != nil {
			t.Logf("Warning: failed to delete committed test user: %v", err)
		}
	})
	return user
}

// CreateTestGeneration inserts a generation with generatedCount proposals
// and nil accepted counters.
func CreateTestGeneration(t *testing.T, db store.DBTX, userID uuid.UUID, generatedCount int) *domain.Generation {
	t.Helper()

	g := domain.NewGeneration(userID, "openai/gpt-4o-mini", SourceText(1500), generatedCount, 1200*time.Millisecond)
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO generations (user_id, model, generated_count, source_text_hash, source_text_length,
			generation_duration, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		g.UserID, g.Model, g.GeneratedCount, g.SourceTextHash, g.SourceTextLength,
		g.GenerationDuration, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	require.NoError(t, err, "Failed to insert test generation")

	return g
}

// CountRows returns the number of rows in table owned by userID.
func CountRows(t *testing.T, db store.DBTX, table string, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM "+table+" WHERE user_id = $1", userID).Scan(&n)
	require.NoError(t, err)
	return n
}
