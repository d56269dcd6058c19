package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
)

const flashcardColumns = "id, user_id, generation_id, front, back, source, created_at, updated_at"

var flashcardTable = scopedTable[*domain.Flashcard]{
	table:    "flashcards",
	columns:  flashcardColumns,
	notFound: store.ErrFlashcardNotFound,
	scan:     scanFlashcard,
}

var flashcardSortColumns = map[domain.FlashcardSortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
	domain.SortByFront:     "front",
}

// PostgresFlashcardStore implements store.FlashcardStore.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

// NewPostgresFlashcardStore creates a PostgresFlashcardStore on db.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// WithTx implements store.FlashcardStore.
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{db: tx, logger: s.logger}
}

const insertFlashcardSQL = `INSERT INTO flashcards (user_id, generation_id, front, back, source, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id`

// Create implements store.FlashcardStore.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := s.db.QueryRowContext(ctx, insertFlashcardSQL, flashcardInsertArgs(card)...).Scan(&card.ID)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// CreateMany implements store.FlashcardStore.
func (s *PostgresFlashcardStore) CreateMany(ctx context.Context, cards []*domain.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	for i, card := range cards {
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: flashcard %d: %v", store.ErrInvalidEntity, i, err)
		}
	}

	stmt, err := s.db.PrepareContext(ctx, insertFlashcardSQL)
	if err != nil {
		return MapError(err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			s.logger.Warn("failed to close prepared statement", slog.String("error", cerr.Error()))
		}
	}()

	for i, card := range cards {
		if err := stmt.QueryRowContext(ctx, flashcardInsertArgs(card)...).Scan(&card.ID); err != nil {
			return fmt.Errorf("insert flashcard %d: %w", i, MapError(err))
		}
	}

	s.logger.Debug("flashcards created", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.FlashcardStore.
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, scope store.Scope) (*domain.Flashcard, error) {
	return flashcardTable.get(ctx, s.db, scope, false)
}

// Update implements store.FlashcardStore.
func (s *PostgresFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE flashcards SET front = $3, back = $4, source = $5, updated_at = $6
		 WHERE `+ownedPredicate,
		card.ID, card.UserID, card.Front, card.Back, string(card.Source), card.UpdatedAt)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrFlashcardNotFound)
}

// Delete implements store.FlashcardStore.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, scope store.Scope) error {
	return flashcardTable.delete(ctx, s.db, scope)
}

// List implements store.FlashcardStore.
func (s *PostgresFlashcardStore) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.FlashcardQuery,
) ([]*domain.Flashcard, error) {
	query.Normalize()
	where, args := flashcardFilter(userID, query)

	column := flashcardSortColumns[query.SortBy]
	dir := orderDirection(query.SortOrder == domain.SortAsc)

	args = append(args, query.PageSize, query.Offset())
	sqlText := fmt.Sprintf(
		"SELECT %s FROM flashcards WHERE %s ORDER BY %s %s, id %s LIMIT $%d OFFSET $%d",
		flashcardColumns, where, column, dir, dir, len(args)-1, len(args))

	return s.queryFlashcards(ctx, sqlText, args...)
}

// Count implements store.FlashcardStore.
func (s *PostgresFlashcardStore) Count(
	ctx context.Context,
	userID uuid.UUID,
	query domain.FlashcardQuery,
) (int, error) {
	where, args := flashcardFilter(userID, query)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM flashcards WHERE "+where, args...).Scan(&total); err != nil {
		return 0, MapError(err)
	}
	return total, nil
}

// ListByGeneration implements store.FlashcardStore.
func (s *PostgresFlashcardStore) ListByGeneration(ctx context.Context, scope store.Scope) ([]*domain.Flashcard, error) {
	if !scope.Valid() {
		return []*domain.Flashcard{}, nil
	}
	return s.queryFlashcards(ctx,
		"SELECT "+flashcardColumns+" FROM flashcards WHERE generation_id = $1 AND user_id = $2 ORDER BY created_at ASC, id ASC",
		scope.ID, scope.UserID)
}

func (s *PostgresFlashcardStore) queryFlashcards(ctx context.Context, query string, args ...any) ([]*domain.Flashcard, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	cards := make([]*domain.Flashcard, 0)
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return cards, nil
}

// flashcardFilter builds the WHERE clause shared by List and Count.
// Search is a case-insensitive substring match on front or back.
func flashcardFilter(userID uuid.UUID, query domain.FlashcardQuery) (string, []any) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if query.Source != nil {
		args = append(args, string(*query.Source))
		conditions = append(conditions, "source = $"+strconv.Itoa(len(args)))
	}

	if search := strings.TrimSpace(query.Search); search != "" {
		args = append(args, strings.ToLower(search))
		n := strconv.Itoa(len(args))
		conditions = append(conditions,
			"(strpos(lower(front), $"+n+") > 0 OR strpos(lower(back), $"+n+") > 0)")
	}

	return strings.Join(conditions, " AND "), args
}

func flashcardInsertArgs(card *domain.Flashcard) []any {
	return []any{
		card.UserID,
		card.GenerationID,
		card.Front,
		card.Back,
		string(card.Source),
		card.CreatedAt,
		card.UpdatedAt,
	}
}

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var (
		card         domain.Flashcard
		generationID sql.NullInt64
		source       string
	)
	if err := row.Scan(
		&card.ID,
		&card.UserID,
		&generationID,
		&card.Front,
		&card.Back,
		&source,
		&card.CreatedAt,
		&card.UpdatedAt,
	); err != nil {
		return nil, err
	}
	card.GenerationID = nullInt64Ptr(generationID)
	card.Source = domain.Source(source)
	return &card, nil
}
