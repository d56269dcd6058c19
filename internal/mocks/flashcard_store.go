package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
)

// MockFlashcardStore implements store.FlashcardStore with an in-memory
// default. List ignores sorting beyond newest-first.
type MockFlashcardStore struct {
	CreateFn           func(ctx context.Context, card *domain.Flashcard) error
	CreateManyFn       func(ctx context.Context, cards []*domain.Flashcard) error
	GetByIDFn          func(ctx context.Context, scope store.Scope) (*domain.Flashcard, error)
	UpdateFn           func(ctx context.Context, card *domain.Flashcard) error
	DeleteFn           func(ctx context.Context, scope store.Scope) error
	ListFn             func(ctx context.Context, userID uuid.UUID, query domain.FlashcardQuery) ([]*domain.Flashcard, error)
	CountFn            func(ctx context.Context, userID uuid.UUID, query domain.FlashcardQuery) (int, error)
	ListByGenerationFn func(ctx context.Context, scope store.Scope) ([]*domain.Flashcard, error)

	mu     sync.Mutex
	cards  []*domain.Flashcard
	nextID int64
}

var _ store.FlashcardStore = (*MockFlashcardStore)(nil)

// All returns a copy of the stored cards.
func (m *MockFlashcardStore) All() []*domain.Flashcard {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Flashcard(nil), m.cards...)
}

func (m *MockFlashcardStore) insert(card *domain.Flashcard) {
	m.nextID++
	card.ID = m.nextID
	stored := *card
	m.cards = append(m.cards, &stored)
}

// Create implements store.FlashcardStore.
func (m *MockFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(card)
	return nil
}

// CreateMany implements store.FlashcardStore.
func (m *MockFlashcardStore) CreateMany(ctx context.Context, cards []*domain.Flashcard) error {
	if m.CreateManyFn != nil {
		return m.CreateManyFn(ctx, cards)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, card := range cards {
		m.insert(card)
	}
	return nil
}

// GetByID implements store.FlashcardStore.
func (m *MockFlashcardStore) GetByID(ctx context.Context, scope store.Scope) (*domain.Flashcard, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cards {
		if c.ID == scope.ID && c.UserID == scope.UserID {
			found := *c
			return &found, nil
		}
	}
	return nil, store.ErrFlashcardNotFound
}

// Update implements store.FlashcardStore.
func (m *MockFlashcardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, card)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cards {
		if c.ID == card.ID && c.UserID == card.UserID {
			updated := *card
			updated.GenerationID = c.GenerationID
			m.cards[i] = &updated
			return nil
		}
	}
	return store.ErrFlashcardNotFound
}

// Delete implements store.FlashcardStore.
func (m *MockFlashcardStore) Delete(ctx context.Context, scope store.Scope) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cards {
		if c.ID == scope.ID && c.UserID == scope.UserID {
			m.cards = append(m.cards[:i], m.cards[i+1:]...)
			return nil
		}
	}
	return store.ErrFlashcardNotFound
}

func (m *MockFlashcardStore) filter(userID uuid.UUID, query domain.FlashcardQuery) []*domain.Flashcard {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	out := make([]*domain.Flashcard, 0)
	for _, c := range m.cards {
		if c.UserID != userID {
			continue
		}
		if query.Source != nil && c.Source != *query.Source {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Front), search) &&
			!strings.Contains(strings.ToLower(c.Back), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// List implements store.FlashcardStore.
func (m *MockFlashcardStore) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.FlashcardQuery,
) ([]*domain.Flashcard, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, query)
	}
	query.Normalize()
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := m.filter(userID, query)
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	start := query.Offset()
	if start >= len(matched) {
		return []*domain.Flashcard{}, nil
	}
	end := min(start+query.PageSize, len(matched))
	return matched[start:end], nil
}

// Count implements store.FlashcardStore.
func (m *MockFlashcardStore) Count(ctx context.Context, userID uuid.UUID, query domain.FlashcardQuery) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, userID, query)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filter(userID, query)), nil
}

// ListByGeneration implements store.FlashcardStore.
func (m *MockFlashcardStore) ListByGeneration(ctx context.Context, scope store.Scope) ([]*domain.Flashcard, error) {
	if m.ListByGenerationFn != nil {
		return m.ListByGenerationFn(ctx, scope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Flashcard, 0)
	for _, c := range m.cards {
		if c.UserID == scope.UserID && c.GenerationID != nil && *c.GenerationID == scope.ID {
			out = append(out, c)
		}
	}
	return out, nil
}

// WithTx implements store.FlashcardStore.
func (m *MockFlashcardStore) WithTx(*sql.Tx) store.FlashcardStore {
	return m
}
