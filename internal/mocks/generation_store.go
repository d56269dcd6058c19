package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/KKuznik/10x-cards/internal/domain"
	"github.com/KKuznik/10x-cards/internal/store"
	"github.com/google/uuid"
)

// MockGenerationStore implements store.GenerationStore with an in-memory
// default.
type MockGenerationStore struct {
	CreateFn       func(ctx context.Context, g *domain.Generation) error
	GetByIDFn      func(ctx context.Context, scope store.Scope) (*domain.Generation, error)
	GetForUpdateFn func(ctx context.Context, scope store.Scope) (*domain.Generation, error)
	AddAcceptedFn  func(ctx context.Context, scope store.Scope, unedited, edited int, at time.Time) error
	ListFn         func(ctx context.Context, userID uuid.UUID, query domain.GenerationQuery) ([]*domain.Generation, error)
	StatisticsFn   func(ctx context.Context, userID uuid.UUID) (domain.GenerationStatistics, error)

	mu          sync.Mutex
	generations map[int64]*domain.Generation
	nextID      int64
}

var _ store.GenerationStore = (*MockGenerationStore)(nil)

// Add stores g directly, assigning an ID when it has none.
func (m *MockGenerationStore) Add(g *domain.Generation) *domain.Generation {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(g)
	return g
}

// Snapshot returns a copy of the stored generation with id.
func (m *MockGenerationStore) Snapshot(id int64) (domain.Generation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.generations[id]
	if !ok {
		return domain.Generation{}, false
	}
	return *g, true
}

// Len returns the number of stored generations.
func (m *MockGenerationStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generations)
}

func (m *MockGenerationStore) put(g *domain.Generation) {
	if m.generations == nil {
		m.generations = make(map[int64]*domain.Generation)
	}
	if g.ID == 0 {
		m.nextID++
		g.ID = m.nextID
	} else if g.ID > m.nextID {
		m.nextID = g.ID
	}
	stored := *g
	m.generations[g.ID] = &stored
}

func (m *MockGenerationStore) get(scope store.Scope) (*domain.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.generations[scope.ID]
	if !ok || g.UserID != scope.UserID {
		return nil, store.ErrGenerationNotFound
	}
	found := *g
	return &found, nil
}

// Create implements store.GenerationStore.
func (m *MockGenerationStore) Create(ctx context.Context, g *domain.Generation) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(g)
	return nil
}

// GetByID implements store.GenerationStore.
func (m *MockGenerationStore) GetByID(ctx context.Context, scope store.Scope) (*domain.Generation, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, scope)
	}
	return m.get(scope)
}

// GetForUpdate implements store.GenerationStore.
func (m *MockGenerationStore) GetForUpdate(ctx context.Context, scope store.Scope) (*domain.Generation, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, scope)
	}
	return m.get(scope)
}

// AddAccepted implements store.GenerationStore.
func (m *MockGenerationStore) AddAccepted(
	ctx context.Context,
	scope store.Scope,
	unedited, edited int,
	at time.Time,
) error {
	if m.AddAcceptedFn != nil {
		return m.AddAcceptedFn(ctx, scope, unedited, edited, at)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.generations[scope.ID]
	if !ok || g.UserID != scope.UserID {
		return store.ErrGenerationNotFound
	}
	u := valueOrZero(g.AcceptedUneditedCount) + unedited
	e := valueOrZero(g.AcceptedEditedCount) + edited
	g.AcceptedUneditedCount = &u
	g.AcceptedEditedCount = &e
	g.UpdatedAt = at
	return nil
}

// List implements store.GenerationStore.
func (m *MockGenerationStore) List(
	ctx context.Context,
	userID uuid.UUID,
	query domain.GenerationQuery,
) ([]*domain.Generation, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, query)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Generation, 0)
	for _, g := range m.generations {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

// Statistics implements store.GenerationStore.
func (m *MockGenerationStore) Statistics(ctx context.Context, userID uuid.UUID) (domain.GenerationStatistics, error) {
	if m.StatisticsFn != nil {
		return m.StatisticsFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var stats domain.GenerationStatistics
	for _, g := range m.generations {
		if g.UserID != userID {
			continue
		}
		stats.TotalGenerations++
		stats.TotalGenerated += g.GeneratedCount
		stats.TotalAccepted += g.TotalAccepted()
	}
	stats.OverallAcceptanceRate = domain.AcceptanceRate(stats.TotalAccepted, stats.TotalGenerated)
	return stats, nil
}

// WithTx implements store.GenerationStore.
func (m *MockGenerationStore) WithTx(*sql.Tx) store.GenerationStore {
	return m
}

// MockGenerationErrorLogStore implements store.GenerationErrorLogStore and
// keeps every entry it receives.
type MockGenerationErrorLogStore struct {
	CreateFn func(ctx context.Context, entry *domain.GenerationErrorLog) error

	mu      sync.Mutex
	entries []*domain.GenerationErrorLog
}

var _ store.GenerationErrorLogStore = (*MockGenerationErrorLogStore)(nil)

// Create implements store.GenerationErrorLogStore.
func (m *MockGenerationErrorLogStore) Create(ctx context.Context, entry *domain.GenerationErrorLog) error {
	m.mu.Lock()
	m.entries = append(m.entries, entry)
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	return nil
}

// Entries returns the recorded entries.
func (m *MockGenerationErrorLogStore) Entries() []*domain.GenerationErrorLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.GenerationErrorLog(nil), m.entries...)
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
