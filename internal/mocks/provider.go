package mocks

import (
	"context"
	"sync"

	"github.com/KKuznik/10x-cards/internal/generation"
)

// GenerateCall records one Generate invocation.
type GenerateCall struct {
	SourceText string
	Model      string
}

// MockProvider implements generation.Provider.
type MockProvider struct {
	GenerateFn func(ctx context.Context, sourceText, model string) ([]generation.Proposal, error)

	// Proposals is returned when GenerateFn is nil.
	Proposals []generation.Proposal

	mu    sync.Mutex
	calls []GenerateCall
}

var _ generation.Provider = (*MockProvider)(nil)

// Generate implements generation.Provider.
func (m *MockProvider) Generate(ctx context.Context, sourceText, model string) ([]generation.Proposal, error) {
	m.mu.Lock()
	m.calls = append(m.calls, GenerateCall{SourceText: sourceText, Model: model})
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, sourceText, model)
	}
	return m.Proposals, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockProvider) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateCall(nil), m.calls...)
}

// CallCount returns how many times Generate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
