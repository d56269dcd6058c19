package mocks

import (
	"context"
	"sync"

	"github.com/KKuznik/10x-cards/internal/store"
)

// MockTransactor implements store.Transactor without a database. fn runs
// with a nil *sql.Tx, which the store mocks accept in WithTx.
type MockTransactor struct {
	RunInTxFn func(ctx context.Context, fn store.TxFn) error

	mu    sync.Mutex
	count int
}

var _ store.Transactor = (*MockTransactor)(nil)

// RunInTx implements store.Transactor.
func (m *MockTransactor) RunInTx(ctx context.Context, fn store.TxFn) error {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()

	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	return fn(ctx, nil)
}

// CallCount returns how many transactions were started.
func (m *MockTransactor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}
