// Package mocks provides hand-written test doubles for the store, provider,
// auth and service interfaces.
//
// Every mock has one function field per method. When a field is nil the
// mock falls back to a default: the store mocks keep rows in memory so
// service tests can observe what was written, and the other mocks return
// zero values. Calls are recorded under a mutex for later assertions:
//
//	provider := &mocks.MockProvider{
//	    GenerateFn: func(ctx context.Context, text, model string) ([]generation.Proposal, error) {
//	        return nil, generation.Unavailable("stub", 500, "boom")
//	    },
//	}
//	// ...
//	assert.Equal(t, 1, provider.CallCount())
package mocks
