package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/ziwei-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing.
type MockGenerator struct {
	// GenerateReadingFn overrides the static Content/Err response.
	GenerateReadingFn func(ctx context.Context, req generation.ReadingRequest) (string, error)

	Content string
	Err     error

	mu       sync.Mutex
	requests []generation.ReadingRequest
}

var _ generation.Generator = (*MockGenerator)(nil)

// GenerateReading records the request and returns the configured response.
func (m *MockGenerator) GenerateReading(ctx context.Context, req generation.ReadingRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateReadingFn != nil {
		return m.GenerateReadingFn(ctx, req)
	}
	return m.Content, m.Err
}

// Requests returns every request received so far.
func (m *MockGenerator) Requests() []generation.ReadingRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.ReadingRequest(nil), m.requests...)
}
