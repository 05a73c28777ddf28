package mocks

import (
	"context"
	"sync"

	"github.com/billdonner/obo-gen/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateDeckFn allows test cases to mock the GenerateDeck behavior
	GenerateDeckFn func(ctx context.Context, req generation.Request) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateDeckCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times GenerateDeck was called
		Count int

		// Requests contains all requests passed to GenerateDeck calls
		Requests []generation.Request
	}
}

// Ensure MockGenerator implements generation.Generator interface
var _ generation.Generator = (*MockGenerator)(nil)

// GenerateDeck implements the generation.Generator interface
func (m *MockGenerator) GenerateDeck(ctx context.Context, req generation.Request) (string, error) {
	m.GenerateDeckCalls.mu.Lock()
	m.GenerateDeckCalls.Count++
	m.GenerateDeckCalls.Requests = append(m.GenerateDeckCalls.Requests, req)
	m.GenerateDeckCalls.mu.Unlock()

	if m.GenerateDeckFn != nil {
		return m.GenerateDeckFn(ctx, req)
	}

	return m.Text, m.Err
}

// CallCount returns the number of GenerateDeck calls.
func (m *MockGenerator) CallCount() int {
	m.GenerateDeckCalls.mu.Lock()
	defer m.GenerateDeckCalls.mu.Unlock()
	return m.GenerateDeckCalls.Count
}

// LastRequest returns the most recent request, or the zero Request.
func (m *MockGenerator) LastRequest() generation.Request {
	m.GenerateDeckCalls.mu.Lock()
	defer m.GenerateDeckCalls.mu.Unlock()
	if len(m.GenerateDeckCalls.Requests) == 0 {
		return generation.Request{}
	}
	return m.GenerateDeckCalls.Requests[len(m.GenerateDeckCalls.Requests)-1]
}

// NewMockGeneratorWithText creates a MockGenerator that returns text
func NewMockGeneratorWithText(text string) *MockGenerator {
	return &MockGenerator{Text: text}
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
