package mock

import (
	"context"
	"fmt"

	"github.com/halcyard/raglet/ai"
)

// MockGenerator is a test double for ai.Generator.
type MockGenerator struct {
	// GenerateFunc is called by GenerateAnswer if set.
	// If nil, a canned answer echoing the query is returned.
	GenerateFunc func(ctx context.Context, query, contextBlock string) (string, error)

	callCount int
}

var _ ai.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a mock generator with default canned behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateAnswer returns the injected answer or a canned one.
func (m *MockGenerator) GenerateAnswer(ctx context.Context, query, contextBlock string) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, query, contextBlock)
	}
	return fmt.Sprintf("answer to %q based on %d context bytes", query, len(contextBlock)), nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
