package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/lexicon/ai"
)

// MockDefiner is a test double for ai.Definer.
// It allows custom behavior injection via function fields.
type MockDefiner struct {
	// DefineFunc is called by Define if set.
	// If nil, uses default deterministic behavior.
	DefineFunc func(ctx context.Context, term string) ([]ai.Sense, error)

	mu        sync.Mutex
	callCount int
	terms     []string
}

var _ ai.Definer = (*MockDefiner)(nil)

// NewMockDefiner creates a mock definer with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockDefiner() *MockDefiner {
	return &MockDefiner{}
}

// Define records the call and returns DefineFunc's result, or a single noun
// sense "definition of <term>".
func (m *MockDefiner) Define(ctx context.Context, term string) ([]ai.Sense, error) {
	m.mu.Lock()
	m.callCount++
	m.terms = append(m.terms, term)
	fn := m.DefineFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, term)
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ai.ErrEmptyTerm
	}
	return []ai.Sense{{
		PartOfSpeech: "noun",
		Definition:   "definition of " + strings.ToLower(term),
	}}, nil
}

// CallCount returns the number of times Define was called.
func (m *MockDefiner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Terms returns the terms Define was called with, in call order.
func (m *MockDefiner) Terms() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.terms...)
}

// Reset clears the call history and custom behavior.
func (m *MockDefiner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.terms = nil
	m.DefineFunc = nil
}
