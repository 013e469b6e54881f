// Package mock provides test double implementations of AI service interfaces.
//
// MockDefiner and MockProvider let tests run without an external model and
// with controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	senses, err := provider.Definer().Define(ctx, "luck")
//
//	// Custom behavior injection
//	definer := mock.NewMockDefiner()
//	definer.DefineFunc = func(ctx context.Context, term string) ([]ai.Sense, error) {
//	    return nil, errors.New("service down")
//	}
//
//	// Check call counts
//	count := definer.CallCount()
//
// # Default Behavior
//
// MockDefiner returns a single noun sense whose definition is derived from
// the term, so the same term always yields the same answer.
package mock
