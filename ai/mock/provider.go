// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/poiesic/lexicon/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	definer *MockDefiner
	closed  bool
}

// NewMockProvider creates a new mock provider with a default mock definer.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockDefiner() to access the concrete type for test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		definer: NewMockDefiner(),
	}
}

// NewMockProviderWithDefiner creates a mock provider around a custom definer.
func NewMockProviderWithDefiner(definer *MockDefiner) ai.AIProvider {
	return &MockProvider{
		definer: definer,
	}
}

// Definer returns the mock definer.
func (p *MockProvider) Definer() ai.Definer {
	return p.definer
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close was called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockDefiner returns the underlying mock definer for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockDefiner() *MockDefiner {
	return p.definer
}
