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


// Package ai provides abstractions for the AI services used by lexicon.
//
// The only service today is dictionary lookup: a Definer returns the senses
// of a word or phrase, which the enrich package uses to fill in missing
// definitions. The lexicon's own search never calls out to a model.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewDefiner) return
// INTERFACE types so callers depend on the abstraction:
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockDefiner) return CONCRETE types so
// tests can inject behavior and read call counts:
//
//	definer := mock.NewMockDefiner()  // returns *mock.MockDefiner
//	definer.DefineFunc = ...
//	count := definer.CallCount()
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithModel("gpt-4o-mini"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	senses, err := provider.Definer().Define(ctx, "serendipity")
package ai
