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


// Package storage provides the storage abstraction layer for lexicon.
//
// This package defines repository interfaces that decouple storage implementation
// from the search and enrichment code. The ranking engine never talks to storage
// directly: the search layer fetches a filtered candidate set through
// EntryRepository and hands it to the ranker.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return concrete types, and
// every concrete type asserts the interface it implements:
//
//	var _ storage.EntryRepository = (*EntryRepository)(nil)
//
// # Architecture
//
//   - Repository: operations shared by all repositories
//   - EntryRepository: CRUD and filtered listing of lexicon entries
//   - TagRepository: tag usage counts
//
// # Usage
//
// Create repositories over a BadgerDB backend:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	entries, err := badger.NewEntryRepository(backend)
//
// Use in tests with in-memory storage:
//
//	entryRepo, tagRepo, backend, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
