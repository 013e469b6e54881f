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


// Package search answers lexicon queries.
//
// A Searcher fetches the full filtered candidate set from an
// storage.EntryRepository (kind, tag and first-letter filters are applied by
// the store), orders it, and returns one page along with the total number of
// matches.
//
// When the query is non-blank the candidates are ordered by a ranking.Ranker,
// so every candidate is scored before pagination. A blank query skips the
// ranker: candidates are listed alphabetically by primary text with a score
// of 0.
package search
