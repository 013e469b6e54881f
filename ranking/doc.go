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


// Package ranking scores lexicon entries against a free-text query.
//
// Scoring is driven by a RuleTable: an ordered, immutable list of rules,
// each pairing a field Extractor with a match Predicate. A rule at index i
// of an N-rule table contributes (N-i)^2 to an entry's score when it
// matches, so earlier rules dominate later ones. The default table ranks
// hits on an entry's primary text (exact, prefix, whole word, substring)
// above hits on its definition and tags, which in turn rank above hits on
// notes and quote sources.
//
// A Ranker scores a candidate set and stable-sorts it by descending score.
// Large candidate sets are scored on an ants worker pool. Paginate slices
// the ranked list into a page while keeping the total count.
//
// Nothing in this package performs I/O. Filtering the candidate set is the
// caller's job; see package search.
package ranking
