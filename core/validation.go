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


package core

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateEntry validates an Entry according to domain rules.
//
// Validation rules:
//   - Entry must not be nil
//   - Kind must be valid
//   - Primary text (name or body) must not be blank
//   - Tags must not be blank
//
// NOT validated:
//   - Definition, Notes, Source (all optional)
//   - ID (0 is valid until the store assigns one)
func ValidateEntry(e Entry) error {
	if e == nil || primaryRef(e) == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if err := ValidateKind(e.Kind()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	if strings.TrimSpace(PrimaryText(e)) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyPrimary)
	}

	for _, tag := range e.Meta().Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyTag)
		}
	}

	return nil
}

// primaryRef returns a pointer to the primary text, or nil when e is nil or
// a typed nil pointer.
func primaryRef(e Entry) *string {
	return Visit[*string](e, primaryTextRef{})
}

type primaryTextRef struct{}

func (primaryTextRef) VisitWord(w *Word) *string                 { return &w.Name }
func (primaryTextRef) VisitPhrase(p *Phrase) *string             { return &p.Body }
func (primaryTextRef) VisitQuote(q *Quote) *string               { return &q.Body }
func (primaryTextRef) VisitHypothetical(h *Hypothetical) *string { return &h.Body }

// ValidateKind validates that a Kind has a known value.
func ValidateKind(kind Kind) error {
	if !slices.Contains(Kinds, kind) {
		return fmt.Errorf("%w: value %d", ErrInvalidKind, kind)
	}
	return nil
}

// NormalizeTags lowercases and trims tags, drops blanks and duplicates and
// returns them sorted. Tags form a set, so order carries no meaning.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
