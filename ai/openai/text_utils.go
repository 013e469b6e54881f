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


package openai

import "strings"

// cleanTerm collapses runs of whitespace and trims the ends.
func cleanTerm(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripCodeFences removes a surrounding markdown code block, which some
// models emit even in JSON mode.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON restores the opening quote that small models sometimes drop
// from object keys, e.g. `{definition": "x"}` becomes `{"definition": "x"}`.
// Input that does not show the problem is returned unchanged.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 16)

	i := 0
	for i < len(s) {
		ch := s[i]
		b.WriteByte(ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		for i < len(s) && isSpace(s[i]) {
			b.WriteByte(s[i])
			i++
		}
		if i >= len(s) || !isLetter(s[i]) {
			continue
		}

		// Candidate key: letters and underscores up to a closing `":`
		end := i
		for end < len(s) && (isLetter(s[end]) || s[end] == '_') {
			end++
		}
		if end+1 < len(s) && s[end] == '"' && s[end+1] == ':' {
			b.WriteByte('"')
		}
		b.WriteString(s[i:end])
		i = end
	}

	return b.String()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

// isLetter returns true if the byte is an ASCII letter.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
