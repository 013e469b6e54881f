package ranking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Predicate reports whether a single field value matches the query.
// All predicates in this package fold case rune by rune with Unicode simple
// folding (the folding of strings.EqualFold and regexp's (?i)) and never trim
// either side.
type Predicate func(field, query string) bool

// Exact matches when field and query are equal under case folding.
func Exact(field, query string) bool {
	return strings.EqualFold(field, query)
}

// Prefix matches when field starts with query.
func Prefix(field, query string) bool {
	_, ok := foldPrefix(field, query)
	return ok
}

// WordBoundary matches when query occurs in field as a whole token, with the
// same semantics as the regular expression `(?i)\b` + QuoteMeta(query) + `\b`.
// Query characters are always taken literally. No pattern is compiled.
func WordBoundary(field, query string) bool {
	for start := 0; ; {
		if n, ok := foldPrefix(field[start:], query); ok &&
			isBoundary(field, start) && isBoundary(field, start+n) {
			return true
		}
		if start == len(field) {
			return false
		}
		_, size := utf8.DecodeRuneInString(field[start:])
		start += size
	}
}

// Substring matches when field contains query anywhere.
func Substring(field, query string) bool {
	for start := 0; ; {
		if _, ok := foldPrefix(field[start:], query); ok {
			return true
		}
		if start == len(field) {
			return false
		}
		_, size := utf8.DecodeRuneInString(field[start:])
		start += size
	}
}

// foldPrefix reports whether s begins with prefix under simple case folding
// and returns the length in bytes of the part of s that matched.
func foldPrefix(s, prefix string) (int, bool) {
	n := 0
	for _, want := range prefix {
		if n >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[n:])
		if !equalFoldRune(got, want) {
			return 0, false
		}
		n += size
	}
	return n, true
}

// equalFoldRune reports whether a and b lie in the same simple folding orbit.
func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// isBoundary mirrors regexp's \b: the bytes on either side of pos differ in
// ASCII word-ness. Positions outside s count as non-word.
func isBoundary(s string, pos int) bool {
	before := pos > 0 && isWordByte(s[pos-1])
	after := pos < len(s) && isWordByte(s[pos])
	return before != after
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}
