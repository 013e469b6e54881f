package ranking

import (
	"regexp"
	"strings"
	"testing"

	"github.com/poiesic/lexicon/core"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		field, query string
		exact        bool
		prefix       bool
		word         bool
		substring    bool
	}{
		{"Serendipity", "serendipity", true, true, true, true},
		{"serendipity", "SEREN", false, true, false, true},
		{"break a leg", "a", false, false, true, true},
		{"break a leg", "leg", false, false, true, true},
		{"break a leg", "eak", false, false, false, true},
		{"irony", "iron", false, true, false, true},
		{"luck ", "luck", false, true, true, true},
		{" luck", "luck", false, false, true, true},
		{"axb", "a.b", false, false, false, false},
		{"see a.b here", "a.b", false, false, true, true},
		{"f(x) = y", "f(x)", false, true, false, true},
		{"call f(x)", "f(x)", false, false, false, true},
		{"2*3", "*", false, false, true, true},
		{"snake_case", "snake", false, true, false, true},
		{"café au lait", "café", false, true, false, true},
		{"au café", "au", false, true, true, true},
		{"", "x", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.exact, Exact(tt.field, tt.query), "exact")
			assert.Equal(t, tt.prefix, Prefix(tt.field, tt.query), "prefix")
			assert.Equal(t, tt.word, WordBoundary(tt.field, tt.query), "word boundary")
			assert.Equal(t, tt.substring, Substring(tt.field, tt.query), "substring")
		})
	}
}

func TestExact_NoTrimming(t *testing.T) {
	assert.False(t, Exact("luck ", "luck"))
	assert.False(t, Exact("luck", " luck"))
}

// WordBoundary must agree with the equivalent escaped regular expression.
func TestWordBoundary_MatchesRegexp(t *testing.T) {
	fields := []string{
		"a fortunate discovery",
		"serendipity's cousin",
		"(parenthetical) remark",
		"price: $5.00 today",
		"under_score and dash-word",
		"ends with dot.",
		"x+y=z",
		"a.b.c",
		"",
		"  ",
		"naïve résumé",
		"ſun and sun",
		"İstanbul",
		"KELVIN \u212a",
	}
	queries := []string{
		"a", "fortunate", "discovery", "serendipity", "cousin", "(parenthetical)",
		"parenthetical", "$5.00", "5.00", "under", "under_score", "dash",
		"dot.", "dot", "x+y", "y", "a.b", "b.c", ".", " ", "naïve", "sum",
		"SUN", "ſ", "s", "i", "istanbul", "k", "\u212a",
	}

	for _, field := range fields {
		for _, query := range queries {
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(query) + `\b`)
			assert.Equal(t, re.MatchString(field), WordBoundary(field, query),
				"field %q query %q", field, query)
		}
	}
}

func TestWordBoundary_RegexMetacharacters(t *testing.T) {
	for _, query := range []string{".", "*", "(", ")", "[", "\\", "a.b", ".*", "?", "+", "|", "^", "$"} {
		assert.NotPanics(t, func() {
			WordBoundary("some text (with) [brackets] a*b", query)
		}, query)
	}
	assert.False(t, WordBoundary("axb", "a.b"))
	assert.False(t, WordBoundary("anything", ".*"))
}

// Every predicate folds case the same way Exact does.
func TestPredicates_UnicodeFolding(t *testing.T) {
	tests := []struct {
		field, query string
		equal        bool
	}{
		{"ſun", "sun", true},
		{"sun", "ſun", true},
		{"\u212aelvin", "kelvin", true},
		{"İstanbul", "istanbul", false},
		{"ǅ", "ǆ", true},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.equal, Exact(tt.field, tt.query), "exact")
			assert.Equal(t, tt.equal, Prefix(tt.field, tt.query), "prefix")
			assert.Equal(t, tt.equal, Substring(tt.field, tt.query), "substring")
			assert.Equal(t, tt.equal, Substring("x "+tt.field, tt.query), "substring at offset")
		})
	}

	assert.False(t, Prefix("İstanbul", "i"))
	assert.True(t, Prefix("İstanbul", "İS"))
}

func TestScore_CaseInsensitiveUnicode(t *testing.T) {
	entries := []core.Entry{
		&core.Word{Name: "ſun"},
		&core.Word{Name: "\u212aelvin scale"},
		&core.Phrase{Body: "İstanbul nights"},
	}
	queries := []string{"ſ", "s", "ſun", "k", "kelvin", "i", "nights"}

	for _, entry := range entries {
		for _, q := range queries {
			want := Score(entry, q)
			assert.Equal(t, want, Score(entry, strings.ToUpper(q)), "entry %q query %q upper", core.PrimaryText(entry), q)
			assert.Equal(t, want, Score(entry, strings.ToLower(q)), "entry %q query %q lower", core.PrimaryText(entry), q)
		}
	}

	assert.Equal(t, 100, Score(&core.Word{Name: "ſun"}, "S"))
}
