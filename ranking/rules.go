package ranking

import (
	"fmt"
	"slices"
)

// Rule pairs a field extractor with a match predicate.
type Rule struct {
	// Name identifies the rule in score breakdowns.
	Name string

	Extract Extractor
	Match   Predicate
}

// RuleTable is an ordered list of rules. Position is priority: index 0 is
// the most important rule. A RuleTable cannot be modified once built and is
// safe for concurrent use.
type RuleTable struct {
	rules []Rule
}

// NewRuleTable builds a rule table from rules in priority order.
func NewRuleTable(rules ...Rule) (*RuleTable, error) {
	if len(rules) == 0 {
		return nil, ErrEmptyRuleTable
	}
	for i, rule := range rules {
		if rule.Extract == nil || rule.Match == nil {
			return nil, fmt.Errorf("%w: rule %d (%q) needs an extractor and a predicate", ErrInvalidRule, i, rule.Name)
		}
	}
	return &RuleTable{rules: slices.Clone(rules)}, nil
}

var defaultRules = mustRuleTable(
	Rule{Name: "primary-exact", Extract: Primary, Match: Exact},
	Rule{Name: "primary-prefix", Extract: Primary, Match: Prefix},
	Rule{Name: "primary-word", Extract: Primary, Match: WordBoundary},
	Rule{Name: "primary-substring", Extract: Primary, Match: Substring},
	Rule{Name: "definition-word", Extract: Definition, Match: WordBoundary},
	Rule{Name: "tags-substring", Extract: Tags, Match: Substring},
	Rule{Name: "definition-substring", Extract: Definition, Match: Substring},
	Rule{Name: "notes-substring", Extract: Notes, Match: Substring},
	Rule{Name: "source-substring", Extract: QuoteSource, Match: Substring},
)

// DefaultRules returns the standard lexicon rule table:
//
//  1. primary text, exact
//  2. primary text, prefix
//  3. primary text, whole word
//  4. primary text, substring
//  5. definition, whole word
//  6. any tag, substring
//  7. definition, substring
//  8. notes, substring
//  9. quote source, substring
func DefaultRules() *RuleTable {
	return defaultRules
}

func mustRuleTable(rules ...Rule) *RuleTable {
	t, err := NewRuleTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in priority order.
func (t *RuleTable) Rules() []Rule {
	return slices.Clone(t.rules)
}

// Weight returns the score contributed by the rule at index i.
// Returns 0 when i is out of range.
func (t *RuleTable) Weight(i int) int {
	return Weight(len(t.rules), i)
}

// Weight returns (n-i)^2, the weight of rule i in an n-rule table, or 0 when
// i is not a valid index.
func Weight(n, i int) int {
	if i < 0 || i >= n {
		return 0
	}
	d := n - i
	return d * d
}
