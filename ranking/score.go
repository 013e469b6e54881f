package ranking

import (
	"strings"

	"github.com/poiesic/lexicon/core"
)

// RuleMatch records one rule that matched during scoring.
type RuleMatch struct {
	Index  int
	Name   string
	Weight int
}

// Breakdown explains how a score was reached.
type Breakdown struct {
	Score   int
	Matches []RuleMatch
}

// Score returns the sum of the weights of every rule in t that matches e.
// A blank query scores 0 without evaluating any rule.
func (t *RuleTable) Score(e core.Entry, query string) int {
	if isBlank(query) {
		return 0
	}
	score := 0
	for i, rule := range t.rules {
		if ruleMatches(rule, e, query) {
			score += t.Weight(i)
		}
	}
	return score
}

// Explain scores e like Score and reports which rules contributed.
func (t *RuleTable) Explain(e core.Entry, query string) Breakdown {
	var b Breakdown
	if isBlank(query) {
		return b
	}
	for i, rule := range t.rules {
		if !ruleMatches(rule, e, query) {
			continue
		}
		w := t.Weight(i)
		b.Score += w
		b.Matches = append(b.Matches, RuleMatch{Index: i, Name: rule.Name, Weight: w})
	}
	return b
}

// Score scores e against query using DefaultRules.
func Score(e core.Entry, query string) int {
	return defaultRules.Score(e, query)
}

// Explain explains the score of e against query using DefaultRules.
func Explain(e core.Entry, query string) Breakdown {
	return defaultRules.Explain(e, query)
}

// ruleMatches reports whether any non-empty value the rule extracts
// satisfies its predicate.
func ruleMatches(rule Rule, e core.Entry, query string) bool {
	for _, value := range rule.Extract(e) {
		if value != "" && rule.Match(value, query) {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
