package ranking

import "github.com/poiesic/lexicon/core"

// Extractor pulls the text relevant to one rule out of an entry.
// A nil result means the entry has no such field; empty strings are
// skipped by the scorer.
type Extractor func(core.Entry) []string

// Each extractor is a core.Visitor so that a new entry variant fails to
// compile until every field is taught about it.
var (
	_ core.Visitor[[]string] = primaryField{}
	_ core.Visitor[[]string] = definitionField{}
	_ core.Visitor[[]string] = tagsField{}
	_ core.Visitor[[]string] = notesField{}
	_ core.Visitor[[]string] = sourceField{}
)

// Primary returns the defining text of an entry: a word's name, or the body
// of a phrase, quote or hypothetical.
func Primary(e core.Entry) []string {
	return core.Visit[[]string](e, primaryField{})
}

// Definition returns the definition of a word or phrase.
func Definition(e core.Entry) []string {
	return core.Visit[[]string](e, definitionField{})
}

// Tags returns the tag set of any entry.
func Tags(e core.Entry) []string {
	return core.Visit[[]string](e, tagsField{})
}

// Notes returns the free-form notes of any entry.
func Notes(e core.Entry) []string {
	return core.Visit[[]string](e, notesField{})
}

// QuoteSource returns the attribution of a quote.
func QuoteSource(e core.Entry) []string {
	return core.Visit[[]string](e, sourceField{})
}

type primaryField struct{}

func (primaryField) VisitWord(w *core.Word) []string                 { return present(w.Name) }
func (primaryField) VisitPhrase(p *core.Phrase) []string             { return present(p.Body) }
func (primaryField) VisitQuote(q *core.Quote) []string               { return present(q.Body) }
func (primaryField) VisitHypothetical(h *core.Hypothetical) []string { return present(h.Body) }

type definitionField struct{}

func (definitionField) VisitWord(w *core.Word) []string               { return present(w.Definition) }
func (definitionField) VisitPhrase(p *core.Phrase) []string           { return present(p.Definition) }
func (definitionField) VisitQuote(*core.Quote) []string               { return nil }
func (definitionField) VisitHypothetical(*core.Hypothetical) []string { return nil }

type tagsField struct{}

func (tagsField) VisitWord(w *core.Word) []string                 { return w.Tags }
func (tagsField) VisitPhrase(p *core.Phrase) []string             { return p.Tags }
func (tagsField) VisitQuote(q *core.Quote) []string               { return q.Tags }
func (tagsField) VisitHypothetical(h *core.Hypothetical) []string { return h.Tags }

type notesField struct{}

func (notesField) VisitWord(w *core.Word) []string                 { return present(w.Notes) }
func (notesField) VisitPhrase(p *core.Phrase) []string             { return present(p.Notes) }
func (notesField) VisitQuote(q *core.Quote) []string               { return present(q.Notes) }
func (notesField) VisitHypothetical(h *core.Hypothetical) []string { return present(h.Notes) }

type sourceField struct{}

func (sourceField) VisitWord(*core.Word) []string                 { return nil }
func (sourceField) VisitPhrase(*core.Phrase) []string             { return nil }
func (sourceField) VisitQuote(q *core.Quote) []string             { return present(q.Source) }
func (sourceField) VisitHypothetical(*core.Hypothetical) []string { return nil }

func present(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
