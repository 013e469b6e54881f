package core

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for lexicon entries.
// It is generated from database sequences or by content hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Kind discriminates the entry variants.
type Kind int

const (
	// KindWord is a single word with a definition.
	KindWord Kind = iota + 1
	// KindPhrase is an idiom or multi-word expression.
	KindPhrase
	// KindQuote is an attributed quotation.
	KindQuote
	// KindHypothetical is a "what if" scenario.
	KindHypothetical
)

// Kinds lists every valid Kind in declaration order.
var Kinds = []Kind{KindWord, KindPhrase, KindQuote, KindHypothetical}

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindPhrase:
		return "phrase"
	case KindQuote:
		return "quote"
	case KindHypothetical:
		return "hypothetical"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name ("word", "phrase", ...) to a Kind.
// Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Header holds the stored-record attributes shared by every entry variant.
type Header struct {
	Id         ID
	Tags       []string
	InsertedAt time.Time // When the entry was inserted into the database
	UpdatedAt  time.Time // When the entry was last updated
}

// Meta returns the header itself so embedding structs satisfy Entry.
func (h *Header) Meta() *Header {
	return h
}

// Entry is one stored lexicon item. The set of implementations is closed:
// *Word, *Phrase, *Quote and *Hypothetical.
type Entry interface {
	Kind() Kind
	Meta() *Header
	entry()
}

// Word is a single vocabulary item.
type Word struct {
	Header
	Name       string
	Definition string
	Notes      string
}

// Phrase is a multi-word expression.
type Phrase struct {
	Header
	Body       string
	Definition string
	Notes      string
}

// Quote is a quotation with an optional attribution.
type Quote struct {
	Header
	Body   string
	Source string
	Notes  string
}

// Hypothetical is a "what would you do if" scenario.
type Hypothetical struct {
	Header
	Body  string
	Notes string
}

func (*Word) Kind() Kind         { return KindWord }
func (*Phrase) Kind() Kind       { return KindPhrase }
func (*Quote) Kind() Kind        { return KindQuote }
func (*Hypothetical) Kind() Kind { return KindHypothetical }

func (*Word) entry()         {}
func (*Phrase) entry()       {}
func (*Quote) entry()        {}
func (*Hypothetical) entry() {}

// Visitor has one method per entry variant. Code that must handle every
// variant implements Visitor so a new variant fails to compile until it is
// handled everywhere.
type Visitor[T any] interface {
	VisitWord(w *Word) T
	VisitPhrase(p *Phrase) T
	VisitQuote(q *Quote) T
	VisitHypothetical(h *Hypothetical) T
}

// Visit dispatches e to the matching Visitor method.
// Nil entries (including typed nil pointers) yield the zero value of T.
func Visit[T any](e Entry, v Visitor[T]) T {
	var zero T
	switch e := e.(type) {
	case *Word:
		if e != nil {
			return v.VisitWord(e)
		}
	case *Phrase:
		if e != nil {
			return v.VisitPhrase(e)
		}
	case *Quote:
		if e != nil {
			return v.VisitQuote(e)
		}
	case *Hypothetical:
		if e != nil {
			return v.VisitHypothetical(e)
		}
	}
	return zero
}

type primaryText struct{}

var _ Visitor[string] = primaryText{}

func (primaryText) VisitWord(w *Word) string                 { return w.Name }
func (primaryText) VisitPhrase(p *Phrase) string             { return p.Body }
func (primaryText) VisitQuote(q *Quote) string               { return q.Body }
func (primaryText) VisitHypothetical(h *Hypothetical) string { return h.Body }

// PrimaryText returns the text that identifies an entry: the name of a Word
// or the body of any other variant. Returns "" for a nil entry.
func PrimaryText(e Entry) string {
	return Visit[string](e, primaryText{})
}

// NewEntry returns an empty entry of the given kind.
func NewEntry(kind Kind) (Entry, error) {
	switch kind {
	case KindWord:
		return &Word{}, nil
	case KindPhrase:
		return &Phrase{}, nil
	case KindQuote:
		return &Quote{}, nil
	case KindHypothetical:
		return &Hypothetical{}, nil
	}
	return nil, fmt.Errorf("%w: value %d", ErrInvalidKind, kind)
}

// TagCount reports how many entries carry a tag.
type TagCount struct {
	Tag   string
	Count int
}
