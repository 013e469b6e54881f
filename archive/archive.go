package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/oklog/ulid/v2"
	"github.com/poiesic/lexicon/core"
	"github.com/poiesic/lexicon/storage"
)

// FormatVersion is the archive layout written by Export.
const FormatVersion = 1

var (
	// ErrInvalidArchive is returned when a stream is not a readable archive.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrUnsupportedVersion is returned for archives written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported archive version")
)

// Manifest leads every archive.
type Manifest struct {
	Version   int    `cbor:"version"`
	ExportID  string `cbor:"export_id"` // ULID, sortable by export time
	CreatedAt int64  `cbor:"created_at"` // Unix seconds
	Count     int    `cbor:"count"`
}

// Record is the portable form of one entry.
type Record struct {
	Kind       string   `cbor:"kind"`
	Text       string   `cbor:"text"`
	Definition string   `cbor:"definition,omitempty"`
	Source     string   `cbor:"source,omitempty"`
	Notes      string   `cbor:"notes,omitempty"`
	Tags       []string `cbor:"tags,omitempty"`
}

// ImportReport counts the outcome of Import.
type ImportReport struct {
	Imported int
	Skipped  int // duplicates already present in the store
}

// Export writes every entry in repo to w.
func Export(ctx context.Context, repo storage.EntryRepository, w io.Writer) (*Manifest, error) {
	entries, err := repo.ListEntries(ctx, storage.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	now := time.Now()
	manifest := &Manifest{
		Version:   FormatVersion,
		ExportID:  ulid.MustNew(ulid.Timestamp(now), rand.New(rand.NewSource(now.UnixNano()))).String(),
		CreatedAt: now.Unix(),
		Count:     len(entries),
	}

	enc := cbor.NewEncoder(w)
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	for _, entry := range entries {
		if err := enc.Encode(ToRecord(entry)); err != nil {
			return nil, fmt.Errorf("failed to write entry %d: %w", entry.Meta().Id, err)
		}
	}
	return manifest, nil
}

// Import reads an archive from r and adds its entries to repo. Entries that
// already exist are skipped. Each entry is added in its own transaction, so
// an error leaves the entries before it in place.
func Import(ctx context.Context, repo storage.EntryRepository, r io.Reader) (*ImportReport, error) {
	dec := cbor.NewDecoder(r)

	var manifest Manifest
	if err := dec.Decode(&manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	if manifest.Version < 1 || manifest.Version > FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, manifest.Version)
	}

	report := &ImportReport{}
	for i := range manifest.Count {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return report, fmt.Errorf("%w: record %d of %d: %v", ErrInvalidArchive, i+1, manifest.Count, err)
		}

		entry, err := rec.Entry()
		if err != nil {
			return report, fmt.Errorf("record %d: %w", i+1, err)
		}

		if _, err := repo.AddEntries(ctx, entry); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				report.Skipped++
				continue
			}
			return report, fmt.Errorf("record %d: %w", i+1, err)
		}
		report.Imported++
	}
	return report, nil
}

// ToRecord converts an entry to its portable form.
func ToRecord(entry core.Entry) Record {
	rec := core.Visit[Record](entry, recordOf{})
	rec.Kind = entry.Kind().String()
	rec.Tags = entry.Meta().Tags
	return rec
}

type recordOf struct{}

var _ core.Visitor[Record] = recordOf{}

func (recordOf) VisitWord(w *core.Word) Record {
	return Record{Text: w.Name, Definition: w.Definition, Notes: w.Notes}
}

func (recordOf) VisitPhrase(p *core.Phrase) Record {
	return Record{Text: p.Body, Definition: p.Definition, Notes: p.Notes}
}

func (recordOf) VisitQuote(q *core.Quote) Record {
	return Record{Text: q.Body, Source: q.Source, Notes: q.Notes}
}

func (recordOf) VisitHypothetical(h *core.Hypothetical) Record {
	return Record{Text: h.Body, Notes: h.Notes}
}

// Entry converts the record back to a new, unsaved entry.
func (r Record) Entry() (core.Entry, error) {
	kind, err := core.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}

	header := core.Header{Tags: r.Tags}
	switch kind {
	case core.KindWord:
		return &core.Word{Header: header, Name: r.Text, Definition: r.Definition, Notes: r.Notes}, nil
	case core.KindPhrase:
		return &core.Phrase{Header: header, Body: r.Text, Definition: r.Definition, Notes: r.Notes}, nil
	case core.KindQuote:
		return &core.Quote{Header: header, Body: r.Text, Source: r.Source, Notes: r.Notes}, nil
	default:
		return &core.Hypothetical{Header: header, Body: r.Text, Notes: r.Notes}, nil
	}
}
