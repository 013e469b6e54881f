package badger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lexicon/core"
	"github.com/poiesic/lexicon/storage"
)

// EntryRepository implements storage.EntryRepository for BadgerDB.
type EntryRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.EntryRepository = (*EntryRepository)(nil)

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(backend *Backend) (*EntryRepository, error) {
	idSeq, err := backend.GetSequence(entryIDSeq)
	if err != nil {
		return nil, err
	}

	return &EntryRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *EntryRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *EntryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEntries adds one or more entries to storage.
func (r *EntryRepository) AddEntries(ctx context.Context, entries ...core.Entry) ([]core.Entry, error) {
	for _, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return nil, err
		}
	}

	// Headers are filled in before encoding; restore them if nothing commits
	saved := make([]core.Header, len(entries))
	for i, entry := range entries {
		saved[i] = *entry.Meta()
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			meta := entry.Meta()
			meta.Tags = core.NormalizeTags(meta.Tags)

			exists, err := keyExists(tx, makePrimaryKey(entry))
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: %s %q", storage.ErrDuplicateKey, entry.Kind(), core.PrimaryText(entry))
			}

			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			meta.Id = core.ID(nextID)
			meta.InsertedAt = now()
			meta.UpdatedAt = meta.InsertedAt

			if err := tx.Set(makeEntryKey(meta.Id), storage.MarshalEntry(entry)); err != nil {
				return err
			}
			if err := writeIndices(tx, entry); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		for i, entry := range entries {
			*entry.Meta() = saved[i]
		}
		return nil, err
	}

	return entries, nil
}

// now returns the current time at the microsecond precision entries are
// stored with.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// UpdateEntries replaces existing entries.
func (r *EntryRepository) UpdateEntries(ctx context.Context, entries ...core.Entry) ([]core.Entry, error) {
	for _, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return nil, err
		}
	}

	saved := make([]core.Header, len(entries))
	for i, entry := range entries {
		saved[i] = *entry.Meta()
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			meta := entry.Meta()
			key := makeEntryKey(meta.Id)

			old, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return fmt.Errorf("%w: id %d", storage.ErrNotFound, meta.Id)
			}

			// A renamed entry must not collide with another entry
			primaryKey := makePrimaryKey(entry)
			if item, err := tx.Get(primaryKey); err == nil {
				var owner core.ID
				if err := item.Value(func(val []byte) error {
					var err error
					owner, err = storage.UnmarshalID(val)
					return err
				}); err != nil {
					return err
				}
				if owner != meta.Id {
					return fmt.Errorf("%w: %s %q", storage.ErrDuplicateKey, entry.Kind(), core.PrimaryText(entry))
				}
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			if err := deleteIndices(tx, old); err != nil {
				return err
			}

			meta.Tags = core.NormalizeTags(meta.Tags)
			meta.InsertedAt = old.Meta().InsertedAt
			meta.UpdatedAt = now()

			if err := tx.Set(key, storage.MarshalEntry(entry)); err != nil {
				return err
			}
			if err := writeIndices(tx, entry); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		for i, entry := range entries {
			*entry.Meta() = saved[i]
		}
		return nil, err
	}

	return entries, nil
}

// DeleteEntries removes entries by their IDs.
func (r *EntryRepository) DeleteEntries(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(id)

			entry, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w: id %d", storage.ErrNotFound, id)
			}

			if err := deleteIndices(tx, entry); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single entry by ID.
func (r *EntryRepository) GetEntry(ctx context.Context, id core.ID) (core.Entry, error) {
	var result core.Entry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEntry(tx, makeEntryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetEntries retrieves multiple entries by their IDs.
func (r *EntryRepository) GetEntries(ctx context.Context, ids ...core.ID) ([]core.Entry, error) {
	var result []core.Entry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			entry, err := readEntry(tx, makeEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				result = append(result, entry)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListEntries returns every entry matching the filter, ordered by ID.
// The most selective index available is used to collect candidates; the
// remaining filters are applied to the decoded entries.
func (r *EntryRepository) ListEntries(ctx context.Context, filter storage.Filter) ([]core.Entry, error) {
	if filter.Kind != 0 {
		if err := core.ValidateKind(filter.Kind); err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrInvalidQuery, err)
		}
	}
	letter := strings.TrimSpace(filter.Letter)
	if utf8.RuneCountInString(letter) > 1 {
		return nil, fmt.Errorf("%w: letter filter must be a single character, got %q", storage.ErrInvalidQuery, filter.Letter)
	}
	tags := core.NormalizeTags(filter.Tags)

	var results []core.Entry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var ids []core.ID
		switch {
		case len(tags) > 0:
			if err := scanKeys(tx, makePartialTagKey(tags[0]), func(key []byte) error {
				ids = append(ids, idFromKeySuffix(key))
				return nil
			}); err != nil {
				return err
			}
		case filter.Kind != 0:
			if err := scanKeys(tx, makePartialKindKey(filter.Kind), func(key []byte) error {
				ids = append(ids, idFromKeySuffix(key))
				return nil
			}); err != nil {
				return err
			}
		default:
			return scanValues(tx, []byte(entryPrefix), func(_, val []byte) error {
				entry, err := storage.UnmarshalEntry(val)
				if err != nil {
					return err
				}
				if matchesFilter(entry, filter.Kind, tags, letter) {
					results = append(results, entry)
				}
				return nil
			})
		}

		for _, id := range ids {
			entry, err := readEntry(tx, makeEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil && matchesFilter(entry, filter.Kind, tags, letter) {
				results = append(results, entry)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b core.Entry) int {
		ai, bi := a.Meta().Id, b.Meta().Id
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	})
	return results, nil
}

// Helper methods

// matchesFilter applies the kind, tag and first-letter filters to an entry.
// tags must already be normalized.
func matchesFilter(entry core.Entry, kind core.Kind, tags []string, letter string) bool {
	if kind != 0 && entry.Kind() != kind {
		return false
	}
	for _, tag := range tags {
		if !slices.Contains(entry.Meta().Tags, tag) {
			return false
		}
	}
	if letter != "" {
		first, _ := utf8.DecodeRuneInString(strings.TrimSpace(core.PrimaryText(entry)))
		want, _ := utf8.DecodeRuneInString(letter)
		if unicode.ToLower(first) != unicode.ToLower(want) {
			return false
		}
	}
	return true
}

// writeIndices stores the primary, kind and tag indices and bumps tag counts.
func writeIndices(tx *badger.Txn, entry core.Entry) error {
	meta := entry.Meta()
	if err := tx.Set(makePrimaryKey(entry), storage.MarshalID(meta.Id)); err != nil {
		return err
	}
	if err := tx.Set(makeKindKey(entry.Kind(), meta.Id), nil); err != nil {
		return err
	}
	for _, tag := range meta.Tags {
		if err := tx.Set(makeTagKey(tag, meta.Id), nil); err != nil {
			return err
		}
		if err := adjustTagCount(tx, tag, 1); err != nil {
			return err
		}
	}
	return nil
}

// deleteIndices removes everything writeIndices stored for entry.
func deleteIndices(tx *badger.Txn, entry core.Entry) error {
	meta := entry.Meta()
	if err := tx.Delete(makePrimaryKey(entry)); err != nil {
		return err
	}
	if err := tx.Delete(makeKindKey(entry.Kind(), meta.Id)); err != nil {
		return err
	}
	for _, tag := range meta.Tags {
		if err := tx.Delete(makeTagKey(tag, meta.Id)); err != nil {
			return err
		}
		if err := adjustTagCount(tx, tag, -1); err != nil {
			return err
		}
	}
	return nil
}

// readEntry reads an entry from the transaction.
// Returns nil, nil when the key does not exist.
func readEntry(tx *badger.Txn, key []byte) (core.Entry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry core.Entry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalEntry(val)
		return err
	})
	return entry, err
}
