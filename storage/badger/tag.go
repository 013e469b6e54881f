package badger

import (
	"context"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/lexicon/core"
	"github.com/poiesic/lexicon/storage"
)

// TagRepository implements storage.TagRepository for BadgerDB.
// Counts are maintained by EntryRepository inside the same transactions
// that write the tag index.
type TagRepository struct {
	backend *Backend
}

var _ storage.TagRepository = (*TagRepository)(nil)

// NewTagRepository creates a new TagRepository.
func NewTagRepository(backend *Backend) *TagRepository {
	return &TagRepository{
		backend: backend,
	}
}

// Close releases resources. TagRepository has no resources to release.
func (r *TagRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TagRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// TagCounts returns every tag in use with its usage count, ordered by tag.
func (r *TagRepository) TagCounts(ctx context.Context) ([]core.TagCount, error) {
	var results []core.TagCount
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanValues(tx, []byte(tagCountPrefix), func(key, val []byte) error {
			count, err := storage.UnmarshalCount(val)
			if err != nil {
				return err
			}
			results = append(results, core.TagCount{
				Tag:   strings.TrimPrefix(string(key), tagCountPrefix),
				Count: count,
			})
			return nil
		})
	}, false)
	return results, err
}

// adjustTagCount adds delta to a tag's usage count, deleting the counter
// when it drops to zero.
func adjustTagCount(tx *badger.Txn, tag string, delta int) error {
	key := makeTagCountKey(tag)

	count := 0
	item, err := tx.Get(key)
	switch {
	case err == nil:
		if err := item.Value(func(val []byte) error {
			var err error
			count, err = storage.UnmarshalCount(val)
			return err
		}); err != nil {
			return err
		}
	case err != badger.ErrKeyNotFound:
		return err
	}

	count += delta
	if count <= 0 {
		return tx.Delete(key)
	}
	return tx.Set(key, storage.MarshalCount(count))
}
