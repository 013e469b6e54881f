package storage

import (
	"context"

	"github.com/poiesic/lexicon/core"
)

// Filter narrows the candidate set returned by ListEntries.
// Zero values disable the corresponding filter.
type Filter struct {
	// Kind restricts results to one entry variant.
	Kind core.Kind

	// Tags restricts results to entries carrying every listed tag.
	Tags []string

	// Letter restricts results to entries whose primary text starts with
	// this letter (case-insensitive).
	Letter string
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// EntryRepository provides operations for managing lexicon entries.
type EntryRepository interface {
	Repository

	// AddEntries validates and stores one or more entries.
	// Generates IDs from a sequence, normalizes tags and sets InsertedAt.
	// Returns ErrDuplicateKey if an entry of the same kind with the same
	// primary text (case-insensitive) already exists.
	AddEntries(ctx context.Context, entries ...core.Entry) ([]core.Entry, error)

	// UpdateEntries replaces existing entries.
	// Updates the UpdatedAt timestamp and all indices automatically.
	// Returns ErrNotFound if any entry doesn't exist.
	UpdateEntries(ctx context.Context, entries ...core.Entry) ([]core.Entry, error)

	// DeleteEntries removes entries by their IDs, along with their indices.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, ids ...core.ID) error

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (core.Entry, error)

	// GetEntries retrieves multiple entries by their IDs.
	// Returns only the entries that exist (no error for missing entries).
	GetEntries(ctx context.Context, ids ...core.ID) ([]core.Entry, error)

	// ListEntries returns every entry matching the filter, ordered by ID.
	ListEntries(ctx context.Context, filter Filter) ([]core.Entry, error)
}

// TagRepository exposes tag usage bookkeeping.
type TagRepository interface {
	Repository

	// TagCounts returns every tag in use with the number of entries carrying
	// it, ordered by tag.
	TagCounts(ctx context.Context) ([]core.TagCount, error)
}
