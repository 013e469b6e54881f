package ai

import "context"

// Definer looks up dictionary senses for a term.
// Implementations must be thread-safe for concurrent use.
type Definer interface {
	// Define returns the senses of term, most common first.
	// Returns an empty slice if the term is unknown.
	// Returns ErrEmptyTerm if term is blank.
	Define(ctx context.Context, term string) ([]Sense, error)
}

// Sense is one meaning of a term.
type Sense struct {
	// PartOfSpeech is one of PartsOfSpeech.
	PartOfSpeech string

	// Definition is a short, self-contained explanation of the meaning.
	Definition string

	// Example is an optional sentence using the term in this sense.
	Example string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Definer returns the dictionary lookup service.
	// The returned Definer is safe for concurrent use.
	Definer() Definer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
