package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/lexicon/ai"
	"github.com/poiesic/lexicon/core"
	"github.com/poiesic/lexicon/storage"
)

// Config holds configuration for an enrichment run.
type Config struct {
	// BatchSize is the number of entries saved per write transaction
	BatchSize int

	// ReportInterval is how often to report progress (number of entries)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per lookup
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Overwrite replaces existing definitions instead of skipping them
	Overwrite bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      25,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     time.Second,
	}
}

func (c *Config) validate() error {
	switch {
	case c.BatchSize <= 0:
		return fmt.Errorf("%w: BatchSize must be positive, got %d", ErrInvalidConfig, c.BatchSize)
	case c.ReportInterval <= 0:
		return fmt.Errorf("%w: ReportInterval must be positive, got %d", ErrInvalidConfig, c.ReportInterval)
	case c.MaxRetries <= 0:
		return fmt.Errorf("%w: MaxRetries must be positive, got %d", ErrInvalidConfig, c.MaxRetries)
	case c.RetryDelay < 0:
		return fmt.Errorf("%w: RetryDelay must not be negative, got %s", ErrInvalidConfig, c.RetryDelay)
	}
	return nil
}

// Report summarizes an enrichment run.
type Report struct {
	// Candidates is the number of entries considered
	Candidates int
	// Defined is the number of entries that received a definition
	Defined int
	// Unknown is the number of terms the definer had no senses for
	Unknown int
	// Failed is the number of lookups that still failed after retries
	Failed int
	// Elapsed is the wall time of the run
	Elapsed time.Duration
}

// Enricher fills in missing definitions of words and phrases.
type Enricher struct {
	repo     storage.EntryRepository
	definer  ai.Definer
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewEnricher creates a new enricher.
// config: nil uses DefaultConfig
// progress: where to write progress output (typically os.Stderr); nil discards it
func NewEnricher(repo storage.EntryRepository, definer ai.Definer, config *Config, progress io.Writer) (*Enricher, error) {
	if repo == nil {
		return nil, ErrEntryRepositoryRequired
	}
	if definer == nil {
		return nil, ErrDefinerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Enricher{
		repo:     repo,
		definer:  definer,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "enricher"),
	}, nil
}

// Run looks up a definition for every candidate entry and saves the
// results batch by batch. Lookup failures are counted, not returned; storage
// errors and context cancellation end the run.
func (e *Enricher) Run(ctx context.Context) (*Report, error) {
	entries, err := e.repo.ListEntries(ctx, storage.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	candidates := slices.DeleteFunc(entries, func(entry core.Entry) bool {
		slot := definitionOf(entry)
		return slot == nil || (!e.config.Overwrite && strings.TrimSpace(*slot) != "")
	})

	report := &Report{Candidates: len(candidates)}
	e.logger.Info("starting enrichment", "candidates", report.Candidates, "overwrite", e.config.Overwrite)

	tracker := NewProgressTracker(e.progress, len(candidates), e.config.ReportInterval)
	tracker.Start()

	for batch := range slices.Chunk(candidates, e.config.BatchSize) {
		if err := ctx.Err(); err != nil {
			report.Elapsed = tracker.Elapsed()
			return report, err
		}

		updated, err := e.defineBatch(ctx, batch, report)
		if err != nil {
			report.Elapsed = tracker.Elapsed()
			return report, err
		}

		if len(updated) > 0 {
			if _, err := e.repo.UpdateEntries(ctx, updated...); err != nil {
				report.Elapsed = tracker.Elapsed()
				return report, fmt.Errorf("failed to save definitions: %w", err)
			}
			report.Defined += len(updated)
		}
		tracker.Increment(len(batch))
	}

	tracker.Finish()
	report.Elapsed = tracker.Elapsed()

	e.logger.Info("enrichment complete",
		"defined", report.Defined,
		"unknown", report.Unknown,
		"failed", report.Failed,
		"elapsed", report.Elapsed)
	return report, nil
}

// defineBatch looks up each entry in batch and returns the ones that got a
// definition. Only context errors are returned.
func (e *Enricher) defineBatch(ctx context.Context, batch []core.Entry, report *Report) ([]core.Entry, error) {
	updated := make([]core.Entry, 0, len(batch))
	for _, entry := range batch {
		term := core.PrimaryText(entry)

		var senses []ai.Sense
		err := RetryWithBackoff(ctx, func(ctx context.Context) error {
			var err error
			senses, err = e.definer.Define(ctx, term)
			return err
		}, e.config.MaxRetries, e.config.RetryDelay)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.logger.Warn("failed to define term", "id", entry.Meta().Id, "term", term, "err", err)
			report.Failed++
			continue
		}

		definition := FormatSenses(senses)
		if definition == "" {
			e.logger.Debug("no senses for term", "term", term)
			report.Unknown++
			continue
		}

		*definitionOf(entry) = definition
		updated = append(updated, entry)
	}
	return updated, nil
}

// FormatSenses renders senses as a single definition string. A lone sense is
// returned as is; several are joined as "(noun) first; (verb) second".
func FormatSenses(senses []ai.Sense) string {
	switch len(senses) {
	case 0:
		return ""
	case 1:
		return senses[0].Definition
	}

	parts := make([]string, len(senses))
	for i, s := range senses {
		parts[i] = fmt.Sprintf("(%s) %s", s.PartOfSpeech, s.Definition)
	}
	return strings.Join(parts, "; ")
}

// definitionOf returns a pointer to the entry's Definition field, or nil for
// variants that have none.
func definitionOf(entry core.Entry) *string {
	return core.Visit[*string](entry, definitionSlot{})
}

type definitionSlot struct{}

var _ core.Visitor[*string] = definitionSlot{}

func (definitionSlot) VisitWord(w *core.Word) *string               { return &w.Definition }
func (definitionSlot) VisitPhrase(p *core.Phrase) *string           { return &p.Definition }
func (definitionSlot) VisitQuote(*core.Quote) *string               { return nil }
func (definitionSlot) VisitHypothetical(*core.Hypothetical) *string { return nil }
