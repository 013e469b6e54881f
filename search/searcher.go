package search

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/lexicon/core"
	"github.com/poiesic/lexicon/ranking"
	"github.com/poiesic/lexicon/storage"
)

const (
	// DefaultLimit is the page size used when a request does not set one.
	DefaultLimit = 20
	// MaxLimit caps the page size a request may ask for.
	MaxLimit = 100
)

// Request describes one search.
type Request struct {
	// Query is the free-text query. Blank lists entries alphabetically.
	Query string

	// Kind, Tags and Letter narrow the candidate set; see storage.Filter.
	Kind   core.Kind
	Tags   []string
	Letter string

	Offset int
	// Limit is the page size. 0 selects the searcher's default; larger
	// values are capped at its maximum.
	Limit int

	// Explain attaches a score breakdown to every result.
	Explain bool
}

// Response is one page of search results.
type Response struct {
	Results []ranking.ScoredEntry
	// Total counts every match, not just this page.
	Total  int
	Limit  int
	Offset int
	// Query echoes the request's query as given.
	Query string
}

// Searcher answers search requests over an entry repository.
type Searcher struct {
	entries      storage.EntryRepository
	ranker       *ranking.Ranker
	ownsRanker   bool
	defaultLimit int
	maxLimit     int
	logger       *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithRanker sets the ranker used for non-blank queries. The caller keeps
// ownership and must release it.
// Default is a ranker with ranking.DefaultRules(), owned by the Searcher.
func WithRanker(ranker *ranking.Ranker) Option {
	return func(s *Searcher) error {
		s.ranker = ranker
		return nil
	}
}

// WithLimits sets the default and maximum page sizes.
// Defaults are DefaultLimit and MaxLimit.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(s *Searcher) error {
		if defaultLimit < 1 || maxLimit < 1 || defaultLimit > maxLimit {
			return fmt.Errorf("%w: default %d, max %d", ErrInvalidLimit, defaultLimit, maxLimit)
		}
		s.defaultLimit = defaultLimit
		s.maxLimit = maxLimit
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(entries storage.EntryRepository, opts ...Option) (*Searcher, error) {
	if entries == nil {
		return nil, ErrEntryRepositoryRequired
	}

	s := &Searcher{
		entries:      entries,
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
		logger:       slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.ranker == nil {
		ranker, err := ranking.NewRanker(ranking.WithLogger(s.logger))
		if err != nil {
			return nil, err
		}
		s.ranker = ranker
		s.ownsRanker = true
	}

	return s, nil
}

// Close releases the ranker if the Searcher created it.
func (s *Searcher) Close() error {
	if s.ownsRanker {
		s.ranker.Release()
	}
	return nil
}

// Search runs req and returns one page of results.
func (s *Searcher) Search(ctx context.Context, req Request) (*Response, error) {
	return s.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor runs req like Search.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req Request, monitor SearchMonitor) (*Response, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if req.Offset < 0 || req.Limit < 0 {
		return nil, fmt.Errorf("%w: offset %d, limit %d", ErrInvalidRequest, req.Offset, req.Limit)
	}
	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	limit = min(limit, s.maxLimit)

	monitor.Start(req)

	// 1. Fetch every candidate; ranking must see the whole set
	candidates, err := s.entries.ListEntries(ctx, storage.Filter{
		Kind:   req.Kind,
		Tags:   req.Tags,
		Letter: req.Letter,
	})
	if err != nil {
		s.logger.Error("error listing candidates", "kind", req.Kind, "tags", req.Tags, "letter", req.Letter, "err", err)
		return nil, err
	}
	monitor.AfterRetrieval(candidates)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Order them
	// The query is ranked exactly as given; only a blank one skips ranking
	ranked := strings.TrimSpace(req.Query) != ""
	var ordered []ranking.ScoredEntry
	switch {
	case !ranked:
		ordered = alphabetical(candidates)
	case req.Explain:
		ordered = s.ranker.RankWithBreakdown(candidates, req.Query)
	default:
		ordered = s.ranker.Rank(candidates, req.Query)
	}
	monitor.AfterOrdering(ordered, ranked)

	// 3. Slice out the page
	page := ranking.Paginate(ordered, req.Offset, limit)
	resp := &Response{
		Results: page.Entries,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		Query:   req.Query,
	}

	s.logger.Debug("search complete", "query", req.Query, "candidates", len(candidates), "returned", len(resp.Results))
	monitor.Finish(resp)
	return resp, nil
}

// alphabetical orders entries by case-folded primary text, then by ID, all
// with a score of 0.
func alphabetical(entries []core.Entry) []ranking.ScoredEntry {
	results := make([]ranking.ScoredEntry, len(entries))
	for i, e := range entries {
		results[i] = ranking.ScoredEntry{Entry: e}
	}
	slices.SortStableFunc(results, func(a, b ranking.ScoredEntry) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(core.PrimaryText(a.Entry)), strings.ToLower(core.PrimaryText(b.Entry))),
			cmp.Compare(a.Entry.Meta().Id, b.Entry.Meta().Id),
		)
	})
	return results
}
