// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ranking

import (
	"cmp"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/lexicon/core"
)

const (
	// DefaultParallelThreshold is the candidate count at which scoring moves
	// onto the worker pool.
	DefaultParallelThreshold = 512
)

// ScoredEntry is an entry with its relevance score attached.
// Breakdown is only populated by RankWithBreakdown.
type ScoredEntry struct {
	Entry     core.Entry
	Score     int
	Breakdown *Breakdown
}

// Ranker scores candidate entries against a query and orders them by
// descending score. Entries with equal scores keep their input order.
// A Ranker is safe for concurrent use; call Release when done with it.
type Ranker struct {
	rules     *RuleTable
	pool      *ants.Pool
	poolSize  int
	threshold int
	monitor   RankMonitor
	logger    *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithRules sets the rule table.
// Default is DefaultRules().
func WithRules(rules *RuleTable) Option {
	return func(r *Ranker) error {
		if rules == nil {
			rules = defaultRules
		}
		r.rules = rules
		return nil
	}
}

// WithPoolSize sets the worker pool size for parallel scoring.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Ranker) error {
		if size < 1 {
			size = 1
		}
		r.poolSize = size
		return nil
	}
}

// WithParallelThreshold sets the candidate count at which scoring is spread
// over the worker pool. A threshold of 0 or less disables the pool.
// Default is DefaultParallelThreshold.
func WithParallelThreshold(threshold int) Option {
	return func(r *Ranker) error {
		r.threshold = threshold
		return nil
	}
}

// WithMonitor sets a monitor that observes every ranking pass.
func WithMonitor(monitor RankMonitor) Option {
	return func(r *Ranker) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a new ranker.
func NewRanker(opts ...Option) (*Ranker, error) {
	r := &Ranker{
		rules:     defaultRules,
		poolSize:  max(runtime.NumCPU(), 1),
		threshold: DefaultParallelThreshold,
		monitor:   &noopMonitor{},
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.threshold > 0 {
		pool, err := ants.NewPool(r.poolSize)
		if err != nil {
			return nil, err
		}
		r.pool = pool
	}

	return r, nil
}

// Rules returns the rule table the ranker scores with.
func (r *Ranker) Rules() *RuleTable {
	return r.rules
}

// Release stops the worker pool.
func (r *Ranker) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Rank scores every entry against query and returns them ordered by
// descending score. entries is not modified.
func (r *Ranker) Rank(entries []core.Entry, query string) []ScoredEntry {
	return r.rank(entries, query, false)
}

// RankWithBreakdown ranks like Rank and attaches a Breakdown to every result.
func (r *Ranker) RankWithBreakdown(entries []core.Entry, query string) []ScoredEntry {
	return r.rank(entries, query, true)
}

func (r *Ranker) rank(entries []core.Entry, query string, explain bool) []ScoredEntry {
	r.monitor.Start(query, len(entries))

	results := make([]ScoredEntry, len(entries))
	score := func(i int) {
		results[i].Entry = entries[i]
		if explain {
			b := r.rules.Explain(entries[i], query)
			results[i].Score = b.Score
			results[i].Breakdown = &b
			return
		}
		results[i].Score = r.rules.Score(entries[i], query)
	}

	if r.pool != nil && len(entries) >= r.threshold && !isBlank(query) {
		r.scoreParallel(len(entries), score)
	} else {
		for i := range entries {
			score(i)
		}
	}

	for _, result := range results {
		r.monitor.Scored(result.Entry, result.Score)
	}

	sortByScore(results)
	r.monitor.Finish(results)
	return results
}

// scoreParallel splits [0, n) into one chunk per worker. Each chunk writes
// only its own result slots.
func (r *Ranker) scoreParallel(n int, score func(i int)) {
	chunk := (n + r.poolSize - 1) / r.poolSize

	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		task := func() {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				score(i)
			}
		}

		wg.Add(1)
		if err := r.pool.Submit(task); err != nil {
			r.logger.Warn("worker pool rejected scoring task, scoring inline", "err", err)
			task()
		}
	}
	wg.Wait()
}

// Rank scores entries with DefaultRules on the calling goroutine.
func Rank(entries []core.Entry, query string) []ScoredEntry {
	results := make([]ScoredEntry, len(entries))
	for i, e := range entries {
		results[i] = ScoredEntry{Entry: e, Score: defaultRules.Score(e, query)}
	}
	sortByScore(results)
	return results
}

func sortByScore(results []ScoredEntry) {
	slices.SortStableFunc(results, func(a, b ScoredEntry) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
