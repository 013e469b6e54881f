package ranking

import (
	"fmt"
	"testing"

	"github.com/poiesic/lexicon/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []core.Entry {
	return []core.Entry{
		&core.Word{Name: "luck", Definition: "success by chance"},
		&core.Word{Name: "serendipity", Definition: "happy luck", Header: core.Header{Tags: []string{"favorite"}}},
		&core.Phrase{Body: "break a leg", Definition: "good luck", Header: core.Header{Tags: []string{"theatre"}}},
		&core.Quote{Body: "Luck is the residue of design", Source: "Branch Rickey"},
		&core.Hypothetical{Body: "What if luck could be bottled?"},
		&core.Word{Name: "plucky", Definition: "brave"},
		&core.Word{Name: "fortune", Notes: "see luck"},
		&core.Word{Name: "irony", Header: core.Header{Tags: []string{"luck"}}},
		&core.Word{Name: "unrelated"},
		&core.Phrase{Body: "no dice"},
	}
}

func newTestRanker(t *testing.T, opts ...Option) *Ranker {
	t.Helper()
	r, err := NewRanker(opts...)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func TestRanker_Rank(t *testing.T) {
	r := newTestRanker(t)
	entries := sampleEntries()

	results := r.Rank(entries, "luck")
	require.Len(t, results, len(entries))

	assert.Equal(t, "luck", core.PrimaryText(results[0].Entry))
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, res := range results {
		assert.Equal(t, Score(res.Entry, "luck"), res.Score)
		assert.Nil(t, res.Breakdown)
	}

	// Input is untouched.
	assert.Equal(t, sampleEntries(), entries)
}

func TestRanker_Deterministic(t *testing.T) {
	r := newTestRanker(t)
	entries := sampleEntries()

	first := r.Rank(entries, "luck")
	for range 5 {
		assert.Equal(t, first, r.Rank(entries, "luck"))
	}
}

func TestRanker_StableTies(t *testing.T) {
	r := newTestRanker(t)

	var entries []core.Entry
	for i := range 20 {
		entries = append(entries, &core.Word{Name: fmt.Sprintf("word%02d", i), Notes: "tie"})
	}
	// One clear winner in the middle.
	entries = append(entries[:10], append([]core.Entry{&core.Word{Name: "tie"}}, entries[10:]...)...)

	results := r.Rank(entries, "tie")
	require.Len(t, results, 21)
	assert.Equal(t, "tie", core.PrimaryText(results[0].Entry))

	for i := 1; i < len(results); i++ {
		assert.Equal(t, fmt.Sprintf("word%02d", i-1), core.PrimaryText(results[i].Entry))
	}
}

func TestRanker_EmptyQueryKeepsInputOrder(t *testing.T) {
	r := newTestRanker(t)
	entries := sampleEntries()

	results := r.Rank(entries, "   ")
	require.Len(t, results, len(entries))
	for i, res := range results {
		assert.Same(t, entries[i], res.Entry)
		assert.Zero(t, res.Score)
	}
}

func TestRanker_EmptyCandidates(t *testing.T) {
	r := newTestRanker(t)
	assert.Empty(t, r.Rank(nil, "luck"))
}

func TestRanker_ParallelMatchesSequential(t *testing.T) {
	var entries []core.Entry
	for i := range 1000 {
		entries = append(entries, sampleEntries()[i%10])
	}

	sequential := newTestRanker(t, WithParallelThreshold(0))
	parallel := newTestRanker(t, WithParallelThreshold(1), WithPoolSize(4))

	for _, q := range []string{"luck", "break", "e", "zzz"} {
		want := sequential.Rank(entries, q)
		got := parallel.Rank(entries, q)
		assert.Equal(t, want, got, q)
		assert.Equal(t, Rank(entries, q), got, q)
	}
}

func TestRanker_AfterRelease(t *testing.T) {
	r, err := NewRanker(WithParallelThreshold(1), WithPoolSize(2))
	require.NoError(t, err)
	r.Release()

	results := r.Rank(sampleEntries(), "luck")
	assert.Equal(t, Rank(sampleEntries(), "luck"), results)
}

func TestRanker_RankWithBreakdown(t *testing.T) {
	r := newTestRanker(t)

	results := r.RankWithBreakdown(sampleEntries(), "luck")
	for _, res := range results {
		require.NotNil(t, res.Breakdown)
		assert.Equal(t, res.Score, res.Breakdown.Score)
	}
	assert.Equal(t, "primary-exact", results[0].Breakdown.Matches[0].Name)
}

func TestRanker_WithRules(t *testing.T) {
	table, err := NewRuleTable(
		Rule{Name: "notes", Extract: Notes, Match: Substring},
		Rule{Name: "primary", Extract: Primary, Match: Substring},
	)
	require.NoError(t, err)

	r := newTestRanker(t, WithRules(table))
	assert.Same(t, table, r.Rules())

	results := r.Rank([]core.Entry{
		&core.Word{Name: "luck"},
		&core.Word{Name: "fortune", Notes: "luck"},
	}, "luck")
	assert.Equal(t, "fortune", core.PrimaryText(results[0].Entry))
	assert.Equal(t, 4, results[0].Score)
	assert.Equal(t, 1, results[1].Score)
}

func TestRanker_NilOptionsFallBack(t *testing.T) {
	r := newTestRanker(t, WithRules(nil), WithMonitor(nil), WithLogger(nil))
	assert.Same(t, DefaultRules(), r.Rules())
	assert.NotPanics(t, func() { r.Rank(sampleEntries(), "luck") })
}

type recordingMonitor struct {
	query      string
	candidates int
	scored     []int
	finished   []ScoredEntry
}

func (m *recordingMonitor) Start(query string, candidates int) {
	m.query = query
	m.candidates = candidates
}

func (m *recordingMonitor) Scored(_ core.Entry, score int) {
	m.scored = append(m.scored, score)
}

func (m *recordingMonitor) Finish(results []ScoredEntry) {
	m.finished = results
}

func TestRanker_Monitor(t *testing.T) {
	mon := &recordingMonitor{}
	r := newTestRanker(t, WithMonitor(mon), WithParallelThreshold(1))
	entries := sampleEntries()

	results := r.Rank(entries, "luck")

	assert.Equal(t, "luck", mon.query)
	assert.Equal(t, len(entries), mon.candidates)
	require.Len(t, mon.scored, len(entries))
	for i, e := range entries {
		assert.Equal(t, Score(e, "luck"), mon.scored[i])
	}
	assert.Equal(t, results, mon.finished)
}
