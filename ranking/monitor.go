package ranking

import "github.com/poiesic/lexicon/core"

// RankMonitor provides hooks to observe a ranking pass.
// Scored is called once per candidate, in input order, after all scoring has
// finished, so implementations need no locking.
type RankMonitor interface {
	Start(query string, candidates int)
	Scored(entry core.Entry, score int)
	Finish(results []ScoredEntry)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ int)      {}
func (n *noopMonitor) Scored(_ core.Entry, _ int) {}
func (n *noopMonitor) Finish(_ []ScoredEntry)     {}
