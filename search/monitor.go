package search

import (
	"github.com/poiesic/lexicon/core"
	"github.com/poiesic/lexicon/ranking"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(req Request)
	AfterRetrieval(candidates []core.Entry)
	AfterOrdering(ordered []ranking.ScoredEntry, ranked bool)
	Finish(resp *Response)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Request)                               {}
func (n *noopMonitor) AfterRetrieval(_ []core.Entry)                 {}
func (n *noopMonitor) AfterOrdering(_ []ranking.ScoredEntry, _ bool) {}
func (n *noopMonitor) Finish(_ *Response)                            {}
