package ranking

// Page is one window over a ranked result list.
type Page struct {
	Entries []ScoredEntry
	// Total is the length of the full list, not of the page.
	Total  int
	Offset int
	Limit  int
}

// Paginate returns at most limit entries of scored starting at offset.
// A negative offset is treated as 0. An offset past the end or a limit of
// 0 or less yields an empty page. Total is always len(scored).
func Paginate(scored []ScoredEntry, offset, limit int) Page {
	offset = max(offset, 0)
	page := Page{
		Entries: []ScoredEntry{},
		Total:   len(scored),
		Offset:  offset,
		Limit:   limit,
	}
	if limit <= 0 || offset >= len(scored) {
		return page
	}
	page.Entries = scored[offset : offset+min(limit, len(scored)-offset)]
	return page
}
