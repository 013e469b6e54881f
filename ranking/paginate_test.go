package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	ranked := Rank(sampleEntries(), "luck")
	n := len(ranked)

	tests := []struct {
		name       string
		offset     int
		limit      int
		wantLen    int
		wantOffset int
	}{
		{"first page", 0, 3, 3, 0},
		{"middle page", 3, 3, 3, 3},
		{"short last page", 9, 3, 1, 9},
		{"offset at end", n, 3, 0, n},
		{"offset past end", n + 5, 3, 0, n + 5},
		{"negative offset", -4, 2, 2, 0},
		{"zero limit", 0, 0, 0, 0},
		{"negative limit", 0, -1, 0, 0},
		{"limit larger than list", 0, 100, n, 0},
		{"huge limit", 2, math.MaxInt, n - 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(ranked, tt.offset, tt.limit)
			assert.Equal(t, n, page.Total)
			assert.Len(t, page.Entries, tt.wantLen)
			assert.Equal(t, tt.wantOffset, page.Offset)
			assert.Equal(t, tt.limit, page.Limit)
			if tt.limit > 0 {
				assert.LessOrEqual(t, len(page.Entries), tt.limit)
			}
			if tt.wantLen > 0 {
				assert.Equal(t, ranked[tt.wantOffset], page.Entries[0])
			}
		})
	}
}

func TestPaginate_TotalIgnoresWindow(t *testing.T) {
	entries := sampleEntries()
	for offset := -1; offset <= len(entries)+1; offset++ {
		for limit := -1; limit <= len(entries)+1; limit++ {
			page := Paginate(Rank(entries, "e"), offset, limit)
			assert.Equal(t, len(entries), page.Total)
			assert.LessOrEqual(t, len(page.Entries), max(limit, 0))
		}
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate(nil, 0, 10)
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Entries)
	assert.Empty(t, page.Entries)
}
