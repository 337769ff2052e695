package search

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var results = []domain.SearchResult{
	{ID: "1", Title: "Batman Begins"},
	{ID: "2", Title: "The Dark Knight"},
	{ID: "3", Title: "Batman Returns"},
}

func TestFilterResultsEmptyQueryKeepsOrder(t *testing.T) {
	matches := FilterResults("  ", results)
	require.Len(t, matches, 3)
	for i, m := range matches {
		assert.Equal(t, i, m.Index)
		assert.Empty(t, m.MatchedIndexes)
	}
}

func TestFilterResults(t *testing.T) {
	matches := FilterResults("Returns", results)
	require.NotEmpty(t, matches)
	assert.Equal(t, 2, matches[0].Index)
	assert.NotEmpty(t, matches[0].MatchedIndexes)

	for _, m := range FilterResults("bat", results) {
		assert.Contains(t, []int{0, 2}, m.Index)
	}

	assert.Empty(t, FilterResults("zzz", results))
}

func TestSuggestRecents(t *testing.T) {
	recents := []string{"dune", "batman", "the batman", "heat"}

	assert.Equal(t, recents, SuggestRecents("", recents))
	assert.Equal(t, []string{"batman", "the batman"}, SuggestRecents("batman", recents))
	assert.Equal(t, []string{"dune"}, SuggestRecents("DU", recents))
	assert.Empty(t, SuggestRecents("xyz", recents))
}
