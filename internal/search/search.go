// Package search filters already-fetched data locally. It never touches the
// network.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
	sfuzzy "github.com/sahilm/fuzzy"
)

// Match is one filtered result with match metadata for highlighting
type Match struct {
	Index          int   // Index into the filtered slice
	MatchedIndexes []int // Character positions that matched
	Score          int   // Higher is better
}

// titleSource implements sahilm/fuzzy.Source over result titles
type titleSource []domain.SearchResult

func (s titleSource) String(i int) string { return strings.ToLower(s[i].Title) }
func (s titleSource) Len() int            { return len(s) }

// FilterResults fuzzy-matches query against result titles, best match first.
// An empty query matches everything in the original order.
func FilterResults(query string, results []domain.SearchResult) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		matches := make([]Match, len(results))
		for i := range results {
			matches[i] = Match{Index: i}
		}
		return matches
	}

	found := sfuzzy.FindFrom(query, titleSource(results))
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return matches
}

// SuggestRecents returns the recent searches that fuzzy-match prefix,
// closest first. Ties keep recents order. An empty prefix returns all.
func SuggestRecents(prefix string, recents []string) []string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return append([]string(nil), recents...)
	}

	ranks := fuzzy.RankFindFold(prefix, recents)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	suggestions := make([]string, len(ranks))
	for i, r := range ranks {
		suggestions[i] = r.Target
	}
	return suggestions
}
