package omdb

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapSearchResults converts search items to domain results, keeping server order
func MapSearchResults(items []SearchItem) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(items))
	for _, item := range items {
		results = append(results, domain.SearchResult{
			ID:        item.ImdbID,
			Title:     item.Title,
			Year:      item.Year,
			Kind:      mapKind(item.Type),
			PosterURL: item.Poster,
		})
	}
	return results
}

// MapDetail converts a detail response to a domain record
func MapDetail(d DetailResponse) *domain.TitleDetail {
	return &domain.TitleDetail{
		ID:         d.ImdbID,
		Title:      d.Title,
		Year:       d.Year,
		Kind:       mapKind(d.Type),
		Plot:       d.Plot,
		Language:   d.Language,
		Director:   d.Director,
		RatingText: d.ImdbRating,
		VoteText:   d.ImdbVotes,
		PosterURL:  d.Poster,
	}
}

func mapKind(t string) domain.TitleKind {
	return domain.TitleKind(strings.ToLower(strings.TrimSpace(t)))
}
