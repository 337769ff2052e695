package domain

import "strings"

// TitleKind is the upstream type string ("movie", "series", "episode", "game").
type TitleKind string

const (
	KindMovie   TitleKind = "movie"
	KindSeries  TitleKind = "series"
	KindEpisode TitleKind = "episode"
	KindGame    TitleKind = "game"
)

// NotAvailable is the sentinel the upstream API uses for missing values.
const NotAvailable = "N/A"

// SearchResult is one matched title from a search response.
// Results keep the order the server returned them in.
type SearchResult struct {
	ID        string    // IMDb identifier, e.g. "tt0372784"
	Title     string    // Display title
	Year      string    // Release year or range ("2008–2013")
	Kind      TitleKind // movie, series, episode, game
	PosterURL string    // Absolute poster URL or "N/A"
}

// Description returns the secondary text shown next to the title in lists
func (r SearchResult) Description() string {
	parts := make([]string, 0, 2)
	if r.Year != "" {
		parts = append(parts, r.Year)
	}
	if r.Kind != "" {
		parts = append(parts, string(r.Kind))
	}
	return strings.Join(parts, " · ")
}

// HasPoster reports whether the result carries a usable poster URL
func (r SearchResult) HasPoster() bool {
	return HasPoster(r.PosterURL)
}

// TitleDetail is the full record for one title.
// Rating and votes stay as display strings since upstream sends "N/A" for
// titles without them.
type TitleDetail struct {
	ID         string
	Title      string
	Year       string
	Kind       TitleKind
	Plot       string
	Language   string
	Director   string
	RatingText string // e.g. "7.8"
	VoteText   string // e.g. "1,234,567"
	PosterURL  string
}

// HasPoster reports whether url points at an image rather than the
// upstream "N/A" placeholder.
func HasPoster(url string) bool {
	url = strings.TrimSpace(url)
	return url != "" && url != NotAvailable
}
