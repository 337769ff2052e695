package domain

import (
	"context"
)

// TitleRepository provides access to the remote title database
type TitleRepository interface {
	// Search returns titles matching query, in server order.
	// An unmatched query returns an empty slice, not an error.
	Search(ctx context.Context, query string) ([]SearchResult, error)

	// FetchDetail returns the full record for one title
	FetchDetail(ctx context.Context, id string) (*TitleDetail, error)
}

// ImageRepository downloads raw image bytes
type ImageRepository interface {
	// FetchImage returns the body of an absolute image URL
	FetchImage(ctx context.Context, url string) ([]byte, error)
}
