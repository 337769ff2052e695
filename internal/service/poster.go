package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/sync/singleflight"
)

// PosterService loads poster bytes through the shared byte cache.
type PosterService struct {
	repo   domain.ImageRepository
	cache  domain.ByteCache
	logger *slog.Logger

	group singleflight.Group
}

// NewPosterService creates a new poster service
func NewPosterService(repo domain.ImageRepository, cache domain.ByteCache, logger *slog.Logger) *PosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PosterService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Poster returns the bytes for url, from the cache when present.
// A miss fetches the image and stores it under url. Concurrent misses for
// the same url share one fetch.
func (s *PosterService) Poster(ctx context.Context, url string) ([]byte, error) {
	url = strings.TrimSpace(url)
	if !domain.HasPoster(url) {
		return nil, domain.ErrNoPoster
	}

	if data, ok := s.cache.Get(url); ok {
		s.logger.Debug("poster cache hit", "url", url)
		return data, nil
	}

	v, err, shared := s.group.Do(url, func() (interface{}, error) {
		data, err := s.repo.FetchImage(ctx, url)
		if err != nil {
			return nil, err
		}
		s.cache.Put(url, data)
		return data, nil
	})
	if err != nil {
		s.logger.Warn("failed to load poster", "url", url, "error", err)
		return nil, err
	}

	s.logger.Debug("poster fetched", "url", url, "bytes", len(v.([]byte)), "shared", shared)
	return v.([]byte), nil
}

// Cached reports whether url is currently held in the cache
func (s *PosterService) Cached(url string) bool {
	_, ok := s.cache.Get(strings.TrimSpace(url))
	return ok
}

// PosterInfo describes an image without decoding its pixels
type PosterInfo struct {
	Format string
	Width  int
	Height int
	Bytes  int
}

func (p PosterInfo) String() string {
	return fmt.Sprintf("%s %dx%d (%d KB)", p.Format, p.Width, p.Height, (p.Bytes+1023)/1024)
}

// Describe reads the format and dimensions from the image header
func Describe(data []byte) (PosterInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return PosterInfo{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return PosterInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Bytes:  len(data),
	}, nil
}
