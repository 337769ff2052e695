package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/omdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// TitleSource combines the repository interfaces a title database backend must implement.
type TitleSource interface {
	domain.TitleRepository // Search, FetchDetail
	domain.ImageRepository // FetchImage
}

// SourceConfig contains the configuration needed to create a TitleSource
type SourceConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new TitleSource.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (TitleSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.APIKey == "" {
		return nil, domain.ErrNotConfigured
	}

	return omdb.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger), nil
}

// NewClientFromConfig creates a TitleSource from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (TitleSource, error) {
	return NewClient(&SourceConfig{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout,
	}, logger)
}
