package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
)

// app is the composition root shared by the TUI and the subcommands
type app struct {
	cfg    *adapter.Config
	logger *slog.Logger

	recents *store.RecentStore
	changes chan domain.StateChange // nil unless running the TUI

	search  *service.SearchService
	detail  *service.DetailService
	posters *service.PosterService

	logCloser io.Closer
}

// appOptions selects how much of the app gets wired
type appOptions struct {
	live    bool // route service notifications to a channel for the TUI
	offline bool // recents only; no API key needed
}

// newApp loads config and wires every service
func newApp(opts appOptions) (*app, error) {
	cfg, err := adapter.LoadConfig(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		closer = nil
	}
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger, logCloser: closer}

	var client source.TitleSource
	if !opts.offline {
		if err := cfg.Validate(); err != nil {
			a.Close()
			return nil, err
		}
		client, err = source.NewClientFromConfig(cfg, logger)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create API client: %w", err)
		}
	}

	dbPath := cfg.Storage.Path
	if flagNoHistory || cfg.Recents.Disabled {
		dbPath = ""
	}
	a.recents, err = store.NewRecentStore(dbPath, cfg.Recents.Capacity)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open recent searches: %w", err)
	}

	var observer domain.StateObserver = domain.NoOpObserver{}
	if opts.live {
		a.changes = make(chan domain.StateChange, 64)
		observer = tui.NewChannelObserver(a.changes)
	}

	a.search = service.NewSearchService(client, a.recents, observer, logger, service.SearchOptions{
		RecordRawQuery: cfg.Recents.RecordRawQuery,
	})
	a.detail = service.NewDetailService(client, observer, logger)
	a.posters = service.NewPosterService(client, cache.NewBytes(cfg.Cache.MaxBytes), logger)

	logger.Debug("app ready",
		"base_url", cfg.API.BaseURL,
		"history", dbPath != "",
		"capacity", a.recents.Capacity(),
	)
	return a, nil
}

// Close releases the database and the log file
func (a *app) Close() error {
	var errs []error
	if a.recents != nil {
		errs = append(errs, a.recents.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
