package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// SearchOptions tweaks how queries are recorded
type SearchOptions struct {
	// RecordRawQuery stores the untrimmed input in recents instead of the
	// trimmed query that was sent upstream.
	RecordRawQuery bool
}

// SearchService runs title searches and keeps the current result list and
// the recent-searches list in step.
type SearchService struct {
	repo     domain.TitleRepository
	recents  domain.RecentsStore
	observer domain.StateObserver
	logger   *slog.Logger
	opts     SearchOptions

	mu      sync.RWMutex
	results []domain.SearchResult
	query   string
	seq     uint64 // bumped on every issued search
}

// NewSearchService creates a new search service
func NewSearchService(
	repo domain.TitleRepository,
	recents domain.RecentsStore,
	observer domain.StateObserver,
	logger *slog.Logger,
	opts SearchOptions,
) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	return &SearchService{
		repo:     repo,
		recents:  recents,
		observer: observer,
		logger:   logger,
		opts:     opts,
	}
}

// Search trims raw and, unless it is empty, fetches matching titles.
// On success the result list is replaced and the query recorded in recents.
// On failure the result list is left as it was and the error is logged and
// returned. An empty query issues no request and changes nothing.
func (s *SearchService) Search(ctx context.Context, raw string) error {
	query := strings.TrimSpace(raw)
	if query == "" {
		return nil
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.logger.Debug("searching", "query", query)

	results, err := s.repo.Search(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("search cancelled", "query", query)
		} else {
			s.logger.Error("failed to get titles", "query", query, "error", err)
		}
		return err
	}

	applied := s.applyResults(seq, query, results)
	if !applied {
		s.logger.Debug("discarding stale search results", "query", query)
	} else {
		s.logger.Info("search complete", "query", query, "results", len(results))
	}

	recorded := query
	if s.opts.RecordRawQuery {
		recorded = raw
	}
	return s.addRecent(recorded)
}

// applyResults swaps in results and notifies observers as one step.
// Results from a search that was superseded by a newer one are dropped.
func (s *SearchService) applyResults(seq uint64, query string, results []domain.SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.results = slices.Clone(results)
	s.query = query
	s.observer.OnStateChange(domain.StateChange{Kind: domain.ChangeResults, Query: query})
	return true
}

func (s *SearchService) addRecent(value string) error {
	if s.recents == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.recents.List()
	if err := s.recents.Add(value); err != nil {
		s.logger.Error("failed to record recent search", "query", value, "error", err)
		return err
	}
	// Duplicates leave the list untouched
	if !slices.Equal(before, s.recents.List()) {
		s.observer.OnStateChange(domain.StateChange{Kind: domain.ChangeRecents, Query: value})
	}
	return nil
}

// Clear empties the current result list. Recents are untouched.
func (s *SearchService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++ // in-flight searches no longer apply
	s.results = nil
	s.query = ""
	s.observer.OnStateChange(domain.StateChange{Kind: domain.ChangeResults})
}

// Results returns a copy of the current result list
func (s *SearchService) Results() []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results)
}

// HasResults reports whether the result list is non-empty
func (s *SearchService) HasResults() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results) > 0
}

// Query returns the query that produced the current results
func (s *SearchService) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Recents returns the recent searches, most recent first
func (s *SearchService) Recents() []string {
	if s.recents == nil {
		return nil
	}
	return s.recents.List()
}

// HasRecents reports whether any recent searches exist
func (s *SearchService) HasRecents() bool {
	return len(s.Recents()) > 0
}

// RemoveRecents drops the recents at the given positions
func (s *SearchService) RemoveRecents(indices ...int) error {
	if s.recents == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recents.RemoveAt(indices...); err != nil {
		s.logger.Error("failed to remove recent searches", "indices", indices, "error", err)
		return err
	}
	s.observer.OnStateChange(domain.StateChange{Kind: domain.ChangeRecents})
	return nil
}

// ClearRecents drops every recent search
func (s *SearchService) ClearRecents() error {
	if s.recents == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.recents.Clear(); err != nil {
		s.logger.Error("failed to clear recent searches", "error", err)
		return err
	}
	s.observer.OnStateChange(domain.StateChange{Kind: domain.ChangeRecents})
	return nil
}
