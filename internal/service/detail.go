package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Display fallbacks for missing detail fields
const (
	FallbackText   = "None"
	FallbackPlot   = "No details"
	FallbackNumber = "0"
)

// DetailService loads the full record for one title.
// A failed load leaves the service unloaded; there is no retry.
type DetailService struct {
	repo     domain.TitleRepository
	observer domain.StateObserver
	logger   *slog.Logger

	mu     sync.RWMutex
	id     string
	detail *domain.TitleDetail
	loaded bool
}

// NewDetailService creates a new detail service
func NewDetailService(repo domain.TitleRepository, observer domain.StateObserver, logger *slog.Logger) *DetailService {
	if logger == nil {
		logger = slog.Default()
	}
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	return &DetailService{
		repo:     repo,
		observer: observer,
		logger:   logger,
	}
}

// Load fetches the record for id. On success the record is stored and the
// service marked loaded before observers are notified.
func (s *DetailService) Load(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.id != id {
		s.id = id
		s.detail = nil
		s.loaded = false
	}
	s.mu.Unlock()

	detail, err := s.repo.FetchDetail(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("detail load cancelled", "id", id)
		} else {
			s.logger.Error("failed to get title detail", "id", id, "error", err)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != id {
		// A different title was requested meanwhile
		return nil
	}
	s.detail = detail
	s.loaded = true
	s.observer.OnStateChange(domain.StateChange{Kind: domain.ChangeDetail, ID: id})
	s.logger.Debug("loaded title detail", "id", id, "title", detail.Title)
	return nil
}

// ID returns the identifier of the requested title
func (s *DetailService) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// IsLoaded reports whether a record has been stored
func (s *DetailService) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// View returns display accessors over the current record
func (s *DetailService) View() DetailView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detail == nil {
		return DetailView{}
	}
	d := *s.detail
	return DetailView{detail: &d}
}

// DetailView formats a detail record for display. The zero value renders
// an absent record.
type DetailView struct {
	detail *domain.TitleDetail
}

// NewDetailView wraps a record (nil = absent)
func NewDetailView(detail *domain.TitleDetail) DetailView {
	return DetailView{detail: detail}
}

// Present reports whether a record is available
func (v DetailView) Present() bool {
	return v.detail != nil
}

// Record returns the underlying record, nil when absent
func (v DetailView) Record() *domain.TitleDetail {
	return v.detail
}

func (v DetailView) field(get func(*domain.TitleDetail) string, fallback string) string {
	if v.detail == nil {
		return fallback
	}
	if s := strings.TrimSpace(get(v.detail)); s != "" {
		return s
	}
	return fallback
}

// ID returns the title identifier, "" when absent
func (v DetailView) ID() string {
	return v.field(func(d *domain.TitleDetail) string { return d.ID }, "")
}

// Title returns the title, "" when absent
func (v DetailView) Title() string {
	return v.field(func(d *domain.TitleDetail) string { return d.Title }, "")
}

// Plot returns the plot, "No details" when absent
func (v DetailView) Plot() string {
	return v.field(func(d *domain.TitleDetail) string { return d.Plot }, FallbackPlot)
}

// Kind returns the capitalized type ("Movie", "Series"), "None" when absent
func (v DetailView) Kind() string {
	kind := v.field(func(d *domain.TitleDetail) string { return string(d.Kind) }, "")
	if kind == "" {
		return FallbackText
	}
	return Capitalize(kind)
}

// Year returns the year, "None" when absent
func (v DetailView) Year() string {
	return v.field(func(d *domain.TitleDetail) string { return d.Year }, FallbackText)
}

// Language returns the languages, "None" when absent
func (v DetailView) Language() string {
	return v.field(func(d *domain.TitleDetail) string { return d.Language }, FallbackText)
}

// Director returns the director, "None" when absent
func (v DetailView) Director() string {
	return v.field(func(d *domain.TitleDetail) string { return d.Director }, FallbackText)
}

// Rating renders "<rating>/10", "0/10" when absent
func (v DetailView) Rating() string {
	return fmt.Sprintf("%s/10", v.field(func(d *domain.TitleDetail) string { return d.RatingText }, FallbackNumber))
}

// Votes renders "(votes <count>)", "(votes 0)" when absent
func (v DetailView) Votes() string {
	return fmt.Sprintf("(votes %s)", v.field(func(d *domain.TitleDetail) string { return d.VoteText }, FallbackNumber))
}

// PosterURL returns the poster URL, "" when absent
func (v DetailView) PosterURL() string {
	return v.field(func(d *domain.TitleDetail) string { return d.PosterURL }, "")
}

// Capitalize upper-cases the first letter of each word and lower-cases the rest
func Capitalize(s string) string {
	return cases.Title(language.Und).String(s)
}
