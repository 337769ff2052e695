package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// Command factories for async operations. Each runs on its own goroutine
// with a context derived from the program's root context.

// SearchCmd runs one search
func SearchCmd(ctx context.Context, svc *service.SearchService, query string) tea.Cmd {
	return func() tea.Msg {
		err := svc.Search(ctx, query)
		return SearchDoneMsg{Query: query, Err: err}
	}
}

// LoadDetailCmd fetches the full record for id
func LoadDetailCmd(ctx context.Context, svc *service.DetailService, id string) tea.Cmd {
	return func() tea.Msg {
		err := svc.Load(ctx, id)
		return DetailLoadedMsg{ID: id, Err: err}
	}
}

// LoadPosterCmd fetches a poster through the byte cache and reads its header
func LoadPosterCmd(ctx context.Context, svc *service.PosterService, url string) tea.Cmd {
	return func() tea.Msg {
		data, err := svc.Poster(ctx, url)
		if err != nil {
			return PosterLoadedMsg{URL: url, Err: err}
		}
		info, err := service.Describe(data)
		return PosterLoadedMsg{URL: url, Info: info, Err: err}
	}
}

// RemoveRecentCmd drops the recent at index
func RemoveRecentCmd(svc *service.SearchService, index int) tea.Cmd {
	return func() tea.Msg {
		return RecentsChangedMsg{Err: svc.RemoveRecents(index)}
	}
}

// ClearRecentsCmd drops every recent
func ClearRecentsCmd(svc *service.SearchService) tea.Cmd {
	return func() tea.Msg {
		return RecentsChangedMsg{Err: svc.ClearRecents()}
	}
}

// WaitForChangeCmd blocks until the next service notification
func WaitForChangeCmd(ch <-chan domain.StateChange) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return StateChangedMsg{Change: change}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
