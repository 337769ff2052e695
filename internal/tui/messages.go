package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchDoneMsg signals that a search request finished
type SearchDoneMsg struct {
	Query string
	Err   error
}

// DetailLoadedMsg signals that a detail request finished
type DetailLoadedMsg struct {
	ID  string
	Err error
}

// PosterLoadedMsg carries the header info for a fetched poster
type PosterLoadedMsg struct {
	URL  string
	Info service.PosterInfo
	Err  error
}

// RecentsChangedMsg signals that a recents mutation finished
type RecentsChangedMsg struct {
	Err error
}

// StateChangedMsg wraps a service notification delivered over the channel
type StateChangedMsg struct {
	Change domain.StateChange
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	Seq int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
