package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Screen is the top-level view being shown
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenDetail
)

// Pane is a focusable region of the search screen
type Pane int

const (
	PaneSearchBar Pane = iota
	PaneResults
	PaneRecents
	paneCount
)

// Layout proportions
const (
	RecentsPanePercent = 30
	MinPaneWidth       = 20
	SearchBarHeight    = 3

	// Vertical layout: single footer line
	ChromeHeight = 1
)

// Status message lifetimes
const (
	StatusTimeout      = 3 * time.Second
	ErrorStatusTimeout = 5 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	ctx context.Context

	// Application state
	Screen   Screen
	Focus    Pane
	Ready    bool
	ShowHelp bool

	// Services
	SearchSvc *service.SearchService
	DetailSvc *service.DetailService
	PosterSvc *service.PosterService
	changes   <-chan domain.StateChange

	// UI Components
	SearchBar components.SearchBar
	Results   *components.ListColumn
	Recents   components.RecentsPanel
	Inspector components.Inspector
	Help      help.Model
	Spinner   spinner.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	statusSeq   int
	Searching   bool
	detailID    string
}

// NewModel creates a new application model. changes is the channel the
// services' ChannelObserver writes to; nil disables live updates.
func NewModel(
	ctx context.Context,
	searchSvc *service.SearchService,
	detailSvc *service.DetailService,
	posterSvc *service.PosterService,
	changes <-chan domain.StateChange,
) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	m := Model{
		ctx:       ctx,
		Screen:    ScreenSearch,
		Focus:     PaneSearchBar,
		SearchSvc: searchSvc,
		DetailSvc: detailSvc,
		PosterSvc: posterSvc,
		changes:   changes,
		SearchBar: components.NewSearchBar(),
		Results:   components.NewListColumn("Results"),
		Recents:   components.NewRecentsPanel(),
		Inspector: components.NewInspector(),
		Help:      h,
		Spinner:   s,
	}
	m.SearchBar.Focus()
	m.syncResults()
	m.syncRecents()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		WaitForChangeCmd(m.changes),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SearchDoneMsg:
		m.Searching = false
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil
			}
			// The result list is left as it was
			return m, m.setStatus(describeError("Search failed", msg.Err), true)
		}
		m.syncResults()
		m.syncRecents()
		if m.SearchSvc.Query() != strings.TrimSpace(msg.Query) {
			// Superseded by a newer search or cleared
			return m, nil
		}
		if m.Results.IsEmpty() {
			return m, m.setStatus(fmt.Sprintf("No titles found for %q", m.SearchSvc.Query()), false)
		}
		m.setFocus(PaneResults)
		return m, m.setStatus(fmt.Sprintf("%d titles found", m.Results.ItemCount()), false)

	case StateChangedMsg:
		switch msg.Change.Kind {
		case domain.ChangeResults:
			m.syncResults()
		case domain.ChangeRecents:
			m.syncRecents()
		case domain.ChangeDetail:
			if msg.Change.ID == m.detailID && m.DetailSvc.ID() == m.detailID {
				m.Inspector.SetView(m.DetailSvc.View())
			}
		}
		return m, WaitForChangeCmd(m.changes)

	case DetailLoadedMsg:
		if msg.ID != m.detailID {
			return m, nil
		}
		if msg.Err != nil {
			m.Inspector.SetError(msg.Err)
			if errors.Is(msg.Err, context.Canceled) {
				return m, nil
			}
			return m, m.setStatus(describeError("Loading details failed", msg.Err), true)
		}
		view := m.DetailSvc.View()
		m.Inspector.SetView(view)
		if url := view.PosterURL(); domain.HasPoster(url) && m.PosterSvc != nil {
			return m, LoadPosterCmd(m.ctx, m.PosterSvc, url)
		}
		m.Inspector.SetPoster("No poster", false)
		return m, nil

	case PosterLoadedMsg:
		if msg.URL != m.Inspector.DetailView().PosterURL() {
			return m, nil
		}
		if msg.Err != nil {
			m.Inspector.SetPoster("Unavailable", true)
			return m, nil
		}
		m.Inspector.SetPoster(msg.Info.String(), false)
		return m, nil

	case RecentsChangedMsg:
		m.syncRecents()
		if msg.Err != nil {
			return m, m.setStatus(describeError("Updating recent searches failed", msg.Err), true)
		}
		return m, nil

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ErrMsg:
		return m, m.setStatus(msg.Error(), true)

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.Inspector, cmd = m.Inspector.Update(msg)
		cmds = append(cmds, cmd)
		if m.Searching {
			m.Spinner, cmd = m.Spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	// Cursor blink and other input-internal messages
	if m.SearchBar.IsFocused() {
		var cmd tea.Cmd
		m.SearchBar, cmd, _ = m.SearchBar.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit starts a search for raw. Blank input is ignored.
func (m *Model) submit(raw string) tea.Cmd {
	if isBlank(raw) {
		return nil
	}
	m.Searching = true
	m.StatusMsg = ""
	return tea.Batch(
		SearchCmd(m.ctx, m.SearchSvc, raw),
		m.Spinner.Tick,
	)
}

// openDetail switches to the detail screen for r
func (m *Model) openDetail(r domain.SearchResult) tea.Cmd {
	m.Screen = ScreenDetail
	m.detailID = r.ID
	m.updateLayout()
	return tea.Batch(
		m.Inspector.StartLoading(r.Title),
		LoadDetailCmd(m.ctx, m.DetailSvc, r.ID),
	)
}

// closeDetail returns to the search screen
func (m *Model) closeDetail() {
	m.Screen = ScreenSearch
	m.detailID = ""
	m.updateLayout()
}

func (m *Model) clearResults() tea.Cmd {
	m.SearchSvc.Clear()
	m.syncResults()
	m.setFocus(PaneSearchBar)
	return m.setStatus("Results cleared", false)
}

func (m *Model) syncResults() {
	m.Results.SetResults(m.SearchSvc.Results())
	if q := m.SearchSvc.Query(); q != "" {
		m.Results.SetTitle(fmt.Sprintf("Results for %q", q))
	} else {
		m.Results.SetTitle("Results")
	}
}

func (m *Model) syncRecents() {
	recents := m.SearchSvc.Recents()
	m.Recents.SetRecents(recents)
	m.SearchBar.SetSuggestions(recents)
}

// setFocus moves keyboard focus to pane
func (m *Model) setFocus(pane Pane) {
	m.Focus = pane
	if pane == PaneSearchBar {
		m.SearchBar.Focus()
	} else {
		m.SearchBar.Blur()
	}
	m.Results.SetFocused(pane == PaneResults)
	m.Recents.SetFocused(pane == PaneRecents)
}

func (m *Model) cycleFocus(delta int) {
	next := (int(m.Focus) + delta + int(paneCount)) % int(paneCount)
	if Pane(next) == PaneRecents && m.calculateLayout().recentsWidth == 0 {
		// Recents pane is hidden on narrow terminals
		next = (next + delta + int(paneCount)) % int(paneCount)
	}
	m.setFocus(Pane(next))
}

// setStatus shows a transient status line
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	timeout := StatusTimeout
	if isErr {
		timeout = ErrorStatusTimeout
	}
	return ClearStatusCmd(m.statusSeq, timeout)
}

// describeError renders a user-facing message for a service error
func describeError(prefix string, err error) string {
	switch {
	case errors.Is(err, domain.ErrNetwork):
		return prefix + ": network error"
	case errors.Is(err, domain.ErrDecode):
		return prefix + ": unexpected response"
	case errors.Is(err, domain.ErrStorage):
		return prefix + ": could not save"
	default:
		return prefix + ": " + err.Error()
	}
}
