package tui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/cache"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	results map[string][]domain.SearchResult
	details map[string]*domain.TitleDetail
	images  map[string][]byte
	err     error
	calls   int
}

func (f *fakeRepo) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func (f *fakeRepo) FetchDetail(ctx context.Context, id string) (*domain.TitleDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown id", domain.ErrDecode)
	}
	return d, nil
}

func (f *fakeRepo) FetchImage(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.images[url]
	if !ok {
		return nil, fmt.Errorf("%w: 404", domain.ErrNetwork)
	}
	return data, nil
}

func (f *fakeRepo) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

var batman = []domain.SearchResult{
	{ID: "tt0372784", Title: "Batman Begins", Year: "2005", Kind: domain.KindMovie},
	{ID: "tt0096895", Title: "Batman", Year: "1989", Kind: domain.KindMovie},
}

func newTestModel(t *testing.T, repo *fakeRepo) Model {
	t.Helper()
	recents, err := store.NewRecentStore("", 5)
	require.NoError(t, err)

	logger := adapter.NullLogger()
	m := NewModel(
		context.Background(),
		service.NewSearchService(repo, recents, nil, logger, service.SearchOptions{}),
		service.NewDetailService(repo, nil, logger),
		service.NewPosterService(repo, cache.NewBytes(0), logger),
		nil,
	)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and returns the messages it produces. Timer-driven
// commands (cursor blink, status expiry) are skipped.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, drain(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// find returns the first message of type T
func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T in %v", zero, msgs)
	return zero
}

func runSearch(t *testing.T, m Model, query string) Model {
	t.Helper()
	m.setFocus(PaneSearchBar)
	m.SearchBar.SetValue(query)
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Searching)
	m, _ = update(m, find[SearchDoneMsg](t, drain(cmd)))
	return m
}

func TestSearchPopulatesResultsAndRecents(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{"batman": batman}}
	m := newTestModel(t, repo)

	m, _ = update(m, keys("batman"))
	assert.Equal(t, "batman", m.SearchBar.Value())

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, find[SearchDoneMsg](t, drain(cmd)))

	assert.False(t, m.Searching)
	assert.Equal(t, 2, m.Results.ItemCount())
	assert.Equal(t, PaneResults, m.Focus)
	assert.Equal(t, []string{"batman"}, m.Recents.Suggestions())
	assert.False(t, m.StatusIsErr)
}

func TestBlankQueryIssuesNothing(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo)

	m, _ = update(m, keys("   "))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Searching)
	assert.Zero(t, repo.calls)
	assert.Empty(t, m.Recents.Suggestions())
}

func TestSearchFailureKeepsResults(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{"batman": batman}}
	m := runSearch(t, newTestModel(t, repo), "batman")

	repo.setErr(fmt.Errorf("%w: connection refused", domain.ErrNetwork))
	m = runSearch(t, m, "heat")

	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "network error")
	assert.Equal(t, 2, m.Results.ItemCount())
	assert.Equal(t, []string{"batman"}, m.Recents.Suggestions())
}

func TestFilterResults(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{"batman": batman}}
	m := runSearch(t, newTestModel(t, repo), "batman")
	require.Equal(t, PaneResults, m.Focus)

	m, _ = update(m, keys("/"))
	require.True(t, m.Results.IsFilterTyping())
	m, _ = update(m, keys("beg"))

	require.Equal(t, 1, m.Results.ItemCount())
	r, ok := m.Results.SelectedResult()
	require.True(t, ok)
	assert.Equal(t, "tt0372784", r.ID)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Results.IsFiltering())
	assert.Equal(t, 2, m.Results.ItemCount())
}

func TestOpenDetailAndBack(t *testing.T) {
	repo := &fakeRepo{
		results: map[string][]domain.SearchResult{"batman": batman},
		details: map[string]*domain.TitleDetail{
			"tt0372784": {ID: "tt0372784", Title: "Batman Begins", Kind: domain.KindMovie, PosterURL: domain.NotAvailable},
		},
	}
	m := runSearch(t, newTestModel(t, repo), "batman")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ScreenDetail, m.Screen)
	assert.True(t, m.Inspector.IsLoading())

	m, cmd = update(m, find[DetailLoadedMsg](t, drain(cmd)))
	assert.Nil(t, cmd)
	assert.False(t, m.Inspector.IsLoading())

	view := m.Inspector.DetailView()
	assert.Equal(t, "Batman Begins", view.Title())
	assert.Equal(t, "Movie", view.Kind())
	assert.Equal(t, "No details", view.Plot())
	assert.Equal(t, "0/10", view.Rating())
	assert.Contains(t, m.View(), "No poster")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenSearch, m.Screen)
	assert.Equal(t, 2, m.Results.ItemCount())
}

func TestDetailFailureShowsError(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{"batman": batman}}
	m := runSearch(t, newTestModel(t, repo), "batman")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, find[DetailLoadedMsg](t, drain(cmd)))

	assert.True(t, m.StatusIsErr)
	assert.False(t, m.DetailSvc.IsLoaded())
	assert.False(t, m.Inspector.DetailView().Present())
}

func TestStaleDetailIgnored(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{"batman": batman}}
	m := runSearch(t, newTestModel(t, repo), "batman")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := update(m, DetailLoadedMsg{ID: "tt0372784"})
	assert.Nil(t, cmd)
	assert.Equal(t, ScreenSearch, m.Screen)
}

func TestPosterInfoShown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 30, 44))))

	const poster = "https://img.example/poster.png"
	repo := &fakeRepo{
		results: map[string][]domain.SearchResult{"batman": batman},
		details: map[string]*domain.TitleDetail{
			"tt0372784": {ID: "tt0372784", Title: "Batman Begins", PosterURL: poster},
		},
		images: map[string][]byte{poster: buf.Bytes()},
	}
	m := runSearch(t, newTestModel(t, repo), "batman")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = update(m, find[DetailLoadedMsg](t, drain(cmd)))
	require.NotNil(t, cmd)

	msg := find[PosterLoadedMsg](t, drain(cmd))
	require.NoError(t, msg.Err)
	assert.Equal(t, "png", msg.Info.Format)
	assert.Equal(t, 30, msg.Info.Width)
	assert.Equal(t, 44, msg.Info.Height)

	m, _ = update(m, msg)
	assert.Contains(t, m.View(), "png 30x44")
	assert.True(t, m.PosterSvc.Cached(poster))
}

func TestClearResultsKeepsRecents(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{"batman": batman}}
	m := runSearch(t, newTestModel(t, repo), "batman")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlL})

	assert.True(t, m.Results.IsEmpty())
	assert.Equal(t, PaneSearchBar, m.Focus)
	assert.Equal(t, []string{"batman"}, m.Recents.Suggestions())
}

func TestSearchFinishingAfterClearKeepsStatus(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{"batman": batman}}
	m := runSearch(t, newTestModel(t, repo), "batman")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.Equal(t, "Results cleared", m.StatusMsg)

	// A search issued before the clear reports back afterwards
	m, _ = update(m, SearchDoneMsg{Query: " batman "})

	assert.False(t, m.Searching)
	assert.True(t, m.Results.IsEmpty())
	assert.Equal(t, "Results cleared", m.StatusMsg)
	assert.Equal(t, PaneSearchBar, m.Focus)
}

func TestRecentsDeleteAndRerun(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{
		"batman": batman,
		"heat":   {{ID: "tt0113277", Title: "Heat"}},
	}}
	m := runSearch(t, newTestModel(t, repo), "heat")
	m = runSearch(t, m, "batman")

	m.setFocus(PaneRecents)
	require.Equal(t, []string{"batman", "heat"}, m.Recents.Suggestions())

	// Re-run "heat" from the recents pane
	m, _ = update(m, keys("j"))
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(m, find[SearchDoneMsg](t, drain(cmd)))
	assert.Equal(t, "heat", m.SearchSvc.Query())
	assert.Equal(t, 1, m.Results.ItemCount())

	m.setFocus(PaneRecents)
	m.Recents.Select(0)
	m, cmd = update(m, keys("d"))
	m, _ = update(m, find[RecentsChangedMsg](t, drain(cmd)))
	assert.Equal(t, []string{"heat"}, m.Recents.Suggestions())
}

func TestRecentsNarrowWhileTyping(t *testing.T) {
	repo := &fakeRepo{results: map[string][]domain.SearchResult{}}
	m := newTestModel(t, repo)
	for _, q := range []string{"alien", "batman", "blade runner"} {
		m = runSearch(t, m, q)
	}
	m.setFocus(PaneSearchBar)
	m.SearchBar.SetValue("")

	m, _ = update(m, keys("bl"))
	assert.Equal(t, []string{"blade runner"}, m.Recents.Suggestions())
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})
	m.setFocus(PaneResults)

	m, _ = update(m, keys("?"))
	require.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "clear results")

	m, _ = update(m, keys("?"))
	assert.False(t, m.ShowHelp)
}

func TestStatusExpires(t *testing.T) {
	m := newTestModel(t, &fakeRepo{})

	m, _ = update(m, StatusMsg{Message: "first"})
	first := m.statusSeq
	m, _ = update(m, StatusMsg{Message: "second"})

	// A stale timer does not clear the newer message
	m, _ = update(m, ClearStatusMsg{Seq: first})
	assert.Equal(t, "second", m.StatusMsg)

	m, _ = update(m, ClearStatusMsg{Seq: m.statusSeq})
	assert.Empty(t, m.StatusMsg)
}
