package components

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/search"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// RecentItem implements list.Item for one recent search
type RecentItem struct {
	Value string
	Index int // position in the full recents list
}

func (i RecentItem) FilterValue() string { return i.Value }
func (i RecentItem) Title() string       { return fmt.Sprintf("%d  %s", i.Index+1, i.Value) }
func (i RecentItem) Description() string { return "" }

// Border overhead for bordered panels
const BorderSize = 2

// RecentsPanel lists recent searches, narrowed to the ones that match what
// is being typed in the search bar.
type RecentsPanel struct {
	list    list.Model
	focused bool
	width   int
	height  int

	recents []string
	prefix  string
}

// NewRecentsPanel creates a new recents panel
func NewRecentsPanel() RecentsPanel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Foreground(styles.White).
		Background(styles.SlateLight).
		Padding(0, 1)
	delegate.Styles.NormalTitle = lipgloss.NewStyle().
		Foreground(styles.LightGray).
		Padding(0, 1)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Recent"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.Marquee).
		Bold(true).
		Padding(0, 1)
	l.Styles.NoItems = styles.DimStyle.Padding(0, 1)
	l.SetStatusBarItemName("recent search", "recent searches")

	return RecentsPanel{list: l}
}

// SetRecents replaces the full recents list
func (p *RecentsPanel) SetRecents(recents []string) {
	p.recents = slices.Clone(recents)
	p.refreshItems()
}

// SetPrefix narrows the shown entries to suggestions for prefix
func (p *RecentsPanel) SetPrefix(prefix string) {
	if prefix == p.prefix {
		return
	}
	p.prefix = prefix
	p.refreshItems()
}

func (p *RecentsPanel) refreshItems() {
	suggestions := search.SuggestRecents(p.prefix, p.recents)
	items := make([]list.Item, len(suggestions))
	for i, s := range suggestions {
		items[i] = RecentItem{Value: s, Index: slices.Index(p.recents, s)}
	}
	p.list.SetItems(items)
	if p.list.Index() >= len(items) && len(items) > 0 {
		p.list.Select(len(items) - 1)
	}
}

// Suggestions returns the entries currently shown
func (p RecentsPanel) Suggestions() []string {
	items := p.list.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.(RecentItem).Value
	}
	return out
}

// SetSize updates the component dimensions
func (p *RecentsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.list.SetSize(width-BorderSize, height-BorderSize)
}

// SetFocused sets the focus state
func (p *RecentsPanel) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns the focus state
func (p RecentsPanel) IsFocused() bool {
	return p.focused
}

// Selected returns the highlighted entry, if any
func (p RecentsPanel) Selected() (RecentItem, bool) {
	item := p.list.SelectedItem()
	if item == nil {
		return RecentItem{}, false
	}
	return item.(RecentItem), true
}

// SelectedIndex returns the highlighted row
func (p RecentsPanel) SelectedIndex() int {
	return p.list.Index()
}

// Select highlights row i
func (p *RecentsPanel) Select(i int) {
	p.list.Select(i)
}

// Len returns the number of shown entries
func (p RecentsPanel) Len() int {
	return len(p.list.Items())
}

// Update handles messages
func (p RecentsPanel) Update(msg tea.Msg) (RecentsPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			p.list.CursorDown()
		case "k", "up":
			p.list.CursorUp()
		case "g":
			p.list.Select(0)
		case "G":
			p.list.Select(len(p.list.Items()) - 1)
		}
	}

	return p, nil
}

// View renders the component
func (p RecentsPanel) View() string {
	style := styles.InactiveBorder
	if p.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(p.width - frameW).
		Height(p.height - frameH).
		Render(p.list.View())
}
