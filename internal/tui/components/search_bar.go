package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchBar is the single-line query input
type SearchBar struct {
	input   textinput.Model
	width   int
	focused bool
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies and series..."
	ti.CharLimit = 120
	ti.Prompt = "› "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	ti.ShowSuggestions = true
	ti.CompletionStyle = styles.DimStyle

	// Suggestion cycling is driven by SearchBarKeys
	ti.KeyMap.AcceptSuggestion = SearchBarKeys.Complete
	ti.KeyMap.NextSuggestion = SearchBarKeys.Next
	ti.KeyMap.PrevSuggestion = SearchBarKeys.Prev

	return SearchBar{input: ti}
}

// Focus focuses the input
func (b *SearchBar) Focus() tea.Cmd {
	b.focused = true
	return b.input.Focus()
}

// Blur removes focus from the input
func (b *SearchBar) Blur() {
	b.focused = false
	b.input.Blur()
}

// IsFocused returns the focus state
func (b SearchBar) IsFocused() bool {
	return b.focused
}

// Value returns the current input value
func (b SearchBar) Value() string {
	return b.input.Value()
}

// SetValue replaces the input value and moves the cursor to the end
func (b *SearchBar) SetValue(v string) {
	b.input.SetValue(v)
	b.input.CursorEnd()
}

// SetSuggestions sets the inline completions offered while typing
func (b *SearchBar) SetSuggestions(suggestions []string) {
	b.input.SetSuggestions(suggestions)
}

// SetWidth updates the rendered width
func (b *SearchBar) SetWidth(width int) {
	b.width = width
	b.input.Width = max(width-BorderWidth-lipgloss.Width(b.input.Prompt)-1, 1)
}

// Update handles input events, returns (bar, cmd, submitted)
func (b SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !b.focused {
		return b, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, SearchBarKeys.Submit) {
		return b, nil, true
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd, false
}

// View renders the search bar
func (b SearchBar) View() string {
	style := styles.InactiveBorder
	if b.focused {
		style = styles.ActiveBorder
	}
	frameW, _ := style.GetFrameSize()
	return style.Width(max(b.width-frameW, 1)).Render(b.input.View())
}
