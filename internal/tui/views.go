package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	var body string
	switch m.Screen {
	case ScreenDetail:
		body = m.Inspector.View()
	default:
		body = m.renderSearchScreen()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderSearchScreen() string {
	l := m.calculateLayout()

	panes := m.Results.View()
	if l.recentsWidth > 0 {
		panes = lipgloss.JoinHorizontal(lipgloss.Top, panes, m.Recents.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.SearchBar.View(), panes)
}

// renderStatusBar renders the footer: status on the left, key hints on the right
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.Searching:
		left = m.Spinner.View() + " Searching..."
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	}

	right := m.Help.ShortHelpView(Keys.ShortHelp())

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Status wins over hints when space is short
		return styles.StatusBarStyle.Render(styles.Truncate(m.StatusMsg, m.Width-2))
	}
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderHelp renders the full key map centered on screen
func (m Model) renderHelp() string {
	title := styles.TitleStyle.Render("Keys")
	full := m.Help.FullHelpView(Keys.FullHelp())

	box := styles.ActiveBorder.
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", full))

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}
