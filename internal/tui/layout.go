package tui

// paneLayout holds calculated widths for the search screen
type paneLayout struct {
	resultsWidth int
	recentsWidth int
	bodyHeight   int
}

// calculateLayout splits the search screen between results and recents.
// Narrow terminals drop the recents pane.
func (m Model) calculateLayout() paneLayout {
	l := paneLayout{
		bodyHeight: max(m.Height-ChromeHeight-SearchBarHeight, 3),
	}

	recents := m.Width * RecentsPanePercent / 100
	if recents < MinPaneWidth || m.Width-recents < MinPaneWidth {
		l.resultsWidth = m.Width
		return l
	}
	l.recentsWidth = recents
	l.resultsWidth = m.Width - recents
	return l
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	m.Help.Width = m.Width

	if m.Screen == ScreenDetail {
		m.Inspector.SetSize(m.Width, m.Height-ChromeHeight)
		return
	}

	l := m.calculateLayout()
	m.SearchBar.SetWidth(m.Width)
	m.Results.SetSize(l.resultsWidth, l.bodyHeight)
	if l.recentsWidth > 0 {
		m.Recents.SetSize(l.recentsWidth, l.bodyHeight)
	}
}
