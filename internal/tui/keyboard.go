package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Help, Keys.Back, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	if m.Screen == ScreenDetail {
		return m.handleDetailKeys(msg)
	}

	// Text entry swallows printable keys
	if m.Focus == PaneSearchBar {
		return m.handleSearchBarKeys(msg)
	}
	if m.Focus == PaneResults && m.Results.IsFilterTyping() {
		var cmd tea.Cmd
		m.Results, cmd = m.Results.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.NextPane):
		m.cycleFocus(1)
		return m, nil

	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil

	case key.Matches(msg, Keys.FocusBar):
		m.setFocus(PaneSearchBar)
		return m, nil

	case key.Matches(msg, Keys.ClearResults):
		return m, m.clearResults()
	}

	switch m.Focus {
	case PaneResults:
		return m.handleResultsKeys(msg)
	case PaneRecents:
		return m.handleRecentsKeys(msg)
	}
	return m, nil
}

func (m Model) handleSearchBarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.NextPane):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, Keys.PrevPane):
		m.cycleFocus(-1)
		return m, nil
	case key.Matches(msg, Keys.Back):
		m.setFocus(PaneResults)
		return m, nil
	case key.Matches(msg, Keys.ClearResults):
		return m, m.clearResults()
	}

	var cmd tea.Cmd
	var submitted bool
	m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
	m.Recents.SetPrefix(m.SearchBar.Value())
	if submitted {
		return m, tea.Batch(cmd, m.submit(m.SearchBar.Value()))
	}
	return m, cmd
}

func (m Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		if r, ok := m.Results.SelectedResult(); ok {
			return m, m.openDetail(r)
		}
		return m, nil

	case key.Matches(msg, Keys.Filter) && !m.Results.IsFiltering():
		m.Results.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Back) && !m.Results.IsFiltering():
		m.setFocus(PaneSearchBar)
		return m, nil
	}

	var cmd tea.Cmd
	m.Results, cmd = m.Results.Update(msg)
	return m, cmd
}

func (m Model) handleRecentsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		item, ok := m.Recents.Selected()
		if !ok {
			return m, nil
		}
		m.SearchBar.SetValue(item.Value)
		return m, m.submit(item.Value)

	case key.Matches(msg, Keys.DeleteRecent):
		if item, ok := m.Recents.Selected(); ok && item.Index >= 0 {
			return m, RemoveRecentCmd(m.SearchSvc, item.Index)
		}
		return m, nil

	case key.Matches(msg, Keys.ClearRecents):
		return m, ClearRecentsCmd(m.SearchSvc)

	case key.Matches(msg, Keys.Back):
		m.setFocus(PaneSearchBar)
		return m, nil
	}

	var cmd tea.Cmd
	m.Recents, cmd = m.Recents.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.closeDetail()
		return m, nil
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.Inspector, cmd = m.Inspector.Update(msg)
	return m, cmd
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
