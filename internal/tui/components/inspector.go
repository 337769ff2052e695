package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Inspector renders the full record for one title. The plot scrolls, the
// header and footer stay pinned.
type Inspector struct {
	view    service.DetailView
	title   string // shown while the record is loading
	loading bool
	err     error

	poster    string // poster line, empty until known
	posterErr bool

	spinner  spinner.Model
	viewport viewport.Model

	width  int
	height int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	vp := viewport.New(0, 0)
	vp.KeyMap.Up = ListKeys.Up
	vp.KeyMap.Down = ListKeys.Down
	vp.KeyMap.HalfPageUp = ListKeys.HalfUp
	vp.KeyMap.HalfPageDown = ListKeys.HalfDown
	vp.KeyMap.PageUp = key.NewBinding(key.WithKeys("b"))
	vp.KeyMap.PageDown = key.NewBinding(key.WithKeys("f", " "))

	return Inspector{spinner: s, viewport: vp}
}

// StartLoading clears the panel and shows the spinner for title
func (i *Inspector) StartLoading(title string) tea.Cmd {
	i.view = service.DetailView{}
	i.title = title
	i.loading = true
	i.err = nil
	i.poster = ""
	i.posterErr = false
	i.refresh()
	return i.spinner.Tick
}

// SetView shows a loaded record
func (i *Inspector) SetView(v service.DetailView) {
	i.view = v
	i.loading = false
	i.err = nil
	i.refresh()
}

// SetError shows a failed load
func (i *Inspector) SetError(err error) {
	i.loading = false
	i.err = err
	i.refresh()
}

// SetPoster sets the poster line. isErr renders it dimmed in red.
func (i *Inspector) SetPoster(line string, isErr bool) {
	i.poster = line
	i.posterErr = isErr
}

// IsLoading reports whether the spinner is showing
func (i Inspector) IsLoading() bool {
	return i.loading
}

// DetailView returns the displayed record
func (i Inspector) DetailView() service.DetailView {
	return i.view
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	i.refresh()
}

// Update advances the spinner and scrolls the plot
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !i.loading {
			return i, nil
		}
		var cmd tea.Cmd
		i.spinner, cmd = i.spinner.Update(msg)
		return i, cmd
	case tea.KeyMsg:
		var cmd tea.Cmd
		i.viewport, cmd = i.viewport.Update(msg)
		return i, cmd
	}
	return i, nil
}

func (i Inspector) contentWidth() int {
	// Border takes 2 chars (1 each side), leave 1 char safety margin
	return max(i.width-BorderWidth-1, 10)
}

func (i Inspector) header() string {
	width := i.contentWidth()
	var b strings.Builder

	title := i.view.Title()
	if title == "" {
		title = i.title
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))

	if !i.view.Present() {
		return b.String()
	}
	b.WriteString("\n")

	b.WriteString(styles.DimStyle.Render(strings.Join([]string{i.view.Kind(), i.view.Year()}, " · ")))
	b.WriteString("\n")
	b.WriteString(styles.AccentStyle.Render("★ " + i.view.Rating()))
	b.WriteString(" ")
	b.WriteString(styles.DimStyle.Render(i.view.Votes()))
	b.WriteString("\n\n")
	b.WriteString(field("Director", i.view.Director(), width))
	b.WriteString("\n")
	b.WriteString(field("Language", i.view.Language(), width))
	return b.String()
}

func (i Inspector) footer() string {
	if !i.view.Present() {
		return ""
	}
	poster := i.poster
	if poster == "" {
		poster = "No poster"
		if i.view.PosterURL() != "" {
			poster = "Loading poster..."
		}
	}
	style := styles.DimStyle
	if i.posterErr {
		style = styles.ErrorStyle
	}
	return styles.LabelStyle.Render("Poster") + style.Render(styles.Truncate(poster, max(i.contentWidth()-10, 1)))
}

func field(label, value string, width int) string {
	return styles.LabelStyle.Render(label) + styles.Truncate(value, max(width-10, 1))
}

// refresh re-wraps the plot into the viewport
func (i *Inspector) refresh() {
	headerH := lipgloss.Height(i.header())
	footerH := 0
	if f := i.footer(); f != "" {
		footerH = lipgloss.Height(f) + 1
	}

	i.viewport.Width = i.contentWidth()
	i.viewport.Height = max(i.height-BorderHeight-headerH-footerH-1, 1)

	body := ""
	switch {
	case i.err != nil:
		body = styles.ErrorStyle.Render("Failed to load details: " + i.err.Error())
	case i.view.Present():
		body = lipgloss.NewStyle().Width(i.viewport.Width).Render(i.view.Plot())
	}
	i.viewport.SetContent(body)
	i.viewport.GotoTop()
}

// View renders the component
func (i Inspector) View() string {
	style := styles.ActiveBorder

	var parts []string
	if i.loading {
		parts = append(parts,
			styles.TitleStyle.Render(styles.Truncate(i.title, i.contentWidth())),
			"",
			i.spinner.View()+styles.DimStyle.Render(" Loading details..."),
		)
	} else {
		parts = append(parts, i.header(), i.viewport.View())
		if f := i.footer(); f != "" {
			parts = append(parts, "", f)
		}
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(i.width - frameW).
		Height(i.height - frameH).
		Render(strings.Join(parts, "\n"))
}
