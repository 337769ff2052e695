package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"golang.org/x/term"
)

// printer writes command output. Styled output is used only when writing
// to a terminal; otherwise rows are tab-separated for scripting.
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(w io.Writer) printer {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	return printer{w: w, styled: styled}
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(styles.Marquee).Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimCell     = cellStyle.Foreground(styles.DimGray)
)

// table prints rows under headers
func (p printer) table(headers []string, rows [][]string) {
	if !p.styled {
		for _, row := range rows {
			fmt.Fprintln(p.w, strings.Join(row, "\t"))
		}
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return dimCell
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Fprintln(p.w, t)
}

// fields prints label/value pairs, one per line
func (p printer) fields(pairs [][2]string) {
	for _, kv := range pairs {
		if p.styled {
			fmt.Fprintln(p.w, styles.LabelStyle.Render(kv[0])+kv[1])
		} else {
			fmt.Fprintf(p.w, "%s:\t%s\n", kv[0], kv[1])
		}
	}
}

// title prints a heading line
func (p printer) title(s string) {
	if p.styled {
		fmt.Fprintln(p.w, styles.TitleStyle.Render(s))
		return
	}
	fmt.Fprintln(p.w, s)
}

// line prints a plain message
func (p printer) line(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.styled {
		msg = styles.DimStyle.Render(msg)
	}
	fmt.Fprintln(p.w, msg)
}
