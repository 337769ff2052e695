package main

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Search movies and series from the terminal",
	Long: "marquee searches the OMDb title database, shows full details for a title, " +
		"and remembers your recent searches.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "keep recent searches in memory only")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(recentsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "marquee %s\n", Version)
	},
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(appOptions{live: true})
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(ctx, a.search, a.detail, a.posters, a.changes)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	slog.Info("starting TUI", "version", Version)

	if _, err := p.Run(); err != nil {
		slog.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("shutting down")
	return nil
}
