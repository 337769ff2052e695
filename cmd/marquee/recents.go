package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var recentsCmd = &cobra.Command{
	Use:   "recents",
	Short: "List recent searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{offline: true})
		if err != nil {
			return err
		}
		defer a.Close()

		printRecents(newPrinter(cmd.OutOrStdout()), a.search.Recents())
		return nil
	},
}

var recentsRmCmd = &cobra.Command{
	Use:   "rm <index...>",
	Short: "Remove recent searches by their listed number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		indices := make([]int, len(args))
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid index %q: expected a number from the recents list", arg)
			}
			indices[i] = n - 1
		}

		a, err := newApp(appOptions{offline: true})
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.search.RemoveRecents(indices...); err != nil {
			return fmt.Errorf("failed to remove recent searches: %w", err)
		}
		printRecents(newPrinter(cmd.OutOrStdout()), a.search.Recents())
		return nil
	},
}

var recentsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recent search",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{offline: true})
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.search.ClearRecents(); err != nil {
			return fmt.Errorf("failed to clear recent searches: %w", err)
		}
		newPrinter(cmd.OutOrStdout()).line("Recent searches cleared.")
		return nil
	},
}

func init() {
	recentsCmd.AddCommand(recentsRmCmd)
	recentsCmd.AddCommand(recentsClearCmd)
}

func printRecents(out printer, recents []string) {
	if len(recents) == 0 {
		out.line("No recent searches.")
		return
	}
	rows := make([][]string, len(recents))
	for i, r := range recents {
		rows[i] = []string{strconv.Itoa(i + 1), r}
	}
	out.table([]string{"#", "Query"}, rows)
}
