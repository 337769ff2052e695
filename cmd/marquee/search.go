package main

import (
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search for titles",
	Long:  "Search OMDb for titles matching the query and print them as a table. The query is added to recent searches.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		out := newPrinter(cmd.OutOrStdout())
		query := strings.Join(args, " ")
		if strings.TrimSpace(query) == "" {
			out.line("Nothing to search for.")
			return nil
		}

		if err := a.search.Search(cmd.Context(), query); err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		results := a.search.Results()
		if len(results) == 0 {
			out.line("No titles found for %q.", a.search.Query())
			return nil
		}

		out.table([]string{"#", "Title", "Year", "Type", "ID"}, resultRows(results))
		return nil
	},
}

func resultRows(results []domain.SearchResult) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			styles.Truncate(r.Title, 58),
			r.Year,
			string(r.Kind),
			r.ID,
		}
	}
	return rows
}
