package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/spf13/cobra"
)

var flagPoster bool

var showCmd = &cobra.Command{
	Use:   "show <imdb-id>",
	Short: "Show full details for a title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		id := strings.TrimSpace(args[0])
		if err := a.detail.Load(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to load %s: %w", id, err)
		}
		view := a.detail.View()

		out := newPrinter(cmd.OutOrStdout())
		out.title(view.Title())
		pairs := detailFields(view)

		if flagPoster {
			pairs = append(pairs, [2]string{"Poster", describePoster(cmd, a.posters, view.PosterURL())})
		}
		out.fields(pairs)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&flagPoster, "poster", false, "fetch the poster and print its format and size")
}

func detailFields(view service.DetailView) [][2]string {
	return [][2]string{
		{"Type", view.Kind()},
		{"Year", view.Year()},
		{"Rating", view.Rating() + " " + view.Votes()},
		{"Director", view.Director()},
		{"Language", view.Language()},
		{"Plot", view.Plot()},
	}
}

func describePoster(cmd *cobra.Command, posters *service.PosterService, url string) string {
	data, err := posters.Poster(cmd.Context(), url)
	if errors.Is(err, domain.ErrNoPoster) {
		return "No poster"
	}
	if err != nil {
		return "Unavailable"
	}
	info, err := service.Describe(data)
	if err != nil {
		return "Unreadable image"
	}
	return info.String()
}
