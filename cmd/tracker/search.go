package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kerbaras/tracker/pkg/render"
	"github.com/kerbaras/tracker/pkg/services"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for anime or manga",
	Long:  "Search Jikan for anime or manga and display results in a table",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		tracker := openTracker(cmd.Context())
		defer tracker.Close()

		outcome := tracker.Search(cmd.Context(), query, categoryFlag(cmd))
		pane := searchPane(tracker, outcome)
		switch pane.State {
		case render.StateInvalid, render.StateEmpty:
			fmt.Println(pane.Message)
			return
		case render.StateError:
			cobra.CheckErr(fmt.Errorf("search failed: %w", outcome.Err))
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("#", "Title", "Status", "Count", "ID", "Lists")

		for i, item := range pane.Items {
			count := "-"
			if item.CountLabel != "" {
				count = fmt.Sprintf("%s %s", item.Count, strings.ToLower(item.CountLabel))
			}
			t.Row(fmt.Sprintf("%d", i+1), truncateString(item.Title, 48), item.Status, count, item.ID, membership(item))
		}

		fmt.Println(t)
	},
}

func searchPane(tracker *services.Tracker, outcome services.SearchOutcome) render.ResultsPane {
	if outcome.Generation == 0 {
		// rejected before any request; the tracked state is untouched
		return tracker.ResultsViewFor(render.SearchState{Err: outcome.Err})
	}
	return tracker.ResultsView()
}

func membership(item render.ResultItem) string {
	switch {
	case !item.CanAddPending:
		return "to be read"
	case !item.CanAddCompleted:
		return "read"
	default:
		return ""
	}
}

func init() {
	searchCmd.Flags().StringP("type", "t", "anime", "anime or manga")

	rootCmd.AddCommand(searchCmd)
}
