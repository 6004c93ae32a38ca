package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kerbaras/tracker/pkg/data"
	"github.com/kerbaras/tracker/pkg/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your To Be Read and Read lists",
	Long:  "Display tracked anime and manga in a formatted table",
	Run: func(cmd *cobra.Command, args []string) {
		tracker := openTracker(cmd.Context())
		defer tracker.Close()

		lists := []data.ListName{data.Pending, data.Completed}
		if cmd.Flags().Changed("list") {
			lists = []data.ListName{listFlag(cmd, "list")}
		}

		for _, l := range lists {
			printList(tracker.ListView(l))
		}
	},
}

func printList(pane render.ListPane) {
	fmt.Printf("\n📚 %s (%d)\n\n", pane.Title, len(pane.Entries))
	if len(pane.Entries) == 0 {
		fmt.Println(pane.Placeholder)
		return
	}

	columns := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Title", Width: 40},
		{Title: "Type", Width: 8},
		{Title: "Added", Width: 12},
	}

	rows := []table.Row{}
	for _, e := range pane.Entries {
		rows = append(rows, table.Row{
			e.ID,
			truncateString(e.Title, 38),
			string(e.Category),
			e.DateAdded,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	fmt.Println(t.View())
}

var moveCmd = &cobra.Command{
	Use:   "move [id]",
	Short: "Move an item to the other list",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tracker := openTracker(cmd.Context())
		defer tracker.Close()

		id := args[0]
		from, ok := sourceList(cmd, id, tracker.Find)
		if !ok {
			fmt.Printf("ℹ️  '%s' is not in any list\n", id)
			return
		}

		change, err := tracker.Move(cmd.Context(), id, from)
		cobra.CheckErr(err)
		if !change.Changed {
			fmt.Printf("ℹ️  '%s' is not in %s\n", id, from.Title())
			return
		}
		fmt.Printf("✅ Moved '%s' to %s\n", id, change.List.Title())
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Remove an item from a list",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tracker := openTracker(cmd.Context())
		defer tracker.Close()

		id := args[0]
		from, ok := sourceList(cmd, id, tracker.Find)
		if !ok {
			fmt.Printf("ℹ️  '%s' is not in any list\n", id)
			return
		}

		change, err := tracker.Remove(cmd.Context(), id, from)
		cobra.CheckErr(err)
		if !change.Changed {
			fmt.Printf("ℹ️  '%s' is not in %s\n", id, from.Title())
			return
		}
		fmt.Printf("🗑️  Removed '%s' from %s\n", id, from.Title())
	},
}

// sourceList returns --from when given, else the list currently holding id.
func sourceList(cmd *cobra.Command, id string, find func(string) (data.ListEntry, data.ListName, bool)) (data.ListName, bool) {
	if cmd.Flags().Changed("from") {
		return listFlag(cmd, "from"), true
	}
	_, list, ok := find(id)
	return list, ok
}

func init() {
	listCmd.Flags().String("list", "", "only show this list: pending or completed")
	moveCmd.Flags().String("from", "", "list to move from: pending or completed")
	removeCmd.Flags().String("from", "", "list to remove from: pending or completed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(removeCmd)
}
