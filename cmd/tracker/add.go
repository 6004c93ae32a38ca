package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerbaras/tracker/pkg/data"
)

var addCmd = &cobra.Command{
	Use:   "add [query | id]",
	Short: "Add an anime or manga to a list",
	Long:  "Add an item by id (e.g. anime-1) or add the first search result for a query",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := listFlag(cmd, "to")
		tracker := openTracker(cmd.Context())
		defer tracker.Close()

		if len(args) == 1 {
			if _, _, err := data.SplitEntryID(args[0]); err == nil {
				result, change, err := tracker.AddByID(cmd.Context(), args[0], target)
				if err != nil {
					cobra.CheckErr(fmt.Errorf("failed to add %s: %w", args[0], err))
				}
				reportAdd(result, change.Changed, target)
				return
			}
		}

		query := strings.Join(args, " ")
		fmt.Printf("🔍 Searching for '%s'...\n", query)

		outcome := tracker.Search(cmd.Context(), query, categoryFlag(cmd))
		if outcome.Err != nil {
			cobra.CheckErr(fmt.Errorf("search failed: %w", outcome.Err))
		}
		if len(outcome.Results) == 0 {
			fmt.Println("❌ No results found.")
			return
		}

		// Take the first result
		result := outcome.Results[0]
		fmt.Printf("✅ Found: %s (ID: %s)\n", result.Title, result.ID())

		change, err := tracker.Add(cmd.Context(), result, target)
		cobra.CheckErr(err)
		reportAdd(result, change.Changed, target)
	},
}

func reportAdd(result data.SearchResult, changed bool, target data.ListName) {
	if !changed {
		fmt.Printf("ℹ️  '%s' is already in %s\n", result.Title, target.Title())
		return
	}
	fmt.Printf("✅ Added '%s' to %s\n", result.Title, target.Title())
}

func init() {
	addCmd.Flags().StringP("type", "t", "anime", "anime or manga")
	addCmd.Flags().String("to", string(data.Pending), "list to add to: pending or completed")

	rootCmd.AddCommand(addCmd)
}
