package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerbaras/tracker/pkg/data"
)

func truncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func categoryFlag(cmd *cobra.Command) data.Category {
	raw, _ := cmd.Flags().GetString("type")
	c, ok := data.ParseCategory(raw)
	if !ok {
		cobra.CheckErr(fmt.Errorf("unknown type %q, want anime or manga", raw))
	}
	return c
}

func listFlag(cmd *cobra.Command, name string) data.ListName {
	raw, _ := cmd.Flags().GetString(name)
	l, ok := data.ParseListName(raw)
	if !ok {
		cobra.CheckErr(fmt.Errorf("unknown list %q, want pending or completed", raw))
	}
	return l
}
