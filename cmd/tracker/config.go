package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long:  "Print the configuration after defaults and ~ expansion, as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out, err := cfg.Dump()
		cobra.CheckErr(err)
		fmt.Printf("# %s\n%s", configPath, out)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
