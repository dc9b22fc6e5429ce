package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ygelfand/kogrid/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.FullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
