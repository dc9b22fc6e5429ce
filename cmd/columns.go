package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/ygelfand/kogrid/internal/commands"
	"github.com/ygelfand/kogrid/internal/grid"
	"github.com/ygelfand/kogrid/internal/presenters"
)

var columnsCmd = &cobra.Command{
	Use:     "columns SOURCE...",
	Short:   "List the columns a data set is shown with",
	GroupID: "grid",
	Args:    cobra.MinimumNArgs(1),
	RunE: commands.RunWithGrid(func(ctx context.Context, vm *grid.ViewModel, cmd *cobra.Command, args []string, opts *commands.GridOptions) error {
		return commands.Print(cmd.OutOrStdout(), &presenters.ColumnsPresenter{VM: vm}, opts)
	}),
}

func init() {
	rootCmd.AddCommand(columnsCmd)
}
