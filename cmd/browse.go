package cmd

import (
	"context"
	"errors"
	"slices"

	"github.com/spf13/cobra"
	"github.com/ygelfand/kogrid/internal/commands"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/grid"
)

var errBrowseStdin = errors.New("browse reads commands from stdin; load data from a file or URL")

var browseCmd = &cobra.Command{
	Use:   "browse SOURCE...",
	Short: "Page through a data set one command per line",
	Long: `Start a line-oriented session over the data set. The page is printed again
after every command that changes it. Commands: n, p, g N, s COL, h COL, q.`,
	GroupID: "grid",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if slices.Contains(args, "-") {
			return errBrowseStdin
		}
		return nil
	},
	RunE: commands.RunWithGrid(func(ctx context.Context, vm *grid.ViewModel, cmd *cobra.Command, args []string, opts *commands.GridOptions) error {
		r := commands.OutputRenderer{Name: gridName(args), Format: opts.OutputFormat, Icons: config.Get().IconType}
		return commands.Browse(vm, r, cmd.InOrStdin(), cmd.OutOrStdout())
	}),
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
