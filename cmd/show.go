package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/kogrid/internal/commands"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/grid"
	"github.com/ygelfand/kogrid/internal/presenters"
	"github.com/ygelfand/kogrid/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show SOURCE...",
	Short: "Print one page of a data set",
	Long: `Print one page of rows with the pager window under it. SOURCE is a JSON,
YAML or CSV file, "-" for stdin, or an http(s) URL. Several sources are
concatenated in order.`,
	Example: `  kogrid show users.csv --sort -created_at --page 3
  curl -s https://example.com/users.json | kogrid show - -o yaml`,
	GroupID: "grid",
	Args:    cobra.MinimumNArgs(1),
	RunE: commands.RunWithGrid(func(ctx context.Context, vm *grid.ViewModel, cmd *cobra.Command, args []string, opts *commands.GridOptions) error {
		if err := commands.SeekPage(vm, opts.Page); err != nil {
			return err
		}
		slog.Debug("Show: printing page", "page", vm.CurrentPageIndex()+1, "window", []int{vm.StartPage(), vm.EndPage()})
		p := &presenters.GridPresenter{
			VM:         vm,
			Name:       gridName(args),
			Icons:      config.Get().IconType,
			SortGlyphs: ui.Decorated(opts.OutputFormat),
		}
		return commands.Print(cmd.OutOrStdout(), p, opts)
	}),
}

func init() {
	showCmd.Flags().Int("page", 1, "page to show")
	viper.BindPFlag("page", showCmd.Flags().Lookup("page"))
	rootCmd.AddCommand(showCmd)
}
