package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ygelfand/kogrid/internal/commands"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/grid"
	"github.com/ygelfand/kogrid/internal/tui"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("tui needs an interactive terminal; use show or browse instead")

var tuiCmd = &cobra.Command{
	Use:     "tui SOURCE...",
	Short:   "Launch the interactive grid",
	GroupID: "grid",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errNoTerminal
		}
		return nil
	},
	RunE: commands.RunWithGrid(func(ctx context.Context, vm *grid.ViewModel, cmd *cobra.Command, args []string, opts *commands.GridOptions) error {
		cfg := config.Get()
		// Always log TUI sessions to a file, stderr belongs to the screen
		cfg.LogFile = filepath.Join(cfg.CacheDir, "tui.log")
		cfg.SetupLogging()
		slog.Info("TUI Starting", "log_file", cfg.LogFile, "verbosity", cfg.Verbosity, "rows", vm.Data().Len())

		return tui.Run(ctx, vm, gridName(args), tui.WithIcons(cfg.IconType))
	}),
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
