package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ygelfand/kogrid/internal/commands"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/presenters"
	"github.com/ygelfand/kogrid/internal/ui"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Inspect and write the kogrid configuration",
	GroupID: "config",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return commands.Print(cmd.OutOrStdout(), configPresenter(config.Get()), commands.OptionsFromViper())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		ui.RenderSuccess(cmd.OutOrStdout(), "Wrote "+cfg.ConfigPath)
		return nil
	},
}

var configThemeCmd = &cobra.Command{
	Use:   "theme [ID]",
	Short: "Pick the TUI theme, interactively when no ID is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) == 1 {
			id = args[0]
		} else {
			var options []ui.Option
			for _, t := range ui.Themes() {
				options = append(options, ui.Option{Title: t.DisplayName(), Desc: t.ID(), Value: t.ID()})
			}
			choice, err := ui.Choose("Theme", options)
			if errors.Is(err, ui.ErrNoSelection) {
				return nil
			}
			if err != nil {
				return err
			}
			id = choice
		}
		return setTheme(cmd, id)
	},
}

func setTheme(cmd *cobra.Command, id string) error {
	for _, t := range ui.Themes() {
		if t.ID() == id {
			cfg := config.Get()
			cfg.Theme = id
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			ui.RenderSuccess(cmd.OutOrStdout(), "Theme set to "+t.DisplayName())
			return nil
		}
	}
	return fmt.Errorf("unknown theme %q", id)
}

func configPresenter(cfg *config.Config) presenters.SimplePresenter {
	raw := map[string]any{
		"config_path": cfg.ConfigPath,
		"output":      cfg.OutputFormat,
		"verbose":     cfg.Verbosity,
		"theme":       cfg.Theme,
		"icon_type":   cfg.IconType,
		"page_size":   cfg.PageSize,
		"pager_count": cfg.PagerCount,
		"collation":   cfg.Collation,
		"columns":     cfg.Columns,
		"cache_dir":   cfg.CacheDir,
		"cache_ttl":   cfg.CacheTTL.String(),
		"no_cache":    cfg.NoCache,
	}
	return presenters.SimplePresenter{
		T: "Configuration",
		H: []string{"KEY", "VALUE"},
		R: [][]string{
			{"config_path", cfg.ConfigPath},
			{"output", cfg.OutputFormat},
			{"verbose", strconv.Itoa(cfg.Verbosity)},
			{"theme", cfg.Theme},
			{"icon_type", string(cfg.IconType)},
			{"page_size", strconv.Itoa(cfg.PageSize)},
			{"pager_count", strconv.Itoa(cfg.PagerCount)},
			{"collation", cfg.Collation},
			{"columns", strconv.Itoa(len(cfg.Columns))},
			{"cache_dir", cfg.CacheDir},
			{"cache_ttl", cfg.CacheTTL.String()},
			{"no_cache", strconv.FormatBool(cfg.NoCache)},
		},
		RawData: raw,
	}
}

func init() {
	configCmd.AddCommand(configShowCmd, configInitCmd, configThemeCmd)
	rootCmd.AddCommand(configCmd)
}
