package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/ui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "kogrid",
	Short:   "Page, sort and browse tabular data from the terminal",
	Version: config.Version,
	Long: `kogrid loads rows from JSON, YAML or CSV files, stdin or URLs and shows them
as a paginated, sortable grid, either as a single page, a line-oriented
session or a full screen TUI.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.RenderError(err)
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("kogrid version {{.Version}} (commit: %s, date: %s)\n", config.GitCommit, config.BuildDate))

	rootCmd.AddGroup(&cobra.Group{ID: "grid", Title: "Grid"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "Configuration"})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.kogrid.yaml)")
	flags.StringP("output", "o", "table", "Output format (table, json, json-pretty, yaml, csv, txt)")
	flags.CountP("verbose", "v", "increase verbosity")
	flags.String("sort", "", "column to sort by, prefix with - for descending or + for ascending")
	flags.Int("page-size", 0, "rows per page (default from config, 5)")
	flags.Int("pager-count", 0, "page links in the pager window (default from config, 5)")
	flags.Bool("no-cache", false, "Disable caching of remote sources")

	for key, flag := range map[string]string{
		"output":      "output",
		"verbose":     "verbose",
		"sort":        "sort",
		"page_size":   "page-size",
		"pager_count": "pager-count",
		"no_cache":    "no-cache",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
	config.SetDefaults()
}

// initConfig merges the config file, KOGRID_ env vars and flags into
// config.Get() and sets up logging.
func initConfig() error {
	cfg := config.Get()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".kogrid")
	}

	viper.SetEnvPrefix("KOGRID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		cfg.ConfigPath = viper.ConfigFileUsed()
	} else if cfgFile != "" {
		// config init may be creating it
		cfg.ConfigPath = cfgFile
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "table"
	}
	if err := config.ValidateOutput(cfg.OutputFormat); err != nil {
		return err
	}
	if strings.HasPrefix(cfg.CacheDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CacheDir = filepath.Join(home, cfg.CacheDir[2:])
		}
	}

	cfg.SetupLogging()
	return nil
}

// gridName labels a grid after its first source
func gridName(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return "stdin"
	}
	name := filepath.Base(args[0])
	if i := strings.IndexAny(name, "?#"); i > 0 {
		name = name[:i]
	}
	if len(args) > 1 {
		name = fmt.Sprintf("%s +%d", name, len(args)-1)
	}
	return name
}
