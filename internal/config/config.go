package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns a concatenated version string
func FullVersion() string {
	return fmt.Sprintf("%s-%s-%s", Version, GitCommit, BuildDate)
}

type IconType string

const (
	IconTypeASCII     IconType = "ascii"
	IconTypeEmoji     IconType = "emoji"
	IconTypeNerdFonts IconType = "nerdfonts"
)

// ColumnConfig is a column definition read from the config file. Nil flags
// are left to the grid's defaults.
type ColumnConfig struct {
	HeaderText string `mapstructure:"header_text" yaml:"header_text"`
	RowText    string `mapstructure:"row_text" yaml:"row_text,omitempty"`
	// Template is a text/template over the row's fields. It takes precedence
	// over RowText.
	Template string `mapstructure:"template" yaml:"template,omitempty"`
	Content  string `mapstructure:"content" yaml:"content,omitempty"`
	Visible  *bool  `mapstructure:"visible" yaml:"visible,omitempty"`
	Bound    *bool  `mapstructure:"bound" yaml:"bound,omitempty"`
	Sortable *bool  `mapstructure:"sortable" yaml:"sortable,omitempty"`
}

// Config holds the global configuration for kogrid
type Config struct {
	OutputFormat string         `mapstructure:"output"`
	Verbosity    int            `mapstructure:"verbose"`
	Theme        string         `mapstructure:"theme"`
	IconType     IconType       `mapstructure:"icon_type"` // ascii, emoji, nerdfonts
	PageSize     int            `mapstructure:"page_size"`
	PagerCount   int            `mapstructure:"pager_count"`
	Collation    string         `mapstructure:"collation"` // BCP 47 tag, empty for bytewise
	Columns      []ColumnConfig `mapstructure:"columns"`
	CacheDir     string         `mapstructure:"cache_dir"`
	CacheTTL     time.Duration  `mapstructure:"cache_ttl"`
	NoCache      bool           `mapstructure:"no_cache"`

	// Runtime only
	ConfigPath string       `mapstructure:"-"`
	LogFile    string       `mapstructure:"-"`
	Logger     *slog.Logger `mapstructure:"-"`
	LogLevel   *slog.LevelVar
}

var (
	instance *Config
	once     sync.Once
)

const (
	LevelTrace slog.Level = -8
)

// Get returns the global configuration singleton
func Get() *Config {
	once.Do(func() {
		instance = Default()
	})
	return instance
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	home, _ := os.UserHomeDir()
	lvl := &slog.LevelVar{}
	lvl.Set(slog.LevelInfo)
	return &Config{
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})),
		LogLevel:     lvl,
		OutputFormat: "table",
		IconType:     IconTypeASCII,
		PageSize:     5,
		PagerCount:   5,
		CacheDir:     filepath.Join(home, ".kogrid", "cache"),
		CacheTTL:     10 * time.Minute,
	}
}

// SetDefaults registers the built-in defaults with viper so they rank above
// the zero defaults of unset flags.
func SetDefaults() {
	d := Default()
	viper.SetDefault("output", d.OutputFormat)
	viper.SetDefault("icon_type", d.IconType)
	viper.SetDefault("page_size", d.PageSize)
	viper.SetDefault("pager_count", d.PagerCount)
	viper.SetDefault("cache_dir", d.CacheDir)
	viper.SetDefault("cache_ttl", d.CacheTTL)
}

// SetupLogging initializes the global logger based on verbosity
func (c *Config) SetupLogging() {
	var level slog.Level
	switch {
	case c.Verbosity >= 2:
		level = LevelTrace
	case c.Verbosity >= 1:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	c.LogLevel.Set(level)

	var writer io.Writer = os.Stderr
	if c.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(c.LogFile), 0755)
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			writer = f
		}
	}

	c.Logger = slog.New(c.Handler(writer))
	slog.SetDefault(c.Logger)
}

// Handler builds the text handler used for all log output, with the custom
// trace level rendered as TRACE.
func (c *Config) Handler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: c.LogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				if level == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	})
}

// Enabled returns true if the given level is enabled
func (c *Config) Enabled(level slog.Level) bool {
	return c.LogLevel.Level() <= level
}

// Save persists the current configuration to disk
func (c *Config) Save() error {
	// Sync struct fields to viper before writing
	viper.Set("output", c.OutputFormat)
	viper.Set("verbose", c.Verbosity)
	viper.Set("theme", c.Theme)
	viper.Set("icon_type", c.IconType)
	viper.Set("page_size", c.PageSize)
	viper.Set("pager_count", c.PagerCount)
	viper.Set("collation", c.Collation)
	viper.Set("columns", c.Columns)
	viper.Set("cache_dir", c.CacheDir)
	viper.Set("cache_ttl", c.CacheTTL.String())
	viper.Set("no_cache", c.NoCache)

	if c.ConfigPath != "" {
		return viper.WriteConfigAs(c.ConfigPath)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.ConfigPath = filepath.Join(home, ".kogrid.yaml")
	return viper.WriteConfigAs(c.ConfigPath)
}

// ValidateOutput reports whether format is one the printers understand.
func ValidateOutput(format string) error {
	switch format {
	case "table", "json", "json-pretty", "yaml", "csv", "txt":
		return nil
	}
	return fmt.Errorf("invalid output format '%s'. Must be one of: table, json, json-pretty, yaml, csv, txt", format)
}
