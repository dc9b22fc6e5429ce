package config

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingLevels(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		want      slog.Level
	}{
		{name: "quiet", verbosity: 0, want: slog.LevelInfo},
		{name: "verbose", verbosity: 1, want: slog.LevelDebug},
		{name: "trace", verbosity: 2, want: LevelTrace},
		{name: "beyond trace", verbosity: 5, want: LevelTrace},
	}

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			c.Verbosity = tt.verbosity
			c.LogFile = filepath.Join(t.TempDir(), "logs", "kogrid.log")
			c.SetupLogging()

			assert.Equal(t, tt.want, c.LogLevel.Level())
			assert.True(t, c.Enabled(tt.want))
			assert.FileExists(t, c.LogFile)
		})
	}
}

func TestHandlerRendersTrace(t *testing.T) {
	c := Default()
	c.LogLevel.Set(LevelTrace)

	var buf bytes.Buffer
	slog.New(c.Handler(&buf)).Log(context.Background(), LevelTrace, "Cache: GET", "key", "k")

	assert.Contains(t, buf.String(), "level=TRACE")
	assert.Contains(t, buf.String(), `msg="Cache: GET"`)
}

func TestValidateOutput(t *testing.T) {
	for _, f := range []string{"table", "json", "json-pretty", "yaml", "csv", "txt"} {
		assert.NoError(t, ValidateOutput(f), f)
	}
	assert.Error(t, ValidateOutput("xml"))
}

func TestSaveRoundTrip(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	hidden := false
	c := Default()
	c.ConfigPath = filepath.Join(t.TempDir(), "kogrid.yaml")
	c.PageSize = 10
	c.Collation = "sv"
	c.CacheTTL = time.Hour
	c.Columns = []ColumnConfig{
		{HeaderText: "Name", RowText: "name"},
		{HeaderText: "Secret", RowText: "secret", Visible: &hidden},
	}
	require.NoError(t, c.Save())

	v := viper.New()
	v.SetConfigFile(c.ConfigPath)
	require.NoError(t, v.ReadInConfig())

	var got Config
	require.NoError(t, v.Unmarshal(&got))
	assert.Equal(t, 10, got.PageSize)
	assert.Equal(t, "sv", got.Collation)
	assert.Equal(t, time.Hour, got.CacheTTL)
	require.Len(t, got.Columns, 2)
	assert.Equal(t, "name", got.Columns[0].RowText)
	assert.Nil(t, got.Columns[0].Visible)
	require.NotNil(t, got.Columns[1].Visible)
	assert.False(t, *got.Columns[1].Visible)
}
