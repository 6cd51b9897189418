package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadConfig_FileAndClamping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  type: file
  file: /tmp/board.json
  fetch_timeout_sec: -4
  max_retries: -1
display:
  group_by: user
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Source.Type)
	assert.Equal(t, "/tmp/board.json", cfg.Source.File)
	assert.Equal(t, 30, cfg.Source.FetchTimeoutSec)
	assert.Equal(t, 0, cfg.Source.MaxRetries)
	assert.Equal(t, "user", cfg.Display.GroupBy)
	assert.Equal(t, "priority", cfg.Display.SortBy, "unset keys keep defaults")
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TICKETBOARD_SOURCE_URL", "http://localhost:1234/board")
	t.Setenv("TICKETBOARD_DISPLAY_SORT_BY", "title")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:1234/board", cfg.Source.URL)
	assert.Equal(t, "title", cfg.Display.SortBy)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Source.TokenKey = "endpoint-token"
	cfg.Display.GroupBy = "priority"

	require.NoError(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
