package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nhle/ticketboard/internal/model"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ticketboard.log")

	log, err := New(model.LogConfig{Level: "debug", File: path}, false)
	require.NoError(t, err)

	log.Named("api").Debug("snapshot fetched", zap.Int("tickets", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"snapshot fetched"`)
	assert.Contains(t, string(data), `"logger":"api"`)
	assert.Contains(t, string(data), `"tickets":3`)
}

func TestNew_LevelFiltersAndFallsBack(t *testing.T) {
	dir := t.TempDir()

	warnPath := filepath.Join(dir, "warn.log")
	log, err := New(model.LogConfig{Level: "WARN", File: warnPath}, false)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	data, err := os.ReadFile(warnPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")

	bogusPath := filepath.Join(dir, "bogus.log")
	log, err = New(model.LogConfig{Level: "chatty", File: bogusPath}, false)
	require.NoError(t, err)
	log.Debug("dropped")
	log.Info("kept")
	_ = log.Sync()

	data, err = os.ReadFile(bogusPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}
