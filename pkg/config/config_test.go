package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revlog-project/revlog/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestSaveAndLoad(t *testing.T) {
	root := t.TempDir()

	cfg := config.Default()
	cfg.Store.Backend = "badger"
	cfg.Logging.Level = "debug"
	cfg.Metrics.Enabled = true
	require.NoError(t, config.Save(root, cfg))

	loaded, err := config.Load(root)
	require.NoError(t, err)
	assert.Equal(t, "badger", loaded.Store.Backend)
	assert.Equal(t, "debug", loaded.Logging.Level)
	assert.True(t, loaded.Metrics.Enabled)
	assert.Equal(t, ":9464", loaded.Metrics.Listen)
}

func TestLoad_MalformedYAML(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".revlog")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: ["), 0644))

	_, err := config.Load(root)
	assert.Error(t, err)
}
