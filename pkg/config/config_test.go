package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "begraphes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":6000\"\nworkers: 8\nlog_format: json\n"), 0o644))
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":6000", cfg.ListenAddr)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "begraphesDB", cfg.DBPath)
	})

	t.Run("environment wins over the file", func(t *testing.T) {
		t.Setenv("BEGRAPHES_WORKERS", "2")
		t.Setenv("BEGRAPHES_DB_PATH", "/tmp/graph")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "/tmp/graph", cfg.DBPath)
	})

	t.Run("every field has an environment override", func(t *testing.T) {
		t.Setenv("BEGRAPHES_LISTEN_ADDR", ":7000")
		t.Setenv("BEGRAPHES_MAP_FILE", "jawa.osm.pbf")
		t.Setenv("BEGRAPHES_SNAP_CANDIDATES", "16")
		t.Setenv("BEGRAPHES_LOG_LEVEL", "debug")
		t.Setenv("BEGRAPHES_LOG_FORMAT", "json")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.ListenAddr)
		assert.Equal(t, "jawa.osm.pbf", cfg.MapFile)
		assert.Equal(t, 16, cfg.SnapCandidates)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("malformed numeric environment value is an error", func(t *testing.T) {
		t.Setenv("BEGRAPHES_WORKERS", "four")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BEGRAPHES_WORKERS")

		t.Setenv("BEGRAPHES_WORKERS", "")
		t.Setenv("BEGRAPHES_SNAP_CANDIDATES", "8x")
		_, err = Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BEGRAPHES_SNAP_CANDIDATES")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: 0\nlog_level: loud\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: [\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
