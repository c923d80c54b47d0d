package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4, cfg.OffsetHours)
	assert.Equal(t, []string{".deg", ".lux", ".light", ".sst"}, cfg.Extensions)
	assert.Equal(t, "driftadj", cfg.ExcludeMarker)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "driftnorm.yaml")
	content := "offset_hours: 10\nextensions: [\".deg\"]\nlog_level: debug\ncache_dir: /tmp/cache\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.OffsetHours)
	assert.Equal(t, []string{".deg"}, cfg.Extensions)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/cache", cfg.CacheDir)
	// Untouched keys keep defaults.
	assert.Equal(t, "driftadj", cfg.ExcludeMarker)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DRIFTNORM_OFFSET_HOURS", "7")
	t.Setenv("DRIFTNORM_EXTENSIONS", " .deg , .sst ")
	t.Setenv("DRIFTNORM_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.OffsetHours)
	assert.Equal(t, []string{".deg", ".sst"}, cfg.Extensions)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("offset_hours: [not an int"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad-ext.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extensions: [\"deg\"]"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
