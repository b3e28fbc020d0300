package masteryls

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.RequireID)
	assert.Equal(t, UnknownTypesSkip, cfg.UnknownTypes)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "require_id: true\nunknown_types: keep\nworkers: 8\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.RequireID)
	assert.Equal(t, UnknownTypesKeep, cfg.UnknownTypes)
	assert.Equal(t, 8, cfg.Workers)
	// Unset fields keep their defaults
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
}

func TestLoadConfigInvalidPolicy(t *testing.T) {
	path := writeConfig(t, "unknown_types: explode\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigInvalidWorkers(t *testing.T) {
	path := writeConfig(t, "workers: -1\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
