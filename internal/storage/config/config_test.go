package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"htmm/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.ModsDir)
	assert.Equal(t, 0, cfg.CurseForgeGameID)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{
		ModsDir:          "/home/user/Hytale/UserData/Mods",
		CurseForgeGameID: 432,
	}
	require.NoError(t, cfg.Save(dir))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("mods_dir: [broken"), 0644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestDefaultModsDirCandidates(t *testing.T) {
	// Candidates depend on platform and environment; just check the shape.
	for _, candidate := range config.DefaultModsDirCandidates() {
		assert.NotEmpty(t, candidate)
		assert.Contains(t, candidate, "Mods")
	}
}
