package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyscout/keyscout/pkg/search"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, "*_header_[0-9]*.csv", cfg.ExcludeGlob)
	assert.Equal(t, 5, cfg.MaxKeyLength)
	assert.Equal(t, "hyfd", cfg.OracleCommand)
	assert.True(t, cfg.Progress)
	assert.Equal(t, "keyscout.log", cfg.LogPath)
	assert.Nil(t, cfg.Strategies)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dir: "/data/exports"
max_key_length: 3
strategies: "linear,smart,exhaustive"
progress: false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/exports", cfg.Dir)
	assert.Equal(t, 3, cfg.MaxKeyLength)
	assert.False(t, cfg.Progress)
	assert.Equal(t, []search.Strategy{
		search.StrategyLinear,
		search.StrategySmart,
		search.StrategyExhaustive,
	}, cfg.Strategies)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_key_length: 3\n"), 0o644))
	t.Setenv("KEYSCOUT_MAX_KEY_LENGTH", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxKeyLength)
}

func TestLoadInvalidStrategy(t *testing.T) {
	t.Setenv("KEYSCOUT_STRATEGIES", "linear,warp-drive")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warp-drive")
}

func TestLoadRejectsNonPositiveKeyLength(t *testing.T) {
	t.Setenv("KEYSCOUT_MAX_KEY_LENGTH", "0")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_key_length")
}
