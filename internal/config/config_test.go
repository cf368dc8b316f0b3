package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 0.2, cfg.RecencyWeight)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Equal(t, 5, cfg.ScrapeBatchSize)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": 9000,
		"recency_weight": 0.5,
		"corpus_path": "custom/events.csv"
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 0.5, cfg.RecencyWeight)
	assert.Equal(t, "custom/events.csv", cfg.CorpusPath)
	// Untouched fields keep their defaults.
	assert.Equal(t, 10, cfg.MaxResults)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("EVENTSCOUT_CORPUS", "env/events.csv")
	t.Setenv("PORT", "3000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env/events.csv", cfg.CorpusPath)
	assert.Equal(t, 3000, cfg.Port)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"recency_weight": 1.5}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
