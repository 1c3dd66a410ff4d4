package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartrain.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":8080"
max_message_len = 50
fps = 30
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 50, cfg.MaxMessageLen)
	assert.Equal(t, 30, cfg.FPS)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultConfig().Width, cfg.Width)
	assert.Equal(t, DefaultConfig().Duration, cfg.Duration)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestConfigParams(t *testing.T) {
	p := DefaultConfig().Params()
	require.NoError(t, p.Validate())
	assert.Equal(t, 75, p.TotalFrames())
}
