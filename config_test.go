package ramune_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune"
)

func TestParseConfig(t *testing.T) {
	t.Run("empty uses defaults", func(t *testing.T) {
		cfg, err := ramune.ParseConfig(nil)
		require.NoError(t, err)
		assert.Equal(t, ramune.DefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := ramune.ParseConfig([]byte(`
title: bounce
width: 1280
backend: headless
headless:
  frames: 120
log_level: debug
`))
		require.NoError(t, err)

		want := ramune.DefaultConfig()
		want.Title = "bounce"
		want.Width = 1280
		want.Backend = "headless"
		want.Headless.Frames = 120
		want.LogLevel = "debug"
		assert.Equal(t, want, cfg)
	})

	t.Run("invalid", func(t *testing.T) {
		for name, doc := range map[string]string{
			"unknown field": "fullscreen: true\n",
			"bad size":      "width: -1\n",
			"bad tps":       "tps: 0\n",
			"bad level":     "log_level: loud\n",
			"bad hz":        "headless: {hz: -5}\n",
			"not yaml":      "width: [\n",
		} {
			_, err := ramune.ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, ramune.ErrInvalidConfig, name)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tps: 30\n"), 0o600))

	cfg, err := ramune.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TPS)

	_, err = ramune.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
