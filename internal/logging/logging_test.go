package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/plus3/ramune/internal/logging"
)

func TestSet(t *testing.T) {
	t.Cleanup(func() { logging.Set(nil) })

	t.Run("silent by default", func(t *testing.T) {
		logging.Set(nil)
		assert.False(t, logging.L().Core().Enabled(zap.ErrorLevel))
	})

	t.Run("named loggers share the core", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		logging.Set(zap.New(core))

		logging.Named("lemon").Info("device ready", zap.String("name", "soft"))

		entries := logs.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, "lemon", entries[0].LoggerName)
			assert.Equal(t, "device ready", entries[0].Message)
		}
	})
}

func TestNew(t *testing.T) {
	t.Run("level from argument", func(t *testing.T) {
		t.Setenv(logging.LevelEnv, "")
		l, err := logging.New("test", "warn")
		if assert.NoError(t, err) {
			assert.False(t, l.Core().Enabled(zap.InfoLevel))
			assert.True(t, l.Core().Enabled(zap.WarnLevel))
		}
	})

	t.Run("env overrides argument", func(t *testing.T) {
		t.Setenv(logging.LevelEnv, "debug")
		l, err := logging.New("test", "error")
		if assert.NoError(t, err) {
			assert.True(t, l.Core().Enabled(zap.DebugLevel))
		}
	})

	t.Run("bad level", func(t *testing.T) {
		t.Setenv(logging.LevelEnv, "")
		_, err := logging.New("test", "loud")
		assert.Error(t, err)
	})
}
