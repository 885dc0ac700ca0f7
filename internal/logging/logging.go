// Package logging holds the logger shared by ramune and its sub-packages.
package logging

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerPtr is accessed atomically so Set can race with logging from the
// game loop or a platform goroutine.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// Set replaces the active logger. Nil restores the silent default.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// L returns the active logger.
func L() *zap.Logger {
	return loggerPtr.Load()
}

// Named returns the active logger scoped to a subsystem name.
func Named(name string) *zap.Logger {
	return loggerPtr.Load().Named(name)
}

// LevelEnv overrides the level passed to New.
const LevelEnv = "RAMUNE_LOG_LEVEL"

// New builds the console logger used by ramune's commands. The level comes
// from LevelEnv when set, then from level, then defaults to info.
func New(app, level string) (*zap.Logger, error) {
	if env := os.Getenv(LevelEnv); env != "" {
		level = env
	}
	if level == "" {
		level = "info"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.Config{
		Level:            lvl,
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    map[string]any{"app": app},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "ts",
			NameKey:        "logger",
			CallerKey:      "src",
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}
	return cfg.Build()
}
