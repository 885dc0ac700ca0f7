package ramune

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds every setting a game can be built from. It is usually
// loaded from a YAML file with LoadConfig.
type Config struct {
	Title     string         `yaml:"title"`
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	Resizable bool           `yaml:"resizable"`
	VSync     bool           `yaml:"vsync"`
	TPS       int            `yaml:"tps"`
	Backend   string         `yaml:"backend"`
	Headless  HeadlessConfig `yaml:"headless"`
	LogLevel  string         `yaml:"log_level"`
}

// HeadlessConfig is used when Backend is "headless".
type HeadlessConfig struct {
	Hz     int    `yaml:"hz"`
	Frames uint64 `yaml:"frames"`
}

// DefaultConfig returns the settings used for anything a config file leaves
// out.
func DefaultConfig() Config {
	return Config{
		Title:     "ramune",
		Width:     800,
		Height:    600,
		Resizable: true,
		VSync:     true,
		TPS:       60,
		Backend:   "ebiten",
		LogLevel:  "info",
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ramune: load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, path)
	}
	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig. Unknown fields are
// rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	case c.Backend == "":
		return fmt.Errorf("%w: empty backend", ErrInvalidConfig)
	case c.Headless.Hz < 0:
		return fmt.Errorf("%w: headless hz %d", ErrInvalidConfig, c.Headless.Hz)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(c.LogLevel)
}
