// Package config loads settings for tools built on the event model.
//
// Settings come from an optional YAML file, then environment variables
// prefixed with SWITCHEVENT_ override individual fields:
//
//	codec: json
//	escape: true
//	unique_headers: false
//	pool:
//	  enabled: true
//	  headers: 4096
//	  events: 256
//	log:
//	  level: info
//	  format: text
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SWITCHEVENT_"

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config holds tool settings.
type Config struct {
	// Codec is the registered codec name used for output, e.g. "json".
	Codec string `yaml:"codec" env:"CODEC"`
	// Escape percent-encodes native format header values.
	Escape bool `yaml:"escape" env:"ESCAPE"`
	// UniqueHeaders creates events that replace headers instead of
	// duplicating them.
	UniqueHeaders bool `yaml:"unique_headers" env:"UNIQUE_HEADERS"`

	Pool Pool `yaml:"pool" envPrefix:"POOL_"`
	Log  Log  `yaml:"log" envPrefix:"LOG_"`
}

// Pool configures header and event recycling.
type Pool struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	Headers int  `yaml:"headers" env:"HEADERS"`
	Events  int  `yaml:"events" env:"EVENTS"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Codec:  "plain",
		Escape: true,
		Pool: Pool{
			Headers: 4096,
			Events:  256,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults, applies the environment and validates
// the result. An empty path skips the file; a missing file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and names.
func (c Config) Validate() error {
	if c.Codec == "" {
		return fmt.Errorf("%w: codec is empty", ErrInvalid)
	}
	if c.Pool.Enabled && (c.Pool.Headers <= 0 || c.Pool.Events <= 0) {
		return fmt.Errorf("%w: pool capacities must be positive, got headers=%d events=%d",
			ErrInvalid, c.Pool.Headers, c.Pool.Events)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return level, nil
}

// Logger builds a logger writing to w in the configured format and level.
func (l Log) Logger(w io.Writer) *slog.Logger {
	level, err := l.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
