package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/danmuck/bitsctl/internal/report"
	"github.com/rs/zerolog/log"
)

// Config drives one bitsctl run.
type Config struct {
	Input    string
	Format   report.Format
	MaxDepth int
	ShowTree bool
	Log      LogConfig
}

type LogConfig struct {
	Level     string
	Timestamp bool
	NoColor   bool
}

type fileConfig struct {
	Input    string        `toml:"input"`
	Format   string        `toml:"format"`
	MaxDepth int           `toml:"max_depth"`
	ShowTree bool          `toml:"show_tree"`
	Log      fileLogConfig `toml:"log"`
}

type fileLogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	NoColor   bool   `toml:"no_color"`
}

func Default() Config {
	return Config{
		Input:    "input/day16.txt",
		Format:   report.FormatText,
		MaxDepth: packet.DefaultLimits().MaxDepth,
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}

// Load reads path over the defaults; keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warn().Str("path", path).Str("keys", fmt.Sprint(undecoded)).Msg("ignoring unknown config keys")
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("format") {
		f, err := report.ParseFormat(raw.Format)
		if err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
		cfg.Format = f
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("show_tree") {
		cfg.ShowTree = raw.ShowTree
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	log.Debug().Str("path", path).Msg("loaded config")
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Input) == "" {
		return fmt.Errorf("input is required")
	}
	if _, err := report.ParseFormat(string(cfg.Format)); err != nil {
		return err
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative: %d", cfg.MaxDepth)
	}
	if _, ok := logging.ParseLevel(cfg.Log.Level); !ok {
		return fmt.Errorf("unknown log level: %q", cfg.Log.Level)
	}
	return nil
}

// Limits returns the decode limits for cfg.
func (c Config) Limits() packet.Limits {
	return packet.Limits{MaxDepth: c.MaxDepth}
}

// Logging returns the logger config for cfg on top of the runtime profile.
func (c Config) Logging() logging.Config {
	out := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(c.Log.Level); ok {
		out.Level = lvl
	}
	out.Timestamp = c.Log.Timestamp
	out.NoColor = c.Log.NoColor
	return out
}
