// Package config loads mirrorcrypt settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/mirrorfield/field"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the effective settings of one run.
type Config struct {
	GridSize   int
	FieldCount int
	KeyFile    string
	DebugDelay time.Duration
	Base64     bool
	LogLevel   string
}

type fileConfig struct {
	GridSize   int    `toml:"grid_size"`
	FieldCount int    `toml:"field_count"`
	KeyFile    string `toml:"key_file"`
	DebugDelay string `toml:"debug_delay"`
	Base64     bool   `toml:"base64"`
	LogLevel   string `toml:"log_level"`
}

// Default returns the built-in settings: 16×16 fields, four of them,
// base64 framing on.
func Default() Config {
	return Config{
		GridSize:   16,
		FieldCount: 4,
		Base64:     true,
		LogLevel:   "info",
	}
}

// Load reads path and applies every key it defines over Default().
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := apply(Default(), raw, meta)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return apply(Default(), raw, meta)
}

func apply(cfg Config, raw fileConfig, meta toml.MetaData) (Config, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if meta.IsDefined("grid_size") {
		cfg.GridSize = raw.GridSize
	}
	if meta.IsDefined("field_count") {
		cfg.FieldCount = raw.FieldCount
	}
	if meta.IsDefined("key_file") {
		cfg.KeyFile = strings.TrimSpace(raw.KeyFile)
	}
	if meta.IsDefined("debug_delay") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.DebugDelay))
		if err != nil {
			return Config{}, fmt.Errorf("parse debug_delay: %w", err)
		}
		cfg.DebugDelay = d
	}
	if meta.IsDefined("base64") {
		cfg.Base64 = raw.Base64
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the settings describe a usable key shape.
func (c Config) Validate() error {
	if c.GridSize < 1 || c.GridSize > field.MaxSize {
		return fmt.Errorf("%w: grid_size %d not in [1,%d]", ErrInvalid, c.GridSize, field.MaxSize)
	}
	if c.FieldCount < 1 {
		return fmt.Errorf("%w: field_count %d < 1", ErrInvalid, c.FieldCount)
	}
	if c.DebugDelay < 0 {
		return fmt.Errorf("%w: debug_delay %v is negative", ErrInvalid, c.DebugDelay)
	}
	if c.Base64 && 4*c.GridSize < 64 {
		return fmt.Errorf("%w: base64 framing needs grid_size >= 16, have %d", ErrInvalid, c.GridSize)
	}
	return nil
}
