// Package config provides TOML configuration loading for fwcfg.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Report formats accepted by [inspect] format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the top-level configuration structure.
type Config struct {
	Inspect InspectConfig `toml:"inspect"`
	History HistoryConfig `toml:"history"`
}

// InspectConfig holds settings for decoding and reporting.
type InspectConfig struct {
	Marker       string `toml:"marker"`
	Format       string `toml:"format"`
	MaskSecrets  bool   `toml:"mask_secrets"`
	MaxImageSize string `toml:"max_image_size"`
	LogLevel     string `toml:"log_level"`
}

// HistoryConfig holds settings for the inspection history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.expandPaths()
	return cfg
}

// Resolve loads the config at path. When the path was not given explicitly
// and no file exists there, defaults are returned instead.
func Resolve(path string, explicit bool) (*Config, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
	}
	return Load(path)
}

// Load reads and parses a TOML config file, applying defaults for unset values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(cfg)
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that defaults cannot repair.
func (cfg *Config) Validate() error {
	switch cfg.Inspect.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", cfg.Inspect.Format)
	}
	if _, err := cfg.Inspect.ParseMaxImageSize(); err != nil {
		return err
	}
	if cfg.History.Enabled && cfg.History.DBPath == "" {
		return fmt.Errorf("history is enabled but db_path is empty")
	}
	return nil
}

// ParseMaxImageSize parses max_image_size ("64MiB", "512KiB", "1048576").
// "0" disables the configured limit.
func (i *InspectConfig) ParseMaxImageSize() (uint64, error) {
	if i.MaxImageSize == "" {
		return 64 << 20, nil
	}
	return ParseSize(i.MaxImageSize)
}

// ParseSize parses a byte count with an optional binary unit suffix.
func ParseSize(s string) (uint64, error) {
	units := []struct {
		suffix string
		mult   uint64
	}{
		{"GiB", 1 << 30},
		{"MiB", 1 << 20},
		{"KiB", 1 << 10},
		{"B", 1},
	}

	orig := s
	s = strings.TrimSpace(s)
	mult := uint64(1)
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			mult = u.mult
			break
		}
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n > math.MaxUint64/mult {
		return 0, fmt.Errorf("size %q overflows uint64", orig)
	}
	return n * mult, nil
}

func (cfg *Config) expandPaths() {
	cfg.History.DBPath = ExpandPath(cfg.History.DBPath)
}

// ExpandPath expands tilde (~) to the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}

func applyDefaults(cfg *Config) {
	if cfg.Inspect.Marker == "" {
		cfg.Inspect.Marker = "FWCFG_START"
	}
	if cfg.Inspect.Format == "" {
		cfg.Inspect.Format = FormatText
	}
	if cfg.Inspect.MaxImageSize == "" {
		cfg.Inspect.MaxImageSize = "64MiB"
	}
	if cfg.Inspect.LogLevel == "" {
		cfg.Inspect.LogLevel = "warn"
	}

	if cfg.History.DBPath == "" {
		cfg.History.DBPath = "~/.local/share/fwcfg/history.db"
	}
}
