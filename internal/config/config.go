// Package config loads benchlog settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"benchlog/internal/timeunit"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "benchlog.toml"

// Storage selects the storage driver and its location.
type Storage struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

// Config is the persisted config file schema.
type Config struct {
	Storage   Storage `toml:"storage"`
	Unit      string  `toml:"time_unit"`
	Mode      string  `toml:"mode"`
	Precision int     `toml:"precision"`
	Paginate  bool    `toml:"paginate"`
	Source    string  `toml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Storage: Storage{
			Driver: "json",
			Path:   ".benchlog/storage",
		},
		Unit:      string(timeunit.Microseconds),
		Mode:      string(timeunit.ModeTime),
		Precision: timeunit.DefaultPrecision,
		Paginate:  true,
	}
}

// ResolvePath returns path, $BENCHLOG_CONFIG or DefaultPath, in that order.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := strings.TrimSpace(os.Getenv("BENCHLOG_CONFIG")); env != "" {
		return env
	}
	return DefaultPath
}

// Load reads the config at path. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	path = ResolvePath(path)
	cfg.Source = path

	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		cfg.Source = ""
	} else if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if env := strings.TrimSpace(os.Getenv("BENCHLOG_STORAGE_DRIVER")); env != "" {
		cfg.Storage.Driver = env
	}
	if env := strings.TrimSpace(os.Getenv("BENCHLOG_STORAGE_PATH")); env != "" {
		cfg.Storage.Path = env
	}
	return cfg, nil
}

// TimeUnit builds the time unit converter described by the config.
func (c Config) TimeUnit() (timeunit.TimeUnit, error) {
	unit, err := timeunit.ParseUnit(c.Unit)
	if err != nil {
		return timeunit.TimeUnit{}, err
	}
	mode, err := timeunit.ParseMode(c.Mode)
	if err != nil {
		return timeunit.TimeUnit{}, err
	}
	if c.Precision < 0 {
		return timeunit.TimeUnit{}, fmt.Errorf("invalid precision: %d", c.Precision)
	}
	return timeunit.New(unit, mode, c.Precision), nil
}
