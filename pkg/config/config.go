package config

import (
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/foldermgr/pkg/errors"
)

// Config is the effective foldermgr configuration
type Config struct {
	RulesPath       string        `koanf:"rules_path"`
	ScanInterval    time.Duration `koanf:"scan_interval"`
	BackoffInterval time.Duration `koanf:"backoff_interval"`
	TempFolder      string        `koanf:"temp_folder"`
	WatchRules      bool          `koanf:"watch_rules"`
	Log             Log           `koanf:"log"`

	// Source is the config file that was loaded, if any.
	Source string `koanf:"-"`
}

// Log holds logging configuration
type Log struct {
	File string `koanf:"file"`
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.ScanInterval <= 0 {
		return errors.Newf(errors.ErrConfigInvalid, "scan_interval must be positive, got %s", c.ScanInterval).
			WithDetail("key", "scan_interval")
	}
	if c.BackoffInterval <= 0 {
		return errors.Newf(errors.ErrConfigInvalid, "backoff_interval must be positive, got %s", c.BackoffInterval).
			WithDetail("key", "backoff_interval")
	}
	if c.TempFolder == "" {
		return errors.New(errors.ErrConfigInvalid, "temp_folder must not be empty").
			WithDetail("key", "temp_folder")
	}
	return nil
}

// fileConfig mirrors Config the way it is written in config.toml.
type fileConfig struct {
	RulesPath       string `toml:"rules_path"`
	ScanInterval    string `toml:"scan_interval"`
	BackoffInterval string `toml:"backoff_interval"`
	TempFolder      string `toml:"temp_folder"`
	WatchRules      bool   `toml:"watch_rules"`
	Log             struct {
		File string `toml:"file"`
	} `toml:"log"`
}

// TOML renders c in the config file format.
func (c *Config) TOML() ([]byte, error) {
	fc := fileConfig{
		RulesPath:       c.RulesPath,
		ScanInterval:    c.ScanInterval.String(),
		BackoffInterval: c.BackoffInterval.String(),
		TempFolder:      c.TempFolder,
		WatchRules:      c.WatchRules,
	}
	fc.Log.File = c.Log.File

	out, err := toml.Marshal(fc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot render configuration")
	}
	return out, nil
}
