package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoder() error {
	if c.Encoder.RootDir == "" {
		return errors.New("encoder.root_dir must be set")
	}
	if c.Encoder.TimeoutSeconds < 0 {
		return errors.New("encoder.timeout_seconds must not be negative")
	}
	return nil
}

// validateDefaults range-checks configured defaults only; per-invocation
// overrides are handed to cavif unchecked.
func (c *Config) validateDefaults() error {
	if q := c.Defaults.Quality; q != nil && (*q < minQuality || *q > maxQuality) {
		return fmt.Errorf("defaults.quality must be between %d and %d", minQuality, maxQuality)
	}
	if s := c.Defaults.Speed; s != nil && (*s < minSpeed || *s > maxSpeed) {
		return fmt.Errorf("defaults.speed must be between %d and %d", minSpeed, maxSpeed)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
