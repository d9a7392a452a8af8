package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeEncoder(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeEncoder() error {
	if value, ok := os.LookupEnv(rootEnvVar); ok && strings.TrimSpace(value) != "" {
		c.Encoder.RootDir = strings.TrimSpace(value)
	}
	c.Encoder.RootDir = strings.TrimSpace(c.Encoder.RootDir)
	if c.Encoder.RootDir == "" {
		c.Encoder.RootDir = defaultRootDir
	}
	var err error
	if c.Encoder.RootDir, err = expandPath(c.Encoder.RootDir); err != nil {
		return fmt.Errorf("encoder.root_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
