package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"avifwrap/internal/cavif"
	"avifwrap/internal/config"
	"avifwrap/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// newConverter builds a converter from config. The root is validated lazily
// on the first conversion unless overridden with SetRoot.
func (c *commandContext) newConverter() (*cavif.Converter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return cavif.New(
		cavif.WithRoot(cfg.Encoder.RootDir),
		cavif.WithTimeout(time.Duration(cfg.Encoder.TimeoutSeconds)*time.Second),
		cavif.WithLogger(logger),
	), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
