package testsupport

import (
	"path/filepath"
	"testing"

	"avifwrap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Encoder.RootDir = filepath.Join(base, "runtimes")
	cfg.Logging.Dir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTimeout sets the encoder timeout in seconds.
func WithTimeout(seconds int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Encoder.TimeoutSeconds = seconds
	}
}
