package config

const (
	defaultConfigPath  = "~/.config/avifwrap/config.toml"
	projectConfigName  = "avifwrap.toml"
	defaultRootDir     = "runtimes"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	rootEnvVar         = "AVIFWRAP_ROOT"
	minQuality         = 1
	maxQuality         = 100
	minSpeed           = 1
	maxSpeed           = 10
	defaultOverwrite   = true
	defaultEmitMessage = false
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Encoder: Encoder{
			RootDir: defaultRootDir,
		},
		Defaults: Defaults{
			Overwrite:   defaultOverwrite,
			EmitMessage: defaultEmitMessage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
