package config

const (
	defaultConfigPath   = "~/.config/titlesort/config.toml"
	defaultLogDir       = "~/.local/share/titlesort/logs"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultOutputFormat = "table"
	defaultColorMode    = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:  defaultLogDir,
			LockDir: defaultLockDir(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Output: Output{
			Format: defaultOutputFormat,
			Color:  defaultColorMode,
		},
	}
}
