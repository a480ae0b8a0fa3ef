package app

import (
	"io"

	"digikey-mcp/internal/config"
)

// Config holds the application configuration resolved from command-line flags.
// Zero-valued overrides leave the loaded configuration untouched.
type Config struct {
	// Debug forces debug logging regardless of LOG_LEVEL.
	Debug bool

	// ConfigFile is an optional YAML configuration file.
	ConfigFile string
	// EnvFile is the dotenv file to read. Empty means ".env" if present.
	EnvFile string

	// Transport, Host and Port override the server section.
	Transport string
	Host      string
	Port      int

	// Watch reloads DigiKey credentials and locale when the env or config
	// file changes while serving.
	Watch bool

	// Version is reported to MCP clients.
	Version string

	// LogOutput receives log lines. Defaults to os.Stderr because stdout
	// belongs to the stdio transport.
	LogOutput io.Writer

	// Settings, when set, is used instead of loading configuration.
	Settings *config.Config
}

// NewConfig creates a new application configuration.
func NewConfig(debug bool, configFile, envFile, version string) *Config {
	return &Config{
		Debug:      debug,
		ConfigFile: configFile,
		EnvFile:    envFile,
		Version:    version,
	}
}

func (c *Config) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFile: c.ConfigFile, EnvFile: c.EnvFile}
}
