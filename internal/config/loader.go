package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"digikey-mcp/pkg/logging"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is read when LoadOptions.EnvFile is empty. It is optional.
const DefaultEnvFile = ".env"

const (
	EnvClientID       = "CLIENT_ID"
	EnvClientSecret   = "CLIENT_SECRET"
	EnvUseSandbox     = "USE_SANDBOX"
	EnvLocaleSite     = "DIGIKEY_LOCALE_SITE"
	EnvLocaleLanguage = "DIGIKEY_LOCALE_LANGUAGE"
	EnvLocaleCurrency = "DIGIKEY_LOCALE_CURRENCY"
	EnvAPIBaseURL     = "DIGIKEY_API_BASE_URL"
	EnvTransport      = "MCP_TRANSPORT"
	EnvHost           = "MCP_HOST"
	EnvPort           = "MCP_PORT"
	EnvLogLevel       = "LOG_LEVEL"
)

// LoadOptions selects the files consulted by Load.
type LoadOptions struct {
	// ConfigFile is an optional YAML file. When set it must exist.
	ConfigFile string
	// EnvFile is a dotenv file. Defaults to DefaultEnvFile, which may be absent.
	// An explicitly named file must exist.
	EnvFile string
}

// lookupEnv is swapped out in tests.
var lookupEnv = os.LookupEnv

// Load resolves the configuration from defaults, the YAML file, the dotenv file
// and the process environment, in that order of increasing precedence.
func Load(opts LoadOptions) (Config, error) {
	cfg := GetDefaultConfig()

	if opts.ConfigFile != "" {
		if err := loadYAML(opts.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
		logging.Info("ConfigLoader", "Loaded configuration from %s", opts.ConfigFile)
	}

	dotenv, err := readDotenv(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if v, ok := lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.DigiKey.HasCredentials() {
		logging.Warn("ConfigLoader", "%s and %s are not set; authenticated tools will fail until they are", EnvClientID, EnvClientSecret)
	}

	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigurationError{Source: "yaml", FilePath: path, ErrorType: "io", Message: "cannot read config file", Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigurationError{Source: "yaml", FilePath: path, ErrorType: "parse", Message: "malformed config file", Err: err}
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No %s file found, using process environment only", path)
			return map[string]string{}, nil
		}
		return nil, &ConfigurationError{Source: "dotenv", FilePath: path, ErrorType: "io", Message: "cannot read env file", Err: err}
	}

	logging.Debug("ConfigLoader", "Loaded %d variables from %s", len(values), path)
	return values, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	setString(EnvClientID, &cfg.DigiKey.ClientID)
	setString(EnvClientSecret, &cfg.DigiKey.ClientSecret)
	setString(EnvLocaleSite, &cfg.DigiKey.Locale.Site)
	setString(EnvLocaleLanguage, &cfg.DigiKey.Locale.Language)
	setString(EnvLocaleCurrency, &cfg.DigiKey.Locale.Currency)
	setString(EnvAPIBaseURL, &cfg.DigiKey.APIBaseURL)
	setString(EnvTransport, &cfg.Server.Transport)
	setString(EnvHost, &cfg.Server.Host)
	setString(EnvLogLevel, &cfg.LogLevel)

	// Only the literal "true" (any case) keeps the sandbox; everything else is production.
	if v, ok := lookup(EnvUseSandbox); ok {
		cfg.DigiKey.UseSandbox = strings.EqualFold(strings.TrimSpace(v), "true")
	}

	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigurationError{Source: "env", Key: EnvPort, ErrorType: "value", Message: "not an integer", Err: err}
		}
		cfg.Server.Port = port
	}

	return nil
}
