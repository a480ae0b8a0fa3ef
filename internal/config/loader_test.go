package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// withEnv replaces the environment lookup with a fixed map for the duration of the test.
func withEnv(t *testing.T, env map[string]string) {
	t.Helper()
	original := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = original })
}

// chdirTemp runs the test from an empty directory so no stray .env file is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_DefaultsOnly(t *testing.T) {
	chdirTemp(t)
	withEnv(t, map[string]string{})

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.True(t, cfg.DigiKey.UseSandbox)
	assert.Equal(t, "https://sandbox-api.digikey.com", cfg.DigiKey.BaseURL())
	assert.Equal(t, "https://sandbox-api.digikey.com/v1/oauth2/token", cfg.DigiKey.TokenURL())
	assert.False(t, cfg.DigiKey.HasCredentials())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	withEnv(t, map[string]string{
		EnvClientID:       "id-123",
		EnvClientSecret:   "secret-456",
		EnvUseSandbox:     "false",
		EnvLocaleSite:     "DE",
		EnvLocaleLanguage: "de",
		EnvLocaleCurrency: "EUR",
		EnvTransport:      MCPTransportStreamableHTTP,
		EnvPort:           "9000",
	})

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "id-123", cfg.DigiKey.ClientID)
	assert.Equal(t, "secret-456", cfg.DigiKey.ClientSecret)
	assert.False(t, cfg.DigiKey.UseSandbox)
	assert.Equal(t, "PRODUCTION", cfg.DigiKey.Environment())
	assert.Equal(t, "https://api.digikey.com/v1/oauth2/token", cfg.DigiKey.TokenURL())
	assert.Equal(t, LocaleConfig{Site: "DE", Language: "de", Currency: "EUR"}, cfg.DigiKey.Locale)
	assert.Equal(t, MCPTransportStreamableHTTP, cfg.Server.Transport)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_UseSandboxParsing(t *testing.T) {
	tests := []struct {
		value   string
		sandbox bool
	}{
		{"true", true},
		{"TRUE", true},
		{"True", true},
		{"false", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			chdirTemp(t)
			withEnv(t, map[string]string{EnvUseSandbox: tt.value})

			cfg, err := Load(LoadOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.sandbox, cfg.DigiKey.UseSandbox)
		})
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := chdirTemp(t)

	fileCfg := GetDefaultConfig()
	fileCfg.DigiKey.ClientID = "from-yaml"
	fileCfg.DigiKey.ClientSecret = "yaml-secret"
	fileCfg.DigiKey.Locale.Currency = "GBP"
	fileCfg.Server.Transport = MCPTransportSSE
	data, err := yaml.Marshal(&fileCfg)
	require.NoError(t, err)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	withEnv(t, map[string]string{EnvClientID: "from-env"})

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.DigiKey.ClientID)
	assert.Equal(t, "yaml-secret", cfg.DigiKey.ClientSecret)
	assert.Equal(t, "GBP", cfg.DigiKey.Locale.Currency)
	assert.Equal(t, MCPTransportSSE, cfg.Server.Transport)
}

func TestLoad_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CLIENT_ID=dotenv-id\nCLIENT_SECRET=dotenv-secret\nDIGIKEY_LOCALE_SITE=CA\n"), 0o644))

	withEnv(t, map[string]string{EnvClientID: "real-id"})

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "real-id", cfg.DigiKey.ClientID)
	assert.Equal(t, "dotenv-secret", cfg.DigiKey.ClientSecret)
	assert.Equal(t, "CA", cfg.DigiKey.Locale.Site)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit env file missing", func(t *testing.T) {
		dir := chdirTemp(t)
		withEnv(t, map[string]string{})

		_, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "dotenv", cfgErr.Source)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("explicit yaml file missing", func(t *testing.T) {
		dir := chdirTemp(t)
		withEnv(t, map[string]string{})

		_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.yaml")})
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "io", cfgErr.ErrorType)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := chdirTemp(t)
		withEnv(t, map[string]string{})
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("digikey: [unterminated"), 0o644))

		_, err := Load(LoadOptions{ConfigFile: path})
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "parse", cfgErr.ErrorType)
	})

	t.Run("non-numeric port", func(t *testing.T) {
		chdirTemp(t)
		withEnv(t, map[string]string{EnvPort: "eighty"})

		_, err := Load(LoadOptions{})
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, EnvPort, cfgErr.Key)
	})

	t.Run("unknown transport", func(t *testing.T) {
		chdirTemp(t)
		withEnv(t, map[string]string{EnvTransport: "carrier-pigeon"})

		_, err := Load(LoadOptions{})
		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "server.transport", verrs[0].Field)
	})
}
